package chat

import "strings"

// Category names a group of canned replies.
type Category string

// Fallback categories. Matching tries them in this order.
const (
	CategoryGreeting Category = "greeting"
	CategoryCoding   Category = "coding"
	CategoryThanks   Category = "thanks"
	CategoryHelp     Category = "help"
	CategoryDefault  Category = "default"
)

// keywordSet pairs a category with the substrings that select it.
type keywordSet struct {
	category Category
	keywords []string
}

// categoryKeywords is checked top to bottom; the first set with any keyword
// contained in the lowercased message wins. Matching is by plain substring,
// so "hi" also matches inside "this".
var categoryKeywords = []keywordSet{
	{CategoryGreeting, []string{
		"hello", "hi", "hey", "greetings",
		"good morning", "good afternoon", "good evening", "howdy",
	}},
	{CategoryCoding, []string{
		"code", "coding", "program", "programming", "python", "javascript",
		"function", "bug", "debug", "error", "algorithm", "html", "css",
		"java", "golang",
	}},
	{CategoryThanks, []string{
		"thank", "thanks", "appreciate", "grateful",
	}},
	{CategoryHelp, []string{
		"help", "assist", "support", "question", "how do", "what is", "explain",
	}},
}

// Phrases maps each category to its canned replies.
type Phrases map[Category][]string

// DefaultPhrases is the built-in fallback table. Every greeting introduces
// Fred AI by name.
var DefaultPhrases = Phrases{
	CategoryGreeting: {
		"Hello! I'm Fred AI, your friendly assistant. How can I help you today?",
		"Hi there! Fred AI here. What's on your mind?",
		"Hey! Great to see you. I'm Fred AI, ready to chat whenever you are.",
		"Greetings! Fred AI at your service. What would you like to talk about?",
	},
	CategoryCoding: {
		"I love a good coding puzzle! Can you share the code and the exact error you're seeing?",
		"Programming questions are my favourite. What language are you working in, and what should the code do?",
		"Let's debug this together. Try narrowing it down to the smallest snippet that still shows the problem.",
		"Good question! Breaking the problem into small functions usually makes it much easier to reason about.",
	},
	CategoryThanks: {
		"You're very welcome! Happy to help anytime.",
		"My pleasure! Let me know if there's anything else you need.",
		"Glad I could help! Feel free to come back with more questions.",
	},
	CategoryHelp: {
		"I'd be happy to help! Could you tell me a bit more about what you need?",
		"Sure thing. Give me some details and I'll do my best to explain.",
		"Of course! Ask away and we'll figure it out together.",
	},
	CategoryDefault: {
		"That's interesting! Tell me more.",
		"I hear you. What would you like to explore next?",
		"Thanks for sharing! Is there something specific I can help you with?",
		"Good point. How can I help you with that?",
	},
}

// Categorize returns the fallback category for a message.
func Categorize(message string) Category {
	lower := strings.ToLower(message)
	for _, set := range categoryKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				return set.category
			}
		}
	}
	return CategoryDefault
}
