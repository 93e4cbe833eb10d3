// Package chat answers user messages as Fred AI. Each message is sent to the
// configured language model with a fixed persona prompt; if the model can't
// answer, a canned reply is picked from a keyword-matched phrase table.
// Nothing is persisted and no history is kept between messages.
package chat

// Status tags returned alongside every reply. The UI uses them to tell a
// model answer from a canned one.
const (
	StatusSuccess  = "success"
	StatusFallback = "success (mock)"
)

// personaPrompt is the system message sent with every request.
const personaPrompt = `You are Fred AI, a friendly, helpful, and knowledgeable AI assistant. You have a warm personality and always try to be helpful while maintaining a conversational tone. You can help with various tasks including:

- Answering questions and providing information
- Helping with coding and technical problems
- Creative writing and brainstorming
- General conversation and companionship
- Problem-solving and analysis

Always respond in a friendly, helpful manner while being accurate and informative. If you're not sure about something, be honest about it.`

// Reply is the outcome of resolving one message.
type Reply struct {
	Text   string `json:"response"`
	Status string `json:"status"`
}

// ChatRequest is the JSON body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}
