package chat

import (
	"strings"
	"testing"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		message string
		want    Category
	}{
		{"hello", CategoryGreeting},
		{"HELLO there", CategoryGreeting},
		{"Good Morning!", CategoryGreeting},
		{"my python script crashes", CategoryCoding},
		{"can you debug my function", CategoryCoding},
		{"thanks a lot", CategoryThanks},
		{"I really appreciate it", CategoryThanks},
		{"can you assist me", CategoryHelp},
		{"what is a monad", CategoryHelp},
		{"bananas are yellow", CategoryDefault},
		// Plain substring matching: "hi" inside "this" is a greeting, and
		// greeting is checked before coding.
		{"this code has a bug", CategoryGreeting},
		// "code" is checked before "thank".
		{"thanks for the code", CategoryCoding},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := Categorize(tt.message); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestDefaultPhrases_Complete(t *testing.T) {
	for _, c := range []Category{CategoryGreeting, CategoryCoding, CategoryThanks, CategoryHelp, CategoryDefault} {
		if len(DefaultPhrases[c]) == 0 {
			t.Errorf("category %q has no phrases", c)
		}
		for _, p := range DefaultPhrases[c] {
			if strings.TrimSpace(p) == "" {
				t.Errorf("category %q has a blank phrase", c)
			}
		}
	}
}

func TestDefaultPhrases_GreetingsNameFred(t *testing.T) {
	for _, p := range DefaultPhrases[CategoryGreeting] {
		if !strings.Contains(p, "Fred AI") {
			t.Errorf("greeting %q should mention Fred AI", p)
		}
	}
}
