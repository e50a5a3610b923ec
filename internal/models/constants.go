// Package models contains data types and constants shared by the chat UI.
package models

// ProductName is the brand shown in the header
const ProductName = "llm.chat"

// StatusReady is the status text shown next to the brand
const StatusReady = "ready"

// suggestions are offered when the conversation is empty
var suggestions = []string{
	"Explain quantum computing in simple terms",
	"Write a Python function to sort a list",
	"What are the latest trends in AI?",
	"Help me debug this code",
}

// Suggestions returns a copy of the suggestion prompts shown on an empty conversation
func Suggestions() []string {
	out := make([]string, len(suggestions))
	copy(out, suggestions)
	return out
}
