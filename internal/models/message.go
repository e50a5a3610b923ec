package models

// Role identifies who authored a chat message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Label returns the display name shown above a message
func (r Role) Label() string {
	if r == RoleUser {
		return "You"
	}
	return "Assistant"
}

// Avatar returns the short badge rendered next to a message
func (r Role) Avatar() string {
	if r == RoleUser {
		return "U"
	}
	return "AI"
}

// Message represents a chat message for TUI display.
// Messages are never modified after creation.
type Message struct {
	ID      string
	Role    Role
	Content string
	Time    string // formatted time of day, captured at creation
	Failed  bool   // assistant-role notice describing a failed reply
}
