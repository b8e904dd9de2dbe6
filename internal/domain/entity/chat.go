package entity

import "time"

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ParseChatRole maps a wire role string to a ChatRole. Anything that is not
// the assistant counts as the user, which is the safe direction for
// prompting.
func ParseChatRole(s string) ChatRole {
	if s == string(RoleAssistant) {
		return RoleAssistant
	}
	return RoleUser
}

// ChatMessage is one turn in the assistant conversation. Messages live only
// in the in-memory transcript for the lifetime of the widget; nothing is
// persisted across restarts.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
