package tutor

import "github.com/abhisek/lingua/internal/intent"

// Role identifies who wrote a Message.
type Role string

const (
	RoleHuman Role = "human"
	RoleAI    Role = "ai"
)

// Message is one entry of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// State is the routing state machine's data: the conversation so far and
// the next node to run.
type State struct {
	Messages []Message
	Next     intent.Handler
}

// Last returns the final message, or false if there is none.
func (s State) Last() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}
