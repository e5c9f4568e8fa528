package model

import "time"

// Chat role constants
var (
	// ChatRoleUser marks a message typed by the user
	ChatRoleUser = "user"
	// ChatRoleModel marks a message produced by the generative model
	ChatRoleModel = "model"
)

// ChatMessage is one entry of the append-only chat transcript. Messages are
// never mutated or removed individually; the transcript is only ever
// appended to or cleared wholesale.
type ChatMessage struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
