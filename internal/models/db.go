package models

import (
	"time"

	"github.com/google/uuid"
)

// Message roles. RoleSystem is only ever synthesized at prompt-assembly time;
// persisted messages are always RoleUser or RoleAssistant.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Chat represents a conversation thread in the database.
// UpdatedAt reflects the most recent message exchange so chat lists can be
// sorted by recency.
type Chat struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Message represents a single turn in a conversation. Messages are immutable
// once created; within a chat, CreatedAt orders the conversation.
type Message struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ChatID    uuid.UUID `db:"chat_id" json:"chat_id"`
	Role      string    `db:"role" json:"role"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
