package store

import (
	"context"
	"errors"

	"personachat-backend/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// CreateChatParams contains parameters for creating a chat.
// A nil ID lets the implementation generate one.
type CreateChatParams struct {
	ID    uuid.UUID
	Title string
}

// CreateMessageParams contains parameters for appending a message to a chat.
type CreateMessageParams struct {
	ID      uuid.UUID
	ChatID  uuid.UUID
	Role    string
	Content string
}

// Store defines the interface for database operations.
// This allows for mocking in tests and potential DB backend switching.
type Store interface {
	// Chat operations
	CreateChat(ctx context.Context, arg CreateChatParams) (*models.Chat, error)
	ListChats(ctx context.Context) ([]models.Chat, error)
	DeleteChat(ctx context.Context, id uuid.UUID) error
	// TouchChat bumps a chat's updated_at so recency sorting tracks the
	// latest exchange.
	TouchChat(ctx context.Context, id uuid.UUID) error

	// Message operations
	CreateMessage(ctx context.Context, arg CreateMessageParams) (*models.Message, error)
	ListMessages(ctx context.Context, chatID uuid.UUID) ([]models.Message, error)
}
