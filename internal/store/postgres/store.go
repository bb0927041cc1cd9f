package postgres

import (
	"context"
	"errors"
	"fmt"

	"personachat-backend/internal/models"
	"personachat-backend/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Compile-time check to ensure PostgresStore implements store.Store
var _ store.Store = (*PostgresStore)(nil)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// --- Chat Methods ---

const createChat = `-- name: CreateChat :one
INSERT INTO chats (id, title)
VALUES ($1, $2)
RETURNING id, title, created_at, updated_at;
`

func (s *PostgresStore) CreateChat(ctx context.Context, arg store.CreateChatParams) (*models.Chat, error) {
	id := arg.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := s.db.QueryRow(ctx, createChat, id, arg.Title)

	var chat models.Chat
	if err := row.Scan(&chat.ID, &chat.Title, &chat.CreatedAt, &chat.UpdatedAt); err != nil {
		return nil, fmt.Errorf("error scanning created chat: %w", err)
	}
	return &chat, nil
}

const listChats = `-- name: ListChats :many
SELECT id, title, created_at, updated_at
FROM chats
ORDER BY updated_at DESC;
`

func (s *PostgresStore) ListChats(ctx context.Context) ([]models.Chat, error) {
	rows, err := s.db.Query(ctx, listChats)
	if err != nil {
		return nil, fmt.Errorf("error querying chats: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty table marshals as [] rather than null.
	chats := []models.Chat{}
	for rows.Next() {
		var chat models.Chat
		if err := rows.Scan(&chat.ID, &chat.Title, &chat.CreatedAt, &chat.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning chat row: %w", err)
		}
		chats = append(chats, chat)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat rows: %w", err)
	}

	return chats, nil
}

const deleteChatMessages = `-- name: DeleteChatMessages :exec
DELETE FROM messages
WHERE chat_id = $1;
`

const deleteChat = `-- name: DeleteChat :exec
DELETE FROM chats
WHERE id = $1;
`

// DeleteChat removes a chat and its messages. Messages are deleted explicitly
// in the same transaction rather than relying on the schema's
// referential-integrity configuration. Deleting a chat that does not exist is
// not an error; the delete contract has no not-found distinction.
func (s *PostgresStore) DeleteChat(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, deleteChatMessages, id); err != nil {
		return fmt.Errorf("error deleting chat messages: %w", err)
	}
	if _, err := tx.Exec(ctx, deleteChat, id); err != nil {
		return fmt.Errorf("error deleting chat: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing chat delete: %w", err)
	}
	return nil
}

const touchChat = `-- name: TouchChat :exec
UPDATE chats
SET updated_at = NOW()
WHERE id = $1;
`

func (s *PostgresStore) TouchChat(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, touchChat, id)
	if err != nil {
		return fmt.Errorf("error updating chat recency: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// --- Message Methods ---

const createMessage = `-- name: CreateMessage :one
INSERT INTO messages (id, chat_id, role, content)
VALUES ($1, $2, $3, $4)
RETURNING id, chat_id, role, content, created_at;
`

func (s *PostgresStore) CreateMessage(ctx context.Context, arg store.CreateMessageParams) (*models.Message, error) {
	id := arg.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := s.db.QueryRow(ctx, createMessage, id, arg.ChatID, arg.Role, arg.Content)

	var msg models.Message
	err := row.Scan(&msg.ID, &msg.ChatID, &msg.Role, &msg.Content, &msg.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23503 foreign_key_violation: the owning chat does not exist.
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("error scanning created message: %w", err)
	}
	return &msg, nil
}

const listMessages = `-- name: ListMessages :many
SELECT id, chat_id, role, content, created_at
FROM messages
WHERE chat_id = $1
ORDER BY created_at ASC;
`

func (s *PostgresStore) ListMessages(ctx context.Context, chatID uuid.UUID) ([]models.Message, error) {
	rows, err := s.db.Query(ctx, listMessages, chatID)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return messages, nil
}
