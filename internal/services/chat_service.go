package services

import (
	"context"
	"fmt"

	"personachat-backend/internal/completion"
	"personachat-backend/internal/models"
	"personachat-backend/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultChatTitle = "New Chat"

// ChatService handles chat-related business logic, including assembling the
// bounded conversation context sent to the completion API.
type ChatService struct {
	store         store.Store
	llm           *completion.Client
	personaPrompt string
	historyWindow int
	logger        *zap.Logger
}

// NewChatService creates a new ChatService. personaPrompt is the fixed
// persona preamble prepended to every completion call; historyWindow caps how
// many stored messages are included in the prompt.
func NewChatService(st store.Store, llm *completion.Client, personaPrompt string, historyWindow int, logger *zap.Logger) *ChatService {
	return &ChatService{
		store:         st,
		llm:           llm,
		personaPrompt: personaPrompt,
		historyWindow: historyWindow,
		logger:        logger,
	}
}

// CreateChat creates a new chat, defaulting the title when none is given.
func (s *ChatService) CreateChat(ctx context.Context, req models.CreateChatRequest) (*models.Chat, error) {
	title := defaultChatTitle
	if req.Title != nil && *req.Title != "" {
		title = *req.Title
	}
	return s.store.CreateChat(ctx, store.CreateChatParams{Title: title})
}

// ListChats returns all chats, most recently active first.
func (s *ChatService) ListChats(ctx context.Context) ([]models.Chat, error) {
	return s.store.ListChats(ctx)
}

// DeleteChat removes a chat and its messages.
func (s *ChatService) DeleteChat(ctx context.Context, chatID uuid.UUID) error {
	return s.store.DeleteChat(ctx, chatID)
}

// ListMessages returns a chat's messages in conversation order.
func (s *ChatService) ListMessages(ctx context.Context, chatID uuid.UUID) ([]models.Message, error) {
	return s.store.ListMessages(ctx, chatID)
}

// SendMessage turns a new user utterance into a persisted exchange with the
// persona. The user message is committed first and stays committed even when
// the completion call later fails, so the user's input is never lost.
func (s *ChatService) SendMessage(ctx context.Context, chatID uuid.UUID, req models.SendMessageRequest) (*models.SendMessageResponse, error) {
	userMsg, err := s.store.CreateMessage(ctx, store.CreateMessageParams{
		ChatID:  chatID,
		Role:    models.RoleUser,
		Content: req.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	history, err := s.store.ListMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	reply, err := s.llm.CreateChatCompletion(ctx, req.APIKey, s.assemblePrompt(history))
	if err != nil {
		return nil, err
	}

	assistantMsg, err := s.store.CreateMessage(ctx, store.CreateMessageParams{
		ChatID:  chatID,
		Role:    models.RoleAssistant,
		Content: reply,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	// The exchange is already durable at this point; a failed recency bump
	// should not fail the send.
	if err := s.store.TouchChat(ctx, chatID); err != nil {
		s.logger.Warn("failed to update chat recency",
			zap.String("chat_id", chatID.String()),
			zap.Error(err))
	}

	return &models.SendMessageResponse{
		UserMessage:      *userMsg,
		AssistantMessage: *assistantMsg,
	}, nil
}

// assemblePrompt prepends the persona preamble and keeps only the most recent
// historyWindow entries of the stored history, oldest first.
func (s *ChatService) assemblePrompt(history []models.Message) []completion.Message {
	start := 0
	if len(history) > s.historyWindow {
		start = len(history) - s.historyWindow
	}

	prompt := make([]completion.Message, 0, len(history)-start+1)
	prompt = append(prompt, completion.Message{Role: models.RoleSystem, Content: s.personaPrompt})
	for _, msg := range history[start:] {
		prompt = append(prompt, completion.Message{Role: msg.Role, Content: msg.Content})
	}
	return prompt
}
