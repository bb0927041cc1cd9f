package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"personachat-backend/internal/completion"
	"personachat-backend/internal/models"
	"personachat-backend/internal/services"
	"personachat-backend/internal/store"
	"personachat-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatHandlers handles HTTP requests related to chats.
type ChatHandlers struct {
	chatService *services.ChatService
	logger      *zap.Logger
}

// NewChatHandlers creates a new ChatHandlers instance.
func NewChatHandlers(chatService *services.ChatService, logger *zap.Logger) *ChatHandlers {
	return &ChatHandlers{
		chatService: chatService,
		logger:      logger,
	}
}

// HandleListChats returns all chats, most recently active first.
func (h *ChatHandlers) HandleListChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.chatService.ListChats(r.Context())
	if err != nil {
		h.logger.Error("failed to list chats", zap.Error(err))
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list chats: "+err.Error())
		return
	}
	httputil.RespondJSON(w, http.StatusOK, chats)
}

// HandleCreateChat creates a new chat thread.
func (h *ChatHandlers) HandleCreateChat(w http.ResponseWriter, r *http.Request) {
	var req models.CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	chat, err := h.chatService.CreateChat(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to create chat", zap.Error(err))
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to create chat: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, chat)
}

// HandleDeleteChat deletes a chat and its messages. Deleting an unknown id is
// reported as success; the contract has no not-found distinction here.
func (h *ChatHandlers) HandleDeleteChat(w http.ResponseWriter, r *http.Request) {
	chatID, err := uuid.Parse(chi.URLParam(r, "chatID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid chat ID")
		return
	}

	if err := h.chatService.DeleteChat(r.Context(), chatID); err != nil {
		h.logger.Error("failed to delete chat", zap.String("chat_id", chatID.String()), zap.Error(err))
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete chat: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.DeleteChatResponse{Success: true})
}

// HandleListMessages returns a chat's messages in conversation order.
func (h *ChatHandlers) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	chatID, err := uuid.Parse(chi.URLParam(r, "chatID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid chat ID")
		return
	}

	messages, err := h.chatService.ListMessages(r.Context(), chatID)
	if err != nil {
		h.logger.Error("failed to list messages", zap.String("chat_id", chatID.String()), zap.Error(err))
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list messages: "+err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, messages)
}

// HandleSendMessage posts a user message and returns the persisted exchange.
func (h *ChatHandlers) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	chatID, err := uuid.Parse(chi.URLParam(r, "chatID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid chat ID")
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		httputil.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.APIKey == "" {
		httputil.RespondError(w, http.StatusBadRequest, "apiKey is required")
		return
	}

	resp, err := h.chatService.SendMessage(r.Context(), chatID, req)
	if err != nil {
		var upstreamErr *completion.UpstreamError
		switch {
		case errors.As(err, &upstreamErr):
			// The user message is already committed; only the reply failed.
			h.logger.Error("completion API failure",
				zap.String("chat_id", chatID.String()),
				zap.Int("upstream_status", upstreamErr.StatusCode),
				zap.Error(err))
			httputil.RespondError(w, http.StatusInternalServerError, err.Error())
		case errors.Is(err, store.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "Chat not found")
		default:
			h.logger.Error("failed to send message", zap.String("chat_id", chatID.String()), zap.Error(err))
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to send message: "+err.Error())
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
