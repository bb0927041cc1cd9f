package models

// --- Request Structs ---

// CreateChatRequest defines the expected body for creating a chat.
// Title is optional; an absent or empty title falls back to "New Chat".
type CreateChatRequest struct {
	Title *string `json:"title,omitempty"`
}

// SendMessageRequest defines the body for posting a message to a chat.
// APIKey is the caller-held completion-API key. It is forwarded upstream as
// the bearer credential for this one request and never stored server-side.
type SendMessageRequest struct {
	Message string `json:"message"`
	APIKey  string `json:"apiKey"`
}

// --- Response Structs ---

// SendMessageResponse returns both halves of a successful exchange.
type SendMessageResponse struct {
	UserMessage      Message `json:"userMessage"`
	AssistantMessage Message `json:"assistantMessage"`
}

// DeleteChatResponse acknowledges a chat deletion.
type DeleteChatResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
