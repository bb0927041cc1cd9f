package api

import (
	"net/http"
	"time"

	"personachat-backend/internal/handlers"
	"personachat-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// RouterDependencies holds all the dependencies required by the router setup.
type RouterDependencies struct {
	ChatHandler *handlers.ChatHandlers
	Logger      *zap.Logger
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	if deps.ChatHandler == nil {
		panic("ChatHandler dependency is nil in router setup")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer) // Recover from panics, return 500
	// The timeout must cover the synchronous completion-API call made by the
	// send-message operation.
	r.Use(middleware.Timeout(120 * time.Second))

	// --- CORS Configuration ---
	// The browser client may be served from any origin. Every response,
	// success or failure, carries these permissive headers.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Client-Info", "Apikey"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/chats", func(r chi.Router) {
		r.Get("/", deps.ChatHandler.HandleListChats)
		r.Post("/", deps.ChatHandler.HandleCreateChat)
		r.Delete("/{chatID}", deps.ChatHandler.HandleDeleteChat)

		// Message APIs
		r.Get("/{chatID}/messages", deps.ChatHandler.HandleListMessages)
		r.Post("/{chatID}/messages", deps.ChatHandler.HandleSendMessage)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondError(w, http.StatusNotFound, "Not found")
	})

	return r
}
