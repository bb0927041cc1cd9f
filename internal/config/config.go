package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// defaultPersonaPrompt is the fixed persona preamble prepended to every
// completion call. It is prompt-assembly configuration, not conversation
// data, and is never persisted.
const defaultPersonaPrompt = `You are Vesper, a fictional AI companion with a dry wit and a theatrical streak. Stay in character at all times: speak in first person, keep replies conversational, and begin every message with "[Vesper]". You enjoy wordplay and the occasional dramatic aside, but you always keep your answers focused on what the user actually asked.`

// Config holds application configuration values loaded from environment variables.
type Config struct {
	HTTPPort    string
	DatabaseURL string

	CompletionAPIURL      string
	CompletionModel       string
	CompletionMaxTokens   int
	CompletionTemperature float64
	CompletionTimeout     time.Duration

	HistoryWindow int
	PersonaPrompt string
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file (useful for development)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.")
		// Don't fail if .env is not present, might be in production
	}

	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	cfg := &Config{
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		DatabaseURL:           dbURL,
		CompletionAPIURL:      getEnv("COMPLETION_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
		CompletionModel:       getEnv("COMPLETION_MODEL", "deepseek/deepseek-chat"),
		CompletionMaxTokens:   getEnvInt("COMPLETION_MAX_TOKENS", 2000),
		CompletionTemperature: getEnvFloat("COMPLETION_TEMPERATURE", 0.7),
		CompletionTimeout:     time.Duration(getEnvInt("COMPLETION_TIMEOUT_SECONDS", 60)) * time.Second,
		HistoryWindow:         getEnvInt("HISTORY_WINDOW", 10),
		PersonaPrompt:         getEnv("PERSONA_PROMPT", defaultPersonaPrompt),
	}

	if cfg.HistoryWindow < 1 {
		return nil, fmt.Errorf("HISTORY_WINDOW must be at least 1, got %d", cfg.HistoryWindow)
	}

	log.Printf("Loaded config: Port=%s, DB_URL=***, Model=%s, Window=%d", cfg.HTTPPort, cfg.CompletionModel, cfg.HistoryWindow)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s', using default %d. Error: %v", key, value, fallback, err)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s', using default %g. Error: %v", key, value, fallback, err)
		return fallback
	}
	return f
}
