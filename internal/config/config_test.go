package config

import (
	"testing"
	"time"
)

func TestLoadConfig_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when DATABASE_URL is unset")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/chat_test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.HTTPPort != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.HTTPPort)
	}
	if cfg.CompletionModel != "deepseek/deepseek-chat" {
		t.Errorf("unexpected default model %q", cfg.CompletionModel)
	}
	if cfg.CompletionMaxTokens != 2000 {
		t.Errorf("expected default max tokens 2000, got %d", cfg.CompletionMaxTokens)
	}
	if cfg.CompletionTemperature != 0.7 {
		t.Errorf("expected default temperature 0.7, got %g", cfg.CompletionTemperature)
	}
	if cfg.HistoryWindow != 10 {
		t.Errorf("expected default history window 10, got %d", cfg.HistoryWindow)
	}
	if cfg.CompletionTimeout != 60*time.Second {
		t.Errorf("expected default timeout 60s, got %s", cfg.CompletionTimeout)
	}
	if cfg.PersonaPrompt == "" {
		t.Error("expected a built-in persona prompt")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/chat_test")
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("HISTORY_WINDOW", "4")
	t.Setenv("COMPLETION_TEMPERATURE", "0.2")
	t.Setenv("PERSONA_PROMPT", "custom persona")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.HTTPPort != "9999" {
		t.Errorf("expected port override, got %q", cfg.HTTPPort)
	}
	if cfg.HistoryWindow != 4 {
		t.Errorf("expected window override 4, got %d", cfg.HistoryWindow)
	}
	if cfg.CompletionTemperature != 0.2 {
		t.Errorf("expected temperature override 0.2, got %g", cfg.CompletionTemperature)
	}
	if cfg.PersonaPrompt != "custom persona" {
		t.Errorf("expected persona override, got %q", cfg.PersonaPrompt)
	}
}

func TestLoadConfig_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/chat_test")
	t.Setenv("HISTORY_WINDOW", "not-a-number")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HistoryWindow != 10 {
		t.Errorf("expected fallback window 10, got %d", cfg.HistoryWindow)
	}
}

func TestLoadConfig_RejectsNonPositiveWindow(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/chat_test")
	t.Setenv("HISTORY_WINDOW", "0")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for a zero history window")
	}
}
