package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/workwAIse/alex-web/pkg/assistant"
	"github.com/workwAIse/alex-web/pkg/assistant/openaiassistant"
	"github.com/workwAIse/alex-web/pkg/server"
	"github.com/workwAIse/alex-web/pkg/store"
	"github.com/workwAIse/alex-web/pkg/store/sqlite"
	"github.com/workwAIse/alex-web/web"
)

func main() {
	// Setup logger.
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Config.
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	dbPath := os.Getenv("ALEXWEB_DB")
	if dbPath == "" {
		wd, _ := os.Getwd()
		dbPath = filepath.Join(wd, "data", "alexweb.db")
	}
	os.MkdirAll(filepath.Dir(dbPath), 0755)

	// Initialize content store.
	content, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer content.Close()

	if err := store.SeedDefaults(ctx, content); err != nil {
		slog.Error("Failed to seed content", "error", err)
		os.Exit(1)
	}

	// Initialize the assistant provider. A missing configuration is not
	// fatal: the site still serves, and /api/chat answers 503 until the
	// credentials are set.
	var provider assistant.Provider
	apiKey := os.Getenv("OPENAI_API_KEY")
	assistantID := os.Getenv("OPENAI_ASSISTANT_ID")
	if apiKey == "" || assistantID == "" {
		slog.Warn("OPENAI_API_KEY or OPENAI_ASSISTANT_ID not set; chat endpoint disabled")
	} else {
		provider = openaiassistant.New(apiKey, assistantID)
	}

	// Start server.
	srv := server.New(content, provider, web.Dist())
	if err := srv.Start(addr); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
