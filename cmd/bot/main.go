// Package main runs the KrouAI tutoring bot.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"krouai/internal/bot"
	"krouai/internal/config"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := bot.New(ctx, bot.Config{
		TelegramToken: cfg.TelegramToken,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		Model:         cfg.GeminiModel,
	})
	if err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}

	if err := b.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Bot stopped: %v", err)
	}
}
