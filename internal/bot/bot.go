// Package bot is the KrouAI tutoring bot: it relays student questions and
// exercise photos from Telegram to Gemini and sends the answer back.
package bot

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"google.golang.org/genai"
)

// Config holds the bot's credentials and model choice.
type Config struct {
	TelegramToken string
	GeminiAPIKey  string
	Model         string
}

// Bot is the running bot instance.
type Bot struct {
	api        *tgbotapi.BotAPI
	gemini     *genai.Client
	model      string
	httpClient *http.Client
}

// New connects to Telegram and Gemini.
func New(ctx context.Context, cfg Config) (*Bot, error) {
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("telegram token is required")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}

	gemini, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Bot{
		api:        api,
		gemini:     gemini,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Run long-polls Telegram until the context is cancelled. Each update is
// handled in isolation; a failing update never stops the loop.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	log.Printf("Bot is running as @%s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		if msg.Command() == "start" {
			b.reply(msg.Chat.ID, welcomeMessage)
		}
		return
	}

	if _, err := b.api.Request(tgbotapi.NewChatAction(msg.Chat.ID, tgbotapi.ChatTyping)); err != nil {
		log.Printf("bot: failed to send typing action: %v", err)
	}

	hasPhoto := len(msg.Photo) > 0
	text := promptText(msg.Caption, hasPhoto, msg.Text)

	var parts []*genai.Part
	if text != "" {
		parts = append(parts, genai.NewPartFromText(text))
	}
	if hasPhoto {
		// Telegram orders sizes ascending; take the largest.
		photo := msg.Photo[len(msg.Photo)-1]
		data, err := b.downloadPhoto(ctx, photo.FileID)
		if err != nil {
			log.Printf("bot: failed to download photo: %v", err)
			b.reply(msg.Chat.ID, errorMessage)
			return
		}
		parts = append(parts, genai.NewPartFromBytes(data, "image/jpeg"))
	}
	if len(parts) == 0 {
		return
	}

	resp, err := b.gemini.Models.GenerateContent(ctx, b.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		},
	)
	if err != nil {
		log.Printf("bot: gemini request failed: %v", err)
		b.reply(msg.Chat.ID, errorMessage)
		return
	}

	answer := resp.Text()
	if answer == "" {
		b.reply(msg.Chat.ID, errorMessage)
		return
	}
	b.reply(msg.Chat.ID, answer)
}

// downloadPhoto fetches a Telegram file into memory.
func (b *Bot) downloadPhoto(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("bot: failed to send reply: %v", err)
	}
}
