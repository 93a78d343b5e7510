package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vhictorlhanceatendido123-sudo/ocr-telegram-bot/internal/expense"
)

// maxDownloadSize is the Bot API's own file download cap (20 MB)
const maxDownloadSize = 20 << 20

const (
	unsupportedDocumentReply = "Sorry, I can only read receipts sent as photos or as PDF, PNG, JPEG, GIF or HEIC files."
	documentTooLargeReply    = "Sorry, that file is too large for me to download. Please send one under 20 MB."
)

// Handler runs the expense pipeline for one incoming message
type Handler interface {
	ProcessPhoto(ctx context.Context, chatID int64, imageData []byte, contentType string) error
	ProcessNote(ctx context.Context, chatID int64, note string) error
}

// Bot long-polls the Telegram Bot API and feeds each incoming message into
// the expense pipeline
type Bot struct {
	api         *tgbotapi.BotAPI
	notifier    *Sender
	offsets     OffsetStore
	client      *http.Client
	dropPending bool

	handler Handler
}

// NewBot creates a new Bot instance. The token is validated against the Bot
// API before this returns.
func NewBot(token string, offsets OffsetStore, dropPending bool) (*Bot, error) {
	if token == "" {
		return nil, errors.New("telegram bot token is required")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram client: %w", err)
	}

	return &Bot{
		api:         api,
		notifier:    NewSender(api),
		offsets:     offsets,
		client:      &http.Client{Timeout: 60 * time.Second},
		dropPending: dropPending,
	}, nil
}

// Sender returns a Sender sharing this bot's API client
func (b *Bot) Sender() *Sender {
	return b.notifier
}

// Run long-polls for updates until ctx is canceled. Each message is handled
// on its own goroutine so a slow pipeline never stalls intake.
func (b *Bot) Run(ctx context.Context, handler Handler) error {
	b.handler = handler

	if b.dropPending {
		if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
			return fmt.Errorf("dropping pending updates: %w", err)
		}
	}

	offset, err := b.offsets.Get()
	if err != nil {
		return fmt.Errorf("reading update offset: %w", err)
	}

	cfg := tgbotapi.NewUpdate(offset)
	cfg.Timeout = 60
	cfg.AllowedUpdates = []string{"message"}

	updates := b.api.GetUpdatesChan(cfg)

	slog.Info("Listening for messages", "bot", b.api.Self.UserName)

	var wg sync.WaitGroup
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			wg.Wait()
			return nil
		case update, ok := <-updates:
			if !ok {
				wg.Wait()
				return nil
			}

			if err := b.offsets.Put(update.UpdateID + 1); err != nil {
				slog.Warn("Failed to persist update offset", "error", err)
			}

			if update.Message == nil {
				continue
			}

			msg := update.Message
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.handleMessage(ctx, msg)
			}()
		}
	}
}

// handleMessage routes one message to the matching pipeline path
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, chatID, msg.Command())
	case len(msg.Photo) > 0:
		b.handlePhoto(ctx, chatID, msg.Photo)
	case msg.Document != nil:
		b.handleDocument(ctx, chatID, msg.Document)
	case strings.TrimSpace(msg.Text) != "":
		if err := b.handler.ProcessNote(ctx, chatID, msg.Text); err != nil {
			slog.Error("Error processing note", "chat_id", chatID, "error", err)
		}
	}
}

// handleCommand answers /start and ignores everything else
func (b *Bot) handleCommand(ctx context.Context, chatID int64, command string) {
	if command != "start" {
		return
	}
	if err := b.notifier.Send(ctx, chatID, expense.WelcomeMessage, expense.FormatPlain); err != nil {
		slog.Error("Error sending welcome message", "chat_id", chatID, "error", err)
	}
}

// handlePhoto downloads the largest size variant and runs the photo pipeline
func (b *Bot) handlePhoto(ctx context.Context, chatID int64, sizes []tgbotapi.PhotoSize) {
	photo := largestPhoto(sizes)

	data, err := b.download(ctx, photo.FileID)
	if err != nil {
		slog.Error("Error downloading photo", "chat_id", chatID, "error", err)
		b.reply(ctx, chatID, expense.PhotoFailureReply)
		return
	}

	// Telegram re-encodes photo uploads as JPEG
	if err := b.handler.ProcessPhoto(ctx, chatID, data, "image/jpeg"); err != nil {
		slog.Error("Error processing photo", "chat_id", chatID, "error", err)
	}
}

// handleDocument accepts receipts sent as files (PDF scans, HEIC photos from
// iPhones) and runs them through the photo pipeline
func (b *Bot) handleDocument(ctx context.Context, chatID int64, doc *tgbotapi.Document) {
	contentType := documentContentType(doc)
	if !isSupportedDocument(contentType) {
		b.reply(ctx, chatID, unsupportedDocumentReply)
		return
	}

	if doc.FileSize > maxDownloadSize {
		b.reply(ctx, chatID, documentTooLargeReply)
		return
	}

	data, err := b.download(ctx, doc.FileID)
	if err != nil {
		slog.Error("Error downloading document", "chat_id", chatID, "error", err)
		b.reply(ctx, chatID, expense.PhotoFailureReply)
		return
	}

	if err := b.handler.ProcessPhoto(ctx, chatID, data, contentType); err != nil {
		slog.Error("Error processing document", "chat_id", chatID, "error", err)
	}
}

// reply sends a plain-text message, logging delivery failures
func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.notifier.Send(ctx, chatID, text, expense.FormatPlain); err != nil {
		slog.Error("Error sending reply", "chat_id", chatID, "error", err)
	}
}

// download fetches a file from the Bot API file endpoint
func (b *Bot) download(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolving file URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download failed (status %d)", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if len(data) > maxDownloadSize {
		return nil, fmt.Errorf("file exceeds %d bytes", maxDownloadSize)
	}

	return data, nil
}

// largestPhoto picks the highest-resolution size variant Telegram offers
func largestPhoto(sizes []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	largest := sizes[0]
	for _, s := range sizes[1:] {
		if s.Width*s.Height > largest.Width*largest.Height {
			largest = s
		}
	}
	return largest
}

// documentContentType resolves a document's MIME type, falling back to the
// file extension when the client didn't declare one
func documentContentType(doc *tgbotapi.Document) string {
	if doc.MimeType != "" {
		return strings.ToLower(strings.TrimSpace(doc.MimeType))
	}

	switch strings.ToLower(filepath.Ext(doc.FileName)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}

// isSupportedDocument reports whether the pipeline can normalize this type
func isSupportedDocument(contentType string) bool {
	switch contentType {
	case "application/pdf", "image/png", "image/jpeg", "image/gif", "image/heic", "image/heif":
		return true
	}
	return false
}
