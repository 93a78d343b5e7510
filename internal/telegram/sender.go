package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vhictorlhanceatendido123-sudo/ocr-telegram-bot/internal/expense"
)

// Sender delivers outgoing messages through the Telegram Bot API
type Sender struct {
	api *tgbotapi.BotAPI
}

// NewSender creates a Sender on an existing bot client
func NewSender(api *tgbotapi.BotAPI) *Sender {
	return &Sender{api: api}
}

// Send sends text to a chat. The underlying client has no context support,
// so ctx is accepted for interface fit only.
func (s *Sender) Send(ctx context.Context, chatID int64, text string, format expense.Format) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if format == expense.FormatMarkdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}

	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	return nil
}
