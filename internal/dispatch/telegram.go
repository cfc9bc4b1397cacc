package dispatch

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/joseporiolcarne/backtraderalerts/internal/types"
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

// telegramSender is the slice of the bot API the notifier uses.
type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier pushes alerts to a Telegram chat.
type TelegramNotifier struct {
	bot    telegramSender
	chatID int64
}

var _ Notifier = (*TelegramNotifier)(nil)

// NewTelegramNotifier authenticates against the bot API. An invalid token
// fails here, at construction, not at the first delivery.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotifierInitFailed, "telegram bot authentication failed", err)
	}

	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (t *TelegramNotifier) Name() string {
	return "telegram"
}

func (t *TelegramNotifier) Notify(_ context.Context, event types.SignalEvent) error {
	msg := tgbotapi.NewMessage(t.chatID, FormatMessage(event))
	if _, err := t.bot.Send(msg); err != nil {
		return errors.Wrap(errors.ErrCodeDispatchFailed, "telegram delivery failed", err)
	}

	return nil
}
