package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"atelier/internal/model"
	"atelier/internal/schedule"
)

// Notifier pushes booking events to the shop owner. Implementations must
// never fail the calling flow; delivery problems are logged and dropped.
type Notifier interface {
	BookingCreated(b *model.Booking)
	BookingCancelled(b *model.Booking)
}

// Noop is the disabled notifier.
type Noop struct{}

func (Noop) BookingCreated(*model.Booking)   {}
func (Noop) BookingCancelled(*model.Booking) {}

// Telegram notifies the admin chat about reservations.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zerolog.Logger
}

func NewTelegram(token string, chatID int64, logger *zerolog.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID, logger: logger}, nil
}

func (t *Telegram) BookingCreated(b *model.Booking) {
	if b.Kind == model.BookingAdminBlock {
		return
	}
	t.send(fmt.Sprintf("📅 Nouveau RDV : %s à %s — %s (%s)",
		formatDate(b.Date), b.Time, b.DisplayName(), b.Phone))
}

func (t *Telegram) BookingCancelled(b *model.Booking) {
	if b.Kind == model.BookingAdminBlock {
		return
	}
	t.send(fmt.Sprintf("❌ RDV annulé : %s à %s — %s",
		formatDate(b.Date), b.Time, b.DisplayName()))
}

func (t *Telegram) send(text string) {
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Error().Err(err).Msg("telegram notify failed")
	}
}

func formatDate(dateKey string) string {
	d, err := model.ParseDateKey(dateKey)
	if err != nil {
		return dateKey
	}
	return schedule.FormatDateFR(d)
}
