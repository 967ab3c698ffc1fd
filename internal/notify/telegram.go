package notify

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	gobot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rxtech-lab/crossover-trader/internal/logger"
	"github.com/rxtech-lab/crossover-trader/pkg/errors"
	"go.uber.org/zap"
)

// TelegramConfig holds the bot credentials. Both values usually come from the environment.
type TelegramConfig struct {
	Token  string `yaml:"token" json:"token" validate:"required"`
	ChatID int64  `yaml:"chat_id" json:"chat_id" validate:"required"`
}

// Validate validates the TelegramConfig struct.
func (c TelegramConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid telegram config", err)
	}

	return nil
}

// telegramSender is the part of the bot API the sink needs.
type telegramSender interface {
	Send(c gobot.Chattable) (gobot.Message, error)
}

// TelegramSink sends messages to a single Telegram chat.
type TelegramSink struct {
	bot    telegramSender
	chatID int64
}

var _ Sink = (*TelegramSink)(nil)

// NewTelegramSink connects to the Telegram bot API.
func NewTelegramSink(config TelegramConfig, timeout time.Duration) (*TelegramSink, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	bot, err := gobot.NewBotAPIWithClient(config.Token, gobot.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotificationFailed, "failed to connect to telegram", err)
	}

	bot.Debug = false

	return &TelegramSink{bot: bot, chatID: config.ChatID}, nil
}

// Send implements Sink. The bot API is synchronous; ctx is only checked before sending.
func (t *TelegramSink) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := t.bot.Send(gobot.NewMessage(t.chatID, msg.String())); err != nil {
		return errors.Wrap(errors.ErrCodeNotificationFailed, "failed to send telegram message", err)
	}

	return nil
}

// LogSink writes notifications to the event log. It is used when Telegram is not configured.
type LogSink struct {
	logger *logger.Logger
}

var _ Sink = (*LogSink)(nil)

// NewLogSink creates a sink backed by log.
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{logger: log}
}

// Send implements Sink.
func (l *LogSink) Send(_ context.Context, msg Message) error {
	l.logger.Info("Notification",
		zap.String("event", string(msg.Event)),
		zap.String("text", msg.Text),
	)

	return nil
}
