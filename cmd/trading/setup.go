package main

import (
	"strconv"
	"time"

	"github.com/rxtech-lab/crossover-trader/internal/logger"
	"github.com/rxtech-lab/crossover-trader/internal/notify"
	"github.com/rxtech-lab/crossover-trader/internal/trading/engine"
	tradingprovider "github.com/rxtech-lab/crossover-trader/internal/trading/provider"
	"github.com/rxtech-lab/crossover-trader/pkg/errors"
	"go.uber.org/zap"
)

const (
	envBinanceAPIKey    = "BINANCE_API_KEY"
	envBinanceSecretKey = "BINANCE_SECRET_KEY"
	envTelegramToken    = "TELEGRAM_TOKEN"
	envTelegramChatID   = "TELEGRAM_CHAT_ID"

	defaultSimulatedQuoteBalance = 1000.0
)

// exchangeConfig builds the provider configuration from the bot config and the environment.
func exchangeConfig(config engine.BotConfig, getenv func(string) string) (any, error) {
	switch tradingprovider.ProviderType(config.Provider) {
	case tradingprovider.ProviderBinancePaper, tradingprovider.ProviderBinanceLive:
		cfg := &tradingprovider.BinanceProviderConfig{
			ApiKey:    getenv(envBinanceAPIKey),
			SecretKey: getenv(envBinanceSecretKey),
		}
		if err := cfg.Validate(); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err,
				"%s and %s must be set for %s", envBinanceAPIKey, envBinanceSecretKey, config.Provider)
		}

		return cfg, nil

	case tradingprovider.ProviderSimulated:
		balance := config.InitialBalance
		if len(balance) == 0 {
			balance = map[string]float64{config.Symbol.QuoteAsset: defaultSimulatedQuoteBalance}
		}

		cfg := &tradingprovider.SimulatedProviderConfig{
			ApiKey:         getenv(envBinanceAPIKey),
			SecretKey:      getenv(envBinanceSecretKey),
			InitialBalance: balance,
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		return cfg, nil

	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported trading provider: %s", config.Provider)
	}
}

// telegramConfig reads the Telegram credentials. ok is false when no token is set.
func telegramConfig(getenv func(string) string) (notify.TelegramConfig, bool, error) {
	token := getenv(envTelegramToken)
	if token == "" {
		return notify.TelegramConfig{}, false, nil
	}

	chatID, err := strconv.ParseInt(getenv(envTelegramChatID), 10, 64)
	if err != nil {
		return notify.TelegramConfig{}, false, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err,
			"%s must be a numeric chat id", envTelegramChatID)
	}

	return notify.TelegramConfig{Token: token, ChatID: chatID}, true, nil
}

// telegramConnector opens a Telegram sink. notify.NewTelegramSink in production.
type telegramConnector func(config notify.TelegramConfig, timeout time.Duration) (notify.Sink, error)

func connectTelegram(config notify.TelegramConfig, timeout time.Duration) (notify.Sink, error) {
	return notify.NewTelegramSink(config, timeout)
}

// notificationSink picks Telegram when configured and reachable, and the event log otherwise.
// Only a malformed chat id is an error: notifications never keep the bot from starting.
func notificationSink(log *logger.Logger, getenv func(string) string, timeout time.Duration, connect telegramConnector) (notify.Sink, error) {
	cfg, ok, err := telegramConfig(getenv)
	if err != nil {
		return nil, err
	}

	if !ok {
		log.Info("Telegram not configured, notifications go to the event log",
			zap.String("token_env", envTelegramToken))

		return notify.NewLogSink(log), nil
	}

	telegram, err := connect(cfg, timeout)
	if err != nil {
		log.Warn("Telegram unavailable, notifications go to the event log", zap.Error(err))

		return notify.NewLogSink(log), nil
	}

	return telegram, nil
}

// newNotifier returns a dispatcher delivering to the sink chosen by notificationSink.
func newNotifier(log *logger.Logger, getenv func(string) string, timeout time.Duration, connect telegramConnector) (*notify.Dispatcher, error) {
	sink, err := notificationSink(log, getenv, timeout, connect)
	if err != nil {
		return nil, err
	}

	dispatcherConfig := notify.DefaultDispatcherConfig()
	dispatcherConfig.SendTimeout = timeout

	return notify.NewDispatcher(sink, dispatcherConfig, log), nil
}
