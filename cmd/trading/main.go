package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rxtech-lab/crossover-trader/internal/logger"
	"github.com/rxtech-lab/crossover-trader/internal/trading/engine"
	enginev1 "github.com/rxtech-lab/crossover-trader/internal/trading/engine/engine_v1"
	tradingprovider "github.com/rxtech-lab/crossover-trader/internal/trading/provider"
	"github.com/rxtech-lab/crossover-trader/internal/types"
	"github.com/rxtech-lab/crossover-trader/internal/version"
	"github.com/rxtech-lab/crossover-trader/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// loadConfig reads the config file when one is given and applies the command line overrides.
func loadConfig(cmd *cli.Command) (engine.BotConfig, error) {
	config := engine.DefaultBotConfig()

	if path := cmd.String("config"); path != "" {
		loaded, err := engine.LoadConfig(path)
		if err != nil {
			return engine.BotConfig{}, err
		}

		config = loaded
	}

	if cmd.IsSet("provider") {
		config.Provider = cmd.String("provider")
	}

	if cmd.IsSet("data") {
		config.DataOutputPath = cmd.String("data")
	}

	if cmd.IsSet("log-dir") {
		config.Log.Dir = cmd.String("log-dir")
	}

	if err := config.Validate(); err != nil {
		return engine.BotConfig{}, err
	}

	return config, nil
}

// runAction starts the control loop and blocks until it stops.
func runAction(ctx context.Context, cmd *cli.Command) error {
	if envFile := cmd.String("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	eventLog, err := logger.NewFileLogger(config.Log, time.Now())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer eventLog.Close()

	providerConfig, err := exchangeConfig(config, os.Getenv)
	if err != nil {
		return err
	}

	exchange, err := tradingprovider.NewExchange(tradingprovider.ProviderType(config.Provider), providerConfig)
	if err != nil {
		return fmt.Errorf("failed to create trading provider: %w", err)
	}

	notifier, err := newNotifier(eventLog, os.Getenv, config.Timing.RequestTimeout, connectTelegram)
	if err != nil {
		return err
	}
	defer notifier.Close()

	loop, err := enginev1.NewControlLoopV1(eventLog)
	if err != nil {
		return fmt.Errorf("failed to create control loop: %w", err)
	}

	if err := loop.Initialize(config); err != nil {
		return err
	}

	if err := loop.SetMarketDataFeed(exchange); err != nil {
		return err
	}

	if err := loop.SetOrderExecutor(exchange); err != nil {
		return err
	}

	if err := loop.SetAccountQuery(exchange); err != nil {
		return err
	}

	if err := loop.SetNotifier(notifier); err != nil {
		return err
	}

	if err := loop.SetDataOutputPath(config.DataOutputPath); err != nil {
		return err
	}

	onStart := engine.OnEngineStartCallback(func(config engine.BotConfig, runPath string) error {
		eventLog.Info("Engine started",
			zap.String("provider", config.Provider),
			zap.String("symbol", config.Symbol.Symbol),
			zap.String("run_path", runPath),
		)

		return nil
	})
	onStop := engine.OnEngineStopCallback(func(err error) {
		if err != nil && !errors.Is(err, context.Canceled) {
			eventLog.Error("Engine stopped with error", zap.Error(err))

			return
		}

		eventLog.Info("Engine stopped")
	})
	onTrade := engine.OnTradeRecordedCallback(func(trade types.TradeRecord) {
		eventLog.Info("Trade recorded",
			zap.Int("sequence_no", trade.SequenceNo),
			zap.String("exit_reason", string(trade.ExitReason)),
			zap.String("price_pnl", trade.PricePnL.StringFixed(2)),
		)
	})

	callbacks := engine.ControlLoopCallbacks{
		OnEngineStart:   &onStart,
		OnEngineStop:    &onStop,
		OnCycle:         nil,
		OnOrderFilled:   nil,
		OnOrderFailed:   nil,
		OnTradeRecorded: &onTrade,
		OnSummary:       nil,
		OnError:         nil,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = loop.Run(ctx, callbacks)
	if errors.Is(err, context.Canceled) {
		eventLog.Info("Trading stopped by user")

		return nil
	}

	return err
}

// schemaAction prints the JSON schema of the bot config or of a provider config.
func schemaAction(_ context.Context, cmd *cli.Command) error {
	var (
		schema string
		err    error
	)

	if provider := cmd.String("provider"); provider != "" {
		schema, err = tradingprovider.GetProviderConfigSchema(provider)
	} else {
		schema, err = engine.GetConfigSchema()
	}

	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "trading",
		Usage:   "EMA/RSI crossover trading bot for a single spot pair",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run the trading loop until interrupted",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the YAML bot config. Defaults are used when omitted",
					},
					&cli.StringFlag{
						Name:  "env-file",
						Usage: "Path to a .env file holding the exchange and Telegram credentials",
						Value: ".env",
					},
					&cli.StringFlag{
						Name:    "provider",
						Aliases: []string{"p"},
						Usage: fmt.Sprintf("Trading provider (%s, %s, %s)",
							tradingprovider.ProviderBinancePaper, tradingprovider.ProviderBinanceLive, tradingprovider.ProviderSimulated),
					},
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "Directory of the session folders (stats.yaml, trades.parquet)",
					},
					&cli.StringFlag{
						Name:  "log-dir",
						Usage: "Directory of the event log files",
					},
				},
				Action: runAction,
			},
			{
				Name:  "schema",
				Usage: "Print the JSON schema of the bot config",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Print the schema of this provider's config instead",
					},
				},
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
