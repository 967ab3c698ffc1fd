package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rxtech-lab/crossover-trader/internal/replay"
	tradingprovider "github.com/rxtech-lab/crossover-trader/internal/trading/provider"
	"github.com/urfave/cli/v3"
)

// binanceKlinesMaxLimit is the largest page the klines endpoint returns.
const binanceKlinesMaxLimit = 1000

// downloadAction fetches the most recent candles of a symbol and writes them as CSV,
// ready to be fed to the replay tool.
func downloadAction(ctx context.Context, cmd *cli.Command) error {
	_ = godotenv.Load()

	symbol := cmd.String("symbol")
	interval := cmd.String("interval")
	limit := cmd.Int("limit")
	output := cmd.String("output")

	if limit <= 0 || limit > binanceKlinesMaxLimit {
		return fmt.Errorf("limit must be between 1 and %d, got %d", binanceKlinesMaxLimit, limit)
	}

	provider, err := tradingprovider.NewBinanceProvider(tradingprovider.BinanceProviderConfig{
		ApiKey:    os.Getenv("BINANCE_API_KEY"),
		SecretKey: os.Getenv("BINANCE_SECRET_KEY"),
	}, cmd.Bool("testnet"))
	if err != nil {
		return fmt.Errorf("failed to create binance provider: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()

	log.Printf("Downloading %d %s candles of %s...", limit, interval, symbol)

	candles, err := provider.GetCandles(ctx, symbol, interval, limit)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	if err := replay.WriteCandles(output, candles); err != nil {
		return err
	}

	log.Printf("Wrote %d candles to %s", len(candles), output)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "market",
		Usage: "Download recent candles from Binance into a CSV file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "symbol",
				Aliases: []string{"s"},
				Usage:   "Exchange symbol, e.g. BTCEUR",
				Value:   "BTCEUR",
			},
			&cli.StringFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Candle interval, e.g. 5m",
				Value:   "5m",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Number of candles to download",
				Value:   binanceKlinesMaxLimit,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path of the CSV file to write",
				Value:   "candles.csv",
			},
			&cli.BoolFlag{
				Name:  "testnet",
				Usage: "Use the Binance testnet endpoints",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout of the download request",
				Value: 30 * time.Second,
			},
		},
		Action: downloadAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
