package engine

import (
	"context"

	"github.com/rxtech-lab/crossover-trader/internal/notify"
	tradingprovider "github.com/rxtech-lab/crossover-trader/internal/trading/provider"
	"github.com/rxtech-lab/crossover-trader/internal/types"
)

// Lifecycle callback types for the control loop.
// Callbacks run synchronously on the loop goroutine and receive copies.

// OnEngineStartCallback is called after the startup checks passed.
// runPath is the session folder, or an empty string when no output path is set.
type OnEngineStartCallback func(config BotConfig, runPath string) error

// OnEngineStopCallback is called when the loop stops (always called via defer).
type OnEngineStopCallback func(err error)

// OnCycleCallback is called after every cycle that fetched candles.
type OnCycleCallback func(cycle CycleReport)

// OnOrderFilledCallback is called for every confirmed fill.
type OnOrderFilledCallback func(fill types.Fill)

// OnOrderFailedCallback is called when an order was rejected or its outcome is unknown.
type OnOrderFailedCallback func(side types.PurchaseType, err error)

// OnTradeRecordedCallback is called when a round trip has been recorded in the ledger.
type OnTradeRecordedCallback func(trade types.TradeRecord)

// OnSummaryCallback is called every SummaryEvery cycles.
type OnSummaryCallback func(stats types.LedgerStats)

// OnErrorCallback is called when a non-fatal error occurs.
type OnErrorCallback func(err error)

// ControlLoopCallbacks holds all lifecycle callback functions for the control loop.
// All fields are pointers - nil means no callback will be invoked.
type ControlLoopCallbacks struct {
	// OnEngineStart is called after the startup checks passed. Returning an error aborts Run.
	OnEngineStart *OnEngineStartCallback

	// OnEngineStop is called when the loop stops.
	OnEngineStop *OnEngineStopCallback

	// OnCycle is called after every cycle that fetched candles.
	OnCycle *OnCycleCallback

	// OnOrderFilled is called for every confirmed fill.
	OnOrderFilled *OnOrderFilledCallback

	// OnOrderFailed is called when an order failed.
	OnOrderFailed *OnOrderFailedCallback

	// OnTradeRecorded is called after a round trip was recorded.
	OnTradeRecorded *OnTradeRecordedCallback

	// OnSummary is called with the cumulative statistics every SummaryEvery cycles.
	OnSummary *OnSummaryCallback

	// OnError is called when a non-fatal error occurs.
	OnError *OnErrorCallback
}

// CycleReport describes what one cycle observed and decided.
type CycleReport struct {
	Cycle     int
	Price     float64
	Indicator types.IndicatorPoint
	// Intent is the detector output; it is NONE when the cycle was spent on a risk exit
	Intent   types.Intent
	Position types.Position
}

// ControlLoop is the periodic trading loop: fetch candles, compute indicators,
// check risk exits, evaluate signals and act on at most one order per cycle.
//
//nolint:interfacebloat // the loop is configured through setters before Run
type ControlLoop interface {
	// Initialize validates the configuration and builds the decision components.
	Initialize(config BotConfig) error

	// SetMarketDataFeed configures the candle and price source.
	SetMarketDataFeed(feed tradingprovider.MarketDataFeed) error

	// SetOrderExecutor configures where market orders are sent.
	SetOrderExecutor(executor tradingprovider.OrderExecutor) error

	// SetAccountQuery configures the balance source.
	SetAccountQuery(account tradingprovider.AccountQuery) error

	// SetNotifier configures the operator notifications. Optional.
	SetNotifier(notifier notify.Notifier) error

	// SetDataOutputPath sets the base directory of the session folders (stats.yaml, trades.parquet).
	// Must be called before Run() if persistence is desired.
	SetDataOutputPath(path string) error

	// Run executes cycles until ctx is cancelled or a fatal error occurs.
	// Cancellation is observed between cycles only.
	Run(ctx context.Context, callbacks ControlLoopCallbacks) error
}
