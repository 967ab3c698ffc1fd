package engine_v1

import (
	"context"
	"fmt"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/crossover-trader/internal/indicator"
	"github.com/rxtech-lab/crossover-trader/internal/ledger"
	"github.com/rxtech-lab/crossover-trader/internal/logger"
	"github.com/rxtech-lab/crossover-trader/internal/notify"
	"github.com/rxtech-lab/crossover-trader/internal/position"
	"github.com/rxtech-lab/crossover-trader/internal/signal"
	"github.com/rxtech-lab/crossover-trader/internal/trading/engine"
	"github.com/rxtech-lab/crossover-trader/internal/trading/engine/engine_v1/session"
	"github.com/rxtech-lab/crossover-trader/internal/trading/engine/engine_v1/writers"
	tradingprovider "github.com/rxtech-lab/crossover-trader/internal/trading/provider"
	"github.com/rxtech-lab/crossover-trader/internal/types"
	"github.com/rxtech-lab/crossover-trader/internal/version"
	"github.com/rxtech-lab/crossover-trader/pkg/errors"
	"go.uber.org/zap"
)

// pinger is implemented by collaborators that can verify connectivity at startup.
type pinger interface {
	Ping(ctx context.Context) error
}

// ControlLoopV1 implements the engine.ControlLoop interface.
// The Run goroutine is the only writer of the position and the ledger.
type ControlLoopV1 struct {
	config   engine.BotConfig
	feed     tradingprovider.MarketDataFeed
	executor tradingprovider.OrderExecutor
	account  tradingprovider.AccountQuery
	notifier notify.Notifier
	log      *logger.Logger

	detector *signal.Detector
	position *position.Manager
	ledger   *ledger.Ledger

	initialized bool
	cycles      int

	// Session output
	dataOutputPath string
	sessionManager *session.SessionManager
	tradesWriter   *writers.TradesWriter

	sleep func(ctx context.Context, d time.Duration) bool
	now   func() time.Time
}

// NewControlLoopV1 creates a control loop logging to log. A nil log uses the production logger.
func NewControlLoopV1(log *logger.Logger) (engine.ControlLoop, error) {
	if log == nil {
		var err error

		log, err = logger.NewLogger()
		if err != nil {
			return nil, err
		}
	}

	return newControlLoopV1(log), nil
}

func newControlLoopV1(log *logger.Logger) *ControlLoopV1 {
	return &ControlLoopV1{
		config:         engine.BotConfig{}, //nolint:exhaustruct // initialized via Initialize()
		feed:           nil,
		executor:       nil,
		account:        nil,
		notifier:       notify.NoopNotifier{},
		log:            log,
		detector:       nil,
		position:       nil,
		ledger:         nil,
		initialized:    false,
		cycles:         0,
		dataOutputPath: "",
		sessionManager: nil,
		tradesWriter:   nil,
		sleep:          sleepContext,
		now:            time.Now,
	}
}

// Initialize implements engine.ControlLoop.
func (e *ControlLoopV1) Initialize(config engine.BotConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if err := config.IndicatorParams().Validate(); err != nil {
		return err
	}

	detector, err := signal.NewDetector(config.SignalConfig())
	if err != nil {
		return err
	}

	manager, err := position.NewManager(config.PositionConfig())
	if err != nil {
		return err
	}

	e.config = config
	e.detector = detector
	e.position = manager
	e.ledger = ledger.NewLedger(config.Symbol.Symbol, config.Risk.FeePerTrade, e.log)
	e.cycles = 0

	if e.dataOutputPath == "" {
		e.dataOutputPath = config.DataOutputPath
	}

	e.initialized = true

	e.log.Debug("Control loop initialized",
		zap.String("symbol", config.Symbol.Symbol),
		zap.String("interval", config.Timing.Interval),
		zap.Int("candle_limit", config.CandleLimit()),
	)

	return nil
}

// SetMarketDataFeed implements engine.ControlLoop.
func (e *ControlLoopV1) SetMarketDataFeed(feed tradingprovider.MarketDataFeed) error {
	e.feed = feed
	e.log.Debug("Market data feed set")

	return nil
}

// SetOrderExecutor implements engine.ControlLoop.
func (e *ControlLoopV1) SetOrderExecutor(executor tradingprovider.OrderExecutor) error {
	e.executor = executor
	e.log.Debug("Order executor set")

	return nil
}

// SetAccountQuery implements engine.ControlLoop.
func (e *ControlLoopV1) SetAccountQuery(account tradingprovider.AccountQuery) error {
	e.account = account
	e.log.Debug("Account query set")

	return nil
}

// SetNotifier implements engine.ControlLoop.
func (e *ControlLoopV1) SetNotifier(notifier notify.Notifier) error {
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}

	e.notifier = notifier

	return nil
}

// SetDataOutputPath implements engine.ControlLoop.
func (e *ControlLoopV1) SetDataOutputPath(path string) error {
	e.dataOutputPath = path

	return nil
}

// Run implements engine.ControlLoop.
//
//nolint:gocyclo // Run orchestrates startup, the cycle loop and shutdown
func (e *ControlLoopV1) Run(ctx context.Context, callbacks engine.ControlLoopCallbacks) error {
	var runErr error

	defer func() {
		e.shutdown(runErr)

		if callbacks.OnEngineStop != nil {
			(*callbacks.OnEngineStop)(runErr)
		}
	}()

	if err := e.preRunCheck(); err != nil {
		runErr = err

		return err
	}

	if err := e.startup(ctx); err != nil {
		runErr = err
		e.notifier.Notify(notify.EventFatal, fmt.Sprintf("Startup failed: %v", err))

		return err
	}

	if callbacks.OnEngineStart != nil {
		runPath := ""
		if e.sessionManager != nil {
			runPath = e.sessionManager.GetCurrentRunPath()
		}

		if err := (*callbacks.OnEngineStart)(e.config, runPath); err != nil {
			runErr = errors.Wrap(errors.ErrCodeUnknown, "OnEngineStart callback failed", err)

			return runErr
		}
	}

	e.notifier.Notify(notify.EventAlert, fmt.Sprintf("Bot started trading %s (%s)", e.config.Symbol.Symbol, e.config.Timing.Interval))

	for {
		if err := ctx.Err(); err != nil {
			runErr = err

			return runErr
		}

		delay, err := e.runCycle(ctx, callbacks)
		if err != nil {
			if errors.IsFatal(err) {
				e.log.Error("Fatal error, stopping control loop", zap.Error(err))
				e.notifier.Notify(notify.EventFatal, fmt.Sprintf("Bot stopped: %v", err))
				runErr = err

				return runErr
			}

			e.reportError(callbacks, "Unexpected error in cycle", err)

			delay = e.config.Timing.ErrorBackoff
		}

		if !e.sleep(ctx, delay) {
			runErr = ctx.Err()

			return runErr
		}
	}
}

// preRunCheck validates that all required components are configured before running.
func (e *ControlLoopV1) preRunCheck() error {
	if !e.initialized {
		return errors.New(errors.ErrCodeInvalidConfiguration, "control loop not initialized - call Initialize() first")
	}

	if e.feed == nil {
		return errors.New(errors.ErrCodeInvalidConfiguration, "market data feed not set - call SetMarketDataFeed() first")
	}

	if e.executor == nil {
		return errors.New(errors.ErrCodeInvalidConfiguration, "order executor not set - call SetOrderExecutor() first")
	}

	if e.account == nil {
		return errors.New(errors.ErrCodeInvalidConfiguration, "account query not set - call SetAccountQuery() first")
	}

	return nil
}

// startup checks connectivity, logs the banner and prepares the session output.
func (e *ControlLoopV1) startup(ctx context.Context) error {
	for _, collaborator := range []any{e.feed, e.executor, e.account} {
		p, ok := collaborator.(pinger)
		if !ok {
			continue
		}

		reqCtx, cancel := e.requestContext(ctx)
		err := p.Ping(reqCtx)

		cancel()

		if err != nil {
			if !errors.IsFatal(err) {
				err = errors.Wrap(errors.ErrCodeConnectivityFailed, "connectivity check failed", err)
			}

			e.log.Error("Connectivity check failed", zap.Error(err))

			return err
		}

		// one check covers collaborators backed by the same exchange
		break
	}

	if registrar, ok := e.executor.(tradingprovider.SymbolRegistrar); ok {
		registrar.RegisterSymbol(e.config.Symbol.Symbol, e.config.Symbol.BaseAsset, e.config.Symbol.QuoteAsset)
	}

	e.logBanner()
	e.logBalances(ctx)

	runID := ""
	sessionStart := e.now()

	if e.dataOutputPath != "" {
		e.sessionManager = session.NewSessionManager(e.log)
		if err := e.sessionManager.Initialize(e.dataOutputPath); err != nil {
			return err
		}

		runID = e.sessionManager.GetRunID()
		sessionStart = e.sessionManager.GetSessionStart()

		if err := e.openSessionFiles(); err != nil {
			return err
		}
	}

	e.ledger.Initialize(runID, sessionStart)

	return nil
}

// openSessionFiles points the trade journal and the stats file at the current run folder.
func (e *ControlLoopV1) openSessionFiles() error {
	if e.tradesWriter != nil {
		if err := e.tradesWriter.Close(); err != nil {
			e.log.Warn("Failed to close trades writer", zap.Error(err))
		}
	}

	tradesPath := e.sessionManager.GetFilePath(session.TradesFileName)
	statsPath := e.sessionManager.GetFilePath(session.StatsFileName)

	e.tradesWriter = writers.NewTradesWriter(tradesPath)
	if err := e.tradesWriter.Initialize(); err != nil {
		e.tradesWriter = nil

		return errors.Wrap(errors.ErrCodeSessionFailed, "failed to initialize trades writer", err)
	}

	e.ledger.SetFilePaths(tradesPath, statsPath)

	return nil
}

// runCycle executes one fetch-compute-decide-act cycle and returns how long to wait before the next.
func (e *ControlLoopV1) runCycle(ctx context.Context, callbacks engine.ControlLoopCallbacks) (time.Duration, error) {
	candles, err := e.fetchCandles(ctx)
	if err != nil {
		if errors.IsFatal(err) {
			return 0, err
		}

		e.reportError(callbacks, "Failed to fetch candles, retrying", err)

		return e.config.Timing.RetryDelay, nil
	}

	e.cycles++
	e.handleDateBoundary()

	price := e.currentPrice(ctx, candles)

	report := engine.CycleReport{
		Cycle:     e.cycles,
		Price:     price,
		Indicator: types.IndicatorPoint{},
		Intent:    types.NoIntent(types.SignalRuleNone, "no signal"),
		Position:  e.position.Snapshot(),
	}

	series, err := indicator.Compute(candles, e.config.IndicatorParams())
	hasSeries := err == nil

	if err != nil {
		if !errors.IsInsufficientDataError(err) {
			return 0, err
		}

		e.log.Info("Not enough candles for indicators yet", zap.Error(err))
		report.Intent = types.NoIntent(types.SignalRuleInsufficientData, err.Error())
	} else {
		report.Indicator = series.At(-1)
	}

	riskExit := position.RiskExitNone
	if e.position.IsOpen() {
		riskExit = e.position.CheckRiskExit(price)
	}

	switch {
	case riskExit != position.RiskExitNone:
		e.log.Info("Risk exit triggered",
			zap.String("exit", string(riskExit)),
			zap.Float64("price", price),
		)

		report.Intent = types.NoIntent(types.SignalRuleNone, fmt.Sprintf("%s at %.2f", riskExit, price))

		if err := e.closePosition(ctx, callbacks, riskExit.ExitReason()); err != nil {
			return 0, err
		}
	case hasSeries:
		report.Intent = e.detector.Evaluate(series, e.position.IsOpen())

		if err := e.actOnIntent(ctx, callbacks, report.Intent); err != nil {
			return 0, err
		}
	}

	report.Position = e.position.Snapshot()

	e.log.Debug("Cycle completed",
		zap.Int("cycle", e.cycles),
		zap.Float64("price", price),
		zap.Float64("ema_fast", report.Indicator.EMAFast),
		zap.Float64("ema_slow", report.Indicator.EMASlow),
		zap.Float64("rsi", report.Indicator.RSI),
		zap.String("action", string(report.Intent.Action)),
		zap.Bool("position_open", report.Position.IsOpen),
	)

	if e.cycles%e.config.Timing.SummaryEvery == 0 {
		e.emitSummary(ctx, callbacks)
	}

	if callbacks.OnCycle != nil {
		(*callbacks.OnCycle)(report)
	}

	return e.config.Timing.PollInterval, nil
}

func (e *ControlLoopV1) fetchCandles(ctx context.Context) ([]types.Candle, error) {
	reqCtx, cancel := e.requestContext(ctx)
	defer cancel()

	candles, err := e.feed.GetCandles(reqCtx, e.config.Symbol.Symbol, e.config.Timing.Interval, e.config.CandleLimit())
	if err != nil {
		return nil, err
	}

	if len(candles) == 0 {
		return nil, errors.Newf(errors.ErrCodeMarketDataEmpty, "no candles returned for %s", e.config.Symbol.Symbol)
	}

	return candles, nil
}

// currentPrice returns the latest ticker price, or the last close when the ticker is unavailable.
func (e *ControlLoopV1) currentPrice(ctx context.Context, candles []types.Candle) float64 {
	lastClose := candles[len(candles)-1].Close

	reqCtx, cancel := e.requestContext(ctx)
	defer cancel()

	price, err := e.feed.LatestPrice(reqCtx, e.config.Symbol.Symbol)
	if err != nil || price <= 0 {
		e.log.Debug("Ticker price unavailable, using last close",
			zap.Float64("last_close", lastClose),
			zap.Error(err),
		)

		return lastClose
	}

	return price
}

func (e *ControlLoopV1) actOnIntent(ctx context.Context, callbacks engine.ControlLoopCallbacks, intent types.Intent) error {
	isOpen := e.position.IsOpen()

	switch {
	case intent.Action == types.SignalActionBuy && !isOpen:
		e.log.Info("Buy signal", zap.String("rule", string(intent.Rule)), zap.String("reason", intent.Reason))

		return e.openPosition(ctx, callbacks)
	case intent.Action == types.SignalActionSell && isOpen:
		e.log.Info("Sell signal", zap.String("rule", string(intent.Rule)), zap.String("reason", intent.Reason))

		return e.closePosition(ctx, callbacks, types.ExitReasonSignal)
	case intent.Action != types.SignalActionNone:
		e.log.Debug("Signal ignored for current position state",
			zap.String("action", string(intent.Action)),
			zap.Bool("position_open", isOpen),
		)
	}

	return nil
}

// openPosition buys the configured quantity. The position only opens on a confirmed fill.
func (e *ControlLoopV1) openPosition(ctx context.Context, callbacks engine.ControlLoopCallbacks) error {
	balance, err := e.freeBalance(ctx, e.config.Symbol.QuoteAsset)
	if err != nil {
		e.log.Warn("Failed to snapshot balance before buy", zap.Error(err))
		e.ledger.ClearEntryBalance()
	} else {
		e.ledger.SetEntryBalance(balance)
	}

	reqCtx, cancel := e.requestContext(ctx)
	fill, err := e.executor.MarketBuy(reqCtx, e.config.Symbol.Symbol, e.config.Risk.Quantity)

	cancel()

	if err != nil {
		e.ledger.ClearEntryBalance()
		e.orderFailed(callbacks, types.PurchaseTypeBuy, err)

		if errors.IsFatal(err) {
			return err
		}

		return nil
	}

	quantity := fill.Quantity
	if quantity <= 0 {
		quantity = e.config.Risk.Quantity
	}

	pos, err := e.position.Open(fill.Price, quantity, fill.FilledAt)
	if err != nil {
		return err
	}

	e.log.Info("Position opened",
		zap.String("order_id", fill.OrderID),
		zap.Float64("entry_price", fill.Price),
		zap.Float64("quantity", quantity),
		zap.Float64("stop_loss", pos.StopLossPrice.Unwrap()),
		zap.Float64("take_profit", pos.TakeProfitPrice.Unwrap()),
	)

	if callbacks.OnOrderFilled != nil {
		(*callbacks.OnOrderFilled)(fill)
	}

	e.notifier.Notify(notify.EventBuy, fmt.Sprintf("Bought %.8f %s at %.2f %s (SL %.2f, TP %.2f)",
		quantity, e.config.Symbol.BaseAsset, fill.Price, e.config.Symbol.QuoteAsset,
		pos.StopLossPrice.Unwrap(), pos.TakeProfitPrice.Unwrap()))

	return nil
}

// closePosition sells the held quantity. The position only closes on a confirmed fill.
func (e *ControlLoopV1) closePosition(ctx context.Context, callbacks engine.ControlLoopCallbacks, reason types.ExitReason) error {
	snapshot := e.position.Snapshot()

	reqCtx, cancel := e.requestContext(ctx)
	fill, err := e.executor.MarketSell(reqCtx, e.config.Symbol.Symbol, snapshot.Quantity)

	cancel()

	if err != nil {
		e.orderFailed(callbacks, types.PurchaseTypeSell, err)

		if errors.IsFatal(err) {
			return err
		}

		return nil
	}

	if _, err := e.position.Close(); err != nil {
		return err
	}

	exitBalance := optional.None[float64]()

	balance, err := e.freeBalance(ctx, e.config.Symbol.QuoteAsset)
	if err != nil {
		e.log.Warn("Failed to read balance after sell", zap.Error(err))
	} else {
		exitBalance = optional.Some(balance)
	}

	record, err := e.ledger.RecordTrade(ledger.ClosedTrade{
		EntryPrice:  snapshot.EntryPrice.Unwrap(),
		ExitPrice:   fill.Price,
		Quantity:    snapshot.Quantity,
		Reason:      reason,
		OpenedAt:    snapshot.OpenedAt,
		ClosedAt:    fill.FilledAt,
		ExitBalance: exitBalance,
		Fee:         optional.None[float64](),
	})
	if err != nil {
		return err
	}

	if e.tradesWriter != nil {
		if err := e.tradesWriter.Write(record); err != nil {
			e.log.Warn("Failed to journal trade", zap.Error(err))
		}
	}

	if err := e.ledger.WriteStatsYAML(e.cycles); err != nil {
		e.log.Warn("Failed to write stats", zap.Error(err))
	}

	if callbacks.OnOrderFilled != nil {
		(*callbacks.OnOrderFilled)(fill)
	}

	if callbacks.OnTradeRecorded != nil {
		(*callbacks.OnTradeRecorded)(record)
	}

	e.notifier.Notify(notify.EventSell, fmt.Sprintf("Sold %.8f %s at %.2f %s (%s), PnL %s %s",
		snapshot.Quantity, e.config.Symbol.BaseAsset, fill.Price, e.config.Symbol.QuoteAsset,
		reason, record.PricePnL.StringFixed(2), e.config.Symbol.QuoteAsset))

	return nil
}

func (e *ControlLoopV1) orderFailed(callbacks engine.ControlLoopCallbacks, side types.PurchaseType, err error) {
	e.log.Error("Order failed",
		zap.String("side", string(side)),
		zap.Error(err),
	)

	if callbacks.OnOrderFailed != nil {
		(*callbacks.OnOrderFailed)(side, err)
	}

	e.notifier.Notify(notify.EventError, fmt.Sprintf("%s order failed: %v", side, err))
}

func (e *ControlLoopV1) reportError(callbacks engine.ControlLoopCallbacks, message string, err error) {
	e.log.Warn(message, zap.Error(err))

	if callbacks.OnError != nil {
		(*callbacks.OnError)(err)
	}

	e.notifier.Notify(notify.EventError, fmt.Sprintf("%s: %v", message, err))
}

// emitSummary reports the cumulative statistics on every channel.
func (e *ControlLoopV1) emitSummary(ctx context.Context, callbacks engine.ControlLoopCallbacks) {
	stats := e.ledger.Stats(e.cycles)

	e.log.Info("Summary",
		zap.Int("cycles", stats.Cycles),
		zap.Int("trades", stats.TotalTrades),
		zap.Int("winning_trades", stats.WinningTrades),
		zap.Int("losing_trades", stats.LosingTrades),
		zap.Float64("cumulative_price_pnl", stats.CumulativePricePnL),
		zap.Float64("cumulative_balance_delta", stats.CumulativeBalanceDelta),
		zap.Float64("total_fees", stats.TotalFees),
		zap.Float64("max_drawdown", stats.MaxDrawdown),
	)

	e.logBalances(ctx)

	if err := e.ledger.WriteStatsYAML(e.cycles); err != nil {
		e.log.Warn("Failed to write stats", zap.Error(err))
	}

	e.notifier.Notify(notify.EventAlert, fmt.Sprintf(
		"Summary after %d cycles: %d trades, price PnL %.2f %s, balance change %.2f %s",
		stats.Cycles, stats.TotalTrades,
		stats.CumulativePricePnL, e.config.Symbol.QuoteAsset,
		stats.CumulativeBalanceDelta, e.config.Symbol.QuoteAsset,
	))

	if callbacks.OnSummary != nil {
		(*callbacks.OnSummary)(stats)
	}
}

// handleDateBoundary rolls the session files into a new date folder after midnight.
func (e *ControlLoopV1) handleDateBoundary() {
	if e.sessionManager == nil {
		return
	}

	changed, err := e.sessionManager.HandleDateBoundary(e.now())
	if err != nil {
		e.log.Warn("Failed to handle date boundary", zap.Error(err))

		return
	}

	if !changed {
		return
	}

	if err := e.openSessionFiles(); err != nil {
		e.log.Warn("Failed to open session files for new date", zap.Error(err))
	}
}

func (e *ControlLoopV1) freeBalance(ctx context.Context, asset string) (float64, error) {
	reqCtx, cancel := e.requestContext(ctx)
	defer cancel()

	balance, err := e.account.GetFreeBalance(reqCtx, asset)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeBalanceQueryFailed, err, "failed to read %s balance", asset)
	}

	return balance, nil
}

func (e *ControlLoopV1) logBanner() {
	e.log.Info("Starting trading bot",
		zap.String("version", version.GetVersion()),
		zap.String("symbol", e.config.Symbol.Symbol),
		zap.Float64("quantity", e.config.Risk.Quantity),
		zap.String("interval", e.config.Timing.Interval),
		zap.Int("ema_fast", e.config.Strategy.EMAFast),
		zap.Int("ema_slow", e.config.Strategy.EMASlow),
		zap.Int("rsi_period", e.config.Strategy.RSIPeriod),
		zap.Float64("rsi_overbought", e.config.Strategy.RSIOverbought),
		zap.Float64("rsi_oversold", e.config.Strategy.RSIOversold),
		zap.Float64("stop_loss_pct", e.config.Risk.StopLossPct),
		zap.Float64("take_profit_pct", e.config.Risk.TakeProfitPct),
		zap.Float64("fee_per_trade", e.config.Risk.FeePerTrade),
	)
}

func (e *ControlLoopV1) logBalances(ctx context.Context) {
	fields := make([]zap.Field, 0, 2)

	for _, asset := range []string{e.config.Symbol.BaseAsset, e.config.Symbol.QuoteAsset} {
		balance, err := e.freeBalance(ctx, asset)
		if err != nil {
			e.log.Warn("Failed to read balance", zap.String("asset", asset), zap.Error(err))

			continue
		}

		fields = append(fields, zap.Float64(asset, balance))
	}

	if len(fields) > 0 {
		e.log.Info("Free balances", fields...)
	}
}

// shutdown writes the final stats and closes the trade journal.
func (e *ControlLoopV1) shutdown(runErr error) {
	if e.ledger != nil {
		if err := e.ledger.WriteStatsYAML(e.cycles); err != nil {
			e.log.Warn("Failed to write final stats", zap.Error(err))
		}
	}

	if e.tradesWriter != nil {
		if err := e.tradesWriter.Flush(); err != nil {
			e.log.Warn("Failed to flush trades writer", zap.Error(err))
		}

		if err := e.tradesWriter.Close(); err != nil {
			e.log.Warn("Failed to close trades writer", zap.Error(err))
		}

		e.tradesWriter = nil
	}

	e.log.Info("Control loop stopped",
		zap.Int("cycles", e.cycles),
		zap.Error(runErr),
	)
}

// requestContext bounds one exchange call. It is detached from ctx so that a
// shutdown request never interrupts an order in flight.
func (e *ControlLoopV1) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), e.config.Timing.RequestTimeout)
}

// sleepContext waits for d or until ctx is done. It returns false when ctx is done.
func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Verify ControlLoopV1 implements engine.ControlLoop interface.
var _ engine.ControlLoop = (*ControlLoopV1)(nil)
