// Package ledger keeps the completed trades and the running totals of a trading session.
package ledger

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/crossover-trader/internal/logger"
	"github.com/rxtech-lab/crossover-trader/internal/types"
	"github.com/rxtech-lab/crossover-trader/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ClosedTrade is the input for recording a round trip.
type ClosedTrade struct {
	EntryPrice float64
	ExitPrice  float64
	Quantity   float64
	Reason     types.ExitReason
	OpenedAt   time.Time
	ClosedAt   time.Time
	// ExitBalance is the free quote balance right after the exit fill, if it could be read
	ExitBalance optional.Option[float64]
	// Fee overrides the ledger's flat fee for this trade
	Fee optional.Option[float64]
}

// Ledger records trades and aggregates two independent profit figures: the
// price based PnL net of fees, and the observed quote balance change.
// The two are reported side by side and never reconciled.
type Ledger struct {
	symbol string
	fee    decimal.Decimal

	runID        string
	sessionStart time.Time

	trades       []types.TradeRecord
	totals       types.LedgerTotals
	peakPnL      decimal.Decimal
	maxProfit    decimal.Decimal
	maxLoss      decimal.Decimal
	entryBalance optional.Option[float64]

	tradesFilePath  string
	statsOutputPath string

	mu     sync.Mutex
	logger *logger.Logger
}

// NewLedger creates an empty ledger. feePerTrade is subtracted from the price PnL of
// every trade that does not carry its own fee.
func NewLedger(symbol string, feePerTrade float64, log *logger.Logger) *Ledger {
	return &Ledger{
		symbol:       symbol,
		fee:          decimal.NewFromFloat(feePerTrade),
		runID:        "",
		sessionStart: time.Time{},
		trades:       make([]types.TradeRecord, 0),
		totals: types.LedgerTotals{
			TradeCount:             0,
			WinningTrades:          0,
			LosingTrades:           0,
			CumulativePricePnL:     decimal.Zero,
			CumulativeBalanceDelta: decimal.Zero,
			TotalFees:              decimal.Zero,
			MaxDrawdown:            decimal.Zero,
		},
		peakPnL:         decimal.Zero,
		maxProfit:       decimal.Zero,
		maxLoss:         decimal.Zero,
		entryBalance:    optional.None[float64](),
		tradesFilePath:  "",
		statsOutputPath: "",
		mu:              sync.Mutex{},
		logger:          log,
	}
}

// Initialize sets the session information reported in the stats file.
func (l *Ledger) Initialize(runID string, sessionStart time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.runID = runID
	l.sessionStart = sessionStart
}

// SetFilePaths sets where the trade journal lives and where stats.yaml is written.
func (l *Ledger) SetFilePaths(tradesPath, statsPath string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.tradesFilePath = tradesPath
	l.statsOutputPath = statsPath
}

// SetEntryBalance snapshots the free quote balance taken right before an entry order.
func (l *Ledger) SetEntryBalance(balance float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entryBalance = optional.Some(balance)
}

// ClearEntryBalance drops the entry snapshot, e.g. when the entry order failed.
func (l *Ledger) ClearEntryBalance() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entryBalance = optional.None[float64]()
}

// EntryBalance returns the pending entry snapshot.
func (l *Ledger) EntryBalance() optional.Option[float64] {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.entryBalance
}

// RecordTrade appends a trade record and updates the totals.
// The balance delta is only computed when both the entry snapshot and the exit
// balance are known; otherwise it is left unset and the cumulative delta is untouched.
func (l *Ledger) RecordTrade(trade ClosedTrade) (types.TradeRecord, error) {
	if trade.Quantity <= 0 || trade.EntryPrice <= 0 || trade.ExitPrice <= 0 {
		return types.TradeRecord{}, errors.Newf(errors.ErrCodeInvalidParameter,
			"cannot record trade with entry %.8f exit %.8f quantity %.8f", trade.EntryPrice, trade.ExitPrice, trade.Quantity)
	}

	if trade.Fee.IsSome() && trade.Fee.Unwrap() < 0 {
		return types.TradeRecord{}, errors.Newf(errors.ErrCodeInvalidParameter, "cannot record trade with negative fee %.8f", trade.Fee.Unwrap())
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fee := l.fee
	if trade.Fee.IsSome() {
		fee = decimal.NewFromFloat(trade.Fee.Unwrap())
	}

	entry := decimal.NewFromFloat(trade.EntryPrice)
	exit := decimal.NewFromFloat(trade.ExitPrice)
	qty := decimal.NewFromFloat(trade.Quantity)
	pnl := exit.Sub(entry).Mul(qty).Sub(fee)

	balanceDelta := optional.None[float64]()

	if trade.ExitBalance.IsSome() && l.entryBalance.IsSome() {
		delta := decimal.NewFromFloat(trade.ExitBalance.Unwrap()).Sub(decimal.NewFromFloat(l.entryBalance.Unwrap()))
		balanceDelta = optional.Some(delta.InexactFloat64())
		l.totals.CumulativeBalanceDelta = l.totals.CumulativeBalanceDelta.Add(delta)
	} else {
		l.logger.Warn("Balance delta not available for trade",
			zap.Bool("has_entry_balance", l.entryBalance.IsSome()),
			zap.Bool("has_exit_balance", trade.ExitBalance.IsSome()),
		)
	}

	l.entryBalance = optional.None[float64]()

	record := types.TradeRecord{
		SequenceNo:   len(l.trades) + 1,
		Symbol:       l.symbol,
		EntryPrice:   trade.EntryPrice,
		ExitPrice:    trade.ExitPrice,
		Quantity:     trade.Quantity,
		Fee:          fee.InexactFloat64(),
		ExitReason:   trade.Reason,
		OpenedAt:     trade.OpenedAt,
		ClosedAt:     trade.ClosedAt,
		PricePnL:     pnl,
		BalanceDelta: balanceDelta,
	}

	l.trades = append(l.trades, record)
	l.updateTotals(pnl, fee)

	l.logger.Info("Trade recorded",
		zap.Int("sequence_no", record.SequenceNo),
		zap.String("exit_reason", string(record.ExitReason)),
		zap.Float64("price_pnl", pnl.InexactFloat64()),
		zap.Float64("cumulative_price_pnl", l.totals.CumulativePricePnL.InexactFloat64()),
		zap.Int("trade_count", l.totals.TradeCount),
	)

	return record, nil
}

//nolint:funcorder // helper method used by RecordTrade
func (l *Ledger) updateTotals(pnl, fee decimal.Decimal) {
	l.totals.TradeCount++
	l.totals.TotalFees = l.totals.TotalFees.Add(fee)
	l.totals.CumulativePricePnL = l.totals.CumulativePricePnL.Add(pnl)

	if pnl.IsPositive() {
		l.totals.WinningTrades++
	} else if pnl.IsNegative() {
		l.totals.LosingTrades++
	}

	if pnl.GreaterThan(l.maxProfit) {
		l.maxProfit = pnl
	}

	if pnl.LessThan(l.maxLoss) {
		l.maxLoss = pnl
	}

	if l.totals.CumulativePricePnL.GreaterThan(l.peakPnL) {
		l.peakPnL = l.totals.CumulativePricePnL
	}

	drawdown := l.peakPnL.Sub(l.totals.CumulativePricePnL)
	if drawdown.GreaterThan(l.totals.MaxDrawdown) {
		l.totals.MaxDrawdown = drawdown
	}
}

// Totals returns a copy of the running totals.
func (l *Ledger) Totals() types.LedgerTotals {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.totals
}

// Trades returns a copy of the trade history, oldest first.
func (l *Ledger) Trades() []types.TradeRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]types.TradeRecord, len(l.trades))
	copy(out, l.trades)

	return out
}

// Stats builds the stats snapshot for the given number of completed cycles.
func (l *Ledger) Stats(cycles int) types.LedgerStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.buildStats(cycles)
}

//nolint:funcorder // helper method used by Stats and WriteStatsYAML
func (l *Ledger) buildStats(cycles int) types.LedgerStats {
	winRate := 0.0
	if l.totals.TradeCount > 0 {
		winRate = float64(l.totals.WinningTrades) / float64(l.totals.TradeCount)
	}

	return types.LedgerStats{
		ID:                     l.runID,
		Date:                   l.sessionStart.Format("2006-01-02"),
		Symbol:                 l.symbol,
		SessionStart:           l.sessionStart,
		LastUpdated:            time.Now(),
		Cycles:                 cycles,
		TotalTrades:            l.totals.TradeCount,
		WinningTrades:          l.totals.WinningTrades,
		LosingTrades:           l.totals.LosingTrades,
		WinRate:                winRate,
		CumulativePricePnL:     l.totals.CumulativePricePnL.InexactFloat64(),
		CumulativeBalanceDelta: l.totals.CumulativeBalanceDelta.InexactFloat64(),
		TotalFees:              l.totals.TotalFees.InexactFloat64(),
		MaxProfit:              l.maxProfit.InexactFloat64(),
		MaxLoss:                l.maxLoss.InexactFloat64(),
		MaxDrawdown:            l.totals.MaxDrawdown.InexactFloat64(),
		TradesFilePath:         l.tradesFilePath,
	}
}

// WriteStatsYAML writes the current stats to the stats.yaml file.
func (l *Ledger) WriteStatsYAML(cycles int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.statsOutputPath == "" {
		return nil // No output path configured
	}

	data, err := yaml.Marshal(l.buildStats(cycles))
	if err != nil {
		return fmt.Errorf("failed to marshal ledger stats to YAML: %w", err)
	}

	if err := os.WriteFile(l.statsOutputPath, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeWriterFailed, "failed to write ledger stats", err)
	}

	return nil
}

// ReadStatsYAML reads a stats file written by WriteStatsYAML.
func ReadStatsYAML(path string) (types.LedgerStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.LedgerStats{}, fmt.Errorf("failed to read ledger stats file: %w", err)
	}

	var stats types.LedgerStats
	if err := yaml.Unmarshal(data, &stats); err != nil {
		return types.LedgerStats{}, fmt.Errorf("failed to unmarshal ledger stats: %w", err)
	}

	return stats, nil
}
