package types

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
)

// Position is the state of the single long position the bot may hold.
// EntryPrice, StopLossPrice and TakeProfitPrice are either all set or all unset.
type Position struct {
	IsOpen          bool
	Quantity        float64
	EntryPrice      optional.Option[float64]
	StopLossPrice   optional.Option[float64]
	TakeProfitPrice optional.Option[float64]
	OpenedAt        time.Time
}

// ClosedPosition returns the flat position.
func ClosedPosition() Position {
	return Position{
		IsOpen:          false,
		Quantity:        0,
		EntryPrice:      optional.None[float64](),
		StopLossPrice:   optional.None[float64](),
		TakeProfitPrice: optional.None[float64](),
		OpenedAt:        time.Time{},
	}
}

// TradeRecord is one completed round trip. It is created once when the
// position closes and never mutated afterwards.
type TradeRecord struct {
	SequenceNo int        `yaml:"sequence_no" json:"sequence_no"`
	Symbol     string     `yaml:"symbol" json:"symbol"`
	EntryPrice float64    `yaml:"entry_price" json:"entry_price"`
	ExitPrice  float64    `yaml:"exit_price" json:"exit_price"`
	Quantity   float64    `yaml:"quantity" json:"quantity"`
	Fee        float64    `yaml:"fee" json:"fee"`
	ExitReason ExitReason `yaml:"exit_reason" json:"exit_reason"`
	OpenedAt   time.Time  `yaml:"opened_at" json:"opened_at"`
	ClosedAt   time.Time  `yaml:"closed_at" json:"closed_at"`
	// PricePnL is (exit - entry) * quantity - fee
	PricePnL decimal.Decimal `yaml:"-" json:"price_pnl"`
	// BalanceDelta is the quote balance change across the round trip, when it could be measured
	BalanceDelta optional.Option[float64] `yaml:"-" json:"-"`
}

// LedgerTotals are the running, process-wide accumulators of the trade ledger.
type LedgerTotals struct {
	TradeCount             int             `yaml:"trade_count" json:"trade_count"`
	WinningTrades          int             `yaml:"winning_trades" json:"winning_trades"`
	LosingTrades           int             `yaml:"losing_trades" json:"losing_trades"`
	CumulativePricePnL     decimal.Decimal `yaml:"-" json:"cumulative_price_pnl"`
	CumulativeBalanceDelta decimal.Decimal `yaml:"-" json:"cumulative_balance_delta"`
	TotalFees              decimal.Decimal `yaml:"-" json:"total_fees"`
	MaxDrawdown            decimal.Decimal `yaml:"-" json:"max_drawdown"`
}

// LedgerStats is the yaml snapshot written to the session folder.
type LedgerStats struct {
	ID           string    `yaml:"id" json:"id"`
	Date         string    `yaml:"date" json:"date"`
	Symbol       string    `yaml:"symbol" json:"symbol"`
	SessionStart time.Time `yaml:"session_start" json:"session_start"`
	LastUpdated  time.Time `yaml:"last_updated" json:"last_updated"`
	Cycles       int       `yaml:"cycles" json:"cycles"`

	TotalTrades            int     `yaml:"total_trades" json:"total_trades"`
	WinningTrades          int     `yaml:"winning_trades" json:"winning_trades"`
	LosingTrades           int     `yaml:"losing_trades" json:"losing_trades"`
	WinRate                float64 `yaml:"win_rate" json:"win_rate"`
	CumulativePricePnL     float64 `yaml:"cumulative_price_pnl" json:"cumulative_price_pnl"`
	CumulativeBalanceDelta float64 `yaml:"cumulative_balance_delta" json:"cumulative_balance_delta"`
	TotalFees              float64 `yaml:"total_fees" json:"total_fees"`
	MaxProfit              float64 `yaml:"max_profit" json:"max_profit"`
	MaxLoss                float64 `yaml:"max_loss" json:"max_loss"`
	MaxDrawdown            float64 `yaml:"max_drawdown" json:"max_drawdown"`

	TradesFilePath string `yaml:"trades_file_path" json:"trades_file_path"`
}
