// Package position tracks the single long position and its stop-loss and take-profit levels.
package position

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/crossover-trader/internal/types"
	"github.com/rxtech-lab/crossover-trader/pkg/errors"
)

// RiskExit is the outcome of a stop-loss / take-profit check.
type RiskExit string

const (
	RiskExitNone       RiskExit = "none"
	RiskExitStopLoss   RiskExit = "stop_loss"
	RiskExitTakeProfit RiskExit = "take_profit"
)

// ExitReason maps the risk exit to the reason recorded on the trade.
func (r RiskExit) ExitReason() types.ExitReason {
	switch r {
	case RiskExitStopLoss:
		return types.ExitReasonStopLoss
	case RiskExitTakeProfit:
		return types.ExitReasonTakeProfit
	default:
		return types.ExitReasonSignal
	}
}

// Config holds the protective levels as fractions of the entry price.
type Config struct {
	StopLossPct   float64 `yaml:"stop_loss_pct" json:"stop_loss_pct" validate:"gt=0,lt=1"`
	TakeProfitPct float64 `yaml:"take_profit_pct" json:"take_profit_pct" validate:"gt=0"`
}

// Manager owns the position state. It is not safe for concurrent use; the
// control loop is its only writer.
type Manager struct {
	config   Config
	position types.Position
}

// NewManager creates a manager with a closed position.
func NewManager(config Config) (*Manager, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid position configuration", err)
	}

	return &Manager{
		config:   config,
		position: types.ClosedPosition(),
	}, nil
}

// IsOpen reports whether a position is currently held.
func (m *Manager) IsOpen() bool {
	return m.position.IsOpen
}

// Snapshot returns a copy of the current position.
func (m *Manager) Snapshot() types.Position {
	return m.position
}

// Open records a filled entry and derives the stop-loss and take-profit prices.
// It fails without changing state when a position is already open.
func (m *Manager) Open(entryPrice, quantity float64, at time.Time) (types.Position, error) {
	if m.position.IsOpen {
		return m.position, errors.Newf(errors.ErrCodePositionAlreadyOpen,
			"position already open at %.8f", m.position.EntryPrice.Unwrap())
	}

	if entryPrice <= 0 || quantity <= 0 {
		return m.position, errors.Newf(errors.ErrCodeInvalidParameter,
			"entry price and quantity must be positive, got price %.8f quantity %.8f", entryPrice, quantity)
	}

	m.position = types.Position{
		IsOpen:          true,
		Quantity:        quantity,
		EntryPrice:      optional.Some(entryPrice),
		StopLossPrice:   optional.Some(entryPrice * (1 - m.config.StopLossPct)),
		TakeProfitPrice: optional.Some(entryPrice * (1 + m.config.TakeProfitPct)),
		OpenedAt:        at,
	}

	return m.position, nil
}

// Close flattens the position and returns the position as it was before closing.
func (m *Manager) Close() (types.Position, error) {
	if !m.position.IsOpen {
		return m.position, errors.New(errors.ErrCodePositionNotOpen, "no open position to close")
	}

	closed := m.position
	m.position = types.ClosedPosition()

	return closed, nil
}

// CheckRiskExit compares price against the protective levels. The stop-loss is
// checked first; a closed position never triggers.
func (m *Manager) CheckRiskExit(price float64) RiskExit {
	if !m.position.IsOpen {
		return RiskExitNone
	}

	if sl, err := m.position.StopLossPrice.Take(); err == nil && price <= sl {
		return RiskExitStopLoss
	}

	if tp, err := m.position.TakeProfitPrice.Take(); err == nil && price >= tp {
		return RiskExitTakeProfit
	}

	return RiskExitNone
}
