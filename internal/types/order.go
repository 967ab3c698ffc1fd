package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/crossover-trader/pkg/errors"
)

type PurchaseType string

const (
	PurchaseTypeBuy  PurchaseType = "BUY"
	PurchaseTypeSell PurchaseType = "SELL"
)

// ExitReason describes why a position was closed.
type ExitReason string

const (
	ExitReasonStopLoss   ExitReason = "stop_loss"
	ExitReasonTakeProfit ExitReason = "take_profit"
	ExitReasonSignal     ExitReason = "signal"
)

// MarketOrder is a request to buy or sell a quantity at market.
type MarketOrder struct {
	Symbol        string       `yaml:"symbol" json:"symbol" validate:"required"`
	Side          PurchaseType `yaml:"side" json:"side" validate:"required,oneof=BUY SELL"`
	Quantity      float64      `yaml:"quantity" json:"quantity" validate:"required,gt=0"`
	ClientOrderID string       `yaml:"client_order_id" json:"client_order_id"`
}

// Validate checks that the order is well formed before it reaches an executor.
func (o MarketOrder) Validate() error {
	validate := validator.New()
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrder, "invalid market order", err)
	}

	return nil
}

// Fill is the confirmed execution of a market order.
type Fill struct {
	OrderID       string       `yaml:"order_id" json:"order_id" csv:"order_id"`
	ClientOrderID string       `yaml:"client_order_id" json:"client_order_id" csv:"client_order_id"`
	Symbol        string       `yaml:"symbol" json:"symbol" csv:"symbol"`
	Side          PurchaseType `yaml:"side" json:"side" csv:"side"`
	// Price is the average executed price
	Price float64 `yaml:"price" json:"price" csv:"price"`
	// Quantity is the executed base quantity
	Quantity   float64   `yaml:"quantity" json:"quantity" csv:"quantity"`
	Commission float64   `yaml:"commission" json:"commission" csv:"commission"`
	FilledAt   time.Time `yaml:"filled_at" json:"filled_at" csv:"filled_at"`
}
