package types

import (
	"testing"
	"time"

	"github.com/rxtech-lab/crossover-trader/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type TypesTestSuite struct {
	suite.Suite
}

func TestTypesSuite(t *testing.T) {
	suite.Run(t, new(TypesTestSuite))
}

func (suite *TypesTestSuite) TestCloses() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := []Candle{
		{Time: start, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10},
		{Time: start.Add(time.Minute), Open: 1.5, High: 3, Low: 1, Close: 2.5, Volume: 12},
	}

	suite.Equal([]float64{1.5, 2.5}, Closes(candles))
	suite.Empty(Closes(nil))
}

func (suite *TypesTestSuite) TestIndicatorSeriesAt() {
	series := IndicatorSeries{
		EMAFast: []float64{1, 2, 3},
		EMASlow: []float64{4, 5, 6},
		RSI:     []float64{50, 60, 70},
	}

	suite.Equal(3, series.Len())
	suite.Equal(IndicatorPoint{EMAFast: 1, EMASlow: 4, RSI: 50}, series.At(0))
	suite.Equal(IndicatorPoint{EMAFast: 3, EMASlow: 6, RSI: 70}, series.At(-1))
	suite.Equal(IndicatorPoint{EMAFast: 2, EMASlow: 5, RSI: 60}, series.At(-2))
}

func (suite *TypesTestSuite) TestNoIntent() {
	intent := NoIntent(SignalRuleInsufficientData, "warming up")

	suite.Equal(SignalActionNone, intent.Action)
	suite.Equal(SignalRuleInsufficientData, intent.Rule)
	suite.Equal("warming up", intent.Reason)
}

func (suite *TypesTestSuite) TestClosedPosition() {
	position := ClosedPosition()

	suite.False(position.IsOpen)
	suite.Zero(position.Quantity)
	suite.True(position.EntryPrice.IsNone())
	suite.True(position.StopLossPrice.IsNone())
	suite.True(position.TakeProfitPrice.IsNone())
}

func (suite *TypesTestSuite) TestMarketOrderValidate() {
	tests := []struct {
		name    string
		order   MarketOrder
		wantErr bool
	}{
		{
			name:    "valid buy",
			order:   MarketOrder{Symbol: "BTCEUR", Side: PurchaseTypeBuy, Quantity: 0.001, ClientOrderID: ""},
			wantErr: false,
		},
		{
			name:    "missing symbol",
			order:   MarketOrder{Symbol: "", Side: PurchaseTypeSell, Quantity: 0.001, ClientOrderID: ""},
			wantErr: true,
		},
		{
			name:    "unknown side",
			order:   MarketOrder{Symbol: "BTCEUR", Side: "HOLD", Quantity: 0.001, ClientOrderID: ""},
			wantErr: true,
		},
		{
			name:    "zero quantity",
			order:   MarketOrder{Symbol: "BTCEUR", Side: PurchaseTypeBuy, Quantity: 0, ClientOrderID: ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := tt.order.Validate()
			if tt.wantErr {
				suite.True(errors.HasCode(err, errors.ErrCodeInvalidOrder))

				return
			}

			suite.NoError(err)
		})
	}
}
