// Package indicator computes the EMA and RSI series the signal detector works on.
package indicator

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/crossover-trader/internal/types"
	"github.com/rxtech-lab/crossover-trader/pkg/errors"
)

// Params are the indicator periods.
type Params struct {
	FastSpan  int `yaml:"ema_fast" json:"ema_fast" validate:"required,gt=0,ltfield=SlowSpan"`
	SlowSpan  int `yaml:"ema_slow" json:"ema_slow" validate:"required,gt=0"`
	RSIPeriod int `yaml:"rsi_period" json:"rsi_period" validate:"required,gt=0"`
}

// Validate checks that the fast span is shorter than the slow span and all periods are positive.
func (p Params) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPeriod, "invalid indicator parameters", err)
	}

	return nil
}

// WarmUp is the minimum number of candles needed before the series are usable.
func (p Params) WarmUp() int {
	return WarmUp(p.SlowSpan, p.RSIPeriod)
}

// WarmUp returns max(slowSpan, rsiPeriod) + 1.
func WarmUp(slowSpan, rsiPeriod int) int {
	return max(slowSpan, rsiPeriod) + 1
}

// Compute derives the EMA fast, EMA slow and RSI series from the candle closes.
// It returns an InsufficientDataError when there are fewer candles than WarmUp.
func Compute(candles []types.Candle, params Params) (types.IndicatorSeries, error) {
	if err := params.Validate(); err != nil {
		return types.IndicatorSeries{}, err
	}

	required := params.WarmUp()
	if len(candles) < required {
		return types.IndicatorSeries{}, errors.NewInsufficientDataErrorf(
			required, len(candles), "",
			"insufficient candles for indicators: required %d, got %d", required, len(candles),
		)
	}

	closes := types.Closes(candles)

	return types.IndicatorSeries{
		EMAFast: EMA(closes, params.FastSpan),
		EMASlow: EMA(closes, params.SlowSpan),
		RSI:     RSI(closes, params.RSIPeriod),
	}, nil
}
