// Package signal turns indicator series into BUY, SELL or NONE intents.
package signal

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/crossover-trader/internal/types"
	"github.com/rxtech-lab/crossover-trader/pkg/errors"
)

// Config holds the detector thresholds.
type Config struct {
	RSIOverbought       float64 `yaml:"rsi_overbought" json:"rsi_overbought" validate:"gt=0,lte=100,gtfield=RSIOversold"`
	RSIOversold         float64 `yaml:"rsi_oversold" json:"rsi_oversold" validate:"gte=0,lt=100"`
	EarlyExitMargin     float64 `yaml:"early_exit_margin" json:"early_exit_margin" validate:"gte=0"`
	ContinuationEnabled bool    `yaml:"continuation_enabled" json:"continuation_enabled"`
	// WarmUp is the minimum number of points required, see indicator.WarmUp.
	WarmUp int `yaml:"-" json:"-" validate:"gte=2"`
}

// Detector evaluates the entry and exit rules. It holds no state and never
// changes position state; the caller passes whether a position is open.
type Detector struct {
	config Config
}

// NewDetector creates a detector after validating its thresholds.
func NewDetector(config Config) (*Detector, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid signal configuration", err)
	}

	return &Detector{config: config}, nil
}

// Config returns the detector thresholds.
func (d *Detector) Config() Config {
	return d.config
}

// Evaluate runs the rules in fixed order against the last points of the series
// and returns the first match. isOpen is the current position state.
func (d *Detector) Evaluate(series types.IndicatorSeries, isOpen bool) types.Intent {
	n := series.Len()
	if n < d.config.WarmUp || n < 2 {
		return types.NoIntent(types.SignalRuleInsufficientData,
			fmt.Sprintf("insufficient data: %d points, need %d", n, max(d.config.WarmUp, 2)))
	}

	cur := series.At(-1)
	prev := series.At(-2)

	overbought := d.config.RSIOverbought
	oversold := d.config.RSIOversold

	// fresh bullish crossover with RSI rising out of the oversold zone
	if !isOpen &&
		prev.EMAFast <= prev.EMASlow && cur.EMAFast > cur.EMASlow &&
		cur.RSI < overbought && cur.RSI > prev.RSI && prev.RSI < oversold+10 {
		return intent(types.SignalActionBuy, types.SignalRuleCrossoverBuy, cur,
			"EMA fast crossed above EMA slow with rising RSI %.2f", cur.RSI)
	}

	// fast EMA converging on slow EMA while momentum fades
	if isOpen &&
		cur.EMAFast <= cur.EMASlow*(1+d.config.EarlyExitMargin) && prev.EMAFast > prev.EMASlow &&
		cur.RSI < prev.RSI && cur.RSI > 50 {
		return intent(types.SignalActionSell, types.SignalRuleEarlyExit, cur,
			"EMA fast within %.4f%% of EMA slow with falling RSI %.2f", d.config.EarlyExitMargin*100, cur.RSI)
	}

	if isOpen &&
		prev.EMAFast >= prev.EMASlow && cur.EMAFast < cur.EMASlow &&
		cur.RSI > oversold && cur.RSI < prev.RSI && prev.RSI > overbought-10 {
		return intent(types.SignalActionSell, types.SignalRuleCrossoverSell, cur,
			"EMA fast crossed below EMA slow with falling RSI %.2f", cur.RSI)
	}

	if d.config.ContinuationEnabled {
		if !isOpen && n >= 3 {
			prev2 := series.At(-3)
			if cur.EMAFast > cur.EMASlow && prev.EMAFast > prev.EMASlow && prev2.EMAFast > prev2.EMASlow &&
				cur.RSI < overbought {
				return intent(types.SignalActionBuy, types.SignalRuleContinuationBuy, cur,
					"uptrend continuation with RSI %.2f", cur.RSI)
			}
		}

		if isOpen &&
			cur.EMAFast < cur.EMASlow && prev.EMAFast < prev.EMASlow && cur.RSI > oversold {
			return intent(types.SignalActionSell, types.SignalRuleContinuationSell, cur,
				"downtrend continuation with RSI %.2f", cur.RSI)
		}
	}

	none := types.NoIntent(types.SignalRuleNone, "no rule matched")
	none.Point = cur

	return none
}

func intent(action types.SignalAction, rule types.SignalRule, point types.IndicatorPoint, format string, args ...any) types.Intent {
	return types.Intent{
		Action: action,
		Rule:   rule,
		Reason: fmt.Sprintf(format, args...),
		Point:  point,
	}
}
