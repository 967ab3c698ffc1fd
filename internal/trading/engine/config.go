package engine

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/crossover-trader/internal/indicator"
	"github.com/rxtech-lab/crossover-trader/internal/logger"
	"github.com/rxtech-lab/crossover-trader/internal/position"
	"github.com/rxtech-lab/crossover-trader/internal/signal"
	"github.com/rxtech-lab/crossover-trader/pkg/errors"
	"github.com/rxtech-lab/crossover-trader/pkg/schema"
	"gopkg.in/yaml.v3"
)

// SymbolConfig names the traded pair.
type SymbolConfig struct {
	// Symbol is the exchange symbol, e.g. BTCEUR
	Symbol string `json:"symbol" yaml:"symbol" jsonschema:"title=Symbol,description=Exchange symbol,default=BTCEUR" validate:"required"`
	// BaseAsset is the traded asset, e.g. BTC
	BaseAsset string `json:"base_asset" yaml:"base_asset" jsonschema:"title=Base Asset,default=BTC" validate:"required"`
	// QuoteAsset is the asset used to pay, e.g. EUR
	QuoteAsset string `json:"quote_asset" yaml:"quote_asset" jsonschema:"title=Quote Asset,default=EUR" validate:"required"`
}

// StrategyConfig holds the indicator and signal parameters.
type StrategyConfig struct {
	EMAFast             int     `json:"ema_fast" yaml:"ema_fast" jsonschema:"title=Fast EMA span,default=9" validate:"required,gt=0,ltfield=EMASlow"`
	EMASlow             int     `json:"ema_slow" yaml:"ema_slow" jsonschema:"title=Slow EMA span,default=21" validate:"required,gt=0"`
	RSIPeriod           int     `json:"rsi_period" yaml:"rsi_period" jsonschema:"title=RSI period,default=14" validate:"required,gt=0"`
	RSIOverbought       float64 `json:"rsi_overbought" yaml:"rsi_overbought" jsonschema:"title=RSI overbought level,default=70" validate:"gt=0,lte=100,gtfield=RSIOversold"`
	RSIOversold         float64 `json:"rsi_oversold" yaml:"rsi_oversold" jsonschema:"title=RSI oversold level,default=30" validate:"gte=0,lt=100"`
	EarlyExitMargin     float64 `json:"early_exit_margin" yaml:"early_exit_margin" jsonschema:"title=Early exit margin,description=Relative fast/slow EMA gap that triggers an early exit,default=0.0005" validate:"gte=0"`
	ContinuationEnabled bool    `json:"continuation_enabled" yaml:"continuation_enabled" jsonschema:"title=Continuation signals,default=false"`
}

// RiskConfig holds the order size and the stop-loss / take-profit distances.
type RiskConfig struct {
	Quantity      float64 `json:"quantity" yaml:"quantity" jsonschema:"title=Order quantity,description=Base asset quantity per order,default=0.0012" validate:"required,gt=0"`
	StopLossPct   float64 `json:"stop_loss_pct" yaml:"stop_loss_pct" jsonschema:"title=Stop loss,description=Fraction below entry,default=0.02" validate:"required,gt=0,lt=1"`
	TakeProfitPct float64 `json:"take_profit_pct" yaml:"take_profit_pct" jsonschema:"title=Take profit,description=Fraction above entry,default=0.006" validate:"required,gt=0"`
	FeePerTrade   float64 `json:"fee_per_trade" yaml:"fee_per_trade" jsonschema:"title=Fee per trade,description=Flat quote amount subtracted from every trade PnL,default=0.08" validate:"gte=0"`
}

// TimingConfig holds the loop cadence.
type TimingConfig struct {
	Interval       string        `json:"interval" yaml:"interval" jsonschema:"title=Candle interval,default=5m" validate:"required,oneof=1m 3m 5m 15m 30m 1h 2h 4h 6h 8h 12h 1d"`
	PollInterval   time.Duration `json:"poll_interval" yaml:"poll_interval" jsonschema:"title=Poll interval,default=5s" validate:"gt=0"`
	RetryDelay     time.Duration `json:"retry_delay" yaml:"retry_delay" jsonschema:"title=Retry delay after a failed fetch,default=5s" validate:"gt=0"`
	ErrorBackoff   time.Duration `json:"error_backoff" yaml:"error_backoff" jsonschema:"title=Backoff after an unexpected cycle error,default=10s" validate:"gt=0"`
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout" jsonschema:"title=Timeout of one exchange request,default=10s" validate:"gt=0"`
	SummaryEvery   int           `json:"summary_every" yaml:"summary_every" jsonschema:"title=Cycles between summaries,default=720" validate:"gt=0"`
	MinWindow      int           `json:"min_window" yaml:"min_window" jsonschema:"title=Minimum candles fetched,default=50" validate:"gt=0"`
	SafetyMargin   int           `json:"safety_margin" yaml:"safety_margin" jsonschema:"title=Extra candles fetched,default=5" validate:"gte=0"`
}

// BotConfig is the complete configuration of the trading bot.
type BotConfig struct {
	Provider string           `json:"provider" yaml:"provider" jsonschema:"title=Provider,enum=binance-paper,enum=binance-live,enum=simulated,default=binance-paper" validate:"required,oneof=binance-paper binance-live simulated"`
	Symbol   SymbolConfig     `json:"symbol" yaml:"symbol"`
	Strategy StrategyConfig   `json:"strategy" yaml:"strategy"`
	Risk     RiskConfig       `json:"risk" yaml:"risk"`
	Timing   TimingConfig     `json:"timing" yaml:"timing"`
	Log      logger.LogConfig `json:"log" yaml:"log"`
	// InitialBalance seeds the simulated provider
	InitialBalance map[string]float64 `json:"initial_balance,omitempty" yaml:"initial_balance,omitempty" jsonschema:"title=Initial balance,description=Balances of the simulated provider"`
	// DataOutputPath is the root of the session folders; empty disables the trade journal and stats file
	DataOutputPath string `json:"data_output_path" yaml:"data_output_path" jsonschema:"title=Data output path,default=data"`
}

// DefaultBotConfig returns the defaults used when a field is not configured.
func DefaultBotConfig() BotConfig {
	return BotConfig{
		Provider: "binance-paper",
		Symbol: SymbolConfig{
			Symbol:     "BTCEUR",
			BaseAsset:  "BTC",
			QuoteAsset: "EUR",
		},
		Strategy: StrategyConfig{
			EMAFast:             9,
			EMASlow:             21,
			RSIPeriod:           14,
			RSIOverbought:       70,
			RSIOversold:         30,
			EarlyExitMargin:     0.0005,
			ContinuationEnabled: false,
		},
		Risk: RiskConfig{
			Quantity:      0.0012,
			StopLossPct:   0.02,
			TakeProfitPct: 0.006,
			FeePerTrade:   0.08,
		},
		Timing: TimingConfig{
			Interval:       "5m",
			PollInterval:   5 * time.Second,
			RetryDelay:     5 * time.Second,
			ErrorBackoff:   10 * time.Second,
			RequestTimeout: 10 * time.Second,
			SummaryEvery:   720,
			MinWindow:      50,
			SafetyMargin:   5,
		},
		Log:            logger.DefaultLogConfig(),
		InitialBalance: nil,
		DataOutputPath: "data",
	}
}

// Validate validates the BotConfig struct.
func (c BotConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid bot config", err)
	}

	return nil
}

// IndicatorParams returns the indicator spans.
func (c BotConfig) IndicatorParams() indicator.Params {
	return indicator.Params{
		FastSpan:  c.Strategy.EMAFast,
		SlowSpan:  c.Strategy.EMASlow,
		RSIPeriod: c.Strategy.RSIPeriod,
	}
}

// SignalConfig returns the detector configuration.
func (c BotConfig) SignalConfig() signal.Config {
	return signal.Config{
		RSIOverbought:       c.Strategy.RSIOverbought,
		RSIOversold:         c.Strategy.RSIOversold,
		EarlyExitMargin:     c.Strategy.EarlyExitMargin,
		ContinuationEnabled: c.Strategy.ContinuationEnabled,
		WarmUp:              c.IndicatorParams().WarmUp(),
	}
}

// PositionConfig returns the stop-loss and take-profit distances.
func (c BotConfig) PositionConfig() position.Config {
	return position.Config{
		StopLossPct:   c.Risk.StopLossPct,
		TakeProfitPct: c.Risk.TakeProfitPct,
	}
}

// CandleLimit is the number of candles requested per cycle.
func (c BotConfig) CandleLimit() int {
	return max(c.Timing.MinWindow, c.Strategy.RSIPeriod+c.Strategy.EMASlow+c.Timing.SafetyMargin)
}

// LoadConfig reads a YAML config file on top of the defaults and validates it.
func LoadConfig(path string) (BotConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return BotConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	return ParseConfig(content)
}

// ParseConfig parses YAML content on top of the defaults and validates it.
func ParseConfig(content []byte) (BotConfig, error) {
	config := DefaultBotConfig()
	if err := yaml.Unmarshal(content, &config); err != nil {
		return BotConfig{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := config.Validate(); err != nil {
		return BotConfig{}, err
	}

	return config, nil
}

// GetConfigSchema returns the JSON schema for BotConfig.
func GetConfigSchema() (string, error) {
	return schema.ToIndentedJSONSchema(BotConfig{}) //nolint:exhaustruct // Empty config for schema generation
}
