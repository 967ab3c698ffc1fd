// Package replay runs the crossover and RSI rules over a recorded close series.
// It has no position state and no risk exits: every matching index is reported.
package replay

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/crossover-trader/internal/indicator"
	"github.com/rxtech-lab/crossover-trader/internal/types"
	"github.com/rxtech-lab/crossover-trader/pkg/errors"
)

// RuleSet selects which rules are applied.
type RuleSet string

const (
	// RuleSetEMA reports fast/slow EMA crossovers only
	RuleSetEMA RuleSet = "ema"
	// RuleSetRSI reports RSI reversals out of the oversold and overbought zones only
	RuleSetRSI RuleSet = "rsi"
	// RuleSetBoth tries the EMA rules first and falls back to the RSI rules
	RuleSetBoth RuleSet = "both"
)

// ParseRuleSet converts a command line value into a RuleSet.
func ParseRuleSet(value string) (RuleSet, error) {
	switch RuleSet(strings.ToLower(strings.TrimSpace(value))) {
	case RuleSetEMA:
		return RuleSetEMA, nil
	case RuleSetRSI:
		return RuleSetRSI, nil
	case RuleSetBoth:
		return RuleSetBoth, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidParameter, "unknown rule set %q, expected ema, rsi or both", value)
	}
}

// Config holds the indicator periods and RSI levels of a replay.
type Config struct {
	Params        indicator.Params
	RSIOverbought float64 `validate:"gt=0,lte=100,gtfield=RSIOversold"`
	RSIOversold   float64 `validate:"gte=0,lt=100"`
	Rules         RuleSet `validate:"required,oneof=ema rsi both"`
}

// DefaultConfig returns the live bot's indicator settings with both rule sets.
func DefaultConfig() Config {
	return Config{
		Params: indicator.Params{
			FastSpan:  9,
			SlowSpan:  21,
			RSIPeriod: 14,
		},
		RSIOverbought: 70,
		RSIOversold:   30,
		Rules:         RuleSetBoth,
	}
}

// Validate validates the Config struct.
func (c Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid replay config", err)
	}

	return nil
}

// Operation is a signal found at one index of the series.
type Operation struct {
	Index int                `csv:"index"`
	Side  types.PurchaseType `csv:"side"`
	Price float64            `csv:"price"`
}

// String renders the operation as "index: SIDE @ price".
func (o Operation) String() string {
	return fmt.Sprintf("%d: %s @ %v", o.Index, o.Side, o.Price)
}

type closeRow struct {
	Close float64 `csv:"close"`
}

// LoadCloses reads the close column of a CSV file. Other columns are ignored.
func LoadCloses(path string) ([]float64, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataNotFound, err, "failed to read %s", path)
	}

	return ParseCloses(content)
}

// ParseCloses reads the close column of CSV content with a header row.
func ParseCloses(content []byte) ([]float64, error) {
	header, err := csv.NewReader(bytes.NewReader(content)).Read()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to read csv header", err)
	}

	if !hasColumn(header, "close") {
		return nil, errors.New(errors.ErrCodeMarketDataParseFailed, "csv must contain a close column")
	}

	var rows []closeRow
	if err := gocsv.UnmarshalBytes(content, &rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to parse csv rows", err)
	}

	closes := make([]float64, len(rows))
	for i, row := range rows {
		closes[i] = row.Close
	}

	return closes, nil
}

func hasColumn(header []string, name string) bool {
	for _, column := range header {
		if strings.TrimSpace(column) == name {
			return true
		}
	}

	return false
}

// Run applies the configured rules at every index after the first.
// The EMA and RSI series are computed over the whole input up front. RSI points
// with no price movement yet are left undefined and never match a reversal.
func Run(closes []float64, config Config) ([]Operation, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	fast := indicator.EMA(closes, config.Params.FastSpan)
	slow := indicator.EMA(closes, config.Params.SlowSpan)
	rsi := indicator.RSIWithGaps(closes, config.Params.RSIPeriod)

	operations := []Operation{}

	for i := 1; i < len(closes); i++ {
		var side types.PurchaseType

		ok := false

		if config.Rules == RuleSetEMA || config.Rules == RuleSetBoth {
			side, ok = crossover(fast, slow, i)
		}

		if !ok && (config.Rules == RuleSetRSI || config.Rules == RuleSetBoth) {
			side, ok = reversal(rsi, i, config.RSIOversold, config.RSIOverbought)
		}

		if ok {
			operations = append(operations, Operation{Index: i, Side: side, Price: closes[i]})
		}
	}

	return operations, nil
}

func crossover(fast, slow []float64, i int) (types.PurchaseType, bool) {
	switch {
	case fast[i] > slow[i] && fast[i-1] <= slow[i-1]:
		return types.PurchaseTypeBuy, true
	case fast[i] < slow[i] && fast[i-1] >= slow[i-1]:
		return types.PurchaseTypeSell, true
	default:
		return "", false
	}
}

func reversal(rsi []float64, i int, oversold, overbought float64) (types.PurchaseType, bool) {
	if math.IsNaN(rsi[i-1]) || math.IsNaN(rsi[i]) {
		return "", false
	}

	switch {
	case rsi[i-1] < oversold && rsi[i] > rsi[i-1]:
		return types.PurchaseTypeBuy, true
	case rsi[i-1] > overbought && rsi[i] < rsi[i-1]:
		return types.PurchaseTypeSell, true
	default:
		return "", false
	}
}

// WriteOperations writes the operations as CSV to path.
func WriteOperations(path string, operations []Operation) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeWriterFailed, err, "failed to create %s", path)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&operations, file); err != nil {
		return errors.Wrap(errors.ErrCodeWriterFailed, "failed to write operations", err)
	}

	return nil
}

// WriteCandles writes candles as CSV with a header row. The close column can be
// read back with LoadCloses.
func WriteCandles(path string, candles []types.Candle) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeWriterFailed, err, "failed to create %s", path)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&candles, file); err != nil {
		return errors.Wrap(errors.ErrCodeWriterFailed, "failed to write candles", err)
	}

	return nil
}
