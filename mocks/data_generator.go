package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/crossover-trader/internal/types"
)

// CandleGenerator generates realistic candles for tests.
type CandleGenerator struct {
	rng *rand.Rand
}

// NewCandleGenerator creates a new CandleGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewCandleGenerator(seed int64) *CandleGenerator {
	return &CandleGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how candles are generated.
type GeneratorConfig struct {
	// StartTime is the open time of the first candle
	StartTime time.Time
	// Interval is the duration between each bar
	Interval time.Duration
	// Count is the number of candles to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% per bar)
	Volatility float64
	// Trend is the total drift over the series (-0.1 to 0.1 for bearish to bullish)
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
}

// DefaultConfig returns five minute BTC-like candles.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		StartTime:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:     5 * time.Minute,
		Count:        100,
		InitialPrice: 60000.0,
		Volatility:   0.002, // 0.2% per bar
		Trend:        0.0,   // neutral
		VolumeBase:   2.5,
	}
}

// Generate creates candles following a geometric Brownian motion model.
func (g *CandleGenerator) Generate(config GeneratorConfig) []types.Candle {
	candles := make([]types.Candle, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		open := currentPrice

		// Box-Muller transform for a normally distributed move
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		drift := config.Trend / float64(config.Count)

		closePrice := open * (1 + config.Volatility*z + drift)
		if closePrice <= 0 {
			closePrice = open * 0.99
		}

		high := math.Max(open, closePrice) * (1 + g.rng.Float64()*config.Volatility*0.5)
		low := math.Min(open, closePrice) * (1 - g.rng.Float64()*config.Volatility*0.5)

		candles[i] = types.Candle{
			Time:   currentTime,
			Open:   roundToDecimals(open, 2),
			High:   roundToDecimals(high, 2),
			Low:    roundToDecimals(low, 2),
			Close:  roundToDecimals(closePrice, 2),
			Volume: roundToDecimals(config.VolumeBase*(0.5+g.rng.Float64()), 4),
		}

		currentPrice = closePrice
		currentTime = currentTime.Add(config.Interval)
	}

	return candles
}

// CandlesFromCloses builds flat candles whose open, high, low and close all equal
// the given closes, spaced interval apart from start.
func CandlesFromCloses(start time.Time, interval time.Duration, closes ...float64) []types.Candle {
	candles := make([]types.Candle, len(closes))

	for i, c := range closes {
		candles[i] = types.Candle{
			Time:   start.Add(time.Duration(i) * interval),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1,
		}
	}

	return candles
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
