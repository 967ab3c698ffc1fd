package types

import "time"

// Candle is one OHLCV bar of the traded symbol.
// Candle slices are always ordered oldest to newest.
type Candle struct {
	Time   time.Time `csv:"time" json:"time" yaml:"time"`
	Open   float64   `csv:"open" json:"open" yaml:"open"`
	High   float64   `csv:"high" json:"high" yaml:"high"`
	Low    float64   `csv:"low" json:"low" yaml:"low"`
	Close  float64   `csv:"close" json:"close" yaml:"close"`
	Volume float64   `csv:"volume" json:"volume" yaml:"volume"`
}

// Closes extracts the close prices of the candles, preserving order.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	return closes
}

// IndicatorSeries holds the indicator values aligned index by index with the candles
// they were computed from. Every value at index i depends only on candles 0..i.
type IndicatorSeries struct {
	EMAFast []float64
	EMASlow []float64
	RSI     []float64
}

// Len returns the number of aligned points in the series.
func (s IndicatorSeries) Len() int {
	return len(s.RSI)
}

// IndicatorPoint is a single aligned sample of the indicator series.
type IndicatorPoint struct {
	EMAFast float64
	EMASlow float64
	RSI     float64
}

// At returns the point at index i. Negative indexes count from the end.
func (s IndicatorSeries) At(i int) IndicatorPoint {
	if i < 0 {
		i = s.Len() + i
	}

	return IndicatorPoint{
		EMAFast: s.EMAFast[i],
		EMASlow: s.EMASlow[i],
		RSI:     s.RSI[i],
	}
}
