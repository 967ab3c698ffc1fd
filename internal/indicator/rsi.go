package indicator

import "math"

// RSI returns the relative strength index series of prices for the given period.
//
// Gains and losses are smoothed with the same exponential average as EMA. The first
// price has no predecessor and contributes a zero gain and a zero loss.
// When the average loss is zero the ratio is undefined and a fixed value is used:
// 100 when the average gain is positive, 0 when both averages are zero.
func RSI(prices []float64, period int) []float64 {
	return rsi(prices, period, 0)
}

// RSIWithGaps is RSI without the 0/0 fallback: points where both averages are
// zero (the first price, flat stretches) are math.NaN() and compare false with any level.
func RSIWithGaps(prices []float64, period int) []float64 {
	return rsi(prices, period, math.NaN())
}

func rsi(prices []float64, period int, flat float64) []float64 {
	out := make([]float64, len(prices))
	if len(prices) == 0 || period <= 0 {
		return out
	}

	gains := make([]float64, len(prices))
	losses := make([]float64, len(prices))

	for i := 1; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			gains[i] = delta
		} else if delta < 0 {
			losses[i] = -delta
		}
	}

	avgGain := EMA(gains, period)
	avgLoss := EMA(losses, period)

	for i := range prices {
		out[i] = rsiValue(avgGain[i], avgLoss[i], flat)
	}

	return out
}

func rsiValue(avgGain, avgLoss, flat float64) float64 {
	if avgLoss == 0 {
		if avgGain > 0 {
			return 100
		}

		return flat
	}

	rs := avgGain / avgLoss

	return 100 - 100/(1+rs)
}
