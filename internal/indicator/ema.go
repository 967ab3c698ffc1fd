package indicator

// EMA returns the exponential moving average series of prices for the given span.
// The first value is seeded with the first price and every following value only
// depends on earlier prices.
func EMA(prices []float64, span int) []float64 {
	out := make([]float64, len(prices))
	if len(prices) == 0 || span <= 0 {
		return out
	}

	// alpha = 2/(span+1), no bias adjustment
	alpha := 2.0 / float64(span+1)

	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = prices[i]*alpha + out[i-1]*(1-alpha)
	}

	return out
}
