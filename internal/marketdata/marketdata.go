// Package marketdata derives the scoring metrics from raw price history:
// realized volatility, trend, and momentum, plus the weekly expiration
// cycle used for option symbols.
package marketdata

import "math"

// trendWindow is the moving-average lookback for trend classification.
const trendWindow = 20

// annualization converts daily return variance to an annual figure, using
// the conventional 252 trading days.
const annualization = 252

// HistoricalVolatility returns the annualized population standard deviation
// of daily log returns. Fewer than two closes yields 0.
func HistoricalVolatility(closes []float64) float64 {
	if len(closes) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			continue
		}
		returns = append(returns, math.Log(closes[i]/closes[i-1]))
	}
	if len(returns) == 0 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns))

	return math.Sqrt(variance) * math.Sqrt(annualization)
}
