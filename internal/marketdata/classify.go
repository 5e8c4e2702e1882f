package marketdata

import (
	"time"

	"github.com/eddiefleurent/scranton_spreads/internal/models"
)

// ClassifyTrend compares the latest price to the 20-day simple moving
// average. With fewer than 20 closes the trend is neutral: too little
// history to take a directional view.
func ClassifyTrend(price float64, closes []float64) models.Trend {
	if len(closes) < trendWindow {
		return models.TrendNeutral
	}

	sum := 0.0
	for _, c := range closes[len(closes)-trendWindow:] {
		sum += c
	}
	ma := sum / float64(trendWindow)

	switch {
	case price > ma:
		return models.TrendBullish
	case price < ma:
		return models.TrendBearish
	default:
		return models.TrendNeutral
	}
}

// ClassifyMomentum compares the last two closes. Fewer than two closes is
// neutral. The comparison is strictly greater-than, so a flat pair counts
// as negative.
func ClassifyMomentum(closes []float64) models.Momentum {
	if len(closes) < 2 {
		return models.MomentumNeutral
	}
	if closes[len(closes)-1] > closes[len(closes)-2] {
		return models.MomentumPositive
	}
	return models.MomentumNegative
}

// NextFriday returns the next Friday on or after ref, at ref's clock time.
// Weekly option cycles expire on Fridays; a Friday ref maps to itself.
func NextFriday(ref time.Time) time.Time {
	days := (int(time.Friday) - int(ref.Weekday()) + 7) % 7
	return ref.AddDate(0, 0, days)
}
