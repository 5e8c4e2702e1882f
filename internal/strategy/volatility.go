package strategy

import (
	"time"

	"github.com/eddiefleurent/scranton_spreads/internal/models"
)

// GammaScalping buys the ATM call and put simultaneously to capture
// realized movement. Only emits when the trend is neutral; cheap entry
// volatility scores higher.
type GammaScalping struct{}

// Name implements Strategy.
func (GammaScalping) Name() string { return "GammaScalping" }

// Phase implements Strategy.
func (GammaScalping) Phase() int { return PhaseAdvanced }

// Score implements Strategy.
func (GammaScalping) Score(s models.Snapshot) float64 {
	score := 0.0
	if s.TrendOrNeutral() == models.TrendNeutral {
		score += 1
		if s.ImpliedVolatility < s.IVThresholdOrDefault() {
			score += 1
		}
	}
	return score
}

// Run implements Strategy.
func (GammaScalping) Run(s models.Snapshot) []models.OrderIntent {
	if s.TrendOrNeutral() != models.TrendNeutral {
		return nil
	}
	atm := atmStrike(s.Price)
	return buildLegs(s,
		legSpec{atm, models.OptionCall, models.SideBuy},
		legSpec{atm, models.OptionPut, models.SideBuy},
	)
}

// RatioBackspread sells one ATM option and buys two OTM options of the
// same type, direction chosen by momentum sign: calls on positive momentum,
// puts on negative. Neutral momentum emits nothing.
type RatioBackspread struct{}

// Name implements Strategy.
func (RatioBackspread) Name() string { return "RatioBackspread" }

// Phase implements Strategy.
func (RatioBackspread) Phase() int { return PhaseAdvanced }

// Score implements Strategy.
func (RatioBackspread) Score(s models.Snapshot) float64 {
	trend, momentum := s.TrendOrNeutral(), s.MomentumOrNeutral()
	score := 0.0
	if (trend == models.TrendBullish && momentum == models.MomentumPositive) ||
		(trend == models.TrendBearish && momentum == models.MomentumNegative) {
		score += 2
	}
	if s.ImpliedVolatility < s.IVThresholdOrDefault() {
		score += 1
	}
	return score
}

// Run implements Strategy.
func (RatioBackspread) Run(s models.Snapshot) []models.OrderIntent {
	atm := atmStrike(s.Price)
	switch s.MomentumOrNeutral() {
	case models.MomentumPositive:
		return buildLegs(s,
			legSpec{atm, models.OptionCall, models.SideSell},
			legSpec{atm + WingWidth, models.OptionCall, models.SideBuy},
			legSpec{atm + WingWidth, models.OptionCall, models.SideBuy},
		)
	case models.MomentumNegative:
		return buildLegs(s,
			legSpec{atm, models.OptionPut, models.SideSell},
			legSpec{atm - WingWidth, models.OptionPut, models.SideBuy},
			legSpec{atm - WingWidth, models.OptionPut, models.SideBuy},
		)
	default:
		return nil
	}
}

// ZeroDTE buys a single ATM option expiring the same day, direction chosen
// by momentum sign. It scores and trades only when the snapshot's
// expiration falls on the evaluation date.
type ZeroDTE struct{}

// Name implements Strategy.
func (ZeroDTE) Name() string { return "ZeroDTE" }

// Phase implements Strategy.
func (ZeroDTE) Phase() int { return PhaseAdvanced }

// Score implements Strategy.
func (ZeroDTE) Score(s models.Snapshot) float64 {
	if !expiresToday(s.Expiration) {
		return 0
	}
	score := 1.0
	if s.MomentumOrNeutral() != models.MomentumNeutral {
		score += 1
	}
	return score
}

// Run implements Strategy.
func (ZeroDTE) Run(s models.Snapshot) []models.OrderIntent {
	if !expiresToday(s.Expiration) {
		return nil
	}
	switch s.MomentumOrNeutral() {
	case models.MomentumPositive:
		return buildLegs(s, legSpec{atmStrike(s.Price), models.OptionCall, models.SideBuy})
	case models.MomentumNegative:
		return buildLegs(s, legSpec{atmStrike(s.Price), models.OptionPut, models.SideBuy})
	default:
		return nil
	}
}

func expiresToday(expiration time.Time) bool {
	now := time.Now()
	y1, m1, d1 := expiration.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
