package strategy

import "github.com/eddiefleurent/scranton_spreads/internal/models"

// Strangle buys an OTM call and an OTM put WingWidth either side of ATM.
// Only emits when the trend is neutral; cheap volatility scores higher.
type Strangle struct{}

// Name implements Strategy.
func (Strangle) Name() string { return "Strangle" }

// Phase implements Strategy.
func (Strangle) Phase() int { return PhaseAdvanced }

// Score implements Strategy.
func (Strangle) Score(s models.Snapshot) float64 {
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
func (Strangle) Run(s models.Snapshot) []models.OrderIntent {
	if s.TrendOrNeutral() != models.TrendNeutral {
		return nil
	}
	atm := atmStrike(s.Price)
	return buildLegs(s,
		legSpec{atm + WingWidth, models.OptionCall, models.SideBuy},
		legSpec{atm - WingWidth, models.OptionPut, models.SideBuy},
	)
}

// ShortStraddle sells the ATM put and call. Only emits when the trend is
// neutral; rich volatility scores higher.
type ShortStraddle struct{}

// Name implements Strategy.
func (ShortStraddle) Name() string { return "ShortStraddle" }

// Phase implements Strategy.
func (ShortStraddle) Phase() int { return PhaseAdvanced }

// Score implements Strategy.
func (ShortStraddle) Score(s models.Snapshot) float64 {
	score := 0.0
	if s.TrendOrNeutral() == models.TrendNeutral {
		score += 1
		if s.ImpliedVolatility >= s.IVThresholdOrDefault() {
			score += 1
		}
	}
	return score
}

// Run implements Strategy.
func (ShortStraddle) Run(s models.Snapshot) []models.OrderIntent {
	if s.TrendOrNeutral() != models.TrendNeutral {
		return nil
	}
	atm := atmStrike(s.Price)
	return buildLegs(s,
		legSpec{atm, models.OptionPut, models.SideSell},
		legSpec{atm, models.OptionCall, models.SideSell},
	)
}

// Collar sells an OTM call and buys an OTM put against an assumed long
// stock position. Only emits when the trend is neutral. Rich volatility
// scores a bonus regardless of trend, and the selector prefers Collar
// outright on neutral high-IV ties.
type Collar struct{}

// Name implements Strategy.
func (Collar) Name() string { return "Collar" }

// Phase implements Strategy.
func (Collar) Phase() int { return PhaseAdvanced }

// Score implements Strategy.
func (Collar) Score(s models.Snapshot) float64 {
	score := 0.0
	if s.TrendOrNeutral() == models.TrendNeutral {
		score += 2
	}
	if s.ImpliedVolatility >= s.IVThresholdOrDefault() {
		score += 1
	}
	return score
}

// Run implements Strategy.
func (Collar) Run(s models.Snapshot) []models.OrderIntent {
	if s.TrendOrNeutral() != models.TrendNeutral {
		return nil
	}
	atm := atmStrike(s.Price)
	return buildLegs(s,
		legSpec{atm + WingWidth, models.OptionCall, models.SideSell},
		legSpec{atm - WingWidth, models.OptionPut, models.SideBuy},
	)
}
