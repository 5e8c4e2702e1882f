package strategy

import "github.com/eddiefleurent/scranton_spreads/internal/models"

// LongCall buys one ATM call. Favored on bullish trend with positive
// momentum and cheap volatility.
type LongCall struct{}

// Name implements Strategy.
func (LongCall) Name() string { return "LongCall" }

// Phase implements Strategy.
func (LongCall) Phase() int { return PhaseCore }

// Score implements Strategy.
func (LongCall) Score(s models.Snapshot) float64 {
	score := 0.0
	if s.TrendOrNeutral() == models.TrendBullish && s.MomentumOrNeutral() == models.MomentumPositive {
		score += 2
	}
	if s.ImpliedVolatility < s.IVThresholdOrDefault() {
		score += 1
	}
	return score
}

// Run implements Strategy.
func (LongCall) Run(s models.Snapshot) []models.OrderIntent {
	return buildLegs(s, legSpec{atmStrike(s.Price), models.OptionCall, models.SideBuy})
}

// LongPut buys one ATM put. Favored on bearish trend with negative momentum
// and cheap volatility.
type LongPut struct{}

// Name implements Strategy.
func (LongPut) Name() string { return "LongPut" }

// Phase implements Strategy.
func (LongPut) Phase() int { return PhaseCore }

// Score implements Strategy.
func (LongPut) Score(s models.Snapshot) float64 {
	score := 0.0
	if s.TrendOrNeutral() == models.TrendBearish && s.MomentumOrNeutral() == models.MomentumNegative {
		score += 2
	}
	if s.ImpliedVolatility < s.IVThresholdOrDefault() {
		score += 1
	}
	return score
}

// Run implements Strategy.
func (LongPut) Run(s models.Snapshot) []models.OrderIntent {
	return buildLegs(s, legSpec{atmStrike(s.Price), models.OptionPut, models.SideBuy})
}

// Straddle buys an ATM call and an ATM put at the same strike. Favored on
// a neutral trend when volatility is cheap.
type Straddle struct{}

// Name implements Strategy.
func (Straddle) Name() string { return "Straddle" }

// Phase implements Strategy.
func (Straddle) Phase() int { return PhaseCore }

// Score implements Strategy.
func (Straddle) Score(s models.Snapshot) float64 {
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
func (Straddle) Run(s models.Snapshot) []models.OrderIntent {
	atm := atmStrike(s.Price)
	return buildLegs(s,
		legSpec{atm, models.OptionCall, models.SideBuy},
		legSpec{atm, models.OptionPut, models.SideBuy},
	)
}

// IronCondor sells an OTM put spread and an OTM call spread around the ATM
// strike: four legs, wings WingWidth beyond the short strikes. Favored on a
// neutral trend when volatility is rich.
type IronCondor struct{}

// Name implements Strategy.
func (IronCondor) Name() string { return "IronCondor" }

// Phase implements Strategy.
func (IronCondor) Phase() int { return PhaseCore }

// Score implements Strategy.
func (IronCondor) Score(s models.Snapshot) float64 {
	score := 0.0
	if s.TrendOrNeutral() == models.TrendNeutral {
		score += 1
		if s.ImpliedVolatility >= s.IVThresholdOrDefault() {
			score += 2
		}
	}
	return score
}

// Run implements Strategy.
func (IronCondor) Run(s models.Snapshot) []models.OrderIntent {
	atm := atmStrike(s.Price)
	return buildLegs(s,
		legSpec{atm - 2*WingWidth, models.OptionPut, models.SideBuy},
		legSpec{atm - WingWidth, models.OptionPut, models.SideSell},
		legSpec{atm + WingWidth, models.OptionCall, models.SideSell},
		legSpec{atm + 2*WingWidth, models.OptionCall, models.SideBuy},
	)
}

// VerticalSpread is the fallback: a two-leg debit spread in the trend's
// direction (calls up, puts down; neutral defaults to the call side). Its
// fixed baseline score keeps phase-1 selection from ever coming up empty.
type VerticalSpread struct{}

// Name implements Strategy.
func (VerticalSpread) Name() string { return "VerticalSpread" }

// Phase implements Strategy.
func (VerticalSpread) Phase() int { return PhaseCore }

// Score implements Strategy.
func (VerticalSpread) Score(models.Snapshot) float64 { return 0.5 }

// Run implements Strategy.
func (VerticalSpread) Run(s models.Snapshot) []models.OrderIntent {
	atm := atmStrike(s.Price)
	if s.TrendOrNeutral() == models.TrendBearish {
		return buildLegs(s,
			legSpec{atm, models.OptionPut, models.SideBuy},
			legSpec{atm - WingWidth, models.OptionPut, models.SideSell},
		)
	}
	return buildLegs(s,
		legSpec{atm, models.OptionCall, models.SideBuy},
		legSpec{atm + WingWidth, models.OptionCall, models.SideSell},
	)
}
