package strategy

import "github.com/eddiefleurent/scranton_spreads/internal/models"

// Wheel sells one OTM put, collecting premium with the intent of taking
// assignment. Only emits on a bullish trend with positive momentum; rich
// volatility scores higher.
type Wheel struct{}

// Name implements Strategy.
func (Wheel) Name() string { return "Wheel" }

// Phase implements Strategy.
func (Wheel) Phase() int { return PhaseAdvanced }

// Score implements Strategy.
func (Wheel) Score(s models.Snapshot) float64 {
	score := 0.0
	if s.TrendOrNeutral() == models.TrendBullish && s.MomentumOrNeutral() == models.MomentumPositive {
		score += 2
	}
	if s.ImpliedVolatility >= s.IVThresholdOrDefault() {
		score += 1
	}
	return score
}

// Run implements Strategy.
func (Wheel) Run(s models.Snapshot) []models.OrderIntent {
	if s.TrendOrNeutral() != models.TrendBullish || s.MomentumOrNeutral() != models.MomentumPositive {
		return nil
	}
	return buildLegs(s, legSpec{atmStrike(s.Price) - WingWidth, models.OptionPut, models.SideSell})
}

// CoveredCall sells one ATM call against assumed stock ownership. Only
// emits on a bullish trend with positive momentum; rich volatility scores
// higher.
type CoveredCall struct{}

// Name implements Strategy.
func (CoveredCall) Name() string { return "CoveredCall" }

// Phase implements Strategy.
func (CoveredCall) Phase() int { return PhaseAdvanced }

// Score implements Strategy.
func (CoveredCall) Score(s models.Snapshot) float64 {
	score := 0.0
	if s.TrendOrNeutral() == models.TrendBullish && s.MomentumOrNeutral() == models.MomentumPositive {
		score += 2
	}
	if s.ImpliedVolatility >= s.IVThresholdOrDefault() {
		score += 1
	}
	return score
}

// Run implements Strategy.
func (CoveredCall) Run(s models.Snapshot) []models.OrderIntent {
	if s.TrendOrNeutral() != models.TrendBullish || s.MomentumOrNeutral() != models.MomentumPositive {
		return nil
	}
	return buildLegs(s, legSpec{atmStrike(s.Price), models.OptionCall, models.SideSell})
}

// ProtectivePut buys one ATM put to hedge assumed stock ownership. Only
// emits on a bearish trend with negative momentum; rich volatility scores
// higher.
type ProtectivePut struct{}

// Name implements Strategy.
func (ProtectivePut) Name() string { return "ProtectivePut" }

// Phase implements Strategy.
func (ProtectivePut) Phase() int { return PhaseAdvanced }

// Score implements Strategy.
func (ProtectivePut) Score(s models.Snapshot) float64 {
	score := 0.0
	if s.TrendOrNeutral() == models.TrendBearish && s.MomentumOrNeutral() == models.MomentumNegative {
		score += 2
	}
	if s.ImpliedVolatility >= s.IVThresholdOrDefault() {
		score += 1
	}
	return score
}

// Run implements Strategy.
func (ProtectivePut) Run(s models.Snapshot) []models.OrderIntent {
	if s.TrendOrNeutral() != models.TrendBearish || s.MomentumOrNeutral() != models.MomentumNegative {
		return nil
	}
	return buildLegs(s, legSpec{atmStrike(s.Price), models.OptionPut, models.SideBuy})
}
