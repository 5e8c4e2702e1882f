package strategy

import (
	"time"

	"github.com/eddiefleurent/scranton_spreads/internal/models"
)

// calendarFarOffset separates the calendar spread's far-term long leg from
// the snapshot's near-term expiration.
const calendarFarOffset = 7 * 24 * time.Hour

// BullCallSpread buys the ATM call and sells a call WingWidth above it.
// Only emits when the trend is bullish.
type BullCallSpread struct{}

// Name implements Strategy.
func (BullCallSpread) Name() string { return "BullCallSpread" }

// Phase implements Strategy.
func (BullCallSpread) Phase() int { return PhaseAdvanced }

// Score implements Strategy.
func (BullCallSpread) Score(s models.Snapshot) float64 {
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
func (BullCallSpread) Run(s models.Snapshot) []models.OrderIntent {
	if s.TrendOrNeutral() != models.TrendBullish {
		return nil
	}
	atm := atmStrike(s.Price)
	return buildLegs(s,
		legSpec{atm, models.OptionCall, models.SideBuy},
		legSpec{atm + WingWidth, models.OptionCall, models.SideSell},
	)
}

// BearPutSpread buys the ATM put and sells a put WingWidth below it.
// Only emits when the trend is bearish.
type BearPutSpread struct{}

// Name implements Strategy.
func (BearPutSpread) Name() string { return "BearPutSpread" }

// Phase implements Strategy.
func (BearPutSpread) Phase() int { return PhaseAdvanced }

// Score implements Strategy.
func (BearPutSpread) Score(s models.Snapshot) float64 {
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
func (BearPutSpread) Run(s models.Snapshot) []models.OrderIntent {
	if s.TrendOrNeutral() != models.TrendBearish {
		return nil
	}
	atm := atmStrike(s.Price)
	return buildLegs(s,
		legSpec{atm, models.OptionPut, models.SideBuy},
		legSpec{atm - WingWidth, models.OptionPut, models.SideSell},
	)
}

// CalendarSpread buys a far-term ATM call expiring seven calendar days
// after the snapshot's expiration and sells the near-term ATM call at the
// same strike. Only emits when the trend is neutral.
type CalendarSpread struct{}

// Name implements Strategy.
func (CalendarSpread) Name() string { return "CalendarSpread" }

// Phase implements Strategy.
func (CalendarSpread) Phase() int { return PhaseAdvanced }

// Score implements Strategy.
func (CalendarSpread) Score(s models.Snapshot) float64 {
	iv, th := s.ImpliedVolatility, s.IVThresholdOrDefault()
	score := 0.0
	switch s.TrendOrNeutral() {
	case models.TrendNeutral:
		score += 2
		if iv < th {
			score += 1
		}
	case models.TrendBullish:
		if iv < th {
			score += 1
		}
	case models.TrendBearish:
		if iv >= th {
			score += 1
		}
	}
	return score
}

// Run implements Strategy.
func (CalendarSpread) Run(s models.Snapshot) []models.OrderIntent {
	if s.TrendOrNeutral() != models.TrendNeutral {
		return nil
	}
	atm := atmStrike(s.Price)
	far := s
	far.Expiration = s.Expiration.Add(calendarFarOffset)
	farLegs := buildLegs(far, legSpec{atm, models.OptionCall, models.SideBuy})
	nearLegs := buildLegs(s, legSpec{atm, models.OptionCall, models.SideSell})
	if farLegs == nil || nearLegs == nil {
		return nil
	}
	return append(farLegs, nearLegs...)
}

// IronButterfly sells an ATM straddle and buys protective wings WingWidth
// either side. Only emits when the trend is neutral.
type IronButterfly struct{}

// Name implements Strategy.
func (IronButterfly) Name() string { return "IronButterfly" }

// Phase implements Strategy.
func (IronButterfly) Phase() int { return PhaseAdvanced }

// Score implements Strategy.
func (IronButterfly) Score(s models.Snapshot) float64 {
	iv, th := s.ImpliedVolatility, s.IVThresholdOrDefault()
	score := 0.0
	switch s.TrendOrNeutral() {
	case models.TrendNeutral:
		score += 2
		if iv >= th {
			score += 1
		}
	case models.TrendBullish:
		if iv >= th {
			score += 1
		}
	case models.TrendBearish:
		if iv < th {
			score += 1
		}
	}
	return score
}

// Run implements Strategy.
func (IronButterfly) Run(s models.Snapshot) []models.OrderIntent {
	if s.TrendOrNeutral() != models.TrendNeutral {
		return nil
	}
	atm := atmStrike(s.Price)
	return buildLegs(s,
		legSpec{atm - WingWidth, models.OptionPut, models.SideBuy},
		legSpec{atm, models.OptionPut, models.SideSell},
		legSpec{atm, models.OptionCall, models.SideSell},
		legSpec{atm + WingWidth, models.OptionCall, models.SideBuy},
	)
}
