// Package strategy defines the catalog of option strategies the engine
// selects from. Every strategy is stateless: Score and Run are pure
// functions over a snapshot, safe to call speculatively and repeatedly.
package strategy

import (
	"math"

	"github.com/eddiefleurent/scranton_spreads/internal/models"
)

// WingWidth is the fixed distance, in price units, between the ATM strike
// and any OTM or wing leg. It is a tunable constant, not derived from
// volatility.
const WingWidth = 2.0

// Eligibility phases. Core strategies are always eligible; advanced ones
// require the selector's phase ceiling to be at least PhaseAdvanced.
const (
	PhaseCore     = 1
	PhaseAdvanced = 2
)

// Strategy is one catalog entry. Implementations carry no state.
type Strategy interface {
	// Name uniquely identifies the strategy. Names participate in the
	// selector's alphabetical tie-break and policy checks.
	Name() string
	// Phase is the eligibility tier, >= 1.
	Phase() int
	// Score rates the strategy against a snapshot. Higher wins. Scores are
	// bonus-additive from independent boolean conditions and never negative.
	Score(s models.Snapshot) float64
	// Run produces the order intents for a snapshot, or nil when the
	// strategy's preconditions do not hold. Run performs no I/O and no
	// mutation: the selector calls it on a synthetic probe snapshot to
	// break ties by leg count.
	Run(s models.Snapshot) []models.OrderIntent
}

// Catalog returns the full registry in declaration order. The order is part
// of the selection contract: phase-1 ties resolve to the earliest entry.
func Catalog() []Strategy {
	return []Strategy{
		LongCall{},
		LongPut{},
		Straddle{},
		IronCondor{},
		VerticalSpread{},
		BullCallSpread{},
		BearPutSpread{},
		CalendarSpread{},
		IronButterfly{},
		GammaScalping{},
		Wheel{},
		CoveredCall{},
		ProtectivePut{},
		RatioBackspread{},
		Strangle{},
		ShortStraddle{},
		Collar{},
		ZeroDTE{},
	}
}

// atmStrike is the at-the-money strike for a price.
func atmStrike(price float64) float64 {
	return math.Round(price)
}

// legSpec describes one leg of a position before symbol construction.
type legSpec struct {
	strike  float64
	optType models.OptionType
	side    models.Side
}

// buildLegs assembles one-contract day market intents for the given legs.
// Any leg with a non-positive strike invalidates the whole set: strategies
// emit complete positions or nothing.
func buildLegs(s models.Snapshot, specs ...legSpec) []models.OrderIntent {
	intents := make([]models.OrderIntent, 0, len(specs))
	for _, spec := range specs {
		if spec.strike <= 0 {
			return nil
		}
		intents = append(intents, models.OrderIntent{
			Symbol:      models.FormatOCC(s.Ticker, s.Expiration, spec.strike, spec.optType),
			Quantity:    1,
			Side:        spec.side,
			OrderType:   models.OrderTypeMarket,
			TimeInForce: models.TIFDay,
		})
	}
	return intents
}
