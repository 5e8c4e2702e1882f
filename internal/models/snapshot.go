package models

import "time"

// DefaultIVThreshold is the IV cutoff used when the snapshot does not carry
// a caller-supplied one.
const DefaultIVThreshold = 0.25

// Snapshot is an immutable view of one underlying at one point in time.
// All strategy scoring and order construction happens against a snapshot;
// missing fields degrade to neutral/zero rather than erroring.
type Snapshot struct {
	Ticker            string
	Price             float64
	ClosePrices       []float64 // oldest to newest
	ImpliedVolatility float64   // annualized realized-vol proxy
	Trend             Trend
	Momentum          Momentum
	IVThreshold       float64
	Expiration        time.Time // nearest weekly cycle
}

// TrendOrNeutral returns the snapshot's trend, defaulting to neutral.
func (s Snapshot) TrendOrNeutral() Trend {
	if s.Trend == "" {
		return TrendNeutral
	}
	return s.Trend
}

// MomentumOrNeutral returns the snapshot's momentum, defaulting to neutral.
func (s Snapshot) MomentumOrNeutral() Momentum {
	if s.Momentum == "" {
		return MomentumNeutral
	}
	return s.Momentum
}

// IVThresholdOrDefault returns the snapshot's IV threshold, defaulting to
// DefaultIVThreshold when unset.
func (s Snapshot) IVThresholdOrDefault() float64 {
	if s.IVThreshold == 0 {
		return DefaultIVThreshold
	}
	return s.IVThreshold
}
