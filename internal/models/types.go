// Package models defines the market snapshot and order intent types shared
// by the selection, risk and execution layers.
package models

// Trend classifies the direction of the underlying's recent price action.
type Trend string

// Trend values.
const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

// Momentum classifies the most recent close-to-close move.
type Momentum string

// Momentum values.
const (
	MomentumPositive Momentum = "positive"
	MomentumNegative Momentum = "negative"
	MomentumNeutral  Momentum = "neutral"
)

// Side is the direction of an order leg.
type Side string

// Side values.
const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// OptionType is the contract type of an option leg.
type OptionType string

// OptionType values.
const (
	OptionCall OptionType = "call"
	OptionPut  OptionType = "put"
)

// Order parameter constants. The engine only places day market orders.
const (
	OrderTypeMarket = "market"
	TIFDay          = "day"
)
