package models

// OrderIntent is one option leg the engine intends to trade. Strategies
// produce intents; the risk adjuster is the only component that mutates
// them before execution.
type OrderIntent struct {
	Symbol      string // OCC option symbol
	Quantity    int    // contracts, >= 1 after all adjustments
	Side        Side
	OrderType   string // currently always "market"
	TimeInForce string // "day"

	// Protective-order parameters attached by the risk adjuster.
	// Zero means unset.
	StopLossPrice       float64
	TakeProfitPrice     float64
	TrailingStopPercent float64
}
