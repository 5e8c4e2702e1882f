// Package util provides small numeric helpers shared across the engine.
package util

import "math"

// RoundToTick rounds x to the nearest tick increment.
// For example, with tick=0.01, 1.2345 becomes 1.23.
func RoundToTick(x, tick float64) float64 {
	if tick <= 0 {
		return x
	}
	return math.Round(x/tick) * tick
}

// RoundCents rounds x to two decimal places, the tick used for protective
// order prices.
func RoundCents(x float64) float64 {
	return RoundToTick(x, 0.01)
}
