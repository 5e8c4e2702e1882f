package util

import (
	"math"
	"testing"
)

func TestRoundToTick(t *testing.T) {
	tests := []struct {
		x, tick, want float64
	}{
		{1.2345, 0.01, 1.23},
		{1.235, 0.01, 1.24},
		{96.66667, 0.01, 96.67},
		{100.0, 0.05, 100.0},
		{100.07, 0.05, 100.05},
		{42.0, 0, 42.0}, // non-positive tick passes through
		{42.0, -0.01, 42.0},
	}
	for _, tt := range tests {
		if got := RoundToTick(tt.x, tt.tick); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("RoundToTick(%v, %v) = %v, want %v", tt.x, tt.tick, got, tt.want)
		}
	}
}

func TestRoundCents(t *testing.T) {
	if got := RoundCents(89.999); math.Abs(got-90.0) > 1e-9 {
		t.Errorf("RoundCents(89.999) = %v, want 90.0", got)
	}
	if got := RoundCents(107.994); math.Abs(got-107.99) > 1e-9 {
		t.Errorf("RoundCents(107.994) = %v, want 107.99", got)
	}
}
