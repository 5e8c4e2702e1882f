package marketdata

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"testing"
	"time"

	"github.com/eddiefleurent/scranton_spreads/internal/broker"
	"github.com/eddiefleurent/scranton_spreads/internal/models"
)

func TestHistoricalVolatility(t *testing.T) {
	if got := HistoricalVolatility(nil); got != 0 {
		t.Errorf("no data = %v, want 0", got)
	}
	if got := HistoricalVolatility([]float64{100}); got != 0 {
		t.Errorf("single close = %v, want 0", got)
	}
	if got := HistoricalVolatility([]float64{100, 100, 100}); got != 0 {
		t.Errorf("flat closes = %v, want 0", got)
	}

	// Symmetric up-down path: returns are +r and -r, so the population
	// standard deviation is exactly r.
	closes := []float64{100, 105, 100}
	r := math.Log(1.05)
	want := r * math.Sqrt(252)
	if got := HistoricalVolatility(closes); math.Abs(got-want) > 1e-9 {
		t.Errorf("HistoricalVolatility(%v) = %v, want %v", closes, got, want)
	}

	// Non-positive closes are skipped rather than producing NaN.
	if got := HistoricalVolatility([]float64{100, 0, 100}); math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("zero close produced %v", got)
	}
}

func TestClassifyTrend(t *testing.T) {
	flat := make([]float64, 20)
	for i := range flat {
		flat[i] = 100
	}

	tests := []struct {
		name   string
		price  float64
		closes []float64
		want   models.Trend
	}{
		{"insufficient history", 105, flat[:19], models.TrendNeutral},
		{"above average", 105, flat, models.TrendBullish},
		{"below average", 95, flat, models.TrendBearish},
		{"at average", 100, flat, models.TrendNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyTrend(tt.price, tt.closes); got != tt.want {
				t.Errorf("ClassifyTrend(%v) = %v, want %v", tt.price, got, tt.want)
			}
		})
	}
}

func TestClassifyTrendUsesTrailingWindow(t *testing.T) {
	// Old history outside the 20-bar window must not influence the average.
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 1000 // stale
	}
	for i := 10; i < 30; i++ {
		closes[i] = 100
	}
	if got := ClassifyTrend(105, closes); got != models.TrendBullish {
		t.Errorf("got %v, want bullish against trailing average", got)
	}
}

func TestClassifyMomentum(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   models.Momentum
	}{
		{"insufficient history", []float64{100}, models.MomentumNeutral},
		{"up", []float64{100, 101}, models.MomentumPositive},
		{"down", []float64{101, 100}, models.MomentumNegative},
		{"flat counts as negative", []float64{100, 100}, models.MomentumNegative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyMomentum(tt.closes); got != tt.want {
				t.Errorf("ClassifyMomentum(%v) = %v, want %v", tt.closes, got, tt.want)
			}
		})
	}
}

func TestNextFriday(t *testing.T) {
	tests := []struct {
		name string
		ref  time.Time
		want time.Time
	}{
		{
			"monday",
			time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 10, 17, 10, 0, 0, 0, time.UTC),
		},
		{
			"friday maps to itself",
			time.Date(2025, 10, 17, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 10, 17, 10, 0, 0, 0, time.UTC),
		},
		{
			"saturday rolls a week",
			time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 10, 24, 10, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextFriday(tt.ref); !got.Equal(tt.want) {
				t.Errorf("NextFriday(%v) = %v, want %v", tt.ref, got, tt.want)
			}
		})
	}
}

// stubBroker serves canned market data for provider tests.
type stubBroker struct {
	price    float64
	priceErr error
	closes   []float64
}

func (s *stubBroker) GetLatestPrice(context.Context, string) (float64, error) {
	return s.price, s.priceErr
}
func (s *stubBroker) GetDailyCloses(context.Context, string, int) ([]float64, error) {
	return s.closes, nil
}
func (s *stubBroker) GetAccountBalance(context.Context) (float64, error) { return 0, nil }
func (s *stubBroker) SubmitOrder(context.Context, broker.OrderRequest) (*broker.OrderResponse, error) {
	return nil, errors.New("unused")
}

func TestBuildSnapshot(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100
	}
	closes[24] = 101 // final up tick

	p := NewProvider(&stubBroker{price: 105, closes: closes}, log.New(io.Discard, "", 0))
	p.now = func() time.Time { return time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC) }

	snap, err := p.BuildSnapshot(context.Background(), "SPY")
	if err != nil {
		t.Fatalf("BuildSnapshot error: %v", err)
	}
	if snap.Ticker != "SPY" || snap.Price != 105 {
		t.Errorf("snapshot identity = %s %.2f", snap.Ticker, snap.Price)
	}
	if snap.Trend != models.TrendBullish {
		t.Errorf("trend = %v, want bullish", snap.Trend)
	}
	if snap.Momentum != models.MomentumPositive {
		t.Errorf("momentum = %v, want positive", snap.Momentum)
	}
	if snap.ImpliedVolatility <= 0 {
		t.Errorf("volatility = %v, want > 0", snap.ImpliedVolatility)
	}
	wantExp := time.Date(2025, 10, 17, 10, 0, 0, 0, time.UTC)
	if !snap.Expiration.Equal(wantExp) {
		t.Errorf("expiration = %v, want %v", snap.Expiration, wantExp)
	}
}

func TestBuildSnapshotErrors(t *testing.T) {
	p := NewProvider(&stubBroker{price: 0}, log.New(io.Discard, "", 0))
	if _, err := p.BuildSnapshot(context.Background(), "SPY"); err == nil {
		t.Error("expected error for non-positive price")
	}

	p = NewProvider(&stubBroker{priceErr: errors.New("down")}, log.New(io.Discard, "", 0))
	if _, err := p.BuildSnapshot(context.Background(), "SPY"); err == nil {
		t.Error("expected error when price fetch fails")
	}
}
