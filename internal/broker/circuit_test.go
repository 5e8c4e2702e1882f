package broker

import (
	"context"
	"errors"
	"testing"
	"time"
)

// flakyBroker fails every call and counts how many reach it.
type flakyBroker struct {
	calls int
	err   error
}

func (f *flakyBroker) SubmitOrder(context.Context, OrderRequest) (*OrderResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &OrderResponse{ID: "ok"}, nil
}

func (f *flakyBroker) GetAccountBalance(context.Context) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return 50000, nil
}

func (f *flakyBroker) GetLatestPrice(context.Context, string) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return 450.0, nil
}

func (f *flakyBroker) GetDailyCloses(context.Context, string, int) ([]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []float64{100, 101}, nil
}

func TestCircuitBreakerPassesThroughSuccess(t *testing.T) {
	inner := &flakyBroker{}
	cb := NewCircuitBreakerBroker(inner)

	resp, err := cb.SubmitOrder(context.Background(), OrderRequest{})
	if err != nil || resp.ID != "ok" {
		t.Fatalf("SubmitOrder = (%+v, %v)", resp, err)
	}
	if price, err := cb.GetLatestPrice(context.Background(), "SPY"); err != nil || price != 450.0 {
		t.Fatalf("GetLatestPrice = (%v, %v)", price, err)
	}
	if closes, err := cb.GetDailyCloses(context.Background(), "SPY", 2); err != nil || len(closes) != 2 {
		t.Fatalf("GetDailyCloses = (%v, %v)", closes, err)
	}
	if balance, err := cb.GetAccountBalance(context.Background()); err != nil || balance != 50000 {
		t.Fatalf("GetAccountBalance = (%v, %v)", balance, err)
	}
}

func TestCircuitBreakerOpensAfterFailures(t *testing.T) {
	inner := &flakyBroker{err: errors.New("broker down")}
	cb := NewCircuitBreakerBrokerWithSettings(inner, CircuitBreakerSettings{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  3,
		FailureRatio: 0.5,
	})

	for i := 0; i < 3; i++ {
		if _, err := cb.GetAccountBalance(context.Background()); err == nil {
			t.Fatal("expected failure")
		}
	}
	reached := inner.calls

	// Tripped: further calls short-circuit without touching the broker.
	if _, err := cb.GetAccountBalance(context.Background()); err == nil {
		t.Fatal("expected open-circuit error")
	}
	if inner.calls != reached {
		t.Errorf("open circuit still reached the broker (%d -> %d calls)", reached, inner.calls)
	}
}
