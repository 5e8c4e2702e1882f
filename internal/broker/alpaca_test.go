package broker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *AlpacaClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAlpacaClientWithURLs("test-key", "test-secret", srv.URL, srv.URL)
}

func TestSubmitOrder(t *testing.T) {
	var gotReq OrderRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v2/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("APCA-API-KEY-ID") != "test-key" || r.Header.Get("APCA-API-SECRET-KEY") != "test-secret" {
			t.Error("missing auth headers")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(OrderResponse{ID: "abc-123", Status: "accepted"})
	})

	req := OrderRequest{
		Quantity:    1,
		Type:        "market",
		TimeInForce: "day",
		OrderClass:  OrderClassMultiLeg,
		Legs: []OrderLeg{
			{Symbol: "SPY251017C00450000", RatioQuantity: 1, Side: "buy"},
			{Symbol: "SPY251017P00450000", RatioQuantity: 1, Side: "buy"},
		},
	}
	resp, err := client.SubmitOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("SubmitOrder error: %v", err)
	}
	if resp.ID != "abc-123" || resp.Status != "accepted" {
		t.Errorf("response = %+v", resp)
	}
	if gotReq.OrderClass != OrderClassMultiLeg || len(gotReq.Legs) != 2 {
		t.Errorf("server saw %+v", gotReq)
	}
}

func TestSubmitOrderAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"insufficient buying power"}`, http.StatusForbidden)
	})

	_, err := client.SubmitOrder(context.Background(), OrderRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %T is not *APIError", err)
	}
	if apiErr.Status != http.StatusForbidden {
		t.Errorf("status = %d, want 403", apiErr.Status)
	}
}

func TestGetAccountBalance(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/account" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"equity":"100432.55"}`))
	})

	got, err := client.GetAccountBalance(context.Background())
	if err != nil {
		t.Fatalf("GetAccountBalance error: %v", err)
	}
	if got != 100432.55 {
		t.Errorf("balance = %v, want 100432.55", got)
	}
}

func TestGetAccountBalanceBadEquity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"equity":"not-a-number"}`))
	})
	if _, err := client.GetAccountBalance(context.Background()); err == nil {
		t.Error("expected parse error")
	}
}

func TestGetLatestPrice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/stocks/SPY/trades/latest" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"trade":{"p":449.87}}`))
	})

	got, err := client.GetLatestPrice(context.Background(), "SPY")
	if err != nil {
		t.Fatalf("GetLatestPrice error: %v", err)
	}
	if got != 449.87 {
		t.Errorf("price = %v, want 449.87", got)
	}
}

func TestGetDailyCloses(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/stocks/SPY/bars" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("timeframe") != "1Day" || q.Get("limit") != "5" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"bars":[{"c":100.1},{"c":101.2},{"c":99.8}]}`))
	})

	got, err := client.GetDailyCloses(context.Background(), "SPY", 5)
	if err != nil {
		t.Fatalf("GetDailyCloses error: %v", err)
	}
	want := []float64{100.1, 101.2, 99.8}
	if len(got) != len(want) {
		t.Fatalf("got %d closes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("close[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGetDailyClosesRejectsBadLimit(t *testing.T) {
	client := NewAlpacaClient("k", "s", true)
	if _, err := client.GetDailyCloses(context.Background(), "SPY", 0); err == nil {
		t.Error("expected error for non-positive limit")
	}
}
