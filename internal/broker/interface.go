// Package broker provides the brokerage boundary: order submission plus the
// account and market-data lookups the engine needs to build snapshots.
package broker

import (
	"context"
	"fmt"
)

// OrderClassMultiLeg marks a request as one atomic multi-leg order.
const OrderClassMultiLeg = "mleg"

// OrderRequest is one submission unit: a single market order or, when Legs
// is populated, one atomic multi-leg order whose top-level quantity and
// time-in-force come from the first leg.
type OrderRequest struct {
	Symbol        string      `json:"symbol,omitempty"`
	Quantity      int         `json:"qty"`
	Side          string      `json:"side,omitempty"`
	Type          string      `json:"type"`
	TimeInForce   string      `json:"time_in_force"`
	OrderClass    string      `json:"order_class,omitempty"`
	Legs          []OrderLeg  `json:"legs,omitempty"`
	ClientOrderID string      `json:"client_order_id,omitempty"`
	StopLoss      *StopLoss   `json:"stop_loss,omitempty"`
	TakeProfit    *TakeProfit `json:"take_profit,omitempty"`
	TrailPercent  float64     `json:"trail_percent,omitempty"`
}

// OrderLeg is one leg of a multi-leg request.
type OrderLeg struct {
	Symbol        string `json:"symbol"`
	RatioQuantity int    `json:"ratio_qty"`
	Side          string `json:"side"`
}

// StopLoss carries the stop price attached to an order.
type StopLoss struct {
	StopPrice float64 `json:"stop_price"`
}

// TakeProfit carries the profit-taking limit price attached to an order.
type TakeProfit struct {
	LimitPrice float64 `json:"limit_price"`
}

// OrderResponse is the brokerage's acknowledgement of a submission.
type OrderResponse struct {
	ID            string `json:"id"`
	ClientOrderID string `json:"client_order_id"`
	Status        string `json:"status"`
	Symbol        string `json:"symbol"`
	OrderClass    string `json:"order_class"`
	Qty           string `json:"qty"`
	FilledQty     string `json:"filled_qty"`
	CreatedAt     string `json:"created_at"`
}

// APIError represents a brokerage API error with status code and body.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Body)
}

// Broker defines the brokerage boundary. Implementations must be safe for
// concurrent use; the engine shares one handle across symbols.
type Broker interface {
	// SubmitOrder transmits one submission unit and returns the broker's
	// acknowledgement.
	SubmitOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error)

	// GetAccountBalance returns total account equity.
	GetAccountBalance(ctx context.Context) (float64, error)

	// GetLatestPrice returns the most recent trade price for a symbol.
	GetLatestPrice(ctx context.Context, symbol string) (float64, error)

	// GetDailyCloses returns up to limit daily close prices, oldest first.
	GetDailyCloses(ctx context.Context, symbol string, limit int) ([]float64, error)
}
