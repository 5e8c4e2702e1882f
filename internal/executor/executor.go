// Package executor turns finished order intents into brokerage submissions
// with bounded retry, or constructs the requests without transmitting them
// in dry-run mode.
package executor

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/eddiefleurent/scranton_spreads/internal/broker"
	"github.com/eddiefleurent/scranton_spreads/internal/models"
)

// Config contains configuration for the executor.
type Config struct {
	// MaxAttempts bounds transmissions per submission unit.
	MaxAttempts int
	// RetryDelay is the fixed wait between attempts. No backoff growth:
	// the outer scheduler owns overall deadlines.
	RetryDelay time.Duration
}

// DefaultConfig is the default executor configuration.
var DefaultConfig = Config{
	MaxAttempts: 3,
	RetryDelay:  2 * time.Second,
}

// Executor maps order intents onto submission units and submits them.
type Executor struct {
	broker broker.Broker
	logger *log.Logger
	dryRun bool
	config Config
}

// Result is the outcome of one successfully processed submission unit.
// Response is nil in dry-run mode.
type Result struct {
	Request  broker.OrderRequest
	Response *broker.OrderResponse
}

// New creates an Executor. A nil logger falls back to stderr; a nil broker
// is only acceptable in dry-run mode.
func New(b broker.Broker, logger *log.Logger, dryRun bool, config ...Config) *Executor {
	cfg := DefaultConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if logger == nil {
		logger = log.New(os.Stderr, "executor: ", log.LstdFlags)
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig.MaxAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultConfig.RetryDelay
	}
	if b == nil && !dryRun {
		panic("executor.New: broker must not be nil in live mode")
	}
	return &Executor{broker: b, logger: logger, dryRun: dryRun, config: cfg}
}

// Execute maps the intents onto submission units and submits them: one
// market order per lone intent, or exactly one atomic multi-leg order for
// two or more. Failed units are logged and omitted from the results; no
// submission failure escapes to the caller.
func (e *Executor) Execute(ctx context.Context, intents []models.OrderIntent) []Result {
	if len(intents) == 0 {
		return nil
	}

	if len(intents) > 1 {
		req := multiLegRequest(intents)
		if e.dryRun {
			e.logger.Printf("DRY RUN: multi-leg order, %d legs, first symbol %s", len(req.Legs), req.Legs[0].Symbol)
			return []Result{{Request: req}}
		}
		resp, err := e.submitWithRetry(ctx, req)
		if err != nil {
			e.logger.Printf("failed to submit multi-leg order (%d legs): %v", len(req.Legs), err)
			return nil
		}
		e.logger.Printf("multi-leg order submitted: id=%s legs=%d", resp.ID, len(req.Legs))
		return []Result{{Request: req, Response: resp}}
	}

	// Lone intents submit independently: one symbol's failure never blocks
	// the others.
	results := make([]Result, 0, len(intents))
	for _, intent := range intents {
		req := singleRequest(intent)
		if e.dryRun {
			if strike, optType, err := models.ParseOCC(req.Symbol); err == nil {
				e.logger.Printf("DRY RUN: %s %s x%d (%.2f %s)", req.Side, req.Symbol, req.Quantity, strike, optType)
			} else {
				e.logger.Printf("DRY RUN: %s %s x%d", req.Side, req.Symbol, req.Quantity)
			}
			results = append(results, Result{Request: req})
			continue
		}
		resp, err := e.submitWithRetry(ctx, req)
		if err != nil {
			e.logger.Printf("failed to submit order %s: %v", req.Symbol, err)
			continue
		}
		e.logger.Printf("order submitted: %s side=%s qty=%d id=%s", req.Symbol, req.Side, req.Quantity, resp.ID)
		results = append(results, Result{Request: req, Response: resp})
	}
	return results
}

// submitWithRetry transmits one unit up to MaxAttempts times with a fixed
// inter-attempt delay, honoring context cancellation during the wait.
func (e *Executor) submitWithRetry(ctx context.Context, req broker.OrderRequest) (*broker.OrderResponse, error) {
	var lastErr error
	for attempt := 1; attempt <= e.config.MaxAttempts; attempt++ {
		resp, err := e.broker.SubmitOrder(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		e.logger.Printf("submit attempt %d/%d failed: %v", attempt, e.config.MaxAttempts, err)

		if attempt < e.config.MaxAttempts {
			select {
			case <-time.After(e.config.RetryDelay):
			case <-ctx.Done():
				return nil, fmt.Errorf("submission canceled during retry wait: %w", ctx.Err())
			}
		}
	}
	return nil, fmt.Errorf("submission failed after %d attempts: %w", e.config.MaxAttempts, lastErr)
}

// singleRequest maps one intent onto a market order request.
func singleRequest(intent models.OrderIntent) broker.OrderRequest {
	req := broker.OrderRequest{
		Symbol:        intent.Symbol,
		Quantity:      intent.Quantity,
		Side:          string(intent.Side),
		Type:          intent.OrderType,
		TimeInForce:   intent.TimeInForce,
		ClientOrderID: uuid.New().String(),
	}
	if intent.StopLossPrice != 0 {
		req.StopLoss = &broker.StopLoss{StopPrice: intent.StopLossPrice}
	}
	if intent.TakeProfitPrice != 0 {
		req.TakeProfit = &broker.TakeProfit{LimitPrice: intent.TakeProfitPrice}
	}
	if intent.TrailingStopPercent != 0 {
		req.TrailPercent = intent.TrailingStopPercent
	}
	return req
}

// multiLegRequest maps two or more intents onto one atomic multi-leg
// request. Top-level quantity and time-in-force come from the first leg.
func multiLegRequest(intents []models.OrderIntent) broker.OrderRequest {
	legs := make([]broker.OrderLeg, 0, len(intents))
	for _, intent := range intents {
		legs = append(legs, broker.OrderLeg{
			Symbol:        intent.Symbol,
			RatioQuantity: intent.Quantity,
			Side:          string(intent.Side),
		})
	}
	return broker.OrderRequest{
		Quantity:      intents[0].Quantity,
		Type:          intents[0].OrderType,
		TimeInForce:   intents[0].TimeInForce,
		OrderClass:    broker.OrderClassMultiLeg,
		Legs:          legs,
		ClientOrderID: uuid.New().String(),
	}
}
