package main

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/eddiefleurent/scranton_spreads/internal/models"
	"github.com/eddiefleurent/scranton_spreads/internal/storage"
)

// tickerConcurrency caps simultaneous per-symbol evaluations so a long
// ticker list does not flood the brokerage API.
const tickerConcurrency = 4

// runCycle evaluates every configured ticker once. Per-symbol failures are
// logged and do not stop the cycle.
func (e *Engine) runCycle(ctx context.Context) {
	e.logger.Println("Starting evaluation cycle...")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(tickerConcurrency)

	for _, ticker := range e.config.Selector.Tickers {
		ticker := ticker
		g.Go(func() error {
			if err := e.evaluateTicker(gctx, ticker); err != nil {
				e.logger.Printf("%s: evaluation failed: %v", ticker, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	e.logger.Println("Evaluation cycle complete")
}

// evaluateTicker runs the full pipeline for one symbol: snapshot, strategy
// selection, risk shaping, submission, journaling.
func (e *Engine) evaluateTicker(ctx context.Context, ticker string) error {
	snap, err := e.provider.BuildSnapshot(ctx, ticker)
	if err != nil {
		return err
	}

	sel := e.selector.Evaluate(snap)
	if sel == nil {
		e.logger.Printf("%s: no strategy selected", ticker)
		return nil
	}
	if len(sel.Intents) == 0 {
		e.logger.Printf("%s: %s produced no orders", ticker, sel.Strategy.Name())
		return nil
	}

	intents := scaleQuantities(sel.Intents, e.config.Selector.Quantity)
	intents = e.adjuster.Adjust(intents, snap)

	results := e.executor.Execute(ctx, intents)
	if len(results) == 0 {
		e.logger.Printf("%s: %s submitted nothing", ticker, sel.Strategy.Name())
		return nil
	}

	rec := storage.TradeRecord{
		Ticker:   ticker,
		Strategy: sel.Strategy.Name(),
		DryRun:   e.config.Execution.DryRun,
	}
	for _, intent := range intents {
		rec.Legs = append(rec.Legs, storage.TradeLeg{
			Symbol:   intent.Symbol,
			Side:     string(intent.Side),
			Quantity: intent.Quantity,
			Stop:     intent.StopLossPrice,
			Target:   intent.TakeProfitPrice,
		})
	}
	for _, res := range results {
		if res.Response != nil {
			rec.OrderIDs = append(rec.OrderIDs, res.Response.ID)
		}
	}
	if _, err := e.journal.Append(rec); err != nil {
		e.logger.Printf("%s: journaling failed: %v", ticker, err)
	}

	e.logger.Printf("%s: %s executed with %d legs", ticker, sel.Strategy.Name(), len(intents))
	return nil
}

// scaleQuantities multiplies each intent's base quantity by the configured
// contract count, preserving ratio structure between legs.
func scaleQuantities(intents []models.OrderIntent, qty int) []models.OrderIntent {
	if qty <= 1 {
		return intents
	}
	out := make([]models.OrderIntent, len(intents))
	for i, intent := range intents {
		intent.Quantity *= qty
		out[i] = intent
	}
	return out
}
