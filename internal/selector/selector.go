// Package selector scores the strategy catalog against live market metrics
// and resolves exactly one winner, or none.
package selector

import (
	"log"
	"math"
	"os"
	"time"

	"github.com/eddiefleurent/scranton_spreads/internal/models"
	"github.com/eddiefleurent/scranton_spreads/internal/strategy"
)

// Probe snapshot constants for speculative tie-break runs. The probe
// carries the real trend/iv/momentum but a synthetic ticker and price, so
// leg counts can be compared without touching live data.
const (
	probeTicker = "DUMMY"
	probePrice  = 100.0
)

// minConfidenceScore is the floor below which advanced phases refuse to
// trade. Phase 1 always trades the best-scoring entry, including score 0.
const minConfidenceScore = 2.0

// Config tunes a Selector.
type Config struct {
	// IVThreshold is the IV cutoff handed to strategy scoring.
	// Defaults to models.DefaultIVThreshold.
	IVThreshold float64
	// Phase is the eligibility ceiling: only strategies with
	// Phase() <= Phase are scored. Defaults to 1.
	Phase int
	// Catalog overrides the built-in registry. Tests use this; production
	// callers leave it nil for strategy.Catalog().
	Catalog []strategy.Strategy
}

// Selector picks one strategy per snapshot. It holds no mutable state, so
// a single instance is safe for concurrent use across symbols.
type Selector struct {
	ivThreshold float64
	phase       int
	catalog     []strategy.Strategy
	logger      *log.Logger
}

// New creates a Selector. A nil logger falls back to stderr.
func New(logger *log.Logger, cfg Config) *Selector {
	if logger == nil {
		logger = log.New(os.Stderr, "selector: ", log.LstdFlags)
	}
	if cfg.IVThreshold <= 0 {
		cfg.IVThreshold = models.DefaultIVThreshold
	}
	if cfg.Phase < 1 {
		cfg.Phase = 1
	}
	if cfg.Catalog == nil {
		cfg.Catalog = strategy.Catalog()
	}
	return &Selector{
		ivThreshold: cfg.IVThreshold,
		phase:       cfg.Phase,
		catalog:     cfg.Catalog,
		logger:      logger,
	}
}

// Selection pairs the winning strategy with the intents it produced for
// the real snapshot.
type Selection struct {
	Strategy strategy.Strategy
	Intents  []models.OrderIntent
}

// Select returns the winning strategy for the given metrics, or nil when
// the engine should not trade. It never panics: a misbehaving strategy is
// scored -Inf and excluded rather than aborting the evaluation.
func (sel *Selector) Select(trend models.Trend, iv float64, momentum models.Momentum) strategy.Strategy {
	sel.logger.Printf("selecting strategy: trend=%s iv=%.2f momentum=%s phase=%d", trend, iv, momentum, sel.phase)

	probe := models.Snapshot{
		Ticker:            probeTicker,
		Price:             probePrice,
		Expiration:        time.Now(),
		Trend:             trend,
		ImpliedVolatility: iv,
		Momentum:          momentum,
		IVThreshold:       sel.ivThreshold,
	}

	var eligible []strategy.Strategy
	for _, st := range sel.catalog {
		if st.Phase() <= sel.phase {
			eligible = append(eligible, st)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	scores := make([]float64, len(eligible))
	best := math.Inf(-1)
	for i, st := range eligible {
		scores[i] = sel.safeScore(st, probe)
		if scores[i] > best {
			best = scores[i]
		}
	}

	// Advanced phases refuse to act on weak signals.
	if sel.phase > 1 && best < minConfidenceScore {
		sel.logger.Printf("no strategy cleared confidence floor (best=%.2f < %.2f)", best, minConfidenceScore)
		return nil
	}

	var tied []strategy.Strategy
	for i, st := range eligible {
		if scores[i] == best {
			tied = append(tied, st)
		}
	}

	winner := tied[0]
	if len(tied) > 1 {
		if sel.phase > 1 {
			winner = sel.breakTie(tied, probe, trend, iv)
		}
		// Phase 1 keeps catalog declaration order: tied[0] stands.
		sel.logger.Printf("tie at score %.2f between %d strategies, selecting %s", best, len(tied), winner.Name())
	}

	// Standing policy: advanced phases never take outright long-put exposure.
	if sel.phase > 1 && winner.Name() == "LongPut" {
		sel.logger.Printf("vetoing %s: long-put exposure disallowed above phase 1", winner.Name())
		return nil
	}

	sel.logger.Printf("chosen strategy: %s with score %.2f", winner.Name(), best)
	return winner
}

// Evaluate selects against the snapshot's metrics and, on a win, runs the
// winner against the snapshot itself. Returns nil on no-trade.
func (sel *Selector) Evaluate(s models.Snapshot) *Selection {
	st := sel.Select(s.TrendOrNeutral(), s.ImpliedVolatility, s.MomentumOrNeutral())
	if st == nil {
		return nil
	}
	s.IVThreshold = sel.ivThreshold
	return &Selection{Strategy: st, Intents: sel.safeRun(st, s)}
}

// breakTie resolves a multi-way tie above phase 1: Collar wins outright on
// neutral high-IV markets, otherwise the entry producing the most legs on a
// probe run wins, and remaining ties fall to the lexicographically highest
// name.
func (sel *Selector) breakTie(tied []strategy.Strategy, probe models.Snapshot, trend models.Trend, iv float64) strategy.Strategy {
	if trend == models.TrendNeutral && iv >= sel.ivThreshold {
		for _, st := range tied {
			if st.Name() == "Collar" {
				return st
			}
		}
	}

	maxLegs := -1
	var winners []strategy.Strategy
	for _, st := range tied {
		legs := len(sel.safeRun(st, probe))
		switch {
		case legs > maxLegs:
			maxLegs = legs
			winners = winners[:0]
			winners = append(winners, st)
		case legs == maxLegs:
			winners = append(winners, st)
		}
	}

	winner := winners[0]
	for _, st := range winners[1:] {
		if st.Name() > winner.Name() {
			winner = st
		}
	}
	return winner
}

// safeScore isolates a single strategy's scoring failure: a panic is
// recorded as -Inf so the entry cannot win but selection continues.
func (sel *Selector) safeScore(st strategy.Strategy, s models.Snapshot) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			sel.logger.Printf("scoring %s panicked: %v", st.Name(), r)
			score = math.Inf(-1)
		}
	}()
	return st.Score(s)
}

// safeRun isolates a single strategy's construction failure the same way:
// a panic yields no intents.
func (sel *Selector) safeRun(st strategy.Strategy, s models.Snapshot) (intents []models.OrderIntent) {
	defer func() {
		if r := recover(); r != nil {
			sel.logger.Printf("running %s panicked: %v", st.Name(), r)
			intents = nil
		}
	}()
	return st.Run(s)
}
