// Package risk applies position sizing and protective-order parameters to
// the intents of a chosen strategy.
package risk

import (
	"log"
	"math"
	"os"

	"github.com/eddiefleurent/scranton_spreads/internal/models"
	"github.com/eddiefleurent/scranton_spreads/internal/util"
)

// sizingFloor is the minimum fraction of the original quantity kept after
// volatility scaling.
const sizingFloor = 0.1

// Config tunes the adjuster.
type Config struct {
	// ATRPeriod is the trailing window for the simplified ATR. ATR mode
	// needs more closes than this and at least one non-zero multiplier.
	ATRPeriod int
	// Static percentage mode offsets, used when ATR is not computable.
	StopLossPct   float64
	TakeProfitPct float64
	// ATR multipliers. Zero disables the corresponding level in ATR mode.
	ATRStopMult   float64
	ATRProfitMult float64
	// TrailingStopPct, when non-zero, is attached to the order as an
	// advisory field for downstream handling.
	TrailingStopPct float64
}

// DefaultConfig mirrors the engine's historical defaults.
var DefaultConfig = Config{
	ATRPeriod:     14,
	StopLossPct:   0.01,
	TakeProfitPct: 0.08,
}

// Adjuster resizes single-leg orders by volatility and attaches stop-loss
// and take-profit levels. It holds no mutable state.
type Adjuster struct {
	config Config
	logger *log.Logger
}

// NewAdjuster creates an Adjuster. A nil logger falls back to stderr.
func NewAdjuster(logger *log.Logger, config ...Config) *Adjuster {
	cfg := DefaultConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if logger == nil {
		logger = log.New(os.Stderr, "risk: ", log.LstdFlags)
	}
	if cfg.ATRPeriod <= 0 {
		cfg.ATRPeriod = DefaultConfig.ATRPeriod
	}
	return &Adjuster{config: cfg, logger: logger}
}

// Adjust applies volatility-scaled sizing and stop/target levels to a
// single-leg intent set. Multi-leg sets pass through untouched: shaping a
// spread's risk leg-by-leg would break its structure.
func (a *Adjuster) Adjust(intents []models.OrderIntent, snap models.Snapshot) []models.OrderIntent {
	if len(intents) == 0 {
		return nil
	}
	if len(intents) > 1 {
		a.logger.Printf("skipping multi-leg orders (%d legs)", len(intents))
		return intents
	}

	intent := intents[0]

	// Shrink size as realized volatility rises, floored at 10% of the
	// original size and at one contract.
	factor := math.Max(sizingFloor, 1-snap.ImpliedVolatility)
	qty := int(math.Floor(float64(intent.Quantity) * factor))
	if qty < 1 {
		qty = 1
	}
	intent.Quantity = qty

	stop, target := a.protectiveLevels(intent.Side, snap.Price, snap.ClosePrices)
	intent.StopLossPrice = stop
	intent.TakeProfitPrice = target

	if a.config.TrailingStopPct > 0 {
		intent.TrailingStopPercent = a.config.TrailingStopPct
	}

	return []models.OrderIntent{intent}
}

// protectiveLevels computes stop-loss and take-profit prices, preferring
// ATR offsets and falling back to static percentages of the price.
func (a *Adjuster) protectiveLevels(side models.Side, price float64, closes []float64) (stop, target float64) {
	dir := 1.0
	if side == models.SideSell {
		dir = -1.0
	}

	if atr, ok := a.atr(closes); ok && (a.config.ATRStopMult != 0 || a.config.ATRProfitMult != 0) {
		if a.config.ATRStopMult != 0 {
			stop = util.RoundCents(price - dir*a.config.ATRStopMult*atr)
		}
		if a.config.ATRProfitMult != 0 {
			target = util.RoundCents(price + dir*a.config.ATRProfitMult*atr)
		}
		return stop, target
	}

	stop = util.RoundCents(price * (1 - dir*a.config.StopLossPct))
	target = util.RoundCents(price * (1 + dir*a.config.TakeProfitPct))
	return stop, target
}

// atr returns the simplified average true range: the mean of absolute
// close-to-close deltas over the trailing ATRPeriod window. This is a
// deliberate proxy, not the high/low/close textbook formula; downstream
// numeric expectations depend on it.
func (a *Adjuster) atr(closes []float64) (float64, bool) {
	period := a.config.ATRPeriod
	if len(closes) <= period {
		return 0, false
	}
	window := closes[len(closes)-period-1:]
	sum := 0.0
	for i := 1; i < len(window); i++ {
		sum += math.Abs(window[i] - window[i-1])
	}
	return sum / float64(period), true
}
