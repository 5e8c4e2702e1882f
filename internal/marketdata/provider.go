package marketdata

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/eddiefleurent/scranton_spreads/internal/broker"
	"github.com/eddiefleurent/scranton_spreads/internal/models"
)

// historyBars is how many daily closes a snapshot carries: enough for the
// trend window and the ATR lookback with margin.
const historyBars = 30

// Provider assembles market snapshots from brokerage price data.
type Provider struct {
	broker broker.Broker
	logger *log.Logger
	now    func() time.Time
}

// NewProvider creates a Provider. A nil logger falls back to stderr.
func NewProvider(b broker.Broker, logger *log.Logger) *Provider {
	if logger == nil {
		logger = log.New(os.Stderr, "marketdata: ", log.LstdFlags)
	}
	return &Provider{broker: b, logger: logger, now: time.Now}
}

// BuildSnapshot fetches the latest price and daily history for ticker and
// derives the metrics the selector scores against.
func (p *Provider) BuildSnapshot(ctx context.Context, ticker string) (models.Snapshot, error) {
	price, err := p.broker.GetLatestPrice(ctx, ticker)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("latest price for %s: %w", ticker, err)
	}
	if price <= 0 {
		return models.Snapshot{}, fmt.Errorf("non-positive price %.2f for %s", price, ticker)
	}

	closes, err := p.broker.GetDailyCloses(ctx, ticker, historyBars)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("daily closes for %s: %w", ticker, err)
	}

	snap := models.Snapshot{
		Ticker:            ticker,
		Price:             price,
		ClosePrices:       closes,
		ImpliedVolatility: HistoricalVolatility(closes),
		Trend:             ClassifyTrend(price, closes),
		Momentum:          ClassifyMomentum(closes),
		Expiration:        NextFriday(p.now()),
	}
	p.logger.Printf("snapshot %s: price=%.2f iv=%.3f trend=%s momentum=%s bars=%d",
		ticker, snap.Price, snap.ImpliedVolatility, snap.Trend, snap.Momentum, len(closes))
	return snap, nil
}
