package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempJournal(t *testing.T) (*Journal, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.json")
	j, err := NewJournal(path)
	require.NoError(t, err)
	return j, path
}

func TestJournalAppendAssignsIdentity(t *testing.T) {
	j, _ := tempJournal(t)

	rec, err := j.Append(TradeRecord{
		Ticker:   "SPY",
		Strategy: "IronCondor",
		DryRun:   true,
		Legs: []TradeLeg{
			{Symbol: "SPY251017P00446000", Side: "buy", Quantity: 1},
			{Symbol: "SPY251017P00448000", Side: "sell", Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.Timestamp.IsZero())

	trades := j.Trades()
	require.Len(t, trades, 1)
	assert.Equal(t, "IronCondor", trades[0].Strategy)
	assert.Len(t, trades[0].Legs, 2)
}

func TestJournalPersistsAcrossReopen(t *testing.T) {
	j, path := tempJournal(t)

	_, err := j.Append(TradeRecord{Ticker: "SPY", Strategy: "Straddle"})
	require.NoError(t, err)
	_, err = j.Append(TradeRecord{Ticker: "QQQ", Strategy: "Collar", OrderIDs: []string{"abc"}})
	require.NoError(t, err)

	reopened, err := NewJournal(path)
	require.NoError(t, err)

	trades := reopened.Trades()
	require.Len(t, trades, 2)
	assert.Equal(t, "Straddle", trades[0].Strategy)
	assert.Equal(t, []string{"abc"}, trades[1].OrderIDs)
}

func TestJournalTradesForTicker(t *testing.T) {
	j, _ := tempJournal(t)

	for _, ticker := range []string{"SPY", "QQQ", "SPY"} {
		_, err := j.Append(TradeRecord{Ticker: ticker, Strategy: "LongCall"})
		require.NoError(t, err)
	}

	assert.Len(t, j.TradesForTicker("SPY"), 2)
	assert.Len(t, j.TradesForTicker("QQQ"), 1)
	assert.Empty(t, j.TradesForTicker("IWM"))
}

func TestJournalStats(t *testing.T) {
	j, _ := tempJournal(t)

	_, err := j.Append(TradeRecord{Ticker: "SPY", Strategy: "IronCondor", DryRun: true})
	require.NoError(t, err)
	_, err = j.Append(TradeRecord{Ticker: "SPY", Strategy: "IronCondor"})
	require.NoError(t, err)
	_, err = j.Append(TradeRecord{Ticker: "QQQ", Strategy: "Collar"})
	require.NoError(t, err)

	stats := j.GetStats()
	assert.Equal(t, 3, stats.TotalTrades)
	assert.Equal(t, 1, stats.DryRun)
	assert.Equal(t, 2, stats.Live)
	assert.Equal(t, 2, stats.ByStrategy["IronCondor"])
	assert.Equal(t, 1, stats.ByStrategy["Collar"])
}

func TestJournalCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "journal.json")
	j, err := NewJournal(path)
	require.NoError(t, err)

	_, err = j.Append(TradeRecord{Ticker: "SPY", Strategy: "LongCall"})
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestJournalRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewJournal(path)
	assert.Error(t, err)
}
