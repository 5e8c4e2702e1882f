// Package storage persists the engine's trade journal as a JSON file with
// atomic writes, so a crash mid-write never corrupts history.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TradeLeg records one leg of a journaled trade.
type TradeLeg struct {
	Symbol   string  `json:"symbol"`
	Side     string  `json:"side"`
	Quantity int     `json:"quantity"`
	Stop     float64 `json:"stop,omitempty"`
	Target   float64 `json:"target,omitempty"`
}

// TradeRecord is one journaled evaluation that produced orders.
type TradeRecord struct {
	ID        string     `json:"id"`
	Timestamp time.Time  `json:"timestamp"`
	Ticker    string     `json:"ticker"`
	Strategy  string     `json:"strategy"`
	DryRun    bool       `json:"dry_run"`
	Legs      []TradeLeg `json:"legs"`
	OrderIDs  []string   `json:"order_ids,omitempty"`
}

// journalData is the on-disk shape.
type journalData struct {
	Version string        `json:"version"`
	Trades  []TradeRecord `json:"trades"`
}

// Journal is a file-backed trade log safe for concurrent use.
type Journal struct {
	mu   sync.RWMutex
	path string
	data journalData
}

// NewJournal loads or creates the journal at path.
func NewJournal(path string) (*Journal, error) {
	j := &Journal{
		path: path,
		data: journalData{Version: "1.0"},
	}
	if err := j.load(); err != nil {
		return nil, err
	}
	return j, nil
}

// load reads existing data; a missing file starts an empty journal.
func (j *Journal) load() error {
	raw, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading journal: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &j.data); err != nil {
		return fmt.Errorf("parsing journal %s: %w", j.path, err)
	}
	return nil
}

// Append records one trade and persists immediately. The record's ID and
// timestamp are assigned here if unset.
func (j *Journal) Append(rec TradeRecord) (TradeRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	j.data.Trades = append(j.data.Trades, rec)
	if err := j.save(); err != nil {
		// Roll back the in-memory append so memory matches disk.
		j.data.Trades = j.data.Trades[:len(j.data.Trades)-1]
		return TradeRecord{}, err
	}
	return rec, nil
}

// Trades returns a copy of all journaled trades, oldest first.
func (j *Journal) Trades() []TradeRecord {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]TradeRecord, len(j.data.Trades))
	copy(out, j.data.Trades)
	return out
}

// TradesForTicker returns journaled trades for one underlying.
func (j *Journal) TradesForTicker(ticker string) []TradeRecord {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var out []TradeRecord
	for _, t := range j.data.Trades {
		if t.Ticker == ticker {
			out = append(out, t)
		}
	}
	return out
}

// Stats summarizes the journal.
type Stats struct {
	TotalTrades int            `json:"total_trades"`
	DryRun      int            `json:"dry_run"`
	Live        int            `json:"live"`
	ByStrategy  map[string]int `json:"by_strategy"`
}

// GetStats returns counts over the full journal.
func (j *Journal) GetStats() Stats {
	j.mu.RLock()
	defer j.mu.RUnlock()

	s := Stats{ByStrategy: make(map[string]int)}
	for _, t := range j.data.Trades {
		s.TotalTrades++
		if t.DryRun {
			s.DryRun++
		} else {
			s.Live++
		}
		s.ByStrategy[t.Strategy]++
	}
	return s
}

// save writes atomically: marshal to a temp file in the same directory,
// then rename over the target.
func (j *Journal) save() error {
	raw, err := json.MarshalIndent(j.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding journal: %w", err)
	}

	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "journal-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp journal: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp journal: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp journal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp journal: %w", err)
	}
	if err := os.Rename(tmpName, j.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing journal: %w", err)
	}
	return nil
}
