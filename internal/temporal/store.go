// Package temporal implements M3: a per-symbol ordered buffer of recent
// price samples, bounded by both a ring size and a maximum age.
package temporal

import (
	"fmt"

	"github.com/ksiaz/obscore/internal/config"
)

// Sample is one (timestamp, price) observation.
type Sample struct {
	Timestamp float64
	Price     float64
}

// Store holds one ring buffer per symbol, plus a second trade-only
// buffer used where a primitive's definition is scoped to trades
// specifically (e.g. TradeBurst) rather than every price-bearing event.
type Store struct {
	cfg         config.SystemConfig
	bySym       map[string][]Sample
	bySymTrades map[string][]Sample
	lastTS      map[string]float64
}

// NewStore builds an empty temporal store.
func NewStore(cfg config.SystemConfig) *Store {
	return &Store{
		cfg:         cfg,
		bySym:       make(map[string][]Sample),
		bySymTrades: make(map[string][]Sample),
		lastTS:      make(map[string]float64),
	}
}

// Push appends a sample, enforcing non-decreasing per-symbol timestamps
// (accept-equal, per SPEC_FULL.md's resolution of Open
// Question 2) and trimming to the retention window.
func (s *Store) Push(symbol string, timestamp, price float64) error {
	if last, ok := s.lastTS[symbol]; ok && timestamp < last {
		return fmt.Errorf("temporal: timestamp regression for %s: %f < %f", symbol, timestamp, last)
	}
	s.lastTS[symbol] = timestamp

	samples := append(s.bySym[symbol], Sample{Timestamp: timestamp, Price: price})
	s.bySym[symbol] = trim(samples, timestamp, s.cfg.Temporal.RingSize, s.cfg.Temporal.MaxAgeSec)
	return nil
}

// PushTrade records a trade-derived sample into the trade-only buffer,
// in addition to whatever the caller also pushes into the general
// buffer via Push. It does not re-check monotonicity — trades are a
// subset of the already-ordered stream Push enforces.
func (s *Store) PushTrade(symbol string, timestamp, price float64) {
	samples := append(s.bySymTrades[symbol], Sample{Timestamp: timestamp, Price: price})
	s.bySymTrades[symbol] = trim(samples, timestamp, s.cfg.Temporal.RingSize, s.cfg.Temporal.MaxAgeSec)
}

func trim(samples []Sample, now float64, ringSize int, maxAge float64) []Sample {
	cutoff := now - maxAge
	start := 0
	for start < len(samples) && samples[start].Timestamp < cutoff {
		start++
	}
	samples = samples[start:]

	if len(samples) > ringSize {
		samples = samples[len(samples)-ringSize:]
	}
	return samples
}

// GetRecentPrices returns up to maxCount samples, oldest-first. A
// maxCount of 0 or less returns every retained sample.
func (s *Store) GetRecentPrices(symbol string, maxCount int) []Sample {
	samples := s.bySym[symbol]
	if maxCount <= 0 || maxCount >= len(samples) {
		out := make([]Sample, len(samples))
		copy(out, samples)
		return out
	}
	start := len(samples) - maxCount
	out := make([]Sample, maxCount)
	copy(out, samples[start:])
	return out
}

// GetRecentTrades returns up to maxCount trade-only samples, oldest-first,
// mirroring GetRecentPrices but excluding liquidation-derived samples.
func (s *Store) GetRecentTrades(symbol string, maxCount int) []Sample {
	samples := s.bySymTrades[symbol]
	if maxCount <= 0 || maxCount >= len(samples) {
		out := make([]Sample, len(samples))
		copy(out, samples)
		return out
	}
	start := len(samples) - maxCount
	out := make([]Sample, maxCount)
	copy(out, samples[start:])
	return out
}

// GetMostRecentPrice returns the last pushed price for symbol, or false
// if none have been retained.
func (s *Store) GetMostRecentPrice(symbol string) (float64, bool) {
	samples := s.bySym[symbol]
	if len(samples) == 0 {
		return 0, false
	}
	return samples[len(samples)-1].Price, true
}

// IsSorted reports whether symbol's retained samples are strictly
// non-decreasing by timestamp — a testable invariant from spec.md §8.
func (s *Store) IsSorted(symbol string) bool {
	samples := s.bySym[symbol]
	for i := 1; i < len(samples); i++ {
		if samples[i].Timestamp < samples[i-1].Timestamp {
			return false
		}
	}
	return true
}
