// Package governance implements M5: the sole owner of M1/M2/M3, the
// dispatcher of ingestion, the assembler of snapshots, and the enforcer
// of time monotonicity and the halt semantics that protect the rest of
// the system from a poisoned memory state.
package governance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/ksiaz/obscore/internal/config"
	"github.com/ksiaz/obscore/internal/continuity"
	"github.com/ksiaz/obscore/internal/ingest"
	"github.com/ksiaz/obscore/internal/obsmetrics"
	"github.com/ksiaz/obscore/internal/primitives"
	"github.com/ksiaz/obscore/internal/temporal"
	"github.com/ksiaz/obscore/internal/types"
)

// System owns every piece of core state. All of its public operations
// are synchronous — callers serialize access; see spec.md §5.
type System struct {
	cfg        config.SystemConfig
	allowlist  map[string]bool

	normalizer *ingest.Normalizer
	continuity *continuity.Store
	temporal   *temporal.Store
	candles    *temporal.CandleBuilder
	counters   *obsmetrics.Counters

	systemTime  float64
	initialized bool
	halted      bool
	haltCause   error
}

// New constructs a System scoped to the configured symbol allow-list.
// Pass a prometheus.Registerer (or nil) to control where the ambient
// metrics are published.
func New(cfg config.SystemConfig, reg prometheus.Registerer) *System {
	allow := make(map[string]bool, len(cfg.SymbolAllowlist))
	for _, s := range cfg.SymbolAllowlist {
		allow[s] = true
	}

	counters := obsmetrics.NewCounters(reg)

	return &System{
		cfg:        cfg,
		allowlist:  allow,
		normalizer: ingest.NewNormalizer(counters),
		continuity: continuity.NewStore(cfg),
		temporal:   temporal.NewStore(cfg),
		candles:    temporal.NewCandleBuilder(cfg.Windows.CandleBucketSec),
		counters:   counters,
	}
}

// Ingest routes one raw event through M1 normalization and M2/M3 state
// updates, then advances system_time and runs decay/lifecycle for every
// allow-listed symbol, not only the event's own. See spec.md §4.5.
func (s *System) Ingest(timestamp float64, symbol string, eventType types.EventType, payload ingest.Payload) error {
	if !s.allowlist[symbol] {
		s.counters.IncDropped(symbol)
		return nil
	}
	if s.halted {
		return ErrHalted
	}
	// Accept-equal: a timestamp equal to system_time is not a regression.
	if timestamp < s.systemTime {
		s.halt(ErrTimeRegression, symbol, timestamp)
		return ErrHalted
	}

	switch eventType {
	case types.EventTrade:
		trade, ok := s.normalizer.NormalizeTrade(symbol, payload)
		if !ok {
			return nil
		}
		s.continuity.ApplyTrade(trade)
		if err := s.temporal.Push(symbol, trade.Timestamp, trade.Price); err != nil {
			s.halt(ErrInvariantBreach, symbol, timestamp)
			return ErrHalted
		}
		s.temporal.PushTrade(symbol, trade.Timestamp, trade.Price)
		s.candles.PushTradePrice(symbol, trade.Timestamp, trade.Price)

	case types.EventLiquidation:
		liq, ok := s.normalizer.NormalizeLiquidation(symbol, payload)
		if !ok {
			return nil
		}
		s.continuity.ApplyLiquidation(liq)
		if err := s.temporal.Push(symbol, liq.Timestamp, liq.Price); err != nil {
			s.halt(ErrInvariantBreach, symbol, timestamp)
			return ErrHalted
		}

	case types.EventDepth:
		depth, ok := s.normalizer.NormalizeDepthUpdate(symbol, payload)
		if !ok {
			return nil
		}
		s.continuity.ApplyDepthUpdate(depth)

	default:
		// Unknown event type is a normalization-layer concern, not a halt.
		return nil
	}

	if !s.continuity.CheckInvariants(symbol) {
		s.halt(ErrInvariantBreach, symbol, timestamp)
		return ErrHalted
	}

	s.counters.IncIngested(symbol)
	s.advanceAll(timestamp)
	return nil
}

// AdvanceTime runs decay/lifecycle across every allow-listed symbol
// without ingesting an event.
func (s *System) AdvanceTime(timestamp float64) error {
	if s.halted {
		return ErrHalted
	}
	if timestamp < s.systemTime {
		s.halt(ErrTimeRegression, "", timestamp)
		return ErrHalted
	}

	s.advanceAll(timestamp)
	return nil
}

// advanceAll advances system_time to max(system_time, timestamp), then
// runs decay/lifecycle on every allow-listed symbol — not just the
// symbol that was just ingested, if any.
func (s *System) advanceAll(timestamp float64) {
	if timestamp > s.systemTime {
		s.systemTime = timestamp
	}
	s.initialized = true
	for symbol := range s.allowlist {
		s.continuity.Advance(symbol, s.systemTime)
		s.publishNodeGauges(symbol)
	}
}

func (s *System) publishNodeGauges(symbol string) {
	counts := map[continuity.State]int{}
	for _, n := range s.continuity.AllNodes(symbol) {
		counts[n.State]++
	}
	s.counters.SetNodeCount(symbol, string(continuity.StateActive), counts[continuity.StateActive])
	s.counters.SetNodeCount(symbol, string(continuity.StateDormant), counts[continuity.StateDormant])
	s.counters.SetNodeCount(symbol, string(continuity.StateArchived), counts[continuity.StateArchived])
}

func (s *System) halt(cause error, symbol string, timestamp float64) {
	s.halted = true
	s.haltCause = cause
	s.counters.SetHalted(true)
	log.Error().
		Err(cause).
		Str("symbol", symbol).
		Float64("timestamp", timestamp).
		Float64("system_time", s.systemTime).
		Msg("governance: halting, invariant or ordering violation")
}

// Query assembles an immutable snapshot. It never mutates M2/M3.
func (s *System) Query(spec types.QuerySpec) types.Snapshot {
	snap := types.Snapshot{
		Timestamp:     s.systemTime,
		SymbolsActive: append([]string(nil), s.cfg.SymbolAllowlist...),
		Primitives:    make(map[string]types.PrimitiveBundle, len(s.cfg.SymbolAllowlist)),
	}

	switch {
	case s.halted:
		snap.Status = types.StatusFailed
	case !s.initialized:
		snap.Status = types.StatusUninitialized
	default:
		snap.Status = "" // ambient healthy condition — deliberately not reified
	}

	for _, symbol := range s.cfg.SymbolAllowlist {
		snap.Primitives[symbol] = s.computeBundle(symbol)
	}

	return snap
}

func (s *System) computeBundle(symbol string) types.PrimitiveBundle {
	recent := s.temporal.GetRecentPrices(symbol, s.cfg.Windows.TraversalWindowSamples)
	recentTrades := s.temporal.GetRecentTrades(symbol, s.cfg.Windows.TraversalWindowSamples)

	var candle *temporal.Candle
	if c, ok := s.candles.LastClosed(symbol); ok {
		candle = &c
	}

	view := primitives.View{
		Symbol:       symbol,
		Now:          s.systemTime,
		ActiveNodes:  s.continuity.ActiveNodes(symbol),
		AllNodes:     s.continuity.AllNodes(symbol),
		Recent:       recent,
		RecentTrades: recentTrades,
		Candle:       candle,
		Windows:      s.cfg.Windows,
	}

	return primitives.ComputeAll(view)
}

// Halted reports whether the system has latched into FAILED.
func (s *System) Halted() bool {
	return s.halted
}
