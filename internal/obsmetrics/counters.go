// Package obsmetrics aggregates the ambient counters and gauges the core
// exposes about itself: M1 normalization failures, M2 lifecycle
// population, and halt status. None of these values ever cross the
// Snapshot boundary — they describe the system, not the market.
package obsmetrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ksiaz/obscore/internal/types"
)

// Counters is a mutex-guarded in-process aggregator, queryable directly
// by tests, that also feeds the package's Prometheus collectors.
type Counters struct {
	mu                 sync.Mutex
	normalizeFailures  map[types.EventType]map[string]int64
	eventsIngested     map[string]int64
	eventsDropped      map[string]int64 // allow-list misses
	halted             bool

	promNormalizeFailures *prometheus.CounterVec
	promEventsIngested    *prometheus.CounterVec
	promEventsDropped     *prometheus.CounterVec
	promHalted            prometheus.Gauge
	promNodesByState      *prometheus.GaugeVec
}

// NewCounters builds a Counters instance and registers its Prometheus
// collectors against reg. Pass prometheus.NewRegistry() in tests to avoid
// polluting the default global registry.
func NewCounters(reg prometheus.Registerer) *Counters {
	c := &Counters{
		normalizeFailures: make(map[types.EventType]map[string]int64),
		eventsIngested:    make(map[string]int64),
		eventsDropped:     make(map[string]int64),

		promNormalizeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "obscore",
			Subsystem: "ingest",
			Name:      "normalize_failures_total",
			Help:      "M1 payloads that failed to normalize, by event type and symbol.",
		}, []string{"event_type", "symbol"}),

		promEventsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "obscore",
			Subsystem: "governance",
			Name:      "events_ingested_total",
			Help:      "Events accepted by System.Ingest, by symbol.",
		}, []string{"symbol"}),

		promEventsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "obscore",
			Subsystem: "governance",
			Name:      "events_dropped_total",
			Help:      "Events silently dropped for falling outside the symbol allow-list.",
		}, []string{"symbol"}),

		promHalted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "obscore",
			Subsystem: "governance",
			Name:      "halted",
			Help:      "1 if the system has latched into FAILED, 0 otherwise.",
		}),

		promNodesByState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "obscore",
			Subsystem: "continuity",
			Name:      "nodes",
			Help:      "Node count per symbol and lifecycle state.",
		}, []string{"symbol", "state"}),
	}

	if reg != nil {
		reg.MustRegister(
			c.promNormalizeFailures,
			c.promEventsIngested,
			c.promEventsDropped,
			c.promHalted,
			c.promNodesByState,
		)
	}

	return c
}

// IncNormalizeFailure records an M1 parse failure.
func (c *Counters) IncNormalizeFailure(evt types.EventType, symbol string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.normalizeFailures[evt] == nil {
		c.normalizeFailures[evt] = make(map[string]int64)
	}
	c.normalizeFailures[evt][symbol]++
	c.promNormalizeFailures.WithLabelValues(string(evt), symbol).Inc()
}

// NormalizeFailures returns the count recorded for evt/symbol so far.
func (c *Counters) NormalizeFailures(evt types.EventType, symbol string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m := c.normalizeFailures[evt]; m != nil {
		return m[symbol]
	}
	return 0
}

// IncIngested records an event accepted past the allow-list.
func (c *Counters) IncIngested(symbol string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eventsIngested[symbol]++
	c.promEventsIngested.WithLabelValues(symbol).Inc()
}

// IncDropped records an event dropped for falling outside the allow-list.
func (c *Counters) IncDropped(symbol string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eventsDropped[symbol]++
	c.promEventsDropped.WithLabelValues(symbol).Inc()
}

// SetHalted updates the halted gauge.
func (c *Counters) SetHalted(halted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.halted = halted
	if halted {
		c.promHalted.Set(1)
	} else {
		c.promHalted.Set(0)
	}
}

// Halted reports the last value passed to SetHalted.
func (c *Counters) Halted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.halted
}

// SetNodeCount publishes the node population for a symbol/state pair.
func (c *Counters) SetNodeCount(symbol, state string, count int) {
	c.promNodesByState.WithLabelValues(symbol, state).Set(float64(count))
}
