// Package collector is a reference implementation of the external
// collaborator described in spec.md §6: a process that dials an
// exchange's WebSocket stream, decodes raw frames, and hands each one to
// the core's Ingest from the single goroutine that reads the stream; no
// channel sits between the reader and the sink. Nothing in this
// package is imported by internal/governance, internal/continuity,
// internal/temporal, or internal/primitives — the dependency only runs
// one way, collector -> core, matching the one-way-flow design note in
// SPEC_FULL.md.
package collector

import "github.com/ksiaz/obscore/internal/types"

// RawEvent is one frame pulled off the wire, not yet normalized by M1.
type RawEvent struct {
	Timestamp float64
	Symbol    string
	EventType types.EventType
	Payload   map[string]any
}

// Sink is the one method the collector ever calls into the core with —
// System.Ingest, seen through a narrow interface so this package never
// needs to import internal/governance directly.
type Sink interface {
	Ingest(timestamp float64, symbol string, eventType types.EventType, payload map[string]any) error
}
