// Package primitives implements M4: a library of pure, referentially
// transparent computations over M2 continuity state and M3 temporal
// samples. No function in this package mutates its inputs, logs,
// allocates randomness, or returns anything that lets strength,
// confidence, or any other interpretive quantity cross outward — every
// return type is one of the immutable records in internal/types.
package primitives

import (
	"github.com/ksiaz/obscore/internal/config"
	"github.com/ksiaz/obscore/internal/continuity"
	"github.com/ksiaz/obscore/internal/temporal"
)

// View bundles the read-only M2/M3 state one symbol's primitive catalog
// is computed from, plus the windowing constants from the shared
// configuration.
type View struct {
	Symbol       string
	Now          float64
	ActiveNodes  []*continuity.Node
	AllNodes     []*continuity.Node
	Recent       []temporal.Sample
	RecentTrades []temporal.Sample
	Candle       *temporal.Candle
	Windows      config.WindowsConfig
}
