// Package config loads the system configuration that governs node bands,
// decay rates, lifecycle thresholds, and primitive windowing constants —
// the single place these are centralized.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SystemConfig is the complete configuration for one running System.
type SystemConfig struct {
	SymbolAllowlist []string                  `yaml:"symbol_allowlist"`
	Nodes           NodeConfig                `yaml:"nodes"`
	Temporal        TemporalConfig            `yaml:"temporal"`
	Decay           DecayConfig               `yaml:"decay"`
	Lifecycle       LifecycleConfig           `yaml:"lifecycle"`
	Windows         WindowsConfig             `yaml:"windows"`
	SymbolBands     map[string]float64        `yaml:"symbol_bands"` // overrides NodeConfig.DefaultBand per symbol
}

// NodeConfig governs node creation.
type NodeConfig struct {
	DefaultBand float64 `yaml:"default_band"` // price half-width for a newly created node
}

// TemporalConfig governs M3 retention.
type TemporalConfig struct {
	RingSize  int     `yaml:"ring_size"`  // max samples retained per symbol
	MaxAgeSec float64 `yaml:"max_age_sec"`
}

// DecayConfig governs per-state strength decay rates, in units of
// fractional-strength-lost per second of idle time.
type DecayConfig struct {
	ActiveRate   float64 `yaml:"active_rate"`
	DormantRate  float64 `yaml:"dormant_rate"`
	ArchivedRate float64 `yaml:"archived_rate"`
}

// LifecycleConfig governs ACTIVE/DORMANT/ARCHIVED transition thresholds.
type LifecycleConfig struct {
	ActiveToDormantStrength float64 `yaml:"active_to_dormant_strength"`
	ActiveToDormantIdleSec  float64 `yaml:"active_to_dormant_idle_sec"`
	DormantToArchivedStrength float64 `yaml:"dormant_to_archived_strength"`
	DormantToArchivedIdleSec  float64 `yaml:"dormant_to_archived_idle_sec"`
}

// WindowsConfig centralizes every "recent window" constant referenced by
// M4 primitives.
type WindowsConfig struct {
	TraversalWindowSamples int     `yaml:"traversal_window_samples"`
	AbsenceObservationSec  float64 `yaml:"absence_observation_sec"`
	BurstWindowSec         float64 `yaml:"burst_window_sec"`
	AbsorptionStabilityBoundTicks float64 `yaml:"absorption_stability_bound_ticks"`
	TickSize               float64 `yaml:"tick_size"`
	CandleBucketSec        float64 `yaml:"candle_bucket_sec"`
	NonOccurrenceExpectedPerWindow int `yaml:"non_occurrence_expected_per_window"`
	NonOccurrenceWindowSec float64 `yaml:"non_occurrence_window_sec"`
	VoidGapThresholdSec    float64 `yaml:"void_gap_threshold_sec"`
}

// Default returns production-shaped defaults for every configuration
// band, rate, and window constant.
func Default() SystemConfig {
	return SystemConfig{
		SymbolAllowlist: nil,
		Nodes: NodeConfig{
			DefaultBand: 25.0,
		},
		Temporal: TemporalConfig{
			RingSize:  1024,
			MaxAgeSec: 600,
		},
		Decay: DecayConfig{
			ActiveRate:   1e-4,
			DormantRate:  1e-5,
			ArchivedRate: 0,
		},
		Lifecycle: LifecycleConfig{
			ActiveToDormantStrength:   0.15,
			ActiveToDormantIdleSec:    3600,
			DormantToArchivedStrength: 0.01,
			DormantToArchivedIdleSec:  86400,
		},
		Windows: WindowsConfig{
			TraversalWindowSamples:         64,
			AbsenceObservationSec:          3600,
			BurstWindowSec:                 1,
			AbsorptionStabilityBoundTicks:  1,
			TickSize:                       1,
			CandleBucketSec:                1,
			NonOccurrenceExpectedPerWindow: 1,
			NonOccurrenceWindowSec:         60,
			VoidGapThresholdSec:            5,
		},
	}
}

// BandFor returns the configured band for symbol, falling back to the
// node default.
func (c SystemConfig) BandFor(symbol string) float64 {
	if b, ok := c.SymbolBands[symbol]; ok {
		return b
	}
	return c.Nodes.DefaultBand
}

// Load reads and validates a YAML system configuration file.
func Load(path string) (SystemConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SystemConfig{}, fmt.Errorf("read system config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SystemConfig{}, fmt.Errorf("parse system config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return SystemConfig{}, fmt.Errorf("invalid system config: %w", err)
	}

	return cfg, nil
}

// Validate ensures the configuration is internally consistent.
func (c SystemConfig) Validate() error {
	if len(c.SymbolAllowlist) == 0 {
		return fmt.Errorf("symbol_allowlist cannot be empty")
	}
	if c.Nodes.DefaultBand <= 0 {
		return fmt.Errorf("nodes.default_band must be positive, got %f", c.Nodes.DefaultBand)
	}
	if c.Temporal.RingSize <= 0 {
		return fmt.Errorf("temporal.ring_size must be positive, got %d", c.Temporal.RingSize)
	}
	if c.Temporal.MaxAgeSec <= 0 {
		return fmt.Errorf("temporal.max_age_sec must be positive, got %f", c.Temporal.MaxAgeSec)
	}
	if c.Decay.ActiveRate < 0 || c.Decay.DormantRate < 0 || c.Decay.ArchivedRate < 0 {
		return fmt.Errorf("decay rates cannot be negative")
	}
	if c.Lifecycle.ActiveToDormantIdleSec <= 0 || c.Lifecycle.DormantToArchivedIdleSec <= 0 {
		return fmt.Errorf("lifecycle idle thresholds must be positive")
	}
	return nil
}
