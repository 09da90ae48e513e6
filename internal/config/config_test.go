package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_RejectsEmptyAllowlist(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	assert.Error(t, err)
}

func TestValidate_AcceptsDefaultsWithAllowlist(t *testing.T) {
	cfg := Default()
	cfg.SymbolAllowlist = []string{"BTC-PERP"}
	assert.NoError(t, cfg.Validate())
}

func TestBandFor_FallsBackToDefaultBand(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 25.0, cfg.BandFor("BTC-PERP"))

	cfg.SymbolBands = map[string]float64{"ETH-PERP": 2.0}
	assert.Equal(t, 2.0, cfg.BandFor("ETH-PERP"))
	assert.Equal(t, 25.0, cfg.BandFor("BTC-PERP"))
}

func TestLoad_ParsesYAMLOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
symbol_allowlist:
  - BTC-PERP
nodes:
  default_band: 10
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"BTC-PERP"}, cfg.SymbolAllowlist)
	assert.Equal(t, 10.0, cfg.Nodes.DefaultBand)
	assert.Equal(t, 1024, cfg.Temporal.RingSize) // retained from Default()
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`nodes:
  default_band: -1
`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
