package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ntm/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultBudget, cfg.Budget)
	assert.True(t, cfg.Dedup)
	assert.Equal(t, "text", cfg.Format)
	assert.Empty(t, cfg.Database)
	require.NoError(t, cfg.Validate())
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte("budget: 50\ndatabase: runs.db\n"))
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Budget)
	assert.Equal(t, "runs.db", cfg.Database)
	assert.True(t, cfg.Dedup, "unset keys keep their defaults")
	assert.Equal(t, "text", cfg.Format)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"unknown key", "budgett: 5\n", "budgett"},
		{"negative budget", "budget: -1\n", "non-negative"},
		{"bad format", "format: xml\n", "text or json"},
		{"wrong type", "dedup: maybe\n", "parse YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadAndSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ntm.yaml")

	want := DefaultConfig()
	want.Budget = 7
	want.Dedup = false
	want.Format = "json"
	want.MetricsFile = "ntm.prom"
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadReportsPath(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "bad.yaml", "format: csv\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
