// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Len(t, cfg.Deck.NumberCounts, 14)
	assert.Equal(t, 13, cfg.Deck.NumberCounts[13])
	assert.Equal(t, 3, cfg.Deck.SpecialCounts["freeze"])
	assert.Equal(t, 1, cfg.Deck.SpecialCounts["score_7"])
	assert.Equal(t, 10, cfg.Odds["bell"])
	assert.Equal(t, 200, cfg.Rules.WinScore)
	assert.Equal(t, 5, cfg.Items.MaxInventory)
	assert.Equal(t, 5, cfg.Items.UpgradeBase)
	assert.Equal(t, 10, cfg.Items.UpgradePriceCap)
}

func TestLoadMissingPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysYamlOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	body := []byte("rules:\n  winScore: 120\nai:\n  itemPolicy: greedy\n")
	require.NoError(t, os.WriteFile(path, body, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Rules.WinScore)
	assert.Equal(t, "greedy", cfg.AI.ItemPolicy)
	// Untouched sections keep their defaults.
	assert.Equal(t, 7, cfg.Rules.HandNumberCap)
	assert.Equal(t, 10, cfg.Odds["bell"])
}

func TestLoadRejectsUnreadableAndInvalid(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  winScore: -5\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestFromEnvUsesConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  winScore: 99\n"), 0o644))
	t.Setenv(EnvConfigPath, path)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 99, cfg.Rules.WinScore)
}

func TestValidateCatchesBadValues(t *testing.T) {
	cfg := Default()
	cfg.Rules.DuelPool = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Odds["apple"] = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Deck.NumberCounts = nil
	assert.Error(t, cfg.Validate())
}

func TestDurationHelpers(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 20*time.Second, cfg.ItemPhase())
	assert.Equal(t, 30*time.Second, cfg.BettingPhase())
	assert.Equal(t, time.Second, cfg.AIThink())
	assert.Equal(t, 1500*time.Millisecond, cfg.Announce())
}
