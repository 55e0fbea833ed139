package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 350*time.Millisecond, cfg.RoomTransition())
}

func TestLoadOverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burrow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
room_transition_ms: 0
debug_bounding_boxes: true
paths:
  res: data
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.RoomTransition())
	assert.True(t, cfg.DebugBoundingBoxes)
	assert.Equal(t, "data", cfg.Paths.Res)
	// untouched keys keep their defaults
	assert.Equal(t, "campaigns", cfg.Paths.Campaigns)
	assert.Equal(t, filepath.Join("data", "texture", "cells", "brick.png"), cfg.CellTexture("brick"))
}

func TestLoadEnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burrow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("room_transition_ms: 100\n"), 0o644))
	t.Setenv("BURROW_ROOM_TRANSITION_MS", "250")
	t.Setenv("BURROW_CAMPAIGNS_DIR", "/srv/campaigns")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.RoomTransitionMs)
	assert.Equal(t, filepath.Join("/srv/campaigns", "eq"), cfg.CampaignDir("eq"))
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burrow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("room_transition_ms: -5\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("window: [1, 2"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
