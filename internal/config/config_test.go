package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goserg/spreadrating/internal/rating"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MissingFile(t *testing.T) {
	cfg, err := New(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestNew_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[rating]
beta = 4.0

[server]
port = 8080
debug_mode = true

[registry]
bye_names = ["Bye"]
removed_players = ["Old Timer"]
`), 0o600))
	t.Setenv("SPREADRATING_DB", "other.sqlite")

	cfg, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.Rating.Beta)
	assert.Equal(t, float64(rating.DefaultTau), cfg.Rating.Tau)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, []string{"Bye"}, cfg.Registry.ByeNames)
	assert.Equal(t, 731, cfg.Registry.ActiveDays)
	assert.Equal(t, []string{"Old Timer"}, cfg.Registry.RemovedPlayers)
	assert.Equal(t, "other.sqlite", cfg.Storage.SqliteFile)
}

func TestNew_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte("[rating]\ntau = 0.0\n"), 0o600))
	_, err := New(path)
	assert.ErrorIs(t, err, rating.ErrInvalidTau)

	t.Setenv("SPREADRATING_PORT", "http")
	_, err = New(filepath.Join(t.TempDir(), "none.toml"))
	assert.Error(t, err)
}
