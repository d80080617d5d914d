package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Fills defaults", func(t *testing.T) {
		// Given: a config with only redis set
		path := writeConfig(t, "redis:\n  host: cache\n")

		// When: it is loaded
		conf, err := Load(path)

		// Then: everything else has its default
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 24*time.Hour, conf.Redis.SessionTTL)
		assert.Equal(t, EngineModeLocal, conf.Engine.Mode)
		assert.False(t, conf.Engine.DisableHeuristic)
		assert.Equal(t, 10*time.Second, conf.Engine.SearchTimeout)
		assert.Equal(t, entity.DefaultDimension, conf.Engine.BoardDimension)
		assert.Equal(t, "X", conf.Players.X.Name)
		assert.Equal(t, "O", conf.Players.O.Name)
		assert.Equal(t, entity.DefaultPly, conf.Players.X.Ply)
		assert.Equal(t, entity.DefaultPly, conf.Players.O.Ply)
	})

	t.Run("Reads players and engine", func(t *testing.T) {
		path := writeConfig(t, `
engine:
  board-dimension: 4
  disable-heuristic: true
  search-timeout: 2s
players:
  x:
    name: Alice
    automated: false
    ply: 3
  o:
    name: Bot
    automated: true
    ply: 9
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 4, conf.Engine.BoardDimension)
		assert.True(t, conf.Engine.DisableHeuristic)
		assert.Equal(t, 2*time.Second, conf.Engine.SearchTimeout)
		assert.Equal(t, entity.PlayerSettings{Name: "Alice", Automated: false, Ply: 3}, conf.Players.X)
		assert.Equal(t, entity.PlayerSettings{Name: "Bot", Automated: true, Ply: 9}, conf.Players.O)
	})

	t.Run("Env overrides the file", func(t *testing.T) {
		t.Setenv("ENGINE_MODE", EngineModeRemote)
		t.Setenv("ENGINE_REMOTE_URL", "http://engine:9090")

		conf, err := Load(writeConfig(t, "engine:\n  mode: local\n"))

		require.NoError(t, err)
		assert.Equal(t, EngineModeRemote, conf.Engine.Mode)
		assert.Equal(t, "http://engine:9090", conf.Engine.RemoteURL)
	})

	t.Run("Rejects invalid settings", func(t *testing.T) {
		tests := []struct {
			name     string
			contents string
			want     error
		}{
			{"dimension", "engine:\n  board-dimension: 5\n", apperror.ErrInvalidDimension},
			{"ply", "players:\n  o:\n    ply: 17\n", apperror.ErrInvalidPly},
			{"mode", "engine:\n  mode: cloud\n", ErrUnknownEngineMode},
			{"remote url", "engine:\n  mode: remote\n", ErrRemoteURLNotSet},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Load(writeConfig(t, tt.contents))
				require.ErrorIs(t, err, tt.want)
			})
		}
	})

	t.Run("MustLoad panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "absent.yml"))
		})
	})
}
