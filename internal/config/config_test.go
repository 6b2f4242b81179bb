package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/gothello/internal/board"
	"github.com/hailam/gothello/internal/engine"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg, err := Load(nil)
	is.NoErr(err)
	is.Equal(cfg.Side, "black")
	is.Equal(cfg.Color(), board.Black)
	is.Equal(cfg.Host, "localhost")
	is.Equal(cfg.Server, 0)
	is.Equal(cfg.Depth, 2)
	is.Equal(cfg.EngineDifficulty(), engine.Medium)
	is.Equal(cfg.LogFormat, "console")
	is.Equal(cfg.DialAttempts, uint(5))
	is.True(!cfg.Record)
}

func TestPositionalArgs(t *testing.T) {
	is := is.New(t)
	cfg, err := Load([]string{"white", "games.example.org", "3", "4"})
	is.NoErr(err)
	is.Equal(cfg.Color(), board.White)
	is.Equal(cfg.Host, "games.example.org")
	is.Equal(cfg.Server, 3)
	is.Equal(cfg.Depth, 4)
}

func TestPositionalArgsBeatFlags(t *testing.T) {
	is := is.New(t)
	cfg, err := Load([]string{"--depth", "7", "--seed", "12", "black", "h", "1", "3"})
	is.NoErr(err)
	is.Equal(cfg.Depth, 3)
	is.Equal(cfg.Seed, uint64(12))
}

func TestBadCommandLines(t *testing.T) {
	for _, args := range [][]string{
		{"black", "host"},
		{"black", "host", "x", "2"},
		{"black", "host", "1", "deep"},
		{"--no-such-flag"},
	} {
		_, err := Load(args)
		assert.ErrorIs(t, err, ErrUsage, "%v", args)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string][]string{
		"side":       {"--side", "red"},
		"depth":      {"--depth", "0"},
		"server":     {"--server=-1"},
		"difficulty": {"--difficulty", "brutal"},
		"log-level":  {"--log-level", "loud"},
		"log-format": {"--log-format", "xml"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(args)
			assert.Error(t, err)
		})
	}
}

func TestEnvironment(t *testing.T) {
	t.Setenv("GOTHELLO_DEPTH", "5")
	t.Setenv("GOTHELLO_LOG_LEVEL", "debug")
	t.Setenv("GOTHELLO_DIAL_ATTEMPTS", "9")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Depth)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint(9), cfg.DialAttempts)

	// Flags set on the command line beat the environment.
	cfg, err = Load([]string{"--depth", "1"})
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Depth)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gothello.json")
	data, err := json.Marshal(map[string]any{
		"side":       "white",
		"host":       "example.net",
		"difficulty": "hard",
		"record":     true,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load([]string{"--config", path, "--host", "override.net"})
	require.NoError(t, err)
	assert.Equal(t, board.White, cfg.Color())
	assert.Equal(t, "override.net", cfg.Host)
	assert.Equal(t, engine.Hard, cfg.EngineDifficulty())
	assert.True(t, cfg.Record)

	_, err = Load([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)
	oldLogger := log.Logger
	defer func() { log.Logger = oldLogger }()

	var buf bytes.Buffer
	cfg := &Config{LogLevel: "warn", LogFormat: "json"}
	require.NoError(t, cfg.SetupLogging(&buf))

	log.Info().Msg("hidden")
	log.Warn().Str("k", "v").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "v", line["k"])
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	assert.Error(t, (&Config{LogLevel: "nope"}).SetupLogging(&buf))
}
