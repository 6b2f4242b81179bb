// Package config loads settings for the gothello binaries from defaults, an
// optional config file, GOTHELLO_* environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hailam/gothello/internal/board"
	"github.com/hailam/gothello/internal/engine"
)

// EnvPrefix prefixes every environment variable, e.g. GOTHELLO_LOG_LEVEL.
const EnvPrefix = "GOTHELLO"

// ErrUsage is returned for malformed command lines.
var ErrUsage = errors.New("usage: gthplayer [flags] [color server_name server_number depth]")

// Config holds the settings shared by the network player and the desktop board.
type Config struct {
	Side         string `mapstructure:"side"`
	Host         string `mapstructure:"host"`
	Server       int    `mapstructure:"server"`
	Depth        int    `mapstructure:"depth"`
	Difficulty   string `mapstructure:"difficulty"`
	Seed         uint64 `mapstructure:"seed"`
	LogLevel     string `mapstructure:"log-level"`
	LogFormat    string `mapstructure:"log-format"`
	DataDir      string `mapstructure:"data-dir"`
	Record       bool   `mapstructure:"record"`
	DialAttempts uint   `mapstructure:"dial-attempts"`
}

// Flags registers every setting on fs with its default.
func Flags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (yaml, toml or json)")
	fs.String("side", "black", "side to play: black or white")
	fs.String("host", "localhost", "game server host")
	fs.Int("server", 0, "server number, added to the base port")
	fs.Int("depth", 2, "search depth past each candidate move")
	fs.String("difficulty", "medium", "desktop engine strength: easy, medium or hard")
	fs.Uint64("seed", 0, "seed for hashing and tie-breaks, 0 picks one at random")
	fs.String("log-level", "info", "trace, debug, info, warn, error or disabled")
	fs.String("log-format", "console", "console or json")
	fs.String("data-dir", "", "data directory, defaults to the platform location")
	fs.Bool("record", false, "store finished games in the local database")
	fs.Uint("dial-attempts", 5, "connection attempts before giving up")
}

// Load parses args (without the program name). The legacy positional form
// "color server_name server_number depth" is accepted and wins over flags.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("gthplayer", pflag.ContinueOnError)
	Flags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return FromFlags(fs)
}

// FromFlags builds a Config from an already parsed flag set.
func FromFlags(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	switch pos := fs.Args(); len(pos) {
	case 0:
	case 4:
		server, err := strconv.Atoi(pos[2])
		if err != nil {
			return nil, fmt.Errorf("%w: bad server number %q", ErrUsage, pos[2])
		}
		depth, err := strconv.Atoi(pos[3])
		if err != nil {
			return nil, fmt.Errorf("%w: bad depth %q", ErrUsage, pos[3])
		}
		v.Set("side", pos[0])
		v.Set("host", pos[1])
		v.Set("server", server)
		v.Set("depth", depth)
	default:
		return nil, ErrUsage
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that flags alone cannot constrain.
func (c *Config) Validate() error {
	if _, ok := board.ParseColor(c.Side); !ok {
		return fmt.Errorf("config: side must be black or white, got %q", c.Side)
	}
	if c.Depth < 1 {
		return fmt.Errorf("config: depth must be at least 1, got %d", c.Depth)
	}
	if c.Server < 0 {
		return fmt.Errorf("config: server number must not be negative, got %d", c.Server)
	}
	if _, ok := engine.ParseDifficulty(c.Difficulty); !ok {
		return fmt.Errorf("config: unknown difficulty %q", c.Difficulty)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("config: log format must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// Color returns the side to play.
func (c *Config) Color() board.Color {
	col, _ := board.ParseColor(c.Side)
	return col
}

// EngineDifficulty returns the desktop engine strength.
func (c *Config) EngineDifficulty() engine.Difficulty {
	d, _ := engine.ParseDifficulty(c.Difficulty)
	return d
}
