package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/psidex/knowmap/internal/layout"
	"github.com/psidex/knowmap/internal/lib"
)

// Config holds knowmap configuration.
type Config struct {
	Data   DataConfig   `toml:"data"`
	Layout LayoutConfig `toml:"layout"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
	Render RenderConfig `toml:"render"`
}

// DataConfig controls where the graph is read from.
type DataConfig struct {
	Source       string       `toml:"source"` // file path or http(s) URL
	FetchTimeout lib.Duration `toml:"fetch_timeout"`
}

// LayoutConfig is the force layout plus the delay before the graph is interactive.
type LayoutConfig struct {
	layout.Params
	WarmupDelay lib.Duration `toml:"warmup_delay"`
}

type ServerConfig struct {
	Address     string `toml:"address"`
	GrpcAddress string `toml:"grpc_address"`
	StaticDir   string `toml:"static_dir"` // empty serves the embedded viewer
}

type LogConfig struct {
	Level string `toml:"level"`
}

type RenderConfig struct {
	Format   string `toml:"format"` // "echarts", "vis", "graphology" or "json"
	Filename string `toml:"filename"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Source:       "Data/Data.json",
			FetchTimeout: lib.DurationFrom(10 * time.Second),
		},
		Layout: LayoutConfig{
			Params:      layout.DefaultParams(),
			WarmupDelay: lib.DurationFrom(30 * time.Millisecond),
		},
		Server: ServerConfig{
			Address:     "127.0.0.1:8080",
			GrpcAddress: "127.0.0.1:50051",
		},
		Log: LogConfig{Level: "info"},
		Render: RenderConfig{
			Format:   "echarts",
			Filename: "knowmap",
		},
	}
}

// Dir returns the knowmap config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "knowmap")
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads path over the defaults. An empty path means DefaultPath, and a missing
// file at the default path is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the layout or the loader cannot work with.
func (c *Config) Validate() error {
	if c.Data.Source == "" {
		return errors.New("data.source must be set")
	}
	if c.Layout.Width <= 0 || c.Layout.Height <= 0 {
		return fmt.Errorf("layout size must be positive, got %vx%v", c.Layout.Width, c.Layout.Height)
	}
	if c.Layout.Iterations < 0 {
		return fmt.Errorf("layout.iterations must not be negative, got %d", c.Layout.Iterations)
	}
	if c.Layout.Friction < 0 || c.Layout.Friction > 1 {
		return fmt.Errorf("layout.friction must be within [0, 1], got %v", c.Layout.Friction)
	}
	if _, err := lib.ParseSLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Save writes the config to path as TOML.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
