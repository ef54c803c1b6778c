package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
)

// Config holds scene sizing, render settings and paths.
type Config struct {
	// Scene
	Ornaments int   `json:"ornaments"`
	Frames    int   `json:"frames"`
	Seed      int64 `json:"seed"`

	// Headless render settings
	OutputDir   string  `json:"output_dir"`
	RenderSize  int     `json:"render_size"`
	Supersample int     `json:"supersample"`
	Workers     int     `json:"workers"`
	FPS         int     `json:"fps"`
	Duration    float64 `json:"duration"` // seconds of simulated time

	// Optional backdrop. A missing or broken file never stops rendering.
	Environment string `json:"environment"`

	// Photos are fetched from the network unless disabled.
	Offline bool `json:"offline"`

	LogLevel string `json:"log_level"`
}

// Defaults.
const (
	DefaultOrnaments   = 2700
	DefaultFrames      = 12
	DefaultRenderSize  = 512
	DefaultSupersample = 2
	DefaultFPS         = 30
	DefaultDuration    = 6
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: expand %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Ornaments   int
	Frames      int
	Seed        int64
	OutputDir   string
	Size        int
	Workers     int
	Duration    float64
	Environment string
	Offline     bool
	LogLevel    string
}

// Resolve applies flag overrides and fills any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Ornaments > 0 {
		c.Ornaments = flags.Ornaments
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Duration > 0 {
		c.Duration = flags.Duration
	}
	if flags.Environment != "" {
		c.Environment = flags.Environment
	}
	if flags.Offline {
		c.Offline = true
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.Ornaments <= 0 {
		c.Ornaments = DefaultOrnaments
	}
	if c.Frames <= 0 {
		c.Frames = DefaultFrames
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	c.OutputDir = expand(c.OutputDir)
	c.Environment = expand(c.Environment)

	if c.RenderSize <= 0 {
		c.RenderSize = DefaultRenderSize
	}
	if c.Supersample <= 0 {
		c.Supersample = DefaultSupersample
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
	if c.Duration <= 0 {
		c.Duration = DefaultDuration
	}
}

// expand resolves "~" and makes the path absolute. Empty stays empty.
func expand(p string) string {
	if p == "" {
		return ""
	}
	if e, err := homedir.Expand(p); err == nil {
		p = e
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return p
}

// Level parses LogLevel, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// SetupLogging installs a text handler on stderr at the configured level.
func (c Config) SetupLogging() {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.Level()})
	slog.SetDefault(slog.New(h))
}
