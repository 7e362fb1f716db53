package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
)

// AppName names the configuration directory.
const AppName = "deluxepaste"

// Config holds runtime configuration for the canvas front ends.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	// Window
	WindowWidth  int    `json:"window_width"`
	WindowHeight int    `json:"window_height"`
	Title        string `json:"title"`
	TargetFPS    int    `json:"target_fps"`

	// Canvas
	AspectX   int  `json:"aspect_x"`
	AspectY   int  `json:"aspect_y"`
	Smooth    bool `json:"smooth"`
	CacheSize int  `json:"cache_size"`

	// Output
	ExportPath string `json:"export_path"`
	LogLevel   string `json:"log_level"`
	LogJSON    bool   `json:"log_json"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 800,
		Title:        "Deluxe Paste",
		TargetFPS:    60,
		AspectX:      4,
		AspectY:      3,
		Smooth:       false,
		CacheSize:    64,
		ExportPath:   "export.b64",
		LogLevel:     "info",
		LogJSON:      false,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.WindowWidth < 320 {
		c.WindowWidth = 320
	}
	if c.WindowHeight < 240 {
		c.WindowHeight = 240
	}
	if c.TargetFPS <= 0 || c.TargetFPS > 240 {
		c.TargetFPS = 60
	}
	if c.AspectX <= 0 || c.AspectY <= 0 {
		c.AspectX, c.AspectY = 4, 3
	}
	if c.CacheSize <= 0 {
		c.CacheSize = 64
	}
	if strings.TrimSpace(c.Title) == "" {
		c.Title = "Deluxe Paste"
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		c.LogLevel = "info"
		return err
	}
	return nil
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() slog.Level {
	l, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// ParseLevel converts a level name ("debug", "info", "warn", "error").
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}

// DefaultPath returns the config file location under the XDG config
// directory.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.json")
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode %s: %w", path, err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format, creating
// parent directories as needed.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// ParseAspect parses a "W:H" ratio of two positive integers.
func ParseAspect(s string) (x, y int, err error) {
	ws, hs, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid aspect %q: want W:H", s)
	}
	x, err = strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid aspect %q: %w", s, err)
	}
	y, err = strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid aspect %q: %w", s, err)
	}
	if x <= 0 || y <= 0 {
		return 0, 0, fmt.Errorf("invalid aspect %q: both terms must be positive", s)
	}
	return x, y, nil
}
