// Package config loads the density.yaml settings shared by the CLI commands and servers.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileNames are looked up, in order, by Find.
var FileNames = []string{"density.yaml", "density.yml", "density.json"}

// Config holds every setting a command can read from file.
// Flags override file values; zero values keep the defaults.
type Config struct {
	// Pack is the asset pack directory.
	Pack string `yaml:"pack"`
	// Source selects the pack reader: "file" or "loam".
	Source    string `yaml:"source"`
	MaxDepth  int    `yaml:"maxDepth"`
	Workers   int    `yaml:"workers"`
	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`

	Server Server `yaml:"server"`
}

// Server configures the HTTP and MCP transports.
type Server struct {
	Addr     string        `yaml:"addr"`
	Redis    string        `yaml:"redis"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
	Watch    bool          `yaml:"watch"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Pack:      ".",
		Source:    "file",
		LogLevel:  "info",
		LogFormat: "text",
		Server: Server{
			Addr:     ":8080",
			CacheTTL: 10 * time.Minute,
		},
	}
}

// Find returns the first config file present in dir, or "" if there is none.
func Find(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads path over the defaults. An empty path returns the defaults.
// JSON files are accepted since JSON is a subset of YAML.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s not found", path)
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	// A relative pack is relative to the file, not to the working directory
	if !filepath.IsAbs(cfg.Pack) {
		cfg.Pack = filepath.Join(filepath.Dir(path), cfg.Pack)
	}
	return cfg, nil
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	switch c.Source {
	case "file", "loam":
	default:
		return fmt.Errorf("unknown source %q (want file or loam)", c.Source)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat)
	}
	if c.MaxDepth < 0 || c.Workers < 0 {
		return errors.New("maxDepth and workers must not be negative")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return l, nil
}
