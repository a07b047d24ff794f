// Package cli assembles the engine, pack source and transports from config
// the same way for every density command.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/terranova/density"
	"github.com/terranova/density/internal/config"
	"github.com/terranova/density/internal/logging"
	"github.com/terranova/density/pkg/adapters/file"
	"github.com/terranova/density/pkg/adapters/loam"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/observability"
	"github.com/terranova/density/pkg/ports"
)

// Options are the command line settings shared by every command.
type Options struct {
	// Dir is searched for a config file when ConfigPath is empty.
	Dir        string
	ConfigPath string
	// Pack overrides the pack directory from the config file.
	Pack    string
	Debug   bool
	Quiet   bool
	Metrics bool
}

// App is a loaded pack plus everything built around it.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Engine  *density.Engine
	Source  ports.AssetSource
	Metrics *observability.Metrics
	Report  *density.PackReport
}

// LoadConfig resolves the config file for opts and applies the overrides.
func LoadConfig(opts Options) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		path = config.Find(dir)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if path == "" && opts.Dir != "" {
		cfg.Pack = opts.Dir
	}
	if opts.Pack != "" {
		cfg.Pack = opts.Pack
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// NewLogger builds the logger described by cfg. Quiet discards everything.
func NewLogger(cfg *config.Config, quiet bool) (*slog.Logger, error) {
	if quiet {
		return logging.NewNop(), nil
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if cfg.LogFormat == "json" {
		return logging.NewJSON(level), nil
	}
	return logging.New(level), nil
}

// OpenSource opens the pack reader selected by cfg.Source.
func OpenSource(cfg *config.Config, logger *slog.Logger) (ports.AssetSource, error) {
	switch cfg.Source {
	case "loam":
		return loam.Open(cfg.Pack)
	case "file", "":
		return file.New(cfg.Pack, file.WithLogger(logger), file.WithIgnore(config.FileNames...))
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

// Open loads the config, opens the pack and builds an engine over it.
// Pack problems are kept in the report; only an unreadable source fails.
func Open(ctx context.Context, opts Options) (*App, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger, err := NewLogger(cfg, opts.Quiet)
	if err != nil {
		return nil, err
	}

	src, err := OpenSource(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error opening pack: %w", err)
	}

	app := &App{Config: cfg, Logger: logger, Source: src}
	var hooks []domain.LifecycleHooks
	if opts.Debug {
		hooks = append(hooks, observability.LogHooks(logger))
	}
	if opts.Metrics {
		app.Metrics = observability.NewMetrics()
		hooks = append(hooks, app.Metrics.Hooks())
	}

	app.Engine = app.NewEngine(hooks...)
	app.Report, err = app.Engine.LoadPack(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("error loading pack: %w", err)
	}
	return app, nil
}

// NewEngine builds an engine with the limits from the config.
func (a *App) NewEngine(hooks ...domain.LifecycleHooks) *density.Engine {
	opts := []density.Option{density.WithLogger(a.Logger)}
	if len(hooks) > 0 {
		opts = append(opts, density.WithLifecycleHooks(observability.Chain(hooks...)))
	}
	if a.Config.MaxDepth > 0 {
		opts = append(opts, density.WithMaxDepth(a.Config.MaxDepth))
	}
	if a.Config.Workers > 0 {
		opts = append(opts, density.WithWorkers(a.Config.Workers))
	}
	return density.New(opts...)
}
