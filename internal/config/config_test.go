package config_test

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terranova/density/internal/config"
	"github.com/terranova/density/internal/testutils"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoad_YAML(t *testing.T) {
	dir := testutils.SetupPack(t, map[string]string{
		"density.yaml": `
pack: assets
source: loam
workers: 4
logLevel: debug
server:
  addr: ":9090"
  redis: "localhost:6379"
  cacheTTL: 90s
`,
	})

	path := config.Find(dir)
	require.Equal(t, filepath.Join(dir, "density.yaml"), path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "assets"), cfg.Pack)
	assert.Equal(t, "loam", cfg.Source)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "text", cfg.LogFormat, "unset keys keep their default")
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "localhost:6379", cfg.Server.Redis)
	assert.Equal(t, 90*time.Second, cfg.Server.CacheTTL)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoad_JSON(t *testing.T) {
	dir := testutils.SetupPack(t, map[string]string{
		"density.json": `{"pack": "/srv/pack", "maxDepth": 64}`,
	})

	cfg, err := config.Load(config.Find(dir))
	require.NoError(t, err)
	assert.Equal(t, "/srv/pack", cfg.Pack)
	assert.Equal(t, 64, cfg.MaxDepth)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"source", "source: s3", "unknown source"},
		{"format", "logFormat: xml", "unknown log format"},
		{"level", "logLevel: loud", "unknown log level"},
		{"negative", "workers: -1", "must not be negative"},
		{"syntax", "pack: [", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutils.SetupPack(t, map[string]string{"density.yaml": tt.content})
			_, err := config.Load(filepath.Join(dir, "density.yaml"))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	assert.Equal(t, "", config.Find(t.TempDir()))
	_, err := config.Load(filepath.Join(t.TempDir(), "density.yaml"))
	assert.ErrorContains(t, err, "not found")
}
