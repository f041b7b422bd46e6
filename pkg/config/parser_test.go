package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Photon1c/pulselinestudio/pkg/solver"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	chk := require.New(t)
	path := writeFile(t, "settings.yaml", `
defaults:
  numAgents: 8
  numTasks: 200
  maxMinutes: 450
  mode: lucy
ui:
  beltDefault: 1.5
solver: indexed
watch:
  schedule: "*/5 * * * *"
`)

	cfg, err := LoadConfig(path)
	chk.NoError(err)
	chk.Equal(8, cfg.Defaults.NumAgents)
	chk.Equal(200, cfg.Defaults.NumTasks)
	chk.Equal(450, cfg.Defaults.MaxMinutes)
	chk.Equal("lucy", cfg.Defaults.Mode)
	chk.Equal(1.5, cfg.UI.BeltDefault)
	chk.Equal("indexed", cfg.Solver)
	chk.Equal("*/5 * * * *", cfg.Watch.Schedule)
	chk.Equal(path, cfg.Path)

	// untouched sections keep their defaults
	chk.Equal(":5001", cfg.Server.Addr)
	chk.Equal(10, cfg.Watch.Window)
	chk.True(cfg.UI.AutoRunOnLoad)
}

func TestLoadConfigTOML(t *testing.T) {
	chk := require.New(t)
	path := writeFile(t, "settings.toml", `
solver = "greedy"

[defaults]
num_agents = 3
max_minutes = 60

[server]
addr = "127.0.0.1:9000"

[log]
level = "debug"
development = true
`)

	cfg, err := LoadConfig(path)
	chk.NoError(err)
	chk.Equal(3, cfg.Defaults.NumAgents)
	chk.Equal(120, cfg.Defaults.NumTasks)
	chk.Equal(60, cfg.Defaults.MaxMinutes)
	chk.Equal("127.0.0.1:9000", cfg.Server.Addr)
	chk.Equal("debug", cfg.Log.Level)
	chk.True(cfg.Log.Development)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"negative agents": "defaults:\n  numAgents: -1\n",
		"negative tasks":  "defaults:\n  numTasks: -4\n",
		"unknown solver":  "solver: optimal\n",
		"bad schedule":    "watch:\n  schedule: \"every now and then\"\n",
		"negative window": "watch:\n  window: -2\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "settings.yaml", content))
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}

	_, err := LoadConfig(writeFile(t, "settings.yaml", "solver: optimal\n"))
	require.True(t, errors.Is(err, solver.ErrUnknownStrategy))
}

func TestLoadConfigMalformed(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "settings.yaml", "defaults: [1, 2"))
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrInvalidConfig))
}

func TestLoadOrDefault(t *testing.T) {
	chk := require.New(t)

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	chk.NoError(err)
	chk.Equal(Default(), *cfg)

	cfg, err = LoadOrDefault("")
	chk.NoError(err)
	chk.Equal(6, cfg.Defaults.NumAgents)

	_, err = LoadOrDefault(writeFile(t, "settings.yaml", "solver: nope\n"))
	chk.Error(err)
}
