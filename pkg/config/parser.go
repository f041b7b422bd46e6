package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/Photon1c/pulselinestudio/pkg/solver"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// ScheduleParser parses watch schedules: standard five-field cron plus descriptors
var ScheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// LoadConfig loads and parses the configuration file.
// The format follows the extension: .toml is TOML, anything else is YAML.
// Values missing from the file keep their defaults.
func LoadConfig(filename string) (*Config, error) {
	resolved, err := expandHome(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	config.Path = resolved

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &config, nil
}

// LoadOrDefault loads filename, falling back to Default when the file does not exist
func LoadOrDefault(filename string) (*Config, error) {
	if strings.TrimSpace(filename) == "" {
		config := Default()
		return &config, nil
	}
	config, err := LoadConfig(filename)
	if errors.Is(err, fs.ErrNotExist) {
		def := Default()
		return &def, nil
	}
	return config, err
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return filepath.Clean(path), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	trimmed := strings.TrimPrefix(path, "~")
	trimmed = strings.TrimPrefix(trimmed, "/")
	return filepath.Join(home, trimmed), nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Defaults.NumAgents < 0 {
		return fmt.Errorf("defaults.numAgents must not be negative")
	}

	if config.Defaults.NumTasks < 0 {
		return fmt.Errorf("defaults.numTasks must not be negative")
	}

	if config.UI.BeltDefault < 0 {
		return fmt.Errorf("ui.beltDefault must not be negative")
	}

	if _, err := solver.ParseStrategy(config.Solver); err != nil {
		return err
	}

	if config.Watch.Window < 0 {
		return fmt.Errorf("watch.window must not be negative")
	}

	if config.Watch.Schedule != "" {
		if _, err := ScheduleParser.Parse(config.Watch.Schedule); err != nil {
			return fmt.Errorf("watch.schedule %q: %w", config.Watch.Schedule, err)
		}
	}

	return nil
}
