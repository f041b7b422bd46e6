package config

// Config represents the settings file for the simulator
type Config struct {
	Defaults Defaults `yaml:"defaults" toml:"defaults" json:"defaults"`
	UI       UI       `yaml:"ui" toml:"ui" json:"ui"`
	Server   Server   `yaml:"server" toml:"server" json:"server"`
	Watch    Watch    `yaml:"watch" toml:"watch" json:"watch"`
	Log      Log      `yaml:"log" toml:"log" json:"log"`
	Tracing  Tracing  `yaml:"tracing" toml:"tracing" json:"tracing"`

	// Solver names the allocator: "greedy" or "indexed"
	Solver string `yaml:"solver" toml:"solver" json:"solver"`

	// Path is the file the configuration was read from, empty for defaults
	Path string `yaml:"-" toml:"-" json:"-"`
}

// Defaults are the simulation parameters used when a request omits them
type Defaults struct {
	NumAgents  int    `yaml:"numAgents" toml:"num_agents" json:"num_agents"`
	NumTasks   int    `yaml:"numTasks" toml:"num_tasks" json:"num_tasks"`
	MaxMinutes int    `yaml:"maxMinutes" toml:"max_minutes" json:"max_minutes"`
	Mode       string `yaml:"mode" toml:"mode" json:"mode"`
}

// UI holds presentation defaults shared with clients
type UI struct {
	BeltDefault   float64 `yaml:"beltDefault" toml:"belt_default" json:"belt_default"`
	AutoRunOnLoad bool    `yaml:"autoRunOnLoad" toml:"auto_run_on_load" json:"auto_run_on_load"`
}

// Server configures the HTTP API
type Server struct {
	Addr string `yaml:"addr" toml:"addr" json:"addr"`
}

// Watch configures scheduled re-simulation
type Watch struct {
	// Schedule is a five-field cron expression or a descriptor such as "@every 10s"
	Schedule string `yaml:"schedule" toml:"schedule" json:"schedule"`
	// Window is the number of recent runs averaged in the trend line
	Window int `yaml:"window" toml:"window" json:"window"`
}

// Log configures the structured logger
type Log struct {
	Level       string `yaml:"level" toml:"level" json:"level"`
	Development bool   `yaml:"development" toml:"development" json:"development"`
}

// Tracing toggles span export to stdout
type Tracing struct {
	Enabled bool `yaml:"enabled" toml:"enabled" json:"enabled"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Defaults: Defaults{
			NumAgents:  6,
			NumTasks:   120,
			MaxMinutes: 480,
			Mode:       "standard",
		},
		UI: UI{
			BeltDefault:   1.0,
			AutoRunOnLoad: true,
		},
		Server: Server{
			Addr: ":5001",
		},
		Watch: Watch{
			Schedule: "@every 10s",
			Window:   10,
		},
		Log: Log{
			Level: "info",
		},
		Solver: "greedy",
	}
}
