package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Photon1c/pulselinestudio/pkg/config"
	"github.com/Photon1c/pulselinestudio/pkg/simulation"
)

// simulationFlags are the run parameters accepted by every command that simulates.
// Flags left unset fall back to the configuration defaults.
type simulationFlags struct {
	agents     int
	tasks      int
	maxMinutes int
	scenario   string
	belt       float64
	seed       int64
}

func (f *simulationFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.agents, "agents", "a", 0, "Number of agents (default from config)")
	cmd.Flags().IntVarP(&f.tasks, "tasks", "n", 0, "Requested task count before multipliers (default from config)")
	cmd.Flags().IntVarP(&f.maxMinutes, "max-minutes", "m", 0, "Per-agent time budget in minutes (default from config)")
	cmd.Flags().StringVarP(&f.scenario, "scenario", "s", "", "Scenario key: standard, focus or lucy (default from config)")
	cmd.Flags().Float64Var(&f.belt, "belt", 0, "Belt multiplier, minimum 0.2 (default from config)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Seed for a reproducible workload")
}

func (f *simulationFlags) params(cmd *cobra.Command, c *config.Config) (simulation.Params, error) {
	p := simulation.Params{
		Agents:         c.Defaults.NumAgents,
		Tasks:          c.Defaults.NumTasks,
		MaxMinutes:     c.Defaults.MaxMinutes,
		ScenarioKey:    c.Defaults.Mode,
		BeltMultiplier: c.UI.BeltDefault,
	}

	flags := cmd.Flags()
	if flags.Changed("agents") {
		p.Agents = f.agents
	}
	if flags.Changed("tasks") {
		p.Tasks = f.tasks
	}
	if flags.Changed("max-minutes") {
		p.MaxMinutes = f.maxMinutes
	}
	if flags.Changed("scenario") {
		p.ScenarioKey = f.scenario
	}
	if flags.Changed("belt") {
		p.BeltMultiplier = f.belt
	}
	if flags.Changed("seed") {
		seed := f.seed
		p.Seed = &seed
	}

	if p.Agents < 0 || p.Tasks < 0 {
		return p, fmt.Errorf("agents and tasks must not be negative")
	}
	p.BeltMultiplier = simulation.ClampBeltMultiplier(p.BeltMultiplier)
	return p, nil
}
