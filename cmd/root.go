package cmd

import (
	"context"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Photon1c/pulselinestudio/pkg/chart"
	"github.com/Photon1c/pulselinestudio/pkg/config"
	"github.com/Photon1c/pulselinestudio/pkg/logging"
	"github.com/Photon1c/pulselinestudio/pkg/scenario"
	"github.com/Photon1c/pulselinestudio/pkg/simulation"
	"github.com/Photon1c/pulselinestudio/pkg/solver"
	"github.com/Photon1c/pulselinestudio/pkg/tracing"
)

var (
	configFile    string
	logLevel      string
	traceEnabled  bool
	solverName    string
	showTimeline  bool
	timelineLimit int
	showBacklog   bool
	jsonOutput    bool
	plotFile      string

	runFlags simulationFlags
)

// state shared by all subcommands, built before any of them runs
var (
	cfg           *config.Config
	logger        *zap.Logger
	sim           *simulation.Simulator
	shutdownTrace = func(context.Context) error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "pulseline",
	Short: "Workflow allocation simulator",
	Long: `A CLI tool that simulates a team of agents working through a shift.

Each run generates a workload from a scenario profile, assigns it to agents
with a longest-task-first heuristic under a per-agent time budget, and reports
utilization, backlog and throughput. Subcommands serve the same simulation over
HTTP, re-run it on a schedule, or show it in a terminal dashboard.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runSimulation,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "Path to configuration file (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&traceEnabled, "trace", false, "Export simulation spans to stderr")
	rootCmd.PersistentFlags().StringVar(&solverName, "solver", "", "Allocator override (greedy or indexed)")

	runFlags.register(rootCmd)
	rootCmd.Flags().BoolVarP(&showTimeline, "timeline", "t", false, "Show per-agent execution timeline")
	rootCmd.Flags().IntVarP(&timelineLimit, "timeline-limit", "l", 20, "Limit number of agents shown in the timeline")
	rootCmd.Flags().BoolVarP(&showBacklog, "backlog", "b", true, "Show backlog breakdown")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the full result as JSON")
	rootCmd.Flags().StringVar(&plotFile, "plot", "", "Write a utilization chart image to this file (.png, .svg, .pdf)")
}

func setup(cmd *cobra.Command, _ []string) error {
	// Load configuration
	loaded, err := config.LoadOrDefault(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg = loaded

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	logger, err = logging.New(level, cfg.Log.Development)
	if err != nil {
		return err
	}

	shutdownTrace, err = tracing.Setup(traceEnabled || cfg.Tracing.Enabled, os.Stderr)
	if err != nil {
		return err
	}

	name := cfg.Solver
	if solverName != "" {
		name = solverName
	}
	strategy, err := solver.ParseStrategy(name)
	if err != nil {
		return err
	}

	sim = simulation.NewSimulator(scenario.NewRegistry(),
		simulation.WithStrategy(strategy),
		simulation.WithLogger(logger))

	logger.Debug("configuration loaded",
		zap.String("path", cfg.Path),
		zap.String("solver", string(strategy)),
		zap.String("command", cmd.Name()))
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if err := shutdownTrace(context.Background()); err != nil {
		return fmt.Errorf("failed to flush traces: %w", err)
	}
	if logger != nil {
		_ = logger.Sync()
	}
	return nil
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	params, err := runFlags.params(cmd, cfg)
	if err != nil {
		return err
	}

	res := tracing.Simulate(cmd.Context(), sim, params)
	out := cmd.OutOrStdout()

	if jsonOutput {
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	chartGen := chart.NewGenerator()

	fmt.Fprintln(out, chartGen.GenerateSummary(res))
	fmt.Fprintln(out, chartGen.GenerateUtilizationChart(res))

	if showBacklog {
		fmt.Fprintln(out, chartGen.GenerateBacklog(res))
	}

	// Display detailed timeline if requested
	if showTimeline {
		fmt.Fprintln(out, chartGen.GenerateTimeline(res, timelineLimit))
	}

	if plotFile != "" {
		if err := chart.SavePlot(res, plotFile); err != nil {
			return err
		}
		fmt.Fprintf(out, "Chart written to %s\n", plotFile)
	}

	return nil
}
