package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Photon1c/pulselinestudio/pkg/monitor"
)

var (
	monitorRefresh string
	monitorFlags   simulationFlags
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Show the simulation in a terminal dashboard",
	Long: `Show the latest run in a terminal dashboard.

Keys: r re-runs, s cycles the scenario, + and - change the belt multiplier,
q or F10 quits. With --refresh the run repeats on that schedule.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		params, err := monitorFlags.params(cmd, cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return monitor.New(sim, params, monitorRefresh, logger).Run(ctx)
	},
}

func init() {
	monitorFlags.register(monitorCmd)
	monitorCmd.Flags().StringVar(&monitorRefresh, "refresh", "", `Auto refresh schedule, e.g. "@every 5s"`)
	rootCmd.AddCommand(monitorCmd)
}
