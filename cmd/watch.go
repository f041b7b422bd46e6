package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Photon1c/pulselinestudio/pkg/watch"
)

var (
	watchSchedule string
	watchWindow   int
	watchFlags    simulationFlags
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the simulation on a schedule and print a rolling trend",
	RunE: func(cmd *cobra.Command, _ []string) error {
		params, err := watchFlags.params(cmd, cfg)
		if err != nil {
			return err
		}

		schedule := cfg.Watch.Schedule
		if watchSchedule != "" {
			schedule = watchSchedule
		}
		window := cfg.Watch.Window
		if cmd.Flags().Changed("window") {
			window = watchWindow
		}

		w, err := watch.New(sim, params, schedule, window, cmd.OutOrStdout(), logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return w.Run(ctx)
	},
}

func init() {
	watchFlags.register(watchCmd)
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "", `Cron expression or descriptor such as "@every 30s" (default from config)`)
	watchCmd.Flags().IntVar(&watchWindow, "window", 0, "Number of recent runs in the trend (default from config)")
	rootCmd.AddCommand(watchCmd)
}
