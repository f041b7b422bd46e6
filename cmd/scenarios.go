package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var scenariosYAML bool

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the scenario profiles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry := sim.Registry()
		out := cmd.OutOrStdout()

		if scenariosYAML {
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(registry.Profiles())
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tLABEL\tDURATION\tTASKS\tBELT\tDEFAULT")
		for _, p := range registry.Profiles() {
			def := ""
			if p.Key == registry.Default().Key {
				def = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%d-%dm\tx%g\tx%g\t%s\n",
				p.Key, p.Label, p.MinDuration, p.MaxDuration, p.TaskMultiplier, p.BeltSpeed, def)
		}
		return w.Flush()
	},
}

func init() {
	scenariosCmd.Flags().BoolVar(&scenariosYAML, "yaml", false, "Print full profiles as YAML")
	rootCmd.AddCommand(scenariosCmd)
}
