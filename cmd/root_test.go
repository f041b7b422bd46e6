package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/Photon1c/pulselinestudio/pkg/simulation"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	// rootCmd is shared, so clear flag state left by earlier runs
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestRunJSON(t *testing.T) {
	chk := require.New(t)

	out := execute(t, "--json", "--agents", "3", "--tasks", "12", "--max-minutes", "20", "--scenario", "focus", "--belt", "2", "--seed", "5")
	var res simulation.Result
	chk.NoError(jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(out), &res))
	chk.Equal("focus", res.Scenario.Key)
	chk.Equal(15, res.Parameters.AdjustedTasks)
	chk.Len(res.Agents, 3)
	chk.Equal(int64(5), *res.Parameters.Seed)
}

func TestRunText(t *testing.T) {
	chk := require.New(t)

	out := execute(t, "--agents", "2", "--tasks", "4", "--max-minutes", "480", "--seed", "1", "--timeline")
	chk.Contains(out, "[FLOW] Balanced Ops")
	chk.Contains(out, "Agent Utilization")
	chk.Contains(out, "Execution Timeline")
	chk.Contains(out, "No backlog!")
}

func TestScenariosCommand(t *testing.T) {
	chk := require.New(t)

	out := execute(t, "scenarios")
	chk.Contains(out, "standard")
	chk.Contains(out, "Deep Work Pods")
	chk.Contains(out, "Workload Spike")
}
