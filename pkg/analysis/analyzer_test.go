package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeEmpty(t *testing.T) {
	chk := require.New(t)

	stats := Analyze(nil, 450)
	chk.Equal(0, stats.TotalAgents)
	chk.Equal([]int{}, stats.OverloadedAgents)
	chk.Equal([]float64{}, stats.UtilizationByAgent)
	chk.Zero(stats.MaxTimeUsed)
	chk.Zero(stats.MinTimeUsed)
	chk.Zero(stats.AverageTimeUsed)
	chk.Zero(stats.AverageUtilization)
}

func TestAnalyzeUtilizationIsExact(t *testing.T) {
	chk := require.New(t)

	stats := Analyze([]int{225}, 450)
	chk.Equal([]float64{0.5}, stats.UtilizationByAgent)
	chk.Equal(0.5, stats.AverageUtilization)
}

func TestAnalyzeAggregates(t *testing.T) {
	chk := require.New(t)

	stats := Analyze([]int{480, 100, 200}, 480)
	chk.Equal(3, stats.TotalAgents)
	chk.Equal(480, stats.MaxTimeUsed)
	chk.Equal(100, stats.MinTimeUsed)
	chk.InDelta(260.0, stats.AverageTimeUsed, 1e-9)
	chk.Equal([]float64{1, 0.2083, 0.4167}, stats.UtilizationByAgent)
	chk.Equal(0.5417, stats.AverageUtilization)
}

// The solvers never overcommit, so this list is expected to stay empty for
// their output. Feeding totals directly shows the check itself works.
func TestAnalyzeOverloadedAgents(t *testing.T) {
	chk := require.New(t)

	chk.Empty(Analyze([]int{450, 449, 0}, 450).OverloadedAgents)
	chk.Equal([]int{1}, Analyze([]int{10, 500}, 450).OverloadedAgents)
}

func TestAnalyzeNonPositiveCapacity(t *testing.T) {
	chk := require.New(t)

	stats := Analyze([]int{0, 0}, 0)
	chk.Equal([]float64{0, 0}, stats.UtilizationByAgent)
	chk.Zero(stats.AverageUtilization)
	chk.Empty(stats.OverloadedAgents)

	stats = Analyze([]int{0}, -10)
	chk.Equal([]float64{0}, stats.UtilizationByAgent)
}

func TestRound(t *testing.T) {
	chk := require.New(t)

	chk.Equal(0.667, Round(2.0/3.0, 3))
	chk.Equal(0.3333, Round(1.0/3.0, 4))
	chk.Equal(1.0, Round(0.99996, 4))
	chk.Equal(0.5, Round(0.5, 4))

	// exact binary value is rounded, ties go to even
	chk.Equal(0.062, Round(0.0625, 3))
	chk.Equal(0.188, Round(0.1875, 3))
	chk.Equal(1.0, Round(1.0005, 3))
	chk.Equal(2.67, Round(2.675, 2))
}

func TestAnalyzeTiesRoundToEven(t *testing.T) {
	chk := require.New(t)

	stats := Analyze([]int{15, 75, 465}, 480)
	chk.Equal([]float64{0.0312, 0.1562, 0.9688}, stats.UtilizationByAgent)
	chk.Equal(0.3854, stats.AverageUtilization)
}
