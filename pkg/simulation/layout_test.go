package simulation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildLayoutEmpty(t *testing.T) {
	chk := require.New(t)

	grid := BuildLayout(0, DefaultSpacing)
	chk.Zero(grid.Rows)
	chk.Zero(grid.Cols)
	chk.NotNil(grid.Positions)
	chk.Empty(grid.Positions)
}

func TestBuildLayoutCentersGrid(t *testing.T) {
	chk := require.New(t)

	grid := BuildLayout(5, 6)
	chk.Equal(2, grid.Rows)
	chk.Equal(3, grid.Cols)
	chk.Equal(6.0, grid.CellSize)
	chk.Equal([]Position{
		{AgentID: 0, X: -6, Z: -3},
		{AgentID: 1, X: 0, Z: -3},
		{AgentID: 2, X: 6, Z: -3},
		{AgentID: 3, X: -6, Z: 3},
		{AgentID: 4, X: 0, Z: 3},
	}, grid.Positions)
}

func TestBuildLayoutSingleAgent(t *testing.T) {
	chk := require.New(t)

	grid := BuildLayout(1, 4)
	chk.Equal(1, grid.Rows)
	chk.Equal(1, grid.Cols)
	chk.Equal([]Position{{AgentID: 0}}, grid.Positions)
}

func TestBuildLayoutPerfectSquare(t *testing.T) {
	chk := require.New(t)

	grid := BuildLayout(9, 2)
	chk.Equal(3, grid.Rows)
	chk.Equal(3, grid.Cols)
	chk.Equal(Position{AgentID: 8, X: 2, Z: 2}, grid.Positions[8])
}

func TestBuildTimeline(t *testing.T) {
	chk := require.New(t)

	timeline := BuildTimeline([][]int{{5, 3}, {}, {4}})
	chk.Equal([]Segment{
		{AgentID: 0, Sequence: 0, Start: 0, Duration: 5, End: 5},
		{AgentID: 0, Sequence: 1, Start: 5, Duration: 3, End: 8},
		{AgentID: 2, Sequence: 0, Start: 0, Duration: 4, End: 4},
	}, timeline)

	chk.Empty(BuildTimeline(nil))
	chk.NotNil(BuildTimeline(nil))
}
