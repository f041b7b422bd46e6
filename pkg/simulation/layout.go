package simulation

import "math"

// DefaultSpacing is the office grid cell size
const DefaultSpacing = 6.0

// BuildLayout arranges agentCount agents on a roughly square grid centred on
// the origin, spacing units apart. Agents fill the grid row by row.
func BuildLayout(agentCount int, spacing float64) Grid {
	grid := Grid{
		CellSize:  spacing,
		Positions: []Position{},
	}
	if agentCount <= 0 {
		return grid
	}

	cols := int(math.Ceil(math.Sqrt(float64(agentCount))))
	rows := (agentCount + cols - 1) / cols
	originX := float64(cols-1) / 2
	originZ := float64(rows-1) / 2

	grid.Rows = rows
	grid.Cols = cols
	grid.Positions = make([]Position, 0, agentCount)
	for id := 0; id < agentCount; id++ {
		row := id / cols
		col := id % cols
		grid.Positions = append(grid.Positions, Position{
			AgentID: id,
			X:       (float64(col) - originX) * spacing,
			Z:       (float64(row) - originZ) * spacing,
		})
	}
	return grid
}
