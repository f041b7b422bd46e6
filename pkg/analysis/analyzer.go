package analysis

import "strconv"

// Stats summarises how agent time was used against capacity
type Stats struct {
	TotalAgents int `json:"total_agents"`
	// OverloadedAgents lists agents whose total exceeds capacity. The solvers
	// never place a task that does not fit, so with a positive capacity this
	// stays empty; it is kept for allocators that may overcommit.
	OverloadedAgents   []int     `json:"overloaded_agents"`
	MaxTimeUsed        int       `json:"max_time_used"`
	MinTimeUsed        int       `json:"min_time_used"`
	AverageTimeUsed    float64   `json:"average_time_used"`
	UtilizationByAgent []float64 `json:"utilization_by_agent"`
	AverageUtilization float64   `json:"average_utilization"`
}

// Analyze computes utilization statistics for per-agent totals.
// No agents yields zeroed stats. A non-positive capacity yields zero utilization.
func Analyze(agentTotals []int, capacity int) Stats {
	stats := Stats{
		OverloadedAgents:   []int{},
		UtilizationByAgent: []float64{},
	}
	if len(agentTotals) == 0 {
		return stats
	}

	stats.TotalAgents = len(agentTotals)
	stats.MinTimeUsed = agentTotals[0]
	stats.MaxTimeUsed = agentTotals[0]

	total := 0
	utilSum := 0.0
	for i, t := range agentTotals {
		if t > capacity {
			stats.OverloadedAgents = append(stats.OverloadedAgents, i)
		}
		stats.MinTimeUsed = min(stats.MinTimeUsed, t)
		stats.MaxTimeUsed = max(stats.MaxTimeUsed, t)
		total += t

		u := Utilization(t, capacity)
		stats.UtilizationByAgent = append(stats.UtilizationByAgent, u)
		utilSum += u
	}

	stats.AverageTimeUsed = float64(total) / float64(len(agentTotals))
	stats.AverageUtilization = Round(utilSum/float64(len(agentTotals)), 4)
	return stats
}

// Utilization returns total/capacity rounded to 4 decimal places, or 0 when
// capacity is not positive.
func Utilization(total, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	return Round(float64(total)/float64(capacity), 4)
}

// Round rounds value to the given number of decimal places. The exact binary
// value is rounded, so 2.675 becomes 2.67 and exact ties go to the even digit.
func Round(value float64, places int) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(value, 'f', places, 64), 64)
	if err != nil {
		return value
	}
	return rounded
}
