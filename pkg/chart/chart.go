package chart

import (
	"fmt"
	"strings"

	"github.com/Photon1c/pulselinestudio/pkg/simulation"
)

const (
	chartWidth = 80
	barWidth   = 40
)

// Generator generates ASCII charts
type Generator struct {
	width int
	bar   int
}

// NewGenerator creates a new chart generator
func NewGenerator() *Generator {
	return &Generator{
		width: chartWidth,
		bar:   barWidth,
	}
}

// GenerateSummary renders the three line status block of a run
func (g *Generator) GenerateSummary(res simulation.Result) string {
	util := pct(res.Stats.AverageUtilization)
	throughput := pct(res.Metrics.ThroughputRatio)

	return fmt.Sprintf(
		"[%s] %s\nAssistants: %d/%d | Avg Utilization: %.1f%% | Throughput: %.1f%%\n"+
			"Backlog: %d tasks / %d minutes | Arrival Rate: %g/min | Belt: %gx",
		res.Status(), res.Scenario.Label,
		len(res.Agents), res.Parameters.RequestedAgents, util, throughput,
		res.Backlog.Count, res.Backlog.TotalMinutes, res.Metrics.ArrivalRate, res.Metrics.BeltSpeed,
	)
}

// GenerateUtilizationChart draws one horizontal bar per agent
func (g *Generator) GenerateUtilizationChart(res simulation.Result) string {
	var sb strings.Builder

	// Header
	sb.WriteString("\n")
	sb.WriteString("Agent Utilization\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	if len(res.Agents) == 0 {
		sb.WriteString("No agents to display\n")
		return sb.String()
	}

	for _, agent := range res.Agents {
		filled := int(agent.Utilization * float64(g.bar))
		filled = max(0, min(filled, g.bar))
		sb.WriteString(fmt.Sprintf("A%02d |%s%s| %5.1f%% (%s / %s, %d tasks)\n",
			agent.ID,
			strings.Repeat("█", filled),
			strings.Repeat(" ", g.bar-filled),
			pct(agent.Utilization),
			FormatMinutes(agent.TotalTime),
			FormatMinutes(res.Parameters.MaxMinutes),
			len(agent.Tasks)))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Average: %.1f%% | Min: %s | Max: %s\n",
		pct(res.Stats.AverageUtilization),
		FormatMinutes(res.Stats.MinTimeUsed),
		FormatMinutes(res.Stats.MaxTimeUsed)))
	if len(res.Stats.OverloadedAgents) > 0 {
		sb.WriteString(fmt.Sprintf("Overloaded agents: %v\n", res.Stats.OverloadedAgents))
	}
	sb.WriteString("\n")

	return sb.String()
}

// GenerateTimeline draws each agent's task sequence as a strip scaled to the
// shift length. Consecutive tasks alternate glyphs so boundaries stay visible.
func (g *Generator) GenerateTimeline(res simulation.Result, limit int) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Execution Timeline")
	if limit > 0 && limit < len(res.Agents) {
		sb.WriteString(fmt.Sprintf(" (showing first %d agents)", limit))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	horizon := res.Parameters.MaxMinutes
	if horizon <= 0 {
		sb.WriteString("No capacity to display\n")
		return sb.String()
	}

	strips := make([][]rune, len(res.Agents))
	for i := range strips {
		strips[i] = []rune(strings.Repeat(".", g.bar))
	}
	for _, seg := range res.Timeline {
		if seg.AgentID >= len(strips) {
			continue
		}
		glyph := '▓'
		if seg.Sequence%2 == 1 {
			glyph = '░'
		}
		from := seg.Start * g.bar / horizon
		to := seg.End * g.bar / horizon
		for x := from; x < to && x < g.bar; x++ {
			strips[seg.AgentID][x] = glyph
		}
	}

	displayCount := len(strips)
	if limit > 0 && limit < displayCount {
		displayCount = limit
	}
	for i := 0; i < displayCount; i++ {
		sb.WriteString(fmt.Sprintf("A%02d |%s|\n", i, string(strips[i])))
	}

	// X-axis
	sb.WriteString("    +")
	sb.WriteString(strings.Repeat("-", g.bar))
	sb.WriteString("+\n")
	sb.WriteString(fmt.Sprintf("    0%s%s\n", strings.Repeat(" ", max(1, g.bar-len(FormatMinutes(horizon)))), FormatMinutes(horizon)))

	if limit > 0 && limit < len(strips) {
		sb.WriteString(fmt.Sprintf("\n... and %d more agents\n", len(strips)-limit))
	}
	sb.WriteString("\n")

	return sb.String()
}

// GenerateBacklog lists the work that could not be placed
func (g *Generator) GenerateBacklog(res simulation.Result) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Backlog\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	if res.Backlog.Count == 0 {
		sb.WriteString("No backlog!\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Unplaced Tasks: %d (%s)\n", res.Backlog.Count, FormatMinutes(res.Backlog.TotalMinutes)))

	// Group durations, longest first as the solver rejected them
	counts := make(map[int]int)
	order := []int{}
	for _, d := range res.Backlog.Tasks {
		if counts[d] == 0 {
			order = append(order, d)
		}
		counts[d]++
	}
	for _, d := range order {
		sb.WriteString(fmt.Sprintf("  - %3d min x %d\n", d, counts[d]))
	}
	if res.Backlog.Count > len(res.Backlog.Tasks) {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", res.Backlog.Count-len(res.Backlog.Tasks)))
	}
	sb.WriteString("\n")

	return sb.String()
}

// FormatMinutes formats a minute count in a human-readable way
func FormatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	if m%60 == 0 {
		return fmt.Sprintf("%dh", m/60)
	}
	return fmt.Sprintf("%dh%dm", m/60, m%60)
}

func pct(ratio float64) float64 {
	return float64(int(ratio*1000+0.5)) / 10
}
