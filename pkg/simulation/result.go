package simulation

import (
	"github.com/Photon1c/pulselinestudio/pkg/analysis"
	"github.com/Photon1c/pulselinestudio/pkg/scenario"
)

// Parameters echoes the inputs of a run after normalisation
type Parameters struct {
	RequestedAgents int    `json:"requested_agents"`
	RequestedTasks  int    `json:"requested_tasks"`
	MaxMinutes      int    `json:"max_minutes"`
	ScenarioKey     string `json:"scenario_key"`
	// BeltMultiplier is the clamped value actually applied
	BeltMultiplier float64 `json:"belt_multiplier"`
	AdjustedTasks  int     `json:"adjusted_tasks"`
	Seed           *int64  `json:"seed,omitempty"`
}

// AgentPayload describes one agent's share of the work
type AgentPayload struct {
	ID          int     `json:"id"`
	Tasks       []int   `json:"tasks"`
	TotalTime   int     `json:"total_time"`
	Utilization float64 `json:"utilization"`
}

// Segment is one task executed by one agent, in assignment order
type Segment struct {
	AgentID  int `json:"agent_id"`
	Sequence int `json:"sequence"`
	Start    int `json:"start"`
	Duration int `json:"duration"`
	End      int `json:"end"`
}

// Position places an agent on the office floor
type Position struct {
	AgentID int     `json:"agent_id"`
	X       float64 `json:"x"`
	Z       float64 `json:"z"`
}

// Grid is the spatial arrangement of agents
type Grid struct {
	Rows      int        `json:"rows"`
	Cols      int        `json:"cols"`
	CellSize  float64    `json:"cell_size"`
	Positions []Position `json:"positions"`
}

// Backlog summarises the work that could not be placed
type Backlog struct {
	Count        int `json:"count"`
	TotalMinutes int `json:"total_minutes"`
	// Tasks holds at most MaxBacklogTasks durations to bound payload size
	Tasks []int `json:"tasks"`
}

// Metrics are the flow figures derived from a run
type Metrics struct {
	ProcessedMinutes int     `json:"processed_minutes"`
	ThroughputRatio  float64 `json:"throughput_ratio"`
	ArrivalRate      float64 `json:"arrival_rate"`
	BeltSpeed        float64 `json:"belt_speed"`
	BeltMultiplier   float64 `json:"belt_multiplier"`
	QueueBias        float64 `json:"queue_bias"`
}

// Result is the complete output of one simulation run
type Result struct {
	RunID        string           `json:"run_id"`
	Parameters   Parameters       `json:"parameters"`
	Scenario     scenario.Profile `json:"scenario"`
	Feasible     bool             `json:"feasible"`
	Agents       []AgentPayload   `json:"agents"`
	AgentTimes   []int            `json:"agent_times"`
	Timeline     []Segment        `json:"timeline"`
	Stats        analysis.Stats   `json:"stats"`
	OfficeLayout Grid             `json:"office_layout"`
	Backlog      Backlog          `json:"backlog"`
	Metrics      Metrics          `json:"metrics"`
}

// Status returns FLOW when every task was placed and OVERFLOW otherwise
func (r Result) Status() string {
	if r.Feasible {
		return "FLOW"
	}
	return "OVERFLOW"
}
