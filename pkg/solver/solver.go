package solver

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownStrategy is returned by ParseStrategy for unrecognised names
var ErrUnknownStrategy = errors.New("unknown solver strategy")

// Strategy selects the allocator implementation
type Strategy string

const (
	// StrategyGreedy scans every agent for each task
	StrategyGreedy Strategy = "greedy"
	// StrategyIndexed keeps agents in a heap keyed by remaining capacity
	StrategyIndexed Strategy = "indexed"
)

// ParseStrategy converts a configuration value into a Strategy.
// An empty name selects StrategyGreedy.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "", StrategyGreedy:
		return StrategyGreedy, nil
	case StrategyIndexed:
		return StrategyIndexed, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Assign runs the allocator selected by s
func (s Strategy) Assign(tasks []int, agentCount, capacity int) Assignment {
	if s == StrategyIndexed {
		return AssignIndexed(tasks, agentCount, capacity)
	}
	return Assign(tasks, agentCount, capacity)
}

// Assignment is the outcome of distributing tasks across agents
type Assignment struct {
	// Agents holds one task list per agent, in assignment order
	Agents [][]int
	// AgentTotals is parallel to Agents
	AgentTotals []int
	Feasible    bool
	// Backlog holds the tasks no agent could take, in the descending-duration
	// order they were processed, not the order they were generated in.
	Backlog []int
}

func newAssignment(agentCount int) Assignment {
	if agentCount < 0 {
		agentCount = 0
	}
	a := Assignment{
		Agents:      make([][]int, agentCount),
		AgentTotals: make([]int, agentCount),
		Backlog:     []int{},
	}
	for i := range a.Agents {
		a.Agents[i] = []int{}
	}
	return a
}

func (a *Assignment) place(agent, task int) {
	a.Agents[agent] = append(a.Agents[agent], task)
	a.AgentTotals[agent] += task
}

// longestFirst returns a copy of tasks sorted by descending duration
func longestFirst(tasks []int) []int {
	work := slices.Clone(tasks)
	slices.SortStableFunc(work, func(a, b int) int {
		return cmp.Compare(b, a)
	})
	return work
}

// Assign places tasks longest-first, each on the agent with the most remaining
// capacity that can still fit it. Among agents with equal remaining capacity
// the lowest index wins. Tasks that fit nowhere go to the backlog.
//
// Assign never fails: zero agents or a non-positive capacity push every task
// into the backlog.
func Assign(tasks []int, agentCount, capacity int) Assignment {
	result := newAssignment(agentCount)

	for _, task := range longestFirst(tasks) {
		best := -1
		bestRemaining := 0
		for i, total := range result.AgentTotals {
			remaining := capacity - total
			// strict > keeps the first agent seen among equals
			if task <= remaining && (best < 0 || remaining > bestRemaining) {
				best = i
				bestRemaining = remaining
			}
		}

		if best < 0 {
			result.Backlog = append(result.Backlog, task)
			continue
		}
		result.place(best, task)
	}

	result.Feasible = len(result.Backlog) == 0
	return result
}
