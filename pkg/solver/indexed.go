package solver

import (
	"cmp"

	"github.com/addrummond/heap"
)

// slot orders agents for the heap: most remaining capacity first, then lowest index
type slot struct {
	index     int
	remaining int
}

func (a *slot) Cmp(b *slot) int {
	if c := cmp.Compare(b.remaining, a.remaining); c != 0 {
		return c
	}
	return cmp.Compare(a.index, b.index)
}

// AssignIndexed produces the same Assignment as Assign in O(tasks·log agents).
//
// The heap top is the agent Assign would pick whenever any agent fits the task:
// it has the maximum remaining capacity and the lowest index among ties. If the
// top cannot fit the task, no agent can.
func AssignIndexed(tasks []int, agentCount, capacity int) Assignment {
	result := newAssignment(agentCount)

	var agents heap.Heap[slot, heap.Min]
	for i := range result.Agents {
		heap.PushOrderable(&agents, slot{index: i, remaining: capacity})
	}

	for _, task := range longestFirst(tasks) {
		top, ok := heap.Peek(&agents)
		if !ok || task > top.remaining {
			result.Backlog = append(result.Backlog, task)
			continue
		}

		top, _ = heap.PopOrderable(&agents)
		result.place(top.index, task)
		top.remaining -= task
		heap.PushOrderable(&agents, top)
	}

	result.Feasible = len(result.Backlog) == 0
	return result
}
