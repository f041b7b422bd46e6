package simulation

// BuildTimeline lays each agent's tasks end to end starting at zero.
// Segments are grouped by agent in index order; they are not merged chronologically.
func BuildTimeline(agents [][]int) []Segment {
	count := 0
	for _, tasks := range agents {
		count += len(tasks)
	}

	timeline := make([]Segment, 0, count)
	for agentID, tasks := range agents {
		cursor := 0
		for seq, duration := range tasks {
			timeline = append(timeline, Segment{
				AgentID:  agentID,
				Sequence: seq,
				Start:    cursor,
				Duration: duration,
				End:      cursor + duration,
			})
			cursor += duration
		}
	}
	return timeline
}
