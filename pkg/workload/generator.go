package workload

import (
	"math/rand"
	"time"
)

// Generator produces synthetic task durations
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator drawing from src.
// A nil src is seeded from the clock; pass a fixed source for reproducible workloads.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Generator{rng: rand.New(src)}
}

// NewSeededGenerator creates a generator with a deterministic seed
func NewSeededGenerator(seed int64) *Generator {
	return NewGenerator(rand.NewSource(seed))
}

// Generate draws count durations uniformly from [minDuration, maxDuration].
// A count of zero or less yields an empty workload.
func (g *Generator) Generate(count, minDuration, maxDuration int) []int {
	if count <= 0 {
		return []int{}
	}
	if minDuration > maxDuration {
		minDuration, maxDuration = maxDuration, minDuration
	}

	span := maxDuration - minDuration + 1
	tasks := make([]int, count)
	for i := range tasks {
		tasks[i] = minDuration + g.rng.Intn(span)
	}
	return tasks
}
