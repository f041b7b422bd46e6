package workload

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGenerateEmpty(t *testing.T) {
	chk := require.New(t)
	g := NewSeededGenerator(1)

	tasks := g.Generate(0, 1, 8)
	chk.NotNil(tasks)
	chk.Empty(tasks)
	chk.Empty(g.Generate(-3, 1, 8))
}

func TestGenerateSeededIsReproducible(t *testing.T) {
	chk := require.New(t)

	a := NewSeededGenerator(42).Generate(50, 2, 8)
	b := NewSeededGenerator(42).Generate(50, 2, 8)
	chk.Equal(a, b)
}

func TestGenerateSingleValueRange(t *testing.T) {
	chk := require.New(t)

	tasks := NewSeededGenerator(7).Generate(10, 5, 5)
	for _, d := range tasks {
		chk.Equal(5, d)
	}
}

func TestGenerateStaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, 200).Draw(t, "count")
		lo := rapid.IntRange(1, 20).Draw(t, "min")
		hi := rapid.IntRange(lo, 40).Draw(t, "max")
		seed := rapid.Int64().Draw(t, "seed")

		tasks := NewSeededGenerator(seed).Generate(count, lo, hi)
		if len(tasks) != count {
			t.Fatalf("len=%d want=%d", len(tasks), count)
		}
		for i, d := range tasks {
			if d < lo || d > hi {
				t.Fatalf("task %d duration %d outside [%d,%d]", i, d, lo, hi)
			}
		}
	})
}
