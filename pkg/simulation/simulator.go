package simulation

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Photon1c/pulselinestudio/pkg/analysis"
	"github.com/Photon1c/pulselinestudio/pkg/scenario"
	"github.com/Photon1c/pulselinestudio/pkg/solver"
	"github.com/Photon1c/pulselinestudio/pkg/workload"
)

const (
	// MinBeltMultiplier is the lowest belt multiplier a run accepts
	MinBeltMultiplier = 0.2
	// MaxBacklogTasks bounds the backlog durations echoed in a Result
	MaxBacklogTasks = 100
)

// Params are the inputs of one simulation run
type Params struct {
	Agents         int
	Tasks          int
	MaxMinutes     int
	ScenarioKey    string
	BeltMultiplier float64
	// Seed makes the generated workload reproducible when set
	Seed *int64
}

// Simulator runs the workflow simulation.
//
// A Simulator holds no per-run state: every call to Simulate allocates its own
// workload, agents and random source, so one Simulator can serve concurrent
// callers. Unseeded runs draw their seed from a shared source under mu.
type Simulator struct {
	registry *scenario.Registry
	strategy solver.Strategy
	spacing  float64
	seed     *int64
	logger   *zap.Logger

	mu    sync.Mutex
	seeds *rand.Rand
}

// Option configures a Simulator
type Option func(*Simulator)

// WithStrategy selects the allocator
func WithStrategy(s solver.Strategy) Option {
	return func(sim *Simulator) {
		sim.strategy = s
	}
}

// WithSeed makes every run without its own seed use this one
func WithSeed(seed int64) Option {
	return func(sim *Simulator) {
		sim.seed = &seed
	}
}

// WithSpacing sets the office layout cell size
func WithSpacing(spacing float64) Option {
	return func(sim *Simulator) {
		sim.spacing = spacing
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(sim *Simulator) {
		if logger != nil {
			sim.logger = logger
		}
	}
}

// NewSimulator creates a new simulator
func NewSimulator(registry *scenario.Registry, opts ...Option) *Simulator {
	if registry == nil {
		registry = scenario.NewRegistry()
	}
	sim := &Simulator{
		registry: registry,
		strategy: solver.StrategyGreedy,
		spacing:  DefaultSpacing,
		logger:   zap.NewNop(),
		seeds:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(sim)
	}
	return sim
}

// Registry returns the scenario registry the simulator resolves keys against
func (s *Simulator) Registry() *scenario.Registry {
	return s.registry
}

// Simulate runs one scenario end to end. It never fails: unknown scenarios
// fall back to the default profile and degenerate inputs produce zeroed output.
// Counts are expected to be non-negative.
func (s *Simulator) Simulate(p Params) Result {
	profile, known := s.registry.Lookup(p.ScenarioKey)
	if !known {
		profile = s.registry.Default()
		s.logger.Debug("unknown scenario, using default",
			zap.String("requested", p.ScenarioKey),
			zap.String("scenario", profile.Key))
	}

	belt := ClampBeltMultiplier(p.BeltMultiplier)
	adjusted := AdjustedTaskCount(p.Tasks, profile.TaskMultiplier, belt)

	seed := p.Seed
	if seed == nil {
		seed = s.seed
	}
	tasks := s.generator(seed).Generate(adjusted, profile.MinDuration, profile.MaxDuration)

	assignment := s.strategy.Assign(tasks, p.Agents, p.MaxMinutes)
	stats := analysis.Analyze(assignment.AgentTotals, p.MaxMinutes)

	backlogMinutes := sum(assignment.Backlog)
	processed := sum(assignment.AgentTotals)

	result := Result{
		RunID: uuid.NewString(),
		Parameters: Parameters{
			RequestedAgents: p.Agents,
			RequestedTasks:  p.Tasks,
			MaxMinutes:      p.MaxMinutes,
			ScenarioKey:     profile.Key,
			BeltMultiplier:  belt,
			AdjustedTasks:   adjusted,
			Seed:            seed,
		},
		Scenario:     profile,
		Feasible:     assignment.Feasible,
		Agents:       agentPayloads(assignment, stats),
		AgentTimes:   assignment.AgentTotals,
		Timeline:     BuildTimeline(assignment.Agents),
		Stats:        stats,
		OfficeLayout: BuildLayout(len(assignment.Agents), s.spacing),
		Backlog: Backlog{
			Count:        len(assignment.Backlog),
			TotalMinutes: backlogMinutes,
			Tasks:        assignment.Backlog[:min(len(assignment.Backlog), MaxBacklogTasks)],
		},
		Metrics: Metrics{
			ProcessedMinutes: processed,
			ThroughputRatio:  ThroughputRatio(processed, backlogMinutes),
			ArrivalRate:      ArrivalRate(adjusted, p.MaxMinutes),
			BeltSpeed:        profile.BeltSpeed * belt,
			BeltMultiplier:   belt,
			QueueBias:        profile.QueueBias,
		},
	}

	s.logger.Debug("simulation complete",
		zap.String("run_id", result.RunID),
		zap.String("scenario", profile.Key),
		zap.Int("tasks", adjusted),
		zap.Int("agents", p.Agents),
		zap.Int("backlog", result.Backlog.Count),
		zap.Bool("feasible", result.Feasible))

	return result
}

func (s *Simulator) generator(seed *int64) *workload.Generator {
	if seed != nil {
		return workload.NewSeededGenerator(*seed)
	}
	return workload.NewSeededGenerator(s.nextSeed())
}

func (s *Simulator) nextSeed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seeds.Int63()
}

func agentPayloads(a solver.Assignment, stats analysis.Stats) []AgentPayload {
	agents := make([]AgentPayload, 0, len(a.Agents))
	for i, tasks := range a.Agents {
		util := 0.0
		if i < len(stats.UtilizationByAgent) {
			util = stats.UtilizationByAgent[i]
		}
		agents = append(agents, AgentPayload{
			ID:          i,
			Tasks:       tasks,
			TotalTime:   a.AgentTotals[i],
			Utilization: util,
		})
	}
	return agents
}

// ClampBeltMultiplier treats zero and non-finite values as missing (1.0) and
// raises anything below MinBeltMultiplier to it.
func ClampBeltMultiplier(v float64) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		v = 1.0
	}
	return math.Max(MinBeltMultiplier, v)
}

// ParseBeltMultiplier converts a loosely typed input into a clamped multiplier.
// Numbers are used as is, numeric strings are parsed, anything else is 1.0.
func ParseBeltMultiplier(v any) float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err == nil {
			f = parsed
		}
	}
	return ClampBeltMultiplier(f)
}

// AdjustedTaskCount scales the requested task count by the scenario and belt
// multipliers, truncating toward zero and never returning less than one.
func AdjustedTaskCount(tasks int, taskMultiplier, belt float64) int {
	return max(1, int(float64(tasks)*taskMultiplier*belt))
}

// ThroughputRatio is the share of generated work that was placed, rounded to
// 3 decimals. It is 0 when nothing was processed.
func ThroughputRatio(processed, backlogMinutes int) float64 {
	if processed == 0 {
		return 0
	}
	return analysis.Round(float64(processed)/float64(processed+backlogMinutes), 3)
}

// ArrivalRate is tasks per capacity minute, rounded to 3 decimals.
// With zero capacity it falls back to the task count itself.
func ArrivalRate(tasks, capacity int) float64 {
	if capacity == 0 {
		return float64(tasks)
	}
	return analysis.Round(float64(tasks)/float64(capacity), 3)
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
