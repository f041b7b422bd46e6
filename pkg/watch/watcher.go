package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gammazero/deque"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Photon1c/pulselinestudio/pkg/analysis"
	"github.com/Photon1c/pulselinestudio/pkg/config"
	"github.com/Photon1c/pulselinestudio/pkg/simulation"
	"github.com/Photon1c/pulselinestudio/pkg/tracing"
)

// ErrInvalidSchedule is returned by New for a schedule the cron parser rejects
var ErrInvalidSchedule = errors.New("invalid watch schedule")

// Sample is the part of a run kept for the rolling trend
type Sample struct {
	RunID              string
	Feasible           bool
	AverageUtilization float64
	ThroughputRatio    float64
	BacklogCount       int
}

// Trend aggregates the samples currently in the window
type Trend struct {
	Runs               int
	FeasibleRuns       int
	AverageUtilization float64
	AverageThroughput  float64
	AverageBacklog     float64
}

// Watcher re-runs one parameter set on a cron schedule and reports a rolling
// trend over the most recent runs.
type Watcher struct {
	sim      *simulation.Simulator
	params   simulation.Params
	schedule cron.Schedule
	expr     string
	window   int
	out      io.Writer
	logger   *zap.Logger

	mu      sync.Mutex
	samples deque.Deque[Sample]
}

// New validates the schedule and returns a stopped watcher
func New(sim *simulation.Simulator, params simulation.Params, expr string, window int, out io.Writer, logger *zap.Logger) (*Watcher, error) {
	schedule, err := config.ScheduleParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidSchedule, expr, err)
	}
	if window < 1 {
		window = 1
	}
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		sim:      sim,
		params:   params,
		schedule: schedule,
		expr:     expr,
		window:   window,
		out:      out,
		logger:   logger,
	}, nil
}

// Tick runs one simulation, records it and prints the trend line
func (w *Watcher) Tick(ctx context.Context) simulation.Result {
	res := tracing.Simulate(ctx, w.sim, w.params)

	w.mu.Lock()
	w.samples.PushBack(Sample{
		RunID:              res.RunID,
		Feasible:           res.Feasible,
		AverageUtilization: res.Stats.AverageUtilization,
		ThroughputRatio:    res.Metrics.ThroughputRatio,
		BacklogCount:       res.Backlog.Count,
	})
	for w.samples.Len() > w.window {
		w.samples.PopFront()
	}
	trend := w.trendLocked()
	w.mu.Unlock()

	fmt.Fprintf(w.out, "%s [%s] util=%.1f%% throughput=%.1f%% backlog=%d | last %d: feasible %d/%d, util %.1f%%, backlog %.1f\n",
		res.RunID[:8], res.Status(),
		res.Stats.AverageUtilization*100, res.Metrics.ThroughputRatio*100, res.Backlog.Count,
		trend.Runs, trend.FeasibleRuns, trend.Runs, trend.AverageUtilization*100, trend.AverageBacklog)

	w.logger.Debug("watch tick",
		zap.String("run_id", res.RunID),
		zap.Int("window_runs", trend.Runs))
	return res
}

// Trend returns the aggregate of the samples in the window
func (w *Watcher) Trend() Trend {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.trendLocked()
}

// Samples returns the window contents, oldest first
func (w *Watcher) Samples() []Sample {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Sample, w.samples.Len())
	for i := range out {
		out[i] = w.samples.At(i)
	}
	return out
}

func (w *Watcher) trendLocked() Trend {
	n := w.samples.Len()
	t := Trend{Runs: n}
	if n == 0 {
		return t
	}
	var util, throughput, backlog float64
	for i := 0; i < n; i++ {
		s := w.samples.At(i)
		if s.Feasible {
			t.FeasibleRuns++
		}
		util += s.AverageUtilization
		throughput += s.ThroughputRatio
		backlog += float64(s.BacklogCount)
	}
	t.AverageUtilization = analysis.Round(util/float64(n), 4)
	t.AverageThroughput = analysis.Round(throughput/float64(n), 3)
	t.AverageBacklog = analysis.Round(backlog/float64(n), 1)
	return t
}

// Run ticks once immediately and then on every schedule activation until ctx
// is cancelled. It waits for a running tick to finish before returning.
func (w *Watcher) Run(ctx context.Context) error {
	w.Tick(ctx)

	c := cron.New(cron.WithParser(config.ScheduleParser))
	c.Schedule(w.schedule, cron.FuncJob(func() {
		w.Tick(ctx)
	}))
	c.Start()
	w.logger.Info("watching", zap.String("schedule", w.expr), zap.Int("window", w.window))

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
