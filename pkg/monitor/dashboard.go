package monitor

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Photon1c/pulselinestudio/pkg/chart"
	"github.com/Photon1c/pulselinestudio/pkg/config"
	"github.com/Photon1c/pulselinestudio/pkg/simulation"
	"github.com/Photon1c/pulselinestudio/pkg/tracing"
)

const (
	beltStep = 0.25
	beltMax  = 4.0
)

// Dashboard is a terminal view of the latest run. Every widget update happens
// on the tview event loop.
type Dashboard struct {
	sim      *simulation.Simulator
	params   simulation.Params
	schedule string
	logger   *zap.Logger
	charts   *chart.Generator
	last     simulation.Result

	app     *tview.Application
	agents  *tview.Table
	summary *tview.TextView
	backlog *tview.TextView
	status  *tview.TextView
	root    tview.Primitive
}

// New builds the widgets. An empty schedule disables auto refresh.
func New(sim *simulation.Simulator, params simulation.Params, schedule string, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dashboard{
		sim:      sim,
		params:   params,
		schedule: schedule,
		logger:   logger,
		charts:   chart.NewGenerator(),
		app:      tview.NewApplication(),
	}

	d.agents = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false)
	d.agents.SetTitle("Agents").SetBorder(true)

	d.summary = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	d.summary.SetTitle("Summary").SetBorder(true)

	d.backlog = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	d.backlog.SetTitle("Backlog").SetBorder(true)

	d.status = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	d.status.SetBorder(true).SetTitle("Keys")
	d.status.SetText("r rerun | s next scenario | +/- belt | q or F10 quit")

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(d.summary, 6, 0, false).
		AddItem(d.backlog, 0, 1, false)

	body := tview.NewFlex().
		AddItem(d.agents, 0, 2, true).
		AddItem(right, 0, 1, false)

	d.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(d.status, 3, 0, false)

	d.app.SetInputCapture(d.handleKey)
	return d
}

// Params returns the parameters of the next run
func (d *Dashboard) Params() simulation.Params {
	return d.params
}

// Last returns the most recently rendered run
func (d *Dashboard) Last() simulation.Result {
	return d.last
}

// Run blocks until the user quits or ctx is cancelled
func (d *Dashboard) Run(ctx context.Context) error {
	d.rerun()

	if d.schedule != "" {
		c := cron.New(cron.WithParser(config.ScheduleParser))
		if _, err := c.AddFunc(d.schedule, func() {
			d.app.QueueUpdateDraw(d.rerun)
		}); err != nil {
			return fmt.Errorf("invalid refresh schedule %q: %w", d.schedule, err)
		}
		c.Start()
		defer func() { <-c.Stop().Done() }()
	}

	go func() {
		<-ctx.Done()
		d.app.Stop()
	}()

	if err := d.app.SetRoot(d.root, true).EnableMouse(true).SetFocus(d.agents).Run(); err != nil {
		return fmt.Errorf("monitor failed: %w", err)
	}
	return nil
}

func (d *Dashboard) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyF10 {
		d.app.Stop()
		return nil
	}
	if event.Key() != tcell.KeyRune {
		return event
	}
	switch event.Rune() {
	case 'q':
		d.app.Stop()
	case 'r':
		d.rerun()
	case 's':
		d.params.ScenarioKey = d.sim.Registry().Next(d.params.ScenarioKey)
		d.rerun()
	case '+':
		d.params.BeltMultiplier = min(beltMax, simulation.ClampBeltMultiplier(d.params.BeltMultiplier)+beltStep)
		d.rerun()
	case '-':
		d.params.BeltMultiplier = max(simulation.MinBeltMultiplier, simulation.ClampBeltMultiplier(d.params.BeltMultiplier)-beltStep)
		d.rerun()
	default:
		return event
	}
	return nil
}

func (d *Dashboard) rerun() {
	res := tracing.Simulate(context.Background(), d.sim, d.params)
	d.logger.Debug("dashboard refresh", zap.String("run_id", res.RunID))
	d.render(res)
}

func (d *Dashboard) render(res simulation.Result) {
	d.last = res
	d.params.ScenarioKey = res.Scenario.Key
	d.params.BeltMultiplier = res.Parameters.BeltMultiplier

	d.agents.Clear()
	headers := []string{"Agent", "Tasks", "Time", "Utilization", "Load"}
	for i, h := range headers {
		d.agents.SetCell(0, i, tview.NewTableCell(h).SetSelectable(false).SetAttributes(tcell.AttrBold))
	}
	for i, agent := range res.Agents {
		row := i + 1
		filled := max(0, min(10, int(agent.Utilization*10)))
		d.agents.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("A%02d", agent.ID)))
		d.agents.SetCell(row, 1, tview.NewTableCell(fmt.Sprintf("%d", len(agent.Tasks))).SetAlign(tview.AlignRight))
		d.agents.SetCell(row, 2, tview.NewTableCell(chart.FormatMinutes(agent.TotalTime)).SetAlign(tview.AlignRight))
		d.agents.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("%.1f%%", agent.Utilization*100)).SetAlign(tview.AlignRight))
		d.agents.SetCell(row, 4, tview.NewTableCell(strings.Repeat("█", filled)+strings.Repeat("·", 10-filled)).
			SetTextColor(tcell.GetColor(res.Scenario.Color)))
	}

	color := "green"
	if !res.Feasible {
		color = "red"
	}
	d.summary.SetText(fmt.Sprintf("[%s]%s[-]\n%s",
		color, tview.Escape(res.Scenario.Description), tview.Escape(d.charts.GenerateSummary(res))))
	d.backlog.SetText(tview.Escape(strings.TrimSpace(d.charts.GenerateBacklog(res))))
}
