package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Photon1c/pulselinestudio/pkg/simulation"
)

// SavePlot writes a bar chart of per-agent utilization to path.
// The image format follows the file extension (png, svg, pdf, ...).
func SavePlot(res simulation.Result, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: %s", res.Scenario.Label, res.Status())
	p.X.Label.Text = "Agent"
	p.Y.Label.Text = "Utilization"
	p.Y.Min = 0
	p.Y.Max = 1.05

	values := make(plotter.Values, len(res.Agents))
	names := make([]string, len(res.Agents))
	for i, agent := range res.Agents {
		values[i] = agent.Utilization
		names[i] = fmt.Sprintf("A%02d", agent.ID)
	}

	if len(values) > 0 {
		bars, err := plotter.NewBarChart(values, vg.Points(18))
		if err != nil {
			return fmt.Errorf("failed to build bar chart: %w", err)
		}
		bars.Color = parseHexColor(res.Scenario.Color)
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
		p.NominalX(names...)
	}

	limit := plotter.NewFunction(func(float64) float64 { return 1 })
	limit.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(limit, plotter.NewGrid())

	width := vg.Length(max(4, len(values))) * vg.Centimeter * 1.2
	if err := p.Save(width, 8*vg.Centimeter, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

// parseHexColor reads "#rrggbb", falling back to grey
func parseHexColor(s string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.Gray{Y: 128}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
