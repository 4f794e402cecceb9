package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"psephos/internal"
)

// RenderSystemCounts draws a horizontal bar chart of voting-system
// frequency and writes it to outputPath as a PNG, overwriting any
// existing file. Counts must already be sorted descending; the largest
// bar is drawn at the top. Y tick labels are suppressed and the system
// names are drawn next to the bars instead.
func RenderSystemCounts(counts []internal.SystemCount, countryCount int, title, caption, outputPath string) error {
	if len(counts) == 0 {
		return fmt.Errorf("no voting-system counts to chart")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s\nVoting systems across %d countries and territories", title, countryCount)
	p.Title.Padding = vg.Points(6)
	p.X.Label.Text = caption
	p.Y.Tick.Marker = plot.ConstantTicks(nil)
	p.Y.Tick.Length = 0

	// Bar index 0 renders at the bottom, so feed the values reversed
	// to keep the most frequent system on top.
	n := len(counts)
	values := make(plotter.Values, n)
	for i, c := range counts {
		values[n-1-i] = float64(c.Count)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return err
	}
	bars.Horizontal = true
	bars.Color = color.RGBA{R: 0x35, G: 0x60, B: 0x8d, A: 0xff}
	bars.LineStyle.Width = 0
	p.Add(bars)

	labels, err := plotter.NewLabels(systemLabels(counts))
	if err != nil {
		return err
	}
	p.Add(labels)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return p.Save(7*vg.Inch, 5*vg.Inch, outputPath)
}

func systemLabels(counts []internal.SystemCount) plotter.XYLabels {
	n := len(counts)
	out := plotter.XYLabels{
		XYs:    make(plotter.XYs, n),
		Labels: make([]string, n),
	}
	for i, c := range counts {
		pos := n - 1 - i
		out.XYs[pos] = plotter.XY{X: float64(c.Count), Y: float64(pos)}
		out.Labels[pos] = fmt.Sprintf(" %s (%d)", c.VotingSystem, c.Count)
	}
	return out
}
