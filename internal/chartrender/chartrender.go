// Package chartrender draws raw traces and their fitted decay curves to PNG
// charts, once with a linear value axis and once with a logarithmic one.
package chartrender

import (
	"fmt"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sweeplab/sweepfit/schema"
)

// Output file names, one per vertical scale.
const (
	LinearChartFile = "sweep_linear.png"
	LogChartFile    = "sweep_log.png"
)

// Curve is a dense evaluation of a fitted decay model over the phase domain.
type Curve struct {
	Phases []float64
	Values []float64
}

// TraceSeries bundles one trace with its legend label and optional fitted
// curve overlay. Curve is nil when the trace is unfit.
type TraceSeries struct {
	Label string
	Trace schema.Trace
	Curve *Curve
}

// Options holds chart sizing and output placement.
type Options struct {
	Dir    string
	Width  int
	Height int
}

// RenderSweepCharts writes the linear-scale and log-scale charts for the
// given traces and returns the paths written. Zero traces is a valid terminal
// state: nothing is written and no error is returned. On the log chart,
// non-positive raw values are dropped per series since they have no
// logarithm; traces left without any positive sample are omitted there.
func RenderSweepCharts(series []TraceSeries, opts Options) ([]string, error) {
	if len(series) == 0 {
		return nil, nil
	}

	var written []string
	for _, target := range []struct {
		file     string
		logScale bool
	}{
		{LinearChartFile, false},
		{LogChartFile, true},
	} {
		ch, ok := buildChart(series, opts, target.logScale)
		if !ok {
			continue // No drawable series on this scale
		}
		path := filepath.Join(opts.Dir, target.file)
		if err := renderPNG(ch, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

// buildChart assembles one chart with a raw dot+line series per trace and a
// dashed overlay per fitted curve. The legend carries only the trace labels;
// overlays stay unnamed so they do not double the legend entries.
func buildChart(series []TraceSeries, opts Options, logScale bool) (chart.Chart, bool) {
	var chartSeries []chart.Series

	for i, ts := range series {
		col := chart.GetDefaultColor(i)

		xs := ts.Trace.Phases()
		ys := ts.Trace.Values()
		if logScale {
			xs, ys = filterPositive(xs, ys)
			if len(xs) == 0 {
				continue
			}
		}
		// Pad to at least two X values for go-chart
		if len(xs) == 1 {
			xs = []float64{xs[0], xs[0] + 1e-6}
			ys = []float64{ys[0], ys[0]}
		}

		chartSeries = append(chartSeries, chart.ContinuousSeries{
			Name:    ts.Label,
			XValues: xs,
			YValues: ys,
			Style:   rawStyle(col),
		})

		if ts.Curve != nil {
			chartSeries = append(chartSeries, chart.ContinuousSeries{
				XValues: ts.Curve.Phases,
				YValues: ts.Curve.Values,
				Style:   overlayStyle(col),
			})
		}
	}

	if len(chartSeries) == 0 {
		return chart.Chart{}, false
	}

	title := "Traces vs Phase (Linear Y)"
	yAxis := chart.YAxis{Name: "Measured Value"}
	if logScale {
		title = "Traces vs Phase (Log Y)"
		yAxis = chart.YAxis{Name: "Measured Value (log scale)", Range: &chart.LogarithmicRange{}}
	}

	ch := chart.Chart{
		Title:      title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Name: "Phase"},
		YAxis:      yAxis,
		Series:     chartSeries,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch, true
}

// rawStyle renders measured samples as dots connected by a thin line.
func rawStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 1,
		StrokeColor: col,
		DotWidth:    3,
		DotColor:    col,
	}
}

// overlayStyle renders a fitted curve as a dashed line in the trace's color.
func overlayStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth:     1,
		StrokeColor:     col,
		StrokeDashArray: []float64{5, 5},
	}
}

// filterPositive keeps only the points whose value is strictly positive.
func filterPositive(xs, ys []float64) ([]float64, []float64) {
	fx := make([]float64, 0, len(xs))
	fy := make([]float64, 0, len(ys))
	for i := range ys {
		if ys[i] > 0 {
			fx = append(fx, xs[i])
			fy = append(fy, ys[i])
		}
	}
	return fx, fy
}

// renderPNG renders the chart to the given path.
func renderPNG(ch chart.Chart, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file %q: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := ch.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("failed to render chart %q: %w", path, err)
	}
	return nil
}
