// Package visualization builds chart specifications from query results.
// Specs follow the plotly figure layout (traces + layout maps) and are
// JSON-serializable; rendering happens outside this package.
package visualization

import (
	"encoding/json"
	"strings"

	"github.com/dmql/dmql-go/mining"
)

// ChartResult is one generated chart specification.
type ChartResult struct {
	Type   string           `json:"chart_type"`
	Traces []map[string]any `json:"data"`
	Layout map[string]any   `json:"layout"`
}

// JSON renders the chart spec for transport.
func (c *ChartResult) JSON() (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Options select the columns and title a chart is built from. Zero values
// mean "pick a sensible default from the table".
type Options struct {
	X     string
	Y     string
	Color string
	Title string
}

// GenerateChart builds a chart of the requested type. Unrecognized types
// fall back to a table spec, mirroring how unknown DISPLAY AS hints behave.
func GenerateChart(t *mining.Table, chartType string, opts Options) *ChartResult {
	normalized := strings.ReplaceAll(strings.ToLower(chartType), "-", "_")
	switch normalized {
	case "bar_chart", "bar":
		return barChart(t, opts)
	case "scatter_plot", "scatter":
		return scatterPlot(t, opts)
	case "line_chart", "line":
		return lineChart(t, opts)
	case "histogram":
		return histogram(t, opts)
	case "heatmap":
		return heatmap(t, opts)
	case "pie_chart", "pie":
		return pieChart(t, opts)
	default:
		return tableChart(t, opts)
	}
}

// AutoVisualize picks a chart from the table's shape: cluster and anomaly
// overlays first, then a table for small results, a correlation heatmap for
// all-numeric data, and a bar chart for categorical/numeric mixes.
func AutoVisualize(t *mining.Table, title string) *ChartResult {
	numeric, _ := t.NumericColumns()
	categorical := t.CategoricalColumns()
	opts := Options{Title: title}

	if hasColumn(t, "cluster") && len(numeric) >= 2 {
		opts.X, opts.Y, opts.Color = firstOther(numeric, "cluster"), secondOther(numeric, "cluster"), "cluster"
		return scatterPlot(t, opts)
	}
	if hasColumn(t, "is_anomaly") && len(numeric) >= 2 {
		opts.X, opts.Y, opts.Color = firstOther(numeric, "anomaly_score"), secondOther(numeric, "anomaly_score"), "is_anomaly"
		return scatterPlot(t, opts)
	}
	if t.RowCount() <= 20 {
		return tableChart(t, opts)
	}
	if len(numeric) >= 2 && len(categorical) == 0 {
		if len(numeric) <= 10 {
			return heatmap(t, opts)
		}
		opts.X, opts.Y = numeric[0], numeric[1]
		return scatterPlot(t, opts)
	}
	if len(numeric) >= 1 && len(categorical) >= 1 {
		opts.X, opts.Y = categorical[0], numeric[0]
		return barChart(t, opts)
	}
	return tableChart(t, opts)
}

func barChart(t *mining.Table, opts Options) *ChartResult {
	x, y := pickAxes(t, opts)
	trace := map[string]any{
		"type": "bar",
		"x":    t.Column(x),
		"y":    t.Column(y),
	}
	return newChart("bar_chart", []map[string]any{trace}, axisLayout(opts, x, y))
}

func scatterPlot(t *mining.Table, opts Options) *ChartResult {
	x, y := pickAxes(t, opts)
	trace := map[string]any{
		"type": "scatter",
		"mode": "markers",
		"x":    t.Column(x),
		"y":    t.Column(y),
	}
	if opts.Color != "" {
		trace["marker"] = map[string]any{"color": t.Column(opts.Color)}
	}
	return newChart("scatter_plot", []map[string]any{trace}, axisLayout(opts, x, y))
}

func lineChart(t *mining.Table, opts Options) *ChartResult {
	x, y := pickAxes(t, opts)
	trace := map[string]any{
		"type": "scatter",
		"mode": "lines",
		"x":    t.Column(x),
		"y":    t.Column(y),
	}
	return newChart("line_chart", []map[string]any{trace}, axisLayout(opts, x, y))
}

func histogram(t *mining.Table, opts Options) *ChartResult {
	x := opts.X
	if x == "" {
		if numeric, _ := t.NumericColumns(); len(numeric) > 0 {
			x = numeric[0]
		} else if len(t.Columns) > 0 {
			x = t.Columns[0]
		}
	}
	trace := map[string]any{
		"type": "histogram",
		"x":    t.Column(x),
	}
	return newChart("histogram", []map[string]any{trace}, axisLayout(opts, x, "count"))
}

// heatmap renders the correlation matrix of the numeric columns.
func heatmap(t *mining.Table, opts Options) *ChartResult {
	stats := mining.BasicStatistics(t, nil)
	names := stats.NumericColumns
	z := make([][]float64, len(names))
	for i, a := range names {
		z[i] = make([]float64, len(names))
		for j, b := range names {
			if stats.Correlations != nil {
				z[i][j] = stats.Correlations[a][b]
			} else if i == j {
				z[i][j] = 1
			}
		}
	}
	trace := map[string]any{
		"type": "heatmap",
		"x":    names,
		"y":    names,
		"z":    z,
	}
	return newChart("heatmap", []map[string]any{trace}, titleLayout(opts))
}

func pieChart(t *mining.Table, opts Options) *ChartResult {
	labels := opts.X
	values := opts.Y
	if labels == "" || values == "" {
		numeric, _ := t.NumericColumns()
		categorical := t.CategoricalColumns()
		if labels == "" && len(categorical) > 0 {
			labels = categorical[0]
		}
		if values == "" && len(numeric) > 0 {
			values = numeric[0]
		}
	}
	trace := map[string]any{
		"type":   "pie",
		"labels": t.Column(labels),
		"values": t.Column(values),
	}
	return newChart("pie_chart", []map[string]any{trace}, titleLayout(opts))
}

func tableChart(t *mining.Table, opts Options) *ChartResult {
	cells := make([][]any, len(t.Columns))
	for i, name := range t.Columns {
		cells[i] = t.Column(name)
	}
	trace := map[string]any{
		"type":   "table",
		"header": map[string]any{"values": t.Columns},
		"cells":  map[string]any{"values": cells},
	}
	return newChart("table", []map[string]any{trace}, titleLayout(opts))
}

func newChart(chartType string, traces []map[string]any, layout map[string]any) *ChartResult {
	return &ChartResult{Type: chartType, Traces: traces, Layout: layout}
}

// pickAxes falls back to the first two numeric columns, then the first two
// columns of the table.
func pickAxes(t *mining.Table, opts Options) (string, string) {
	x, y := opts.X, opts.Y
	if x != "" && y != "" {
		return x, y
	}
	numeric, _ := t.NumericColumns()
	candidates := numeric
	if len(candidates) < 2 {
		candidates = t.Columns
	}
	if x == "" && len(candidates) > 0 {
		x = candidates[0]
	}
	if y == "" {
		for _, name := range candidates {
			if name != x {
				y = name
				break
			}
		}
	}
	return x, y
}

func axisLayout(opts Options, x, y string) map[string]any {
	layout := titleLayout(opts)
	layout["xaxis"] = map[string]any{"title": x}
	layout["yaxis"] = map[string]any{"title": y}
	return layout
}

func titleLayout(opts Options) map[string]any {
	layout := map[string]any{}
	if opts.Title != "" {
		layout["title"] = opts.Title
	}
	return layout
}

func hasColumn(t *mining.Table, name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// firstOther and secondOther pick numeric axes while skipping derived
// columns like the cluster assignment.
func firstOther(names []string, skip string) string {
	for _, name := range names {
		if name != skip && name != "cluster" && name != "anomaly_score" {
			return name
		}
	}
	if len(names) > 0 {
		return names[0]
	}
	return ""
}

func secondOther(names []string, skip string) string {
	first := firstOther(names, skip)
	for _, name := range names {
		if name != skip && name != first && name != "cluster" && name != "anomaly_score" {
			return name
		}
	}
	return first
}
