package visualization

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmql/dmql-go/mining"
)

func numericTable(rows int) *mining.Table {
	data := make([][]any, rows)
	for i := range data {
		data[i] = []any{float64(i), float64(i * 2)}
	}
	return mining.NewTable([]string{"x", "y"}, data)
}

func TestGenerateChart_Types(t *testing.T) {
	table := numericTable(5)

	tests := []struct {
		name      string
		chartType string
		want      string
		traceType string
	}{
		{name: "scatter", chartType: "scatter_plot", want: "scatter_plot", traceType: "scatter"},
		{name: "scatter alias", chartType: "scatter", want: "scatter_plot", traceType: "scatter"},
		{name: "hyphenated alias", chartType: "Scatter-Plot", want: "scatter_plot", traceType: "scatter"},
		{name: "bar", chartType: "bar_chart", want: "bar_chart", traceType: "bar"},
		{name: "line", chartType: "line_chart", want: "line_chart", traceType: "scatter"},
		{name: "histogram", chartType: "histogram", want: "histogram", traceType: "histogram"},
		{name: "heatmap", chartType: "heatmap", want: "heatmap", traceType: "heatmap"},
		{name: "pie", chartType: "pie_chart", want: "pie_chart", traceType: "pie"},
		{name: "table", chartType: "table", want: "table", traceType: "table"},
		{name: "unknown falls back to table", chartType: "hologram", want: "table", traceType: "table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart := GenerateChart(table, tt.chartType, Options{})
			assert.Equal(t, tt.want, chart.Type)
			require.NotEmpty(t, chart.Traces)
			assert.Equal(t, tt.traceType, chart.Traces[0]["type"])
		})
	}
}

func TestGenerateChart_AxisSelection(t *testing.T) {
	table := numericTable(3)

	chart := GenerateChart(table, "scatter_plot", Options{})
	layout := chart.Layout
	assert.Equal(t, map[string]any{"title": "x"}, layout["xaxis"])
	assert.Equal(t, map[string]any{"title": "y"}, layout["yaxis"])
}

func TestGenerateChart_ExplicitOptions(t *testing.T) {
	table := mining.NewTable(
		[]string{"region", "amount"},
		[][]any{{"north", float64(10)}, {"south", float64(20)}},
	)

	chart := GenerateChart(table, "bar_chart", Options{X: "region", Y: "amount", Title: "Sales"})
	assert.Equal(t, "Sales", chart.Layout["title"])
	assert.Equal(t, map[string]any{"title": "region"}, chart.Layout["xaxis"])
}

func TestChartResult_JSONRoundTrips(t *testing.T) {
	chart := GenerateChart(numericTable(3), "scatter_plot", Options{Title: "t"})

	raw, err := chart.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, "scatter_plot", decoded["chart_type"])
}

func TestHeatmap_UsesCorrelations(t *testing.T) {
	chart := GenerateChart(numericTable(4), "heatmap", Options{})

	trace := chart.Traces[0]
	z, ok := trace["z"].([][]float64)
	require.True(t, ok)
	require.Len(t, z, 2)
	assert.InDelta(t, 1.0, z[0][0], 1e-9)
	assert.InDelta(t, 1.0, z[0][1], 1e-9)
}

func TestAutoVisualize(t *testing.T) {
	t.Run("small table renders as table", func(t *testing.T) {
		chart := AutoVisualize(numericTable(5), "")
		assert.Equal(t, "table", chart.Type)
	})

	t.Run("all numeric renders as heatmap", func(t *testing.T) {
		chart := AutoVisualize(numericTable(30), "")
		assert.Equal(t, "heatmap", chart.Type)
	})

	t.Run("cluster column renders as colored scatter", func(t *testing.T) {
		table := numericTable(30).WithColumn("cluster", make([]any, 30))
		chart := AutoVisualize(table, "")
		require.Equal(t, "scatter_plot", chart.Type)
		_, hasMarker := chart.Traces[0]["marker"]
		assert.True(t, hasMarker)
	})

	t.Run("anomaly column renders as colored scatter", func(t *testing.T) {
		scores := make([]any, 30)
		for i := range scores {
			scores[i] = float64(i)
		}
		table := numericTable(30).WithColumn("anomaly_score", scores).WithColumn("is_anomaly", make([]any, 30))
		chart := AutoVisualize(table, "")
		assert.Equal(t, "scatter_plot", chart.Type)
	})

	t.Run("categorical mix renders as bar chart", func(t *testing.T) {
		rows := make([][]any, 30)
		for i := range rows {
			rows[i] = []any{"region", float64(i)}
		}
		table := mining.NewTable([]string{"name", "value"}, rows)
		chart := AutoVisualize(table, "")
		assert.Equal(t, "bar_chart", chart.Type)
	})
}
