package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/dmql/dmql-go/ast"
	"github.com/dmql/dmql-go/cli/internal/ui"
	"github.com/dmql/dmql-go/diagnostics"
	"github.com/dmql/dmql-go/executor"
	"github.com/dmql/dmql-go/mining"
	"github.com/dmql/dmql-go/parsing"
	"github.com/dmql/dmql-go/telemetry"
	"github.com/dmql/dmql-go/visualization"
)

// openExecutor connects to the database selected by flags and config.
func openExecutor() (*executor.Executor, error) {
	exec, err := executor.Open(flagProvider, flagDatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return exec, nil
}

// runQuery is the shared exec/repl/watch pipeline: parse, report syntax
// errors, execute, mine when a MINE clause is present, then display.
func runQuery(ctx context.Context, exec *executor.Executor, source string, asChart bool) error {
	start := time.Now()
	q, diags := parsing.ParseQuery(source)
	miningOp := ""
	if q.MiningOp != nil {
		miningOp = string(q.MiningOp.Type)
	}
	var runErr error
	defer func() {
		telemetry.RecordQuery(flagProvider, miningOp, time.Since(start), runErr)
	}()
	if q.HasErrors() {
		fmt.Print(diags.ToPrettyString("query", source))
		runErr = fmt.Errorf("query has %d syntax error(s)", len(q.Errors))
		return runErr
	}
	if flagDatabase != "" && q.Database == "" {
		q = withDatabase(q, flagDatabase)
	}

	result := exec.ExecuteQuery(ctx, q)
	if !result.Success {
		ui.PrintError("execution failed: %s", result.Err)
		ui.PrintInfo("SQL: %s", result.SQL)
		runErr = fmt.Errorf("execution failed")
		return runErr
	}

	table := mining.NewTable(result.Columns, result.Rows)
	var mined *mining.Result
	if q.MiningOp != nil {
		var err error
		mined, err = mining.Mine(table, q.MiningOp, q.InterestMeasures)
		if err != nil {
			ui.PrintError("mining failed: %s", err)
			runErr = err
			return runErr
		}
		table = mined.Table
	}

	if asChart || (q.DisplayType != "" && q.DisplayType != "table") {
		var chart *visualization.ChartResult
		if asChart && (q.DisplayType == "" || q.DisplayType == "table") {
			// --chart without an explicit DISPLAY AS hint: pick from shape.
			chart = visualization.AutoVisualize(table, "")
		} else {
			chart = visualization.GenerateChart(table, q.DisplayType, visualization.Options{})
		}
		spec, err := chart.JSON()
		if err != nil {
			runErr = fmt.Errorf("failed to serialize chart: %w", err)
			return runErr
		}
		fmt.Println(spec)
	} else {
		printTable(table)
	}
	printMiningSummary(mined)
	ui.PrintSuccess("%d row(s)", result.RowCount)
	return nil
}

// withDatabase returns a copy of the query with the database filled in from
// the CLI context. The parsed query itself stays untouched.
func withDatabase(q *ast.Query, database string) *ast.Query {
	copied := *q
	copied.Database = database
	return &copied
}

func printTable(t *mining.Table) {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				cells[j] = "NULL"
				continue
			}
			cells[j] = fmt.Sprintf("%v", v)
		}
		rows[i] = cells
	}
	ui.PrintTable(t.Columns, rows)
}

func printMiningSummary(result *mining.Result) {
	if result == nil {
		return
	}
	switch {
	case result.Statistics != nil:
		stats := result.Statistics
		ui.PrintInfo("statistics over %d row(s), %d numeric column(s)", stats.Count, len(stats.NumericColumns))
		for _, name := range stats.NumericColumns {
			s := stats.Summary[name]
			fmt.Printf("  %s: mean=%.4g median=%.4g std=%.4g min=%.4g max=%.4g\n",
				name, s.Mean, s.Median, s.Std, s.Min, s.Max)
		}
	case result.Clustering != nil:
		c := result.Clustering
		ui.PrintInfo("k-means: k=%d inertia=%.4g features=%v", c.K, c.Inertia, c.FeatureColumns)
		for cluster := 0; cluster < c.K; cluster++ {
			fmt.Printf("  cluster %d: %d row(s)\n", cluster, c.ClusterSizes[cluster])
		}
	case result.Anomalies != nil:
		a := result.Anomalies
		ui.PrintInfo("anomalies: %d flagged (%.2f%%) at threshold %.2f", a.AnomalyCount, a.AnomalyPercentage, a.Threshold)
	}
}

// reportDiagnostics pretty-prints accumulated syntax errors, if any.
func reportDiagnostics(source string, diags *diagnostics.Diagnostics) {
	if diags.HasErrors() {
		fmt.Print(diags.ToPrettyString("query", source))
	}
}
