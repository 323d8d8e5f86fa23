package mining

import (
	"github.com/montanaflynn/stats"

	"github.com/dmql/dmql-go/ast"
)

// ColumnSummary holds the descriptive statistics of one numeric column.
type ColumnSummary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Std      float64 `json:"std"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Q25      float64 `json:"q25"`
	Q50      float64 `json:"q50"`
	Q75      float64 `json:"q75"`
	Variance float64 `json:"variance"`
}

// StatisticsResult is the outcome of a STATISTICS operation.
type StatisticsResult struct {
	Count              int                           `json:"count"`
	NumericColumns     []string                      `json:"numeric_columns"`
	CategoricalColumns []string                      `json:"categorical_columns"`
	Summary            map[string]ColumnSummary      `json:"summary"`
	Correlations       map[string]map[string]float64 `json:"correlations,omitempty"`
	ValueCounts        map[string]map[string]int     `json:"value_counts,omitempty"`
	ConfidenceLevel    *float64                      `json:"confidence_level,omitempty"`
}

// BasicStatistics computes per-column descriptive statistics and the
// pairwise correlation matrix of the numeric columns. A requested
// confidence level is echoed into the result.
func BasicStatistics(t *Table, measures *ast.InterestMeasure) *StatisticsResult {
	names, data := t.NumericColumns()

	result := &StatisticsResult{
		Count:              t.RowCount(),
		NumericColumns:     names,
		CategoricalColumns: t.CategoricalColumns(),
		Summary:            make(map[string]ColumnSummary, len(names)),
	}

	for i, name := range names {
		result.Summary[name] = summarize(data[i])
	}

	if len(names) > 1 {
		result.Correlations = correlationMatrix(names, data)
	}

	result.ValueCounts = valueCounts(t, result.CategoricalColumns)
	if measures != nil && measures.ConfidenceLevel != nil {
		result.ConfidenceLevel = measures.ConfidenceLevel
	}
	return result
}

func summarize(values []float64) ColumnSummary {
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	std, _ := stats.StandardDeviationSample(values)
	minimum, _ := stats.Min(values)
	maximum, _ := stats.Max(values)
	q25, _ := stats.Percentile(values, 25)
	q50, _ := stats.Percentile(values, 50)
	q75, _ := stats.Percentile(values, 75)
	variance, _ := stats.SampleVariance(values)
	if len(values) < 2 {
		std, variance = 0, 0
	}
	return ColumnSummary{
		Count:    len(values),
		Mean:     mean,
		Median:   median,
		Std:      std,
		Min:      minimum,
		Max:      maximum,
		Q25:      q25,
		Q50:      q50,
		Q75:      q75,
		Variance: variance,
	}
}

func correlationMatrix(names []string, data [][]float64) map[string]map[string]float64 {
	matrix := make(map[string]map[string]float64, len(names))
	for i, a := range names {
		matrix[a] = make(map[string]float64, len(names))
		for j, b := range names {
			if i == j {
				matrix[a][b] = 1
				continue
			}
			r, err := stats.Correlation(data[i], data[j])
			if err != nil {
				r = 0
			}
			matrix[a][b] = r
		}
	}
	return matrix
}

// valueCounts tallies categorical columns, capped at the 20 most frequent
// values per column.
func valueCounts(t *Table, categorical []string) map[string]map[string]int {
	if len(categorical) == 0 {
		return nil
	}
	counts := make(map[string]map[string]int, len(categorical))
	for _, name := range categorical {
		column := t.Column(name)
		if column == nil {
			continue
		}
		tally := make(map[string]int)
		for _, v := range column {
			if v == nil {
				continue
			}
			s, ok := v.(string)
			if !ok {
				continue
			}
			tally[s]++
		}
		if len(tally) > 0 {
			counts[name] = topCounts(tally, 20)
		}
	}
	if len(counts) == 0 {
		return nil
	}
	return counts
}

func topCounts(tally map[string]int, limit int) map[string]int {
	if len(tally) <= limit {
		return tally
	}
	type entry struct {
		value string
		count int
	}
	entries := make([]entry, 0, len(tally))
	for v, c := range tally {
		entries = append(entries, entry{v, c})
	}
	// Selection of the top entries; order within the map is irrelevant.
	for i := 0; i < limit; i++ {
		best := i
		for j := i + 1; j < len(entries); j++ {
			if entries[j].count > entries[best].count {
				best = j
			}
		}
		entries[i], entries[best] = entries[best], entries[i]
	}
	top := make(map[string]int, limit)
	for _, e := range entries[:limit] {
		top[e.value] = e.count
	}
	return top
}
