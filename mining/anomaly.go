package mining

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// AnomalyResult is the outcome of an ANOMALIES operation. Table carries the
// input rows with "is_anomaly" and "anomaly_score" columns appended.
type AnomalyResult struct {
	Table             *Table
	AnomalyCount      int
	AnomalyPercentage float64
	FeatureColumns    []string
	Threshold         float64
}

// DetectAnomalies flags rows whose z-score exceeds the threshold in any
// numeric column. The score column holds each row's maximum absolute
// z-score across features.
func DetectAnomalies(t *Table, threshold float64) (*AnomalyResult, error) {
	names, data := t.NumericColumns()
	if len(names) == 0 {
		return nil, fmt.Errorf("no numeric columns found for anomaly detection")
	}
	n := t.RowCount()

	scores := make([]float64, n)
	for _, column := range data {
		mean, _ := stats.Mean(column)
		std, _ := stats.StandardDeviationSample(column)
		if std == 0 || math.IsNaN(std) {
			continue
		}
		for i, v := range column {
			if z := math.Abs((v - mean) / std); z > scores[i] {
				scores[i] = z
			}
		}
	}

	flagValues := make([]any, n)
	scoreValues := make([]any, n)
	count := 0
	for i, score := range scores {
		anomalous := score > threshold
		if anomalous {
			count++
		}
		flagValues[i] = anomalous
		scoreValues[i] = score
	}

	percentage := 0.0
	if n > 0 {
		percentage = math.Round(float64(count)/float64(n)*10000) / 100
	}

	augmented := t.WithColumn("is_anomaly", flagValues).WithColumn("anomaly_score", scoreValues)
	return &AnomalyResult{
		Table:             augmented,
		AnomalyCount:      count,
		AnomalyPercentage: percentage,
		FeatureColumns:    names,
		Threshold:         threshold,
	}, nil
}
