// Package mining implements the data-mining operations a MINE clause can
// request: descriptive statistics, k-means clustering, and z-score anomaly
// detection. Operations take tabular query results and return the table
// augmented with derived columns plus operation-specific metadata.
package mining

import (
	"fmt"

	"github.com/dmql/dmql-go/ast"
	"github.com/dmql/dmql-go/internal/debug"
)

// Result is the outcome of one mining operation. Table is the input table,
// possibly augmented with derived columns (cluster assignments, anomaly
// flags). Exactly one of the operation-specific fields is set.
type Result struct {
	Operation  ast.OperationType
	Table      *Table
	Statistics *StatisticsResult
	Clustering *ClusteringResult
	Anomalies  *AnomalyResult
}

// UnsupportedError reports a recognized mining operation that has no
// implementation in this engine.
type UnsupportedError struct {
	Operation ast.OperationType
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("mining operation %s is not supported", e.Operation)
}

// Mine dispatches a mining operation over a table. Parameters and interest
// measures come through from the parsed query unmodified.
func Mine(t *Table, op *ast.MiningOperation, measures *ast.InterestMeasure) (*Result, error) {
	if op == nil {
		return nil, fmt.Errorf("no mining operation")
	}
	debug.Debug("mining", "operation", string(op.Type), "rows", t.RowCount())

	switch op.Type {
	case ast.OpStatistics:
		stats := BasicStatistics(t, measures)
		return &Result{Operation: op.Type, Table: t, Statistics: stats}, nil

	case ast.OpCluster:
		k := 3
		if v, ok := op.Parameters["k"].(int); ok && v > 0 {
			k = v
		}
		clustering, err := KMeans(t, k)
		if err != nil {
			return nil, err
		}
		return &Result{Operation: op.Type, Table: clustering.Table, Clustering: clustering}, nil

	case ast.OpAnomalies:
		threshold := 3.0
		if measures != nil && measures.Threshold != nil && *measures.Threshold > 0 {
			threshold = *measures.Threshold
		}
		anomalies, err := DetectAnomalies(t, threshold)
		if err != nil {
			return nil, err
		}
		return &Result{Operation: op.Type, Table: anomalies.Table, Anomalies: anomalies}, nil

	case ast.OpAssociationRules, ast.OpClassification, ast.OpRegression:
		return nil, &UnsupportedError{Operation: op.Type}

	default:
		return nil, &UnsupportedError{Operation: op.Type}
	}
}
