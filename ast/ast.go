// Package ast defines the immutable query representation produced by the
// DMQL parser and consumed by the SQL translator.
package ast

// Query is the reduced form of one parsed DMQL statement. It is built once
// per parse call and never mutated by downstream components.
type Query struct {
	// Database is the logical database named by USE DATABASE, or "".
	Database string
	// Tables lists the FROM relations in source order.
	Tables []string
	// Columns lists the RELEVANCE TO attributes. Empty means project all.
	Columns []string
	// Conditions is the WHERE tree, or nil when the clause is absent.
	Conditions Condition
	// GroupBy lists GROUP BY attributes in source order.
	GroupBy []string
	// OrderBy lists ORDER BY items in source order.
	OrderBy []OrderItem
	// MiningOp is the MINE directive, or nil.
	MiningOp *MiningOperation
	// InterestMeasures holds the WITH clause measures, or nil.
	InterestMeasures *InterestMeasure
	// DisplayType is the DISPLAY AS hint, lowercased. Defaults to "table".
	DisplayType string
	// RawQuery is the original source text.
	RawQuery string
	// Errors holds recoverable syntax errors formatted as
	// "Line {line}:{col} - {message}", in source order.
	Errors []string
}

// HasErrors reports whether any syntax errors were recorded during the parse.
func (q *Query) HasErrors() bool {
	return len(q.Errors) > 0
}

// OrderItem is one ORDER BY entry.
type OrderItem struct {
	Column    string
	Direction string // "ASC" or "DESC"
}

// Sort directions.
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// OperationType identifies a MINE directive.
type OperationType string

const (
	OpCluster          OperationType = "CLUSTER"
	OpStatistics       OperationType = "STATISTICS"
	OpAnomalies        OperationType = "ANOMALIES"
	OpAssociationRules OperationType = "ASSOCIATION_RULES"
	OpClassification   OperationType = "CLASSIFICATION"
	OpRegression       OperationType = "REGRESSION"
	OpUnknown          OperationType = "UNKNOWN"
)

// MiningOperation is a post-selection analytic directive. Parameters are
// operation-specific and forwarded verbatim to the mining collaborator:
// CLUSTER carries an integer "k", CLASSIFICATION and REGRESSION carry a
// string "target".
type MiningOperation struct {
	Type       OperationType
	Parameters map[string]any
}

// InterestMeasure holds the numeric thresholds of a WITH clause. All fields
// are independent; a nil pointer means the measure was not given.
type InterestMeasure struct {
	Confidence      *float64
	Support         *float64
	Lift            *float64
	Threshold       *float64
	ConfidenceLevel *float64
}
