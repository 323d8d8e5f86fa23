package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmql/dmql-go/ast"
)

func TestParse_FullQuery(t *testing.T) {
	q := Parse(`
USE DATABASE sales
RELEVANCE TO customer_id, amount, region
FROM orders
WHERE amount > 100 AND region = 'west'
GROUP BY region
ORDER BY amount DESC, customer_id
MINE CLUSTER K = 3
WITH confidence = 0.8, support = 0.1
DISPLAY AS scatter_plot
`)

	require.False(t, q.HasErrors(), "errors: %v", q.Errors)
	assert.Equal(t, "sales", q.Database)
	assert.Equal(t, []string{"orders"}, q.Tables)
	assert.Equal(t, []string{"customer_id", "amount", "region"}, q.Columns)
	assert.Equal(t, []string{"region"}, q.GroupBy)
	assert.Equal(t, []ast.OrderItem{
		{Column: "amount", Direction: ast.SortDesc},
		{Column: "customer_id", Direction: ast.SortAsc},
	}, q.OrderBy)

	require.NotNil(t, q.MiningOp)
	assert.Equal(t, ast.OpCluster, q.MiningOp.Type)
	assert.Equal(t, 3, q.MiningOp.Parameters["k"])

	require.NotNil(t, q.InterestMeasures)
	require.NotNil(t, q.InterestMeasures.Confidence)
	assert.Equal(t, 0.8, *q.InterestMeasures.Confidence)
	require.NotNil(t, q.InterestMeasures.Support)
	assert.Equal(t, 0.1, *q.InterestMeasures.Support)

	assert.Equal(t, "scatter_plot", q.DisplayType)
}

func TestParse_EmptyColumnsMeansAll(t *testing.T) {
	q := Parse("FROM customers")

	require.False(t, q.HasErrors())
	assert.Empty(t, q.Columns)
	assert.Equal(t, []string{"customers"}, q.Tables)
}

func TestParse_DefaultDisplayType(t *testing.T) {
	q := Parse("FROM customers")

	assert.Equal(t, "table", q.DisplayType)
}

func TestParse_OrderByDefaultsAscending(t *testing.T) {
	q := Parse("FROM people ORDER BY age DESC, name")

	require.False(t, q.HasErrors())
	assert.Equal(t, []ast.OrderItem{
		{Column: "age", Direction: ast.SortDesc},
		{Column: "name", Direction: ast.SortAsc},
	}, q.OrderBy)
}

func TestParse_CaseInsensitiveKeywords(t *testing.T) {
	q := Parse("use database sales from orders where amount > 10 order by amount desc")

	require.False(t, q.HasErrors(), "errors: %v", q.Errors)
	assert.Equal(t, "sales", q.Database)
	assert.Equal(t, []string{"orders"}, q.Tables)
	assert.Equal(t, []ast.OrderItem{{Column: "amount", Direction: ast.SortDesc}}, q.OrderBy)
}

func TestParse_Comments(t *testing.T) {
	q := Parse(`-- select everything
FROM customers -- trailing comment
-- done`)

	require.False(t, q.HasErrors(), "errors: %v", q.Errors)
	assert.Equal(t, []string{"customers"}, q.Tables)
}

func TestParse_InvalidInputNeverPanics(t *testing.T) {
	q := Parse("INVALID SYNTAX HERE!!!")

	assert.Equal(t, "", q.Database)
	assert.Empty(t, q.Tables)
	require.NotEmpty(t, q.Errors)
}

func TestParse_ErrorFormat(t *testing.T) {
	q := Parse("USE DATABASE")

	require.NotEmpty(t, q.Errors)
	assert.Regexp(t, `^Line \d+:\d+ - `, q.Errors[0])
}

func TestParse_EmptyInput(t *testing.T) {
	q := Parse("")

	assert.False(t, q.HasErrors())
	assert.Empty(t, q.Tables)
	assert.Equal(t, "table", q.DisplayType)
}

func TestParse_MalformedClauseKeepsRest(t *testing.T) {
	q := Parse(`USE DATABASE sales
RELEVANCE TO
FROM orders`)

	require.NotEmpty(t, q.Errors)
	assert.Equal(t, "sales", q.Database)
	assert.Equal(t, []string{"orders"}, q.Tables)
}

func TestParse_WhereFallback(t *testing.T) {
	// The WHERE body does not parse; the clause degrades to a raw
	// comparison and the error is still reported.
	q := Parse("FROM orders WHERE > >")

	require.NotEmpty(t, q.Errors)
	require.NotNil(t, q.Conditions)
	cmp, ok := q.Conditions.(ast.Comparison)
	require.True(t, ok)
	assert.Equal(t, "=", cmp.Operator)
	assert.Equal(t, cmp.Left, string(cmp.Right.(ast.StringLit)))
}

func TestParse_MiningOperations(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		opType ast.OperationType
		params map[string]any
	}{
		{
			name:   "cluster with k",
			input:  "FROM t MINE CLUSTER K = 5",
			opType: ast.OpCluster,
			params: map[string]any{"k": 5},
		},
		{
			name:   "cluster lowercase k",
			input:  "FROM t MINE CLUSTER k = 2",
			opType: ast.OpCluster,
			params: map[string]any{"k": 2},
		},
		{
			name:   "statistics",
			input:  "FROM t MINE STATISTICS",
			opType: ast.OpStatistics,
			params: map[string]any{},
		},
		{
			name:   "anomalies",
			input:  "FROM t MINE ANOMALIES",
			opType: ast.OpAnomalies,
			params: map[string]any{},
		},
		{
			name:   "association rules",
			input:  "FROM t MINE ASSOCIATION_RULES",
			opType: ast.OpAssociationRules,
			params: map[string]any{},
		},
		{
			name:   "classification",
			input:  "FROM t MINE CLASSIFICATION churn",
			opType: ast.OpClassification,
			params: map[string]any{"target": "churn"},
		},
		{
			name:   "regression",
			input:  "FROM t MINE REGRESSION price",
			opType: ast.OpRegression,
			params: map[string]any{"target": "price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Parse(tt.input)
			require.False(t, q.HasErrors(), "errors: %v", q.Errors)
			require.NotNil(t, q.MiningOp)
			assert.Equal(t, tt.opType, q.MiningOp.Type)
			assert.Equal(t, tt.params, q.MiningOp.Parameters)
		})
	}
}

func TestParse_ClusterKIsInteger(t *testing.T) {
	q := Parse("FROM t MINE CLUSTER K = 5")

	require.NotNil(t, q.MiningOp)
	k, ok := q.MiningOp.Parameters["k"].(int)
	require.True(t, ok, "k should be an int, got %T", q.MiningOp.Parameters["k"])
	assert.Equal(t, 5, k)
}

func TestParse_InterestMeasures(t *testing.T) {
	q := Parse("FROM t MINE STATISTICS WITH confidence_level = 0.95, threshold = 2.5, lift = 1.2")

	require.False(t, q.HasErrors(), "errors: %v", q.Errors)
	m := q.InterestMeasures
	require.NotNil(t, m)
	require.NotNil(t, m.ConfidenceLevel)
	assert.Equal(t, 0.95, *m.ConfidenceLevel)
	require.NotNil(t, m.Threshold)
	assert.Equal(t, 2.5, *m.Threshold)
	require.NotNil(t, m.Lift)
	assert.Equal(t, 1.2, *m.Lift)
	assert.Nil(t, m.Confidence)
	assert.Nil(t, m.Support)
}

func TestParse_ConfidenceLevelNotConfusedWithConfidence(t *testing.T) {
	q := Parse("FROM t MINE STATISTICS WITH confidence_level = 0.99")

	m := q.InterestMeasures
	require.NotNil(t, m)
	require.NotNil(t, m.ConfidenceLevel)
	assert.Equal(t, 0.99, *m.ConfidenceLevel)
	assert.Nil(t, m.Confidence)
}

func TestParse_MultipleTables(t *testing.T) {
	q := Parse("FROM customers, orders")

	require.False(t, q.HasErrors())
	assert.Equal(t, []string{"customers", "orders"}, q.Tables)
}

func TestParse_QualifiedAndStarColumns(t *testing.T) {
	q := Parse("RELEVANCE TO customers.name, * FROM customers")

	require.False(t, q.HasErrors(), "errors: %v", q.Errors)
	assert.Equal(t, []string{"customers.name", "*"}, q.Columns)
}

func TestParse_RawQueryPreserved(t *testing.T) {
	input := "FROM customers WHERE age > 25"
	q := Parse(input)

	assert.Equal(t, input, q.RawQuery)
}

func TestParse_ErrorPositionsPointIntoFullInput(t *testing.T) {
	q := Parse("FROM orders\nUSE DATABASE")

	require.NotEmpty(t, q.Errors)
	assert.True(t, strings.HasPrefix(q.Errors[0], "Line 2:"), "got %q", q.Errors[0])
}
