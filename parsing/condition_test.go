package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmql/dmql-go/ast"
)

func parseCondition(t *testing.T, where string) ast.Condition {
	t.Helper()
	q := Parse("FROM t WHERE " + where)
	require.False(t, q.HasErrors(), "errors: %v", q.Errors)
	require.NotNil(t, q.Conditions)
	return q.Conditions
}

func TestCondition_SimpleComparison(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ast.Comparison
	}{
		{
			name:  "integer literal",
			input: "age > 25",
			want:  ast.Comparison{Left: "age", Operator: ">", Right: ast.IntLit(25)},
		},
		{
			name:  "float literal",
			input: "score >= 8.5",
			want:  ast.Comparison{Left: "score", Operator: ">=", Right: ast.FloatLit(8.5)},
		},
		{
			name:  "single quoted string",
			input: "city = 'Delhi'",
			want:  ast.Comparison{Left: "city", Operator: "=", Right: ast.StringLit("Delhi")},
		},
		{
			name:  "double quoted string",
			input: `city = "Delhi"`,
			want:  ast.Comparison{Left: "city", Operator: "=", Right: ast.StringLit("Delhi")},
		},
		{
			name:  "numeric-looking string stays a string",
			input: `code = "007"`,
			want:  ast.Comparison{Left: "code", Operator: "=", Right: ast.StringLit("007")},
		},
		{
			name:  "alternate inequality normalizes",
			input: "status <> 'closed'",
			want:  ast.Comparison{Left: "status", Operator: "!=", Right: ast.StringLit("closed")},
		},
		{
			name:  "null literal",
			input: "deleted_at = NULL",
			want:  ast.Comparison{Left: "deleted_at", Operator: "=", Right: ast.NullLit{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := parseCondition(t, tt.input)
			assert.Equal(t, tt.want, cond)
		})
	}
}

func TestCondition_AndTree(t *testing.T) {
	cond := parseCondition(t, "age > 25 AND city = 'Mumbai'")

	logical, ok := cond.(ast.Logical)
	require.True(t, ok)
	assert.Equal(t, ast.LogicalAnd, logical.Op)
	assert.Equal(t, ast.Comparison{Left: "age", Operator: ">", Right: ast.IntLit(25)}, logical.Left)
	assert.Equal(t, ast.Comparison{Left: "city", Operator: "=", Right: ast.StringLit("Mumbai")}, logical.Right)
}

func TestCondition_ChainsFoldLeft(t *testing.T) {
	cond := parseCondition(t, "a = 1 AND b = 2 AND c = 3")

	outer, ok := cond.(ast.Logical)
	require.True(t, ok)
	assert.Equal(t, ast.LogicalAnd, outer.Op)
	assert.Equal(t, ast.Comparison{Left: "c", Operator: "=", Right: ast.IntLit(3)}, outer.Right)

	inner, ok := outer.Left.(ast.Logical)
	require.True(t, ok)
	assert.Equal(t, ast.Comparison{Left: "a", Operator: "=", Right: ast.IntLit(1)}, inner.Left)
	assert.Equal(t, ast.Comparison{Left: "b", Operator: "=", Right: ast.IntLit(2)}, inner.Right)
}

func TestCondition_AndBindsTighterThanOr(t *testing.T) {
	cond := parseCondition(t, "a = 1 OR b = 2 AND c = 3")

	outer, ok := cond.(ast.Logical)
	require.True(t, ok)
	assert.Equal(t, ast.LogicalOr, outer.Op)

	right, ok := outer.Right.(ast.Logical)
	require.True(t, ok)
	assert.Equal(t, ast.LogicalAnd, right.Op)
}

func TestCondition_ParensOverridePrecedence(t *testing.T) {
	cond := parseCondition(t, "(a = 1 OR b = 2) AND c = 3")

	outer, ok := cond.(ast.Logical)
	require.True(t, ok)
	assert.Equal(t, ast.LogicalAnd, outer.Op)

	left, ok := outer.Left.(ast.Logical)
	require.True(t, ok)
	assert.Equal(t, ast.LogicalOr, left.Op)
}

func TestCondition_Not(t *testing.T) {
	cond := parseCondition(t, "NOT age > 25")

	not, ok := cond.(ast.Not)
	require.True(t, ok)
	assert.Equal(t, ast.Comparison{Left: "age", Operator: ">", Right: ast.IntLit(25)}, not.Child)
}

func TestCondition_NotNests(t *testing.T) {
	cond := parseCondition(t, "NOT NOT active = 1")

	outer, ok := cond.(ast.Not)
	require.True(t, ok)
	inner, ok := outer.Child.(ast.Not)
	require.True(t, ok)
	assert.IsType(t, ast.Comparison{}, inner.Child)
}

func TestCondition_Between(t *testing.T) {
	cond := parseCondition(t, "age BETWEEN 18 AND 65")

	between, ok := cond.(ast.Between)
	require.True(t, ok)
	assert.Equal(t, "age", between.Expr)
	assert.Equal(t, ast.IntLit(18), between.Low)
	assert.Equal(t, ast.IntLit(65), between.High)
}

func TestCondition_Like(t *testing.T) {
	cond := parseCondition(t, "name LIKE 'A%'")

	like, ok := cond.(ast.Like)
	require.True(t, ok)
	assert.Equal(t, "name", like.Expr)
	assert.Equal(t, "A%", like.Pattern)
}

func TestCondition_IsNull(t *testing.T) {
	cond := parseCondition(t, "email IS NULL")

	isNull, ok := cond.(ast.IsNull)
	require.True(t, ok)
	assert.Equal(t, "email", isNull.Expr)
	assert.False(t, isNull.Negated)
}

func TestCondition_IsNotNull(t *testing.T) {
	cond := parseCondition(t, "email IS NOT NULL")

	isNull, ok := cond.(ast.IsNull)
	require.True(t, ok)
	assert.True(t, isNull.Negated)
}

func TestCondition_In(t *testing.T) {
	cond := parseCondition(t, "region IN ('north', 'south', 3)")

	in, ok := cond.(ast.In)
	require.True(t, ok)
	assert.Equal(t, "region", in.Expr)
	assert.Equal(t, []ast.Literal{
		ast.StringLit("north"),
		ast.StringLit("south"),
		ast.IntLit(3),
	}, in.Values)
}

func TestCondition_EmptyInListIsSyntaxError(t *testing.T) {
	q := Parse("FROM t WHERE region IN ()")

	assert.NotEmpty(t, q.Errors)
}

// Every predicate form dispatches at any nesting depth, not only at the top
// level of the WHERE clause.
func TestCondition_NestedFormsUnderLogical(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, side ast.Condition)
	}{
		{
			name:  "between under and",
			input: "age BETWEEN 18 AND 65 AND city = 'Pune'",
			check: func(t *testing.T, side ast.Condition) {
				between, ok := side.(ast.Between)
				require.True(t, ok)
				assert.Equal(t, "age", between.Expr)
			},
		},
		{
			name:  "like under and",
			input: "name LIKE 'A%' AND age > 20",
			check: func(t *testing.T, side ast.Condition) {
				like, ok := side.(ast.Like)
				require.True(t, ok)
				assert.Equal(t, "A%", like.Pattern)
			},
		},
		{
			name:  "is null under or",
			input: "email IS NULL OR age > 20",
			check: func(t *testing.T, side ast.Condition) {
				isNull, ok := side.(ast.IsNull)
				require.True(t, ok)
				assert.Equal(t, "email", isNull.Expr)
			},
		},
		{
			name:  "in under and",
			input: "region IN ('a', 'b') AND age > 20",
			check: func(t *testing.T, side ast.Condition) {
				in, ok := side.(ast.In)
				require.True(t, ok)
				assert.Len(t, in.Values, 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := parseCondition(t, tt.input)
			logical, ok := cond.(ast.Logical)
			require.True(t, ok, "expected a logical node, got %T", cond)
			tt.check(t, logical.Left)
		})
	}
}

func TestCondition_DeeplyNested(t *testing.T) {
	cond := parseCondition(t, "NOT (age BETWEEN 1 AND 10 OR name LIKE 'x%') AND id IN (1, 2)")

	outer, ok := cond.(ast.Logical)
	require.True(t, ok)
	assert.Equal(t, ast.LogicalAnd, outer.Op)

	not, ok := outer.Left.(ast.Not)
	require.True(t, ok)
	or, ok := not.Child.(ast.Logical)
	require.True(t, ok)
	assert.IsType(t, ast.Between{}, or.Left)
	assert.IsType(t, ast.Like{}, or.Right)

	assert.IsType(t, ast.In{}, outer.Right)
}
