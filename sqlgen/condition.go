package sqlgen

import (
	"strings"

	"github.com/dmql/dmql-go/ast"
)

// conditionSQL renders a condition tree as a SQL expression. Every variant
// is handled at any nesting depth. String literals are single-quoted without
// escaping embedded quotes; callers control their inputs.
func conditionSQL(c ast.Condition) string {
	switch node := c.(type) {
	case ast.Comparison:
		return node.Left + " " + node.Operator + " " + node.Right.SQL()
	case ast.Logical:
		return "(" + conditionSQL(node.Left) + " " + node.Op + " " + conditionSQL(node.Right) + ")"
	case ast.Not:
		return "NOT (" + conditionSQL(node.Child) + ")"
	case ast.Between:
		return node.Expr + " BETWEEN " + node.Low.SQL() + " AND " + node.High.SQL()
	case ast.Like:
		return node.Expr + " LIKE '" + node.Pattern + "'"
	case ast.IsNull:
		if node.Negated {
			return node.Expr + " IS NOT NULL"
		}
		return node.Expr + " IS NULL"
	case ast.In:
		values := make([]string, len(node.Values))
		for i, v := range node.Values {
			values[i] = v.SQL()
		}
		return node.Expr + " IN (" + strings.Join(values, ", ") + ")"
	}
	return ""
}
