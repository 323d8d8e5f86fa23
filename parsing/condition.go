package parsing

import (
	"strconv"

	"github.com/dmql/dmql-go/ast"
)

// This file lowers the concrete condition tree (OrCondition and friends)
// into the binary ast.Condition form. Chains of the same operator fold
// left-nested: a AND b AND c becomes ((a AND b) AND c).

func extractCondition(or *OrCondition) ast.Condition {
	cond := extractAnd(or.First)
	for _, term := range or.Rest {
		cond = ast.Logical{Op: ast.LogicalOr, Left: cond, Right: extractAnd(term)}
	}
	return cond
}

func extractAnd(and *AndCondition) ast.Condition {
	cond := extractNot(and.First)
	for _, term := range and.Rest {
		cond = ast.Logical{Op: ast.LogicalAnd, Left: cond, Right: extractNot(term)}
	}
	return cond
}

func extractNot(not *NotCondition) ast.Condition {
	if not.Not != nil {
		return ast.Not{Child: extractNot(not.Not)}
	}
	return extractPrimary(not.Primary)
}

func extractPrimary(p *PrimaryCondition) ast.Condition {
	if p.Paren != nil {
		return extractCondition(p.Paren)
	}
	return extractPredicate(p.Predicate)
}

func extractPredicate(p *Predicate) ast.Condition {
	left := p.Left.Text()
	switch {
	case p.Between != nil:
		return ast.Between{
			Expr: left,
			Low:  operandLiteral(p.Between.Low),
			High: operandLiteral(p.Between.High),
		}
	case p.Like != nil:
		return ast.Like{Expr: left, Pattern: unquote(p.Like.Pattern)}
	case p.Null != nil:
		return ast.IsNull{Expr: left, Negated: p.Null.Negated}
	case p.In != nil:
		values := make([]ast.Literal, len(p.In.Values))
		for i, v := range p.In.Values {
			values[i] = operandLiteral(v)
		}
		return ast.In{Expr: left, Values: values}
	case p.Cmp != nil:
		return ast.Comparison{
			Left:     left,
			Operator: normalizeOperator(p.Cmp.Op),
			Right:    operandLiteral(p.Cmp.Right),
		}
	}
	// Bare operand with no tail; degrade to the same best-effort form as an
	// unparseable WHERE clause.
	return ast.Comparison{Left: left, Operator: ast.OpEq, Right: ast.StringLit(left)}
}

// operandLiteral converts a parsed operand into a typed literal. Literal
// types follow the token that produced them: quoted text is always a string,
// even when it looks numeric.
func operandLiteral(o *Operand) ast.Literal {
	switch {
	case o.Float != nil:
		f, err := strconv.ParseFloat(*o.Float, 64)
		if err != nil {
			return ast.StringLit(*o.Float)
		}
		return ast.FloatLit(f)
	case o.Int != nil:
		n, err := strconv.ParseInt(*o.Int, 10, 64)
		if err != nil {
			return ast.StringLit(*o.Int)
		}
		return ast.IntLit(n)
	case o.Str != nil:
		return ast.StringLit(unquote(*o.Str))
	case o.Null:
		return ast.NullLit{}
	case o.Name != nil:
		return ast.StringLit(o.Name.Text())
	}
	return ast.StringLit("")
}

// normalizeOperator maps the alternate inequality spelling onto the
// canonical one. All other operators pass through unchanged.
func normalizeOperator(op string) string {
	if op == "<>" {
		return ast.OpNe
	}
	return op
}
