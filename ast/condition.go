package ast

// Condition represents a node in a WHERE condition tree.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern enables exhaustive type switches in the SQL
// translator.
//
// Condition types:
//   - Comparison: expr op literal
//   - Logical: strictly binary AND/OR
//   - Not: negation of a child condition
//   - Between: expr BETWEEN low AND high
//   - Like: expr LIKE pattern
//   - IsNull: expr IS [NOT] NULL
//   - In: expr IN (literal, ...)
type Condition interface {
	conditionNode()
}

// Comparison operators accepted by the grammar.
const (
	OpEq  = "="
	OpNe  = "!="
	OpLt  = "<"
	OpGt  = ">"
	OpLte = "<="
	OpGte = ">="
)

// Logical operators.
const (
	LogicalAnd = "AND"
	LogicalOr  = "OR"
)

// Comparison is a single expr-operator-literal filter.
type Comparison struct {
	Left     string
	Operator string
	Right    Literal
}

func (Comparison) conditionNode() {}

// Logical combines exactly two conditions with AND or OR. Keyword chains in
// source become left-nested Logical trees; the grammar never yields n-ary
// conjunctions.
type Logical struct {
	Op    string // LogicalAnd or LogicalOr
	Left  Condition
	Right Condition
}

func (Logical) conditionNode() {}

// Not negates its child condition.
type Not struct {
	Child Condition
}

func (Not) conditionNode() {}

// Between is an inclusive range filter.
type Between struct {
	Expr string
	Low  Literal
	High Literal
}

func (Between) conditionNode() {}

// Like is a pattern-match filter. Pattern holds the unquoted pattern text.
type Like struct {
	Expr    string
	Pattern string
}

func (Like) conditionNode() {}

// IsNull tests for NULL, or NOT NULL when Negated is set.
type IsNull struct {
	Expr    string
	Negated bool
}

func (IsNull) conditionNode() {}

// In tests membership in a literal list.
type In struct {
	Expr   string
	Values []Literal
}

func (In) conditionNode() {}
