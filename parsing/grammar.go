package parsing

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// The types in this file form the concrete syntax tree for DMQL. Each struct
// matches one grammar rule; the reducer in reduce.go collapses the tree into
// an ast.Query.

// RawQuery is the raw parse tree for a whole statement: any number of
// clauses, each independently optional. An empty statement is valid and
// reduces to an all-default query.
type RawQuery struct {
	Pos     lexer.Position
	Clauses []*Clause `parser:"@@*"`
}

// Clause is the union of all top-level clause rules.
type Clause struct {
	Pos       lexer.Position
	Use       *UseClause       `parser:"@@"`
	Relevance *RelevanceClause `parser:"| @@"`
	From      *FromClause      `parser:"| @@"`
	Where     *WhereClause     `parser:"| @@"`
	GroupBy   *GroupByClause   `parser:"| @@"`
	OrderBy   *OrderByClause   `parser:"| @@"`
	Mine      *MineClause      `parser:"| @@"`
	With      *WithClause      `parser:"| @@"`
	Display   *DisplayClause   `parser:"| @@"`
}

// UseClause selects the logical database: USE DATABASE name.
type UseClause struct {
	Pos      lexer.Position
	Database string `parser:"'USE':Keyword 'DATABASE':Keyword @Ident"`
}

// RelevanceClause projects attributes: RELEVANCE TO a, b.c, *.
type RelevanceClause struct {
	Pos   lexer.Position
	Attrs []*Attribute `parser:"'RELEVANCE':Keyword 'TO':Keyword @@ ( ',' @@ )*"`
}

// Attribute is a projection or grouping target: bare identifier, qualified
// table.column, or the wildcard.
type Attribute struct {
	Star bool           `parser:"@'*'"`
	Name *QualifiedName `parser:"| @@"`
}

// Text returns the attribute as it appears in projections.
func (a *Attribute) Text() string {
	if a.Star {
		return "*"
	}
	return a.Name.Text()
}

// QualifiedName is an identifier with an optional table qualifier.
type QualifiedName struct {
	First  string  `parser:"@Ident"`
	Second *string `parser:"( '.' @Ident )?"`
}

// Text joins the parts back into "table.column" form.
func (q *QualifiedName) Text() string {
	if q.Second != nil {
		return q.First + "." + *q.Second
	}
	return q.First
}

// FromClause names source relations: FROM customers, orders.
type FromClause struct {
	Pos       lexer.Position
	Relations []*Relation `parser:"'FROM':Keyword @@ ( ',' @@ )*"`
}

// Relation is one FROM item. Only the leading identifier is the table name;
// aliases are accepted by the grammar and discarded by the reducer.
type Relation struct {
	Name  string  `parser:"@Ident"`
	Alias *string `parser:"( 'AS':Keyword? @Ident )?"`
}

// WhereClause filters rows: WHERE condition.
type WhereClause struct {
	Pos  lexer.Position
	Cond *OrCondition `parser:"'WHERE':Keyword @@"`
}

// OrCondition is a chain of OR-joined terms. The extractor folds chains into
// left-nested binary trees.
type OrCondition struct {
	First *AndCondition   `parser:"@@"`
	Rest  []*AndCondition `parser:"( 'OR':Keyword @@ )*"`
}

// AndCondition is a chain of AND-joined terms.
type AndCondition struct {
	First *NotCondition   `parser:"@@"`
	Rest  []*NotCondition `parser:"( 'AND':Keyword @@ )*"`
}

// NotCondition is an optionally negated primary condition. NOT nests.
type NotCondition struct {
	Not     *NotCondition     `parser:"'NOT':Keyword @@"`
	Primary *PrimaryCondition `parser:"| @@"`
}

// PrimaryCondition is a parenthesized sub-tree or a predicate. Parentheses
// are transparent: the extractor unwraps them without emitting a node.
type PrimaryCondition struct {
	Paren     *OrCondition `parser:"'(' @@ ')'"`
	Predicate *Predicate   `parser:"| @@"`
}

// Predicate is an expression followed by one condition tail. A bare
// expression with no tail is tolerated and degrades to a best-effort
// comparison in the extractor.
type Predicate struct {
	Left    *Operand     `parser:"@@"`
	Between *BetweenTail `parser:"( @@"`
	Like    *LikeTail    `parser:"| @@"`
	Null    *IsNullTail  `parser:"| @@"`
	In      *InTail      `parser:"| @@"`
	Cmp     *CompareTail `parser:"| @@ )?"`
}

// BetweenTail is the range form: BETWEEN low AND high.
type BetweenTail struct {
	Low  *Operand `parser:"'BETWEEN':Keyword @@"`
	High *Operand `parser:"'AND':Keyword @@"`
}

// LikeTail is the pattern form: LIKE 'pattern'.
type LikeTail struct {
	Pattern string `parser:"'LIKE':Keyword @String"`
}

// IsNullTail is the null test: IS [NOT] NULL.
type IsNullTail struct {
	Negated bool `parser:"'IS':Keyword @'NOT':Keyword? 'NULL':Keyword"`
}

// InTail is the membership form: IN (v1, v2, ...).
type InTail struct {
	Values []*Operand `parser:"'IN':Keyword '(' @@ ( ',' @@ )* ')'"`
}

// CompareTail is the comparison form: op operand.
type CompareTail struct {
	Op    string   `parser:"@Operator"`
	Right *Operand `parser:"@@"`
}

// Operand is a leaf expression: a typed literal or a (possibly qualified)
// identifier. Numeric captures keep their raw text so the left side of a
// comparison can be reported verbatim.
type Operand struct {
	Float *string        `parser:"@Float"`
	Int   *string        `parser:"| @Int"`
	Str   *string        `parser:"| @String"`
	Null  bool           `parser:"| @'NULL':Keyword"`
	Name  *QualifiedName `parser:"| @@"`
}

// Text reconstructs the operand's source form. Strings keep their quotes.
func (o *Operand) Text() string {
	switch {
	case o.Float != nil:
		return *o.Float
	case o.Int != nil:
		return *o.Int
	case o.Str != nil:
		return *o.Str
	case o.Null:
		return "NULL"
	case o.Name != nil:
		return o.Name.Text()
	}
	return ""
}

// GroupByClause groups rows: GROUP BY a, b.
type GroupByClause struct {
	Pos   lexer.Position
	Attrs []*Attribute `parser:"'GROUP':Keyword 'BY':Keyword @@ ( ',' @@ )*"`
}

// OrderByClause sorts rows: ORDER BY col [ASC|DESC], ...
type OrderByClause struct {
	Pos   lexer.Position
	Items []*OrderEntry `parser:"'ORDER':Keyword 'BY':Keyword @@ ( ',' @@ )*"`
}

// OrderEntry is one ORDER BY item; direction defaults to ASC when absent.
type OrderEntry struct {
	Column    string  `parser:"@Ident"`
	Direction *string `parser:"@( 'ASC':Keyword | 'DESC':Keyword )?"`
}

// MineClause attaches a data-mining directive: MINE operation.
type MineClause struct {
	Pos lexer.Position
	Op  *MiningOpNode `parser:"'MINE':Keyword @@"`
}

// MiningOpNode is the union of mining operation rules.
type MiningOpNode struct {
	Cluster          *ClusterOp `parser:"@@"`
	Statistics       bool       `parser:"| @'STATISTICS':Keyword"`
	Anomalies        bool       `parser:"| @'ANOMALIES':Keyword"`
	AssociationRules bool       `parser:"| @'ASSOCIATION_RULES':Keyword"`
	Classification   *TargetOp  `parser:"| 'CLASSIFICATION':Keyword @@"`
	Regression       *TargetOp  `parser:"| 'REGRESSION':Keyword @@"`
}

// ClusterOp is the clustering form: CLUSTER K = n.
type ClusterOp struct {
	K string `parser:"'CLUSTER':Keyword 'K' '=' @Int"`
}

// TargetOp names a prediction target column.
type TargetOp struct {
	Target string `parser:"@Ident"`
}

// WithClause sets interest measures: WITH confidence = 0.8, support = 0.1.
type WithClause struct {
	Pos   lexer.Position
	Items []*MeasureItem `parser:"'WITH':Keyword @@ ( ',' @@ )*"`
}

// MeasureItem is one measure assignment. The value may be an integer or a
// float in source; measures are always floats in the AST.
type MeasureItem struct {
	Name  string `parser:"@Ident"`
	Value string `parser:"'=' @( Float | Int )"`
}

// DisplayClause selects a visualization hint: DISPLAY AS scatter_plot.
type DisplayClause struct {
	Pos  lexer.Position
	Type string `parser:"'DISPLAY':Keyword 'AS':Keyword @Ident"`
}

// unquote strips one layer of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'")) ||
			(strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)) {
			return s[1 : len(s)-1]
		}
	}
	return s
}
