package parsing

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/dmql/dmql-go/ast"
)

// queryBuilder accumulates clause reductions during one parse and is
// finalized into an immutable ast.Query. The builder never escapes the parse
// call, so no partially-constructed query is observable.
type queryBuilder struct {
	database    string
	tables      []string
	columns     []string
	conditions  ast.Condition
	groupBy     []string
	orderBy     []ast.OrderItem
	miningOp    *ast.MiningOperation
	measures    *ast.InterestMeasure
	displayType string
	raw         string
}

func newQueryBuilder(raw string) *queryBuilder {
	return &queryBuilder{raw: raw}
}

// reduce dispatches one parsed clause to its reduction function.
func (b *queryBuilder) reduce(c *Clause) {
	switch {
	case c.Use != nil:
		b.reduceUse(c.Use)
	case c.Relevance != nil:
		b.reduceRelevance(c.Relevance)
	case c.From != nil:
		b.reduceFrom(c.From)
	case c.Where != nil:
		b.reduceWhere(c.Where)
	case c.GroupBy != nil:
		b.reduceGroupBy(c.GroupBy)
	case c.OrderBy != nil:
		b.reduceOrderBy(c.OrderBy)
	case c.Mine != nil:
		b.reduceMine(c.Mine)
	case c.With != nil:
		b.reduceWith(c.With)
	case c.Display != nil:
		b.reduceDisplay(c.Display)
	}
}

func (b *queryBuilder) reduceUse(c *UseClause) {
	b.database = c.Database
}

func (b *queryBuilder) reduceRelevance(c *RelevanceClause) {
	for _, attr := range c.Attrs {
		b.columns = append(b.columns, attr.Text())
	}
}

func (b *queryBuilder) reduceFrom(c *FromClause) {
	for _, rel := range c.Relations {
		b.tables = append(b.tables, rel.Name)
	}
}

func (b *queryBuilder) reduceWhere(c *WhereClause) {
	b.conditions = extractCondition(c.Cond)
}

// reduceWhereFallback installs a raw-text comparison for a WHERE clause the
// grammar could not parse. The syntax error is still recorded by the caller;
// this only preserves the best-effort contract.
func (b *queryBuilder) reduceWhereFallback(tokens []lexer.Token) {
	if b.conditions != nil || len(tokens) == 0 {
		return
	}
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.Value
	}
	raw := strings.Join(parts, " ")
	b.conditions = ast.Comparison{Left: raw, Operator: ast.OpEq, Right: ast.StringLit(raw)}
}

func (b *queryBuilder) reduceGroupBy(c *GroupByClause) {
	for _, attr := range c.Attrs {
		b.groupBy = append(b.groupBy, attr.Text())
	}
}

func (b *queryBuilder) reduceOrderBy(c *OrderByClause) {
	for _, item := range c.Items {
		direction := ast.SortAsc
		if item.Direction != nil && strings.EqualFold(*item.Direction, "DESC") {
			direction = ast.SortDesc
		}
		b.orderBy = append(b.orderBy, ast.OrderItem{Column: item.Column, Direction: direction})
	}
}

func (b *queryBuilder) reduceMine(c *MineClause) {
	op := c.Op
	switch {
	case op.Cluster != nil:
		k, err := strconv.Atoi(op.Cluster.K)
		if err != nil {
			k = 0
		}
		b.miningOp = &ast.MiningOperation{
			Type:       ast.OpCluster,
			Parameters: map[string]any{"k": k},
		}
	case op.Statistics:
		b.miningOp = &ast.MiningOperation{Type: ast.OpStatistics, Parameters: map[string]any{}}
	case op.Anomalies:
		b.miningOp = &ast.MiningOperation{Type: ast.OpAnomalies, Parameters: map[string]any{}}
	case op.AssociationRules:
		b.miningOp = &ast.MiningOperation{Type: ast.OpAssociationRules, Parameters: map[string]any{}}
	case op.Classification != nil:
		b.miningOp = &ast.MiningOperation{
			Type:       ast.OpClassification,
			Parameters: map[string]any{"target": op.Classification.Target},
		}
	case op.Regression != nil:
		b.miningOp = &ast.MiningOperation{
			Type:       ast.OpRegression,
			Parameters: map[string]any{"target": op.Regression.Target},
		}
	default:
		b.miningOp = &ast.MiningOperation{Type: ast.OpUnknown, Parameters: map[string]any{}}
	}
}

func (b *queryBuilder) reduceWith(c *WithClause) {
	if b.measures == nil {
		b.measures = &ast.InterestMeasure{}
	}
	for _, item := range c.Items {
		value, err := strconv.ParseFloat(item.Value, 64)
		if err != nil {
			continue
		}
		v := value
		switch strings.ToLower(item.Name) {
		case "confidence_level":
			b.measures.ConfidenceLevel = &v
		case "confidence":
			b.measures.Confidence = &v
		case "support":
			b.measures.Support = &v
		case "lift":
			b.measures.Lift = &v
		case "threshold":
			b.measures.Threshold = &v
		}
	}
}

func (b *queryBuilder) reduceDisplay(c *DisplayClause) {
	b.displayType = strings.ToLower(c.Type)
}

// finalize seals the builder into the immutable query value.
func (b *queryBuilder) finalize(errs []string) *ast.Query {
	displayType := b.displayType
	if displayType == "" {
		displayType = "table"
	}
	return &ast.Query{
		Database:         b.database,
		Tables:           b.tables,
		Columns:          b.columns,
		Conditions:       b.conditions,
		GroupBy:          b.groupBy,
		OrderBy:          b.orderBy,
		MiningOp:         b.miningOp,
		InterestMeasures: b.measures,
		DisplayType:      displayType,
		RawQuery:         b.raw,
		Errors:           errs,
	}
}
