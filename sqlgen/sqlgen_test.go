package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmql/dmql-go/ast"
	"github.com/dmql/dmql-go/parsing"
)

type fakeResolver map[string]bool

func (f fakeResolver) TableExists(name string) bool { return f[name] }

func TestTranslate_SelectAll(t *testing.T) {
	q := parsing.Parse("FROM customers")
	require.False(t, q.HasErrors())

	sql := Translate(q, fakeResolver{"customers": true})
	assert.Equal(t, "SELECT * FROM customers", sql)
}

func TestTranslate_PrefixedTableWins(t *testing.T) {
	q := parsing.Parse("USE DATABASE sales FROM customers")
	require.False(t, q.HasErrors())

	resolver := fakeResolver{"sales__customers": true, "customers": true}
	sql := Translate(q, resolver)
	assert.Equal(t, "SELECT * FROM sales__customers", sql)
}

func TestTranslate_FallsBackToBareTable(t *testing.T) {
	q := parsing.Parse("USE DATABASE sales FROM customers")

	sql := Translate(q, fakeResolver{"customers": true})
	assert.Equal(t, "SELECT * FROM customers", sql)
}

func TestTranslate_UnresolvedTablePassesThrough(t *testing.T) {
	q := parsing.Parse("USE DATABASE sales FROM ghosts")

	sql := Translate(q, fakeResolver{})
	assert.Equal(t, "SELECT * FROM ghosts", sql)
}

func TestTranslate_FullClauses(t *testing.T) {
	q := parsing.Parse(`RELEVANCE TO region, amount
FROM orders
WHERE amount > 100
GROUP BY region
ORDER BY amount DESC, region`)
	require.False(t, q.HasErrors(), "errors: %v", q.Errors)

	sql := Translate(q, fakeResolver{"orders": true})
	assert.Equal(t,
		"SELECT region, amount FROM orders WHERE amount > 100 GROUP BY region ORDER BY amount DESC, region ASC",
		sql)
}

func TestTranslate_ConditionRendering(t *testing.T) {
	tests := []struct {
		name  string
		where string
		want  string
	}{
		{
			name:  "logical pair is parenthesized",
			where: "age > 25 AND city = 'Mumbai'",
			want:  "(age > 25 AND city = 'Mumbai')",
		},
		{
			name:  "string right side is quoted",
			where: "city = 'Delhi'",
			want:  "city = 'Delhi'",
		},
		{
			name:  "numeric right side is bare",
			where: "score >= 8.5",
			want:  "score >= 8.5",
		},
		{
			name:  "not wraps in parens",
			where: "NOT active = 1",
			want:  "NOT (active = 1)",
		},
		{
			name:  "between",
			where: "age BETWEEN 18 AND 65",
			want:  "age BETWEEN 18 AND 65",
		},
		{
			name:  "like",
			where: "name LIKE 'A%'",
			want:  "name LIKE 'A%'",
		},
		{
			name:  "is null",
			where: "email IS NULL",
			want:  "email IS NULL",
		},
		{
			name:  "is not null",
			where: "email IS NOT NULL",
			want:  "email IS NOT NULL",
		},
		{
			name:  "in list",
			where: "region IN ('north', 'south')",
			want:  "region IN ('north', 'south')",
		},
		{
			name:  "nested logical chain",
			where: "a = 1 AND b = 2 OR c = 3",
			want:  "((a = 1 AND b = 2) OR c = 3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := parsing.Parse("FROM t WHERE " + tt.where)
			require.False(t, q.HasErrors(), "errors: %v", q.Errors)

			sql := Translate(q, fakeResolver{"t": true})
			assert.Equal(t, "SELECT * FROM t WHERE "+tt.want, sql)
		})
	}
}

func TestTranslate_NoWhereNoGroupNoOrder(t *testing.T) {
	q := parsing.Parse("USE DATABASE sales FROM customers, orders")
	require.False(t, q.HasErrors())

	resolver := fakeResolver{"sales__customers": true}
	sql := Translate(q, resolver)
	assert.Equal(t, "SELECT * FROM sales__customers, orders", sql)
}

func TestResolveTable(t *testing.T) {
	resolver := fakeResolver{"db__t": true, "t": true}

	assert.Equal(t, "db__t", ResolveTable("db", "t", resolver))
	assert.Equal(t, "t", ResolveTable("", "t", resolver))
	assert.Equal(t, "u", ResolveTable("db", "u", resolver))
}

func TestResolverFunc(t *testing.T) {
	r := ResolverFunc(func(name string) bool { return name == "yes" })

	assert.True(t, r.TableExists("yes"))
	assert.False(t, r.TableExists("no"))
}

func TestTranslate_ManualQuery(t *testing.T) {
	q := &ast.Query{
		Tables:  []string{"t"},
		Columns: []string{"a", "b"},
		Conditions: ast.In{
			Expr:   "a",
			Values: []ast.Literal{ast.IntLit(1), ast.NullLit{}},
		},
	}

	sql := Translate(q, nil)
	assert.Equal(t, "SELECT a, b FROM t WHERE a IN (1, NULL)", sql)
}
