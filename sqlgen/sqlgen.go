// Package sqlgen translates parsed DMQL queries into SQL.
package sqlgen

import (
	"strings"

	"github.com/dmql/dmql-go/ast"
	"github.com/dmql/dmql-go/internal/debug"
)

// TableResolver answers table-existence probes during translation. The
// executor's catalog satisfies it; tests use a map-backed fake.
type TableResolver interface {
	TableExists(name string) bool
}

// ResolverFunc adapts a function to the TableResolver interface.
type ResolverFunc func(name string) bool

func (f ResolverFunc) TableExists(name string) bool { return f(name) }

// Translate builds the SQL SELECT statement for a query. Translation never
// fails: unresolved tables pass through unchanged and error at execution.
func Translate(q *ast.Query, resolver TableResolver) string {
	var parts []string

	columns := "*"
	if len(q.Columns) > 0 {
		columns = strings.Join(q.Columns, ", ")
	}
	parts = append(parts, "SELECT "+columns)

	tables := make([]string, len(q.Tables))
	for i, table := range q.Tables {
		tables[i] = ResolveTable(q.Database, table, resolver)
	}
	parts = append(parts, "FROM "+strings.Join(tables, ", "))

	if q.Conditions != nil {
		parts = append(parts, "WHERE "+conditionSQL(q.Conditions))
	}

	if len(q.GroupBy) > 0 {
		parts = append(parts, "GROUP BY "+strings.Join(q.GroupBy, ", "))
	}

	if len(q.OrderBy) > 0 {
		orderParts := make([]string, len(q.OrderBy))
		for i, item := range q.OrderBy {
			orderParts[i] = item.Column + " " + item.Direction
		}
		parts = append(parts, "ORDER BY "+strings.Join(orderParts, ", "))
	}

	sql := strings.Join(parts, " ")
	debug.Debug("translated query", "sql", sql)
	return sql
}

// ResolveTable maps a logical table reference onto a physical table name.
// The prefixed form wins over the bare form whenever both exist, so the
// outcome is deterministic; a name that resolves to neither passes through.
func ResolveTable(database, table string, resolver TableResolver) string {
	if database != "" && resolver != nil {
		prefixed := database + "__" + table
		if resolver.TableExists(prefixed) {
			return prefixed
		}
	}
	return table
}
