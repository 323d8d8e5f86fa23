// Package dmql provides the main API for working with the DMQL data-mining
// query language: parsing, validation, and SQL translation.
package dmql

import (
	"github.com/dmql/dmql-go/ast"
	"github.com/dmql/dmql-go/diagnostics"
	"github.com/dmql/dmql-go/parsing"
	"github.com/dmql/dmql-go/sqlgen"
)

// Re-export key types for convenience
type (
	Query           = ast.Query
	Condition       = ast.Condition
	MiningOperation = ast.MiningOperation
	InterestMeasure = ast.InterestMeasure
	Diagnostics     = diagnostics.Diagnostics
	TableResolver   = sqlgen.TableResolver
	ResolverFunc    = sqlgen.ResolverFunc
)

// Parse parses a DMQL statement into a query. Parsing never fails: syntax
// errors are collected on the query's Errors list and a best-effort query is
// always returned.
func Parse(input string) *ast.Query {
	return parsing.Parse(input)
}

// ParseWithDiagnostics parses a DMQL statement and additionally returns the
// positioned diagnostics for pretty terminal output.
func ParseWithDiagnostics(input string) (*ast.Query, *diagnostics.Diagnostics) {
	return parsing.ParseQuery(input)
}

// Validate parses a DMQL statement and reports whether it is syntactically
// valid, along with any error messages.
func Validate(input string) (bool, []string) {
	q := parsing.Parse(input)
	return !q.HasErrors(), q.Errors
}

// Translate builds the SQL for a parsed query. See sqlgen.Translate for
// table-resolution rules.
func Translate(q *ast.Query, resolver sqlgen.TableResolver) string {
	return sqlgen.Translate(q, resolver)
}
