// Package executor runs DMQL queries against a SQL engine. One physical
// engine hosts many logical databases through the "db__table" name prefix.
package executor

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmql/dmql-go/ast"
	"github.com/dmql/dmql-go/internal/debug"
	"github.com/dmql/dmql-go/sqlgen"
)

// Executor owns a database connection and translates + runs DMQL queries.
// It satisfies sqlgen.TableResolver.
type Executor struct {
	db       *sql.DB
	provider string
}

// Result holds the rows of a successful statement.
type Result struct {
	Columns []string
	Rows    [][]any
}

// ExecutionResult is the full outcome of running a DMQL query. Downstream
// failures are carried as values; execution never panics.
type ExecutionResult struct {
	Success  bool
	Columns  []string
	Rows     [][]any
	SQL      string
	RowCount int
	Err      string
}

// Open connects to a database. Provider selects the driver: "sqlite3"
// (default), "mysql", or "postgres". Drivers must be imported by the caller.
func Open(provider, dsn string) (*Executor, error) {
	if provider == "" {
		provider = "sqlite3"
	}
	switch provider {
	case "sqlite3", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
	db, err := sql.Open(provider, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", provider, err)
	}
	return &Executor{db: db, provider: provider}, nil
}

// OpenMemory opens an in-memory sqlite database.
func OpenMemory() (*Executor, error) {
	return Open("sqlite3", ":memory:")
}

// Close releases the underlying connection.
func (e *Executor) Close() error {
	return e.db.Close()
}

// DB exposes the underlying connection for callers that need raw access.
func (e *Executor) DB() *sql.DB {
	return e.db
}

// TableExists reports whether a table is present in the engine's catalog.
func (e *Executor) TableExists(name string) bool {
	var query string
	switch e.provider {
	case "sqlite3":
		query = "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?"
	case "mysql":
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?"
	case "postgres":
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1"
	default:
		return false
	}
	var found string
	err := e.db.QueryRow(query, name).Scan(&found)
	return err == nil
}

// ExecuteQuery translates a DMQL query and runs it. The generated SQL is
// always reported, whether or not execution succeeded.
func (e *Executor) ExecuteQuery(ctx context.Context, q *ast.Query) *ExecutionResult {
	sqlText := sqlgen.Translate(q, e)
	result, err := e.Run(ctx, sqlText)
	if err != nil {
		return &ExecutionResult{SQL: sqlText, Err: err.Error()}
	}
	return &ExecutionResult{
		Success:  true,
		Columns:  result.Columns,
		Rows:     result.Rows,
		SQL:      sqlText,
		RowCount: len(result.Rows),
	}
}

// Run executes a SQL statement and materializes all rows.
func (e *Executor) Run(ctx context.Context, sqlText string) (*Result, error) {
	debug.Debug("executing sql", "sql", sqlText)

	rows, err := e.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	result := &Result{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range values {
			// sqlite hands TEXT back as []byte; normalize for display.
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return result, nil
}

// ListTables returns the table names in the engine, filtered to one logical
// database when database is non-empty.
func (e *Executor) ListTables(ctx context.Context, database string) ([]string, error) {
	var query string
	switch e.provider {
	case "sqlite3":
		query = "SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name"
	case "mysql":
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() ORDER BY table_name"
	case "postgres":
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() ORDER BY table_name"
	default:
		return nil, fmt.Errorf("unsupported provider %q", e.provider)
	}

	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	prefix := ""
	if database != "" {
		prefix = database + "__"
	}
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		if prefix != "" {
			if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
				continue
			}
			name = name[len(prefix):]
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// RowCount returns the number of rows in a table.
func (e *Executor) RowCount(ctx context.Context, table string) (int, error) {
	var count int
	err := e.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count rows in %s: %w", table, err)
	}
	return count, nil
}

// ColumnInfo describes one column of a table.
type ColumnInfo struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

// TableInfo returns the column layout of a sqlite table.
func (e *Executor) TableInfo(ctx context.Context, table string) ([]ColumnInfo, error) {
	if e.provider != "sqlite3" {
		return nil, fmt.Errorf("table info is only available for sqlite, not %s", e.provider)
	}
	rows, err := e.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("table info for %s: %w", table, err)
	}
	defer rows.Close()

	var columns []ColumnInfo
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, typ        string
			dflt             any
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan column info: %w", err)
		}
		columns = append(columns, ColumnInfo{
			Name:       name,
			Type:       typ,
			NotNull:    notNull != 0,
			PrimaryKey: pk != 0,
		})
	}
	return columns, rows.Err()
}
