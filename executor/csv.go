package executor

import (
	"context"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/dmql/dmql-go/internal/debug"
)

// fs is the filesystem CSV files are read through. Tests swap in an
// afero.MemMapFs.
var fs afero.Fs = afero.NewOsFs()

// SetFs replaces the filesystem used for CSV ingestion.
func SetFs(f afero.Fs) {
	fs = f
}

// LoadCSV reads a CSV file into a table, replacing it if it exists. When
// database is non-empty the table is created under that logical database's
// prefix. Column affinities are inferred from the data: INTEGER, REAL, or
// TEXT.
func (e *Executor) LoadCSV(ctx context.Context, path, table, database string) (int, error) {
	f, err := fs.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return 0, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("csv %s has no header row", path)
	}

	header := records[0]
	data := records[1:]

	fullName := table
	if database != "" {
		fullName = database + "__" + table
	}

	types := inferColumnTypes(header, data)
	if err := e.createTable(ctx, fullName, header, types); err != nil {
		return 0, err
	}
	if err := e.insertRows(ctx, fullName, header, data, types); err != nil {
		return 0, err
	}

	debug.Debug("loaded csv", "path", path, "table", fullName, "rows", len(data))
	return len(data), nil
}

// RegisterDatabase loads every CSV file in a directory as a table of the
// named logical database, using the file's base name as the table name.
func (e *Executor) RegisterDatabase(ctx context.Context, database, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read database directory %s: %w", dir, err)
	}
	var tables []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		table := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if _, err := e.LoadCSV(ctx, filepath.Join(dir, entry.Name()), table, database); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func (e *Executor) createTable(ctx context.Context, table string, header, types []string) error {
	cols := make([]string, len(header))
	for i, name := range header {
		cols[i] = fmt.Sprintf("%q %s", name, types[i])
	}
	if _, err := e.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %q", table)); err != nil {
		return fmt.Errorf("drop table %s: %w", table, err)
	}
	stmt := fmt.Sprintf("CREATE TABLE %q (%s)", table, strings.Join(cols, ", "))
	if _, err := e.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}

func (e *Executor) insertRows(ctx context.Context, table string, header []string, data [][]string, types []string) error {
	placeholders := make([]string, len(header))
	for i := range placeholders {
		if e.provider == "postgres" {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		} else {
			placeholders[i] = "?"
		}
	}
	stmt, err := e.db.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %q VALUES (%s)", table, strings.Join(placeholders, ", ")))
	if err != nil {
		return fmt.Errorf("prepare insert into %s: %w", table, err)
	}
	defer stmt.Close()

	for _, record := range data {
		values := make([]any, len(header))
		for i := range header {
			cell := ""
			if i < len(record) {
				cell = record[i]
			}
			values[i] = convertCell(cell, types[i])
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}

// inferColumnTypes picks the narrowest affinity every value of a column fits:
// INTEGER, then REAL, then TEXT. Empty cells are NULLs and do not widen.
func inferColumnTypes(header []string, data [][]string) []string {
	types := make([]string, len(header))
	for col := range header {
		isInt, isReal, seen := true, true, false
		for _, record := range data {
			if col >= len(record) || record[col] == "" {
				continue
			}
			seen = true
			cell := record[col]
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				isInt = false
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				isReal = false
			}
		}
		switch {
		case seen && isInt:
			types[col] = "INTEGER"
		case seen && isReal:
			types[col] = "REAL"
		default:
			types[col] = "TEXT"
		}
	}
	return types
}

// convertCell parses a CSV cell according to its column affinity. Empty
// cells become NULL.
func convertCell(cell, typ string) any {
	if cell == "" {
		return nil
	}
	switch typ {
	case "INTEGER":
		if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
			return n
		}
	case "REAL":
		if f, err := strconv.ParseFloat(cell, 64); err == nil {
			return f
		}
	}
	return cell
}
