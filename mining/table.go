package mining

import "strconv"

// Table is a materialized query result: named columns over row-major data.
// Mining operations treat it as immutable and return augmented copies.
type Table struct {
	Columns []string
	Rows    [][]any
}

// NewTable wraps a column list and row data.
func NewTable(columns []string, rows [][]any) *Table {
	return &Table{Columns: columns, Rows: rows}
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// WithColumn returns a copy of the table with one extra column appended.
// values must have one entry per row.
func (t *Table) WithColumn(name string, values []any) *Table {
	columns := append(append([]string{}, t.Columns...), name)
	rows := make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = append(append([]any{}, row...), values[i])
	}
	return &Table{Columns: columns, Rows: rows}
}

// NumericColumns extracts the columns in which every non-nil value is
// numeric, as parallel name and value slices. Nil cells become 0.
func (t *Table) NumericColumns() ([]string, [][]float64) {
	var names []string
	var data [][]float64
	for col, name := range t.Columns {
		values := make([]float64, len(t.Rows))
		numeric := true
		seen := false
		for i, row := range t.Rows {
			if col >= len(row) || row[col] == nil {
				continue
			}
			f, ok := toFloat(row[col])
			if !ok {
				numeric = false
				break
			}
			values[i] = f
			seen = true
		}
		if numeric && seen {
			names = append(names, name)
			data = append(data, values)
		}
	}
	return names, data
}

// CategoricalColumns returns the names of columns that are not numeric.
func (t *Table) CategoricalColumns() []string {
	numeric, _ := t.NumericColumns()
	isNumeric := make(map[string]bool, len(numeric))
	for _, name := range numeric {
		isNumeric[name] = true
	}
	var names []string
	for _, name := range t.Columns {
		if !isNumeric[name] {
			names = append(names, name)
		}
	}
	return names
}

// Column returns the values of a named column, or nil if absent.
func (t *Table) Column(name string) []any {
	for col, colName := range t.Columns {
		if colName != name {
			continue
		}
		values := make([]any, len(t.Rows))
		for i, row := range t.Rows {
			if col < len(row) {
				values[i] = row[col]
			}
		}
		return values
	}
	return nil
}

// toFloat converts database cell values to float64. Numeric strings count:
// drivers without type information return TEXT for everything.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
