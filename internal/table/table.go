// Package table holds the tabular records returned by a statistics source.
//
// A Table is an ordered set of typed columns and rows of cells. Cells are
// string, int64, float64 or nil (missing). Numeric kinds are inferred when a
// table is built from untyped records.
package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
)

type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

type Table struct {
	Columns []Column `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func New(cols ...Column) *Table {
	return &Table{Columns: cols, Rows: [][]any{}}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *Table) Empty() bool { return t.Len() == 0 }

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (t *Table) Has(name string) bool { return t.Index(name) >= 0 }

func (t *Table) Names() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Append adds a row. Cells are coerced to the column kinds.
func (t *Table) Append(cells ...any) error {
	if len(cells) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.Columns))
	}
	row := make([]any, len(cells))
	for i, v := range cells {
		row[i] = coerce(v, t.Columns[i].Kind)
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Value returns the cell at row i in the named column, or nil.
func (t *Table) Value(i int, col string) any {
	j := t.Index(col)
	if j < 0 || i < 0 || i >= len(t.Rows) {
		return nil
	}
	return t.Rows[i][j]
}

// Float returns a numeric cell as float64. ok is false for missing or
// non-numeric cells.
func (t *Table) Float(i int, col string) (float64, bool) {
	return AsFloat(t.Value(i, col))
}

// Text returns the display form of a cell; missing cells are "".
func (t *Table) Text(i int, col string) string {
	return FormatCell(t.Value(i, col))
}

// IsNumeric reports whether the column holds numbers.
func (c Column) IsNumeric() bool {
	return c.Kind == KindInt || c.Kind == KindFloat
}

// NumericColumns lists numeric column names in column order.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, c := range t.Columns {
		if c.IsNumeric() {
			out = append(out, c.Name)
		}
	}
	return out
}

// Filter returns a new table with the rows keep accepts. Rows are copied, so
// the result can be modified without touching t.
func (t *Table) Filter(keep func(i int) bool) *Table {
	out := &Table{Columns: append([]Column(nil), t.Columns...), Rows: [][]any{}}
	for i, r := range t.Rows {
		if keep(i) {
			out.Rows = append(out.Rows, append([]any(nil), r...))
		}
	}
	return out
}

// Head returns a copy of the first n rows.
func (t *Table) Head(n int) *Table {
	n = max(0, min(n, len(t.Rows)))
	return t.Filter(func(i int) bool { return i < n })
}

// Select returns a table holding the named columns, in the order given.
// Names the table lacks are skipped.
func (t *Table) Select(names ...string) *Table {
	var idx []int
	out := &Table{}
	for _, n := range names {
		if j := t.Index(n); j >= 0 {
			idx = append(idx, j)
			out.Columns = append(out.Columns, t.Columns[j])
		}
	}
	out.Rows = make([][]any, len(t.Rows))
	for i, r := range t.Rows {
		row := make([]any, len(idx))
		for k, j := range idx {
			row[k] = r[j]
		}
		out.Rows[i] = row
	}
	return out
}

// MapColumn rewrites the cells of a string column in place.
func (t *Table) MapColumn(name string, fn func(string) string) {
	j := t.Index(name)
	if j < 0 || t.Columns[j].Kind != KindString {
		return
	}
	for _, r := range t.Rows {
		if s, ok := r[j].(string); ok {
			r[j] = fn(s)
		}
	}
}

// Row returns the cells of row i keyed by column name.
func (t *Table) Row(i int) map[string]any {
	out := make(map[string]any, len(t.Columns))
	for j, c := range t.Columns {
		out[c.Name] = t.Rows[i][j]
	}
	return out
}

// WithColumn returns a copy of t with an extra column appended.
func (t *Table) WithColumn(col Column, values []any) (*Table, error) {
	if len(values) != len(t.Rows) {
		return nil, fmt.Errorf("column %q has %d values, table has %d rows", col.Name, len(values), len(t.Rows))
	}
	out := &Table{Columns: append(append([]Column(nil), t.Columns...), col), Rows: make([][]any, len(t.Rows))}
	for i, r := range t.Rows {
		row := make([]any, 0, len(r)+1)
		row = append(row, r...)
		out.Rows[i] = append(row, coerce(values[i], col.Kind))
	}
	return out, nil
}

// Rename returns a copy of t with column names mapped through fn.
func (t *Table) Rename(fn func(string) string) *Table {
	cols := make([]Column, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = Column{Name: fn(c.Name), Kind: c.Kind}
	}
	return &Table{Columns: cols, Rows: t.Rows}
}

// FromRecords builds a table from untyped string records such as CSV rows,
// inferring each column's kind from its non-empty values.
func FromRecords(header []string, records [][]string) *Table {
	cols := make([]Column, len(header))
	for j, h := range header {
		values := make([]any, 0, len(records))
		for _, rec := range records {
			if j < len(rec) {
				values = append(values, rec[j])
			}
		}
		cols[j] = Column{Name: strings.TrimSpace(h), Kind: inferKind(values)}
	}
	t := &Table{Columns: cols, Rows: make([][]any, 0, len(records))}
	for _, rec := range records {
		row := make([]any, len(cols))
		for j := range cols {
			if j < len(rec) {
				row[j] = coerce(rec[j], cols[j].Kind)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// FromMaps builds a table from decoded JSON objects using the given column
// order. Objects should be decoded with json.Decoder.UseNumber so integer and
// float columns can be told apart.
func FromMaps(columns []string, records []map[string]any) *Table {
	cols := make([]Column, len(columns))
	for j, name := range columns {
		values := make([]any, 0, len(records))
		for _, rec := range records {
			values = append(values, rec[name])
		}
		cols[j] = Column{Name: name, Kind: inferKind(values)}
	}
	t := &Table{Columns: cols, Rows: make([][]any, 0, len(records))}
	for _, rec := range records {
		row := make([]any, len(cols))
		for j, c := range cols {
			row[j] = coerce(rec[c.Name], c.Kind)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func (t *Table) UnmarshalJSON(b []byte) error {
	var raw struct {
		Columns []Column `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	t.Columns = raw.Columns
	t.Rows = make([][]any, 0, len(raw.Rows))
	for i, r := range raw.Rows {
		if len(r) != len(raw.Columns) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(r), len(raw.Columns))
		}
		row := make([]any, len(r))
		for j, v := range r {
			row[j] = coerce(v, raw.Columns[j].Kind)
		}
		t.Rows = append(t.Rows, row)
	}
	return nil
}

func inferKind(values []any) Kind {
	kind := KindInt
	seen := false
	for _, v := range values {
		s, isNum := numericText(v)
		if s == "" {
			continue
		}
		seen = true
		if !isNum {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				return KindString
			}
		}
		if kind == KindInt {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				kind = KindFloat
			}
		}
	}
	if !seen {
		return KindString
	}
	return kind
}

// numericText returns the textual form of v and whether v was already a
// number.
func numericText(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(x)
		if isMissing(s) {
			return "", false
		}
		return s, false
	case json.Number:
		return x.String(), true
	case float64:
		if math.IsNaN(x) {
			return "", false
		}
		if x == math.Trunc(x) {
			return strconv.FormatInt(int64(x), 10), true
		}
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), false
	default:
		return fmt.Sprint(x), false
	}
}

func isMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "null", "nan", "na", "n/a", "none":
		return true
	}
	return false
}

func coerce(v any, kind Kind) any {
	switch kind {
	case KindInt:
		s, _ := numericText(v)
		if s == "" {
			return nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f)
		}
		return nil
	case KindFloat:
		s, _ := numericText(v)
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return nil
	default:
		switch x := v.(type) {
		case nil:
			return nil
		case string:
			return x
		case json.Number:
			return x.String()
		default:
			return fmt.Sprint(x)
		}
	}
}

// AsFloat converts a numeric cell to float64.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) {
			return 0, false
		}
		return x, true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

// FormatCell renders a cell for display. Floats use the shortest exact
// representation.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
