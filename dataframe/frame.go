package dataframe

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind is the semantic type of a column
type Kind uint8

const (
	StringKind Kind = iota
	IntKind
	FloatKind
	DateKind
)

func (k Kind) String() string {
	switch k {
	case StringKind:
		return "string"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case DateKind:
		return "date"
	}
	return "unknown"
}

// MarshalYAML renders the kind as its name
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Column describes one field of a Frame
type Column struct {
	// Name is the column name, matched case sensitively in queries
	Name string `yaml:"name"`
	// Kind is the semantic type shared by every value of the column
	Kind Kind `yaml:"type"`
}

// Record is one row of a Frame, values aligned with the frame columns
type Record []any

// Frame is an immutable in-memory tabular dataset with a fixed column
// schema. Records are kept sorted ascending by the first date column.
// Read-only after construction, safe for concurrent readers.
type Frame struct {
	columns []Column
	index   map[string]int
	records []Record
}

// New returns a new Frame after checking every record against the column
// schema. Records are sorted ascending by the first date column if one exists.
func New(columns []Column, records []Record) (*Frame, error) {
	index := make(map[string]int, len(columns))
	for idx, col := range columns {
		if _, found := index[col.Name]; found {
			return nil, fmt.Errorf("duplicate column %q", col.Name)
		}
		index[col.Name] = idx
	}
	for i, rec := range records {
		if len(rec) != len(columns) {
			return nil, fmt.Errorf("record %d has %d values, schema has %d columns", i, len(rec), len(columns))
		}
		for idx, col := range columns {
			if err := checkValue(col.Kind, rec[idx]); err != nil {
				return nil, fmt.Errorf("record %d column %q: %w", i, col.Name, err)
			}
		}
	}
	dateIdx := -1
	for idx, col := range columns {
		if col.Kind == DateKind {
			dateIdx = idx
			break
		}
	}
	sorted := make([]Record, len(records))
	copy(sorted, records)
	if dateIdx >= 0 {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i][dateIdx].(time.Time).Before(sorted[j][dateIdx].(time.Time))
		})
	}
	return &Frame{
		columns: columns,
		index:   index,
		records: sorted,
	}, nil
}

func checkValue(kind Kind, v any) error {
	switch kind {
	case StringKind:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("expect string, got %T", v)
		}
	case IntKind:
		if _, ok := v.(int); !ok {
			return fmt.Errorf("expect int, got %T", v)
		}
	case FloatKind:
		if _, ok := v.(float64); !ok {
			return fmt.Errorf("expect float64, got %T", v)
		}
	case DateKind:
		if _, ok := v.(time.Time); !ok {
			return fmt.Errorf("expect time.Time, got %T", v)
		}
	}
	return nil
}

// NumRows returns the number of records
func (f *Frame) NumRows() int {
	return len(f.records)
}

// Columns returns a copy of the column schema
func (f *Frame) Columns() []Column {
	cols := make([]Column, len(f.columns))
	copy(cols, f.columns)
	return cols
}

// ColumnNames returns the column names in schema order
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.columns))
	for idx, col := range f.columns {
		names[idx] = col.Name
	}
	return names
}

// ColumnIndex returns the position of the named column, case sensitively
func (f *Frame) ColumnIndex(name string) (int, bool) {
	idx, found := f.index[name]
	return idx, found
}

// Record returns the i-th record
func (f *Frame) Record(i int) Record {
	return f.records[i]
}

// Head returns up to n leading records
func (f *Frame) Head(n int) []Record {
	if n < 0 {
		n = 0
	}
	if n > len(f.records) {
		n = len(f.records)
	}
	return f.records[:n]
}

// formatCell renders a single cell value
func formatCell(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case time.Time:
		return value.Format(time.DateOnly)
	}
	return fmt.Sprint(v)
}

// Markdown renders up to n leading records as a markdown table
func (f *Frame) Markdown(n int) string {
	var sb strings.Builder
	sb.WriteString("| ")
	sb.WriteString(strings.Join(f.ColumnNames(), " | "))
	sb.WriteString(" |\n|")
	for range f.columns {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	for _, rec := range f.Head(n) {
		cells := make([]string, len(rec))
		for idx, v := range rec {
			cells[idx] = formatCell(v)
		}
		sb.WriteString("| ")
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString(" |\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
