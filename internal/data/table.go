package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Table is an ordered set of named columns loaded verbatim from an artifact.
// Cells are kept as text and converted on access. A Table is never mutated
// after construction.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable copies nothing; callers hand over ownership of rows.
func NewTable(columns []string, rows [][]string) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		index[c] = i
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d fields, want %d", i, len(r), len(columns))
		}
	}
	return &Table{columns: columns, index: index, rows: rows}, nil
}

// ParseCSV reads a header row followed by records of the same width.
func ParseCSV(name string, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseError{Name: name, Err: errors.New("empty file")}
	}
	if err != nil {
		return nil, csvError(name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(name, err)
		}
		rows = append(rows, record)
	}

	t, err := NewTable(header, rows)
	if err != nil {
		return nil, &ParseError{Name: name, Err: err}
	}
	return t, nil
}

func csvError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Name: name, Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Name: name, Err: err}
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t *Table) column(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q (have %s)", ErrMissingColumn, name, strings.Join(t.columns, ", "))
	}
	return i, nil
}

func (t *Table) Strings(name string) ([]string, error) {
	c, err := t.column(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[c]
	}
	return out, nil
}

// Floats parses a column as float64. Empty cells become NaN, as a dataframe
// would read them.
func (t *Table) Floats(name string) ([]float64, error) {
	c, err := t.column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(t.rows))
	for i, r := range t.rows {
		v := strings.TrimSpace(r[c])
		if v == "" {
			out[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, &CellError{Column: name, Row: i, Value: r[c], Err: err}
		}
		out[i] = f
	}
	return out, nil
}

// Ints parses a column of integral values; "3.0" is accepted.
func (t *Table) Ints(name string) ([]int64, error) {
	c, err := t.column(name)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(t.rows))
	for i, r := range t.rows {
		v := strings.TrimSpace(r[c])
		n, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			out[i] = n
			continue
		}
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			return nil, &CellError{Column: name, Row: i, Value: r[c], Err: err}
		}
		out[i] = int64(f)
	}
	return out, nil
}
