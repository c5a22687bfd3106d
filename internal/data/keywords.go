package data

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strconv"

	"github.com/parquet-go/parquet-go"
	"github.com/tidwall/gjson"
)

// KeywordMap maps each topic keyword to its own table, in the order the
// pipeline wrote them.
type KeywordMap struct {
	keys   []string
	tables map[string]*Table
}

func NewKeywordMap(keys []string, tables map[string]*Table) (*KeywordMap, error) {
	if len(keys) != len(tables) {
		return nil, fmt.Errorf("keyword map has %d keys but %d tables", len(keys), len(tables))
	}
	for _, k := range keys {
		if tables[k] == nil {
			return nil, fmt.Errorf("keyword %q has no table", k)
		}
	}
	return &KeywordMap{keys: keys, tables: tables}, nil
}

func (m *KeywordMap) Len() int { return len(m.keys) }

func (m *KeywordMap) Keywords() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *KeywordMap) Lookup(keyword string) (*Table, error) {
	t, ok := m.tables[keyword]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKeyword, keyword)
	}
	return t, nil
}

// ParseKeywordMap dispatches on the artifact extension.
func ParseKeywordMap(name string, b []byte) (*KeywordMap, error) {
	switch path.Ext(name) {
	case ".json":
		return ParseKeywordJSON(name, b)
	case ".parquet":
		return ParseKeywordParquet(name, b)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
}

// ParseKeywordJSON accepts a top-level object keyed by keyword whose values are
// either a list of records or an object of equally long column arrays.
func ParseKeywordJSON(name string, b []byte) (*KeywordMap, error) {
	if !gjson.ValidBytes(b) {
		return nil, &ParseError{Name: name, Err: errors.New("invalid JSON")}
	}
	root := gjson.ParseBytes(b)
	if !root.IsObject() {
		return nil, &ParseError{Name: name, Err: errors.New("top level must be an object keyed by keyword")}
	}

	var keys []string
	tables := make(map[string]*Table)
	var perr error
	root.ForEach(func(key, value gjson.Result) bool {
		kw := key.String()
		if _, dup := tables[kw]; dup {
			perr = fmt.Errorf("duplicate keyword %q", kw)
			return false
		}

		var t *Table
		var err error
		switch {
		case value.IsArray():
			t, err = recordsTable(value)
		case value.IsObject():
			t, err = columnsTable(value)
		default:
			err = errors.New("expected a list of records or an object of columns")
		}
		if err != nil {
			perr = fmt.Errorf("keyword %q: %w", kw, err)
			return false
		}
		keys = append(keys, kw)
		tables[kw] = t
		return true
	})
	if perr != nil {
		return nil, &ParseError{Name: name, Err: perr}
	}

	return NewKeywordMap(keys, tables)
}

func recordsTable(list gjson.Result) (*Table, error) {
	var columns []string
	seen := make(map[string]int)
	var records []map[string]string

	for i, rec := range list.Array() {
		if !rec.IsObject() {
			return nil, fmt.Errorf("record %d is not an object", i)
		}
		row := make(map[string]string)
		rec.ForEach(func(k, v gjson.Result) bool {
			col := k.String()
			if _, ok := seen[col]; !ok {
				seen[col] = len(columns)
				columns = append(columns, col)
			}
			row[col] = cellText(v)
			return true
		})
		records = append(records, row)
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = rec[col]
		}
		rows[i] = row
	}
	return NewTable(columns, rows)
}

func columnsTable(obj gjson.Result) (*Table, error) {
	var columns []string
	var values [][]gjson.Result
	n := -1
	var err error
	obj.ForEach(func(k, v gjson.Result) bool {
		if !v.IsArray() {
			err = fmt.Errorf("column %q is not an array", k.String())
			return false
		}
		arr := v.Array()
		if n >= 0 && len(arr) != n {
			err = fmt.Errorf("column %q has %d values, want %d", k.String(), len(arr), n)
			return false
		}
		n = len(arr)
		columns = append(columns, k.String())
		values = append(values, arr)
		return true
	})
	if err != nil {
		return nil, err
	}

	rows := make([][]string, max(n, 0))
	for i := range rows {
		row := make([]string, len(columns))
		for j := range columns {
			row[j] = cellText(values[j][i])
		}
		rows[i] = row
	}
	return NewTable(columns, rows)
}

func cellText(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Null:
		return ""
	default:
		return v.Raw
	}
}

type keywordEdgeRow struct {
	Keyword   string  `parquet:"keyword"`
	Agreement int64   `parquet:"agreement"`
	EdgeBet   float64 `parquet:"edge_bet"`
}

// ParseKeywordParquet reads long-format rows (keyword, agreement, edge_bet)
// and groups them by keyword in order of first appearance.
func ParseKeywordParquet(name string, b []byte) (*KeywordMap, error) {
	rows, err := parquet.Read[keywordEdgeRow](bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, &ParseError{Name: name, Err: err}
	}

	var keys []string
	grouped := make(map[string][][]string)
	for _, r := range rows {
		if _, ok := grouped[r.Keyword]; !ok {
			keys = append(keys, r.Keyword)
		}
		grouped[r.Keyword] = append(grouped[r.Keyword], []string{
			strconv.FormatInt(r.Agreement, 10),
			strconv.FormatFloat(r.EdgeBet, 'g', -1, 64),
		})
	}

	tables := make(map[string]*Table, len(keys))
	for _, k := range keys {
		t, err := NewTable([]string{"agreement", "edge_bet"}, grouped[k])
		if err != nil {
			return nil, &ParseError{Name: name, Err: err}
		}
		tables[k] = t
	}
	return NewKeywordMap(keys, tables)
}
