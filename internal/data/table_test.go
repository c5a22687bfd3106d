package data

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	in := "most_active_users,value\nalice,120\nbob,98.5\ncarol,\n"
	tbl, err := ParseCSV("most_actimel.csv", strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"most_active_users", "value"}, tbl.Columns())
	assert.True(t, tbl.HasColumn("value"))

	users, err := tbl.Strings("most_active_users")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, users)

	values, err := tbl.Floats("value")
	require.NoError(t, err)
	assert.Equal(t, 120.0, values[0])
	assert.Equal(t, 98.5, values[1])
	assert.True(t, math.IsNaN(values[2]))
}

func TestParseCSV_StripsBOM(t *testing.T) {
	tbl, err := ParseCSV("bom.csv", strings.NewReader("\ufefftop_keywords,top_occurrences\nvote,10\n"))
	require.NoError(t, err)
	assert.True(t, tbl.HasColumn("top_keywords"))
}

func TestParseCSV_Errors(t *testing.T) {
	_, err := ParseCSV("empty.csv", strings.NewReader(""))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "empty.csv", pe.Name)

	_, err = ParseCSV("ragged.csv", strings.NewReader("a,b\n1,2\n3\n"))
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Line)

	_, err = ParseCSV("dup.csv", strings.NewReader("a,a\n1,2\n"))
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, err.Error(), "duplicate column")
}

func TestTable_MissingColumn(t *testing.T) {
	tbl, err := NewTable([]string{"a"}, [][]string{{"1"}})
	require.NoError(t, err)

	_, err = tbl.Floats("edge_bet")
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "edge_bet")
}

func TestTable_Ints(t *testing.T) {
	tbl, err := NewTable([]string{"SourceModularity"}, [][]string{{"3"}, {"4.0"}, {" -1 "}})
	require.NoError(t, err)

	got, err := tbl.Ints("SourceModularity")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4, -1}, got)

	bad, err := NewTable([]string{"SourceModularity"}, [][]string{{"1"}, {"2.5"}})
	require.NoError(t, err)
	_, err = bad.Ints("SourceModularity")
	var ce *CellError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Row)
	assert.Equal(t, "2.5", ce.Value)
}

func TestTable_FloatsRejectsText(t *testing.T) {
	tbl, err := NewTable([]string{"value"}, [][]string{{"1"}, {"many"}})
	require.NoError(t, err)

	_, err = tbl.Floats("value")
	var ce *CellError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "value", ce.Column)
}
