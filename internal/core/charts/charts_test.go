package charts

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agenthands/discourse/internal/data"
)

func mustTable(t *testing.T, columns []string, rows ...[]string) *data.Table {
	t.Helper()
	tbl, err := data.NewTable(columns, rows)
	require.NoError(t, err)
	return tbl
}
