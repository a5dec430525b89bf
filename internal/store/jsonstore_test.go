package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diamondstats/baseball-mcp/internal/table"
)

func TestTableRoundTrip(t *testing.T) {
	st := NewJSONStore(t.TempDir())
	tbl := table.New(
		table.Column{Name: "Name", Kind: table.KindString},
		table.Column{Name: "HR", Kind: table.KindInt},
		table.Column{Name: "AVG", Kind: table.KindFloat},
	)
	require.NoError(t, tbl.Append("Aaron Judge", 58, 0.322))
	require.NoError(t, tbl.Append("Juan Soto", 41, nil))

	require.NoError(t, st.WriteTable(BattingKey(2024), tbl, true))
	assert.True(t, st.Exists("batting/2024.json"))

	got, err := st.ReadTable(BattingKey(2024))
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns, got.Columns)
	assert.Equal(t, []any{"Aaron Judge", int64(58), 0.322}, got.Rows[0])
	assert.Nil(t, got.Rows[1][2])
}

func TestReadTable_Missing(t *testing.T) {
	st := NewJSONStore(t.TempDir())
	_, err := st.ReadTable(PitchingKey(1999))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadTable_Corrupt(t *testing.T) {
	st := NewJSONStore(t.TempDir())
	require.NoError(t, st.WriteRaw(RegisterKey, []byte("{not json"), false))
	_, err := st.ReadTable(RegisterKey)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode people/register.json")
}

func TestWriteRaw_Pretty(t *testing.T) {
	st := NewJSONStore(t.TempDir())
	require.NoError(t, st.WriteRaw("x/y.json", []byte(`{"a":1}`), true))
	b, err := os.ReadFile(filepath.Join(st.Root, "x", "y.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", string(b))
}

func TestList(t *testing.T) {
	st := NewJSONStore(t.TempDir())
	for _, k := range []string{BattingKey(2024), BattingKey(2023), StatcastBatterKey(545361, "2020-03-01", "2020-11-30")} {
		require.NoError(t, st.WriteTable(k, table.New(), false))
	}

	got, err := st.List("batting/*.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"batting/2023.json", "batting/2024.json"}, got)

	got, err = st.List("statcast/batter/*/*.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"statcast/batter/545361/2020-03-01_2020-11-30.json"}, got)
	assert.Equal(t, "statcast", Kind(got[0]))
}
