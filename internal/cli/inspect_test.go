package cli

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePackage(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.slingshot")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestInspectCountsRowsAndColumns(t *testing.T) {
	path := writePackage(t, map[string]string{
		"person.csv":    "id,firstname,lastname\n1,Ann,Lee\n2,Bob,Lee\n",
		"grouptype.csv": "id,name\n",
		"empty.csv":     "",
	})

	out, _, err := execute(t, "--format", "json", "inspect", path)
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   InspectResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Total)

	// Entries come back name-sorted regardless of zip order.
	require.Len(t, resp.Data.Entries, 3)
	assert.Equal(t, "empty.csv", resp.Data.Entries[0].Name)
	assert.Equal(t, InspectEntry{Name: "grouptype.csv", Rows: 0, Columns: 2}, resp.Data.Entries[1])
	assert.Equal(t, InspectEntry{Name: "person.csv", Rows: 2, Columns: 3}, resp.Data.Entries[2])
}

func TestInspectTextOutput(t *testing.T) {
	path := writePackage(t, map[string]string{
		"person.csv": "id,firstname\n1,Ann\n",
	})

	out, _, err := execute(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "person.csv")
	assert.Contains(t, out, "Total: 1 data rows in 1 files")
}

func TestInspectMissingPackage(t *testing.T) {
	out, _, err := execute(t, "inspect", filepath.Join(t.TempDir(), "nope.slingshot"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "I001")
}
