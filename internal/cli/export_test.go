package cli

import (
	"archive/zip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const breezeTestMapping = `package mappings

mapping: breeze: {
	person: {
		source: "people.csv"
		fields: [
			{canonical: "Id", column: "breeze id", kind: "id"},
			{canonical: "FirstName", column: "first name", kind: "string"},
			{canonical: "LastName", column: "last name", kind: "string"},
			{canonical: "Gender", column: "gender", kind: "gender"},
		]
	}
	contribution: {
		source: "giving.csv"
		fields: [
			{canonical: "Id", column: "payment id", kind: "id"},
			{canonical: "PersonId", column: "person id", kind: "id"},
			{canonical: "Date", column: "date", kind: "date"},
			{canonical: "Fund", column: "fund name", kind: "string"},
			{canonical: "Amount", column: "amount", kind: "cents"},
		]
	}
	tag: {
		source: "tags.csv"
		fields: [
			{canonical: "Name", column: "tag name", kind: "string"},
			{canonical: "PersonId", column: "person id", kind: "id"},
			{canonical: "Role", column: "role", kind: "string"},
		]
	}
}
`

// setupBreezeExport lays out a complete breeze dataset, mappings and
// profile in a temp dir and returns the profile path and output dir.
func setupBreezeExport(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	mappings := filepath.Join(dir, "mappings")
	require.NoError(t, os.Mkdir(mappings, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(mappings, "breeze.cue"), []byte(breezeTestMapping), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "people.csv"), []byte(
		"Breeze ID,First Name,Last Name,Gender\n"+
			"42,Ann,Lee,Female\n"+
			"43,Bob,Lee,Male\n"+
			",Headerless,Row,\n",
	), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "giving.csv"), []byte(
		"Payment ID,Person ID,Date,Fund Name,Amount\n"+
			"200,42,2023-06-04,General,125.50\n"+
			"201,43,2023-06-04,Missions,10.00\n",
	), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tags.csv"), []byte(
		"Tag Name,Person ID,Role\n"+
			"Choir,42,Leader\n"+
			"Choir,43,\n",
	), 0o644))

	out := filepath.Join(dir, "out")
	profile := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(profile, []byte(
		"system: breeze\n"+
			"mappings: "+mappings+"\n"+
			"out: "+out+"\n"+
			"filename: church.slingshot\n"+
			"sources:\n"+
			"  people: "+filepath.Join(dir, "people.csv")+"\n"+
			"  giving: "+filepath.Join(dir, "giving.csv")+"\n"+
			"  tags: "+filepath.Join(dir, "tags.csv")+"\n",
	), 0o644))
	return profile, out
}

func TestExportEndToEnd(t *testing.T) {
	profile, out := setupBreezeExport(t)

	stdout, _, err := execute(t, "--format", "json", "export", profile)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   ExportResult `json:"data"`
		RunID  string       `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.RunID)

	require.Len(t, resp.Data.Phases, 4)
	for _, phase := range resp.Data.Phases {
		assert.Empty(t, phase.Error, "phase %s failed", phase.Phase)
	}

	assert.Equal(t, 2, resp.Data.Rows["person.csv"])
	assert.Equal(t, 2, resp.Data.Rows["financial-transaction.csv"])
	assert.Equal(t, 1, resp.Data.Rows["group.csv"])

	pkg := filepath.Join(out, "church.slingshot")
	assert.Equal(t, pkg, resp.Data.Package)
	assert.Contains(t, readPackageEntry(t, pkg, "person.csv"), "Ann")
	assert.Contains(t, readPackageEntry(t, pkg, "financial-batch.csv"), "Breeze 2023-06-04")
	assert.Contains(t, readPackageEntry(t, pkg, "groupmember.csv"), "Leader")
}

func TestExportSkippedRowsAreCounted(t *testing.T) {
	profile, _ := setupBreezeExport(t)

	stdout, _, err := execute(t, "--format", "json", "export", profile)
	require.NoError(t, err)

	var resp struct {
		Data ExportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	for _, phase := range resp.Data.Phases {
		if phase.Phase == "Individuals" {
			assert.Equal(t, 1, phase.Skipped, "the id-less row is skipped, not fatal")
		}
	}
}

func TestExportMissingProfile(t *testing.T) {
	out, _, err := execute(t, "export", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeProfile)
}

func TestExportUnknownSystem(t *testing.T) {
	dir := t.TempDir()
	mappings := filepath.Join(dir, "mappings")
	require.NoError(t, os.Mkdir(mappings, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(mappings, "m.cue"), []byte(
		"package mappings\n\nmapping: fellowshipone: {person: {fields: [{canonical: \"Id\", column: \"id\", kind: \"id\"}]}}\n",
	), 0o644))
	profile := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(profile, []byte(
		"system: fellowshipone\nmappings: "+mappings+"\n",
	), 0o644))

	out, _, err := execute(t, "export", profile)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeSystem)
}

func readPackageEntry(t *testing.T, pkg, name string) string {
	t.Helper()
	r, err := zip.OpenReader(pkg)
	require.NoError(t, err)
	defer r.Close()
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("entry %s not found in %s", name, pkg)
	return ""
}
