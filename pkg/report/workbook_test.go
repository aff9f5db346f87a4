package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/user/nessusparse/pkg/engine"
)

var wantHeader = []string{"Severity", "Summary", "IP/Hostname", "CVE", "Port", "Operating System"}

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWriteOneSheetPerNonEmptyBucket(t *testing.T) {
	b := engine.NewBuckets()
	b.Add(engine.Finding{Severity: engine.Moderate, Title: "m1", Host: "10.0.0.1", CVE: "CVE-2020-1", Port: "80", OS: "Linux"})
	b.Add(engine.Finding{Severity: engine.Critical, Title: "c1", Host: "10.0.0.2", CVE: engine.NoCVE, Port: "443", OS: engine.UnknownOS})
	b.Add(engine.Finding{Severity: engine.Low, Title: "l1", Host: "host-a", CVE: engine.NoCVE, Port: "general", OS: "Windows"})
	b.Add(engine.Finding{Severity: engine.Moderate, Title: "m2", Host: "10.0.0.3", CVE: engine.NoCVE, Port: "22", OS: "Linux"})

	path := filepath.Join(t.TempDir(), "out.xlsx")
	res, err := Write(b, path, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Critical", "Moderate", "Low"}, res.Sheets)
	assert.Equal(t, 4, res.Rows)

	f := openWorkbook(t, path)
	assert.Equal(t, []string{"Critical", "Moderate", "Low"}, f.GetSheetList())

	tabs := make(map[string]string)
	for _, sheet := range f.GetSheetList() {
		props, err := f.GetSheetProps(sheet)
		require.NoError(t, err)
		require.NotNil(t, props.TabColorRGB, "sheet %s has no tab color", sheet)
		tabs[sheet] = *props.TabColorRGB
	}
	assert.Equal(t, "FFC00000", tabs["Critical"])
	assert.Equal(t, "FFFFC000", tabs["Moderate"])
	assert.Equal(t, "FF70AD47", tabs["Low"])

	rows, err := f.GetRows("Moderate")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, wantHeader, rows[0])
	assert.Equal(t, []string{"Moderate", "m1", "10.0.0.1", "CVE-2020-1", "80", "Linux"}, rows[1])
	assert.Equal(t, []string{"Moderate", "m2", "10.0.0.3", "None", "22", "Linux"}, rows[2])

	rows, err = f.GetRows("Critical")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = f.GetRows("Low")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "general", rows[1][4])
}

func TestWriteHeaderIsBold(t *testing.T) {
	b := engine.NewBuckets()
	b.Add(engine.Finding{Severity: engine.High, Title: "h", Host: "h", CVE: "None", Port: "1", OS: "Unknown"})

	path := filepath.Join(t.TempDir(), "out.xlsx")
	_, err := Write(b, path, Options{})
	require.NoError(t, err)

	f := openWorkbook(t, path)
	id, err := f.GetCellStyle("High", "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestWriteCustomColumns(t *testing.T) {
	b := engine.NewBuckets()
	b.Add(engine.Finding{Severity: engine.High, Title: "t", Host: "h", PluginID: "1234", Description: "desc"})

	cols, err := ParseColumns([]string{"ip/hostname", "Plugin ID"})
	require.NoError(t, err)
	cols = WithColumn(cols, DescriptionColumn)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	_, err = Write(b, path, Options{Columns: cols})
	require.NoError(t, err)

	rows, err := openWorkbook(t, path).GetRows("High")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"IP/Hostname", "Plugin ID", "Description"},
		{"h", "1234", "desc"},
	}, rows)
}

func TestWriteNoFindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	_, err := Write(engine.NewBuckets(), path, Options{})
	assert.ErrorIs(t, err, ErrNoFindings)
	assert.NoFileExists(t, path)
}

func TestWriteFailureLeavesNoFile(t *testing.T) {
	b := engine.NewBuckets()
	b.Add(engine.Finding{Severity: engine.Low, Title: "l"})

	path := filepath.Join(t.TempDir(), "missing-dir", "out.xlsx")
	_, err := Write(b, path, Options{})
	assert.ErrorIs(t, err, ErrWrite)
	assert.NoFileExists(t, path)
}

func TestWriteReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	b := engine.NewBuckets()
	b.Add(engine.Finding{Severity: engine.Low, Title: "l", Host: "h"})
	_, err := Write(b, path, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Low"}, openWorkbook(t, path).GetSheetList())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestParseColumns(t *testing.T) {
	cols, err := ParseColumns(nil)
	require.NoError(t, err)
	assert.Len(t, cols, len(DefaultColumns))

	_, err = ParseColumns([]string{"Severity", "Exploitability"})
	assert.ErrorIs(t, err, ErrUnknownColumn)

	cols = WithColumn(DefaultColumns, SeverityColumn)
	assert.Len(t, cols, len(DefaultColumns))
}

func TestColorNormalization(t *testing.T) {
	assert.Equal(t, "1F4E78", hexColor("#1f4e78"))
	assert.Equal(t, "FFC00000", argbColor("C00000"))
	assert.Equal(t, "80C00000", argbColor("80C00000"))
}
