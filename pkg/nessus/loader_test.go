package nessus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `<?xml version="1.0" ?>
<NessusClientData_v2>
  <Report name="lab">
    <ReportHost name="10.0.0.5">
      <HostProperties>
        <tag name="operating-system">Linux Kernel 5.4</tag>
        <tag name="host-ip">10.0.0.5</tag>
      </HostProperties>
      <ReportItem port="443" severity="4" pluginID="1001" pluginName="Sample Finding">
        <description>Bad TLS</description>
        <cve>CVE-2024-0001</cve>
        <cve>CVE-2024-0002</cve>
      </ReportItem>
      <ReportItem port="0" severity="0" pluginName="Info"/>
    </ReportHost>
    <ReportHost name="db.internal">
      <ReportItem port="5432" severity="2" pluginName="Weak Auth">
        <cve></cve>
      </ReportItem>
    </ReportHost>
  </Report>
</NessusClientData_v2>`

func TestParseNavigatesHostsAndItems(t *testing.T) {
	doc, err := Parse([]byte(sampleReport))
	require.NoError(t, err)

	hosts := doc.Hosts()
	require.Len(t, hosts, 2)
	assert.Equal(t, "10.0.0.5", hosts[0].Name())
	assert.Equal(t, "db.internal", hosts[1].Name())

	osName, ok := hosts[0].Tag("operating-system")
	assert.True(t, ok)
	assert.Equal(t, "Linux Kernel 5.4", osName)

	_, ok = hosts[1].Tag("operating-system")
	assert.False(t, ok)

	items := hosts[0].Items()
	require.Len(t, items, 2)

	sev, ok := items[0].Attr("severity")
	assert.True(t, ok)
	assert.Equal(t, "4", sev)
	assert.Equal(t, "Sample Finding", items[0].AttrOr("pluginName", ""))
	assert.Equal(t, "n/a", items[1].AttrOr("missing", "n/a"))

	cve, ok := items[0].ChildText("cve")
	assert.True(t, ok)
	assert.Equal(t, "CVE-2024-0001", cve, "first CVE wins")

	_, ok = hosts[1].Items()[0].ChildText("cve")
	assert.False(t, ok, "empty cve element counts as absent")
}

func TestParseFindsNestedItems(t *testing.T) {
	doc, err := Parse([]byte(`<NessusClientData_v2><Report><ReportHost name="h">
		<Group><ReportItem severity="1" pluginName="deep"/></Group>
		<ReportItem severity="3" pluginName="shallow"/>
	</ReportHost></Report></NessusClientData_v2>`))
	require.NoError(t, err)

	items := doc.Hosts()[0].Items()
	require.Len(t, items, 2)
	assert.Equal(t, "deep", items[0].AttrOr("pluginName", ""))
	assert.Equal(t, "shallow", items[1].AttrOr("pluginName", ""))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"wrong root", `<NotARealReport/>`, ErrInvalidFormat},
		{"nmap output", `<nmaprun><host/></nmaprun>`, ErrInvalidFormat},
		{"unclosed tag", `<NessusClientData_v2><Report>`, ErrParse},
		{"garbage", `<<<not xml`, ErrParse},
		{"empty", ``, ErrParse},
		{"two roots", `<NessusClientData_v2></NessusClientData_v2><NessusClientData_v2/>`, ErrParse},
		{"trailing text", `<NessusClientData_v2><Report/></NessusClientData_v2>garbage`, ErrParse},
		{"leading text", `junk<NessusClientData_v2><Report/></NessusClientData_v2>`, ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input))
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseAllowsProlog(t *testing.T) {
	doc, err := Parse([]byte("<?xml version=\"1.0\"?>\n<!-- export -->\n<NessusClientData_v2><Report/></NessusClientData_v2>\n"))
	require.NoError(t, err)
	assert.Empty(t, doc.Hosts())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "scan.nessus")
	require.NoError(t, os.WriteFile(path, []byte(sampleReport), 0o600))
	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Hosts(), 2)

	_, err = Load(filepath.Join(dir, "missing.nessus"))
	assert.ErrorIs(t, err, ErrIO)
	assert.NotErrorIs(t, err, ErrParse)
}
