package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/user/nessusparse/pkg/engine"
)

// ErrUnknownColumn is returned when a configured column name is not in the
// column table.
var ErrUnknownColumn = errors.New("unknown column")

// Column is one worksheet column: a header and how to fill it from a finding.
type Column struct {
	Header string
	Width  float64
	Value  func(engine.Finding) string
}

var (
	SeverityColumn    = Column{"Severity", 12, func(f engine.Finding) string { return f.Severity.Label() }}
	SummaryColumn     = Column{"Summary", 60, func(f engine.Finding) string { return f.Title }}
	HostColumn        = Column{"IP/Hostname", 20, func(f engine.Finding) string { return f.Host }}
	CVEColumn         = Column{"CVE", 18, func(f engine.Finding) string { return f.CVE }}
	PortColumn        = Column{"Port", 10, func(f engine.Finding) string { return f.Port }}
	OSColumn          = Column{"Operating System", 30, func(f engine.Finding) string { return f.OS }}
	PluginIDColumn    = Column{"Plugin ID", 12, func(f engine.Finding) string { return f.PluginID }}
	DescriptionColumn = Column{"Description", 80, func(f engine.Finding) string { return f.Description }}
)

// DefaultColumns is the standard worksheet layout.
var DefaultColumns = []Column{
	SeverityColumn,
	SummaryColumn,
	HostColumn,
	CVEColumn,
	PortColumn,
	OSColumn,
}

var allColumns = []Column{
	SeverityColumn,
	SummaryColumn,
	HostColumn,
	CVEColumn,
	PortColumn,
	OSColumn,
	PluginIDColumn,
	DescriptionColumn,
}

// ColumnNames lists the header of every known column.
func ColumnNames() []string {
	names := make([]string, 0, len(allColumns))
	for _, c := range allColumns {
		names = append(names, c.Header)
	}
	return names
}

// ParseColumns resolves header names (case-insensitive) to columns, keeping
// their order. An empty list yields DefaultColumns.
func ParseColumns(names []string) ([]Column, error) {
	if len(names) == 0 {
		return DefaultColumns, nil
	}
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c, ok := lookupColumn(name)
		if !ok {
			return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownColumn, name, strings.Join(ColumnNames(), ", "))
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// WithColumn appends c unless a column with the same header is present.
func WithColumn(cols []Column, c Column) []Column {
	for _, existing := range cols {
		if existing.Header == c.Header {
			return cols
		}
	}
	out := make([]Column, 0, len(cols)+1)
	out = append(out, cols...)
	return append(out, c)
}

func lookupColumn(name string) (Column, bool) {
	name = strings.TrimSpace(name)
	for _, c := range allColumns {
		if strings.EqualFold(c.Header, name) {
			return c, true
		}
	}
	return Column{}, false
}
