package engine

import "strconv"

// Severity is a reportable Nessus risk rating. Informational (0) findings
// have no Severity value.
type Severity int

const (
	Low Severity = iota + 1
	Moderate
	High
	Critical
)

// Severities lists every severity in the order worksheets are emitted.
func Severities() []Severity {
	return []Severity{Critical, High, Moderate, Low}
}

// ParseSeverity converts a severity attribute. ok is false for
// informational, missing or non-numeric ratings.
func ParseSeverity(raw string) (Severity, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	s := Severity(n)
	return s, s.Valid()
}

// Valid reports whether s is one of Low, Moderate, High or Critical.
func (s Severity) Valid() bool {
	return s >= Low && s <= Critical
}

// Label is the display name used for worksheet names and the Severity column.
func (s Severity) Label() string {
	switch s {
	case Low:
		return "Low"
	case Moderate:
		return "Moderate"
	case High:
		return "High"
	case Critical:
		return "Critical"
	default:
		return "Severity(" + strconv.Itoa(int(s)) + ")"
	}
}

func (s Severity) String() string {
	return s.Label()
}
