package engine

import (
	"fmt"
	"strings"
)

// Buckets groups findings by severity. Each bucket keeps insertion order.
type Buckets struct {
	bySeverity map[Severity][]Finding
}

// NewBuckets creates an empty bucket set.
func NewBuckets() *Buckets {
	return &Buckets{
		bySeverity: make(map[Severity][]Finding, 4),
	}
}

// Add appends f to the bucket for its severity. Findings without a valid
// severity are dropped.
func (b *Buckets) Add(f Finding) {
	if !f.Severity.Valid() {
		return
	}
	b.bySeverity[f.Severity] = append(b.bySeverity[f.Severity], f)
}

// Get returns the findings for s in the order they were added.
func (b *Buckets) Get(s Severity) []Finding {
	return b.bySeverity[s]
}

// Each calls fn for every bucket, Critical first, including empty ones.
func (b *Buckets) Each(fn func(Severity, []Finding) error) error {
	for _, s := range Severities() {
		if err := fn(s, b.bySeverity[s]); err != nil {
			return err
		}
	}
	return nil
}

// Len is the total number of findings across all buckets.
func (b *Buckets) Len() int {
	n := 0
	for _, fs := range b.bySeverity {
		n += len(fs)
	}
	return n
}

// NonEmpty counts buckets holding at least one finding.
func (b *Buckets) NonEmpty() int {
	n := 0
	for _, fs := range b.bySeverity {
		if len(fs) > 0 {
			n++
		}
	}
	return n
}

// Counts returns the number of findings per severity.
func (b *Buckets) Counts() map[Severity]int {
	counts := make(map[Severity]int, 4)
	for _, s := range Severities() {
		counts[s] = len(b.bySeverity[s])
	}
	return counts
}

// Summary returns a one-line text summary, e.g. "Critical: 1, High: 0, ...".
func (b *Buckets) Summary() string {
	parts := make([]string, 0, 4)
	for _, s := range Severities() {
		parts = append(parts, fmt.Sprintf("%s: %d", s.Label(), len(b.bySeverity[s])))
	}
	return strings.Join(parts, ", ")
}
