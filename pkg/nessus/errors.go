package nessus

import "errors"

var (
	// ErrIO is returned when the report file cannot be read.
	ErrIO = errors.New("report unreadable")
	// ErrParse is returned when the report is not well-formed XML.
	ErrParse = errors.New("malformed XML")
	// ErrInvalidFormat is returned for well-formed XML whose root element is
	// not a Nessus v2 report.
	ErrInvalidFormat = errors.New("not a Nessus v2 report")
)
