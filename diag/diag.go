// Package diag defines the diagnostic channel threaded through the
// manifest parser, validator, and build pipeline (spec §6.5).
package diag

import "fmt"

// Severity classifies a Diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Diagnostic is one structured message emitted by a pipeline stage.
// File/Line/Column are optional; Line is 1-based when present.
type Diagnostic struct {
	Severity Severity
	Message  string
	File     string
	Line     int
	Column   int
	Code     string
	AssetID  string
}

func (d Diagnostic) String() string {
	loc := d.File
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, d.Line)
		if d.Column > 0 {
			loc = fmt.Sprintf("%s:%d", loc, d.Column)
		}
	}
	if loc == "" {
		loc = "<unknown>"
	}
	asset := d.AssetID
	if asset == "" {
		asset = "-"
	}
	code := d.Code
	if code == "" {
		code = "-"
	}
	return fmt.Sprintf("%s: %s: %s [code=%s] [asset=%s]", d.Severity, loc, d.Message, code, asset)
}

// Sink receives diagnostics as they are produced. A nil Sink is valid
// and simply discards every diagnostic.
type Sink func(Diagnostic)

// Emit delivers d to sink if sink is non-nil.
func Emit(sink Sink, d Diagnostic) {
	if sink != nil {
		sink(d)
	}
}

// Collector is a Sink that records every diagnostic it receives and
// tracks error/warning counts, matching the "accumulate all, then
// return error count" policy of spec §4.2 and §7.
type Collector struct {
	Diagnostics []Diagnostic
	Errors      int
	Warnings    int
}

// Sink returns a diag.Sink bound to this collector.
func (c *Collector) Sink() Sink {
	return func(d Diagnostic) {
		c.Diagnostics = append(c.Diagnostics, d)
		switch d.Severity {
		case Error:
			c.Errors++
		case Warning:
			c.Warnings++
		}
	}
}
