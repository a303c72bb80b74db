package manifest

import (
	"os"

	"github.com/psucodervn/packrat/diag"
	"github.com/psucodervn/packrat/status"
)

// LoadAndValidate reads, parses and validates the manifest at path,
// per spec §4.1's load_and_validate contract. On any structural parse
// error it aborts with a ParseError status; once parsing succeeds it
// runs the L2 validator, and any validator error becomes a
// ValidationError status with the partial tree discarded.
func LoadAndValidate(path string, sink diag.Sink) (*Manifest, int, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		diag.Emit(sink, diag.Diagnostic{
			Severity: diag.Error,
			Message:  err.Error(),
			File:     path,
			Code:     CodeReadFailed,
		})
		return nil, 1, 0, status.New(status.IOError, "reading manifest %s: %w", path, err)
	}
	if len(data) == 0 {
		diag.Emit(sink, diag.Diagnostic{
			Severity: diag.Error,
			Message:  "manifest file is empty",
			File:     path,
			Code:     CodeEmpty,
		})
		return nil, 1, 0, status.New(status.ParseError, "manifest %s is empty", path)
	}

	m, parseErrors := Parse(path, data, sink)
	if parseErrors > 0 {
		return nil, parseErrors, 0, status.New(status.ParseError, "manifest %s has %d parse error(s)", path, parseErrors)
	}

	ApplyDefaults(m)

	errs, warnings := Validate(path, m, sink)
	if errs > 0 {
		return nil, errs, warnings, status.New(status.ValidationError, "manifest %s has %d validation error(s)", path, errs)
	}
	return m, 0, warnings, nil
}
