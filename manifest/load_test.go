package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/psucodervn/packrat/manifest"
	"github.com/psucodervn/packrat/status"
)

func writeTempManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "pack.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture manifest: %v", err)
	}
	return path
}

func TestLoadAndValidateSuccess(t *testing.T) {
	path := writeTempManifest(t, `
schema_version = 1
package_name = "demo"
output = "demo.prpk"

[[images]]
id = "img"
path = "a.png"

[[sprites]]
id = "hero"
source = "img"
mode = "single"
`)
	m, errs, warns, err := manifest.LoadAndValidate(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if errs != 0 || warns != 0 {
		t.Errorf("expected 0/0 errors/warnings, got %d/%d", errs, warns)
	}
	if m == nil || m.PackageName != "demo" {
		t.Errorf("unexpected manifest: %+v", m)
	}
}

func TestLoadAndValidateEmptyFile(t *testing.T) {
	path := writeTempManifest(t, "")
	_, _, _, err := manifest.LoadAndValidate(path, nil)
	if err == nil {
		t.Fatalf("expected an error for empty manifest")
	}
	if status.Of(err) != status.ParseError {
		t.Errorf("expected ParseError status, got %v", status.Of(err))
	}
}

func TestLoadAndValidateMissingFile(t *testing.T) {
	_, _, _, err := manifest.LoadAndValidate(filepath.Join(t.TempDir(), "nope.toml"), nil)
	if err == nil {
		t.Fatalf("expected an error for missing file")
	}
	if status.Of(err) != status.IOError {
		t.Errorf("expected IOError status, got %v", status.Of(err))
	}
}

func TestLoadAndValidateParseError(t *testing.T) {
	path := writeTempManifest(t, "[bogus]\n")
	_, errs, _, err := manifest.LoadAndValidate(path, nil)
	if err == nil || status.Of(err) != status.ParseError {
		t.Fatalf("expected ParseError status, got %v (err=%v)", status.Of(err), err)
	}
	if errs == 0 {
		t.Errorf("expected parse error count > 0")
	}
}

func TestLoadAndValidateValidationError(t *testing.T) {
	path := writeTempManifest(t, "schema_version = 1\n")
	_, errs, _, err := manifest.LoadAndValidate(path, nil)
	if err == nil || status.Of(err) != status.ValidationError {
		t.Fatalf("expected ValidationError status, got %v (err=%v)", status.Of(err), err)
	}
	if errs == 0 {
		t.Errorf("expected validation error count > 0")
	}
	var statusErr *status.Error
	if !errors.As(err, &statusErr) {
		t.Errorf("expected err to be a *status.Error")
	}
}
