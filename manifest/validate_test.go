package manifest_test

import (
	"testing"

	"github.com/psucodervn/packrat/diag"
	"github.com/psucodervn/packrat/manifest"
)

func validateSrc(t *testing.T, src string) (int, int, []diag.Diagnostic) {
	t.Helper()
	var diags []diag.Diagnostic
	sink := func(d diag.Diagnostic) { diags = append(diags, d) }
	m, perrs := manifest.Parse("test.toml", []byte(src), sink)
	if perrs != 0 {
		t.Fatalf("unexpected parse errors: %d %v", perrs, diags)
	}
	manifest.ApplyDefaults(m)
	errs, warns := manifest.Validate("test.toml", m, sink)
	return errs, warns, diags
}

func hasCode(diags []diag.Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestValidateMissingRootKeys(t *testing.T) {
	errs, _, diags := validateSrc(t, "")
	if errs == 0 {
		t.Fatalf("expected validation errors for empty manifest")
	}
	for _, code := range []string{manifest.CodeMissingSchemaVersion, manifest.CodeMissingPackageName, manifest.CodeMissingOutput} {
		if !hasCode(diags, code) {
			t.Errorf("expected diagnostic %s, got %v", code, diags)
		}
	}
}

func TestValidateUnsupportedSchemaVersion(t *testing.T) {
	src := `
schema_version = 2
package_name = "demo"
output = "demo.prpk"
`
	errs, _, diags := validateSrc(t, src)
	if errs == 0 || !hasCode(diags, manifest.CodeUnsupportedSchemaVersion) {
		t.Errorf("expected schema_version error, got %d errs %v", errs, diags)
	}
}

func TestValidateOutputExtensionWarningOnly(t *testing.T) {
	src := `
schema_version = 1
package_name = "demo"
output = "demo.bin"
`
	errs, warns, diags := validateSrc(t, src)
	if errs != 0 {
		t.Errorf("expected no errors, got %d: %v", errs, diags)
	}
	if warns == 0 || !hasCode(diags, manifest.CodeOutputExtension) {
		t.Errorf("expected output-extension warning, got %d warns %v", warns, diags)
	}
}

func TestValidateDuplicateSpriteID(t *testing.T) {
	src := `
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

[[sprites]]
id = "hero"
source = "img"
mode = "single"
`
	errs, _, diags := validateSrc(t, src)
	if errs == 0 || !hasCode(diags, manifest.CodeSpritesDuplicateID) {
		t.Errorf("expected duplicate sprite id error, got %d errs %v", errs, diags)
	}
}

func TestValidateAnimationFrameIndexOutOfRangeForSingleSprite(t *testing.T) {
	src := `
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

[[animations]]
id = "walk"
sprite = "hero"
frames = [ { index = 1, ms = 100 } ]
`
	errs, _, diags := validateSrc(t, src)
	if errs == 0 || !hasCode(diags, manifest.CodeAnimationsFrameIndexOOB) {
		t.Errorf("expected frame_index_oob error, got %d errs %v", errs, diags)
	}
}

func TestValidateGridWithoutFrameCountWarnsUnbounded(t *testing.T) {
	src := `
schema_version = 1
package_name = "demo"
output = "demo.prpk"

[[images]]
id = "img"
path = "a.png"

[[sprites]]
id = "hero"
source = "img"
mode = "grid"
cell_w = 16
cell_h = 16

[[animations]]
id = "walk"
sprite = "hero"
frames = [ { index = 0, ms = 100 } ]
`
	errs, warns, diags := validateSrc(t, src)
	if errs != 0 {
		t.Errorf("expected no errors, got %d: %v", errs, diags)
	}
	if warns == 0 || !hasCode(diags, manifest.CodeAnimationsFrameIndexUnbound) {
		t.Errorf("expected frame_index_unbounded warning, got %d warns %v", warns, diags)
	}
}

func TestValidateRectsModeRequiresAtLeastOneRect(t *testing.T) {
	src := `
schema_version = 1
package_name = "demo"
output = "demo.prpk"

[[images]]
id = "img"
path = "a.png"

[[sprites]]
id = "hero"
source = "img"
mode = "rects"
`
	errs, _, diags := validateSrc(t, src)
	if errs == 0 || !hasCode(diags, manifest.CodeSpritesRectsEmpty) {
		t.Errorf("expected rects_empty error, got %d errs %v", errs, diags)
	}
}

func TestValidatePivotOutOfRange(t *testing.T) {
	src := `
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
pivot_x = 1.5
`
	errs, _, diags := validateSrc(t, src)
	if errs == 0 || !hasCode(diags, manifest.CodeSpritesPivotXRange) {
		t.Errorf("expected pivot_x_range error, got %d errs %v", errs, diags)
	}
}

func TestValidateUnknownSpriteSource(t *testing.T) {
	src := `
schema_version = 1
package_name = "demo"
output = "demo.prpk"

[[sprites]]
id = "hero"
source = "missing"
mode = "single"
`
	errs, _, diags := validateSrc(t, src)
	if errs == 0 || !hasCode(diags, manifest.CodeSpritesSourceUnknown) {
		t.Errorf("expected source_unknown error, got %d errs %v", errs, diags)
	}
}
