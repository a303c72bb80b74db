package manifest_test

import (
	"testing"

	"github.com/psucodervn/packrat/diag"
	"github.com/psucodervn/packrat/manifest"
)

func parseOK(t *testing.T, src string) *manifest.Manifest {
	t.Helper()
	var diags []diag.Diagnostic
	m, errs := manifest.Parse("test.toml", []byte(src), func(d diag.Diagnostic) { diags = append(diags, d) })
	if errs != 0 {
		t.Fatalf("expected no parse errors, got %d: %v", errs, diags)
	}
	return m
}

func TestParseRootAssignments(t *testing.T) {
	src := `
schema_version = 1
package_name = "demo"
output = "demo.prpk"
pretty_debug_json = true
`
	m := parseOK(t, src)
	if m.SchemaVersion != 1 || !m.HasSchemaVersion {
		t.Errorf("schema_version not parsed: %+v", m)
	}
	if m.PackageName != "demo" {
		t.Errorf("package_name = %q, want demo", m.PackageName)
	}
	if m.Output != "demo.prpk" {
		t.Errorf("output = %q, want demo.prpk", m.Output)
	}
	if !m.PrettyDebugJSON {
		t.Errorf("pretty_debug_json not parsed as true")
	}
}

func TestParseEscapesInStrings(t *testing.T) {
	src := `
[[images]]
id = "a\"b\\c"
path = "a.png"
`
	m := parseOK(t, src)
	if len(m.Images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(m.Images))
	}
	if got, want := m.Images[0].ID, `a"b\c`; got != want {
		t.Errorf("id = %q, want %q", got, want)
	}
}

func TestParseHashInsideStringIsNotAComment(t *testing.T) {
	src := `
[[images]]
id = "a#b"
path = "a.png"
`
	m := parseOK(t, src)
	if m.Images[0].ID != "a#b" {
		t.Errorf("id = %q, want a#b", m.Images[0].ID)
	}
}

func TestParseSpritesRectsAttachesToMostRecentSprite(t *testing.T) {
	src := `
[[sprites]]
id = "hero"
source = "atlas_img"
mode = "rects"

[[sprites.rects]]
x = 0
y = 0
w = 16
h = 16

[[sprites.rects]]
x = 16
y = 0
w = 16
h = 16
`
	m := parseOK(t, src)
	if len(m.Sprites) != 1 {
		t.Fatalf("expected 1 sprite, got %d", len(m.Sprites))
	}
	if len(m.Sprites[0].Rects) != 2 {
		t.Fatalf("expected 2 rects attached to sprite, got %d", len(m.Sprites[0].Rects))
	}
}

func TestParseRectsWithNoActiveSpriteIsError(t *testing.T) {
	src := `
[[sprites.rects]]
x = 0
y = 0
w = 16
h = 16
`
	_, errs := manifest.Parse("test.toml", []byte(src), nil)
	if errs == 0 {
		t.Fatalf("expected a parse error for orphan [[sprites.rects]]")
	}
}

func TestParseAnimationFramesMultilineArray(t *testing.T) {
	src := `
[[animations]]
id = "walk"
sprite = "hero"
frames = [
  { index = 0, ms = 100 },
  { index = 1, ms = 100 },
]
`
	m := parseOK(t, src)
	if len(m.Animations) != 1 {
		t.Fatalf("expected 1 animation, got %d", len(m.Animations))
	}
	frames := m.Animations[0].Frames
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[0].Index != 0 || frames[0].Ms != 100 {
		t.Errorf("frame[0] = %+v", frames[0])
	}
	if frames[1].Index != 1 || frames[1].Ms != 100 {
		t.Errorf("frame[1] = %+v", frames[1])
	}
}

func TestParseFrameMissingRequiredFieldIsError(t *testing.T) {
	src := `
[[animations]]
id = "walk"
sprite = "hero"
frames = [ { index = 0 } ]
`
	_, errs := manifest.Parse("test.toml", []byte(src), nil)
	if errs == 0 {
		t.Fatalf("expected a parse error for frame missing 'ms'")
	}
}

func TestParseUnknownSectionIsError(t *testing.T) {
	src := "[bogus]\nfoo = 1\n"
	_, errs := manifest.Parse("test.toml", []byte(src), nil)
	if errs == 0 {
		t.Fatalf("expected a parse error for unknown section")
	}
}

func TestParseUnknownKeyIsError(t *testing.T) {
	src := "[atlas]\nbogus_key = 1\n"
	_, errs := manifest.Parse("test.toml", []byte(src), nil)
	if errs == 0 {
		t.Fatalf("expected a parse error for unknown atlas key")
	}
}

func TestParseUnterminatedStringIsError(t *testing.T) {
	src := "[[images]]\nid = \"unterminated\n"
	_, errs := manifest.Parse("test.toml", []byte(src), nil)
	if errs == 0 {
		t.Fatalf("expected a parse error for unterminated string")
	}
}

func TestParseDuplicateAssignmentOverwrites(t *testing.T) {
	src := `
schema_version = 1
schema_version = 1
package_name = "first"
package_name = "second"
output = "x.prpk"
`
	m := parseOK(t, src)
	if m.PackageName != "second" {
		t.Errorf("package_name = %q, want last-write-wins 'second'", m.PackageName)
	}
}
