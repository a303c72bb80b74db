package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeFixturePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture png: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding fixture png: %v", err)
	}
}

func writeFixtureManifest(t *testing.T, dir string) string {
	t.Helper()
	writeFixturePNG(t, filepath.Join(dir, "hero.png"), 32, 32)
	manifestSrc := `
schema_version = 1
package_name = "demo"
output = "demo.prpk"

[[images]]
id = "hero_img"
path = "hero.png"

[[sprites]]
id = "hero"
source = "hero_img"
mode = "single"
`
	path := filepath.Join(dir, "pack.toml")
	if err := os.WriteFile(path, []byte(manifestSrc), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return path
}

func TestRunNoArgsPrintsUsage(t *testing.T) {
	if code := run([]string{"packrat"}); code != 1 {
		t.Errorf("run with no subcommand = %d, want 1", code)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if code := run([]string{"packrat", "frobnicate"}); code != 1 {
		t.Errorf("run with unknown command = %d, want 1", code)
	}
}

func TestRunValidateSucceeds(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeFixtureManifest(t, dir)
	if code := run([]string{"packrat", "validate", manifestPath}); code != 0 {
		t.Errorf("run validate = %d, want 0", code)
	}
}

func TestRunValidateMissingFileIsIOError(t *testing.T) {
	code := run([]string{"packrat", "validate", "/nonexistent/pack.toml"})
	if code != 3 {
		t.Errorf("run validate on missing file = %d, want 3 (io error)", code)
	}
}

func TestRunBuildThenInspect(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeFixtureManifest(t, dir)

	if code := run([]string{"packrat", "build", manifestPath}); code != 0 {
		t.Fatalf("run build = %d, want 0", code)
	}

	packagePath := filepath.Join(dir, "demo.prpk")
	if code := run([]string{"packrat", "inspect", packagePath}); code != 0 {
		t.Errorf("run inspect = %d, want 0", code)
	}
	if code := run([]string{"packrat", "inspect", packagePath, "-json", "-verbose"}); code != 0 {
		t.Errorf("run inspect -json -verbose = %d, want 0", code)
	}
}

func TestRunBuildStrictFailsOnExtensionWarning(t *testing.T) {
	dir := t.TempDir()
	writeFixturePNG(t, filepath.Join(dir, "hero.png"), 32, 32)
	manifestSrc := `
schema_version = 1
package_name = "demo"
output = "demo.bin"

[[images]]
id = "hero_img"
path = "hero.png"

[[sprites]]
id = "hero"
source = "hero_img"
mode = "single"
`
	manifestPath := filepath.Join(dir, "pack.toml")
	os.WriteFile(manifestPath, []byte(manifestSrc), 0o644)

	if code := run([]string{"packrat", "build", manifestPath, "-strict"}); code != 2 {
		t.Errorf("run build -strict with extension warning = %d, want 2 (validation error)", code)
	}
}
