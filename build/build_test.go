package build_test

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/psucodervn/packrat/build"
	"github.com/psucodervn/packrat/format"
)

func writePNG(t *testing.T, path string, w, h int) {
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

func TestRunEndToEndSingleSprite(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "hero.png"), 64, 32)

	manifestSrc := `
schema_version = 1
package_name = "demo"
output = "demo.prpk"

[atlas]
padding = 0

[[images]]
id = "hero_img"
path = "hero.png"

[[sprites]]
id = "hero"
source = "hero_img"
mode = "single"

[[animations]]
id = "idle"
sprite = "hero"
frames = [ { index = 0, ms = 100 } ]
`
	manifestPath := filepath.Join(dir, "pack.toml")
	if err := os.WriteFile(manifestPath, []byte(manifestSrc), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}

	result, err := build.Run(manifestPath, build.Options{}, nil)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	data, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("reading output package: %v", err)
	}
	if len(data) < format.HeaderSize {
		t.Fatalf("output too small: %d bytes", len(data))
	}
	if string(data[:4]) != format.Magic {
		t.Errorf("magic = %q, want %q", data[:4], format.Magic)
	}
	chunkCount := binary.LittleEndian.Uint32(data[12:16])
	if chunkCount != 5 {
		t.Errorf("expected 5 chunks (STRS,TXTR,SPRT,ANIM,INDX), got %d", chunkCount)
	}
}

func TestRunDeterministicOutput(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "hero.png"), 64, 32)

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
	manifestPath := filepath.Join(dir, "pack.toml")
	os.WriteFile(manifestPath, []byte(manifestSrc), 0o644)

	r1, err := build.Run(manifestPath, build.Options{OutputPath: filepath.Join(dir, "out1.prpk")}, nil)
	if err != nil {
		t.Fatalf("build 1: %v", err)
	}
	r2, err := build.Run(manifestPath, build.Options{OutputPath: filepath.Join(dir, "out2.prpk")}, nil)
	if err != nil {
		t.Fatalf("build 2: %v", err)
	}

	b1, _ := os.ReadFile(r1.OutputPath)
	b2, _ := os.ReadFile(r2.OutputPath)
	if !bytes.Equal(b1, b2) {
		t.Errorf("expected byte-identical output across builds")
	}
}

func TestRunStrictModeFailsOnWarning(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "hero.png"), 64, 32)

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

	_, err := build.Run(manifestPath, build.Options{Strict: true}, nil)
	if err == nil {
		t.Fatalf("expected strict-mode failure due to output extension warning")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "demo.bin")); statErr == nil {
		t.Errorf("strict mode must not write output bytes on failure")
	}
}

func TestRunDebugJSONOutput(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "hero.png"), 64, 32)

	manifestSrc := `
schema_version = 1
package_name = "demo"
output = "demo.prpk"
debug_output = "demo.debug.json"

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

	result, err := build.Run(manifestPath, build.Options{}, nil)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if result.DebugOutputPath == "" {
		t.Fatalf("expected debug output to be written")
	}
	data, err := os.ReadFile(result.DebugOutputPath)
	if err != nil {
		t.Fatalf("reading debug json: %v", err)
	}
	if !bytes.Contains(data, []byte(`"package_name":"demo"`)) {
		t.Errorf("debug json missing package_name: %s", data)
	}
}
