// Package build implements the resolve/pack/encode pipeline (L3-L8 in
// spec §2/§4): importing source images, resolving sprite frames,
// packing the atlas, resolving animations, interning strings, and
// encoding the final PRPK chunk container — grounded on
// lovepac/packer's "read → decode → sort → pack → emit" pipeline
// shape, run single-threaded per spec §5's Non-goal on concurrency.
package build

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path"
	"path/filepath"

	"github.com/psucodervn/packrat/diag"
	"github.com/psucodervn/packrat/manifest"
	"github.com/psucodervn/packrat/status"
)

// ImportedImage is the L3 result for a single manifest image entry.
type ImportedImage struct {
	ID            string
	ResolvedPath  string
	Width, Height int
	// TightRowBytes is width*4; Pixels is a tightly packed top-down
	// RGBA8 buffer of Width*Height*4 bytes.
	TightRowBytes int
	Pixels        []byte
	SourceBytes   int
}

// resolveImagePath joins a possibly-relative image path against the
// manifest file's directory, per spec §4.3: "absolute path used as-is;
// otherwise joined to the manifest file's directory using '/' as
// separator, preserving original separators on either side".
func resolveImagePath(manifestPath, imgPath string) string {
	if path.IsAbs(imgPath) || filepath.IsAbs(imgPath) {
		return imgPath
	}
	dir := filepath.Dir(manifestPath)
	if dir == "." {
		return imgPath
	}
	return dir + "/" + imgPath
}

// ImportImages runs L3 over every manifest image entry. Diagnostics
// are collected across all images; the stage fails only after every
// image has been attempted, choosing IOError if any failure was a
// read error, else ValidationError, per spec §4.3 and §7.
func ImportImages(manifestPath string, m *manifest.Manifest, sink diag.Sink) ([]ImportedImage, error) {
	out := make([]ImportedImage, 0, len(m.Images))
	sawReadError := false
	sawFailure := false

	for i := range m.Images {
		img := &m.Images[i]
		resolved := resolveImagePath(manifestPath, img.Path)

		data, err := os.ReadFile(resolved)
		if err != nil {
			sawFailure = true
			sawReadError = true
			diag.Emit(sink, diag.Diagnostic{
				Severity: diag.Error,
				Message:  fmt.Sprintf("reading image %q: %s", resolved, err),
				File:     manifestPath,
				Line:     img.Line,
				Code:     "build.image.read_failed",
				AssetID:  img.ID,
			})
			continue
		}

		decoded, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			sawFailure = true
			diag.Emit(sink, diag.Diagnostic{
				Severity: diag.Error,
				Message:  fmt.Sprintf("decoding image %q: %s", resolved, err),
				File:     manifestPath,
				Line:     img.Line,
				Code:     "build.image.decode_failed",
				AssetID:  img.ID,
			})
			continue
		}

		rgba := toRGBA(decoded)
		w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
		if w <= 0 || h <= 0 {
			sawFailure = true
			diag.Emit(sink, diag.Diagnostic{
				Severity: diag.Error,
				Message:  fmt.Sprintf("image %q has zero size", resolved),
				File:     manifestPath,
				Line:     img.Line,
				Code:     "build.image.zero_size",
				AssetID:  img.ID,
			})
			continue
		}

		if img.PremultiplyAlpha {
			premultiply(rgba)
		}

		out = append(out, ImportedImage{
			ID:            img.ID,
			ResolvedPath:  resolved,
			Width:         w,
			Height:        h,
			TightRowBytes: w * 4,
			Pixels:        rgba.Pix,
			SourceBytes:   len(data),
		})
	}

	if sawFailure {
		if sawReadError {
			return nil, status.New(status.IOError, "image import failed for %s", manifestPath)
		}
		return nil, status.New(status.ValidationError, "image import failed for %s", manifestPath)
	}
	return out, nil
}

// toRGBA converts any decoded image.Image into a tightly packed,
// top-down 8-bit RGBA buffer rooted at (0,0).
func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Set(x, y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// premultiply converts straight-alpha RGBA pixels to premultiplied
// alpha in place.
func premultiply(img *image.RGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := uint32(img.Pix[i+3])
		img.Pix[i+0] = uint8(uint32(img.Pix[i+0]) * a / 255)
		img.Pix[i+1] = uint8(uint32(img.Pix[i+1]) * a / 255)
		img.Pix[i+2] = uint8(uint32(img.Pix[i+2]) * a / 255)
	}
}

// FindImported returns the imported image with the given id.
func FindImported(images []ImportedImage, id string) (*ImportedImage, bool) {
	for i := range images {
		if images[i].ID == id {
			return &images[i], true
		}
	}
	return nil, false
}
