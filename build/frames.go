package build

import (
	"fmt"

	"github.com/psucodervn/packrat/diag"
	"github.com/psucodervn/packrat/manifest"
	"github.com/psucodervn/packrat/status"
)

// SourceFrame is one L4-resolved frame, still in source-image space
// (not yet atlas-placed).
type SourceFrame struct {
	SpriteIndex     int
	LocalFrameIndex int
	SourceX, SourceY int
	SourceW, SourceH int
}

// SpriteSlice records the contiguous range of the global frame array
// owned by one sprite.
type SpriteSlice struct {
	FirstFrame int
	FrameCount int
}

// ResolveFrames runs L4: expands every sprite's mode into one or more
// SourceFrame entries in a single global array, in sprite-declaration
// order, per spec §4.4.
func ResolveFrames(manifestPath string, m *manifest.Manifest, images []ImportedImage, sink diag.Sink) ([]SourceFrame, []SpriteSlice, error) {
	var frames []SourceFrame
	slices := make([]SpriteSlice, len(m.Sprites))

	for si := range m.Sprites {
		s := &m.Sprites[si]
		img, ok := FindImported(images, s.Source)
		if !ok {
			return nil, nil, status.New(status.InternalError, "sprite %q: source image %q not imported", s.ID, s.Source)
		}

		first := len(frames)
		var local []SourceFrame
		var err error
		switch s.Mode {
		case manifest.ModeSingle:
			local, err = resolveSingleFrame(s, img)
		case manifest.ModeRects:
			local, err = resolveRectFrames(s, img)
		case manifest.ModeGrid:
			local, err = resolveGridFrames(s, img)
		default:
			err = status.New(status.InternalError, "sprite %q: unresolved mode %q reached L4", s.ID, s.Mode)
		}
		if err != nil {
			diag.Emit(sink, diag.Diagnostic{
				Severity: diag.Error,
				Message:  err.Error(),
				File:     manifestPath,
				Line:     s.Line,
				Code:     "build.sprite.frame_resolve_failed",
				AssetID:  s.ID,
			})
			return nil, nil, status.Wrap(status.ValidationError, err)
		}

		if len(local) == 0 {
			diag.Emit(sink, diag.Diagnostic{
				Severity: diag.Error,
				Message:  fmt.Sprintf("sprite %q resolved to zero frames", s.ID),
				File:     manifestPath,
				Line:     s.Line,
				Code:     "build.sprite.zero_frames",
				AssetID:  s.ID,
			})
			return nil, nil, status.New(status.ValidationError, "sprite %q resolved to zero frames", s.ID)
		}

		for li := range local {
			local[li].SpriteIndex = si
			local[li].LocalFrameIndex = li
		}
		frames = append(frames, local...)
		slices[si] = SpriteSlice{FirstFrame: first, FrameCount: len(local)}
	}

	return frames, slices, nil
}

func withinBounds(x, y, w, h, imgW, imgH int) bool {
	return x >= 0 && y >= 0 && w > 0 && h > 0 && x+w <= imgW && y+h <= imgH
}

func resolveSingleFrame(s *manifest.Sprite, img *ImportedImage) ([]SourceFrame, error) {
	x, y, w, h := 0, 0, img.Width, img.Height
	if s.HasX {
		x = s.X
	}
	if s.HasY {
		y = s.Y
	}
	if s.HasW {
		w = s.W
	}
	if s.HasH {
		h = s.H
	}
	if !withinBounds(x, y, w, h, img.Width, img.Height) {
		return nil, fmt.Errorf("sprite %q: rectangle (%d,%d,%d,%d) lies outside image %q (%dx%d)", s.ID, x, y, w, h, img.ID, img.Width, img.Height)
	}
	return []SourceFrame{{SourceX: x, SourceY: y, SourceW: w, SourceH: h}}, nil
}

func resolveRectFrames(s *manifest.Sprite, img *ImportedImage) ([]SourceFrame, error) {
	out := make([]SourceFrame, len(s.Rects))
	for i, r := range s.Rects {
		if !withinBounds(r.X, r.Y, r.W, r.H, img.Width, img.Height) {
			return nil, fmt.Errorf("sprite %q: rect[%d] (%d,%d,%d,%d) lies outside image %q (%dx%d)", s.ID, i, r.X, r.Y, r.W, r.H, img.ID, img.Width, img.Height)
		}
		out[i] = SourceFrame{SourceX: r.X, SourceY: r.Y, SourceW: r.W, SourceH: r.H}
	}
	return out, nil
}

// gridLayout computes cols/rows per spec §3's grid formula.
func gridLayout(s *manifest.Sprite, img *ImportedImage) (cols, rows int) {
	cols = 1 + (img.Width-s.MarginX-s.CellW)/(s.CellW+s.SpacingX)
	rows = 1 + (img.Height-s.MarginY-s.CellH)/(s.CellH+s.SpacingY)
	return
}

func resolveGridFrames(s *manifest.Sprite, img *ImportedImage) ([]SourceFrame, error) {
	cols, rows := gridLayout(s, img)
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("sprite %q: grid cell size larger than image %q (%dx%d)", s.ID, img.ID, img.Width, img.Height)
	}

	frameStart := s.FrameStart
	frameCount := s.FrameCount
	if !s.HasFrameCount {
		frameCount = cols*rows - frameStart
	}
	if frameStart+frameCount > cols*rows {
		return nil, fmt.Errorf("sprite %q: frame_start+frame_count (%d) exceeds grid capacity %d", s.ID, frameStart+frameCount, cols*rows)
	}

	out := make([]SourceFrame, 0, frameCount)
	for idx := frameStart; idx < frameStart+frameCount; idx++ {
		row := idx / cols
		col := idx % cols
		x := s.MarginX + col*(s.CellW+s.SpacingX)
		y := s.MarginY + row*(s.CellH+s.SpacingY)
		if !withinBounds(x, y, s.CellW, s.CellH, img.Width, img.Height) {
			return nil, fmt.Errorf("sprite %q: grid cell %d (%d,%d,%d,%d) lies outside image %q (%dx%d)", s.ID, idx, x, y, s.CellW, s.CellH, img.ID, img.Width, img.Height)
		}
		out = append(out, SourceFrame{SourceX: x, SourceY: y, SourceW: s.CellW, SourceH: s.CellH})
	}
	return out, nil
}
