package manifest

import (
	"fmt"
	"strings"

	"github.com/psucodervn/packrat/diag"
)

// Validate runs the pure L2 pass over an already-defaulted Manifest
// tree (spec §4.2), emitting diagnostics through sink. It returns the
// number of errors and warnings emitted; callers must treat errors>0
// as validation failure.
func Validate(path string, m *Manifest, sink diag.Sink) (errors, warnings int) {
	v := &validator{path: path, m: m, sink: sink}
	v.validateRoot()
	v.validateAtlas()
	v.validateImages()
	v.validateSprites()
	v.validateAnimations()
	return v.errors, v.warnings
}

type validator struct {
	path string
	m    *Manifest
	sink diag.Sink

	errors   int
	warnings int
}

func (v *validator) errorf(line int, code, format string, args ...any) {
	v.errors++
	diag.Emit(v.sink, diag.Diagnostic{
		Severity: diag.Error,
		Message:  fmt.Sprintf(format, args...),
		File:     v.path,
		Line:     line,
		Code:     code,
	})
}

func (v *validator) warnf(line int, code, format string, args ...any) {
	v.warnings++
	diag.Emit(v.sink, diag.Diagnostic{
		Severity: diag.Warning,
		Message:  fmt.Sprintf(format, args...),
		File:     v.path,
		Line:     line,
		Code:     code,
	})
}

func (v *validator) validateRoot() {
	m := v.m
	if !m.HasSchemaVersion {
		v.errorf(0, CodeMissingSchemaVersion, "missing required root key 'schema_version'")
	} else if m.SchemaVersion != 1 {
		v.errorf(0, CodeUnsupportedSchemaVersion, "unsupported schema_version %d, expected 1", m.SchemaVersion)
	}
	if !m.HasPackageName {
		v.errorf(0, CodeMissingPackageName, "missing required root key 'package_name'")
	} else if m.PackageName == "" {
		v.errorf(0, CodeEmptyPackageName, "'package_name' must not be empty")
	}
	if !m.HasOutput {
		v.errorf(0, CodeMissingOutput, "missing required root key 'output'")
	} else if m.Output == "" {
		v.errorf(0, CodeEmptyOutput, "'output' must not be empty")
	} else if !strings.HasSuffix(m.Output, ".prpk") {
		v.warnf(0, CodeOutputExtension, "'output' %q does not end in .prpk", m.Output)
	}
}

func (v *validator) validateAtlas() {
	a := &v.m.Atlas
	if a.MaxPageWidth <= 0 {
		v.errorf(a.Line, CodeAtlasMaxWidthRange, "'max_page_width' must be > 0, got %d", a.MaxPageWidth)
	}
	if a.MaxPageHeight <= 0 {
		v.errorf(a.Line, CodeAtlasMaxHeightRange, "'max_page_height' must be > 0, got %d", a.MaxPageHeight)
	}
	if a.Padding < 0 {
		v.errorf(a.Line, CodeAtlasPaddingRange, "'padding' must be >= 0, got %d", a.Padding)
	}
	if a.Sampling != "pixel" && a.Sampling != "linear" {
		v.errorf(a.Line, CodeAtlasSamplingUnknown, "unknown sampling %q, expected 'pixel' or 'linear'", a.Sampling)
	}
}

func (v *validator) validateImages() {
	seen := map[string]bool{}
	for i := range v.m.Images {
		img := &v.m.Images[i]
		if !img.HasID {
			v.errorf(img.Line, CodeImagesMissingID, "image entry missing required 'id'")
		} else if img.ID == "" {
			v.errorf(img.Line, CodeImagesIDInvalid, "image 'id' must not be empty")
		} else if seen[img.ID] {
			v.errorf(img.Line, CodeImagesDuplicateID, "duplicate image id %q", img.ID)
		} else {
			seen[img.ID] = true
		}
		if !img.HasPath || img.Path == "" {
			v.errorf(img.Line, CodeImagesMissingPath, "image %q missing required 'path'", img.ID)
		}
		if img.ColorSpace != "srgb" && img.ColorSpace != "linear" {
			v.errorf(img.Line, CodeImagesColorSpaceUnknown, "image %q: unknown color_space %q", img.ID, img.ColorSpace)
		}
	}
}

func (v *validator) validateSprites() {
	seen := map[string]bool{}
	for i := range v.m.Sprites {
		s := &v.m.Sprites[i]
		if !s.HasID {
			v.errorf(s.Line, CodeSpritesMissingID, "sprite entry missing required 'id'")
		} else if s.ID == "" {
			v.errorf(s.Line, CodeSpritesIDInvalid, "sprite 'id' must not be empty")
		} else if seen[s.ID] {
			v.errorf(s.Line, CodeSpritesDuplicateID, "duplicate sprite id %q", s.ID)
		} else {
			seen[s.ID] = true
		}

		if !s.HasSource || s.Source == "" {
			v.errorf(s.Line, CodeSpritesMissingSource, "sprite %q missing required 'source'", s.ID)
		} else if _, ok := v.m.FindImage(s.Source); !ok {
			v.errorf(s.Line, CodeSpritesSourceUnknown, "sprite %q: unknown source image %q", s.ID, s.Source)
		}

		if s.PivotX < 0 || s.PivotX > 1 {
			v.errorf(s.Line, CodeSpritesPivotXRange, "sprite %q: pivot_x %v out of [0,1]", s.ID, s.PivotX)
		}
		if s.PivotY < 0 || s.PivotY > 1 {
			v.errorf(s.Line, CodeSpritesPivotYRange, "sprite %q: pivot_y %v out of [0,1]", s.ID, s.PivotY)
		}

		switch s.Mode {
		case ModeSingle:
			v.validateSingleSprite(s)
		case ModeGrid:
			v.validateGridSprite(s)
		case ModeRects:
			v.validateRectsSprite(s)
		case "":
			v.errorf(s.Line, CodeSpritesMissingMode, "sprite %q missing required 'mode'", s.ID)
		default:
			v.errorf(s.Line, CodeSpritesModeUnknown, "sprite %q: unknown mode %q", s.ID, s.Mode)
		}
	}
}

func (v *validator) validateSingleSprite(s *Sprite) {
	if s.HasW && s.W <= 0 {
		v.errorf(s.Line, CodeSpritesWInvalid, "sprite %q: 'w' must be > 0, got %d", s.ID, s.W)
	}
	if s.HasH && s.H <= 0 {
		v.errorf(s.Line, CodeSpritesHInvalid, "sprite %q: 'h' must be > 0, got %d", s.ID, s.H)
	}
	if s.HasX && s.X < 0 {
		v.errorf(s.Line, CodeSpritesXInvalid, "sprite %q: 'x' must be >= 0, got %d", s.ID, s.X)
	}
	if s.HasY && s.Y < 0 {
		v.errorf(s.Line, CodeSpritesYInvalid, "sprite %q: 'y' must be >= 0, got %d", s.ID, s.Y)
	}
}

func (v *validator) validateGridSprite(s *Sprite) {
	if !s.HasCellW || s.CellW <= 0 {
		v.errorf(s.Line, CodeSpritesCellWInvalid, "sprite %q: 'cell_w' must be > 0", s.ID)
	}
	if !s.HasCellH || s.CellH <= 0 {
		v.errorf(s.Line, CodeSpritesCellHInvalid, "sprite %q: 'cell_h' must be > 0", s.ID)
	}
	if s.MarginX < 0 {
		v.errorf(s.Line, CodeSpritesMarginXInvalid, "sprite %q: 'margin_x' must be >= 0", s.ID)
	}
	if s.MarginY < 0 {
		v.errorf(s.Line, CodeSpritesMarginYInvalid, "sprite %q: 'margin_y' must be >= 0", s.ID)
	}
	if s.SpacingX < 0 {
		v.errorf(s.Line, CodeSpritesSpacingXInvalid, "sprite %q: 'spacing_x' must be >= 0", s.ID)
	}
	if s.SpacingY < 0 {
		v.errorf(s.Line, CodeSpritesSpacingYInvalid, "sprite %q: 'spacing_y' must be >= 0", s.ID)
	}
	if s.HasFrameStart && s.FrameStart < 0 {
		v.errorf(s.Line, CodeSpritesFrameStartInvalid, "sprite %q: 'frame_start' must be >= 0", s.ID)
	}
	if s.HasFrameCount && s.FrameCount <= 0 {
		v.errorf(s.Line, CodeSpritesFrameCountInvalid, "sprite %q: 'frame_count' must be > 0", s.ID)
	}
	// cols/rows/frame_start+frame_count<=cols*rows bounds depend on the
	// source image's dimensions, unavailable until L3 (spec §4.4); this
	// validator checks only field-local ranges.
}

func (v *validator) validateRectsSprite(s *Sprite) {
	if len(s.Rects) == 0 {
		v.errorf(s.Line, CodeSpritesRectsEmpty, "sprite %q: mode 'rects' requires at least one [[sprites.rects]] entry", s.ID)
		return
	}
	for i := range s.Rects {
		r := &s.Rects[i]
		if r.HasX && r.X < 0 {
			v.errorf(r.Line, CodeRectsXInvalid, "sprite %q: rect[%d] 'x' must be >= 0", s.ID, i)
		}
		if r.HasY && r.Y < 0 {
			v.errorf(r.Line, CodeRectsYInvalid, "sprite %q: rect[%d] 'y' must be >= 0", s.ID, i)
		}
		if !r.HasW || r.W <= 0 {
			v.errorf(r.Line, CodeRectsWInvalid, "sprite %q: rect[%d] 'w' must be > 0", s.ID, i)
		}
		if !r.HasH || r.H <= 0 {
			v.errorf(r.Line, CodeRectsHInvalid, "sprite %q: rect[%d] 'h' must be > 0", s.ID, i)
		}
	}
}

// knownFrameCount reports the frame count of sprite s if it can be
// determined without image dimensions, per spec §4.2's "when the
// referenced sprite's frame count is exactly known" rule.
func knownFrameCount(s *Sprite) (int, bool) {
	switch s.Mode {
	case ModeSingle:
		return 1, true
	case ModeRects:
		return len(s.Rects), true
	case ModeGrid:
		if s.HasFrameCount {
			return s.FrameCount, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func (v *validator) validateAnimations() {
	seen := map[string]bool{}
	for i := range v.m.Animations {
		a := &v.m.Animations[i]
		if !a.HasID {
			v.errorf(a.Line, CodeAnimationsMissingID, "animation entry missing required 'id'")
		} else if a.ID == "" {
			v.errorf(a.Line, CodeAnimationsIDInvalid, "animation 'id' must not be empty")
		} else if seen[a.ID] {
			v.errorf(a.Line, CodeAnimationsDuplicateID, "duplicate animation id %q", a.ID)
		} else {
			seen[a.ID] = true
		}

		var sprite *Sprite
		if !a.HasSprite || a.Sprite == "" {
			v.errorf(a.Line, CodeAnimationsMissingSprite, "animation %q missing required 'sprite'", a.ID)
		} else if sp, ok := v.m.FindSprite(a.Sprite); !ok {
			v.errorf(a.Line, CodeAnimationsSpriteUnknown, "animation %q: unknown sprite %q", a.ID, a.Sprite)
		} else {
			sprite = sp
		}

		if a.LoopMode != "once" && a.LoopMode != "loop" && a.LoopMode != "ping_pong" {
			v.errorf(a.Line, CodeAnimationsLoopUnknown, "animation %q: unknown loop_mode %q", a.ID, a.LoopMode)
		}

		if !a.HasFrames || len(a.Frames) == 0 {
			v.errorf(a.Line, CodeAnimationsFramesMissing, "animation %q requires a non-empty 'frames' array", a.ID)
			continue
		}

		frameCount, known := 0, false
		if sprite != nil {
			frameCount, known = knownFrameCount(sprite)
			if sprite.Mode == ModeGrid && !known {
				v.warnf(a.Line, CodeAnimationsFrameIndexUnbound, "animation %q: referenced grid sprite %q has no explicit frame_count, frame indices cannot be fully checked", a.ID, a.Sprite)
			}
		}

		for _, f := range a.Frames {
			if f.Index < 0 {
				v.errorf(f.Line, CodeAnimationsFrameIndexRange, "animation %q: frame index must be >= 0, got %d", a.ID, f.Index)
			} else if known && f.Index >= frameCount {
				v.errorf(f.Line, CodeAnimationsFrameIndexOOB, "animation %q: frame index %d out of range, sprite %q has %d frames", a.ID, f.Index, a.Sprite, frameCount)
			}
			if f.Ms <= 0 {
				v.errorf(f.Line, CodeAnimationsFrameMsRange, "animation %q: frame ms must be > 0, got %d", a.ID, f.Ms)
			}
		}
	}
}
