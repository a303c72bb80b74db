package build

import (
	"github.com/psucodervn/packrat/format"
	"github.com/psucodervn/packrat/manifest"
	"github.com/psucodervn/packrat/status"
)

// ResolvedSprite is the L7 sprite record, ready for chunk encoding.
type ResolvedSprite struct {
	NameStrIdx       int
	SourceImageIndex int
	Mode             format.SpriteMode
	FirstFrame       int
	FrameCount       int
	PivotXMilli      int
	PivotYMilli      int
}

func parseSpriteMode(s string) (format.SpriteMode, bool) {
	switch s {
	case manifest.ModeSingle:
		return format.SpriteModeSingle, true
	case manifest.ModeGrid:
		return format.SpriteModeGrid, true
	case manifest.ModeRects:
		return format.SpriteModeRects, true
	default:
		return 0, false
	}
}

// BuildResolvedSprites assembles the ResolvedSprite array from the
// manifest tree, the L4 frame slices, and the L7 string/image index
// maps.
func BuildResolvedSprites(m *manifest.Manifest, images []ImportedImage, slices []SpriteSlice, refs StringRefs) ([]ResolvedSprite, error) {
	imageIndexByID := make(map[string]int, len(images))
	for i, img := range images {
		imageIndexByID[img.ID] = i
	}

	out := make([]ResolvedSprite, len(m.Sprites))
	for i := range m.Sprites {
		s := &m.Sprites[i]
		mode, ok := parseSpriteMode(s.Mode)
		if !ok {
			return nil, status.New(status.InternalError, "sprite %q: unresolved mode %q reached L7", s.ID, s.Mode)
		}
		imgIdx, ok := imageIndexByID[s.Source]
		if !ok {
			return nil, status.New(status.InternalError, "sprite %q: source image %q not imported at L7", s.ID, s.Source)
		}
		out[i] = ResolvedSprite{
			NameStrIdx:       refs.SpriteID[i],
			SourceImageIndex: imgIdx,
			Mode:             mode,
			FirstFrame:       slices[i].FirstFrame,
			FrameCount:       slices[i].FrameCount,
			PivotXMilli:      int(s.PivotX * format.PivotScale),
			PivotYMilli:      int(s.PivotY * format.PivotScale),
		}
	}
	return out, nil
}
