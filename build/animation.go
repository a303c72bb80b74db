package build

import (
	"fmt"

	"github.com/psucodervn/packrat/diag"
	"github.com/psucodervn/packrat/format"
	"github.com/psucodervn/packrat/manifest"
	"github.com/psucodervn/packrat/status"
)

// AnimationKey is one flattened (animation, frame) binding, spec §4.6.
type AnimationKey struct {
	AnimationIndex int
	FrameIndex     int
	DurationMs     int
}

// ResolvedAnimation is the L6 result for one manifest animation entry.
// NameStrIdx is filled in later by L7.
type ResolvedAnimation struct {
	NameStrIdx      int
	SpriteIndex     int
	LoopMode        format.LoopMode
	KeyStart        int
	KeyCount        int
	TotalDurationMs int
}

// ResolveAnimations runs L6: flattens every manifest animation into a
// ResolvedAnimation plus a contiguous slice of the global AnimationKey
// array, per spec §4.6. spriteIndexByID maps sprite id to its index in
// m.Sprites.
func ResolveAnimations(manifestPath string, m *manifest.Manifest, slices []SpriteSlice, sink diag.Sink) ([]ResolvedAnimation, []AnimationKey, error) {
	spriteIndexByID := make(map[string]int, len(m.Sprites))
	for i := range m.Sprites {
		spriteIndexByID[m.Sprites[i].ID] = i
	}

	var keys []AnimationKey
	anims := make([]ResolvedAnimation, len(m.Animations))

	for ai := range m.Animations {
		a := &m.Animations[ai]
		spriteIdx, ok := spriteIndexByID[a.Sprite]
		if !ok {
			return nil, nil, status.New(status.InternalError, "animation %q: sprite %q not found at L6", a.ID, a.Sprite)
		}
		frameCount := slices[spriteIdx].FrameCount
		loopMode, ok := format.ParseLoopMode(a.LoopMode)
		if !ok {
			return nil, nil, status.New(status.InternalError, "animation %q: invalid loop_mode %q reached L6", a.ID, a.LoopMode)
		}

		keyStart := len(keys)
		total := 0
		for _, f := range a.Frames {
			if f.Index >= frameCount {
				diag.Emit(sink, diag.Diagnostic{
					Severity: diag.Error,
					Message:  fmt.Sprintf("animation %q: frame index %d out of range (sprite %q has %d frames)", a.ID, f.Index, a.Sprite, frameCount),
					File:     manifestPath,
					Line:     f.Line,
					Code:     "build.animation.frame_index_oob",
					AssetID:  a.ID,
				})
				return nil, nil, status.New(status.ValidationError, "animation %q: frame index out of range", a.ID)
			}
			ms := f.Ms
			if ms < 0 {
				ms = 0
			}
			keys = append(keys, AnimationKey{AnimationIndex: ai, FrameIndex: f.Index, DurationMs: ms})
			total += ms
		}

		anims[ai] = ResolvedAnimation{
			SpriteIndex:     spriteIdx,
			LoopMode:        loopMode,
			KeyStart:        keyStart,
			KeyCount:        len(a.Frames),
			TotalDurationMs: total,
		}
	}

	return anims, keys, nil
}
