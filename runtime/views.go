package runtime

import "github.com/psucodervn/packrat/format"

// Sprite is a borrow-free view over one parsed sprite record. It is
// valid only while the underlying Package is reachable.
type Sprite struct {
	pkg   *Package
	index int
}

func (s Sprite) ID() string {
	return s.pkg.stringAt(s.pkg.sprites[s.index].nameStrIdx)
}

func (s Sprite) Index() int { return s.index }

func (s Sprite) Mode() format.SpriteMode { return s.pkg.sprites[s.index].mode }

func (s Sprite) SourceImageIndex() int { return int(s.pkg.sprites[s.index].sourceImageIndex) }

func (s Sprite) PivotX() float64 {
	return float64(s.pkg.sprites[s.index].pivotXMilli) / format.PivotScale
}

func (s Sprite) PivotY() float64 {
	return float64(s.pkg.sprites[s.index].pivotYMilli) / format.PivotScale
}

func (s Sprite) FrameCount() int { return int(s.pkg.sprites[s.index].frameCount) }

// Frame returns the view of the local-index'th frame owned by this
// sprite. Callers must not pass an index >= FrameCount().
func (s Sprite) Frame(localIndex int) SpriteFrame {
	rec := s.pkg.sprites[s.index]
	return newSpriteFrame(s.pkg.frames[rec.firstFrame+uint32(localIndex)])
}

// Frames materializes every frame owned by this sprite, in local
// frame order.
func (s Sprite) Frames() []SpriteFrame {
	rec := s.pkg.sprites[s.index]
	out := make([]SpriteFrame, rec.frameCount)
	for i := range out {
		out[i] = newSpriteFrame(s.pkg.frames[rec.firstFrame+uint32(i)])
	}
	return out
}

// SpriteFrame is a fully materialized per-frame view: source rect,
// atlas placement, and UVs converted from the on-disk fixed-point
// integer encoding to float64. Pivot is a sprite-level field
// (Sprite.PivotX/PivotY).
type SpriteFrame struct {
	LocalFrameIndex int

	SourceX, SourceY, SourceW, SourceH int

	AtlasPage                      int
	AtlasX, AtlasY, AtlasW, AtlasH int

	U0, V0, U1, V1 float64
}

func newSpriteFrame(f frameRecord) SpriteFrame {
	return SpriteFrame{
		LocalFrameIndex: int(f.localFrameIndex),
		SourceX:         int(f.sourceX),
		SourceY:         int(f.sourceY),
		SourceW:         int(f.sourceW),
		SourceH:         int(f.sourceH),
		AtlasPage:       int(f.atlasPage),
		AtlasX:          int(f.atlasX),
		AtlasY:          int(f.atlasY),
		AtlasW:          int(f.atlasW),
		AtlasH:          int(f.atlasH),
		U0:              float64(f.u0) / format.UVScale,
		V0:              float64(f.v0) / format.UVScale,
		U1:              float64(f.u1) / format.UVScale,
		V1:              float64(f.v1) / format.UVScale,
	}
}

// Animation is a borrow-free view over one parsed animation record.
type Animation struct {
	pkg   *Package
	index int
}

func (a Animation) ID() string {
	return a.pkg.stringAt(a.pkg.animations[a.index].nameStrIdx)
}

func (a Animation) Index() int { return a.index }

func (a Animation) SpriteIndex() int { return int(a.pkg.animations[a.index].spriteIndex) }

func (a Animation) Sprite() Sprite {
	return Sprite{pkg: a.pkg, index: int(a.pkg.animations[a.index].spriteIndex)}
}

func (a Animation) LoopMode() format.LoopMode { return a.pkg.animations[a.index].loopMode }

func (a Animation) TotalDurationMs() int { return int(a.pkg.animations[a.index].totalDurationMs) }

func (a Animation) FrameCount() int { return int(a.pkg.animations[a.index].keyCount) }

// Frames materializes every keyframe of this animation, in timeline
// order.
func (a Animation) Frames() []AnimFrame {
	rec := a.pkg.animations[a.index]
	out := make([]AnimFrame, rec.keyCount)
	for i := range out {
		k := a.pkg.keys[rec.keyStart+uint32(i)]
		out[i] = AnimFrame{FrameIndex: int(k.frameIndex), DurationMs: int(k.durationMs)}
	}
	return out
}

// AnimFrame is one keyframe: the sprite-local frame index to display,
// held for DurationMs milliseconds.
type AnimFrame struct {
	FrameIndex int
	DurationMs int
}

// AtlasPage is one decoded atlas page's pixel buffer, tightly packed
// RGBA8 rows.
type AtlasPage struct {
	Width, Height int
	Pixels        []byte
}
