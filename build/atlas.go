package build

import (
	"fmt"
	"sort"

	"github.com/psucodervn/packrat/diag"
	"github.com/psucodervn/packrat/format"
	"github.com/psucodervn/packrat/manifest"
	"github.com/psucodervn/packrat/status"
)

// PlacedFrame is a SourceFrame after atlas placement, with integer UVs
// quantized to millionths of the unit square (spec §4.5 step 5).
type PlacedFrame struct {
	SourceFrame
	AtlasPage              int
	AtlasX, AtlasY         int
	AtlasW, AtlasH         int
	U0, V0, U1, V1         int
}

// AtlasPageResult is one packed output page: its negotiated dimensions
// and composited RGBA8 pixel buffer.
type AtlasPageResult struct {
	MaxW, MaxH     int
	UsedW, UsedH   int
	FinalW, FinalH int
	Pixels         []byte // FinalW * FinalH * 4, top-down RGBA8
}

type packItem struct {
	frameIdx int
	paddedW  int
	paddedH  int
	area     int
}

type pageState struct {
	cursorX, cursorY int
	shelfH           int
	usedW, usedH     int
	placements       []placement
}

type placement struct {
	frameIdx int
	x, y     int // content position, excludes padding
}

// PackAtlas runs L5: deterministic shelf packing of every resolved
// source frame into one or more atlas pages, per spec §4.5.
func PackAtlas(manifestPath string, m *manifest.Manifest, images []ImportedImage, frames []SourceFrame, sink diag.Sink) ([]PlacedFrame, []AtlasPageResult, error) {
	atlas := m.Atlas
	padding := atlas.Padding
	maxW, maxH := atlas.MaxPageWidth, atlas.MaxPageHeight

	items := make([]packItem, len(frames))
	for i, f := range frames {
		paddedW := f.SourceW + 2*padding
		paddedH := f.SourceH + 2*padding
		if paddedW > maxW || paddedH > maxH {
			sp := m.Sprites[f.SpriteIndex]
			diag.Emit(sink, diag.Diagnostic{
				Severity: diag.Error,
				Message:  fmt.Sprintf("sprite %q frame %d: padded footprint %dx%d exceeds max page size %dx%d", sp.ID, f.LocalFrameIndex, paddedW, paddedH, maxW, maxH),
				File:     manifestPath,
				Line:     sp.Line,
				Code:     "build.atlas.frame_too_large",
				AssetID:  sp.ID,
			})
			return nil, nil, status.New(status.ValidationError, "frame too large for atlas page")
		}
		items[i] = packItem{frameIdx: i, paddedW: paddedW, paddedH: paddedH, area: paddedW * paddedH}
	}

	if len(items) == 0 {
		return nil, nil, nil
	}

	sorted := make([]packItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.area != b.area {
			return a.area > b.area
		}
		if a.paddedH != b.paddedH {
			return a.paddedH > b.paddedH
		}
		if a.paddedW != b.paddedW {
			return a.paddedW > b.paddedW
		}
		fa, fb := frames[a.frameIdx], frames[b.frameIdx]
		if fa.SpriteIndex != fb.SpriteIndex {
			return fa.SpriteIndex < fb.SpriteIndex
		}
		return fa.LocalFrameIndex < fb.LocalFrameIndex
	})

	var pages []*pageState
	placedPage := make([]int, len(frames))
	placedX := make([]int, len(frames))
	placedY := make([]int, len(frames))

	for _, it := range sorted {
		placed := false
		for pi, pg := range pages {
			if tryPlace(pg, it, padding, maxW, maxH) {
				placedPage[it.frameIdx] = pi
				placedX[it.frameIdx] = pg.placements[len(pg.placements)-1].x
				placedY[it.frameIdx] = pg.placements[len(pg.placements)-1].y
				placed = true
				break
			}
		}
		if placed {
			continue
		}

		pg := &pageState{}
		if !tryPlace(pg, it, padding, maxW, maxH) {
			return nil, nil, status.New(status.InternalError, "fresh atlas page rejected an item that already passed the size check")
		}
		pages = append(pages, pg)
		placedPage[it.frameIdx] = len(pages) - 1
		placedX[it.frameIdx] = pg.placements[len(pg.placements)-1].x
		placedY[it.frameIdx] = pg.placements[len(pg.placements)-1].y
	}

	results := make([]AtlasPageResult, len(pages))
	for pi, pg := range pages {
		finalW, finalH := pg.usedW, pg.usedH
		if finalW < 1 {
			finalW = 1
		}
		if finalH < 1 {
			finalH = 1
		}
		if atlas.PowerOfTwo {
			finalW = nextPowerOfTwoClamped(finalW, maxW)
			finalH = nextPowerOfTwoClamped(finalH, maxH)
		}
		results[pi] = AtlasPageResult{
			MaxW: maxW, MaxH: maxH,
			UsedW: pg.usedW, UsedH: pg.usedH,
			FinalW: finalW, FinalH: finalH,
			Pixels: make([]byte, finalW*finalH*4),
		}
	}

	placedFrames := make([]PlacedFrame, len(frames))
	for i, f := range frames {
		pi := placedPage[i]
		page := &results[pi]
		x, y := placedX[i], placedY[i]

		sp := m.Sprites[f.SpriteIndex]
		img, _ := FindImported(images, sp.Source)
		compositeFrame(page, img, f, x, y)

		u0 := x * format.UVScale / page.FinalW
		u1 := (x + f.SourceW) * format.UVScale / page.FinalW
		v0 := y * format.UVScale / page.FinalH
		v1 := (y + f.SourceH) * format.UVScale / page.FinalH

		placedFrames[i] = PlacedFrame{
			SourceFrame: f,
			AtlasPage:   pi,
			AtlasX:      x, AtlasY: y,
			AtlasW: f.SourceW, AtlasH: f.SourceH,
			U0: u0, V0: v0, U1: u1, V1: v1,
		}
	}

	return placedFrames, results, nil
}

// tryPlace attempts to place it on pg using the shelf algorithm of
// spec §4.5 step 2, mutating pg's cursor/shelf state on success.
func tryPlace(pg *pageState, it packItem, padding, maxW, maxH int) bool {
	if pg.cursorX+it.paddedW > maxW {
		pg.cursorY += pg.shelfH
		pg.cursorX = 0
		pg.shelfH = 0
	}
	if pg.cursorY+it.paddedH > maxH {
		return false
	}
	x := pg.cursorX + padding
	y := pg.cursorY + padding
	pg.cursorX += it.paddedW
	if it.paddedH > pg.shelfH {
		pg.shelfH = it.paddedH
	}
	if pg.cursorX > pg.usedW {
		pg.usedW = pg.cursorX
	}
	if pg.cursorY+pg.shelfH > pg.usedH {
		pg.usedH = pg.cursorY + pg.shelfH
	}
	pg.placements = append(pg.placements, placement{frameIdx: it.frameIdx, x: x, y: y})
	return true
}

func nextPowerOfTwoClamped(n, max int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	if p > max {
		p = max
	}
	return p
}

// compositeFrame copies one source frame's pixels from its source
// image into the destination page at (x,y).
func compositeFrame(page *AtlasPageResult, img *ImportedImage, f SourceFrame, x, y int) {
	for row := 0; row < f.SourceH; row++ {
		srcOff := (f.SourceY+row)*img.TightRowBytes + f.SourceX*4
		dstOff := (y+row)*page.FinalW*4 + x*4
		copy(page.Pixels[dstOff:dstOff+f.SourceW*4], img.Pixels[srcOff:srcOff+f.SourceW*4])
	}
}
