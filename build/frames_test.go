package build_test

import (
	"testing"

	"github.com/psucodervn/packrat/build"
	"github.com/psucodervn/packrat/manifest"
)

func TestResolveFramesSingleDefaultsToWholeImage(t *testing.T) {
	m := &manifest.Manifest{
		Sprites: []manifest.Sprite{{ID: "hero", Source: "img", Mode: manifest.ModeSingle}},
	}
	images := []build.ImportedImage{{ID: "img", Width: 64, Height: 32}}

	frames, slices, err := build.ResolveFrames("m.toml", m, images, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	f := frames[0]
	if f.SourceX != 0 || f.SourceY != 0 || f.SourceW != 64 || f.SourceH != 32 {
		t.Errorf("unexpected frame rect: %+v", f)
	}
	if slices[0].FrameCount != 1 || slices[0].FirstFrame != 0 {
		t.Errorf("unexpected slice: %+v", slices[0])
	}
}

func TestResolveFramesGridRange(t *testing.T) {
	m := &manifest.Manifest{
		Sprites: []manifest.Sprite{{
			ID: "hero", Source: "img", Mode: manifest.ModeGrid,
			CellW: 32, CellH: 32, HasCellW: true, HasCellH: true,
			FrameStart: 1, HasFrameStart: true,
			FrameCount: 4, HasFrameCount: true,
		}},
	}
	images := []build.ImportedImage{{ID: "img", Width: 128, Height: 64}}

	frames, _, err := build.ResolveFrames("m.toml", m, images, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []build.SourceFrame{
		{SourceX: 32, SourceY: 0, SourceW: 32, SourceH: 32},
		{SourceX: 64, SourceY: 0, SourceW: 32, SourceH: 32},
		{SourceX: 96, SourceY: 0, SourceW: 32, SourceH: 32},
		{SourceX: 0, SourceY: 32, SourceW: 32, SourceH: 32},
	}
	if len(frames) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(frames))
	}
	for i, w := range want {
		got := frames[i]
		if got.SourceX != w.SourceX || got.SourceY != w.SourceY || got.SourceW != w.SourceW || got.SourceH != w.SourceH {
			t.Errorf("frame[%d] = %+v, want %+v", i, got, w)
		}
	}
}

func TestResolveFramesRectsOrderPreserved(t *testing.T) {
	m := &manifest.Manifest{
		Sprites: []manifest.Sprite{{
			ID: "hero", Source: "img", Mode: manifest.ModeRects,
			Rects: []manifest.Rect{
				{X: 0, Y: 0, W: 8, H: 8, HasW: true, HasH: true},
				{X: 8, Y: 0, W: 8, H: 8, HasW: true, HasH: true},
			},
		}},
	}
	images := []build.ImportedImage{{ID: "img", Width: 16, Height: 8}}

	frames, _, err := build.ResolveFrames("m.toml", m, images, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 2 || frames[0].SourceX != 0 || frames[1].SourceX != 8 {
		t.Errorf("unexpected frames: %+v", frames)
	}
}

func TestResolveFramesRectOutsideImageIsError(t *testing.T) {
	m := &manifest.Manifest{
		Sprites: []manifest.Sprite{{
			ID: "hero", Source: "img", Mode: manifest.ModeRects,
			Rects: []manifest.Rect{{X: 0, Y: 0, W: 100, H: 100, HasW: true, HasH: true}},
		}},
	}
	images := []build.ImportedImage{{ID: "img", Width: 16, Height: 8}}

	_, _, err := build.ResolveFrames("m.toml", m, images, nil)
	if err == nil {
		t.Fatalf("expected an error for out-of-bounds rect")
	}
}

func TestResolveFramesZeroFramesIsError(t *testing.T) {
	m := &manifest.Manifest{
		Sprites: []manifest.Sprite{{ID: "hero", Source: "img", Mode: manifest.ModeRects}},
	}
	images := []build.ImportedImage{{ID: "img", Width: 16, Height: 8}}

	_, _, err := build.ResolveFrames("m.toml", m, images, nil)
	if err == nil {
		t.Fatalf("expected an error for a sprite with zero rects")
	}
}
