package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/psucodervn/packrat/runtime"
)

func animationTotalMs(a runtime.Animation) int {
	total := 0
	for _, f := range a.Frames() {
		total += f.DurationMs
	}
	return total
}

// printInspectText mirrors original_source's pr_cli_print_inspect_text
// layout. In verbose mode it also dumps the fully resolved package
// tree with go-spew, since the terse per-line format doesn't carry
// every field (pivot, source rects) worth inspecting.
func printInspectText(w io.Writer, packagePath string, pkg *runtime.Package, verbose bool) {
	fmt.Fprintf(w, "Package: %s\n", packagePath)
	fmt.Fprintf(w, "Atlas pages: %d\n", pkg.AtlasPageCount())
	fmt.Fprintf(w, "Sprites: %d\n", pkg.SpriteCount())
	fmt.Fprintf(w, "Animations: %d\n", pkg.AnimationCount())

	if !verbose {
		return
	}

	fmt.Fprintf(w, "\nAtlas:\n")
	for i := 0; i < pkg.AtlasPageCount(); i++ {
		page, _ := pkg.AtlasPageAt(i)
		fmt.Fprintf(w, "  [%d] %dx%d pixels=%s\n", i, page.Width, page.Height, yesNo(len(page.Pixels) > 0))
	}

	fmt.Fprintf(w, "\nSprites:\n")
	for i := 0; i < pkg.SpriteCount(); i++ {
		sprite, _ := pkg.SpriteAt(i)
		fmt.Fprintf(w, "  [%d] id=%s frames=%d\n", i, sprite.ID(), sprite.FrameCount())
		for j, f := range sprite.Frames() {
			fmt.Fprintf(w, "    frame[%d] page=%d rect=(%d,%d,%d,%d) uv=(%.4f,%.4f)-(%.4f,%.4f)\n",
				j, f.AtlasPage, f.AtlasX, f.AtlasY, f.AtlasW, f.AtlasH, f.U0, f.V0, f.U1, f.V1)
		}
	}

	fmt.Fprintf(w, "\nAnimations:\n")
	for i := 0; i < pkg.AnimationCount(); i++ {
		anim, _ := pkg.AnimationAt(i)
		fmt.Fprintf(w, "  [%d] id=%s sprite=%s loop=%s frames=%d total_ms=%d\n",
			i, anim.ID(), anim.Sprite().ID(), anim.LoopMode(), anim.FrameCount(), animationTotalMs(anim))
		for j, k := range anim.Frames() {
			fmt.Fprintf(w, "    key[%d] sprite_frame=%d ms=%d\n", j, k.FrameIndex, k.DurationMs)
		}
	}

	dumper := &spew.ConfigState{Indent: " ", DisableMethods: true}
	fmt.Fprintf(w, "\nFull resolved tree:\n%s", dumper.Sdump(pkg))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// jsonEscape mirrors original_source's pr_cli_json_escaped: only
// `\`, `"`, `\n`, `\r`, `\t` are escaped, every other byte passes
// through untouched.
func jsonEscape(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
}

func printInspectJSON(w io.Writer, packagePath string, pkg *runtime.Package, verbose bool) {
	var b strings.Builder
	b.WriteString(`{"package":"`)
	jsonEscape(&b, packagePath)
	fmt.Fprintf(&b, `","atlas_pages":%d,"sprite_count":%d,"animation_count":%d`,
		pkg.AtlasPageCount(), pkg.SpriteCount(), pkg.AnimationCount())

	if !verbose {
		b.WriteString("}\n")
		io.WriteString(w, b.String())
		return
	}

	b.WriteString(`,"atlas":[`)
	for i := 0; i < pkg.AtlasPageCount(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		page, _ := pkg.AtlasPageAt(i)
		fmt.Fprintf(&b, `{"index":%d,"width":%d,"height":%d,"has_pixels":%t}`, i, page.Width, page.Height, len(page.Pixels) > 0)
	}
	b.WriteString("]")

	b.WriteString(`,"sprites":[`)
	for i := 0; i < pkg.SpriteCount(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		sprite, _ := pkg.SpriteAt(i)
		b.WriteString(`{"id":"`)
		jsonEscape(&b, sprite.ID())
		fmt.Fprintf(&b, `","frame_count":%d,"frames":[`, sprite.FrameCount())
		for j, f := range sprite.Frames() {
			if j > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b,
				`{"index":%d,"atlas_page":%d,"x":%d,"y":%d,"w":%d,"h":%d,"u0":%.6f,"v0":%.6f,"u1":%.6f,"v1":%.6f,"pivot_x":%.3f,"pivot_y":%.3f}`,
				j, f.AtlasPage, f.AtlasX, f.AtlasY, f.AtlasW, f.AtlasH, f.U0, f.V0, f.U1, f.V1, sprite.PivotX(), sprite.PivotY())
		}
		b.WriteString("]}")
	}
	b.WriteString("]")

	b.WriteString(`,"animations":[`)
	for i := 0; i < pkg.AnimationCount(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		anim, _ := pkg.AnimationAt(i)
		b.WriteString(`{"id":"`)
		jsonEscape(&b, anim.ID())
		b.WriteString(`","sprite":"`)
		jsonEscape(&b, anim.Sprite().ID())
		fmt.Fprintf(&b, `","loop":"%s","frame_count":%d,"total_ms":%d,"frames":[`,
			anim.LoopMode(), anim.FrameCount(), animationTotalMs(anim))
		for j, k := range anim.Frames() {
			if j > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, `{"index":%d,"sprite_frame":%d,"ms":%d}`, j, k.FrameIndex, k.DurationMs)
		}
		b.WriteString("]}")
	}
	b.WriteString("]}\n")

	io.WriteString(w, b.String())
}
