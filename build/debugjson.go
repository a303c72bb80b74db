package build

import (
	"fmt"
	"strings"

	"github.com/psucodervn/packrat/manifest"
)

// DebugImageEntry is one entry of the debug JSON's "images" array.
type DebugImageEntry struct {
	ID           string
	ResolvedPath string
	Width        int
	Height       int
	Bytes        int
	Format       string
}

// DebugReport is the full debug-JSON payload, spec §6.4.
type DebugReport struct {
	SchemaVersion int
	PackageName   string
	Output        string
	ImageCount    int
	SpriteCount   int
	AnimationCount int
	Images        []DebugImageEntry
}

// BuildDebugReport assembles a DebugReport from the manifest and the
// L3-imported images.
func BuildDebugReport(m *manifest.Manifest, images []ImportedImage) DebugReport {
	entries := make([]DebugImageEntry, len(images))
	for i, img := range images {
		entries[i] = DebugImageEntry{
			ID:           img.ID,
			ResolvedPath: img.ResolvedPath,
			Width:        img.Width,
			Height:       img.Height,
			Bytes:        img.SourceBytes,
			Format:       "rgba8",
		}
	}
	return DebugReport{
		SchemaVersion:  m.SchemaVersion,
		PackageName:    m.PackageName,
		Output:         m.Output,
		ImageCount:     len(images),
		SpriteCount:    len(m.Sprites),
		AnimationCount: len(m.Animations),
		Images:         entries,
	}
}

// jsonString writes s double-quoted, escaping only `\`, `"`, `\n`,
// `\r`, `\t`; every other byte (including other control bytes) passes
// through unchanged, per spec §6.4.
func jsonString(b *strings.Builder, s string) {
	b.WriteByte('"')
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
	b.WriteByte('"')
}

// EncodeDebugJSON renders r as compact (single line) or pretty
// (2-space indent, trailing newline) JSON, per spec §6.4.
func EncodeDebugJSON(r DebugReport, pretty bool) []byte {
	var b strings.Builder
	w := &jsonWriter{b: &b, pretty: pretty}

	w.beginObject()
	w.field("schema_version", func() { w.writeInt(r.SchemaVersion) })
	w.field("package_name", func() { jsonString(w.b, r.PackageName) })
	w.field("output", func() { jsonString(w.b, r.Output) })
	w.field("counts", func() {
		w.beginObject()
		w.field("images", func() { w.writeInt(r.ImageCount) })
		w.field("sprites", func() { w.writeInt(r.SpriteCount) })
		w.field("animations", func() { w.writeInt(r.AnimationCount) })
		w.endObject()
	})
	w.field("images", func() {
		w.beginArray()
		for _, img := range r.Images {
			w.arrayElement(func() {
				w.beginObject()
				w.field("id", func() { jsonString(w.b, img.ID) })
				w.field("resolved_path", func() { jsonString(w.b, img.ResolvedPath) })
				w.field("width", func() { w.writeInt(img.Width) })
				w.field("height", func() { w.writeInt(img.Height) })
				w.field("bytes", func() { w.writeInt(img.Bytes) })
				w.field("format", func() { jsonString(w.b, img.Format) })
				w.endObject()
			})
		}
		w.endArray()
	})
	w.endObject()

	out := b.String()
	if pretty {
		out += "\n"
	}
	return []byte(out)
}

// jsonWriter is a minimal hand-rolled object/array writer supporting
// the two formatting modes spec §6.4 requires; there is no general
// JSON encoder in the pack whose default escaping matches the spec's
// narrow passthrough rule, so the whole writer (not just the string
// escaper) is bespoke.
type jsonWriter struct {
	b       *strings.Builder
	pretty  bool
	depth   int
	stack   []bool // per-level: has the first child been written yet
}

func (w *jsonWriter) indent() {
	if !w.pretty {
		return
	}
	w.b.WriteByte('\n')
	for i := 0; i < w.depth; i++ {
		w.b.WriteString("  ")
	}
}

func (w *jsonWriter) beginObject() {
	w.b.WriteByte('{')
	w.stack = append(w.stack, false)
	w.depth++
}

func (w *jsonWriter) endObject() {
	w.depth--
	if w.stack[len(w.stack)-1] {
		w.indent()
	}
	w.stack = w.stack[:len(w.stack)-1]
	w.b.WriteByte('}')
}

func (w *jsonWriter) beginArray() {
	w.b.WriteByte('[')
	w.stack = append(w.stack, false)
	w.depth++
}

func (w *jsonWriter) endArray() {
	w.depth--
	if w.stack[len(w.stack)-1] {
		w.indent()
	}
	w.stack = w.stack[:len(w.stack)-1]
	w.b.WriteByte(']')
}

func (w *jsonWriter) beforeChild() {
	top := len(w.stack) - 1
	if w.stack[top] {
		w.b.WriteByte(',')
	}
	w.stack[top] = true
	w.indent()
}

func (w *jsonWriter) field(name string, value func()) {
	w.beforeChild()
	jsonString(w.b, name)
	w.b.WriteByte(':')
	if w.pretty {
		w.b.WriteByte(' ')
	}
	value()
}

func (w *jsonWriter) arrayElement(value func()) {
	w.beforeChild()
	value()
}

func (w *jsonWriter) writeInt(v int) {
	fmt.Fprintf(w.b, "%d", v)
}
