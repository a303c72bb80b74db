package build

import (
	"github.com/psucodervn/packrat/manifest"
)

// StringTable interns strings in insertion order with deduplication,
// per spec §4.7. Index 0 is reserved for the package name.
type StringTable struct {
	strings []string
	index   map[string]int
}

// NewStringTable creates an empty table.
func NewStringTable() *StringTable {
	return &StringTable{index: make(map[string]int)}
}

// Intern returns s's stable index, appending it if not already present.
func (t *StringTable) Intern(s string) int {
	if idx, ok := t.index[s]; ok {
		return idx
	}
	idx := len(t.strings)
	t.strings = append(t.strings, s)
	t.index[s] = idx
	return idx
}

// Strings returns the interned strings in index order.
func (t *StringTable) Strings() []string { return t.strings }

// StringRefs collects every *_str_idx an encoded package needs.
type StringRefs struct {
	ImageID, ImagePath []int
	SpriteID           []int
	AnimationID        []int
}

// BuildStrings runs L7: interns the package name first, then every
// image id and resolved path, every sprite id, every animation id, in
// that order, per spec §4.7.
func BuildStrings(m *manifest.Manifest, images []ImportedImage) (*StringTable, StringRefs) {
	t := NewStringTable()
	t.Intern(m.PackageName)

	refs := StringRefs{
		ImageID:     make([]int, len(images)),
		ImagePath:   make([]int, len(images)),
		SpriteID:    make([]int, len(m.Sprites)),
		AnimationID: make([]int, len(m.Animations)),
	}

	for i, img := range images {
		refs.ImageID[i] = t.Intern(img.ID)
		refs.ImagePath[i] = t.Intern(img.ResolvedPath)
	}
	for i := range m.Sprites {
		refs.SpriteID[i] = t.Intern(m.Sprites[i].ID)
	}
	for i := range m.Animations {
		refs.AnimationID[i] = t.Intern(m.Animations[i].ID)
	}

	return t, refs
}
