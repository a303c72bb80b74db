// Package manifest implements the manifest loader/parser (L1) and
// validator (L2) described in spec §4.1/§4.2: a restricted TOML-like
// grammar tokenized and validated by hand, grounded on
// original_source/src/manifest.c's field set and diagnostic codes.
package manifest

// Manifest is the parsed, not-yet-defaulted manifest tree.
type Manifest struct {
	SchemaVersion    int
	HasSchemaVersion bool

	PackageName    string
	HasPackageName bool

	Output    string
	HasOutput bool

	DebugOutput    string
	HasDebugOutput bool

	PrettyDebugJSON    bool
	HasPrettyDebugJSON bool

	Atlas Atlas

	Images     []Image
	Sprites    []Sprite
	Animations []Animation
}

// Atlas holds the [atlas] table.
type Atlas struct {
	MaxPageWidth    int
	HasMaxPageWidth bool

	MaxPageHeight    int
	HasMaxPageHeight bool

	Padding    int
	HasPadding bool

	PowerOfTwo    bool
	HasPowerOfTwo bool

	Sampling    string
	HasSampling bool

	Line int
}

// Image is one [[images]] entry.
type Image struct {
	ID    string
	HasID bool

	Path    string
	HasPath bool

	PremultiplyAlpha    bool
	HasPremultiplyAlpha bool

	ColorSpace    string
	HasColorSpace bool

	Line int
}

// Rect is one [[sprites.rects]] entry, attached to the sprite that was
// most recently opened.
type Rect struct {
	X, Y, W, H             int
	HasX, HasY, HasW, HasH bool

	Label    string
	HasLabel bool

	Line int
}

// Sprite is one [[sprites]] entry. Fields are a superset of all three
// authoring modes; which subset is meaningful depends on Mode.
type Sprite struct {
	ID    string
	HasID bool

	Source    string
	HasSource bool

	Mode    string
	HasMode bool

	PivotX, PivotY             float64
	HasPivotX, HasPivotY       bool

	// single mode
	X, Y, W, H             int
	HasX, HasY, HasW, HasH bool

	// grid mode
	CellW, CellH           int
	HasCellW, HasCellH     bool
	FrameStart             int
	HasFrameStart          bool
	FrameCount             int
	HasFrameCount          bool
	MarginX, MarginY       int
	HasMarginX, HasMarginY bool
	SpacingX, SpacingY     int
	HasSpacingX, HasSpacingY bool

	// rects mode
	Rects []Rect

	Line int
}

const (
	ModeSingle = "single"
	ModeGrid   = "grid"
	ModeRects  = "rects"
)

// AnimationFrame is one entry of an animation's `frames` inline-table
// array.
type AnimationFrame struct {
	Index    int
	HasIndex bool

	Ms    int
	HasMs bool

	Line int
}

// Animation is one [[animations]] entry.
type Animation struct {
	ID    string
	HasID bool

	Sprite    string
	HasSprite bool

	LoopMode    string
	HasLoopMode bool

	Frames    []AnimationFrame
	HasFrames bool

	Line int
}

// ApplyDefaults fills every optional field with its spec-mandated
// default. Called after a successful parse, before validation, so
// that validator range checks see concrete values.
func ApplyDefaults(m *Manifest) {
	if !m.Atlas.HasMaxPageWidth {
		m.Atlas.MaxPageWidth = 2048
	}
	if !m.Atlas.HasMaxPageHeight {
		m.Atlas.MaxPageHeight = 2048
	}
	if !m.Atlas.HasPadding {
		m.Atlas.Padding = 1
	}
	if !m.Atlas.HasSampling {
		m.Atlas.Sampling = "pixel"
	}
	for i := range m.Images {
		if !m.Images[i].HasColorSpace {
			m.Images[i].ColorSpace = "srgb"
		}
	}
	for i := range m.Sprites {
		if !m.Sprites[i].HasPivotX {
			m.Sprites[i].PivotX = 0.5
		}
		if !m.Sprites[i].HasPivotY {
			m.Sprites[i].PivotY = 0.5
		}
	}
	for i := range m.Animations {
		if !m.Animations[i].HasLoopMode {
			m.Animations[i].LoopMode = "loop"
		}
	}
}

// FindImage returns the image with the given id, if any.
func (m *Manifest) FindImage(id string) (*Image, bool) {
	for i := range m.Images {
		if m.Images[i].HasID && m.Images[i].ID == id {
			return &m.Images[i], true
		}
	}
	return nil, false
}

// FindSprite returns the sprite with the given id, if any.
func (m *Manifest) FindSprite(id string) (*Sprite, bool) {
	for i := range m.Sprites {
		if m.Sprites[i].HasID && m.Sprites[i].ID == id {
			return &m.Sprites[i], true
		}
	}
	return nil, false
}
