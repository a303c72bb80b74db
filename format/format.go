// Package format defines the on-disk layout of a .prpk package
// (spec §4.8 / §6.3) shared between the chunk encoder (build) and the
// runtime reader, so the two can never drift apart — the same reason
// the teacher centralizes every output descriptor template in one
// `target` package instead of duplicating string layout per caller.
package format

// Magic is the four-byte container magic at offset 0.
const Magic = "PRPK"

const (
	VersionMajor uint16 = 1
	VersionMinor uint16 = 0
)

// HeaderSize is the fixed container header size in bytes (spec §4.8).
const HeaderSize = 24

// ChunkTableEntrySize is the fixed size of one chunk-table record.
const ChunkTableEntrySize = 20

// Chunk ids, always exactly 4 ASCII bytes.
const (
	ChunkSTRS = "STRS"
	ChunkTXTR = "TXTR"
	ChunkSPRT = "SPRT"
	ChunkANIM = "ANIM"
	ChunkINDX = "INDX"
)

// Chunk payload versions; every chunk in this format is version 1.
const ChunkVersion uint32 = 1

// SpriteMode mirrors manifest authoring modes, stored as the SPRT
// chunk's per-sprite `mode` field.
type SpriteMode uint32

const (
	SpriteModeSingle SpriteMode = iota
	SpriteModeGrid
	SpriteModeRects
)

// LoopMode mirrors animation loop modes, stored as the ANIM chunk's
// per-animation `loop_mode` field.
type LoopMode uint32

const (
	LoopOnce LoopMode = iota
	LoopLoop
	LoopPingPong
)

// ParseLoopMode maps a manifest string to a LoopMode.
func ParseLoopMode(s string) (LoopMode, bool) {
	switch s {
	case "", "loop":
		return LoopLoop, true
	case "once":
		return LoopOnce, true
	case "ping_pong":
		return LoopPingPong, true
	default:
		return 0, false
	}
}

func (m LoopMode) String() string {
	switch m {
	case LoopOnce:
		return "once"
	case LoopLoop:
		return "loop"
	case LoopPingPong:
		return "ping_pong"
	default:
		return "unknown"
	}
}

// Sampling is the atlas-wide texture filtering hint stored in TXTR.
type Sampling uint32

const (
	SamplingPixel Sampling = iota
	SamplingLinear
)

// ParseSampling maps a manifest string to a Sampling.
func ParseSampling(s string) (Sampling, bool) {
	switch s {
	case "", "pixel":
		return SamplingPixel, true
	case "linear":
		return SamplingLinear, true
	default:
		return 0, false
	}
}

func (s Sampling) String() string {
	switch s {
	case SamplingPixel:
		return "pixel"
	case SamplingLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// Per-record byte sizes (spec §4.8), each a fixed run of little-endian
// u32 fields.
const (
	SpriteRecordSize    = 28 // 7 x u32
	FrameRecordSize     = 60 // 15 x u32
	AnimationRecordSize = 24 // 6 x u32
	KeyRecordSize       = 12 // 3 x u32

	TXTRHeaderSize   = 28 // 7 x u32: version, page_count, max_w, max_h, padding, power_of_two, sampling
	TXTRPageHeadSize = 16 // 4 x u32, not counting the pixel blob

	STRSHeaderSize = 12 // 3 x u32
	SPRTHeaderSize = 12 // 3 x u32
	ANIMHeaderSize = 12 // 3 x u32
	INDXHeaderSize = 16 // 4 x u32

	INDXImageRecordSize     = 20 // 5 x u32
	INDXSpriteRecordSize    = 20 // 5 x u32
	INDXAnimationRecordSize = 20 // 5 x u32
)

// ImageFormat is the INDX chunk's per-image `format_code`.
type ImageFormat uint32

const (
	ImageFormatRGBA8 ImageFormat = iota
)

// UVScale is the fixed-point scale used to quantize UVs to millionths
// of the unit square (spec §4.5 step 5, §9).
const UVScale = 1_000_000

// PivotScale is the fixed-point scale used to quantize pivots to
// thousandths (spec §3, "pivot_x_milli").
const PivotScale = 1_000
