package build

import (
	"encoding/binary"

	"github.com/psucodervn/packrat/format"
)

// chunkWriter accumulates a little-endian payload, matching the fixed
// u32-run layout of every chunk in spec §4.8.
type chunkWriter struct {
	buf []byte
}

func (w *chunkWriter) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *chunkWriter) u64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *chunkWriter) bytes(b []byte) { w.buf = append(w.buf, b...) }

// EncodedPackage holds the fully assembled .prpk byte stream, per
// spec §4.8.
type EncodedPackage struct {
	Bytes []byte
}

// encodedChunk is one chunk payload awaiting placement in the
// container's chunk table.
type encodedChunk struct {
	id      string
	payload []byte
}

// EncodePackage runs L8: assembles the STRS/TXTR/SPRT/ANIM/INDX chunks
// and the container header/chunk-table around them, in the fixed
// writer order of spec §4.8. TXTR is omitted when there are no
// resolved frames.
func EncodePackage(
	strTable *StringTable,
	images []ImportedImage,
	refs StringRefs,
	pages []AtlasPageResult,
	atlas format.Sampling,
	padding int,
	powerOfTwo bool,
	sprites []ResolvedSprite,
	frames []PlacedFrame,
	anims []ResolvedAnimation,
	keys []AnimationKey,
) EncodedPackage {
	var chunks []encodedChunk

	chunks = append(chunks, encodedChunk{format.ChunkSTRS, encodeSTRS(strTable)})
	if len(frames) > 0 {
		chunks = append(chunks, encodedChunk{format.ChunkTXTR, encodeTXTR(pages, atlas, padding, powerOfTwo)})
	}
	chunks = append(chunks, encodedChunk{format.ChunkSPRT, encodeSPRT(sprites, frames)})
	chunks = append(chunks, encodedChunk{format.ChunkANIM, encodeANIM(anims, keys)})
	chunks = append(chunks, encodedChunk{format.ChunkINDX, encodeINDX(images, refs, sprites, anims)})

	return EncodedPackage{Bytes: assembleContainer(chunks)}
}

func encodeSTRS(t *StringTable) []byte {
	strs := t.Strings()
	var blob []byte
	offsets := make([]uint32, len(strs))
	for i, s := range strs {
		offsets[i] = uint32(len(blob))
		blob = append(blob, s...)
		blob = append(blob, 0)
	}

	w := &chunkWriter{}
	w.u32(format.ChunkVersion)
	w.u32(uint32(len(strs)))
	w.u32(uint32(len(blob)))
	for _, off := range offsets {
		w.u32(off)
	}
	w.bytes(blob)
	return w.buf
}

func encodeTXTR(pages []AtlasPageResult, sampling format.Sampling, padding int, powerOfTwo bool) []byte {
	w := &chunkWriter{}
	w.u32(format.ChunkVersion)
	w.u32(uint32(len(pages)))
	maxW, maxH := 0, 0
	if len(pages) > 0 {
		maxW, maxH = pages[0].MaxW, pages[0].MaxH
	}
	w.u32(uint32(maxW))
	w.u32(uint32(maxH))
	w.u32(uint32(padding))
	pot := uint32(0)
	if powerOfTwo {
		pot = 1
	}
	w.u32(pot)
	w.u32(uint32(sampling))

	for i, pg := range pages {
		w.u32(uint32(i))
		w.u32(uint32(pg.FinalW))
		w.u32(uint32(pg.FinalH))
		w.u32(uint32(len(pg.Pixels)))
		w.bytes(pg.Pixels)
	}
	return w.buf
}

func encodeSPRT(sprites []ResolvedSprite, frames []PlacedFrame) []byte {
	w := &chunkWriter{}
	w.u32(format.ChunkVersion)
	w.u32(uint32(len(sprites)))
	w.u32(uint32(len(frames)))

	for _, s := range sprites {
		w.u32(uint32(s.NameStrIdx))
		w.u32(uint32(s.SourceImageIndex))
		w.u32(uint32(s.Mode))
		w.u32(uint32(s.FirstFrame))
		w.u32(uint32(s.FrameCount))
		w.u32(uint32(s.PivotXMilli))
		w.u32(uint32(s.PivotYMilli))
	}
	for _, f := range frames {
		w.u32(uint32(f.SpriteIndex))
		w.u32(uint32(f.LocalFrameIndex))
		w.u32(uint32(f.SourceX))
		w.u32(uint32(f.SourceY))
		w.u32(uint32(f.SourceW))
		w.u32(uint32(f.SourceH))
		w.u32(uint32(f.AtlasPage))
		w.u32(uint32(f.AtlasX))
		w.u32(uint32(f.AtlasY))
		w.u32(uint32(f.AtlasW))
		w.u32(uint32(f.AtlasH))
		w.u32(uint32(f.U0))
		w.u32(uint32(f.V0))
		w.u32(uint32(f.U1))
		w.u32(uint32(f.V1))
	}
	return w.buf
}

func encodeANIM(anims []ResolvedAnimation, keys []AnimationKey) []byte {
	w := &chunkWriter{}
	w.u32(format.ChunkVersion)
	w.u32(uint32(len(anims)))
	w.u32(uint32(len(keys)))

	for _, a := range anims {
		w.u32(uint32(a.NameStrIdx))
		w.u32(uint32(a.SpriteIndex))
		w.u32(uint32(a.LoopMode))
		w.u32(uint32(a.KeyStart))
		w.u32(uint32(a.KeyCount))
		w.u32(uint32(a.TotalDurationMs))
	}
	for _, k := range keys {
		w.u32(uint32(k.AnimationIndex))
		w.u32(uint32(k.FrameIndex))
		w.u32(uint32(k.DurationMs))
	}
	return w.buf
}

func encodeINDX(images []ImportedImage, refs StringRefs, sprites []ResolvedSprite, anims []ResolvedAnimation) []byte {
	w := &chunkWriter{}
	w.u32(format.ChunkVersion)
	w.u32(uint32(len(images)))
	w.u32(uint32(len(sprites)))
	w.u32(uint32(len(anims)))

	for i, img := range images {
		w.u32(uint32(refs.ImageID[i]))
		w.u32(uint32(refs.ImagePath[i]))
		w.u32(uint32(img.Width))
		w.u32(uint32(img.Height))
		w.u32(uint32(format.ImageFormatRGBA8))
	}
	for i, s := range sprites {
		w.u32(uint32(refs.SpriteID[i]))
		w.u32(uint32(i))
		w.u32(uint32(s.SourceImageIndex))
		w.u32(uint32(s.FirstFrame))
		w.u32(uint32(s.FrameCount))
	}
	for i, a := range anims {
		w.u32(uint32(refs.AnimationID[i]))
		w.u32(uint32(i))
		w.u32(uint32(a.SpriteIndex))
		w.u32(uint32(a.KeyStart))
		w.u32(uint32(a.KeyCount))
	}
	return w.buf
}

// assembleContainer writes the 24-byte header, the chunk table, and
// every payload in order, computing absolute offsets as it goes.
func assembleContainer(chunks []encodedChunk) []byte {
	tableOff := uint64(format.HeaderSize)
	firstPayloadOff := tableOff + uint64(len(chunks))*format.ChunkTableEntrySize

	offsets := make([]uint64, len(chunks))
	cursor := firstPayloadOff
	for i, c := range chunks {
		offsets[i] = cursor
		cursor += uint64(len(c.payload))
	}

	out := make([]byte, 0, cursor)

	hdr := &chunkWriter{}
	hdr.bytes([]byte(format.Magic))
	var v16 [2]byte
	binary.LittleEndian.PutUint16(v16[:], format.VersionMajor)
	hdr.bytes(v16[:])
	binary.LittleEndian.PutUint16(v16[:], format.VersionMinor)
	hdr.bytes(v16[:])
	hdr.u32(format.HeaderSize)
	hdr.u32(uint32(len(chunks)))
	hdr.u64(tableOff)
	out = append(out, hdr.buf...)

	table := &chunkWriter{}
	for i, c := range chunks {
		table.bytes([]byte(c.id))
		table.u64(offsets[i])
		table.u64(uint64(len(c.payload)))
	}
	out = append(out, table.buf...)

	for _, c := range chunks {
		out = append(out, c.payload...)
	}
	return out
}
