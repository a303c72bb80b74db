// Package runtime implements the R1 reader (spec §4.9): parsing a
// `.prpk` package from an owned or borrowed byte buffer, validating
// every chunk, and materializing borrow-free view structures over it.
// Grounded on original_source/include/packrat/runtime.h's query
// surface (pr_package_find_sprite, pr_package_sprite_at, ...).
package runtime

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/psucodervn/packrat/format"
	"github.com/psucodervn/packrat/status"
)

// Package is an immutable, fully validated .prpk package. Every view
// returned from it (Sprite, Animation, AtlasPage, ...) is valid only
// while the Package value is reachable — matching spec §9's
// "borrowed views, lifetime bound to the handle" strategy, here
// realized as indices into package-owned slices rather than raw
// pointers into the buffer.
type Package struct {
	data []byte

	strs []string

	sprites []spriteRecord
	frames  []frameRecord

	animations []animRecord
	keys       []keyRecord

	pages []pageRecord
}

type spriteRecord struct {
	nameStrIdx       uint32
	sourceImageIndex uint32
	mode             format.SpriteMode
	firstFrame       uint32
	frameCount       uint32
	pivotXMilli      uint32
	pivotYMilli      uint32
}

type frameRecord struct {
	spriteIndex     uint32
	localFrameIndex uint32
	sourceX, sourceY uint32
	sourceW, sourceH uint32
	atlasPage       uint32
	atlasX, atlasY  uint32
	atlasW, atlasH  uint32
	u0, v0, u1, v1  uint32
}

type animRecord struct {
	nameStrIdx      uint32
	spriteIndex     uint32
	loopMode        format.LoopMode
	keyStart        uint32
	keyCount        uint32
	totalDurationMs uint32
}

type keyRecord struct {
	animationIndex uint32
	frameIndex     uint32
	durationMs     uint32
}

type pageRecord struct {
	width, height uint32
	pixels        []byte
}

type chunkEntry struct {
	off, size uint64
}

// OpenFile reads the entire file at path into an owned buffer and
// parses it.
func OpenFile(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, status.New(status.IOError, "reading package %s: %w", path, err)
	}
	return OpenMemory(data)
}

// OpenMemory parses a package from a borrowed byte slice. The caller
// must not mutate data for the lifetime of the returned Package.
func OpenMemory(data []byte) (*Package, error) {
	if err := checkHeader(data); err != nil {
		return nil, err
	}

	chunkCount := binary.LittleEndian.Uint32(data[12:16])
	tableOff := binary.LittleEndian.Uint64(data[16:24])

	chunks, err := parseChunkTable(data, tableOff, chunkCount)
	if err != nil {
		return nil, err
	}

	for _, id := range []string{format.ChunkSTRS, format.ChunkSPRT, format.ChunkANIM} {
		if _, ok := chunks[id]; !ok {
			return nil, status.New(status.ParseError, "package missing required chunk %q", id)
		}
	}

	strs, err := parseSTRS(data, chunks[format.ChunkSTRS])
	if err != nil {
		return nil, err
	}

	var pages []pageRecord
	if entry, ok := chunks[format.ChunkTXTR]; ok {
		pages, err = parseTXTR(data, entry)
		if err != nil {
			return nil, err
		}
	}

	sprites, frames, err := parseSPRT(data, chunks[format.ChunkSPRT], len(strs), len(pages), len(pages) > 0)
	if err != nil {
		return nil, err
	}

	anims, keys, err := parseANIM(data, chunks[format.ChunkANIM], len(strs), sprites)
	if err != nil {
		return nil, err
	}

	return &Package{
		data:       data,
		strs:       strs,
		sprites:    sprites,
		frames:     frames,
		animations: anims,
		keys:       keys,
		pages:      pages,
	}, nil
}

func checkHeader(data []byte) error {
	if len(data) < format.HeaderSize {
		return status.New(status.ParseError, "package too small to contain a header (%d bytes)", len(data))
	}
	if string(data[0:4]) != format.Magic {
		return status.New(status.ParseError, "bad magic %q, want %q", data[0:4], format.Magic)
	}
	versionMajor := binary.LittleEndian.Uint16(data[4:6])
	if versionMajor < 1 {
		return status.New(status.ParseError, "unsupported version_major %d", versionMajor)
	}
	headerSize := binary.LittleEndian.Uint32(data[8:12])
	if headerSize < format.HeaderSize {
		return status.New(status.ParseError, "header_size %d smaller than minimum %d", headerSize, format.HeaderSize)
	}
	chunkCount := binary.LittleEndian.Uint32(data[12:16])
	if chunkCount < 1 {
		return status.New(status.ParseError, "chunk_count must be >= 1")
	}
	tableOff := binary.LittleEndian.Uint64(data[16:24])
	tableEnd := tableOff + uint64(chunkCount)*format.ChunkTableEntrySize
	if tableEnd > uint64(len(data)) {
		return status.New(status.ParseError, "chunk table extends past end of file")
	}
	return nil
}

func parseChunkTable(data []byte, tableOff uint64, chunkCount uint32) (map[string]chunkEntry, error) {
	chunks := make(map[string]chunkEntry, chunkCount)
	size := uint64(len(data))
	for i := uint32(0); i < chunkCount; i++ {
		entryOff := tableOff + uint64(i)*format.ChunkTableEntrySize
		entry := data[entryOff : entryOff+format.ChunkTableEntrySize]
		id := string(entry[0:4])
		payloadOff := binary.LittleEndian.Uint64(entry[4:12])
		payloadSize := binary.LittleEndian.Uint64(entry[12:20])
		if payloadOff > size || payloadSize > size-payloadOff {
			return nil, status.New(status.ParseError, "chunk %q payload (off=%d size=%d) exceeds file size %d", id, payloadOff, payloadSize, size)
		}
		chunks[id] = chunkEntry{off: payloadOff, size: payloadSize}
	}
	return chunks, nil
}

func payload(data []byte, e chunkEntry) []byte {
	return data[e.off : e.off+e.size]
}

func parseSTRS(data []byte, e chunkEntry) ([]string, error) {
	p := payload(data, e)
	if len(p) < format.STRSHeaderSize {
		return nil, status.New(status.ParseError, "STRS chunk too small")
	}
	version := binary.LittleEndian.Uint32(p[0:4])
	if version != format.ChunkVersion {
		return nil, status.New(status.ParseError, "STRS version %d, want %d", version, format.ChunkVersion)
	}
	count := binary.LittleEndian.Uint32(p[4:8])
	blobBytes := binary.LittleEndian.Uint32(p[8:12])

	offsetsEnd := format.STRSHeaderSize + int(count)*4
	if offsetsEnd > len(p) {
		return nil, status.New(status.ParseError, "STRS offsets table exceeds chunk bounds")
	}
	blobStart := offsetsEnd
	blobEnd := blobStart + int(blobBytes)
	if blobEnd > len(p) {
		return nil, status.New(status.ParseError, "STRS blob exceeds chunk bounds")
	}
	blob := p[blobStart:blobEnd]

	strs := make([]string, count)
	for i := uint32(0); i < count; i++ {
		off := binary.LittleEndian.Uint32(p[format.STRSHeaderSize+4*i : format.STRSHeaderSize+4*i+4])
		if off >= uint32(len(blob)) {
			return nil, status.New(status.ParseError, "STRS string %d offset %d out of blob bounds %d", i, off, len(blob))
		}
		end := off
		for end < uint32(len(blob)) && blob[end] != 0 {
			end++
		}
		if end >= uint32(len(blob)) {
			return nil, status.New(status.ParseError, "STRS string %d not NUL-terminated within blob", i)
		}
		strs[i] = string(blob[off:end])
	}
	return strs, nil
}

func parseTXTR(data []byte, e chunkEntry) ([]pageRecord, error) {
	p := payload(data, e)
	if len(p) < format.TXTRHeaderSize {
		return nil, status.New(status.ParseError, "TXTR chunk too small")
	}
	version := binary.LittleEndian.Uint32(p[0:4])
	if version != format.ChunkVersion {
		return nil, status.New(status.ParseError, "TXTR version %d, want %d", version, format.ChunkVersion)
	}
	pageCount := binary.LittleEndian.Uint32(p[4:8])

	cursor := format.TXTRHeaderSize
	pages := make([]pageRecord, pageCount)
	seen := make(map[uint32]bool, pageCount)
	for i := uint32(0); i < pageCount; i++ {
		if cursor+format.TXTRPageHeadSize > len(p) {
			return nil, status.New(status.ParseError, "TXTR page record %d exceeds chunk bounds", i)
		}
		rec := p[cursor : cursor+format.TXTRPageHeadSize]
		pageIndex := binary.LittleEndian.Uint32(rec[0:4])
		width := binary.LittleEndian.Uint32(rec[4:8])
		height := binary.LittleEndian.Uint32(rec[8:12])
		blobSize := binary.LittleEndian.Uint32(rec[12:16])
		cursor += format.TXTRPageHeadSize

		if pageIndex >= pageCount || seen[pageIndex] {
			return nil, status.New(status.ParseError, "TXTR page_index %d invalid or duplicate", pageIndex)
		}
		seen[pageIndex] = true

		if blobSize != 0 && uint64(blobSize) != uint64(width)*uint64(height)*4 {
			return nil, status.New(status.ParseError, "TXTR page %d pixel_blob_size %d != %d*%d*4", pageIndex, blobSize, width, height)
		}
		if cursor+int(blobSize) > len(p) {
			return nil, status.New(status.ParseError, "TXTR page %d pixel blob exceeds chunk bounds", pageIndex)
		}
		pages[pageIndex] = pageRecord{width: width, height: height, pixels: p[cursor : cursor+int(blobSize)]}
		cursor += int(blobSize)
	}
	if cursor != len(p) {
		return nil, status.New(status.ParseError, "TXTR chunk has %d trailing bytes", len(p)-cursor)
	}
	return pages, nil
}

func parseSPRT(data []byte, e chunkEntry, stringCount, pageCount int, havePages bool) ([]spriteRecord, []frameRecord, error) {
	p := payload(data, e)
	if len(p) < format.SPRTHeaderSize {
		return nil, nil, status.New(status.ParseError, "SPRT chunk too small")
	}
	version := binary.LittleEndian.Uint32(p[0:4])
	if version != format.ChunkVersion {
		return nil, nil, status.New(status.ParseError, "SPRT version %d, want %d", version, format.ChunkVersion)
	}
	spriteCount := binary.LittleEndian.Uint32(p[4:8])
	frameCount := binary.LittleEndian.Uint32(p[8:12])

	cursor := format.SPRTHeaderSize
	sprites := make([]spriteRecord, spriteCount)
	for i := uint32(0); i < spriteCount; i++ {
		if cursor+format.SpriteRecordSize > len(p) {
			return nil, nil, status.New(status.ParseError, "SPRT sprite record %d exceeds chunk bounds", i)
		}
		rec := p[cursor : cursor+format.SpriteRecordSize]
		s := spriteRecord{
			nameStrIdx:       binary.LittleEndian.Uint32(rec[0:4]),
			sourceImageIndex: binary.LittleEndian.Uint32(rec[4:8]),
			mode:             format.SpriteMode(binary.LittleEndian.Uint32(rec[8:12])),
			firstFrame:       binary.LittleEndian.Uint32(rec[12:16]),
			frameCount:       binary.LittleEndian.Uint32(rec[16:20]),
			pivotXMilli:      binary.LittleEndian.Uint32(rec[20:24]),
			pivotYMilli:      binary.LittleEndian.Uint32(rec[24:28]),
		}
		if s.nameStrIdx >= uint32(stringCount) {
			return nil, nil, status.New(status.ParseError, "sprite %d name_str_idx %d out of range", i, s.nameStrIdx)
		}
		if s.firstFrame+s.frameCount > frameCount || s.firstFrame+s.frameCount < s.firstFrame {
			return nil, nil, status.New(status.ParseError, "sprite %d frame slice [%d,%d) exceeds global frame_count %d", i, s.firstFrame, s.firstFrame+s.frameCount, frameCount)
		}
		sprites[i] = s
		cursor += format.SpriteRecordSize
	}

	frames := make([]frameRecord, frameCount)
	covered := make([]bool, frameCount)
	for i := uint32(0); i < frameCount; i++ {
		if cursor+format.FrameRecordSize > len(p) {
			return nil, nil, status.New(status.ParseError, "SPRT frame record %d exceeds chunk bounds", i)
		}
		rec := p[cursor : cursor+format.FrameRecordSize]
		f := frameRecord{
			spriteIndex:     binary.LittleEndian.Uint32(rec[0:4]),
			localFrameIndex: binary.LittleEndian.Uint32(rec[4:8]),
			sourceX:         binary.LittleEndian.Uint32(rec[8:12]),
			sourceY:         binary.LittleEndian.Uint32(rec[12:16]),
			sourceW:         binary.LittleEndian.Uint32(rec[16:20]),
			sourceH:         binary.LittleEndian.Uint32(rec[20:24]),
			atlasPage:       binary.LittleEndian.Uint32(rec[24:28]),
			atlasX:          binary.LittleEndian.Uint32(rec[28:32]),
			atlasY:          binary.LittleEndian.Uint32(rec[32:36]),
			atlasW:          binary.LittleEndian.Uint32(rec[36:40]),
			atlasH:          binary.LittleEndian.Uint32(rec[40:44]),
			u0:              binary.LittleEndian.Uint32(rec[44:48]),
			v0:              binary.LittleEndian.Uint32(rec[48:52]),
			u1:              binary.LittleEndian.Uint32(rec[52:56]),
			v1:              binary.LittleEndian.Uint32(rec[56:60]),
		}
		cursor += format.FrameRecordSize

		if f.spriteIndex >= spriteCount {
			return nil, nil, status.New(status.ParseError, "frame %d sprite_index %d out of range", i, f.spriteIndex)
		}
		sp := sprites[f.spriteIndex]
		if f.localFrameIndex >= sp.frameCount {
			return nil, nil, status.New(status.ParseError, "frame %d local_frame_index %d out of range for sprite %d (frame_count=%d)", i, f.localFrameIndex, f.spriteIndex, sp.frameCount)
		}
		globalSlot := sp.firstFrame + f.localFrameIndex
		if covered[globalSlot] {
			return nil, nil, status.New(status.ParseError, "frame slot %d covered more than once", globalSlot)
		}
		covered[globalSlot] = true
		if havePages && f.atlasPage >= uint32(pageCount) {
			return nil, nil, status.New(status.ParseError, "frame %d atlas_page %d out of range", i, f.atlasPage)
		}
		frames[globalSlot] = f
	}
	for i, ok := range covered {
		if !ok {
			return nil, nil, status.New(status.ParseError, "frame slot %d never covered by any frame record", i)
		}
	}
	if cursor != len(p) {
		return nil, nil, status.New(status.ParseError, "SPRT chunk has %d trailing bytes", len(p)-cursor)
	}
	return sprites, frames, nil
}

func parseANIM(data []byte, e chunkEntry, stringCount int, sprites []spriteRecord) ([]animRecord, []keyRecord, error) {
	p := payload(data, e)
	if len(p) < format.ANIMHeaderSize {
		return nil, nil, status.New(status.ParseError, "ANIM chunk too small")
	}
	version := binary.LittleEndian.Uint32(p[0:4])
	if version != format.ChunkVersion {
		return nil, nil, status.New(status.ParseError, "ANIM version %d, want %d", version, format.ChunkVersion)
	}
	animCount := binary.LittleEndian.Uint32(p[4:8])
	keyCount := binary.LittleEndian.Uint32(p[8:12])

	cursor := format.ANIMHeaderSize
	anims := make([]animRecord, animCount)
	for i := uint32(0); i < animCount; i++ {
		if cursor+format.AnimationRecordSize > len(p) {
			return nil, nil, status.New(status.ParseError, "ANIM animation record %d exceeds chunk bounds", i)
		}
		rec := p[cursor : cursor+format.AnimationRecordSize]
		a := animRecord{
			nameStrIdx:      binary.LittleEndian.Uint32(rec[0:4]),
			spriteIndex:     binary.LittleEndian.Uint32(rec[4:8]),
			loopMode:        format.LoopMode(binary.LittleEndian.Uint32(rec[8:12])),
			keyStart:        binary.LittleEndian.Uint32(rec[12:16]),
			keyCount:        binary.LittleEndian.Uint32(rec[16:20]),
			totalDurationMs: binary.LittleEndian.Uint32(rec[20:24]),
		}
		cursor += format.AnimationRecordSize

		if a.nameStrIdx >= uint32(stringCount) {
			return nil, nil, status.New(status.ParseError, "animation %d name_str_idx %d out of range", i, a.nameStrIdx)
		}
		if a.spriteIndex >= uint32(len(sprites)) {
			return nil, nil, status.New(status.ParseError, "animation %d sprite_index %d out of range", i, a.spriteIndex)
		}
		if a.loopMode != format.LoopOnce && a.loopMode != format.LoopLoop && a.loopMode != format.LoopPingPong {
			return nil, nil, status.New(status.ParseError, "animation %d loop_mode %d invalid", i, a.loopMode)
		}
		if a.keyStart+a.keyCount > keyCount || a.keyStart+a.keyCount < a.keyStart {
			return nil, nil, status.New(status.ParseError, "animation %d key range [%d,%d) exceeds global key_count %d", i, a.keyStart, a.keyStart+a.keyCount, keyCount)
		}
		anims[i] = a
	}

	keys := make([]keyRecord, keyCount)
	for i := uint32(0); i < keyCount; i++ {
		if cursor+format.KeyRecordSize > len(p) {
			return nil, nil, status.New(status.ParseError, "ANIM key record %d exceeds chunk bounds", i)
		}
		rec := p[cursor : cursor+format.KeyRecordSize]
		k := keyRecord{
			animationIndex: binary.LittleEndian.Uint32(rec[0:4]),
			frameIndex:     binary.LittleEndian.Uint32(rec[4:8]),
			durationMs:     binary.LittleEndian.Uint32(rec[8:12]),
		}
		cursor += format.KeyRecordSize

		if k.animationIndex >= animCount {
			return nil, nil, status.New(status.ParseError, "key %d animation_index %d out of range", i, k.animationIndex)
		}
		a := anims[k.animationIndex]
		if i < a.keyStart || i >= a.keyStart+a.keyCount {
			return nil, nil, status.New(status.ParseError, "key %d does not fall within its animation's declared range [%d,%d)", i, a.keyStart, a.keyStart+a.keyCount)
		}
		sp := sprites[a.spriteIndex]
		if k.frameIndex >= sp.frameCount {
			return nil, nil, status.New(status.ParseError, "key %d frame_index %d out of range for sprite (frame_count=%d)", i, k.frameIndex, sp.frameCount)
		}
		keys[i] = k
	}
	if cursor != len(p) {
		return nil, nil, status.New(status.ParseError, "ANIM chunk has %d trailing bytes", len(p)-cursor)
	}
	return anims, keys, nil
}

func (pkg *Package) stringAt(idx uint32) string {
	if int(idx) >= len(pkg.strs) {
		return ""
	}
	return pkg.strs[idx]
}

// String is a debug representation, deliberately terse.
func (pkg *Package) String() string {
	return fmt.Sprintf("Package{sprites=%d animations=%d pages=%d}", len(pkg.sprites), len(pkg.animations), len(pkg.pages))
}
