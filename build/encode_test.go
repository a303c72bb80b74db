package build_test

import (
	"encoding/binary"
	"testing"

	"github.com/psucodervn/packrat/build"
)

func TestStringTableInternDeduplicates(t *testing.T) {
	t1 := build.NewStringTable()
	a := t1.Intern("hero")
	b := t1.Intern("villain")
	c := t1.Intern("hero")
	if a != c {
		t.Errorf("expected repeated Intern to return the same index, got %d and %d", a, c)
	}
	if a == b {
		t.Errorf("expected distinct strings to get distinct indices")
	}
	if got := t1.Strings(); len(got) != 2 {
		t.Errorf("expected 2 unique strings, got %v", got)
	}
}

func TestStringTablePackageNameReservesSlotZero(t *testing.T) {
	table := build.NewStringTable()
	idx := table.Intern("my_package")
	if idx != 0 {
		t.Errorf("expected first interned string to take slot 0, got %d", idx)
	}
}

func TestEncodeSTRSOffsetsAreContiguous(t *testing.T) {
	table := build.NewStringTable()
	table.Intern("pkg")
	table.Intern("hero")
	table.Intern("villain")

	pkg := build.EncodePackage(table, nil, build.StringRefs{}, nil, 0, 0, false, nil, nil, nil, nil)

	strsPayload := findChunkPayload(t, pkg.Bytes, "STRS")
	version := binary.LittleEndian.Uint32(strsPayload[0:4])
	count := binary.LittleEndian.Uint32(strsPayload[4:8])
	blobBytes := binary.LittleEndian.Uint32(strsPayload[8:12])
	if version != 1 {
		t.Errorf("STRS version = %d, want 1", version)
	}
	if count != 3 {
		t.Fatalf("STRS string_count = %d, want 3", count)
	}

	offsets := make([]uint32, count)
	for i := range offsets {
		offsets[i] = binary.LittleEndian.Uint32(strsPayload[12+4*i : 16+4*i])
	}
	blobStart := 12 + 4*int(count)
	blob := strsPayload[blobStart : blobStart+int(blobBytes)]

	strs := table.Strings()
	for i, s := range strs {
		if offsets[i] >= uint32(len(blob)) {
			t.Fatalf("offset[%d]=%d out of blob bounds %d", i, offsets[i], len(blob))
		}
		got := string(blob[offsets[i] : int(offsets[i])+len(s)])
		if got != s {
			t.Errorf("string[%d] = %q, want %q", i, got, s)
		}
		if blob[int(offsets[i])+len(s)] != 0 {
			t.Errorf("string[%d] not NUL-terminated in blob", i)
		}
		if i+1 < len(strs) {
			want := offsets[i] + uint32(len(s)) + 1
			if offsets[i+1] != want {
				t.Errorf("offset[%d]=%d, want %d (contiguous)", i+1, offsets[i+1], want)
			}
		}
	}
}

func TestEncodePackageHeaderAndTableOffsets(t *testing.T) {
	table := build.NewStringTable()
	table.Intern("pkg")
	pkg := build.EncodePackage(table, nil, build.StringRefs{}, nil, 0, 0, false, nil, nil, nil, nil)

	magic := string(pkg.Bytes[0:4])
	if magic != "PRPK" {
		t.Errorf("magic = %q, want PRPK", magic)
	}
	headerSize := binary.LittleEndian.Uint32(pkg.Bytes[8:12])
	chunkCount := binary.LittleEndian.Uint32(pkg.Bytes[12:16])
	tableOff := binary.LittleEndian.Uint64(pkg.Bytes[16:24])
	if headerSize != 24 {
		t.Errorf("header_size = %d, want 24", headerSize)
	}
	if tableOff != 24 {
		t.Errorf("chunk_table_off = %d, want 24", tableOff)
	}
	firstPayloadOff := tableOff + uint64(chunkCount)*20
	if firstPayloadOff > uint64(len(pkg.Bytes)) {
		t.Errorf("first payload offset %d exceeds file size %d", firstPayloadOff, len(pkg.Bytes))
	}
}

func findChunkPayload(t *testing.T, data []byte, id string) []byte {
	t.Helper()
	chunkCount := binary.LittleEndian.Uint32(data[12:16])
	tableOff := binary.LittleEndian.Uint64(data[16:24])
	for i := uint32(0); i < chunkCount; i++ {
		entryOff := tableOff + uint64(i)*20
		entry := data[entryOff : entryOff+20]
		if string(entry[0:4]) == id {
			off := binary.LittleEndian.Uint64(entry[4:12])
			size := binary.LittleEndian.Uint64(entry[12:20])
			return data[off : off+size]
		}
	}
	t.Fatalf("chunk %q not found", id)
	return nil
}
