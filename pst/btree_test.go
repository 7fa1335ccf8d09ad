package pst

import (
	"encoding/binary"
	"testing"

	"github.com/asalih/go-outlook/internal/bin"
	"github.com/asalih/go-outlook/mapi"
)

// writePage lays a 512-byte page into blob at offset with the given
// trailer.
func writePage(blob []byte, offset int, itemCount, entrySize, level byte) {
	blob[offset+pageTrailerOffset] = itemCount
	blob[offset+pageTrailerOffset+1] = itemCount
	blob[offset+pageTrailerOffset+2] = entrySize
	blob[offset+pageTrailerOffset+3] = level
}

func TestParseIndexTreeLeaf(t *testing.T) {
	blob := make([]byte, 1024)
	writePage(blob, 512, 2, 12, 0)
	// Two ansi index records: (id, offset, size, flags).
	binary.LittleEndian.PutUint32(blob[512:], 0x10)
	binary.LittleEndian.PutUint32(blob[516:], 2048)
	binary.LittleEndian.PutUint16(blob[520:], 64)
	binary.LittleEndian.PutUint32(blob[524:], 0x12)
	binary.LittleEndian.PutUint32(blob[528:], 4096)
	binary.LittleEndian.PutUint16(blob[532:], 128)

	var warnings []mapi.Warning
	index := parseIndexTree(bin.NewWindow(blob), 512, Ansi97, &warnings)

	if len(index) != 2 {
		t.Fatalf("index has %v records, want 2", len(index))
	}
	rec, ok := index[0x10]
	if !ok || rec.Offset != 2048 || rec.Size != 64 {
		t.Errorf("record 0x10 = %+v, %v", rec, ok)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
}

func TestParseIndexTreeBranchLoop(t *testing.T) {
	blob := make([]byte, 1024)
	writePage(blob, 512, 1, 12, 1)
	// The single branch entry points back to this page.
	binary.LittleEndian.PutUint32(blob[512:], 1)
	binary.LittleEndian.PutUint32(blob[516:], 512)

	var warnings []mapi.Warning
	index := parseIndexTree(bin.NewWindow(blob), 512, Ansi97, &warnings)

	if len(index) != 0 {
		t.Errorf("index has %v records, want 0", len(index))
	}
	found := false
	for _, w := range warnings {
		if w.Code == mapi.WarnPstBranchLoopDetected {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want %v", warnings, mapi.WarnPstBranchLoopDetected)
	}
}

func TestParseIndexTreeOutOfRange(t *testing.T) {
	blob := make([]byte, 128)
	var warnings []mapi.Warning
	index := parseIndexTree(bin.NewWindow(blob), 4096, Ansi97, &warnings)
	if len(index) != 0 {
		t.Errorf("index has %v records, want 0", len(index))
	}
}

func TestParseIndexTreeOversizedItemCount(t *testing.T) {
	blob := make([]byte, 1024)
	// 200 records would overrun the 496-byte record region; the
	// parse keeps every complete record and drops the tail.
	writePage(blob, 512, 200, 12, 0)
	for i := 0; i < 41; i++ {
		binary.LittleEndian.PutUint32(blob[512+i*12:], uint32(i+1))
	}

	var warnings []mapi.Warning
	index := parseIndexTree(bin.NewWindow(blob), 512, Ansi97, &warnings)
	if len(index) != 41 {
		t.Errorf("index has %v records, want 41", len(index))
	}
}

func TestParseDescriptorTreeChildren(t *testing.T) {
	blob := make([]byte, 1024)
	writePage(blob, 512, 3, 16, 0)
	// Root 0x21 with two children, ansi descriptor layout
	// (desc_id, idx_id, idx2_id, parent).
	put := func(slot int, id, idx, idx2, parent uint32) {
		base := 512 + slot*16
		binary.LittleEndian.PutUint32(blob[base:], id)
		binary.LittleEndian.PutUint32(blob[base+4:], idx)
		binary.LittleEndian.PutUint32(blob[base+8:], idx2)
		binary.LittleEndian.PutUint32(blob[base+12:], parent)
	}
	put(0, 0x21, 0x10, 0, 0)
	put(1, 0x40, 0x11, 0, 0x21)
	put(2, 0x41, 0x12, 0, 0x21)

	var warnings []mapi.Warning
	descs := parseDescriptorTree(bin.NewWindow(blob), 512, Ansi97, &warnings)

	if len(descs) != 3 {
		t.Fatalf("descriptor count = %v, want 3", len(descs))
	}
	root := descs[0x21]
	if root == nil || len(root.Children) != 2 {
		t.Fatalf("root children = %+v", root)
	}
	if root.Children[0] != 0x40 || root.Children[1] != 0x41 {
		t.Errorf("root children = %v", root.Children)
	}
}

func TestOpenBranchLoopRecovery(t *testing.T) {
	blob := make([]byte, 1024)
	copy(blob, MAGIC_NUMBER)
	blob[versionByteOffset] = VERSION_BYTE_ANSI97
	binary.LittleEndian.PutUint32(blob[ansiIndex1Offset:], 512)
	binary.LittleEndian.PutUint32(blob[ansiIndex2Offset:], 512)
	writePage(blob, 512, 1, 12, 1)
	binary.LittleEndian.PutUint32(blob[512:], 1)
	binary.LittleEndian.PutUint32(blob[516:], 512)

	p, err := Open(blob)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	found := false
	for _, w := range p.Warnings {
		if w.Code == mapi.WarnPstBranchLoopDetected {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want %v", p.Warnings, mapi.WarnPstBranchLoopDetected)
	}
}
