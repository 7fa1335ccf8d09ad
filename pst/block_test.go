package pst

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/asalih/go-outlook/mapi"
)

// buildPropertyBlock assembles a 0xBC block with the given 8-byte
// records followed by an offset table holding the heap slices.
func buildPropertyBlock(records [][]byte, heap [][]byte) []byte {
	tableStart := 4 + len(records)*blockRecordLen
	tableLen := 2 + (len(heap)+1)*2
	heapStart := tableStart + tableLen

	total := heapStart
	for _, h := range heap {
		total += len(h)
	}
	blob := make([]byte, total)
	blob[0] = BLOCK_SIG_PROPERTY
	binary.LittleEndian.PutUint16(blob[2:], uint16(tableStart))
	for i, rec := range records {
		copy(blob[4+i*blockRecordLen:], rec)
	}

	binary.LittleEndian.PutUint16(blob[tableStart:], uint16(len(heap)))
	cursor := heapStart
	binary.LittleEndian.PutUint16(blob[tableStart+2:], uint16(cursor))
	for i, h := range heap {
		copy(blob[cursor:], h)
		cursor += len(h)
		binary.LittleEndian.PutUint16(blob[tableStart+2+(i+1)*2:], uint16(cursor))
	}
	return blob
}

func blockRecord(propType, code uint16, value uint32) []byte {
	rec := make([]byte, blockRecordLen)
	binary.LittleEndian.PutUint16(rec[0:], propType)
	binary.LittleEndian.PutUint16(rec[2:], code)
	binary.LittleEndian.PutUint32(rec[4:], value)
	return rec
}

func TestParseBlock(t *testing.T) {
	t.Run("property signature", func(t *testing.T) {
		blob := buildPropertyBlock(nil, nil)
		b, err := parseBlock(blob)
		if err != nil {
			t.Fatalf("parseBlock() error = %v", err)
		}
		if b.Sig != BLOCK_SIG_PROPERTY {
			t.Errorf("Sig = 0x%02X, want 0x%02X", b.Sig, BLOCK_SIG_PROPERTY)
		}
	})

	t.Run("unknown signature", func(t *testing.T) {
		if _, err := parseBlock([]byte{0x42, 0, 0, 0}); !errors.Is(err, ErrUnknownBlockSig) {
			t.Errorf("parseBlock() error = %v, want %v", err, ErrUnknownBlockSig)
		}
	})

	t.Run("table start beyond data clamps", func(t *testing.T) {
		blob := []byte{BLOCK_SIG_TABLE, 0, 0xFF, 0xFF}
		b, err := parseBlock(blob)
		if err != nil {
			t.Fatalf("parseBlock() error = %v", err)
		}
		if b.OffsetTableStart != len(blob) {
			t.Errorf("OffsetTableStart = %v, want %v", b.OffsetTableStart, len(blob))
		}
	})
}

func TestBlockAllocation(t *testing.T) {
	blob := buildPropertyBlock(nil, [][]byte{
		[]byte("alpha"),
		[]byte("beta"),
	})
	b, err := parseBlock(blob)
	if err != nil {
		t.Fatalf("parseBlock() error = %v", err)
	}

	tests := []struct {
		name  string
		index int
		want  string
		ok    bool
	}{
		{"first slot", 1, "alpha", true},
		{"second slot", 2, "beta", true},
		{"zero index", 0, "", false},
		{"past last slot", 3, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, ok := b.allocation(tt.index)
			if ok != tt.ok || string(raw) != tt.want {
				t.Errorf("allocation(%v) = %q, %v, want %q, %v", tt.index, raw, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDecodeBlockProperties(t *testing.T) {
	subject := []byte{0x48, 0x00, 0x69, 0x00} // "Hi" UTF-16LE
	blob := buildPropertyBlock([][]byte{
		blockRecord(mapi.PT_LONG, 0x0017, 1),
		blockRecord(mapi.PT_BOOLEAN, 0x360A, 1),
		// Heap id for slot 1: index<<5 with clear type bits.
		blockRecord(mapi.PT_UNICODE, 0x0037, 1<<5),
		// A nil reference decodes to nothing.
		blockRecord(mapi.PT_BINARY, 0x3701, 0),
	}, [][]byte{subject})

	b, err := parseBlock(blob)
	if err != nil {
		t.Fatalf("parseBlock() error = %v", err)
	}

	var warnings []mapi.Warning
	set := decodeBlockProperties(b, nil, 0, &warnings)

	if v, ok := set.GetInt("importance"); !ok || v != 1 {
		t.Errorf("importance = %v, %v", v, ok)
	}
	if v, ok := set.Get("subfolders"); !ok || v != true {
		t.Errorf("subfolders = %v, %v", v, ok)
	}
	if v, ok := set.GetString("subject"); !ok || v != "Hi" {
		t.Errorf("subject = %q, %v", v, ok)
	}
	if _, ok := set.Get("attach_data"); ok {
		t.Error("nil reference produced a value")
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
}

func TestDecodeBlockPropertiesResolverFallback(t *testing.T) {
	// Reference 0x21 has type bits set, so it bypasses the heap and
	// goes to the caller's resolver.
	blob := buildPropertyBlock([][]byte{
		blockRecord(mapi.PT_UNICODE, 0x0037, 0x21),
	}, nil)
	b, err := parseBlock(blob)
	if err != nil {
		t.Fatalf("parseBlock() error = %v", err)
	}

	resolve := func(ref uint32) ([]byte, bool) {
		if ref != 0x21 {
			return nil, false
		}
		return []byte{0x48, 0x00, 0x69, 0x00}, true
	}

	var warnings []mapi.Warning
	set := decodeBlockProperties(b, resolve, 0, &warnings)
	if v, ok := set.GetString("subject"); !ok || v != "Hi" {
		t.Errorf("subject = %q, %v", v, ok)
	}
}

func TestDecodeBlockPropertiesUnresolvedRef(t *testing.T) {
	blob := buildPropertyBlock([][]byte{
		blockRecord(mapi.PT_UNICODE, 0x0037, 0x21),
	}, nil)
	b, err := parseBlock(blob)
	if err != nil {
		t.Fatalf("parseBlock() error = %v", err)
	}

	var warnings []mapi.Warning
	set := decodeBlockProperties(b, nil, 0, &warnings)
	if set.Len() != 0 {
		t.Errorf("set has %v entries, want 0", set.Len())
	}
	if len(warnings) != 1 || warnings[0].Code != mapi.WarnPropertyParseFailed {
		t.Errorf("warnings = %v, want one %v", warnings, mapi.WarnPropertyParseFailed)
	}
}
