package cfb

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/asalih/go-outlook/internal/bin"
)

func direntBytes(name string, objType byte) []byte {
	raw := make([]byte, DIR_ENTRY_LEN)
	n := 0
	for _, r := range name {
		binary.LittleEndian.PutUint16(raw[n*2:], uint16(r))
		n++
	}
	// name_size counts the trailing NUL pair.
	binary.LittleEndian.PutUint16(raw[64:], uint16((n+1)*2))
	raw[66] = objType
	return raw
}

func TestParseDirEntry(t *testing.T) {
	raw := direntBytes("Root Entry", 5)
	raw[67] = 1
	binary.LittleEndian.PutUint32(raw[68:], FREE_SECTOR)
	binary.LittleEndian.PutUint32(raw[72:], FREE_SECTOR)
	binary.LittleEndian.PutUint32(raw[76:], 3)
	binary.LittleEndian.PutUint32(raw[116:], 9)
	binary.LittleEndian.PutUint64(raw[120:], 4096)

	entry, err := ParseDirEntry(raw, 0, V3)
	if err != nil {
		t.Fatalf("ParseDirEntry() error = %v", err)
	}
	if entry.Name != "Root Entry" {
		t.Errorf("Name = %q", entry.Name)
	}
	if entry.ObjType != Root {
		t.Errorf("ObjType = %v, want root", entry.ObjType)
	}
	if entry.Color != Black {
		t.Errorf("Color = %v, want black", entry.Color)
	}
	if entry.Child != 3 {
		t.Errorf("Child = %v, want 3", entry.Child)
	}
	if entry.StartingSector != 9 {
		t.Errorf("StartingSector = %v, want 9", entry.StartingSector)
	}
	if entry.StreamSize != 4096 {
		t.Errorf("StreamSize = %v, want 4096", entry.StreamSize)
	}
}

func TestParseDirEntryNameSizeClamped(t *testing.T) {
	raw := direntBytes("stream", 2)
	// An oversized name_size reads at most the 64-byte name field.
	binary.LittleEndian.PutUint16(raw[64:], 500)

	entry, err := ParseDirEntry(raw, 1, V3)
	if err != nil {
		t.Fatalf("ParseDirEntry() error = %v", err)
	}
	if entry.Name != "stream" {
		t.Errorf("Name = %q, want stream", entry.Name)
	}
}

func TestParseDirEntryV3SizeMask(t *testing.T) {
	raw := direntBytes("big", 2)
	// Version 3 writers leave garbage in the size high dword.
	binary.LittleEndian.PutUint64(raw[120:], 0xDEADBEEF_00000200)

	entry, err := ParseDirEntry(raw, 1, V3)
	if err != nil {
		t.Fatalf("ParseDirEntry() error = %v", err)
	}
	if entry.StreamSize != 0x200 {
		t.Errorf("StreamSize = 0x%X, want 0x200", entry.StreamSize)
	}
}

func TestParseDirEntryShort(t *testing.T) {
	if _, err := ParseDirEntry(make([]byte, 100), 0, V3); !errors.Is(err, bin.ErrOutOfRange) {
		t.Errorf("ParseDirEntry() error = %v, want %v", err, bin.ErrOutOfRange)
	}
}

func TestDecodeUTF16Name(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"empty", nil, ""},
		{"ascii with nul", []byte{'a', 0, 'b', 0, 0, 0}, "ab"},
		{"no terminator", []byte{'a', 0}, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeUTF16Name(tt.raw); got != tt.want {
				t.Errorf("DecodeUTF16Name() = %q, want %q", got, tt.want)
			}
		})
	}
}
