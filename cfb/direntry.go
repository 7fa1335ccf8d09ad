package cfb

import (
	"strings"

	"github.com/asalih/go-outlook/internal/bin"
	"golang.org/x/text/encoding/unicode"
)

var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

type DirEntry struct {
	Sid            uint32
	Name           string
	ObjType        ObjectType
	Color          Color
	LeftSibling    uint32
	RightSibling   uint32
	Child          uint32
	CLSID          [16]byte
	StateBits      uint32
	CreationTime   uint64
	ModifiedTime   uint64
	StartingSector uint32
	StreamSize     uint64
}

const (
	dirOffNameSize     = 64
	dirOffObjType      = 66
	dirOffColor        = 67
	dirOffLeftSibling  = 68
	dirOffRightSibling = 72
	dirOffChild        = 76
	dirOffCLSID        = 80
	dirOffStateBits    = 96
	dirOffCreationTime = 100
	dirOffModifiedTime = 108
	dirOffStartSector  = 116
	dirOffStreamSize   = 120
)

// ParseDirEntry decodes one 128-byte directory record.
func ParseDirEntry(raw []byte, sid uint32, version Version) (*DirEntry, error) {
	w := bin.NewWindow(raw)
	if w.Len() < DIR_ENTRY_LEN {
		return nil, bin.ErrOutOfRange
	}

	nameSize, _ := w.Uint16(dirOffNameSize)
	if int(nameSize) > DIR_NAME_MAX_LEN {
		nameSize = uint16(DIR_NAME_MAX_LEN)
	}
	nameRaw, _ := w.Slice(0, int(nameSize))
	name := DecodeUTF16Name(nameRaw)

	objTypeByte, _ := w.Byte(dirOffObjType)
	colorByte, _ := w.Byte(dirOffColor)

	entry := &DirEntry{
		Sid:     sid,
		Name:    name,
		ObjType: ObjectFromByte(objTypeByte),
		Color:   ColorFromByte(colorByte),
	}
	entry.LeftSibling, _ = w.Uint32(dirOffLeftSibling)
	entry.RightSibling, _ = w.Uint32(dirOffRightSibling)
	entry.Child, _ = w.Uint32(dirOffChild)

	clsid, _ := w.Slice(dirOffCLSID, 16)
	copy(entry.CLSID[:], clsid)

	entry.StateBits, _ = w.Uint32(dirOffStateBits)
	entry.CreationTime, _ = w.Filetime(dirOffCreationTime)
	entry.ModifiedTime, _ = w.Filetime(dirOffModifiedTime)
	entry.StartingSector, _ = w.Uint32(dirOffStartSector)

	size, _ := w.Uint64(dirOffStreamSize)
	entry.StreamSize = size & version.SectorLenMask()

	return entry, nil
}

func (d *DirEntry) IsEmpty() bool {
	return d.ObjType == Unallocated
}

// DecodeUTF16Name decodes a UTF-16LE name and strips the trailing NUL.
func DecodeUTF16Name(raw []byte) string {
	decoded, err := utf16Decoder.NewDecoder().Bytes(raw)
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(decoded), "\x00")
}
