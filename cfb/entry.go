package cfb

import (
	"github.com/google/uuid"
)

// Entry is the public view of a directory entry.
type Entry struct {
	Name         string
	Path         string
	ObjType      ObjectType
	CLSID        uuid.UUID
	StateBits    uint32
	CreationTime uint64
	ModifiedTime uint64
	StreamLen    uint64
}

func NewEntry(dirEntry *DirEntry, path string) *Entry {
	entry := Entry{
		Name:         dirEntry.Name,
		Path:         path,
		ObjType:      dirEntry.ObjType,
		CLSID:        ClsidToUUID(dirEntry.CLSID),
		StateBits:    dirEntry.StateBits,
		CreationTime: dirEntry.CreationTime,
		ModifiedTime: dirEntry.ModifiedTime,
		StreamLen:    dirEntry.StreamSize,
	}

	return &entry
}

// ClsidToUUID converts an on-disk CLSID (first three fields little
// endian, rest big endian) into an RFC 4122 ordered uuid.UUID.
func ClsidToUUID(clsid [16]byte) uuid.UUID {
	var b [16]byte
	b[0], b[1], b[2], b[3] = clsid[3], clsid[2], clsid[1], clsid[0]
	b[4], b[5] = clsid[5], clsid[4]
	b[6], b[7] = clsid[7], clsid[6]
	copy(b[8:], clsid[8:])
	return uuid.UUID(b)
}
