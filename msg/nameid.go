package msg

import (
	"fmt"

	"github.com/asalih/go-outlook/cfb"
	"github.com/asalih/go-outlook/internal/bin"
	"github.com/asalih/go-outlook/mapi"
	"github.com/google/uuid"
)

const (
	NAMEID_STORAGE     = "__nameid_version1.0"
	nameidGUIDStream   = "__substg1.0_00020102"
	nameidEntryStream  = "__substg1.0_00030102"
	nameidStringStream = "__substg1.0_00040102"
)

// NameidMap resolves pseudo property codes (0x8000 + entry index) to
// their full named-property keys.
type NameidMap map[uint32]mapi.PropKey

// ParseNameid reads the named-property storage under root. A missing
// storage yields an empty map without error.
func ParseNameid(cf *cfb.CompoundFile, root *cfb.DirEntry) (NameidMap, error) {
	out := make(NameidMap)

	storage := cf.Directory.FindChild(root, NAMEID_STORAGE)
	if storage == nil {
		return out, nil
	}

	guids, err := readNameidStream(cf, storage, nameidGUIDStream)
	if err != nil {
		return nil, err
	}
	entries, err := readNameidStream(cf, storage, nameidEntryStream)
	if err != nil {
		return nil, err
	}
	names, err := readNameidStream(cf, storage, nameidStringStream)
	if err != nil {
		return nil, err
	}

	guidTable, err := parseGUIDTable(guids)
	if err != nil {
		return nil, err
	}

	w := bin.NewWindow(entries)
	nameWin := bin.NewWindow(names)
	for i := 0; i*8+8 <= w.Len(); i++ {
		nameOrID, _ := w.Uint32(i * 8)
		flags, _ := w.Uint32(i*8 + 4)

		guidIndex := (flags >> 1) & 0x7FFF
		isString := flags&1 != 0

		guid, err := guidForIndex(guidTable, guidIndex)
		if err != nil {
			return nil, err
		}

		pseudo := uint32(0x8000 + i)
		if isString {
			name, err := readStringName(nameWin, nameOrID)
			if err != nil {
				return nil, err
			}
			out[pseudo] = mapi.NamedKey(name, guid)
		} else {
			out[pseudo] = mapi.NumericKey(nameOrID, guid)
		}
	}
	return out, nil
}

func readNameidStream(cf *cfb.CompoundFile, storage *cfb.DirEntry, name string) ([]byte, error) {
	entry := cf.Directory.FindChild(storage, name)
	if entry == nil {
		return nil, fmt.Errorf("nameid stream %v missing", name)
	}
	return cf.ReadStream(entry)
}

// parseGUIDTable maps table position to guid index 2, 3, 4, ...
func parseGUIDTable(raw []byte) (map[uint32]uuid.UUID, error) {
	table := make(map[uint32]uuid.UUID, len(raw)/16)
	for i := 0; i*16+16 <= len(raw); i++ {
		u, err := mapi.GUIDFromMixed(raw[i*16 : i*16+16])
		if err != nil {
			return nil, err
		}
		table[uint32(i+2)] = u
	}
	return table, nil
}

func guidForIndex(table map[uint32]uuid.UUID, index uint32) (uuid.UUID, error) {
	switch index {
	case 0:
		return mapi.PSMapi, nil
	case 1:
		return mapi.PSPublicStrings, nil
	}
	if u, ok := table[index]; ok {
		return u, nil
	}
	return uuid.Nil, fmt.Errorf("nameid guid index %v out of range", index)
}

func readStringName(w bin.Window, offset uint32) (string, error) {
	length, err := w.Uint32(int(offset))
	if err != nil {
		return "", fmt.Errorf("nameid string name at %v: %w", offset, err)
	}
	raw, err := w.Slice(int(offset)+4, int(length))
	if err != nil {
		return "", fmt.Errorf("nameid string name at %v: %w", offset, err)
	}
	return mapi.DecodeUTF16(raw), nil
}

// ResolveCode applies the property-code resolution law: codes below
// 0x8000 belong to PS_MAPI; higher codes go through the nameid map
// and fall back to PS_MAPI when unmapped.
func (m NameidMap) ResolveCode(code uint32) mapi.PropKey {
	if code < 0x8000 {
		return mapi.StandardKey(code)
	}
	if key, ok := m[code]; ok {
		return key
	}
	return mapi.StandardKey(code)
}
