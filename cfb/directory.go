package cfb

import (
	"fmt"
	"strings"
)

type Directory struct {
	Allocator  *Allocator
	DirEntries []*DirEntry
}

// NewDirectory reads the directory stream and splits it into 128-byte
// records indexed by SID. Unallocated records are kept in place so SIDs
// stay stable, but traversal skips them.
func NewDirectory(allocator *Allocator, dirStartSector uint32) (*Directory, error) {
	raw, err := allocator.ReadStream(dirStartSector)
	if err != nil {
		return nil, err
	}

	dirEntries := make([]*DirEntry, 0, len(raw)/DIR_ENTRY_LEN)
	for i := 0; i+DIR_ENTRY_LEN <= len(raw); i += DIR_ENTRY_LEN {
		entry, err := ParseDirEntry(raw[i:i+DIR_ENTRY_LEN], uint32(i/DIR_ENTRY_LEN), allocator.Sectors.Version)
		if err != nil {
			return nil, err
		}
		dirEntries = append(dirEntries, entry)
	}

	dir := Directory{
		Allocator:  allocator,
		DirEntries: dirEntries,
	}

	if err := dir.Validate(); err != nil {
		return nil, err
	}

	return &dir, nil
}

func (d *Directory) RootDirEntry() *DirEntry {
	return d.DirEntries[ROOT_STREAM_ID]
}

func (d *Directory) Validate() error {
	if len(d.DirEntries) == 0 {
		return fmt.Errorf("directory has no entries: %w", ErrorInvalidCFB)
	}

	rootDirEntry := d.RootDirEntry()
	if rootDirEntry.ObjType != Root {
		return fmt.Errorf("root entry has object type %v: %w", rootDirEntry.ObjType, ErrorInvalidCFB)
	}

	return nil
}

func (d *Directory) Entry(sid uint32) *DirEntry {
	if sid >= uint32(len(d.DirEntries)) {
		return nil
	}
	return d.DirEntries[sid]
}

// Children flattens the red-black sibling tree rooted at the entry's
// child pointer into the canonical in-order child list.
func (d *Directory) Children(parent *DirEntry) []*DirEntry {
	children := make([]*DirEntry, 0)
	seen := make(map[uint32]bool)
	d.inorder(parent.Child, seen, &children)
	return children
}

func (d *Directory) inorder(sid uint32, seen map[uint32]bool, out *[]*DirEntry) {
	if sid == NO_STREAM || sid >= uint32(len(d.DirEntries)) || seen[sid] {
		return
	}
	seen[sid] = true

	entry := d.DirEntries[sid]
	d.inorder(entry.LeftSibling, seen, out)
	if !entry.IsEmpty() {
		*out = append(*out, entry)
	}
	d.inorder(entry.RightSibling, seen, out)
}

// FindChild matches a direct child of parent by case-insensitive name.
func (d *Directory) FindChild(parent *DirEntry, name string) *DirEntry {
	for _, child := range d.Children(parent) {
		if strings.EqualFold(child.Name, name) {
			return child
		}
	}
	return nil
}
