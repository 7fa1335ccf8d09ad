package pst

import (
	"fmt"

	"github.com/asalih/go-outlook/internal/bin"
	"github.com/asalih/go-outlook/mapi"
)

const (
	PAGE_LEN          = 512
	pageTrailerOffset = 496
)

// IndexRecord locates one block in the blob.
type IndexRecord struct {
	ID     uint64
	Offset uint64
	Size   uint16
	Flags  uint16
}

// Descriptor is one node of the item hierarchy. Children is derived
// by reverse-indexing ParentID over the flattened tree.
type Descriptor struct {
	ID       uint64
	IdxID    uint64
	Idx2ID   uint64
	ParentID uint64
	Children []uint64
}

type pageTrailer struct {
	itemCount byte
	maxCount  byte
	entrySize byte
	level     byte
}

func parseTrailer(page []byte) pageTrailer {
	return pageTrailer{
		itemCount: page[pageTrailerOffset],
		maxCount:  page[pageTrailerOffset+1],
		entrySize: page[pageTrailerOffset+2],
		level:     page[pageTrailerOffset+3],
	}
}

func (v Version) indexLeafWidth() int {
	if v == Ansi97 {
		return 12
	}
	return 24
}

func (v Version) descriptorLeafWidth() int {
	if v == Ansi97 {
		return 16
	}
	return 32
}

func (v Version) branchWidth() int {
	if v == Ansi97 {
		return 12
	}
	return 24
}

// readPage returns the 512-byte page at offset, or nil when the
// offset falls outside the blob.
func readPage(w bin.Window, offset uint64) []byte {
	page, err := w.Slice(int(offset), PAGE_LEN)
	if err != nil {
		return nil
	}
	return page
}

// walkBTree recurses from one page, handing each complete leaf record
// to visit. Revisiting a page offset stops that leg and reports a
// loop. Records that would overrun the page are discarded.
func walkBTree(w bin.Window, offset uint64, version Version, leafWidth int,
	visited map[uint64]bool, warnings *[]mapi.Warning, visit func(record []byte)) {

	if visited[offset] {
		*warnings = append(*warnings, mapi.NewWarning(
			mapi.WarnPstBranchLoopDetected, mapi.SeverityWarn,
			fmt.Sprintf("page at offset %v already visited", offset),
			"btree"))
		return
	}
	visited[offset] = true

	page := readPage(w, offset)
	if page == nil {
		return
	}
	trailer := parseTrailer(page)

	if trailer.level == 0 {
		for i := 0; (i+1)*leafWidth <= pageTrailerOffset && i < int(trailer.itemCount); i++ {
			visit(page[i*leafWidth : (i+1)*leafWidth])
		}
		return
	}

	width := version.branchWidth()
	for i := 0; (i+1)*width <= pageTrailerOffset && i < int(trailer.itemCount); i++ {
		entry := bin.NewWindow(page[i*width : (i+1)*width])
		var child uint64
		if version == Ansi97 {
			v, _ := entry.Uint32(4)
			child = uint64(v)
		} else {
			child, _ = entry.Uint64(8)
		}
		walkBTree(w, child, version, leafWidth, visited, warnings, visit)
	}
}

// parseIndexTree flattens the index B-tree into an id-keyed map.
func parseIndexTree(w bin.Window, root uint64, version Version, warnings *[]mapi.Warning) map[uint64]IndexRecord {
	out := make(map[uint64]IndexRecord)
	visited := make(map[uint64]bool)
	walkBTree(w, root, version, version.indexLeafWidth(), visited, warnings, func(record []byte) {
		rw := bin.NewWindow(record)
		var rec IndexRecord
		if version == Ansi97 {
			id, _ := rw.Uint32(0)
			off, _ := rw.Uint32(4)
			rec.ID = uint64(id)
			rec.Offset = uint64(off)
			rec.Size, _ = rw.Uint16(8)
			rec.Flags, _ = rw.Uint16(10)
		} else {
			rec.ID, _ = rw.Uint64(0)
			rec.Offset, _ = rw.Uint64(8)
			rec.Size, _ = rw.Uint16(16)
			rec.Flags, _ = rw.Uint16(18)
		}
		if rec.ID != 0 {
			out[rec.ID] = rec
		}
	})
	return out
}

// parseDescriptorTree flattens the descriptor B-tree and links every
// node to its parent's child list.
func parseDescriptorTree(w bin.Window, root uint64, version Version, warnings *[]mapi.Warning) map[uint64]*Descriptor {
	out := make(map[uint64]*Descriptor)
	var order []uint64
	visited := make(map[uint64]bool)
	walkBTree(w, root, version, version.descriptorLeafWidth(), visited, warnings, func(record []byte) {
		rw := bin.NewWindow(record)
		var desc Descriptor
		if version == Ansi97 {
			id, _ := rw.Uint32(0)
			idx, _ := rw.Uint32(4)
			idx2, _ := rw.Uint32(8)
			parent, _ := rw.Uint32(12)
			desc = Descriptor{ID: uint64(id), IdxID: uint64(idx), Idx2ID: uint64(idx2), ParentID: uint64(parent)}
		} else {
			id, _ := rw.Uint64(0)
			idx, _ := rw.Uint64(8)
			idx2, _ := rw.Uint64(16)
			parent, _ := rw.Uint32(24)
			desc = Descriptor{ID: id, IdxID: idx, Idx2ID: idx2, ParentID: uint64(parent)}
		}
		if desc.ID == 0 {
			return
		}
		out[desc.ID] = &desc
		order = append(order, desc.ID)
	})

	for _, id := range order {
		desc := out[id]
		if desc.ParentID == 0 || desc.ParentID == desc.ID {
			continue
		}
		if parent, ok := out[desc.ParentID]; ok {
			parent.Children = append(parent.Children, id)
		}
	}
	return out
}
