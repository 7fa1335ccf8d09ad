// Package cfb reads OLE/CFB compound files (MS-CFB) from an in-memory
// blob: header, DIFAT/FAT/MiniFAT tables, the directory tree, and
// stream contents.
package cfb

import (
	"fmt"

	"github.com/asalih/go-outlook/internal/bin"
)

type CompoundFile struct {
	Window bin.Window

	Header    *Header
	Allocator *Allocator
	MiniAlloc *MiniAlloc
	Directory *Directory
}

func Open(data []byte, validation Validation) (*CompoundFile, error) {
	w := bin.NewWindow(data)

	header, err := ParseHeader(w)
	if err != nil {
		return nil, err
	}

	sectorLen := header.Version.SectorLen()
	if w.Len() > (int(MAX_REGULAR_SECTOR)+1)*sectorLen {
		return nil, fmt.Errorf("file is too large: %w", ErrorInvalidCFB)
	}

	sectors := NewSectors(header.Version, w)

	allocator, err := NewAllocator(header, sectors, validation)
	if err != nil {
		return nil, err
	}

	directory, err := NewDirectory(allocator, header.FirstDirSector)
	if err != nil {
		return nil, err
	}

	miniAlloc, err := NewMiniAlloc(header, allocator, directory.RootDirEntry())
	if err != nil {
		return nil, err
	}

	compoundFile := CompoundFile{
		Window: w,

		Header:    header,
		Allocator: allocator,
		MiniAlloc: miniAlloc,
		Directory: directory,
	}

	return &compoundFile, nil
}

func (c *CompoundFile) RootEntry() *Entry {
	return NewEntry(c.Directory.RootDirEntry(), "/")
}
