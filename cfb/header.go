package cfb

import (
	"bytes"
	"fmt"

	"github.com/asalih/go-outlook/internal/bin"
)

type Header struct {
	Version          Version
	NumDirSectors    uint32
	NumFatSectors    uint32
	FirstDirSector   uint32
	FirstMinifatSect uint32
	NumMinifatSector uint32
	FirstDifatSector uint32
	NumDifatSectors  uint32

	InitialDifatEntries []uint32
}

const (
	headerOffMinorVersion   = 24
	headerOffMajorVersion   = 26
	headerOffByteOrder      = 28
	headerOffSectorShift    = 30
	headerOffMiniShift      = 32
	headerOffNumDirSectors  = 40
	headerOffNumFatSectors  = 44
	headerOffFirstDirSector = 48
	headerOffMiniCutoff     = 56
	headerOffFirstMinifat   = 60
	headerOffNumMinifat     = 64
	headerOffFirstDifat     = 68
	headerOffNumDifat       = 72
	headerOffDifatEntries   = 76
)

func ParseHeader(w bin.Window) (*Header, error) {
	if w.Len() < HEADER_LEN {
		return nil, fmt.Errorf("header needs %v bytes, have %v: %w", HEADER_LEN, w.Len(), ErrTooShort)
	}

	magicPart, err := w.Slice(0, len(MAGIC_NUMBER))
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(magicPart, MAGIC_NUMBER) {
		return nil, fmt.Errorf("%w: % X", ErrInvalidMagic, magicPart)
	}

	byteOrderMark, err := w.Uint16(headerOffByteOrder)
	if err != nil {
		return nil, err
	}
	if byteOrderMark != BYTE_ORDER_MARK {
		return nil, fmt.Errorf("%w (expected 0x%04X, found 0x%04X)", ErrInvalidByteOrder, BYTE_ORDER_MARK, byteOrderMark)
	}

	versionNumber, err := w.Uint16(headerOffMajorVersion)
	if err != nil {
		return nil, err
	}
	version, err := VersionNumber(versionNumber)
	if err != nil {
		return nil, err
	}

	sectorShift, err := w.Uint16(headerOffSectorShift)
	if err != nil {
		return nil, err
	}
	if sectorShift != version.SectorShift() {
		return nil, fmt.Errorf("%w for CFB version %v (expected %v, found %v)",
			ErrInvalidSectorShift, version, version.SectorShift(), sectorShift)
	}

	miniSectorShift, err := w.Uint16(headerOffMiniShift)
	if err != nil {
		return nil, err
	}
	if miniSectorShift != MINI_SECTOR_SHIFT {
		return nil, fmt.Errorf("%w: mini sector shift %v (expected %v)",
			ErrInvalidSectorShift, miniSectorShift, MINI_SECTOR_SHIFT)
	}

	miniStreamCutoff, err := w.Uint32(headerOffMiniCutoff)
	if err != nil {
		return nil, err
	}
	if miniStreamCutoff != MINI_STREAM_CUTOFF {
		return nil, fmt.Errorf("%w: %v (expected %v)", ErrInvalidMiniCutoff, miniStreamCutoff, MINI_STREAM_CUTOFF)
	}

	header := &Header{Version: version}
	header.NumDirSectors, _ = w.Uint32(headerOffNumDirSectors)
	header.NumFatSectors, _ = w.Uint32(headerOffNumFatSectors)
	header.FirstDirSector, _ = w.Uint32(headerOffFirstDirSector)
	header.FirstMinifatSect, _ = w.Uint32(headerOffFirstMinifat)
	header.NumMinifatSector, _ = w.Uint32(headerOffNumMinifat)
	header.FirstDifatSector, _ = w.Uint32(headerOffFirstDifat)
	header.NumDifatSectors, _ = w.Uint32(headerOffNumDifat)

	// Some CFB implementations use FREE_SECTOR to indicate END_OF_CHAIN.
	if header.FirstDifatSector == FREE_SECTOR {
		header.FirstDifatSector = END_OF_CHAIN
	}

	for i := 0; i < NUM_DIFAT_ENTRIES_IN_HEADER; i++ {
		entry, err := w.Uint32(headerOffDifatEntries + i*4)
		if err != nil {
			break
		}
		if entry == FREE_SECTOR || entry == END_OF_CHAIN {
			continue
		}
		header.InitialDifatEntries = append(header.InitialDifatEntries, entry)
	}

	return header, nil
}
