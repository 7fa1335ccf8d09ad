package cfb

import (
	"fmt"

	"github.com/asalih/go-outlook/internal/bin"
)

type Sectors struct {
	Version    Version
	NumSectors uint32

	inner bin.Window
}

func NewSectors(v Version, w bin.Window) *Sectors {
	sectorLen := v.SectorLen()
	numSectors := ((w.Len() + sectorLen - 1) / sectorLen) - 1

	return &Sectors{
		Version:    v,
		NumSectors: uint32(numSectors),
		inner:      w,
	}
}

func (s *Sectors) SectorLen() int {
	return s.Version.SectorLen()
}

// SectorOffset returns the file offset of sector n. The header takes
// the first sector-sized slot, so sector n lives at (n+1)*len.
func (s *Sectors) SectorOffset(sectorId uint32) int {
	return (int(sectorId) + 1) * s.SectorLen()
}

// ReadSector returns the bytes of one sector. The final sector of a
// file may be short; the available prefix is returned.
func (s *Sectors) ReadSector(sectorId uint32) ([]byte, error) {
	if sectorId >= s.NumSectors {
		return nil, fmt.Errorf("tried to read sector %v, but sector count is only %v", sectorId, s.NumSectors)
	}

	off := s.SectorOffset(sectorId)
	n := s.SectorLen()
	if off+n > s.inner.Len() {
		n = s.inner.Len() - off
	}
	return s.inner.Slice(off, n)
}
