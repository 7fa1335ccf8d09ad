package cfb

import (
	"encoding/binary"
	"fmt"
)

type Allocator struct {
	Sectors        *Sectors
	DifatSectorIds []uint32
	Difat          []uint32
	Fat            []uint32
	Validation     Validation
}

// NewAllocator walks the DIFAT chain and reads every referenced FAT
// sector into a flat next-pointer table.
func NewAllocator(header *Header, sectors *Sectors, validation Validation) (*Allocator, error) {
	difat := make([]uint32, len(header.InitialDifatEntries))
	copy(difat, header.InitialDifatEntries)

	seenSectorIds := make(map[uint32]bool)
	difatSectorIds := make([]uint32, 0)
	currentDifatSector := header.FirstDifatSector

	for currentDifatSector != END_OF_CHAIN && currentDifatSector != FREE_SECTOR {
		if currentDifatSector > MAX_REGULAR_SECTOR {
			return nil, fmt.Errorf("invalid DIFAT chain: %w", ErrorInvalidCFB)
		} else if currentDifatSector >= sectors.NumSectors {
			return nil, fmt.Errorf("invalid DIFAT chain includes sector index %v: %w", currentDifatSector, ErrorInvalidCFB)
		}

		if seenSectorIds[currentDifatSector] {
			return nil, fmt.Errorf("DIFAT chain includes duplicate sector index %v: %w", currentDifatSector, ErrorInvalidCFB)
		}

		seenSectorIds[currentDifatSector] = true
		difatSectorIds = append(difatSectorIds, currentDifatSector)

		sector, err := sectors.ReadSector(currentDifatSector)
		if err != nil {
			return nil, err
		}

		// Each DIFAT sector holds sectorLen/4 - 1 FAT pointers followed
		// by the next DIFAT sector number.
		numEntries := len(sector)/4 - 1
		for i := 0; i < numEntries; i++ {
			next := binary.LittleEndian.Uint32(sector[i*4:])
			if next != FREE_SECTOR && next > MAX_REGULAR_SECTOR {
				return nil, fmt.Errorf("invalid DIFAT refers to invalid sector index %v", next)
			}
			difat = append(difat, next)
		}
		currentDifatSector = binary.LittleEndian.Uint32(sector[numEntries*4:])
	}

	if validation.IsStrict() &&
		header.NumDifatSectors != uint32(len(difatSectorIds)) {
		return nil, fmt.Errorf("incorrect DIFAT chain length (header says %v, actual is %v): %w",
			header.NumDifatSectors, len(difatSectorIds), ErrorInvalidCFB)
	}

	//difat pop
	for i := len(difat) - 1; i >= 0; i-- {
		if difat[i] != FREE_SECTOR {
			break
		}
		difat = difat[:i]
	}

	if validation.IsStrict() &&
		header.NumFatSectors != uint32(len(difat)) {
		return nil, fmt.Errorf("incorrect number of FAT sectors (header says %v, DIFAT says %v)",
			header.NumFatSectors, len(difat))
	}

	fat := make([]uint32, 0)
	for _, sectorId := range difat {
		if sectorId >= sectors.NumSectors {
			return nil, fmt.Errorf("invalid FAT sector index %v: %w", sectorId, ErrorInvalidCFB)
		}

		sector, err := sectors.ReadSector(sectorId)
		if err != nil {
			return nil, err
		}
		for i := 0; i+4 <= len(sector); i += 4 {
			fat = append(fat, binary.LittleEndian.Uint32(sector[i:]))
		}
	}

	//fat pop
	for i := len(fat) - 1; i >= 0; i-- {
		if fat[i] != FREE_SECTOR {
			break
		}
		fat = fat[:i]
	}

	return &Allocator{
		Sectors:        sectors,
		DifatSectorIds: difatSectorIds,
		Difat:          difat,
		Fat:            fat,
		Validation:     validation,
	}, nil
}

// Next returns the FAT entry for the given sector, or END_OF_CHAIN when
// the index runs off the table.
func (a *Allocator) Next(index uint32) uint32 {
	if index >= uint32(len(a.Fat)) {
		return END_OF_CHAIN
	}
	return a.Fat[index]
}

// ReadStream concatenates every sector along the FAT chain rooted at
// start.
func (a *Allocator) ReadStream(start uint32) ([]byte, error) {
	chain := WalkChain(a.Fat, start)

	out := make([]byte, 0, len(chain)*a.Sectors.SectorLen())
	for _, sectorId := range chain {
		if sectorId >= a.Sectors.NumSectors {
			continue
		}
		sector, err := a.Sectors.ReadSector(sectorId)
		if err != nil {
			return nil, err
		}
		out = append(out, sector...)
	}
	return out, nil
}
