package pst

import "github.com/asalih/go-outlook/internal/bin"

// Id2Map resolves sub-node keys to index-record ids.
type Id2Map map[uint32]uint64

// parseId2 reads an ID2 table block. Record width is 16 bytes when
// the block size allows it, 8 otherwise. Zero keys are skipped.
func parseId2(data []byte) Id2Map {
	out := make(Id2Map)
	w := bin.NewWindow(data)

	if len(data) >= 16 && len(data)%16 == 0 {
		for off := 0; off+16 <= w.Len(); off += 16 {
			id2, _ := w.Uint32(off)
			idxID, _ := w.Uint32(off + 8)
			if id2 == 0 {
				continue
			}
			out[id2] = uint64(idxID)
		}
		return out
	}

	for off := 0; off+8 <= w.Len(); off += 8 {
		id2, _ := w.Uint32(off)
		idxID, _ := w.Uint32(off + 4)
		if id2 == 0 {
			continue
		}
		out[id2] = uint64(idxID)
	}
	return out
}
