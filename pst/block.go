package pst

import (
	"errors"
	"fmt"

	"github.com/asalih/go-outlook/internal/bin"
	"github.com/asalih/go-outlook/mapi"
)

const (
	BLOCK_SIG_PROPERTY = 0xBC
	BLOCK_SIG_TABLE    = 0x7C

	blockRecordLen = 8
)

var ErrUnknownBlockSig = errors.New("block signature unrecognized")

// Block is one decrypted node block: the signature byte, the record
// region, and the allocation offset table at the tail.
type Block struct {
	Sig              byte
	Data             []byte
	OffsetTableStart int
}

func parseBlock(data []byte) (*Block, error) {
	w := bin.NewWindow(data)
	sig, err := w.Byte(0)
	if err != nil {
		return nil, fmt.Errorf("block header: %w", err)
	}
	if sig != BLOCK_SIG_PROPERTY && sig != BLOCK_SIG_TABLE {
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownBlockSig, sig)
	}
	tableStart, err := w.Uint16(2)
	if err != nil {
		return nil, fmt.Errorf("block header: %w", err)
	}
	if int(tableStart) > len(data) {
		tableStart = uint16(len(data))
	}
	return &Block{Sig: sig, Data: data, OffsetTableStart: int(tableStart)}, nil
}

// allocation resolves a one-based heap slot against the offset table:
// a u16 count followed by count+1 u16 boundaries.
func (b *Block) allocation(index int) ([]byte, bool) {
	w := bin.NewWindow(b.Data)
	count, err := w.Uint16(b.OffsetTableStart)
	if err != nil || index < 1 || index > int(count) {
		return nil, false
	}
	start, err1 := w.Uint16(b.OffsetTableStart + 2 + (index-1)*2)
	end, err2 := w.Uint16(b.OffsetTableStart + 2 + index*2)
	if err1 != nil || err2 != nil || start > end {
		return nil, false
	}
	raw, err := w.Slice(int(start), int(end-start))
	if err != nil {
		return nil, false
	}
	return raw, true
}

// records walks the 8-byte property records between the block header
// and the offset table.
func (b *Block) records(visit func(propType uint16, code uint16, value []byte)) {
	for off := 4; off+blockRecordLen <= b.OffsetTableStart; off += blockRecordLen {
		w := bin.NewWindow(b.Data[off : off+blockRecordLen])
		propType, _ := w.Uint16(0)
		code, _ := w.Uint16(2)
		value, _ := w.Slice(4, 4)
		visit(propType, code, value)
	}
}

// refResolver turns a variable-size reference into raw bytes. The
// second return is false when the reference cannot be satisfied.
type refResolver func(ref uint32) ([]byte, bool)

// decodeBlockProperties turns one property block into a PropertySet.
// Fixed-size values small enough live in the 4-byte slot; wider fixed
// values and every variable value go through their reference.
func decodeBlockProperties(block *Block, resolve refResolver, codepage int, warnings *[]mapi.Warning) *mapi.PropertySet {
	set := mapi.NewPropertySet()
	block.records(func(propType, code uint16, value []byte) {
		key := mapi.StandardKey(uint32(code))

		decoded, err := decodeBlockValue(block, propType, value, resolve, codepage)
		if err != nil {
			*warnings = append(*warnings, mapi.NewWarning(
				mapi.WarnPropertyParseFailed, mapi.SeverityWarn,
				fmt.Sprintf("block property 0x%04X: %v", code, err),
				"pst block"))
			return
		}
		if decoded == nil {
			return
		}
		set.Put(key, decoded)
	})
	return set
}

func decodeBlockValue(block *Block, propType uint16, value []byte, resolve refResolver, codepage int) (any, error) {
	w := bin.NewWindow(value)

	switch mapi.BaseType(propType) {
	case mapi.PT_SHORT:
		v, err := w.Uint16(0)
		return int16(v), err
	case mapi.PT_LONG:
		v, err := w.Int32(0)
		return v, err
	case mapi.PT_FLOAT:
		return w.Float32(0)
	case mapi.PT_ERROR:
		return w.Uint32(0)
	case mapi.PT_BOOLEAN:
		v, err := w.Byte(0)
		return v != 0, err
	case mapi.PT_NULL, mapi.PT_UNSPECIFIED:
		return nil, nil
	}

	// Everything else is reached through a reference.
	ref, err := w.Uint32(0)
	if err != nil {
		return nil, err
	}
	if ref == 0 {
		return nil, nil
	}
	raw, ok := resolveRef(block, ref, resolve)
	if !ok {
		return nil, fmt.Errorf("reference 0x%08X unresolved", ref)
	}
	return mapi.DecodeVariable(propType, raw, codepage)
}

// resolveRef prefers the in-block heap; references that are not heap
// ids go to the caller's ID2 map.
func resolveRef(block *Block, ref uint32, resolve refResolver) ([]byte, bool) {
	if ref&0x1F == 0 {
		if raw, ok := block.allocation(int(ref >> 5)); ok {
			return raw, true
		}
	}
	if resolve == nil {
		return nil, false
	}
	return resolve(ref)
}
