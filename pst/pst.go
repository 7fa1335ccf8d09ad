package pst

import (
	"fmt"

	"github.com/asalih/go-outlook/internal/bin"
	"github.com/asalih/go-outlook/mapi"
)

// ROOT_DESCRIPTOR_ID is the canonical root of the item hierarchy.
const ROOT_DESCRIPTOR_ID = 0x21

// PST is one opened personal-storage session: the header, both
// flattened B-trees, and every warning the open collected. The
// session is read-only after Open.
type PST struct {
	Header      Header
	Index       map[uint64]IndexRecord
	Descriptors map[uint64]*Descriptor
	Warnings    []mapi.Warning

	window bin.Window
}

// Open parses the header and flattens the index and descriptor trees.
// Tree damage degrades to empty maps plus warnings; only the header
// probe is a hard failure.
func Open(data []byte) (*PST, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	p := &PST{
		Header: header,
		window: bin.NewWindow(data),
	}

	p.Index = parseIndexTree(p.window, header.Index1Offset, header.Version, &p.Warnings)
	if len(p.Index) == 0 && readPage(p.window, header.Index1Offset) == nil {
		p.Warnings = append(p.Warnings, mapi.NewWarning(
			mapi.WarnPstIndexParseFailed, mapi.SeverityWarn,
			fmt.Sprintf("index root page at offset %v unreadable", header.Index1Offset),
			"index btree"))
	}

	p.Descriptors = parseDescriptorTree(p.window, header.Index2Offset, header.Version, &p.Warnings)
	if len(p.Descriptors) == 0 && readPage(p.window, header.Index2Offset) == nil {
		p.Warnings = append(p.Warnings, mapi.NewWarning(
			mapi.WarnPstDescriptorFailed, mapi.SeverityWarn,
			fmt.Sprintf("descriptor root page at offset %v unreadable", header.Index2Offset),
			"descriptor btree"))
	}

	return p, nil
}

// RootDescriptor returns the hierarchy root, nil when absent.
func (p *PST) RootDescriptor() *Descriptor {
	return p.Descriptors[ROOT_DESCRIPTOR_ID]
}

// readIndexBlock locates a block by index-record id, reads it, and
// decrypts it.
func (p *PST) readIndexBlock(idxID uint64) ([]byte, error) {
	rec, ok := p.Index[idxID]
	if !ok {
		return nil, fmt.Errorf("index id 0x%X not in index tree", idxID)
	}
	raw, err := p.window.Slice(int(rec.Offset), int(rec.Size))
	if err != nil {
		return nil, fmt.Errorf("block for index id 0x%X: %w", idxID, err)
	}
	return Decrypt(p.Header.EncryptionType, raw), nil
}

// id2MapFor loads the sub-node table referenced by a descriptor.
// A missing or damaged table yields an empty map.
func (p *PST) id2MapFor(desc *Descriptor) Id2Map {
	if desc.Idx2ID == 0 {
		return make(Id2Map)
	}
	raw, err := p.readIndexBlock(desc.Idx2ID)
	if err != nil {
		return make(Id2Map)
	}
	return parseId2(raw)
}

// resolverFor builds the reference resolver for one descriptor: a
// reference that is not an in-block heap id is an ID2 key naming a
// further data block.
func (p *PST) resolverFor(id2 Id2Map) refResolver {
	return func(ref uint32) ([]byte, bool) {
		idxID, ok := id2[ref]
		if !ok {
			return nil, false
		}
		raw, err := p.readIndexBlock(idxID)
		if err != nil {
			return nil, false
		}
		return raw, true
	}
}
