package msg

import (
	"fmt"
	"sort"

	"github.com/asalih/go-outlook/cfb"
	"github.com/asalih/go-outlook/internal/bin"
	"github.com/asalih/go-outlook/mapi"
)

const (
	PROPERTIES_STREAM = "__properties_version1.0"

	// Prefix header lengths inside the properties stream.
	PROPERTIES_PREFIX_ROOT = 32
	PROPERTIES_PREFIX_SUB  = 8

	propertyRecordLen = 16
)

type mvSlot struct {
	index uint32
	value any
}

// buildPropertySet merges the inline properties stream with the
// substg streams of one storage. Substg values override inline ones.
func buildPropertySet(cf *cfb.CompoundFile, storage *cfb.DirEntry, nameid NameidMap, prefix int, warnings *[]mapi.Warning) *mapi.PropertySet {
	set := mapi.NewPropertySet()

	if entry := cf.Directory.FindChild(storage, PROPERTIES_STREAM); entry != nil {
		raw, err := cf.ReadStream(entry)
		if err != nil {
			*warnings = append(*warnings, mapi.NewWarning(
				mapi.WarnPropertyParseFailed, mapi.SeverityWarn,
				fmt.Sprintf("properties stream unreadable: %v", err),
				storage.Name))
		} else {
			parseInlineProperties(raw, prefix, nameid, set, warnings)
		}
	}

	codepage := storeCodepage(set)

	multi := make(map[mapi.PropKey][]mvSlot)
	for _, child := range cf.Directory.Children(storage) {
		name, ok := ParseSubstgName(child.Name)
		if !ok || child.ObjType != cfb.Stream {
			continue
		}
		raw, err := cf.ReadStream(child)
		if err != nil {
			*warnings = append(*warnings, mapi.NewWarning(
				mapi.WarnPropertyParseFailed, mapi.SeverityWarn,
				fmt.Sprintf("substg 0x%04X unreadable: %v", name.Code, err),
				child.Name))
			continue
		}

		key := nameid.ResolveCode(name.Code)
		if mapi.IsMultiValue(name.Type) && name.HasIndex {
			value, err := mapi.DecodeVariable(mapi.BaseType(name.Type), raw, codepage)
			if err != nil {
				*warnings = append(*warnings, mapi.NewWarning(
					mapi.WarnPropertyParseFailed, mapi.SeverityWarn,
					fmt.Sprintf("substg 0x%04X slot %v: %v", name.Code, name.Index, err),
					child.Name))
				continue
			}
			multi[key] = append(multi[key], mvSlot{index: name.Index, value: value})
			continue
		}

		value, err := mapi.DecodeVariable(name.Type, raw, codepage)
		if err != nil {
			*warnings = append(*warnings, mapi.NewWarning(
				mapi.WarnPropertyParseFailed, mapi.SeverityWarn,
				fmt.Sprintf("substg 0x%04X: %v", name.Code, err),
				child.Name))
			continue
		}
		set.Put(key, value)
	}

	for key, slots := range multi {
		sort.Slice(slots, func(i, j int) bool { return slots[i].index < slots[j].index })
		values := make([]any, len(slots))
		for i, slot := range slots {
			values[i] = slot.value
		}
		set.Put(key, values)
	}

	return set
}

// parseInlineProperties walks the 16-byte records after the prefix
// header. Only fixed-size values live inline; variable-size types
// arrive through their substg streams.
func parseInlineProperties(raw []byte, prefix int, nameid NameidMap, set *mapi.PropertySet, warnings *[]mapi.Warning) {
	if len(raw) < prefix {
		return
	}
	w := bin.NewWindow(raw[prefix:])
	for off := 0; off+propertyRecordLen <= w.Len(); off += propertyRecordLen {
		propType, _ := w.Uint16(off)
		code, _ := w.Uint16(off + 2)
		value, _ := w.Slice(off+8, 8)

		if !mapi.IsFixedSize(propType) {
			continue
		}
		decoded, err := mapi.DecodeFixed(propType, value)
		if err != nil {
			*warnings = append(*warnings, mapi.NewWarning(
				mapi.WarnPropertyParseFailed, mapi.SeverityWarn,
				fmt.Sprintf("inline property 0x%04X: %v", code, err),
				PROPERTIES_STREAM))
			continue
		}
		set.Put(nameid.ResolveCode(uint32(code)), decoded)
	}
}

// storeCodepage picks the code page used to transcode PT_STRING8
// values, when the message declares one.
func storeCodepage(set *mapi.PropertySet) int {
	if cp, ok := set.GetInt("message_codepage"); ok && cp > 0 {
		return int(cp)
	}
	if cp, ok := set.GetInt("internet_cpid"); ok && cp > 0 {
		return int(cp)
	}
	return 0
}
