package mapi

// MAPI property types (MS-OXCDATA). The upper 0x1000 bit marks a
// multi-value property; the low bits are the base type.
const (
	PT_UNSPECIFIED uint16 = 0x0000
	PT_NULL        uint16 = 0x0001
	PT_SHORT       uint16 = 0x0002
	PT_LONG        uint16 = 0x0003
	PT_FLOAT       uint16 = 0x0004
	PT_DOUBLE      uint16 = 0x0005
	PT_CURRENCY    uint16 = 0x0006
	PT_APPTIME     uint16 = 0x0007
	PT_ERROR       uint16 = 0x000A
	PT_BOOLEAN     uint16 = 0x000B
	PT_OBJECT      uint16 = 0x000D
	PT_LONGLONG    uint16 = 0x0014
	PT_STRING8     uint16 = 0x001E
	PT_UNICODE     uint16 = 0x001F
	PT_SYSTIME     uint16 = 0x0040
	PT_CLSID       uint16 = 0x0048
	PT_BINARY      uint16 = 0x0102

	MV_FLAG uint16 = 0x1000
)

func BaseType(t uint16) uint16 {
	return t &^ MV_FLAG
}

func IsMultiValue(t uint16) bool {
	return t&MV_FLAG != 0
}

// IsFixedSize reports whether the base type's value fits in the 8-byte
// inline record slot.
func IsFixedSize(t uint16) bool {
	switch BaseType(t) {
	case PT_SHORT, PT_LONG, PT_FLOAT, PT_DOUBLE, PT_CURRENCY,
		PT_APPTIME, PT_ERROR, PT_BOOLEAN, PT_LONGLONG, PT_SYSTIME:
		return true
	default:
		return false
	}
}
