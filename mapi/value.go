package mapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/asalih/go-outlook/internal/bin"
)

// 100ns intervals between 1601-01-01 and the Unix epoch.
const filetimeEpochDelta = 116444736000000000

// FiletimeToTime converts a FILETIME value. Zero means unset and is
// reported as the zero time.
func FiletimeToTime(ft uint64) time.Time {
	if ft == 0 {
		return time.Time{}
	}
	return time.Unix(0, (int64(ft)-filetimeEpochDelta)*100).UTC()
}

// DecodeFixed decodes a fixed-size property value from the 8-byte
// inline slot.
func DecodeFixed(propType uint16, value []byte) (any, error) {
	w := bin.NewWindow(value)

	switch BaseType(propType) {
	case PT_SHORT:
		v, err := w.Uint16(0)
		return int16(v), err
	case PT_LONG:
		v, err := w.Int32(0)
		return v, err
	case PT_FLOAT:
		return w.Float32(0)
	case PT_DOUBLE:
		return w.Float64(0)
	case PT_CURRENCY:
		v, err := w.Int64(0)
		return float64(v) / 10000, err
	case PT_APPTIME:
		return w.Float64(0)
	case PT_ERROR:
		return w.Uint32(0)
	case PT_BOOLEAN:
		v, err := w.Uint16(0)
		return v != 0, err
	case PT_LONGLONG:
		return w.Int64(0)
	case PT_SYSTIME:
		ft, err := w.Filetime(0)
		if err != nil {
			return nil, err
		}
		return FiletimeToTime(ft), nil
	default:
		return nil, fmt.Errorf("property type 0x%04X is not fixed size", propType)
	}
}

// DecodeVariable decodes a variable-size property value from its raw
// stream bytes. codepage transcodes PT_STRING8 when non-zero.
func DecodeVariable(propType uint16, raw []byte, codepage int) (any, error) {
	switch BaseType(propType) {
	case PT_STRING8:
		return decodeString8(raw, codepage), nil
	case PT_UNICODE:
		decoded := DecodeUTF16(raw)
		return strings.TrimRight(decoded, "\x00"), nil
	case PT_BINARY, PT_OBJECT:
		return raw, nil
	case PT_CLSID:
		u, err := GUIDFromMixed(raw)
		if err != nil {
			return nil, err
		}
		return FormatGUID(u), nil
	case PT_SYSTIME:
		w := bin.NewWindow(raw)
		ft, err := w.Filetime(0)
		if err != nil {
			return nil, err
		}
		return FiletimeToTime(ft), nil
	default:
		if IsFixedSize(propType) {
			return DecodeFixed(propType, raw)
		}
		return raw, nil
	}
}

func decodeString8(raw []byte, codepage int) string {
	s := transcodeString8(raw, codepage)
	return strings.TrimRight(s, "\x00")
}
