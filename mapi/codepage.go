package mapi

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// DecodeUTF16 decodes little-endian UTF-16 bytes. A trailing odd byte
// is dropped.
func DecodeUTF16(raw []byte) string {
	raw = raw[:len(raw)&^1]
	if len(raw) == 0 {
		return ""
	}
	decoded, err := utf16Decoder.NewDecoder().Bytes(raw)
	if err != nil {
		return ""
	}
	return string(decoded)
}

// transcodeString8 converts code-page bytes to UTF-8. Unknown or
// unset code pages fall through to a raw byte interpretation.
func transcodeString8(raw []byte, codepage int) string {
	if codepage == 0 {
		return string(raw)
	}
	enc := encodingForCodepage(codepage)
	if enc == nil {
		return string(raw)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

func encodingForCodepage(codepage int) encoding.Encoding {
	switch codepage {
	case 1250:
		return charmap.Windows1250
	case 1251:
		return charmap.Windows1251
	case 1252:
		return charmap.Windows1252
	case 1253:
		return charmap.Windows1253
	case 1254:
		return charmap.Windows1254
	case 1255:
		return charmap.Windows1255
	case 1256:
		return charmap.Windows1256
	case 1257:
		return charmap.Windows1257
	case 1258:
		return charmap.Windows1258
	case 874:
		return charmap.Windows874
	case 20866:
		return charmap.KOI8R
	case 28591:
		return charmap.ISO8859_1
	case 28592:
		return charmap.ISO8859_2
	case 28595:
		return charmap.ISO8859_5
	case 28597:
		return charmap.ISO8859_7
	case 28599:
		return charmap.ISO8859_9
	case 65001:
		return nil // already UTF-8
	}
	enc, err := ianaindex.MIME.Encoding(fmt.Sprintf("windows-%d", codepage))
	if err != nil || enc == nil {
		return nil
	}
	return enc
}
