// Package rtf decompresses the LZFu-packed RTF bodies carried by the
// pr_rtf_compressed property.
package rtf

import (
	"errors"
	"fmt"

	"github.com/asalih/go-outlook/internal/bin"
)

const (
	HEADER_LEN = 16

	MAGIC_COMPRESSED   uint32 = 0x75465A4C
	MAGIC_UNCOMPRESSED uint32 = 0x414C454D

	dictLen = 4096
)

var (
	ErrInvalidHeader = errors.New("rtf header too short")
	ErrInvalidMagic  = errors.New("rtf magic unrecognized")
)

// The decoder dictionary is seeded with this fixed run of common RTF
// tokens before any input byte is written.
const seedDict = "{\\rtf1\\ansi\\mac\\deff0\\deftab720{\\fonttbl;}" +
	"{\\f0\\fnil \\froman \\fswiss \\fmodern \\fscript " +
	"\\fdecor MS Sans SerifSymbolArialTimes New RomanCourier" +
	"{\\colortbl\\red0\\green0\\blue0\r\n\\par " +
	"\\pard\\plain\\f0\\fs20\\b\\i\\u\\tab\\tx"

// Header is the fixed prefix of a compressed RTF body.
type Header struct {
	CompSize uint32
	RawSize  uint32
	Magic    uint32
	CRC      uint32
}

// ParseHeader reads the 16-byte prefix.
func ParseHeader(data []byte) (Header, error) {
	w := bin.NewWindow(data)
	if w.Len() < HEADER_LEN {
		return Header{}, fmt.Errorf("%w: have %v bytes", ErrInvalidHeader, w.Len())
	}
	var h Header
	h.CompSize, _ = w.Uint32(0)
	h.RawSize, _ = w.Uint32(4)
	h.Magic, _ = w.Uint32(8)
	h.CRC, _ = w.Uint32(12)
	return h, nil
}

// Decompress expands a full pr_rtf_compressed value, header included.
func Decompress(data []byte) ([]byte, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	payload := data[HEADER_LEN:]

	switch header.Magic {
	case MAGIC_UNCOMPRESSED:
		n := int(header.RawSize)
		if n > len(payload) {
			n = len(payload)
		}
		out := make([]byte, n)
		copy(out, payload[:n])
		return out, nil
	case MAGIC_COMPRESSED:
		return expand(payload, int(header.RawSize)), nil
	default:
		return nil, fmt.Errorf("%w: 0x%08X", ErrInvalidMagic, header.Magic)
	}
}

// expand runs the LZ decoder: a 4096-byte ring seeded with the fixed
// dictionary, literals and 12/4-bit back-references selected by flag
// bytes, LSB first. A reference whose offset equals the current write
// position is the end marker.
func expand(payload []byte, rawSize int) []byte {
	var ring [dictLen]byte
	copy(ring[:], seedDict)
	wp := len(seedDict)

	out := make([]byte, 0, rawSize)
	pos := 0

decode:
	for pos < len(payload) {
		flags := payload[pos]
		pos++
		for bit := 0; bit < 8; bit++ {
			if flags&(1<<bit) == 0 {
				if pos >= len(payload) {
					break decode
				}
				b := payload[pos]
				pos++
				ring[wp&(dictLen-1)] = b
				out = append(out, b)
				wp++
				continue
			}

			if pos+2 > len(payload) {
				break decode
			}
			val := uint16(payload[pos])<<8 | uint16(payload[pos+1])
			pos += 2
			offset := int(val >> 4)
			length := int(val&0x0F) + 2
			if offset == wp&(dictLen-1) {
				break decode
			}
			for i := 0; i < length; i++ {
				b := ring[(offset+i)&(dictLen-1)]
				ring[wp&(dictLen-1)] = b
				out = append(out, b)
				wp++
			}
		}
	}

	if len(out) > rawSize {
		out = out[:rawSize]
	}
	return out
}
