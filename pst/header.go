// Package pst reads personal-storage files: the NDB header, the index
// and descriptor B-trees, and the property blocks they reference.
package pst

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/asalih/go-outlook/internal/bin"
)

// MAGIC_NUMBER begins every personal-storage file.
var MAGIC_NUMBER = []byte{0x21, 0x42, 0x44, 0x4E}

const (
	versionByteOffset = 10

	VERSION_BYTE_ANSI97      = 0x0E
	VERSION_BYTE_UNICODE2003 = 0x17

	ansiEncryptionOffset = 0x1CD
	ansiIndex1Offset     = 0xA0
	ansiIndex2Offset     = 0xA8

	unicodeEncryptionOffset = 0x201
	unicodeIndex1Offset     = 0xB8
	unicodeIndex2Offset     = 0xC0
)

var (
	ErrInvalidPstMagic  = errors.New("pst magic mismatch")
	ErrUnknownIndexType = errors.New("pst index type unrecognized")
	ErrDataTooShort     = errors.New("pst data too short")
)

// Version selects the on-disk width of offsets and records.
type Version int

const (
	Ansi97 Version = iota
	Unicode2003
)

func (v Version) String() string {
	if v == Ansi97 {
		return "ansi97"
	}
	return "unicode2003"
}

// Header carries the fields needed to reach both B-trees.
type Header struct {
	Version        Version
	EncryptionType byte
	Index1Offset   uint64
	Index2Offset   uint64
}

// ParseHeader probes the fixed header region. Index1 locates the
// index tree root page, Index2 the descriptor tree root page.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < len(MAGIC_NUMBER) {
		return Header{}, fmt.Errorf("%w: have %v bytes", ErrDataTooShort, len(data))
	}
	if !bytes.Equal(data[:len(MAGIC_NUMBER)], MAGIC_NUMBER) {
		return Header{}, ErrInvalidPstMagic
	}

	w := bin.NewWindow(data)
	versionByte, err := w.Byte(versionByteOffset)
	if err != nil {
		return Header{}, fmt.Errorf("version byte: %w", ErrDataTooShort)
	}

	var h Header
	switch versionByte {
	case VERSION_BYTE_ANSI97:
		h.Version = Ansi97
		enc, err := w.Byte(ansiEncryptionOffset)
		if err != nil {
			return Header{}, fmt.Errorf("ansi header: %w", ErrDataTooShort)
		}
		idx1, err := w.Uint32(ansiIndex1Offset)
		if err != nil {
			return Header{}, fmt.Errorf("ansi header: %w", ErrDataTooShort)
		}
		idx2, err := w.Uint32(ansiIndex2Offset)
		if err != nil {
			return Header{}, fmt.Errorf("ansi header: %w", ErrDataTooShort)
		}
		h.EncryptionType = enc
		h.Index1Offset = uint64(idx1)
		h.Index2Offset = uint64(idx2)
	case VERSION_BYTE_UNICODE2003:
		h.Version = Unicode2003
		enc, err := w.Byte(unicodeEncryptionOffset)
		if err != nil {
			return Header{}, fmt.Errorf("unicode header: %w", ErrDataTooShort)
		}
		idx1, err := w.Uint64(unicodeIndex1Offset)
		if err != nil {
			return Header{}, fmt.Errorf("unicode header: %w", ErrDataTooShort)
		}
		idx2, err := w.Uint64(unicodeIndex2Offset)
		if err != nil {
			return Header{}, fmt.Errorf("unicode header: %w", ErrDataTooShort)
		}
		h.EncryptionType = enc
		h.Index1Offset = idx1
		h.Index2Offset = idx2
	default:
		return Header{}, fmt.Errorf("%w: 0x%02X", ErrUnknownIndexType, versionByte)
	}
	return h, nil
}
