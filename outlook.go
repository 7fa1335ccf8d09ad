// Package outlook reads Outlook containers from memory: .msg compound
// files, .pst stores, and plain .eml mail. Inputs are sniffed by
// magic; a value that carries no known magic and names an existing
// file is read from disk, anything else is treated as raw bytes.
package outlook

import (
	"bytes"
	"fmt"
	"os"

	"github.com/asalih/go-outlook/cfb"
	"github.com/asalih/go-outlook/eml"
	"github.com/asalih/go-outlook/mapi"
	"github.com/asalih/go-outlook/msg"
	"github.com/asalih/go-outlook/pst"
)

// Format of a sniffed input.
type Format int

const (
	FormatUnknown Format = iota
	FormatMsg
	FormatPst
	FormatEml
)

func (f Format) String() string {
	switch f {
	case FormatMsg:
		return "msg"
	case FormatPst:
		return "pst"
	case FormatEml:
		return "eml"
	default:
		return "unknown"
	}
}

// File is one opened container. Exactly one of Msg, Pst, Eml is set,
// matching Format. Warnings aggregates every layer's diagnostics.
type File struct {
	Format   Format
	Msg      *msg.Message
	Pst      *pst.PST
	Eml      *eml.Message
	Warnings []mapi.Warning
}

// DetectFormat sniffs container magic. Inputs without one are assumed
// to be mail text.
func DetectFormat(data []byte) Format {
	if bytes.HasPrefix(data, cfb.MAGIC_NUMBER) {
		return FormatMsg
	}
	if bytes.HasPrefix(data, pst.MAGIC_NUMBER) {
		return FormatPst
	}
	return FormatEml
}

// Resolve turns an input into the blob to parse: known magic wins,
// then an existing file path, then the bytes as given. Corrupted
// payloads therefore never route through filesystem errors.
func Resolve(input []byte) ([]byte, error) {
	if DetectFormat(input) != FormatEml {
		return input, nil
	}
	path := string(input)
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %v: %w", path, err)
		}
		return data, nil
	}
	return input, nil
}

// Open resolves and parses an input of any supported format.
func Open(input []byte) (*File, error) {
	data, err := Resolve(input)
	if err != nil {
		return nil, err
	}

	switch DetectFormat(data) {
	case FormatMsg:
		m, err := OpenMsg(data)
		if err != nil {
			return nil, err
		}
		return &File{Format: FormatMsg, Msg: m, Warnings: m.Warnings}, nil
	case FormatPst:
		p, err := OpenPst(data)
		if err != nil {
			return nil, err
		}
		return &File{Format: FormatPst, Pst: p, Warnings: p.Warnings}, nil
	default:
		e, err := OpenEml(data)
		if err != nil {
			return nil, err
		}
		return &File{Format: FormatEml, Eml: e, Warnings: e.Warnings}, nil
	}
}

// OpenMsg parses compound-file item bytes.
func OpenMsg(input []byte) (*msg.Message, error) {
	data, err := Resolve(input)
	if err != nil {
		return nil, err
	}
	return msg.Open(data, cfb.ValidationPermissive)
}

// OpenPst parses personal-storage bytes.
func OpenPst(input []byte) (*pst.PST, error) {
	data, err := Resolve(input)
	if err != nil {
		return nil, err
	}
	return pst.Open(data)
}

// OpenEml parses mail text.
func OpenEml(input []byte) (*eml.Message, error) {
	data, err := Resolve(input)
	if err != nil {
		return nil, err
	}
	return eml.Open(data)
}
