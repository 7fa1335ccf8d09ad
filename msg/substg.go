package msg

import (
	"regexp"
	"strconv"
)

var substgNameRe = regexp.MustCompile(`^__substg1\.0_([0-9A-Fa-f]{4})([0-9A-Fa-f]{4})(?:-([0-9A-Fa-f]{8}))?$`)

// SubstgName is a parsed variable-property stream name: property code,
// property type, and the multi-value slot index when present.
type SubstgName struct {
	Code     uint32
	Type     uint16
	Index    uint32
	HasIndex bool
}

// ParseSubstgName decodes a substg stream name. ok is false for
// streams that are not property carriers.
func ParseSubstgName(name string) (SubstgName, bool) {
	m := substgNameRe.FindStringSubmatch(name)
	if m == nil {
		return SubstgName{}, false
	}
	code, _ := strconv.ParseUint(m[1], 16, 32)
	typ, _ := strconv.ParseUint(m[2], 16, 16)
	out := SubstgName{Code: uint32(code), Type: uint16(typ)}
	if m[3] != "" {
		idx, _ := strconv.ParseUint(m[3], 16, 32)
		out.Index = uint32(idx)
		out.HasIndex = true
	}
	return out, true
}
