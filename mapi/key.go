package mapi

import (
	"fmt"

	"github.com/google/uuid"
)

// PropKey identifies a MAPI property: a numeric code or a string name,
// scoped by a property set GUID. Name is empty for numeric keys.
type PropKey struct {
	Code uint32
	Name string
	GUID uuid.UUID
}

func NumericKey(code uint32, guid uuid.UUID) PropKey {
	return PropKey{Code: code, GUID: guid}
}

func NamedKey(name string, guid uuid.UUID) PropKey {
	return PropKey{Name: name, GUID: guid}
}

// StandardKey scopes a property code to the default PS_MAPI set.
func StandardKey(code uint32) PropKey {
	return PropKey{Code: code, GUID: PSMapi}
}

func (k PropKey) IsNamed() bool {
	return k.Name != ""
}

func (k PropKey) String() string {
	if k.IsNamed() {
		return fmt.Sprintf("%s%s", FormatGUID(k.GUID), k.Name)
	}
	return fmt.Sprintf("%s0x%04X", FormatGUID(k.GUID), k.Code)
}
