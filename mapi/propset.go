package mapi

import (
	"sort"

	"github.com/google/uuid"
)

// PropertySet holds decoded property values keyed by their full
// property identity. Lookups by bare code prefer the PS_MAPI set.
type PropertySet struct {
	props map[PropKey]any
}

func NewPropertySet() *PropertySet {
	return &PropertySet{props: make(map[PropKey]any)}
}

func (ps *PropertySet) Len() int {
	return len(ps.props)
}

// Put stores a value, replacing any previous value for the key.
func (ps *PropertySet) Put(key PropKey, value any) {
	ps.props[key] = value
}

// GetExact returns the value stored under a numeric code in a
// specific property set.
func (ps *PropertySet) GetExact(code uint32, guid uuid.UUID) (any, bool) {
	v, ok := ps.props[NumericKey(code, guid)]
	return v, ok
}

// GetNamed returns the value stored under a string name in a specific
// property set.
func (ps *PropertySet) GetNamed(name string, guid uuid.UUID) (any, bool) {
	v, ok := ps.props[NamedKey(name, guid)]
	return v, ok
}

// GetCode looks a numeric code up across property sets. PS_MAPI wins
// when the code exists in several sets.
func (ps *PropertySet) GetCode(code uint32) (any, bool) {
	if v, ok := ps.props[StandardKey(code)]; ok {
		return v, true
	}
	var (
		found bool
		best  PropKey
		value any
	)
	for key, v := range ps.props {
		if key.IsNamed() || key.Code != code {
			continue
		}
		if !found || key.GUID.String() < best.GUID.String() {
			found, best, value = true, key, v
		}
	}
	return value, found
}

// Get resolves a symbolic atom: standard tags by code, registered
// named properties by their exact key, anything else as a
// PS_PUBLIC_STRINGS string name.
func (ps *PropertySet) Get(atom string) (any, bool) {
	if code, ok := CodeForAtom(atom); ok {
		return ps.GetCode(code)
	}
	if key, ok := KeyForNamedAtom(atom); ok {
		if v, found := ps.props[key]; found {
			return v, true
		}
		return nil, false
	}
	if v, ok := ps.GetNamed(atom, PSPublicStrings); ok {
		return v, true
	}
	for key, v := range ps.props {
		if key.IsNamed() && key.Name == atom {
			return v, true
		}
	}
	return nil, false
}

// GetString returns the atom's value when it is a string.
func (ps *PropertySet) GetString(atom string) (string, bool) {
	v, ok := ps.Get(atom)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt returns the atom's value when it carries an integer type.
func (ps *PropertySet) GetInt(atom string) (int64, bool) {
	v, ok := ps.Get(atom)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	}
	return 0, false
}

// GetBytes returns the atom's value when it is a byte slice.
func (ps *PropertySet) GetBytes(atom string) ([]byte, bool) {
	v, ok := ps.Get(atom)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

// Keys returns every stored key in a stable order.
func (ps *PropertySet) Keys() []PropKey {
	keys := make([]PropKey, 0, len(ps.props))
	for key := range ps.props {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

// Atoms renders the set as an atom-keyed map. Standard and registered
// named properties use their symbolic atoms; everything else uses the
// key's string form.
func (ps *PropertySet) Atoms() map[string]any {
	out := make(map[string]any, len(ps.props))
	for key, v := range ps.props {
		out[AtomForKey(key)] = v
	}
	return out
}

// AtomForKey picks the friendliest available name for a key.
func AtomForKey(key PropKey) string {
	if key.IsNamed() {
		if atom, ok := NamedAtomForName(key.Name, key.GUID); ok {
			return atom
		}
		return key.Name
	}
	if key.GUID == PSMapi {
		if info, ok := Tag(key.Code); ok {
			return info.Atom
		}
	}
	if atom, ok := NamedAtom(key.Code, key.GUID); ok {
		return atom
	}
	return key.String()
}
