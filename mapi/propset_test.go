package mapi

import (
	"reflect"
	"testing"
)

func TestPropertySetGetCode(t *testing.T) {
	set := NewPropertySet()
	set.Put(NumericKey(0x0037, PSETIDCommon), "other set")
	set.Put(StandardKey(0x0037), "standard set")

	if v, ok := set.GetCode(0x0037); !ok || v != "standard set" {
		t.Errorf("GetCode() = %v, %v; PS_MAPI must win", v, ok)
	}

	set2 := NewPropertySet()
	set2.Put(NumericKey(0x0037, PSETIDCommon), "other set")
	if v, ok := set2.GetCode(0x0037); !ok || v != "other set" {
		t.Errorf("GetCode() = %v, %v; any set matches when PS_MAPI is absent", v, ok)
	}
}

func TestPropertySetGetAtom(t *testing.T) {
	set := NewPropertySet()
	set.Put(StandardKey(0x0037), "hello")
	set.Put(NumericKey(0x8208, PSETIDAppointment), "Room 4")
	set.Put(NamedKey("x-custom", PSPublicStrings), int32(7))
	set.Put(NamedKey("content-class", PSInternetHeaders), "urn:content-classes:message")

	tests := []struct {
		name string
		atom string
		want any
	}{
		{"standard tag", "subject", "hello"},
		{"registered named", "location", "Room 4"},
		{"public strings name", "x-custom", int32(7)},
		{"internet header name", "content_class", "urn:content-classes:message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := set.Get(tt.atom)
			if !ok || !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Get(%q) = %v, %v, want %v", tt.atom, got, ok, tt.want)
			}
		})
	}

	if _, ok := set.Get("sender_name"); ok {
		t.Error("Get() reported a value for an absent atom")
	}
}

func TestPropertySetTypedGetters(t *testing.T) {
	set := NewPropertySet()
	set.Put(StandardKey(0x0017), int32(2))
	set.Put(StandardKey(0x0037), "subj")
	set.Put(StandardKey(0x1009), []byte{1, 2, 3})

	if v, ok := set.GetInt("importance"); !ok || v != 2 {
		t.Errorf("GetInt() = %v, %v", v, ok)
	}
	if v, ok := set.GetString("subject"); !ok || v != "subj" {
		t.Errorf("GetString() = %v, %v", v, ok)
	}
	if v, ok := set.GetBytes("rtf_compressed"); !ok || !reflect.DeepEqual(v, []byte{1, 2, 3}) {
		t.Errorf("GetBytes() = %v, %v", v, ok)
	}
	if _, ok := set.GetInt("subject"); ok {
		t.Error("GetInt() accepted a string value")
	}
}

func TestAtomForKey(t *testing.T) {
	tests := []struct {
		name string
		key  PropKey
		want string
	}{
		{"standard tag", StandardKey(0x0037), "subject"},
		{"registered named", NumericKey(0x8208, PSETIDAppointment), "location"},
		{"registered header name", NamedKey("x-mailer", PSInternetHeaders), "x_mailer"},
		{"string named", NamedKey("x-thing", PSPublicStrings), "x-thing"},
		{"unknown code", StandardKey(0x6666), "{00020328-0000-0000-C000-000000000046}0x6666"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AtomForKey(tt.key); got != tt.want {
				t.Errorf("AtomForKey() = %v, want %v", got, tt.want)
			}
		})
	}
}
