package mapi

import "testing"

func TestGUIDFromMixed(t *testing.T) {
	raw := []byte{0x28, 0x03, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00,
		0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46}

	u, err := GUIDFromMixed(raw)
	if err != nil {
		t.Fatalf("GUIDFromMixed() error = %v", err)
	}
	if u != PSMapi {
		t.Errorf("GUIDFromMixed() = %v, want PS_MAPI", u)
	}
	if got, want := FormatGUID(u), "{00020328-0000-0000-C000-000000000046}"; got != want {
		t.Errorf("FormatGUID() = %v, want %v", got, want)
	}
}

func TestGUIDFromMixedShort(t *testing.T) {
	if _, err := GUIDFromMixed(make([]byte, 8)); err == nil {
		t.Error("GUIDFromMixed() expected error for short input")
	}
}
