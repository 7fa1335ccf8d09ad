package mapi

import "testing"

func TestDecodeUTF16(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"empty", nil, ""},
		{"ascii", []byte{0x48, 0x00, 0x69, 0x00}, "Hi"},
		{"accented", []byte{0xE9, 0x00}, "é"},
		{"odd tail dropped", []byte{0x48, 0x00, 0x69}, "H"},
		{"surrogate pair", []byte{0x3D, 0xD8, 0x00, 0xDE}, "\U0001F600"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeUTF16(tt.raw); got != tt.want {
				t.Errorf("DecodeUTF16() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranscodeString8(t *testing.T) {
	tests := []struct {
		name     string
		raw      []byte
		codepage int
		want     string
	}{
		{"no codepage raw", []byte("plain"), 0, "plain"},
		{"cp1252 e acute", []byte{0xE9}, 1252, "é"},
		{"cp1251 cyrillic", []byte{0xC0}, 1251, "А"},
		{"latin-1", []byte{0xFC}, 28591, "ü"},
		{"utf-8 passthrough", []byte("déjà"), 65001, "déjà"},
		{"unknown codepage raw", []byte("as-is"), 424242, "as-is"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transcodeString8(tt.raw, tt.codepage); got != tt.want {
				t.Errorf("transcodeString8() = %q, want %q", got, tt.want)
			}
		})
	}
}
