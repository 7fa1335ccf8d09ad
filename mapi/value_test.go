package mapi

import (
	"reflect"
	"testing"
	"time"
)

func TestFiletimeToTime(t *testing.T) {
	type args struct {
		ft uint64
	}
	tests := []struct {
		name string
		args args
		want time.Time
	}{
		{
			name: "zero is unset",
			args: args{ft: 0},
			want: time.Time{},
		},
		{
			name: "unix epoch",
			args: args{ft: 116444736000000000},
			want: time.Unix(0, 0).UTC(),
		},
		{
			name: "one second past epoch",
			args: args{ft: 116444736000000000 + 10_000_000},
			want: time.Unix(1, 0).UTC(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FiletimeToTime(tt.args.ft); !got.Equal(tt.want) {
				t.Errorf("FiletimeToTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeFixed(t *testing.T) {
	type args struct {
		propType uint16
		value    []byte
	}
	tests := []struct {
		name    string
		args    args
		want    any
		wantErr bool
	}{
		{
			name: "short",
			args: args{propType: PT_SHORT, value: []byte{0xFE, 0xFF, 0, 0, 0, 0, 0, 0}},
			want: int16(-2),
		},
		{
			name: "long",
			args: args{propType: PT_LONG, value: []byte{0x2A, 0, 0, 0, 0, 0, 0, 0}},
			want: int32(42),
		},
		{
			name: "boolean true",
			args: args{propType: PT_BOOLEAN, value: []byte{0x01, 0, 0, 0, 0, 0, 0, 0}},
			want: true,
		},
		{
			name: "boolean false",
			args: args{propType: PT_BOOLEAN, value: []byte{0, 0, 0, 0, 0, 0, 0, 0}},
			want: false,
		},
		{
			name: "currency scales by ten thousand",
			args: args{propType: PT_CURRENCY, value: []byte{0x10, 0x27, 0, 0, 0, 0, 0, 0}},
			want: float64(1),
		},
		{
			name: "longlong",
			args: args{propType: PT_LONGLONG, value: []byte{0x01, 0, 0, 0, 0, 0, 0, 0}},
			want: int64(1),
		},
		{
			name:    "binary is not fixed",
			args:    args{propType: PT_BINARY, value: make([]byte, 8)},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeFixed(tt.args.propType, tt.args.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeFixed() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeFixed() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestDecodeVariable(t *testing.T) {
	type args struct {
		propType uint16
		raw      []byte
		codepage int
	}
	tests := []struct {
		name string
		args args
		want any
	}{
		{
			name: "unicode strips trailing nuls",
			args: args{propType: PT_UNICODE, raw: []byte{'H', 0, 'i', 0, 0, 0, 0, 0}},
			want: "Hi",
		},
		{
			name: "string8 raw bytes",
			args: args{propType: PT_STRING8, raw: []byte("plain\x00")},
			want: "plain",
		},
		{
			name: "string8 windows-1252",
			args: args{propType: PT_STRING8, raw: []byte{0xE9, 0x00}, codepage: 1252},
			want: "é",
		},
		{
			name: "binary passthrough",
			args: args{propType: PT_BINARY, raw: []byte{0xDE, 0xAD}},
			want: []byte{0xDE, 0xAD},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeVariable(tt.args.propType, tt.args.raw, tt.args.codepage)
			if err != nil {
				t.Fatalf("DecodeVariable() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeVariable() = %v, want %v", got, tt.want)
			}
		})
	}
}
