package msg

import (
	"reflect"
	"testing"
)

func TestParseSubstgName(t *testing.T) {
	type args struct {
		name string
	}
	tests := []struct {
		name   string
		args   args
		want   SubstgName
		wantOk bool
	}{
		{
			name:   "subject stream",
			args:   args{name: "__substg1.0_0037001F"},
			want:   SubstgName{Code: 0x0037, Type: 0x001F},
			wantOk: true,
		},
		{
			name:   "multi value slot",
			args:   args{name: "__substg1.0_1000001F-00000002"},
			want:   SubstgName{Code: 0x1000, Type: 0x001F, Index: 2, HasIndex: true},
			wantOk: true,
		},
		{
			name:   "non hex code",
			args:   args{name: "__substg1.0_ZZZZ001F"},
			wantOk: false,
		},
		{
			name:   "properties stream",
			args:   args{name: "__properties_version1.0"},
			wantOk: false,
		},
		{
			name:   "trailing garbage",
			args:   args{name: "__substg1.0_0037001Fx"},
			wantOk: false,
		},
		{
			name:   "lower case hex",
			args:   args{name: "__substg1.0_3701000d"},
			want:   SubstgName{Code: 0x3701, Type: 0x000D},
			wantOk: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSubstgName(tt.args.name)
			if ok != tt.wantOk {
				t.Fatalf("ParseSubstgName() ok = %v, want %v", ok, tt.wantOk)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSubstgName() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
