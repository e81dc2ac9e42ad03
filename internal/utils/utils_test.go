package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    uint32
		wantErr bool
	}{
		{name: "hex", in: "0x06000001", want: 0x06000001},
		{name: "upper hex", in: "0X0600000A", want: 0x0600000A},
		{name: "bare hex", in: "6000001a", want: 0x6000001a},
		{name: "decimal", in: "100663297", want: 0x06000001},
		{name: "too big", in: "0x1ffffffff", wantErr: true},
		{name: "garbage", in: "method", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseToken(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseToken(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseToken(%q) = %08X, want %08X", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnique(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "empty", in: nil, want: nil},
		{name: "no duplicates", in: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "keeps first", in: []string{"b", "a", "b", "c", "a"}, want: []string{"b", "a", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unique(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unique() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"App.yml", "Lib.yml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	missing := filepath.Join(dir, "Missing.yml")
	got, err := ExpandInputs([]string{filepath.Join(dir, "*.yml"), missing, filepath.Join(dir, "App.yml")})
	if err != nil {
		t.Fatalf("ExpandInputs() error = %v", err)
	}
	want := []string{filepath.Join(dir, "App.yml"), filepath.Join(dir, "Lib.yml"), missing}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandInputs() = %v, want %v", got, want)
	}

	if _, err := ExpandInputs([]string{"[bad"}); err == nil {
		t.Error("expected an error for a malformed pattern")
	}
}
