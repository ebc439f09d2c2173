package core

import (
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      Color
		want    color.RGBA
		wantErr bool
	}{
		{"#993300", color.RGBA{0x99, 0x33, 0x00, 0xff}, false},
		{"FF99CC", color.RGBA{0xff, 0x99, 0xcc, 0xff}, false},
		{"#fff", color.RGBA{}, true},
		{"#GG0000", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.in), func(t *testing.T) {
			got, err := ParseHex(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseHex(%q) = %v, expected %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestColorRGBAFallback(t *testing.T) {
	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	if got := Color("nope").RGBA(); got != white {
		t.Errorf("malformed color should fall back to white, got %v", got)
	}
}
