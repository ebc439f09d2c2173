package core

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a "#RRGGBB" hex color shared by the terminal and window
// renderers. The empty string means the renderer's default.
type Color string

// ColorDefault leaves the cell unstyled.
const ColorDefault Color = ""

// ParseHex converts c into an opaque RGBA value.
func ParseHex(c Color) (color.RGBA, error) {
	s := strings.TrimPrefix(string(c), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("core: invalid color %q", string(c))
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("core: invalid color %q: %w", string(c), err)
	}
	return color.RGBA{
		R: uint8(v >> 16), //#nosec G115 -- truncation intended
		G: uint8(v >> 8),  //#nosec G115 -- truncation intended
		B: uint8(v),       //#nosec G115 -- truncation intended
		A: 0xff,
	}, nil
}

// RGBA is ParseHex that falls back to white for malformed values.
// Config validation rejects those before a renderer ever sees them.
func (c Color) RGBA() color.RGBA {
	rgba, err := ParseHex(c)
	if err != nil {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return rgba
}
