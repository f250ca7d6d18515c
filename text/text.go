package text

import (
	"image"

	"github.com/BeatGlow/oled/draw"
)

// Font metrics of the built-in font.
const (
	GlyphWidth  = 5
	GlyphHeight = 7

	// Advance is the horizontal distance between two characters: one glyph
	// plus one pixel of spacing.
	Advance = GlyphWidth + 1

	// MaxLength is the maximum number of bytes of a string that are drawn.
	MaxLength = 128
)

// DrawChar draws the glyph for c with its top left corner at (x, y).
//
// Glyph pixels outside of dst are clipped on every edge.
func DrawChar(dst draw.Canvas, x, y int, c byte) {
	if !image.Rect(x, y, x+GlyphWidth, y+GlyphHeight).Overlaps(dst.Bounds()) {
		return
	}
	g := Lookup(c)
	for col, bits := range g {
		for row := 0; row < GlyphHeight; row++ {
			if bits&(1<<uint(row)) != 0 {
				dst.SetPixel(x+col, y+row)
			}
		}
	}
}

// DrawString draws s left to right starting at (x, y), one byte per
// character. Only the first [MaxLength] bytes of s are drawn. It returns the x
// position following the last character.
func DrawString(dst draw.Canvas, x, y int, s string) int {
	s = truncate(s)
	for i := 0; i < len(s); i++ {
		DrawChar(dst, x, y, s[i])
		x += Advance
	}
	return x
}

// Measure returns the width in pixels DrawString advances for s.
func Measure(s string) int {
	return len(truncate(s)) * Advance
}

func truncate(s string) string {
	if len(s) > MaxLength {
		return s[:MaxLength]
	}
	return s
}
