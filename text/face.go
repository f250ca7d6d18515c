package text

import (
	"fmt"
	"image"
	imagedraw "image/draw"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/BeatGlow/oled/pixel"
)

// Face7x13 is a fixed width 7×13 face, an alternative to the built-in 5×7
// font for [DrawFace].
var Face7x13 font.Face = basicfont.Face7x13

// DrawFace draws s using face with the top left corner of the text at
// (x, y). Partially covered pixels are switched on if they are at least half
// covered. Only the first [MaxLength] bytes of s are drawn. It returns the x
// position following the text.
func DrawFace(dst imagedraw.Image, face font.Face, x, y int, s string) int {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(pixel.On),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(truncate(s))
	return d.Dot.X.Ceil()
}

// LoadTrueType parses a TrueType font and returns a face of the given size
// in points at 72 DPI, so one point is one pixel.
func LoadTrueType(ttf []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("text: invalid TrueType font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// GoRegular returns the Go Regular font at the given size.
func GoRegular(size float64) (font.Face, error) {
	return LoadTrueType(goregular.TTF, size)
}
