package pixel

import "image/color"

// MonoModel maps colors to [On] if their luminance is at least half of the
// full scale, and to [Off] otherwise.
var MonoModel color.Model = color.ModelFunc(toMono)

// Pixel states.
var (
	Off = Mono{}
	On  = Mono{On: true}
)

// Mono is the color of a single framebuffer pixel: lit or dark.
type Mono struct {
	On bool
}

// RGBA returns opaque white for lit pixels and opaque black for dark ones.
func (c Mono) RGBA() (r, g, b, a uint32) {
	a = 0xffff
	if c.On {
		r, g, b = a, a, a
	}
	return
}

func toMono(c color.Color) color.Color {
	switch c := c.(type) {
	case Mono:
		return c
	case nil:
		return Off
	}
	gray := color.Gray16Model.Convert(c).(color.Gray16)
	return Mono{On: gray.Y >= 0x8000}
}
