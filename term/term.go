// Package term implements a scrolling line terminal on a display.
package term

import (
	"image"

	"github.com/BeatGlow/oled/text"
)

// LineHeight is the height of a terminal line in pixels.
const LineHeight = 8

// Screen is a display the terminal prints on, such as [oled.Display].
type Screen interface {
	Bounds() image.Rectangle
	Fill(value byte)
	DrawString(x, y int, s string)
	Render() error
}

// Terminal prints lines top to bottom, starting over on a blank screen once
// the last line is used.
type Terminal struct {
	Screen Screen

	// Y is the top of the next line.
	Y int
}

// New returns a terminal on s, printing from the top.
func New(s Screen) *Terminal {
	return &Terminal{Screen: s}
}

// Println prints s on the next line and renders the screen. Text beyond the
// right edge is clipped.
func (t *Terminal) Println(s string) error {
	if t.Y+text.GlyphHeight > t.Screen.Bounds().Dy() {
		t.Screen.Fill(0x00)
		t.Y = 0
	}
	t.Screen.DrawString(0, t.Y, s)
	t.Y += LineHeight
	return t.Screen.Render()
}
