package draw

import (
	"errors"
	"image"
)

// ErrBounds is returned by the Try variants if a shape does not fit the canvas.
var ErrBounds = errors.New("draw: out of canvas bounds")

// Canvas is a surface that pixels can be switched on in, such as a
// [pixel.Framebuffer].
type Canvas interface {
	// Bounds of the canvas, Min is expected to be (0, 0).
	Bounds() image.Rectangle

	// SetPixel switches on the pixel at (x, y), ignoring coordinates outside
	// of the canvas.
	SetPixel(x, y int)
}

// Pixel switches on the pixel at (x, y).
func Pixel(dst Canvas, x, y int) {
	dst.SetPixel(x, y)
}

// Line draws a line between (x0,y0) and (x1,y1), both ends included.
//
// Nothing is drawn if either end lies outside of the canvas.
func Line(dst Canvas, x0, y0, x1, y1 int) {
	_ = TryLine(dst, x0, y0, x1, y1)
}

// TryLine is like [Line] but reports [ErrBounds] if the line was rejected.
func TryLine(dst Canvas, x0, y0, x1, y1 int) error {
	r := dst.Bounds()
	if !image.Pt(x0, y0).In(r) || !image.Pt(x1, y1).In(r) {
		return ErrBounds
	}
	bresenham(dst, x0, y0, x1, y1)
	return nil
}

// HorizontalLine draws a line between (x,y) and (x+w-1,y).
func HorizontalLine(dst Canvas, x, y, w int) {
	for i := 0; i < w; i++ {
		dst.SetPixel(x+i, y)
	}
}

// VerticalLine draws a line between (x,y) and (x,y+h-1).
func VerticalLine(dst Canvas, x, y, h int) {
	for i := 0; i < h; i++ {
		dst.SetPixel(x, y+i)
	}
}

// Rect draws the rectangle with corners (x,y) and (x+w,y+h). Both corners are
// part of the rectangle, so it covers w+1 by h+1 pixels. If filled is false,
// only the outline is drawn.
//
// Nothing is drawn unless the whole rectangle fits the canvas.
func Rect(dst Canvas, x, y, w, h int, filled bool) {
	_ = TryRect(dst, x, y, w, h, filled)
}

// TryRect is like [Rect] but reports [ErrBounds] if the rectangle was rejected.
func TryRect(dst Canvas, x, y, w, h int, filled bool) error {
	r := dst.Bounds()
	if w < 0 || h < 0 || !image.Pt(x, y).In(r) || !image.Pt(x+w, y+h).In(r) {
		return ErrBounds
	}
	if filled {
		for i := x; i <= x+w; i++ {
			for j := y; j <= y+h; j++ {
				dst.SetPixel(i, j)
			}
		}
		return nil
	}
	HorizontalLine(dst, x, y, w+1)
	HorizontalLine(dst, x, y+h, w+1)
	VerticalLine(dst, x, y, h+1)
	VerticalLine(dst, x+w, y, h+1)
	return nil
}

// bresenham plots the line using the integer error accumulator form. The end
// points are ordered first, so a→b and b→a produce the same pixels.
func bresenham(dst Canvas, x0, y0, x1, y1 int) {
	if x0 > x1 || (x0 == x1 && y0 > y1) {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}

	var (
		dx  = abs(x1 - x0)
		sx  = sign(x1 - x0)
		dy  = -abs(y1 - y0)
		sy  = sign(y1 - y0)
		err = dx + dy
	)
	for {
		dst.SetPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
