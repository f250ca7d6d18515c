package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// PageHeight is the number of pixel rows packed into one byte.
const PageHeight = 8

// Errors.
var (
	ErrSize = errors.New("pixel: buffer size does not match geometry")
)

// Buffer holds the pixel values.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pages.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

// Framebuffer is a 1-bit per pixel monochrome buffer as used by page addressed
// OLED controllers (SH1106, SSD1306 and friends).
//
// Every byte holds 8 vertically stacked pixels of one column, bit 0 being the
// top row. Pixel (x, y) lives in byte x + (y/8)*width, bit y%8. The buffer is
// a sequence of pages, each page is width bytes long.
//
// Pixels can only be switched on individually; the only way to switch pixels
// off is [Framebuffer.Fill].
type Framebuffer struct {
	Buffer
}

// Size returns the number of bytes needed to hold a w×h framebuffer.
func Size(w, h int) int {
	return w * ((h + PageHeight - 1) / PageHeight)
}

// NewFramebuffer allocates a zeroed w×h framebuffer.
func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{
		Buffer: Buffer{
			Rect:   image.Rect(0, 0, w, h),
			Pix:    make([]byte, Size(w, h)),
			Stride: w,
		},
	}
}

// Attach wraps pix as the backing store of a w×h framebuffer. The contents of
// pix are kept as they are. The returned framebuffer owns pix from this point
// on; the caller must not use pix anymore.
func Attach(w, h int, pix []byte) (*Framebuffer, error) {
	if size := Size(w, h); len(pix) != size {
		return nil, fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrSize, w, h, size, len(pix))
	}
	return &Framebuffer{
		Buffer: Buffer{
			Rect:   image.Rect(0, 0, w, h),
			Pix:    pix,
			Stride: w,
		},
	}, nil
}

// Width in pixels.
func (p *Framebuffer) Width() int { return p.Rect.Dx() }

// Height in pixels.
func (p *Framebuffer) Height() int { return p.Rect.Dy() }

// Pages is the number of 8 pixel high pages.
func (p *Framebuffer) Pages() int {
	if p.Stride == 0 {
		return 0
	}
	return len(p.Pix) / p.Stride
}

// Page returns the raw bytes of page i, one byte per column in increasing x
// order. The slice aliases the framebuffer.
func (p *Framebuffer) Page(i int) []byte {
	if i < 0 || i >= p.Pages() {
		return nil
	}
	off := i * p.Stride
	return p.Pix[off : off+p.Stride]
}

func (p *Framebuffer) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < p.Rect.Max.X && y < p.Rect.Max.Y
}

// SetPixel switches on the pixel at (x, y). Coordinates outside of the
// framebuffer are ignored.
func (p *Framebuffer) SetPixel(x, y int) {
	if !p.in(x, y) {
		return
	}
	p.Pix[x+(y/PageHeight)*p.Stride] |= 1 << uint(y%PageHeight)
}

// Bit reports whether the pixel at (x, y) is on.
func (p *Framebuffer) Bit(x, y int) bool {
	if !p.in(x, y) {
		return false
	}
	return p.Pix[x+(y/PageHeight)*p.Stride]&(1<<uint(y%PageHeight)) != 0
}

// Fill overwrites every byte of the framebuffer with value.
//
// Since one byte covers 8 rows of a column, anything other than 0x00 or 0xff
// results in horizontal stripes repeating every 8 rows.
func (p *Framebuffer) Fill(value byte) {
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// Clear switches off all pixels.
func (p *Framebuffer) Clear() {
	p.Fill(0x00)
}

func (p *Framebuffer) ColorModel() color.Model {
	return MonoModel
}

func (p *Framebuffer) At(x, y int) color.Color {
	if !p.in(x, y) {
		return color.Transparent
	}
	return Mono{On: p.Bit(x, y)}
}

// Set implements [draw.Image]. Lit colors switch the pixel on, all other
// colors leave it untouched.
func (p *Framebuffer) Set(x, y int, c color.Color) {
	if toMono(c).(Mono).On {
		p.SetPixel(x, y)
	}
}
