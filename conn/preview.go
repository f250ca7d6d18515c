package conn

import (
	"bytes"
	"image/color"
	"io"
	"os"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Preview renders emulated display contents to a terminal.
//
// On a terminal every pixel is drawn as an ANSI 256 color block, otherwise as
// '#' (lit) or '.' (dark).
type Preview struct {
	w       io.Writer
	ansi    bool
	palette ansi256.Palette
	lit     color.NRGBA
	dark    color.NRGBA
	buf     bytes.Buffer
}

// NewPreview returns a preview writing to w.
func NewPreview(w io.Writer) *Preview {
	p := &Preview{
		w:       w,
		palette: *ansi256.Default,
		lit:     color.NRGBA{R: 0x40, G: 0xc0, B: 0xff, A: 0xff},
		dark:    color.NRGBA{A: 0xff},
	}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		p.w = colorable.NewColorable(f)
		p.ansi = true
	}
	return p
}

// Show draws the visible window of e, as seen on a panel of the given width
// with its first column at RAM column offset.
func (p *Preview) Show(e *Emulator, width, offset int) error {
	var (
		f        = e.Frame(width, offset)
		on       = e.On()
		inverted = e.Inverted()
	)
	p.buf.Reset()
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			lit := on && f.Bit(x, y) != inverted
			switch {
			case !p.ansi && lit:
				_ = p.buf.WriteByte('#')
			case !p.ansi:
				_ = p.buf.WriteByte('.')
			case lit:
				_, _ = io.WriteString(&p.buf, p.palette.Block(p.lit))
			default:
				_, _ = io.WriteString(&p.buf, p.palette.Block(p.dark))
			}
		}
		if p.ansi {
			_, _ = p.buf.WriteString("\033[0m")
		}
		_ = p.buf.WriteByte('\n')
	}
	_ = p.buf.WriteByte('\n')
	_, err := p.buf.WriteTo(p.w)
	return err
}
