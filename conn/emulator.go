package conn

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/oled/pixel"
)

// EmulatorColumns is the width of the emulated display RAM. SH1106 class
// controllers have 132 columns, of which a 128 pixel panel shows a window.
const EmulatorColumns = 132

// Argument count of multi byte commands, keyed by opcode.
var emulatorArgs = map[byte]int{
	0x20: 1, // memory addressing mode
	0x21: 2, // column address
	0x22: 2, // page address
	0x81: 1, // contrast
	0x8d: 1, // charge pump
	0xa8: 1, // multiplex ratio
	0xad: 1, // DC-DC control
	0xd3: 1, // display offset
	0xd5: 1, // clock divide ratio
	0xd9: 1, // precharge period
	0xda: 1, // COM pins
	0xdb: 1, // VCOM deselect level
}

// Emulator is an in-memory page addressed OLED controller on an I²C bus. It
// decodes command and data transfers into its display RAM, so drivers can be
// exercised without hardware.
type Emulator struct {
	mu       sync.Mutex
	addr     uint16
	ram      [][]byte
	page     int
	col      int
	op       byte
	args     []byte
	need     int
	on       bool
	inverted bool
	contrast byte
	speed    physic.Frequency
}

// NewEmulator returns an emulated controller answering at addr with pages
// RAM pages of [EmulatorColumns] bytes.
func NewEmulator(addr uint16, pages int) *Emulator {
	e := &Emulator{
		addr:     addr,
		ram:      make([][]byte, pages),
		contrast: 0x80,
	}
	for i := range e.ram {
		e.ram[i] = make([]byte, EmulatorColumns)
	}
	return e
}

func (e *Emulator) String() string {
	return fmt.Sprintf("emulator@%#02x", e.addr)
}

// SetSpeed implements i2c.Bus.
func (e *Emulator) SetSpeed(f physic.Frequency) error {
	if f <= 0 {
		return fmt.Errorf("conn: invalid bus speed %s", f)
	}
	e.mu.Lock()
	e.speed = f
	e.mu.Unlock()
	return nil
}

// Tx implements i2c.Bus.
func (e *Emulator) Tx(addr uint16, w, r []byte) error {
	if addr != e.addr {
		return fmt.Errorf("%w %#02x", ErrNoDevice, addr)
	}
	if len(r) != 0 {
		return errors.New("conn: emulator does not support reads")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for len(w) > 0 {
		control := w[0]
		w = w[1:]
		if control&0x80 == 0 {
			// Without the continuation bit, the rest of the transfer is a
			// data or command stream.
			if control&0x40 != 0 {
				e.data(w)
			} else {
				for _, b := range w {
					e.command(b)
				}
			}
			return nil
		}
		// A single data or command byte, followed by another control byte.
		if len(w) == 0 {
			return nil
		}
		if control&0x40 != 0 {
			e.data(w[:1])
		} else {
			e.command(w[0])
		}
		w = w[1:]
	}
	return nil
}

func (e *Emulator) command(b byte) {
	if e.need > 0 {
		e.args = append(e.args, b)
		if e.need--; e.need == 0 {
			e.apply(e.op, e.args)
		}
		return
	}
	if n, ok := emulatorArgs[b]; ok {
		e.op, e.args, e.need = b, e.args[:0], n
		return
	}
	switch {
	case b == 0xae || b == 0xaf:
		e.on = b&0x01 != 0
	case b == 0xa6 || b == 0xa7:
		e.inverted = b&0x01 != 0
	case b&0xf0 == 0xb0:
		e.page = int(b & 0x0f)
	case b&0xf0 == 0x00:
		e.col = e.col&0xf0 | int(b&0x0f)
	case b&0xf0 == 0x10:
		e.col = int(b&0x0f)<<4 | e.col&0x0f
	}
}

func (e *Emulator) apply(op byte, args []byte) {
	switch op {
	case 0x81:
		e.contrast = args[0]
	case 0x21:
		e.col = int(args[0])
	case 0x22:
		e.page = int(args[0])
	}
}

func (e *Emulator) data(p []byte) {
	if e.page >= len(e.ram) {
		return
	}
	row := e.ram[e.page]
	for _, b := range p {
		if e.col < len(row) {
			row[e.col] = b
		}
		e.col++
	}
}

// On reports whether the display is switched on.
func (e *Emulator) On() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.on
}

// Inverted reports whether the display shows inverted pixels.
func (e *Emulator) Inverted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inverted
}

// Contrast is the last contrast level set.
func (e *Emulator) Contrast() byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.contrast
}

// Speed is the last bus speed set.
func (e *Emulator) Speed() physic.Frequency {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.speed
}

// Frame returns a copy of the visible window of the display RAM: width
// columns starting at column offset.
func (e *Emulator) Frame(width, offset int) *pixel.Framebuffer {
	e.mu.Lock()
	defer e.mu.Unlock()
	f := pixel.NewFramebuffer(width, len(e.ram)*pixel.PageHeight)
	for i, row := range e.ram {
		if offset < len(row) {
			copy(f.Page(i), row[offset:])
		}
	}
	return f
}

var _ i2c.Bus = (*Emulator)(nil)
