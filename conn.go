package oled

import (
	"errors"
	"fmt"
	"log"

	"github.com/BeatGlow/oled/conn"
)

// ErrShortWrite is returned if the bus accepted fewer bytes than sent.
var ErrShortWrite = errors.New("oled: short write")

// i2cConn frames commands and data for a controller on an I²C bus.
type i2cConn struct {
	bus  conn.Bus
	addr uint16
	buf  []byte
}

func (c *i2cConn) String() string {
	return fmt.Sprintf("%s@%#02x", c.bus, c.addr)
}

// command sends every byte as its own [0x80, cmd] transfer.
func (c *i2cConn) command(commands ...byte) error {
	for _, cmd := range commands {
		if err := c.write([]byte{controlCommand, cmd}); err != nil {
			return err
		}
	}
	return nil
}

// data sends a single [0x40, data...] transfer.
func (c *i2cConn) data(data []byte) error {
	if cap(c.buf) < len(data)+1 {
		c.buf = make([]byte, len(data)+1)
	}
	buf := c.buf[:len(data)+1]
	buf[0] = controlData
	copy(buf[1:], data)
	return c.write(buf)
}

func (c *i2cConn) write(p []byte) error {
	n, err := c.bus.Write(c.addr, p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return fmt.Errorf("%w: %d of %d bytes", ErrShortWrite, n, len(p))
	}
	if debug {
		log.Printf("oled: %s: % x", c, p)
	}
	return nil
}
