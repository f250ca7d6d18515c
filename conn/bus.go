// Package conn provides the serial buses a display controller is attached to.
//
// A [Bus] is initialized once with its clock rate and pins, after which whole
// transfers are written to a device address. Writes block until the transfer
// is complete.
package conn

import (
	"errors"
	"os"

	"periph.io/x/conn/v3/physic"
)

var debug = os.Getenv("OLED_DEBUG") != ""

// Errors.
var (
	ErrNotInitialized = errors.New("conn: bus is not initialized")
	ErrClosed         = errors.New("conn: bus is closed")
	ErrPin            = errors.New("conn: invalid pin")
	ErrNoDevice       = errors.New("conn: no device at address")
)

// DefaultRate is the I²C fast mode clock rate.
const DefaultRate = 400 * physic.KiloHertz

// Bus is a byte oriented serial bus.
type Bus interface {
	String() string

	// Init configures the bus clock rate and its data and clock pins. Empty
	// pin names select the bus defaults.
	Init(rate physic.Frequency, sda, scl string) error

	// Write sends p to the device at addr, blocking until the transfer is
	// complete. It returns the number of bytes written.
	Write(addr uint16, p []byte) (int, error)

	// Close releases the bus.
	Close() error
}
