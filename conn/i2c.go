package conn

import (
	"fmt"
	"io"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// I2C is a [Bus] backed by a periph.io I²C bus.
type I2C struct {
	name   string
	bus    i2c.Bus
	closer io.Closer
	ready  bool
	closed bool
}

// NewI2C returns a bus that opens the named I²C bus from the periph.io
// registry on Init. Use an empty name for the first available bus.
func NewI2C(name string) *I2C {
	return &I2C{name: name}
}

// WrapI2C returns a bus on top of an already opened I²C bus. Closing the
// returned bus leaves b open.
func WrapI2C(b i2c.Bus) *I2C {
	return &I2C{bus: b}
}

func (c *I2C) String() string {
	if c.bus == nil {
		return fmt.Sprintf("I²C bus %q", c.name)
	}
	return fmt.Sprintf("I²C bus %s", c.bus)
}

func (c *I2C) Init(rate physic.Frequency, sda, scl string) error {
	if c.closed {
		return ErrClosed
	}
	if c.bus == nil {
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("conn: host init failed: %w", err)
		}
		b, err := i2creg.Open(c.name)
		if err != nil {
			return fmt.Errorf("conn: open I²C bus %q: %w", c.name, err)
		}
		c.bus, c.closer = b, b
	}

	var sdaPin, sclPin gpio.PinIO
	if p, ok := c.bus.(i2c.Pins); ok {
		sdaPin, sclPin = p.SDA(), p.SCL()
	}
	if err := checkPin("SDA", sda, sdaPin); err != nil {
		return err
	}
	if err := checkPin("SCL", scl, sclPin); err != nil {
		return err
	}

	if rate > 0 {
		if err := c.bus.SetSpeed(rate); err != nil {
			return fmt.Errorf("conn: set %s speed to %s: %w", c, rate, err)
		}
	}
	if debug {
		log.Printf("conn: %s ready at %s", c, rate)
	}
	c.ready = true
	return nil
}

// checkPin verifies the named pin exists and matches the pin the bus reports
// for the given role, if any.
func checkPin(role, name string, have gpio.PinIO) error {
	if name == "" {
		return nil
	}
	want := gpioreg.ByName(name)
	if want == nil {
		return fmt.Errorf("%w: %s pin %q not found", ErrPin, role, name)
	}
	if have == nil || have == gpio.INVALID {
		return nil
	}
	if have.Name() != want.Name() && have.Name() != name {
		return fmt.Errorf("%w: bus %s pin is %s, not %s", ErrPin, role, have.Name(), name)
	}
	return nil
}

func (c *I2C) Write(addr uint16, p []byte) (int, error) {
	switch {
	case c.closed:
		return 0, ErrClosed
	case !c.ready:
		return 0, ErrNotInitialized
	}
	if debug {
		log.Printf("conn: write %d bytes to %#02x: % x", len(p), addr, p)
	}
	if err := c.bus.Tx(addr, p, nil); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *I2C) Close() error {
	if c.closed {
		return nil
	}
	c.closed, c.ready = true, false
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}
