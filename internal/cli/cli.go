// Package cli contains the command line plumbing shared by the oled tools.
package cli

import (
	"flag"
	"fmt"
	"os"

	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/oled"
	"github.com/BeatGlow/oled/conn"
)

// Flags are the display options common to all tools.
type Flags struct {
	Bus     *string
	Addr    *uint
	SDA     *string
	SCL     *string
	Rate    *int64
	Variant *string
	Width   *int
	Height  *int
	Offset  *int
	Setup   *bool
	Emulate *bool
}

// RegisterFlags registers the display options on the default flag set.
func RegisterFlags() *Flags {
	return &Flags{
		Bus:     flag.String("bus", "", "I²C bus name (default: use first available)"),
		Addr:    flag.Uint("addr", uint(oled.DefaultConfig.Addr), "I²C device address"),
		SDA:     flag.String("sda", "", "SDA pin name (default: bus default)"),
		SCL:     flag.String("scl", "", "SCL pin name (default: bus default)"),
		Rate:    flag.Int64("rate", int64(oled.DefaultConfig.Rate/physic.KiloHertz), "I²C clock rate in kHz"),
		Variant: flag.String("variant", oled.DefaultConfig.Variant.String(), "Display controller (SH1106 or SSD1306)"),
		Width:   flag.Int("width", oled.DefaultConfig.Width, "Display width"),
		Height:  flag.Int("height", oled.DefaultConfig.Height, "Display height"),
		Offset:  flag.Int("offset", oled.DefaultConfig.ColumnOffset, "First visible RAM column (default: controller default)"),
		Setup:   flag.Bool("setup", true, "Send the controller initialization sequence"),
		Emulate: flag.Bool("emulate", false, "Emulate the display and preview it in the terminal"),
	}
}

// Session is an open display, optionally emulated.
type Session struct {
	*oled.Display
	bus      conn.Bus
	emulator *conn.Emulator
	preview  *conn.Preview
}

// Open opens the display described by the flags.
func (f *Flags) Open() (*Session, error) {
	variant, err := oled.ParseVariant(*f.Variant)
	if err != nil {
		return nil, err
	}
	config := &oled.Config{
		Variant:      variant,
		SDA:          *f.SDA,
		SCL:          *f.SCL,
		Addr:         uint16(*f.Addr),
		Rate:         physic.Frequency(*f.Rate) * physic.KiloHertz,
		Width:        *f.Width,
		Height:       *f.Height,
		ColumnOffset: *f.Offset,
		Setup:        *f.Setup,
	}

	s := new(Session)
	if *f.Emulate {
		s.emulator = conn.NewEmulator(config.Addr, (config.Height+7)/8)
		s.preview = conn.NewPreview(os.Stdout)
		s.bus = conn.WrapI2C(s.emulator)
	} else {
		s.bus = conn.NewI2C(*f.Bus)
	}

	if s.Display, err = oled.Open(s.bus, config); err != nil {
		_ = s.bus.Close()
		return nil, err
	}
	fmt.Printf("using %s on %s\n", s.Display, s.bus)
	return s, nil
}

// Render pushes the framebuffer to the display, and shows the emulated panel
// if emulating.
func (s *Session) Render() error {
	if err := s.Display.Render(); err != nil {
		return err
	}
	if s.preview == nil {
		return nil
	}
	return s.preview.Show(s.emulator, s.Bounds().Dx(), s.ColumnOffset())
}

// Close switches the display off and releases the bus.
func (s *Session) Close() error {
	err := s.Display.Close()
	if cerr := s.bus.Close(); err == nil {
		err = cerr
	}
	return err
}

// Fatal prints err and exits.
func Fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
