// Package oled drives monochrome page addressed OLED displays, such as the
// SH1106 and SSD1306, over I²C.
//
// A [Display] owns a [pixel.Framebuffer]. Drawing only changes the
// framebuffer; call [Display.Render] to push the complete framebuffer to the
// panel.
//
// A Display is not safe for concurrent use. Callers sharing one between
// goroutines must serialize access themselves.
package oled

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"

	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/oled/conn"
	"github.com/BeatGlow/oled/draw"
	"github.com/BeatGlow/oled/pixel"
	"github.com/BeatGlow/oled/text"
)

var debug bool

func init() {
	debug = os.Getenv("OLED_DEBUG") != ""
}

// Errors.
var (
	ErrNoConfig       = errors.New("oled: no configuration")
	ErrGeometry       = errors.New("oled: invalid geometry")
	ErrBufferSize     = errors.New("oled: framebuffer size does not match geometry")
	ErrUnknownVariant = errors.New("oled: unknown controller variant")
	ErrNotInitialized = errors.New("oled: display is not initialized")
	ErrInitialized    = errors.New("oled: display is already initialized")
	ErrDestroyed      = errors.New("oled: display is destroyed")
)

// State is the power state of a display.
type State uint8

// Display states.
const (
	Uninitialized State = iota
	Enabled
	Disabled
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Enabled:
		return "enabled"
	case Disabled:
		return "disabled"
	case Destroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Config is the display configuration.
type Config struct {
	// Variant of the display controller.
	Variant Variant

	// SDA and SCL are the periph.io names of the bus pins. Leave empty to
	// use the bus defaults.
	SDA, SCL string

	// Addr is the I²C device address, many displays use 0x3c.
	Addr uint16

	// Rate is the bus clock rate.
	Rate physic.Frequency

	// Width of the display in pixels.
	Width int

	// Height of the display in pixels, must be a multiple of 8.
	Height int

	// ColumnOffset is the first controller RAM column visible on the panel.
	// It varies between panel batches. Negative values select the default of
	// the controller variant.
	ColumnOffset int

	// Framebuffer optionally provides the pixel buffer, Width*Height/8 bytes
	// in page layout. Its contents are shown as they are. Init takes
	// ownership of the buffer and clears this field, also when it fails; the
	// caller must not use the buffer afterwards.
	Framebuffer []byte

	// Setup sends the controller register initialization sequence before
	// switching the panel on.
	Setup bool
}

// DefaultConfig is a 128x64 SH1106 panel at address 0x3c.
var DefaultConfig = Config{
	Variant:      SH1106,
	Addr:         0x3c,
	Rate:         conn.DefaultRate,
	Width:        128,
	Height:       64,
	ColumnOffset: -1,
}

// Display is a monochrome OLED display session.
type Display struct {
	bus          conn.Bus
	c            *i2cConn
	variant      Variant
	fb           *pixel.Framebuffer
	state        State
	columnOffset int
}

// New returns an uninitialized display on bus.
func New(bus conn.Bus) *Display {
	return &Display{bus: bus}
}

// Open returns an initialized display on bus, see [Display.Init].
func Open(bus conn.Bus, config *Config) (*Display, error) {
	d := New(bus)
	if err := d.Init(config); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Display) String() string {
	if d.state == Uninitialized {
		return "OLED (uninitialized)"
	}
	if d.fb == nil {
		return fmt.Sprintf("%s OLED (%s)", d.variant, d.state)
	}
	return fmt.Sprintf("%s OLED %dx%d", d.variant, d.fb.Width(), d.fb.Height())
}

// controller returns the protocol for the configured variant. Unknown
// variants are logged and reported as [ErrUnknownVariant].
func (d *Display) controller(op string) (controller, error) {
	c, ok := controllers[d.variant]
	if !ok {
		log.Printf("oled: %s: unknown controller variant %d", op, uint8(d.variant))
		return c, fmt.Errorf("%w %d", ErrUnknownVariant, uint8(d.variant))
	}
	return c, nil
}

func (d *Display) ready() error {
	switch d.state {
	case Uninitialized:
		return ErrNotInitialized
	case Destroyed:
		return ErrDestroyed
	}
	return nil
}

// Init configures the bus, attaches or allocates the framebuffer, switches
// the panel on and pushes the (initial) framebuffer.
//
// If Init fails the display stays uninitialized and must not be used.
func (d *Display) Init(config *Config) (err error) {
	switch {
	case config == nil:
		return ErrNoConfig
	case d.state == Destroyed:
		return ErrDestroyed
	case d.state != Uninitialized:
		return ErrInitialized
	}

	pix := config.Framebuffer
	config.Framebuffer = nil

	defer func() {
		if err != nil {
			d.variant, d.columnOffset = 0, 0
			d.fb, d.c, d.state = nil, nil, Uninitialized
		}
	}()

	d.variant = config.Variant
	c, err := d.controller("init")
	if err != nil {
		return err
	}
	if err = checkGeometry(c, config); err != nil {
		return err
	}

	d.columnOffset = config.ColumnOffset
	if d.columnOffset < 0 {
		d.columnOffset = c.columnOffset
	}
	if d.columnOffset+config.Width > c.columns {
		return fmt.Errorf("%w: %d columns at offset %d exceed %s RAM", ErrGeometry, config.Width, d.columnOffset, c.name)
	}

	if err = d.bus.Init(config.Rate, config.SDA, config.SCL); err != nil {
		return fmt.Errorf("oled: bus init failed: %w", err)
	}

	if pix != nil {
		if d.fb, err = pixel.Attach(config.Width, config.Height, pix); err != nil {
			log.Printf("oled: init: %v", err)
			return fmt.Errorf("%w: %v", ErrBufferSize, err)
		}
	} else {
		d.fb = pixel.NewFramebuffer(config.Width, config.Height)
	}
	d.c = &i2cConn{bus: d.bus, addr: config.Addr}

	if config.Setup {
		if err = d.c.command(c.setup(config.Width, config.Height)...); err != nil {
			return err
		}
	}
	d.state = Disabled
	if err = d.SetState(true); err != nil {
		return err
	}
	return d.Render()
}

func checkGeometry(c controller, config *Config) error {
	switch {
	case config.Width <= 0 || config.Height <= 0:
		return fmt.Errorf("%w: %dx%d", ErrGeometry, config.Width, config.Height)
	case config.Height%pixel.PageHeight != 0:
		return fmt.Errorf("%w: height %d is not a multiple of %d", ErrGeometry, config.Height, pixel.PageHeight)
	case config.Height > 8*pixel.PageHeight:
		return fmt.Errorf("%w: %s supports up to 64 rows, got %d", ErrGeometry, c.name, config.Height)
	}
	return nil
}

// Close switches the panel off and releases the framebuffer. Closing a
// display that was never initialized or is already closed does nothing.
func (d *Display) Close() error {
	if d.state == Uninitialized || d.state == Destroyed {
		return nil
	}
	err := d.SetState(false)
	d.fb, d.state = nil, Destroyed
	return err
}

// State returns the power state.
func (d *Display) State() State {
	return d.state
}

// SetState switches the panel on or off.
func (d *Display) SetState(enabled bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	if _, err := d.controller("set state"); err != nil {
		return err
	}
	var on byte
	if enabled {
		on = 0x01
	}
	if err := d.c.command(setDisplay | on); err != nil {
		return err
	}
	if enabled {
		d.state = Enabled
	} else {
		d.state = Disabled
	}
	return nil
}

// Render pushes the framebuffer to the panel, page by page from the top.
func (d *Display) Render() error {
	if err := d.ready(); err != nil {
		return err
	}
	if _, err := d.controller("render"); err != nil {
		return err
	}
	var (
		low  = byte(d.columnOffset & 0x0f)
		high = byte(d.columnOffset>>4) & 0x0f
	)
	for page := 0; page < d.fb.Pages(); page++ {
		if err := d.c.command(
			setPageAddr|byte(page),
			setLowColumn|low,
			setHighColumn|high,
		); err != nil {
			return err
		}
		if err := d.c.data(d.fb.Page(page)); err != nil {
			return err
		}
	}
	return nil
}

// SetContrast adjusts the contrast level.
func (d *Display) SetContrast(level uint8) error {
	if err := d.ready(); err != nil {
		return err
	}
	if _, err := d.controller("set contrast"); err != nil {
		return err
	}
	return d.c.command(setContrast, level)
}

// Invert shows lit pixels dark and dark pixels lit.
func (d *Display) Invert(inverted bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	if _, err := d.controller("invert"); err != nil {
		return err
	}
	if inverted {
		return d.c.command(setNormalDisplay | 0x01)
	}
	return d.c.command(setNormalDisplay)
}

// Flip rotates the panel by 180°.
func (d *Display) Flip(flipped bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	if _, err := d.controller("flip"); err != nil {
		return err
	}
	if flipped {
		return d.c.command(setSegmentRemap|0x01, setComScan|comScanReversed)
	}
	return d.c.command(setSegmentRemap, setComScan)
}

// ColumnOffset is the controller RAM column shown as the leftmost column of
// the panel.
func (d *Display) ColumnOffset() int {
	return d.columnOffset
}

// Framebuffer returns the framebuffer, or nil if the display has none.
func (d *Display) Framebuffer() *pixel.Framebuffer {
	return d.fb
}

// Bounds is the display bounding box.
func (d *Display) Bounds() image.Rectangle {
	if d.fb == nil {
		return image.Rectangle{}
	}
	return d.fb.Bounds()
}

// Pixel switches on the pixel at (x, y).
func (d *Display) Pixel(x, y int) {
	if d.fb != nil {
		draw.Pixel(d.fb, x, y)
	}
}

// Line draws a line between (x0,y0) and (x1,y1), see [draw.Line].
func (d *Display) Line(x0, y0, x1, y1 int) {
	if d.fb != nil {
		draw.Line(d.fb, x0, y0, x1, y1)
	}
}

// Rect draws the rectangle with corners (x,y) and (x+w,y+h), see [draw.Rect].
func (d *Display) Rect(x, y, w, h int, filled bool) {
	if d.fb != nil {
		draw.Rect(d.fb, x, y, w, h, filled)
	}
}

// Fill overwrites every framebuffer byte with value, see
// [pixel.Framebuffer.Fill].
func (d *Display) Fill(value byte) {
	if d.fb != nil {
		d.fb.Fill(value)
	}
}

// Char draws character c with its top left corner at (x, y).
func (d *Display) Char(x, y int, c byte) {
	if d.fb != nil {
		text.DrawChar(d.fb, x, y, c)
	}
}

// DrawString draws s starting at (x, y), see [text.DrawString].
func (d *Display) DrawString(x, y int, s string) {
	if d.fb != nil {
		text.DrawString(d.fb, x, y, s)
	}
}
