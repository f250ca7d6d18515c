package oled

import (
	"bytes"
	"errors"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/BeatGlow/oled/conn"
)

func testDisplay(t *testing.T, config Config) (*Display, *i2ctest.Record) {
	t.Helper()
	r := &i2ctest.Record{}
	d, err := Open(conn.WrapI2C(r), &config)
	if err != nil {
		t.Fatal(err)
	}
	return d, r
}

func testEmulated(t *testing.T, config Config) (*Display, *conn.Emulator) {
	t.Helper()
	e := conn.NewEmulator(config.Addr, config.Height/8)
	d, err := Open(conn.WrapI2C(e), &config)
	if err != nil {
		t.Fatal(err)
	}
	return d, e
}

func checkOp(t *testing.T, ops []i2ctest.IO, i int, want ...byte) {
	t.Helper()
	if i >= len(ops) {
		t.Fatalf("expected transfer %d, got only %d", i, len(ops))
	}
	if ops[i].Addr != 0x3c {
		t.Errorf("transfer %d: expected address 0x3c, got %#02x", i, ops[i].Addr)
	}
	if !bytes.Equal(ops[i].W, want) {
		t.Errorf("transfer %d: expected % x, got % x", i, want, ops[i].W)
	}
}

func TestInit(t *testing.T) {
	d, r := testDisplay(t, DefaultConfig)
	if s := d.State(); s != Enabled {
		t.Errorf("expected state %s, got %s", Enabled, s)
	}
	if b := d.Bounds(); b.Dx() != 128 || b.Dy() != 64 {
		t.Errorf("expected 128x64 bounds, got %s", b)
	}

	// Power on, followed by a full render of 8 pages.
	if len(r.Ops) != 1+8*4 {
		t.Fatalf("expected %d transfers, got %d", 1+8*4, len(r.Ops))
	}
	checkOp(t, r.Ops, 0, 0x80, 0xaf)
	for page := 0; page < 8; page++ {
		i := 1 + page*4
		checkOp(t, r.Ops, i+0, 0x80, 0xb0|byte(page))
		checkOp(t, r.Ops, i+1, 0x80, 0x02)
		checkOp(t, r.Ops, i+2, 0x80, 0x10)
		checkOp(t, r.Ops, i+3, append([]byte{0x40}, make([]byte, 128)...)...)
	}
}

func TestInitSetup(t *testing.T) {
	config := DefaultConfig
	config.Setup = true
	_, r := testDisplay(t, config)

	setup := sh1106Setup(128, 64)
	if len(r.Ops) != len(setup)+1+8*4 {
		t.Fatalf("expected %d transfers, got %d", len(setup)+1+8*4, len(r.Ops))
	}
	for i, cmd := range setup {
		checkOp(t, r.Ops, i, controlCommand, cmd)
	}
	checkOp(t, r.Ops, 0, 0x80, 0xae)
	checkOp(t, r.Ops, len(setup), 0x80, 0xaf)
}

func TestInitErrors(t *testing.T) {
	d := New(conn.WrapI2C(&i2ctest.Record{}))
	if err := d.Init(nil); !errors.Is(err, ErrNoConfig) {
		t.Errorf("expected %v, got %v", ErrNoConfig, err)
	}

	tests := []struct {
		Name   string
		Config func(*Config)
		Err    error
	}{
		{"unknown variant", func(c *Config) { c.Variant = Variant(42) }, ErrUnknownVariant},
		{"zero width", func(c *Config) { c.Width = 0 }, ErrGeometry},
		{"negative height", func(c *Config) { c.Height = -8 }, ErrGeometry},
		{"partial page", func(c *Config) { c.Height = 60 }, ErrGeometry},
		{"too many pages", func(c *Config) { c.Height = 72 }, ErrGeometry},
		{"too wide", func(c *Config) { c.Width = 131 }, ErrGeometry},
		{"too wide for SSD1306", func(c *Config) { c.Variant, c.Width = SSD1306, 129 }, ErrGeometry},
		{"offset too large", func(c *Config) { c.ColumnOffset = 8 }, ErrGeometry},
		{"buffer size", func(c *Config) { c.Framebuffer = make([]byte, 1000) }, ErrBufferSize},
	}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			r := &i2ctest.Record{}
			d := New(conn.WrapI2C(r))
			config := DefaultConfig
			test.Config(&config)
			if err := d.Init(&config); !errors.Is(err, test.Err) {
				t.Fatalf("expected %v, got %v", test.Err, err)
			}
			if s := d.State(); s != Uninitialized {
				t.Errorf("expected state %s, got %s", Uninitialized, s)
			}
			if d.Framebuffer() != nil {
				t.Error("expected no framebuffer")
			}
			if config.Framebuffer != nil {
				t.Error("expected config framebuffer to be released")
			}
			if len(r.Ops) != 0 {
				t.Errorf("expected no transfers, got %d", len(r.Ops))
			}
		})
	}
}

func TestInitBusError(t *testing.T) {
	bus := conn.WrapI2C(&i2ctest.Record{})
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
	config := DefaultConfig
	d := New(bus)
	if err := d.Init(&config); !errors.Is(err, conn.ErrClosed) {
		t.Fatalf("expected %v, got %v", conn.ErrClosed, err)
	}
	if d.State() != Uninitialized || d.Framebuffer() != nil {
		t.Errorf("expected uninitialized display without framebuffer, got %s", d.State())
	}
}

func TestInitTwice(t *testing.T) {
	d, _ := testDisplay(t, DefaultConfig)
	config := DefaultConfig
	if err := d.Init(&config); !errors.Is(err, ErrInitialized) {
		t.Errorf("expected %v, got %v", ErrInitialized, err)
	}
}

func TestInitBufferSizeReset(t *testing.T) {
	r := &i2ctest.Record{}
	d := New(conn.WrapI2C(r))
	config := DefaultConfig
	config.Variant, config.ColumnOffset = SSD1306, 4
	config.Width = 96
	config.Framebuffer = make([]byte, 16)
	if err := d.Init(&config); !errors.Is(err, ErrBufferSize) {
		t.Fatalf("expected %v, got %v", ErrBufferSize, err)
	}
	if s := d.String(); s != "OLED (uninitialized)" {
		t.Errorf("expected uninitialized display, got %q", s)
	}
	if v := d.ColumnOffset(); v != 0 {
		t.Errorf("expected column offset to be reset, got %d", v)
	}

	// A failed Init leaves the display ready for another attempt.
	config = DefaultConfig
	if err := d.Init(&config); err != nil {
		t.Fatal(err)
	}
	if s := d.String(); s != "SH1106 OLED 128x64" {
		t.Errorf("unexpected %q", s)
	}
	if v := d.ColumnOffset(); v != 2 {
		t.Errorf("expected column offset 2, got %d", v)
	}
}

func TestInitFramebuffer(t *testing.T) {
	buf := bytes.Repeat([]byte{0xff}, 128*64/8)
	config := DefaultConfig
	config.Framebuffer = buf
	r := &i2ctest.Record{}
	d, err := Open(conn.WrapI2C(r), &config)
	if err != nil {
		t.Fatal(err)
	}
	if config.Framebuffer != nil {
		t.Error("expected Init to take the framebuffer")
	}
	if fb := d.Framebuffer(); &fb.Pix[0] != &buf[0] {
		t.Error("expected display to use the provided buffer")
	}
	data := append([]byte{0x40}, bytes.Repeat([]byte{0xff}, 128)...)
	for page := 0; page < 8; page++ {
		checkOp(t, r.Ops, 1+page*4+3, data...)
	}
}

func TestColumnOffset(t *testing.T) {
	config := DefaultConfig
	config.Width, config.Height = 96, 16
	config.ColumnOffset = 0x12
	_, r := testDisplay(t, config)
	if len(r.Ops) != 1+2*4 {
		t.Fatalf("expected %d transfers, got %d", 1+2*4, len(r.Ops))
	}
	checkOp(t, r.Ops, 1, 0x80, 0xb0)
	checkOp(t, r.Ops, 2, 0x80, 0x02)
	checkOp(t, r.Ops, 3, 0x80, 0x11)
	checkOp(t, r.Ops, 4, append([]byte{0x40}, make([]byte, 96)...)...)
	checkOp(t, r.Ops, 5, 0x80, 0xb1)

	config = DefaultConfig
	config.Variant = SSD1306
	_, r = testDisplay(t, config)
	checkOp(t, r.Ops, 2, 0x80, 0x00)
	checkOp(t, r.Ops, 3, 0x80, 0x10)
}

func TestSetState(t *testing.T) {
	d, r := testDisplay(t, DefaultConfig)
	r.Ops = r.Ops[:0]

	if err := d.SetState(false); err != nil {
		t.Fatal(err)
	}
	if s := d.State(); s != Disabled {
		t.Errorf("expected state %s, got %s", Disabled, s)
	}
	if err := d.SetState(true); err != nil {
		t.Fatal(err)
	}
	if s := d.State(); s != Enabled {
		t.Errorf("expected state %s, got %s", Enabled, s)
	}
	checkOp(t, r.Ops, 0, 0x80, 0xae)
	checkOp(t, r.Ops, 1, 0x80, 0xaf)
}

func TestRender(t *testing.T) {
	d, e := testEmulated(t, DefaultConfig)

	d.Pixel(100, 10)
	if f := e.Frame(128, 2); f.Bit(100, 10) {
		t.Fatal("expected pixel to be invisible before Render")
	}
	if err := d.Render(); err != nil {
		t.Fatal(err)
	}
	f := e.Frame(128, 2)
	if v := f.Page(1)[100]; v != 0x04 {
		t.Errorf("expected page 1 column 100 to be 0x04, got %#02x", v)
	}
	if !bytes.Equal(f.Pix, d.Framebuffer().Pix) {
		t.Error("expected panel to match framebuffer")
	}

	d.Fill(0x00)
	if err := d.Render(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(e.Frame(128, 2).Pix, make([]byte, 128*8)) {
		t.Error("expected blank panel")
	}
}

func TestDrawing(t *testing.T) {
	d, e := testEmulated(t, DefaultConfig)

	d.Line(0, 0, 127, 63)
	d.Rect(10, 10, 20, 10, true)
	d.Char(64, 0, 'A')
	d.DrawString(0, 56, "hello")
	if err := d.Render(); err != nil {
		t.Fatal(err)
	}

	f := e.Frame(128, 2)
	for _, p := range [][2]int{{0, 0}, {127, 63}, {10, 10}, {30, 20}, {20, 15}} {
		if !f.Bit(p[0], p[1]) {
			t.Errorf("expected pixel %v to be lit", p)
		}
	}
	if bytes.Equal(f.Page(0)[64:69], make([]byte, 5)) {
		t.Error("expected glyph at (64,0)")
	}

	// Rejected shapes leave the framebuffer alone.
	before := append([]byte(nil), d.Framebuffer().Pix...)
	d.Rect(120, 0, 10, 10, false)
	d.Line(0, 0, 200, 0)
	d.Pixel(-1, 0)
	if !bytes.Equal(before, d.Framebuffer().Pix) {
		t.Error("expected out of bounds drawing to be ignored")
	}
}

func TestControl(t *testing.T) {
	d, e := testEmulated(t, DefaultConfig)

	if err := d.SetContrast(0x3f); err != nil {
		t.Fatal(err)
	}
	if v := e.Contrast(); v != 0x3f {
		t.Errorf("expected contrast 0x3f, got %#02x", v)
	}
	if err := d.Invert(true); err != nil {
		t.Fatal(err)
	}
	if !e.Inverted() {
		t.Error("expected inverted display")
	}
	if err := d.Invert(false); err != nil {
		t.Fatal(err)
	}
	if e.Inverted() {
		t.Error("expected normal display")
	}

	r := &i2ctest.Record{}
	d, err := Open(conn.WrapI2C(r), &Config{Variant: SSD1306, Addr: 0x3c, Width: 128, Height: 32, ColumnOffset: -1})
	if err != nil {
		t.Fatal(err)
	}
	r.Ops = r.Ops[:0]
	if err = d.Flip(true); err != nil {
		t.Fatal(err)
	}
	if err = d.Flip(false); err != nil {
		t.Fatal(err)
	}
	checkOp(t, r.Ops, 0, 0x80, 0xa1)
	checkOp(t, r.Ops, 1, 0x80, 0xc8)
	checkOp(t, r.Ops, 2, 0x80, 0xa0)
	checkOp(t, r.Ops, 3, 0x80, 0xc0)
}

func TestUnknownVariant(t *testing.T) {
	d, r := testDisplay(t, DefaultConfig)
	r.Ops = r.Ops[:0]
	d.variant = Variant(9)

	for name, fn := range map[string]func() error{
		"Render":      d.Render,
		"SetState":    func() error { return d.SetState(false) },
		"SetContrast": func() error { return d.SetContrast(0) },
		"Invert":      func() error { return d.Invert(true) },
		"Flip":        func() error { return d.Flip(true) },
	} {
		if err := fn(); !errors.Is(err, ErrUnknownVariant) {
			t.Errorf("%s: expected %v, got %v", name, ErrUnknownVariant, err)
		}
	}
	if len(r.Ops) != 0 {
		t.Errorf("expected no transfers, got %d", len(r.Ops))
	}
	if s := d.State(); s != Enabled {
		t.Errorf("expected state to remain %s, got %s", Enabled, s)
	}
}

func TestClose(t *testing.T) {
	r := &i2ctest.Record{}
	d := New(conn.WrapI2C(r))
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if err := d.Render(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected %v, got %v", ErrNotInitialized, err)
	}

	config := DefaultConfig
	if err := d.Init(&config); err != nil {
		t.Fatal(err)
	}
	r.Ops = r.Ops[:0]
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if s := d.State(); s != Destroyed {
		t.Errorf("expected state %s, got %s", Destroyed, s)
	}
	if d.Framebuffer() != nil {
		t.Error("expected framebuffer to be released")
	}
	if len(r.Ops) != 1 {
		t.Fatalf("expected 1 transfer, got %d", len(r.Ops))
	}
	checkOp(t, r.Ops, 0, 0x80, 0xae)

	// Closing again, drawing and rendering do nothing.
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	d.Pixel(0, 0)
	d.Fill(0xff)
	d.DrawString(0, 0, "gone")
	if err := d.Render(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("expected %v, got %v", ErrDestroyed, err)
	}
	if err := d.Init(&config); !errors.Is(err, ErrDestroyed) {
		t.Errorf("expected %v, got %v", ErrDestroyed, err)
	}
	if len(r.Ops) != 1 {
		t.Errorf("expected no further transfers, got %d", len(r.Ops)-1)
	}
}

func TestString(t *testing.T) {
	if s := SSD1306.String(); s != "SSD1306" {
		t.Errorf("expected SSD1306, got %q", s)
	}
	if s := Variant(9).String(); s != "Variant(9)" {
		t.Errorf("expected Variant(9), got %q", s)
	}
	if s := Destroyed.String(); s != "destroyed" {
		t.Errorf("expected destroyed, got %q", s)
	}
	d, _ := testDisplay(t, DefaultConfig)
	if s := d.String(); s != "SH1106 OLED 128x64" {
		t.Errorf("unexpected %q", s)
	}
}

func TestParseVariant(t *testing.T) {
	for name, want := range map[string]Variant{"sh1106": SH1106, "SSD1306": SSD1306} {
		if v, err := ParseVariant(name); err != nil || v != want {
			t.Errorf("%s: expected %s, got %s (%v)", name, want, v, err)
		}
	}
	if _, err := ParseVariant("st7789"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("expected %v, got %v", ErrUnknownVariant, err)
	}
}
