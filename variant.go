package oled

import (
	"fmt"
	"strings"
)

// Variant selects the controller family.
type Variant uint8

// Supported controllers.
const (
	SH1106  Variant = iota // Sino Wealth SH1106, 132 column RAM
	SSD1306                // Solomon Systech SSD1306, 128 column RAM
)

func (v Variant) String() string {
	if c, ok := controllers[v]; ok {
		return c.name
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

type controller struct {
	name string

	// columns is the width of the controller RAM.
	columns int

	// columnOffset is the first RAM column visible on common panels.
	columnOffset int

	// setup returns the register initialization sequence.
	setup func(width, height int) []byte
}

var controllers = map[Variant]controller{
	SH1106: {
		name:         "SH1106",
		columns:      132,
		columnOffset: 2,
		setup:        sh1106Setup,
	},
	SSD1306: {
		name:         "SSD1306",
		columns:      128,
		columnOffset: 0,
		setup:        ssd1306Setup,
	},
}

// ParseVariant returns the variant with the given controller name, ignoring
// case.
func ParseVariant(name string) (Variant, error) {
	for v, c := range controllers {
		if strings.EqualFold(c.name, name) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownVariant, name)
}
