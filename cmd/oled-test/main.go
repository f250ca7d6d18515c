package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/image/font"

	"github.com/BeatGlow/oled/internal/cli"
	"github.com/BeatGlow/oled/text"
)

func main() {
	displayFlags := cli.RegisterFlags()
	modeFlag := flag.String("mode", "draw", "Test mode (draw, hello or face)")
	fontFlag := flag.String("font", "", "TrueType font for face mode (default: Go Regular)")
	sizeFlag := flag.Float64("size", 16, "Font size for face mode")
	framesFlag := flag.Int("frames", 0, "Number of frames to draw in draw mode (default: until interrupted)")
	flag.Parse()

	d, err := displayFlags.Open()
	if err != nil {
		cli.Fatal(err)
	}
	defer d.Close()

	switch *modeFlag {
	case "draw":
		err = drawTest(d, *framesFlag)
	case "hello":
		err = hello(d)
	case "face":
		err = faceTest(d, *fontFlag, *sizeFlag)
	default:
		err = fmt.Errorf("unsupported mode %q", *modeFlag)
	}
	if err != nil {
		d.Close()
		cli.Fatal(err)
	}
}

// drawTest draws a box around the edge with moving diagonal stripes inside.
func drawTest(d *cli.Session, frames int) error {
	var (
		offset int
		ticker = time.NewTicker(50 * time.Millisecond)
		r      = d.Bounds()
	)
	defer ticker.Stop()

	fmt.Println("hit control-c to stop...")
	for frames <= 0 || offset < frames {
		d.Fill(0x00)
		d.Rect(0, 0, r.Dx()-1, r.Dy()-1, false)
		for y := 1; y < r.Dy()-1; y++ {
			for x := 1; x < r.Dx()-1; x++ {
				if (x+y+offset)%4 == 0 {
					d.Pixel(x, y)
				}
			}
		}
		d.Line(0, 0, r.Dx()-1, r.Dy()-1)
		d.Line(0, r.Dy()-1, r.Dx()-1, 0)

		if err := d.Render(); err != nil {
			return err
		}
		offset++
		<-ticker.C
	}
	return nil
}

// hello draws a framed greeting with the built-in font.
func hello(d *cli.Session) error {
	const greeting = "Hello, world!"
	r := d.Bounds()
	x := (r.Dx() - text.Measure(greeting)) / 2
	y := (r.Dy() - text.GlyphHeight) / 2
	d.Rect(x-3, y-3, text.Measure(greeting)+4, text.GlyphHeight+5, false)
	d.DrawString(x, y, greeting)
	return d.Render()
}

// faceTest draws the alphabet with a TrueType face.
func faceTest(d *cli.Session, name string, size float64) error {
	var (
		face font.Face
		err  error
	)
	if name == "" {
		face, err = text.GoRegular(size)
	} else {
		var ttf []byte
		if ttf, err = os.ReadFile(name); err != nil {
			return err
		}
		face, err = text.LoadTrueType(ttf, size)
	}
	if err != nil {
		return err
	}
	defer face.Close()

	var (
		fb     = d.Framebuffer()
		height = face.Metrics().Height.Ceil()
		y      int
	)
	for _, line := range []string{"ABCDEFGHIJKLM", "NOPQRSTUVWXYZ", "abcdefghijklm", "nopqrstuvwxyz", "0123456789"} {
		if y+height > fb.Height() {
			break
		}
		text.DrawFace(fb, face, 0, y, line)
		y += height
	}
	text.DrawFace(fb, text.Face7x13, 0, fb.Height()-13, "7x13")
	return d.Render()
}
