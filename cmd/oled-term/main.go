package main

import (
	"bufio"
	"flag"
	"os"

	"github.com/BeatGlow/oled/internal/cli"
	"github.com/BeatGlow/oled/term"
)

func main() {
	displayFlags := cli.RegisterFlags()
	promptFlag := flag.String("prompt", ">", "Line prefix")
	flag.Parse()

	d, err := displayFlags.Open()
	if err != nil {
		cli.Fatal(err)
	}
	defer d.Close()

	var (
		t = term.New(d)
		s = bufio.NewScanner(os.Stdin)
	)
	for s.Scan() {
		if err = t.Println(*promptFlag + s.Text()); err != nil {
			d.Close()
			cli.Fatal(err)
		}
	}
	if err = s.Err(); err != nil {
		d.Close()
		cli.Fatal(err)
	}
}
