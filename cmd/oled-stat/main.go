package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/BeatGlow/oled/draw"
	"github.com/BeatGlow/oled/internal/cli"
	"github.com/BeatGlow/oled/text"
)

type stats struct {
	hostname string
	cpu      float64
	mem      float64
	disk     float64
	uptime   time.Duration
	rx, tx   uint64
}

func main() {
	displayFlags := cli.RegisterFlags()
	intervalFlag := flag.Duration("interval", 2*time.Second, "Refresh interval")
	pathFlag := flag.String("path", "/", "File system to report")
	countFlag := flag.Int("count", 0, "Number of refreshes (default: until interrupted)")
	flag.Parse()

	d, err := displayFlags.Open()
	if err != nil {
		cli.Fatal(err)
	}
	defer d.Close()

	ticker := time.NewTicker(*intervalFlag)
	defer ticker.Stop()

	var prev stats
	for i := 0; *countFlag <= 0 || i < *countFlag; i++ {
		s, err := collect(*pathFlag)
		if err != nil {
			log.Printf("oled-stat: %v", err)
		}
		show(d, s, prev, *intervalFlag)
		if err = d.Render(); err != nil {
			d.Close()
			cli.Fatal(err)
		}
		prev = s
		<-ticker.C
	}
}

func collect(path string) (s stats, err error) {
	if info, err := host.Info(); err == nil {
		s.hostname = info.Hostname
		s.uptime = time.Duration(info.Uptime) * time.Second
	}
	if p, err := cpu.Percent(0, false); err == nil && len(p) > 0 {
		s.cpu = p[0]
	}
	if v, err := mem.VirtualMemory(); err == nil {
		s.mem = v.UsedPercent
	}
	u, err := disk.Usage(path)
	if err != nil {
		return s, fmt.Errorf("disk usage of %s: %w", path, err)
	}
	s.disk = u.UsedPercent
	if io, err := psnet.IOCounters(false); err == nil && len(io) > 0 {
		s.rx, s.tx = io[0].BytesRecv, io[0].BytesSent
	}
	return s, nil
}

const (
	labelWidth = 4 * text.Advance
	lineHeight = 10
)

func show(d *cli.Session, s, prev stats, interval time.Duration) {
	r := d.Bounds()
	d.Fill(0x00)
	d.DrawString(0, 0, s.hostname)

	y := lineHeight
	for _, row := range []struct {
		label string
		value float64
	}{
		{"CPU", s.cpu},
		{"MEM", s.mem},
		{"DSK", s.disk},
	} {
		if y+text.GlyphHeight >= r.Dy() {
			return
		}
		d.DrawString(0, y, row.label)
		bar(d.Framebuffer(), labelWidth, y, r.Dx()-labelWidth-1, text.GlyphHeight-1, row.value)
		y += lineHeight
	}

	if y+text.GlyphHeight < r.Dy() && prev.rx != 0 && s.rx >= prev.rx && s.tx >= prev.tx {
		seconds := uint64(interval / time.Second)
		if seconds == 0 {
			seconds = 1
		}
		d.DrawString(0, y, fmt.Sprintf("RX %s TX %s", rate((s.rx-prev.rx)/seconds), rate((s.tx-prev.tx)/seconds)))
		y += lineHeight
	}
	if y+text.GlyphHeight < r.Dy() {
		d.DrawString(0, y, "UP "+uptime(s.uptime))
	}
}

// bar draws a frame with corners (x,y) and (x+w,y+h), filled from the left
// to percent of its inside.
func bar(dst draw.Canvas, x, y, w, h int, percent float64) {
	draw.Rect(dst, x, y, w, h, false)
	inside := w - 1
	fill := int(percent / 100 * float64(inside))
	if fill > inside {
		fill = inside
	}
	if fill > 0 {
		draw.Rect(dst, x+1, y+1, fill-1, h-2, true)
	}
}

func rate(bps uint64) string {
	switch {
	case bps >= 1<<20:
		return fmt.Sprintf("%dM", bps>>20)
	case bps >= 1<<10:
		return fmt.Sprintf("%dK", bps>>10)
	default:
		return fmt.Sprintf("%dB", bps)
	}
}

func uptime(d time.Duration) string {
	var (
		days    = int(d.Hours()) / 24
		hours   = int(d.Hours()) % 24
		minutes = int(d.Minutes()) % 60
	)
	if days > 0 {
		return fmt.Sprintf("%dd %02dh %02dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%02dh %02dm", hours, minutes)
	}
	return fmt.Sprintf("%02dm", minutes)
}
