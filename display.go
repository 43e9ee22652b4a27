package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell"
	"github.com/sirupsen/logrus"

	"github.com/bartgrantham/gofm-rds/rds"
	"github.com/bartgrantham/gofm-rds/sink"
)

// Display draws the tuned station full screen. It's a sink, so decoded
// values arrive through the same fanout as every other output.
type Display struct {
	scr         tcell.Screen
	big, medium *FIGfont
	rbds        bool

	freq   float64
	call   string
	pty    int
	tp     bool
	rssi   int
	stereo bool

	name  string
	text  string
	clock string
}

var _ sink.Sink = (*Display)(nil)

func NewDisplay(scr tcell.Screen, big, medium *FIGfont, freq float64, rbds bool) *Display {
	return &Display{
		scr:    scr,
		big:    big,
		medium: medium,
		rbds:   rbds,
		freq:   freq,
		name:   rds.BlankName,
	}
}

// loadFont is best effort: without the font files the display falls back
// to plain text.
func loadFont(path string, log logrus.FieldLogger) *FIGfont {
	if path == "" {
		return nil
	}
	r, err := os.Open(path)
	if err != nil {
		log.WithError(err).Warn("no FIGlet font, using plain text")
		return nil
	}
	defer r.Close()
	f, err := NewFIGfont(r)
	if err != nil {
		log.WithError(err).WithField("font", path).Warn("bad FIGlet font, using plain text")
		return nil
	}
	f.Name = path
	return f
}

func (d *Display) Send(ctx context.Context, e sink.Event) error {
	switch e.Kind {
	case sink.KindName:
		d.name = e.Value
	case sink.KindText:
		d.text = e.Display()
	case sink.KindTime:
		d.clock = e.Value
	}
	d.Draw()
	return nil
}

func (d *Display) Close() error {
	return nil
}

// Status updates the per-group fields the decoder doesn't keep: PI derived
// call sign, program type and traffic flag, plus tuner signal info.
func (d *Display) Status(g rds.Group, rssi int, stereo bool) {
	switch cs, ok := rds.CallSign(g.PI()); {
	case ok:
		d.call = cs
	case g.PI() == 0:
		d.call = ""
	default:
		d.call = fmt.Sprintf("%.4X", g.PI())
	}
	d.pty = g.ProgramType()
	d.tp = g.Traffic()
	d.rssi = rssi
	d.stereo = stereo
}

func (d *Display) Draw() {
	black := tcell.Color(232)
	white := tcell.Color(255)

	freqStyle := tcell.StyleDefault.Foreground(white).Background(black).Bold(true)
	style := tcell.StyleDefault

	w, h := d.scr.Size()
	d.scr.Clear()

	y := 1
	y = d.drawBlock(d.big, fmt.Sprintf("%.1f", d.freq), w, y, freqStyle) + 1
	y = d.drawBlock(d.medium, strings.TrimSpace(d.name), w, y, style) + 1

	traffic := ' '
	if d.tp {
		traffic = 'T'
	}
	stereo := "Mono"
	if d.stereo {
		stereo = "Stereo"
	}
	info := fmt.Sprintf("%-4s  %s  %c", d.call, rds.ProgramTypeName(d.pty, d.rbds), traffic)
	DrawLines(d.scr, (w-len(info))/2, y, style, []string{info})
	y += 2

	rt := "- - - = = =  " + d.text + "  = = = - - -"
	DrawLines(d.scr, (w-len(rt))/2, y, style, []string{rt})
	y += 2

	if d.clock != "" {
		DrawLines(d.scr, (w-len(d.clock))/2, y, style, []string{d.clock})
	}

	status := fmt.Sprintf("rssi %3d  %s  (%s)", d.rssi, stereo, d.name)
	DrawLines(d.scr, 0, h-1, style, []string{status})
	d.scr.Show()
}

// drawBlock centers s on row y, rendered with font when there is one, and
// returns the next free row.
func (d *Display) drawBlock(font *FIGfont, s string, w, y int, style tcell.Style) int {
	if font == nil {
		DrawLines(d.scr, (w-len(s))/2, y, style, []string{s})
		return y + 1
	}
	lines := font.Render(s)
	Clear(d.scr, 0, y, font.Height, w, ' ', style)
	DrawLines(d.scr, (w-font.Width(s))/2, y, style, lines)
	return y + font.Height
}
