package main

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartgrantham/gofm-rds/rds"
	"github.com/bartgrantham/gofm-rds/sink"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	scr := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, scr.Init())
	scr.SetSize(80, 24)
	t.Cleanup(scr.Fini)
	return scr
}

func screenRow(scr tcell.SimulationScreen, y int) string {
	cells, w, _ := scr.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func TestDisplay(t *testing.T) {
	scr := newTestScreen(t)
	d := NewDisplay(scr, nil, nil, 88.5, true)

	g := rds.Group{A: 0x3AAB, B: 0x0540, C: 0xE0CD, D: 0x4B51}
	d.Status(g, 42, true)
	d.Draw()

	assert.Contains(t, screenRow(scr, 1), "88.5")
	assert.Contains(t, screenRow(scr, 5), "KQED")
	assert.Contains(t, screenRow(scr, 5), rds.ProgramTypeName(g.ProgramType(), true))
	assert.True(t, strings.HasSuffix(screenRow(scr, 5), "T"))
	assert.Contains(t, screenRow(scr, 23), "rssi  42  Stereo")

	ctx := context.Background()
	require.NoError(t, d.Send(ctx, sink.Event{Kind: sink.KindName, Value: "KQED FM "}))
	require.NoError(t, d.Send(ctx, sink.Event{Kind: sink.KindText, Value: "Forum with Mina Kim\r"}))
	require.NoError(t, d.Send(ctx, sink.Event{Kind: sink.KindTime, Value: "2024-01-01 05:34 UTC-08:00"}))

	assert.Equal(t, "KQED FM", strings.TrimSpace(screenRow(scr, 3)))
	assert.Equal(t, "- - - = = =  Forum with Mina Kim  = = = - - -", strings.TrimSpace(screenRow(scr, 7)))
	assert.Equal(t, "2024-01-01 05:34 UTC-08:00", strings.TrimSpace(screenRow(scr, 9)))
	assert.Contains(t, screenRow(scr, 23), "(KQED FM )")
	assert.NoError(t, d.Close())
}

func TestDisplayUnknownPI(t *testing.T) {
	scr := newTestScreen(t)
	d := NewDisplay(scr, nil, nil, 101.3, false)

	d.Status(rds.Group{A: 0xD3C2, B: 0x0000}, 10, false)
	d.Draw()
	assert.Contains(t, screenRow(scr, 5), "D3C2")
	assert.Contains(t, screenRow(scr, 23), "Mono")

	d.Status(rds.Group{}, 10, false)
	d.Draw()
	assert.NotContains(t, screenRow(scr, 5), "D3C2")
}

func TestDisplayFont(t *testing.T) {
	font, err := NewFIGfont(strings.NewReader(tinyFont()))
	require.NoError(t, err)

	scr := newTestScreen(t)
	d := NewDisplay(scr, font, font, 88.5, true)
	require.NoError(t, d.Send(context.Background(), sink.Event{Kind: sink.KindName, Value: "KQED FM "}))

	assert.Equal(t, "8 8 . 5", strings.TrimSpace(screenRow(scr, 1)))
	assert.Equal(t, "88.5", strings.TrimSpace(screenRow(scr, 2)))
	assert.Equal(t, "K Q E D   F M", strings.TrimSpace(screenRow(scr, 4)))
	assert.Equal(t, "KQED FM", strings.TrimSpace(screenRow(scr, 5)))
}
