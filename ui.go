package main

import (
	"github.com/gdamore/tcell"
)

func Clear(scr tcell.Screen, x, y, h, w int, c rune, style tcell.Style) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			scr.SetContent(i, j, c, nil, style)
		}
	}
}

// DrawLines writes lines top down from x, y. Control characters are shown
// as '?', offscreen cells are skipped.
func DrawLines(scr tcell.Screen, x, y int, style tcell.Style, lines []string) {
	for j, line := range lines {
		i := 0
		for _, c := range line {
			if c < 0x20 || c == 0x7f {
				c = '?'
			}
			if x+i >= 0 {
				scr.SetContent(x+i, y+j, c, nil, style)
			}
			i++
		}
	}
}
