package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// See: figfont.txt

type FIGfont struct {
	Name      string
	Height    int
	hardblank byte
	baseline  int
	maxlen    int
	oldlayout int
	comments  int
	direction int
	layout    int
	codetags  int
	chars     map[rune][]string
}

var ErrInvalidFont = errors.New("invalid FIGfont")

// required characters, in file order
var charorder = ` !"#$%&'()*+,-./` + `0123456789:;<=>?` + `@ABCDEFGHIJKLMNO` +
	`PQRSTUVWXYZ[\]^_` + "`abcdefghijklmno" + "pqrstuvwxyz{|}~" +
	"ÄÖÜäöüß"

func (f *FIGfont) String() string {
	return f.Name
}

func NewFIGfont(r io.Reader) (*FIGfont, error) {
	var lines, header []string
	var params []int

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read FIGfont")
	}

	if len(lines) == 0 {
		return nil, errors.Wrap(ErrInvalidFont, "empty file")
	}
	header = strings.Fields(lines[0])
	if len(header) == 0 || len(header[0]) < 6 || header[0][0:5] != "flf2a" {
		return nil, errors.Wrap(ErrInvalidFont, "bad signature")
	}

	for _, s := range header[1:] {
		i, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidFont, "header %q", s)
		}
		params = append(params, i)
	}

	f := FIGfont{}
	f.hardblank = header[0][5]

	for i, p := range []*int{&f.Height, &f.baseline, &f.maxlen, &f.oldlayout, &f.comments, &f.direction, &f.layout, &f.codetags} {
		if i < len(params) {
			*p = params[i]
		}
	}
	if f.Height < 1 {
		return nil, errors.Wrap(ErrInvalidFont, "no height")
	}

	f.chars = map[rune][]string{}
	var idx int
	for i, c := range []rune(charorder) {
		idx = 1 + f.comments + (i * f.Height)
		if idx+f.Height > len(lines) {
			return nil, errors.Wrapf(ErrInvalidFont, "truncated at %q", c)
		}
		if len(lines[idx]) == 0 {
			return nil, errors.Wrapf(ErrInvalidFont, "empty line for %q", c)
		}
		endmark := lines[idx][len(lines[idx])-1:]
		for j := 0; j < f.Height; j++ {
			f.chars[c] = append(f.chars[c], strings.TrimRight(lines[idx+j], endmark))
		}
	}
	return &f, nil
}

// very stupid renderer that does _not_ respect FIGlet's rules
func (f *FIGfont) Render(s string) []string {
	out := make([]string, f.Height)
	blank := string([]byte{f.hardblank})

	for _, c := range s {
		if c == 0 {
			return out
		}
		fig, ok := f.chars[c]
		if !ok {
			continue
		}
		for i := 0; i < f.Height; i++ {
			out[i] += strings.Replace(fig[i], blank, " ", -1)
		}
	}
	return out
}

// Width is the widest line Render produces for s.
func (f *FIGfont) Width(s string) int {
	w := 0
	for _, l := range f.Render(s) {
		if n := len([]rune(l)); n > w {
			w = n
		}
	}
	return w
}
