package main

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tinyFont is a two line font where every glyph is its own character
// followed by a hardblank on the first line.
func tinyFont() string {
	var b strings.Builder
	b.WriteString("flf2a$ 2 1 4 0 1\n")
	b.WriteString("test font\n")
	for _, c := range charorder {
		b.WriteString(string(c) + "$@\n")
		b.WriteString(string(c) + "@@\n")
	}
	return b.String()
}

func TestFIGfont(t *testing.T) {
	f, err := NewFIGfont(strings.NewReader(tinyFont()))
	require.NoError(t, err)

	assert.Equal(t, 2, f.Height)
	assert.Equal(t, []string{"A B ", "AB"}, f.Render("AB"))
	assert.Equal(t, 4, f.Width("AB"))
	assert.Equal(t, []string{"Ä ", "Ä"}, f.Render("Ä"))

	// characters the font lacks are skipped
	assert.Equal(t, []string{"A ", "A"}, f.Render("A☃"))
	assert.Equal(t, []string{"", ""}, f.Render(""))
}

func TestFIGfontInvalid(t *testing.T) {
	for name, src := range map[string]string{
		"empty":     "",
		"signature": "flf3a$ 2 1 4 0 1\n",
		"header":    "flf2a$ two 1 4 0 1\n",
		"height":    "flf2a$ 0 1 4 0 0\n",
		"truncated": tinyFont()[:200],
	} {
		_, err := NewFIGfont(strings.NewReader(src))
		require.Error(t, err, name)
		assert.Equal(t, ErrInvalidFont, errors.Cause(err), name)
	}
}
