package rds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupFields(t *testing.T) {
	g := Group{A: 0xD3C2, B: 0x2C5A, C: 0x4142, D: 0x4344}

	assert.Equal(t, uint16(0xD3C2), g.PI())
	assert.Equal(t, 0xD, g.CountryCode())
	assert.Equal(t, 0x3, g.CoverageArea())
	assert.Equal(t, 0xC2, g.ProgramRef())
	assert.Equal(t, 2, g.Type())
	assert.True(t, g.VersionB())
	assert.True(t, g.Traffic())
	assert.Equal(t, 2, g.ProgramType())
	assert.Equal(t, 0x1A, g.Address())
	assert.Equal(t, "2B", g.Code())
	assert.Equal(t, "D3C2 2C5A 4142 4344", g.String())

	g = Group{A: 0x1234, B: 0xE000}
	assert.Equal(t, "14A", g.Code())
	assert.False(t, g.VersionB())
	assert.False(t, g.Traffic())
}

func TestCallSign(t *testing.T) {
	for _, tc := range []struct {
		pi   uint16
		want string
		ok   bool
	}{
		{0x796E, "WNYC", true},
		{0x3AAB, "KQED", true},
		{21672, "WAAA", true},
		{0x1000, "ABAA", true},
		{0xC300, "AFMD", true},
		{0, "", false},
		{0xD3C2, "", false},
	} {
		cs, ok := CallSign(tc.pi)
		assert.Equal(t, tc.ok, ok, "%.4X", tc.pi)
		assert.Equal(t, tc.want, cs, "%.4X", tc.pi)
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Radio Text only", GroupTypeName(2, false))
	assert.Equal(t, "Fast Switching Information only", GroupTypeName(15, true))
	assert.Equal(t, "", GroupTypeName(16, false))

	assert.Equal(t, "Top 40", ProgramTypeName(9, true))
	assert.Equal(t, "Varied", ProgramTypeName(9, false))
	assert.Equal(t, "", ProgramTypeName(-1, true))
}
