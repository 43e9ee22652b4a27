package main

import (
	"context"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartgrantham/gofm-rds/rds"
)

func TestParseGroup(t *testing.T) {
	for _, tc := range []struct {
		line string
		want rds.Group
		ok   bool
		err  bool
	}{
		{"54A8 0549 E0CD 4B51", rds.Group{A: 0x54A8, B: 0x0549, C: 0xE0CD, D: 0x4B51}, true, false},
		{"  54a8 2410 2048 454c  @2024-01-01 12:00:00", rds.Group{A: 0x54A8, B: 0x2410, C: 0x2048, D: 0x454C}, true, false},
		{"", rds.Group{}, false, false},
		{"# capture of 88.5", rds.Group{}, false, false},
		{"54A8 ---- E0CD 4B51", rds.Group{}, false, false},
		{"54A8 0549 E0CD", rds.Group{}, false, true},
		{"54A8 0549 E0CD 4B5", rds.Group{}, false, true},
		{"54A8 0549 E0CD XXXX", rds.Group{}, false, true},
	} {
		g, ok, err := ParseGroup(tc.line)
		if tc.err {
			assert.Error(t, err, tc.line)
			continue
		}
		require.NoError(t, err, tc.line)
		assert.Equal(t, tc.ok, ok, tc.line)
		assert.Equal(t, tc.want, g, tc.line)
	}
}

// two PS cycles for "KQED FM " with a 1A group and a bad group mixed in
const capture = `# KQED 88.5
3AAB 0540 E0CD 4B51
3AAB 0541 E0CD 4544
3AAB 1540 0000 0000
3AAB 0542 E0CD 2046
3AAB 0543 E0CD 4D20
3AAB 0540 E0CD 4B51
3AAB ---- E0CD 4544
3AAB 0541 E0CD 4544
3AAB 0542 E0CD 2046
3AAB 0543 E0CD 4D20
`

func TestReplay(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	rp := NewReplay(strings.NewReader(capture), log)

	d := rds.New()
	var names []string
	d.OnStationName(func(s string) { names = append(names, s) })

	var n int
	err := decode(context.Background(), rp, d, func(rds.Group) { n++ })
	require.NoError(t, err)

	assert.Equal(t, 9, n)
	assert.Equal(t, []string{"KQED FM "}, names)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, 1, hook.LastEntry().Data["dropped"])
	assert.Equal(t, 11, hook.LastEntry().Data["lines"])
}

func TestReplayBadLine(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	rp := NewReplay(strings.NewReader("3AAB 0540 E0CD 4B51\nnot a group at all\n"), log)

	err := decode(context.Background(), rp, rds.New(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReplayCancel(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	rp := NewReplay(strings.NewReader(capture), log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	groups := make(chan rds.Group)
	assert.NoError(t, rp.Run(ctx, groups))
	_, ok := <-groups
	assert.False(t, ok)
}
