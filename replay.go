package main

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bartgrantham/gofm-rds/rds"
)

// Source delivers groups until it runs out or ctx is done, then closes
// groups.
type Source interface {
	Run(ctx context.Context, groups chan<- rds.Group) error
}

var (
	_ Source = (*Si4703)(nil)
	_ Source = (*Replay)(nil)
)

// Replay reads a hex capture, one group per line:
//
//	54A8 0549 E0CD 4B51
//
// Anything after the fourth word (timestamps, comments) is ignored, lines
// starting with # are skipped, and a block written as ---- was
// uncorrectable so its group is dropped.
type Replay struct {
	r    io.Reader
	Rate time.Duration
	log  logrus.FieldLogger
}

func NewReplay(r io.Reader, log logrus.FieldLogger) *Replay {
	return &Replay{r: r, log: log}
}

func (rp *Replay) Run(ctx context.Context, groups chan<- rds.Group) error {
	defer close(groups)

	var tick <-chan time.Time
	if rp.Rate > 0 {
		ticker := time.NewTicker(rp.Rate)
		defer ticker.Stop()
		tick = ticker.C
	}

	scanner := bufio.NewScanner(rp.r)
	var line, dropped int
	for scanner.Scan() {
		line++
		g, ok, err := ParseGroup(scanner.Text())
		if err != nil {
			return errors.Wrapf(err, "line %d", line)
		}
		if !ok {
			if strings.Contains(scanner.Text(), "----") {
				dropped++
			}
			continue
		}

		if tick != nil {
			select {
			case <-tick:
			case <-ctx.Done():
				return nil
			}
		}
		select {
		case groups <- g:
		case <-ctx.Done():
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "read capture")
	}

	rp.log.WithFields(logrus.Fields{"lines": line, "dropped": dropped}).Info("replay done")
	return nil
}

// ParseGroup parses one capture line. ok is false for blank lines,
// comments and groups with a missing block.
func ParseGroup(s string) (g rds.Group, ok bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "#") {
		return g, false, nil
	}

	fields := strings.Fields(s)
	if len(fields) < 4 {
		return g, false, errors.Errorf("want 4 blocks, got %d", len(fields))
	}

	var blocks [4]uint16
	missing := false
	for i, f := range fields[:4] {
		if f == "----" {
			missing = true
			continue
		}
		if len(f) != 4 {
			return g, false, errors.Errorf("block %d: %q is not 4 hex digits", i+1, f)
		}
		v, err := strconv.ParseUint(f, 16, 16)
		if err != nil {
			return g, false, errors.Wrapf(err, "block %d", i+1)
		}
		blocks[i] = uint16(v)
	}
	if missing {
		return g, false, nil
	}
	return rds.Group{A: blocks[0], B: blocks[1], C: blocks[2], D: blocks[3]}, true, nil
}
