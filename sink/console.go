package sink

import (
	"context"
	"io"

	"github.com/fatih/color"
)

var (
	nameColor = color.New(color.FgGreen, color.Bold)
	textColor = color.New(color.FgCyan)
	timeColor = color.New(color.FgYellow)
	dimColor  = color.New(color.Faint)
)

// Console prints one coloured line per event.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Send(ctx context.Context, e Event) error {
	var err error

	if _, err = dimColor.Fprintf(c.w, "%s ", e.At.Format("15:04:05")); err != nil {
		return err
	}
	switch e.Kind {
	case KindName:
		_, err = nameColor.Fprintf(c.w, "PS   [%s]\n", e.Display())
	case KindText:
		_, err = textColor.Fprintf(c.w, "RT   %q\n", e.Display())
	case KindTime:
		_, err = timeColor.Fprintf(c.w, "CT   %s (offset %+d)\n", e.Display(), e.Offset)
	}
	return err
}

func (c *Console) Close() error {
	return nil
}
