// Package rds decodes Radio Data System groups into station name, radio
// text and clock time, publishing each value only once it has been
// received identically on consecutive cycles.
package rds

import (
	"io"

	"github.com/sirupsen/logrus"
)

// BlankName is published as the station name when the decoder is reset.
const BlankName = "        "

// Decoder holds the state for the currently tuned station. It is not safe
// for concurrent use; feed it from a single loop.
type Decoder struct {
	log logrus.FieldLogger

	// program service, double buffered: ps[psActive] is being written,
	// the other buffer holds the previous complete cycle
	ps       [2][8]byte
	psSlots  [2]uint8
	psActive int
	psName   string

	// radiotext, same scheme
	rt       [2][64]byte
	rtActive int
	rtAB     bool
	rtText   string

	lastMinutes int64
	clockSeen   bool

	notify notifier
}

type Option func(*Decoder)

// WithLogger sets the logger used for debug tracing of dropped and
// unconfirmed groups.
func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.log = l
		}
	}
}

func New(opts ...Option) *Decoder {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	d := &Decoder{log: discard}
	for _, o := range opts {
		o(d)
	}
	d.clear()
	return d
}

// Process consumes one group. A group with block A == 0 is the retune
// signal: all state is cleared and a blank name and empty text are
// published.
func (d *Decoder) Process(g Group) {
	if g.A == 0 {
		d.Reset()
		return
	}
	if g.VersionB() {
		d.log.WithField("group", g.Code()).Debug("ignoring version B group")
		return
	}

	switch g.Type() {
	case 0:
		// 0A : "Basic Tuning and Switching Information"
		d.updateName(g)
	case 2:
		// 2A : "Radio Text only"
		d.updateText(g)
	case 4:
		// 4A : "Clock Time and Date only"
		d.updateClock(g)
	default:
		d.log.WithField("group", g.Code()).Debug("ignoring group")
	}
}

// Reset clears every buffer and confirmed value and publishes BlankName
// and "" to the name and text observers.
func (d *Decoder) Reset() {
	d.clear()
	d.notify.name(BlankName)
	d.notify.text("")
}

func (d *Decoder) clear() {
	d.ps = [2][8]byte{}
	d.psSlots = [2]uint8{}
	d.psActive = 0
	d.psName = BlankName

	d.rt = [2][64]byte{}
	d.rtActive = 0
	d.rtAB = false
	d.rtText = ""

	d.lastMinutes = 0
	d.clockSeen = false
}

// StationName returns the last confirmed program service name.
func (d *Decoder) StationName() string {
	return d.psName
}

// Text returns the last confirmed radiotext.
func (d *Decoder) Text() string {
	return d.rtText
}
