// Package sink fans decoded RDS values out to the console, a SQLite
// station log, Redis and NATS.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bartgrantham/gofm-rds/rds"
)

type Kind string

const (
	KindName Kind = "name"
	KindText Kind = "text"
	KindTime Kind = "time"
)

// Event is one confirmed value. For time events Value is the local time
// in RFC 3339 and UTC/Offset carry the broadcast fields.
type Event struct {
	Session string     `json:"session"`
	Kind    Kind       `json:"kind"`
	Value   string     `json:"value"`
	UTC     *time.Time `json:"utc,omitempty"`
	Offset  int        `json:"offset,omitempty"`
	At      time.Time  `json:"at"`
}

func (e Event) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// Display is Value trimmed for printing: radiotext loses its CR.
func (e Event) Display() string {
	if e.Kind == KindText {
		return strings.TrimRight(e.Value, "\r")
	}
	return e.Value
}

type Sink interface {
	Send(ctx context.Context, e Event) error
	Close() error
}

// Fanout is an rds.Observer that stamps each value with the session ID and
// the time of receipt and hands it to every sink in turn. Sink errors are
// logged, never returned to the decoder.
type Fanout struct {
	Session string
	Timeout time.Duration

	ctx   context.Context
	log   logrus.FieldLogger
	sinks []Sink
	now   func() time.Time
}

var _ rds.Observer = (*Fanout)(nil)

// NewFanout returns a fanout whose sends are bounded by ctx as well as
// Timeout, so sinks stop blocking once the program is shutting down.
func NewFanout(ctx context.Context, log logrus.FieldLogger, sinks ...Sink) *Fanout {
	return &Fanout{
		Session: uuid.NewString(),
		Timeout: 2 * time.Second,
		ctx:     ctx,
		log:     log,
		sinks:   sinks,
		now:     time.Now,
	}
}

func (f *Fanout) Add(s Sink) {
	f.sinks = append(f.sinks, s)
}

func (f *Fanout) StationName(name string) {
	f.send(Event{Kind: KindName, Value: name})
}

func (f *Fanout) Text(text string) {
	f.send(Event{Kind: KindText, Value: text})
}

func (f *Fanout) ClockTime(ct rds.ClockTime) {
	utc := ct.UTC
	f.send(Event{
		Kind:   KindTime,
		Value:  ct.Local().Format(time.RFC3339),
		UTC:    &utc,
		Offset: ct.Offset,
	})
}

func (f *Fanout) send(e Event) {
	e.Session = f.Session
	e.At = f.now()

	ctx, cancel := context.WithTimeout(f.ctx, f.Timeout)
	defer cancel()

	for _, s := range f.sinks {
		if err := s.Send(ctx, e); err != nil {
			f.log.WithError(err).WithFields(logrus.Fields{
				"sink": fmt.Sprintf("%T", s),
				"kind": e.Kind,
			}).Warn("sink failed")
		}
	}
}

// Close closes every sink and returns the first error.
func (f *Fanout) Close() error {
	var first error
	for _, s := range f.sinks {
		if err := s.Close(); err != nil && first == nil {
			first = errors.Wrapf(err, "close %T", s)
		}
	}
	return first
}
