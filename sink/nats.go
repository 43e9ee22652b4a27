package sink

import (
	"context"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

type natsConn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NATS publishes every event as JSON on <subject>.<kind>.
type NATS struct {
	conn    natsConn
	subject string
}

func DialNATS(url, subject string, opts ...nats.Option) (*NATS, error) {
	opts = append([]nats.Option{nats.Name("gofm")}, opts...)
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "connect %s", url)
	}
	return &NATS{conn: nc, subject: subject}, nil
}

func (n *NATS) Send(ctx context.Context, e Event) error {
	data, err := e.JSON()
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	return errors.Wrap(n.conn.Publish(n.subject+"."+string(e.Kind), data), "nats publish")
}

// Close drains pending publishes before closing the connection.
func (n *NATS) Close() error {
	return n.conn.Drain()
}
