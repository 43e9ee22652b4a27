package sink

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Redis keeps the latest values of a session in the hash <prefix>:<session>
// and publishes every event as JSON on <prefix>:events.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

func NewRedis(opts *redis.Options, prefix string) *Redis {
	return &Redis{
		rdb:    redis.NewClient(opts),
		prefix: prefix,
	}
}

func (r *Redis) Key(session string) string {
	return r.prefix + ":" + session
}

func (r *Redis) Channel() string {
	return r.prefix + ":events"
}

func (r *Redis) Ping(ctx context.Context) error {
	return errors.Wrap(r.rdb.Ping(ctx).Err(), "redis ping")
}

func (r *Redis) Send(ctx context.Context, e Event) error {
	data, err := e.JSON()
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	fields := map[string]interface{}{
		string(e.Kind): e.Value,
	}
	if e.UTC != nil {
		fields["offset"] = e.Offset
	}
	if err := r.rdb.HSet(ctx, r.Key(e.Session), fields).Err(); err != nil {
		return errors.Wrap(err, "hset")
	}
	if err := r.rdb.Publish(ctx, r.Channel(), data).Err(); err != nil {
		return errors.Wrap(err, "publish")
	}
	return nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
