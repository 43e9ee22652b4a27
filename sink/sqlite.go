package sink

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// SQLite logs every event to a local database.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "enable WAL")
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create schema")
	}

	return &SQLite{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session TEXT NOT NULL,
	kind TEXT NOT NULL,
	value TEXT NOT NULL,
	utc TEXT,
	half_hours INTEGER NOT NULL DEFAULT 0,
	received_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);
CREATE INDEX IF NOT EXISTS idx_events_session ON events(session);
`

func (s *SQLite) Send(ctx context.Context, e Event) error {
	var utc sql.NullString
	if e.UTC != nil {
		utc = sql.NullString{String: e.UTC.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (session, kind, value, utc, half_hours, received_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.Session, string(e.Kind), e.Value, utc, e.Offset, e.At.Format(time.RFC3339Nano))
	if err != nil {
		return errors.Wrap(err, "insert event")
	}
	return nil
}

// Latest returns the most recent event of the given kind. ok is false if
// none has been logged.
func (s *SQLite) Latest(ctx context.Context, kind Kind) (e Event, ok bool, err error) {
	var utc sql.NullString
	var at string

	row := s.db.QueryRowContext(ctx, `
		SELECT session, kind, value, utc, half_hours, received_at
		FROM events WHERE kind = ? ORDER BY id DESC LIMIT 1
	`, string(kind))
	err = row.Scan(&e.Session, &e.Kind, &e.Value, &utc, &e.Offset, &at)
	if err == sql.ErrNoRows {
		return Event{}, false, nil
	}
	if err != nil {
		return Event{}, false, errors.Wrap(err, "query latest")
	}

	if e.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
		return Event{}, false, errors.Wrap(err, "parse received_at")
	}
	if utc.Valid {
		t, err := time.Parse(time.RFC3339, utc.String)
		if err != nil {
			return Event{}, false, errors.Wrap(err, "parse utc")
		}
		e.UTC = &t
	}
	return e, true, nil
}

// Count returns the number of events logged for a session.
func (s *SQLite) Count(ctx context.Context, session string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE session = ?`, session).Scan(&n)
	return n, errors.Wrap(err, "count events")
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
