// Package journal keeps an append-only SQLite log of reconfiguration events.
// It is an audit trail only; configuration is never restored from it.
package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"snnd/internal/backend"
)

// Journal implements backend.EventPublisher on top of SQLite.
// Thread-safety: all methods are safe for concurrent use.
type Journal struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
	now func() time.Time
}

// Entry is one recorded event.
type Entry struct {
	ID       int64
	OpID     string
	Name     string
	Revision uint64
	Fields   map[string]any
	At       time.Time
}

// Open opens (or creates) the journal at path. ":memory:" gives a private
// in-memory journal; each call gets its own named database.
func Open(path string, log zerolog.Logger) (*Journal, error) {
	connStr := path
	if path == ":memory:" {
		connStr = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	}
	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}
	j := &Journal{db: db, log: log, now: time.Now}
	if err := j.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return j, nil
}

func (j *Journal) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		op_id TEXT NOT NULL,
		name TEXT NOT NULL,
		revision INTEGER NOT NULL,
		fields TEXT,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_op ON events(op_id);
	`
	if _, err := j.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Append writes one event.
func (j *Journal) Append(e backend.Event) error {
	var fields []byte
	if len(e.Fields) > 0 {
		b, err := json.Marshal(e.Fields)
		if err != nil {
			return fmt.Errorf("encode fields: %w", err)
		}
		fields = b
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	_, err := j.db.Exec(
		`INSERT INTO events (op_id, name, revision, fields, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.OpID, e.Name, int64(e.Revision), string(fields), j.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Publish satisfies backend.EventPublisher; write errors are logged.
func (j *Journal) Publish(e backend.Event) {
	if err := j.Append(e); err != nil {
		j.log.Warn().Err(err).Str("event", e.Name).Msg("journal append failed")
	}
}

// Recent returns up to limit events, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	rows, err := j.db.Query(
		`SELECT id, op_id, name, revision, fields, created_at FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e      Entry
			rev    int64
			fields sql.NullString
			at     int64
		)
		if err := rows.Scan(&e.ID, &e.OpID, &e.Name, &rev, &fields, &at); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Revision = uint64(rev)
		e.At = time.UnixMilli(at)
		if fields.Valid && fields.String != "" {
			if err := json.Unmarshal([]byte(fields.String), &e.Fields); err != nil {
				return nil, fmt.Errorf("decode fields: %w", err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the database.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.db.Close()
}
