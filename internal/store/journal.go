package store

import (
	"bytes"
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrRevisionNotFound is returned by Journal.Get for an unknown id.
var ErrRevisionNotFound = errors.New("revision not found")

// Revision is one saved version of a config file.
type Revision struct {
	ID      int64     `json:"id"`
	Path    string    `json:"path"`
	SavedAt time.Time `json:"savedAt"`
	Events  int       `json:"events"`
	Body    []byte    `json:"-"`
}

// Journal keeps the history of saved config files in a local SQLite database.
type Journal struct {
	db    *sql.DB
	limit int
}

// OpenJournal opens (creating and migrating if needed) the history database at path.
// limit caps revisions kept per config file; <= 0 keeps everything.
func OpenJournal(ctx context.Context, path string, limit int) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}
	if err := migrateJournal(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return &Journal{db: db, limit: limit}, nil
}

func migrateJournal(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Record stores body as the newest revision of path. If it is byte-identical to the
// newest stored revision nothing is written and ok is false.
func (j *Journal) Record(ctx context.Context, path string, body []byte, events int) (id int64, ok bool, err error) {
	latest, found, err := j.Latest(ctx, path)
	if err != nil {
		return 0, false, err
	}
	if found && bytes.Equal(latest.Body, body) {
		return latest.ID, false, nil
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO revisions(path, saved_at_unixms, event_count, body) VALUES(?, ?, ?, ?)`,
		path, time.Now().UnixMilli(), events, body,
	)
	if err != nil {
		return 0, false, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, err
	}
	if j.limit > 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM revisions WHERE path = ? AND id NOT IN (
				SELECT id FROM revisions WHERE path = ? ORDER BY id DESC LIMIT ?
			)`,
			path, path, j.limit,
		); err != nil {
			return 0, false, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// List returns revisions of path, newest first, without bodies.
func (j *Journal) List(ctx context.Context, path string) ([]Revision, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, path, saved_at_unixms, event_count FROM revisions WHERE path = ? ORDER BY id DESC`,
		path,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Revision{}
	for rows.Next() {
		var (
			r  Revision
			ms int64
		)
		if err := rows.Scan(&r.ID, &r.Path, &ms, &r.Events); err != nil {
			return nil, err
		}
		r.SavedAt = time.UnixMilli(ms).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// Get returns one revision including its body.
func (j *Journal) Get(ctx context.Context, id int64) (Revision, error) {
	row := j.db.QueryRowContext(ctx,
		`SELECT id, path, saved_at_unixms, event_count, body FROM revisions WHERE id = ?`, id)
	r, err := scanRevision(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Revision{}, ErrRevisionNotFound
	}
	return r, err
}

// Latest returns the newest revision of path, if any.
func (j *Journal) Latest(ctx context.Context, path string) (Revision, bool, error) {
	row := j.db.QueryRowContext(ctx,
		`SELECT id, path, saved_at_unixms, event_count, body FROM revisions WHERE path = ? ORDER BY id DESC LIMIT 1`, path)
	r, err := scanRevision(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Revision{}, false, nil
	}
	if err != nil {
		return Revision{}, false, err
	}
	return r, true, nil
}

func scanRevision(row *sql.Row) (Revision, error) {
	var (
		r  Revision
		ms int64
	)
	if err := row.Scan(&r.ID, &r.Path, &ms, &r.Events, &r.Body); err != nil {
		return Revision{}, err
	}
	r.SavedAt = time.UnixMilli(ms).UTC()
	return r, nil
}
