// Package history persists operation records in a sqlite journal so
// that prior runs remain inspectable. Undo only ever touches the
// in-process history; the journal is an audit trail.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/keiko/fman/internal/config"
	"github.com/keiko/fman/internal/organizer"
)

// Journal is a sqlite-backed append-only operation log.
type Journal struct {
	db      *sql.DB
	path    string
	session string
}

// Verify Journal satisfies the organizer's journal contract.
var _ organizer.Journal = (*Journal)(nil)

// Entry is one persisted operation row.
type Entry struct {
	ID        string            `json:"id"`
	Session   string            `json:"session"`
	Operation string            `json:"operation"`
	Path      string            `json:"path"`
	Detail    string            `json:"detail,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Result    *organizer.Result `json:"result,omitempty"`
}

// Open creates (or reuses) the journal database in the data directory.
// Each Journal instance carries its own session ID; the environment may
// pin one for grouping related invocations.
func Open() (*Journal, error) {
	paths := config.GetPaths()
	if err := os.MkdirAll(paths.Data, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	return OpenAt(filepath.Join(paths.Data, "journal.db"))
}

// OpenAt opens a journal at an explicit database path, for tests.
func OpenAt(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	session := config.Env().SessionID
	if session == "" {
		session = uuid.NewString()
	}

	j := &Journal{db: db, path: dbPath, session: session}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return j, nil
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS operations (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		operation TEXT NOT NULL,
		path TEXT NOT NULL,
		detail TEXT,
		timestamp DATETIME NOT NULL,
		result_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_operations_session ON operations(session_id);
	CREATE INDEX IF NOT EXISTS idx_operations_timestamp ON operations(timestamp DESC);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Session returns the session ID stamped on appended rows.
func (j *Journal) Session() string {
	return j.session
}

// Append writes one record. The record's ULID keeps rows time-sortable
// across sessions.
func (j *Journal) Append(rec organizer.Record) error {
	resultJSON, _ := json.Marshal(rec.Result)
	_, err := j.db.Exec(`
		INSERT INTO operations (id, session_id, operation, path, detail, timestamp, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, j.session, rec.Operation, rec.Path, rec.Detail, rec.Timestamp, resultJSON)
	return err
}

// Recent returns the newest limit entries, newest first. A non-positive
// limit returns everything.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	query := `
		SELECT id, session_id, operation, path, detail, timestamp, result_json
		FROM operations ORDER BY timestamp DESC, id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var detail sql.NullString
		var resultJSON sql.NullString
		if err := rows.Scan(&e.ID, &e.Session, &e.Operation, &e.Path, &detail, &e.Timestamp, &resultJSON); err != nil {
			return nil, err
		}
		e.Detail = detail.String
		if resultJSON.Valid && resultJSON.String != "null" {
			var res organizer.Result
			if err := json.Unmarshal([]byte(resultJSON.String), &res); err == nil {
				e.Result = &res
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the database handle.
func (j *Journal) Close() error {
	return j.db.Close()
}
