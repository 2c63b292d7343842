// Package cache persists the last fetched collections to a local SQLite
// file. A dashboard warm-starts from the snapshot and tolerates launching
// offline; the snapshot is advisory and always superseded by the next sync.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"classdesk/internal/domain/course"
	"classdesk/internal/domain/enrollment"
	"classdesk/internal/domain/session"
	"classdesk/internal/domain/user"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// ErrNoSnapshot signals that the cache file holds no saved collections yet.
var ErrNoSnapshot = errors.New("no snapshot saved")

// Snapshot is the serialisable copy of the four collections.
type Snapshot struct {
	Users       []user.User
	Courses     []course.Course
	Sessions    []session.Session
	Enrollments []enrollment.Enrollment
	SavedAt     time.Time
}

// SnapshotStore reads and writes snapshots in a SQLite file.
type SnapshotStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the snapshot database.
// PRE: path is a writable file path
// POST: Schema exists, WAL mode enabled
func Open(path string) (*SnapshotStore, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshot (
		collection TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		saved_at TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate snapshot db: %w", err)
	}
	return &SnapshotStore{db: db}, nil
}

// Close releases the database handle.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Save writes all four collections in one transaction.
// POST: Either the whole snapshot is saved or none of it
func (s *SnapshotStore) Save(ctx context.Context, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	savedAt := time.Now().Format(timeLayout)
	rows := []struct {
		collection string
		value      any
	}{
		{"users", snap.Users},
		{"courses", snap.Courses},
		{"sessions", snap.Sessions},
		{"enrollments", snap.Enrollments},
	}
	for _, row := range rows {
		payload, err := json.Marshal(row.value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", row.collection, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot (collection, payload, saved_at) VALUES (?, ?, ?)
			 ON CONFLICT(collection) DO UPDATE SET payload=excluded.payload, saved_at=excluded.saved_at`,
			row.collection, string(payload), savedAt); err != nil {
			return fmt.Errorf("save %s: %w", row.collection, err)
		}
	}
	return tx.Commit()
}

// Load reads the saved collections.
// POST: Returns ErrNoSnapshot when nothing has been saved yet
func (s *SnapshotStore) Load(ctx context.Context) (Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT collection, payload, saved_at FROM snapshot`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	defer rows.Close()

	var snap Snapshot
	found := false
	for rows.Next() {
		var collection, payload, savedAt string
		if err := rows.Scan(&collection, &payload, &savedAt); err != nil {
			return Snapshot{}, fmt.Errorf("scan snapshot row: %w", err)
		}
		found = true
		if t, err := time.Parse(timeLayout, savedAt); err == nil && t.After(snap.SavedAt) {
			snap.SavedAt = t
		}
		var decodeErr error
		switch collection {
		case "users":
			decodeErr = json.Unmarshal([]byte(payload), &snap.Users)
		case "courses":
			decodeErr = json.Unmarshal([]byte(payload), &snap.Courses)
		case "sessions":
			decodeErr = json.Unmarshal([]byte(payload), &snap.Sessions)
		case "enrollments":
			decodeErr = json.Unmarshal([]byte(payload), &snap.Enrollments)
		}
		if decodeErr != nil {
			return Snapshot{}, fmt.Errorf("decode %s: %w", collection, decodeErr)
		}
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot rows: %w", err)
	}
	if !found {
		return Snapshot{}, ErrNoSnapshot
	}
	return snap, nil
}
