package engine

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Snapshot is one archived collection result for a candidate. The
// payload is the JSON-encoded CandidateData at collection time, kept so
// later reconciliations can be compared against what was on record.
type Snapshot struct {
	ID            string `json:"id"`
	CandidateName string `json:"candidate_name"`
	Sources       string `json:"sources"` // comma-joined source names
	Payload       string `json:"payload,omitempty"`
	CreatedAt     string `json:"created_at"`
}

var (
	snapshotDB   *sql.DB
	snapshotOnce sync.Once
	snapshotErr  error
)

// openSnapshotDB opens (or creates) the SQLite snapshot database at
// cfg.SnapshotDBPath, defaulting to ~/.go_candidate/snapshots.db.
func openSnapshotDB() (*sql.DB, error) {
	snapshotOnce.Do(func() {
		dbPath := cfg.SnapshotDBPath
		if dbPath == "" {
			dir := filepath.Join(os.Getenv("HOME"), ".go_candidate")
			if err := os.MkdirAll(dir, 0750); err != nil {
				snapshotErr = fmt.Errorf("snapshots: mkdir %s: %w", dir, err)
				return
			}
			dbPath = filepath.Join(dir, "snapshots.db")
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			snapshotErr = fmt.Errorf("snapshots: open db: %w", err)
			return
		}
		db.SetMaxOpenConns(1) // SQLite: single writer
		if err := initSnapshotSchema(db); err != nil {
			snapshotErr = fmt.Errorf("snapshots: init schema: %w", err)
			return
		}
		snapshotDB = db
	})
	return snapshotDB, snapshotErr
}

func initSnapshotSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		id             TEXT PRIMARY KEY,
		candidate_name TEXT NOT NULL,
		sources        TEXT NOT NULL,
		payload        TEXT NOT NULL,
		created_at     TEXT NOT NULL
	)`)
	return err
}

// SaveSnapshot archives a collection result and returns its assigned ID.
func SaveSnapshot(candidateName, sources string, payload any) (string, error) {
	if candidateName == "" {
		return "", errors.New("snapshots: candidate name is required")
	}
	db, err := openSnapshotDB()
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("snapshots: encode payload: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = db.Exec(
		`INSERT INTO snapshots (id, candidate_name, sources, payload, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, candidateName, sources, string(data), now,
	)
	if err != nil {
		return "", fmt.Errorf("snapshots: insert: %w", err)
	}
	IncrSnapshotWrites()
	return id, nil
}

// ListSnapshots returns snapshot headers (no payloads), newest first,
// optionally filtered by candidate name.
func ListSnapshots(candidateName string, limit int) ([]Snapshot, error) {
	db, err := openSnapshotDB()
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var rows *sql.Rows
	if candidateName != "" {
		rows, err = db.Query(
			`SELECT id, candidate_name, sources, created_at
			 FROM snapshots WHERE candidate_name = ? ORDER BY created_at DESC LIMIT ?`,
			candidateName, limit,
		)
	} else {
		rows, err = db.Query(
			`SELECT id, candidate_name, sources, created_at
			 FROM snapshots ORDER BY created_at DESC LIMIT ?`,
			limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("snapshots: query: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.CandidateName, &s.Sources, &s.CreatedAt); err != nil {
			continue
		}
		snaps = append(snaps, s)
	}
	if snaps == nil {
		snaps = []Snapshot{}
	}
	return snaps, nil
}

// GetSnapshot returns one snapshot including its payload.
func GetSnapshot(id string) (*Snapshot, error) {
	db, err := openSnapshotDB()
	if err != nil {
		return nil, err
	}

	var s Snapshot
	err = db.QueryRow(
		`SELECT id, candidate_name, sources, payload, created_at FROM snapshots WHERE id = ?`, id,
	).Scan(&s.ID, &s.CandidateName, &s.Sources, &s.Payload, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("snapshots: %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("snapshots: query: %w", err)
	}
	return &s, nil
}
