// Package sqliterepo is the default durable backend for the onboarding
// session: a single-row SQLite table holding the JSON-serialized record
// under a fixed key.
package sqliterepo

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jrsteele09/go-onboarding-server/session"
)

// recordKey is the fixed key for the single session record.
const recordKey = "onboarding_session"

var _ session.Repo = (*Repo)(nil)

// Repo is a SQLite-backed session.Repo.
type Repo struct {
	db   *sql.DB
	path string
}

// New opens (creating if needed) the session database inside dataDir.
func New(dataDir string) (*Repo, error) {
	if dataDir == "" {
		dataDir = "./data"
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "onboarding.db")

	// WAL mode so a reader never observes a partial write
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS onboarding_sessions (
			key        TEXT PRIMARY KEY,
			record     TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sessions table: %w", err)
	}

	return &Repo{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (r *Repo) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repo) Path() string {
	return r.path
}

func (r *Repo) Load() (*session.OnboardingSession, error) {
	var raw string
	err := r.db.QueryRow(
		"SELECT record FROM onboarding_sessions WHERE key = ?", recordKey,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session record: %w", err)
	}

	var sess session.OnboardingSession
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decoding session record: %w", err)
	}
	return &sess, nil
}

func (r *Repo) Save(sess *session.OnboardingSession) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO onboarding_sessions (key, record, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET record = excluded.record, updated_at = CURRENT_TIMESTAMP
	`, recordKey, string(raw))
	if err != nil {
		return fmt.Errorf("writing session record: %w", err)
	}
	return nil
}

func (r *Repo) Delete() error {
	if _, err := r.db.Exec("DELETE FROM onboarding_sessions WHERE key = ?", recordKey); err != nil {
		return fmt.Errorf("deleting session record: %w", err)
	}
	return nil
}
