package export

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// StateDB persists workout signatures and their destination reference keys,
// so re-running an export never re-uploads a workout the destination already
// has.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite state database at dir/state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "state.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS uploaded_workouts (
		signature   TEXT PRIMARY KEY,
		ref_key     TEXT NOT NULL,
		uploaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// LookupBySignature returns the recorded reference key for a signature, or
// empty string when the workout has not been uploaded yet.
func (s *StateDB) LookupBySignature(signature string) (string, error) {
	var refKey string
	err := s.db.QueryRow(
		`SELECT ref_key FROM uploaded_workouts WHERE signature = ?`,
		signature,
	).Scan(&refKey)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return refKey, nil
}

// MarkUploaded records that a workout with the given signature was uploaded.
func (s *StateDB) MarkUploaded(signature, refKey string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO uploaded_workouts (signature, ref_key) VALUES (?, ?)`,
		signature, refKey,
	)
	return err
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}
