// Copyright © 2025 Swayfocus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: history/history.go
// Summary: SQLite-backed focus-jump history. Every successful dispatch is
// recorded; `swayfocus prev` replays the most recent jump that landed on a
// different container, so repeated invocations toggle between the last two
// focus positions.

package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS focus_jumps (
	seq       INTEGER PRIMARY KEY AUTOINCREMENT,
	con_id    INTEGER NOT NULL,
	command   TEXT NOT NULL,
	jumped_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// ErrEmpty reports that the history has no jump to go back to.
var ErrEmpty = errors.New("history: no previous focus recorded")

// Store persists focus jumps to a SQLite database.
type Store struct {
	db    *sql.DB
	limit int
}

// Open opens (creating if needed) the history database at path. limit caps
// the number of retained entries; older rows are pruned on write.
func Open(path string, limit int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history: creating data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(2000)")
	if err != nil {
		return nil, fmt.Errorf("history: opening %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: creating schema: %w", err)
	}
	if limit <= 0 {
		limit = 200
	}
	return &Store{db: db, limit: limit}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one focus jump and prunes entries beyond the store's limit.
func (s *Store) Record(conID int64, command string) error {
	if _, err := s.db.Exec(
		`INSERT INTO focus_jumps (con_id, command) VALUES (?, ?)`, conID, command); err != nil {
		return fmt.Errorf("history: recording jump: %w", err)
	}
	_, err := s.db.Exec(
		`DELETE FROM focus_jumps WHERE seq <= (
			SELECT seq FROM focus_jumps ORDER BY seq DESC LIMIT 1 OFFSET ?)`, s.limit)
	if err != nil {
		return fmt.Errorf("history: pruning: %w", err)
	}
	return nil
}

// Previous returns the most recent jump whose container differs from the last
// recorded one. ErrEmpty means there is nothing to go back to.
func (s *Store) Previous() (conID int64, command string, err error) {
	rows, err := s.db.Query(
		`SELECT con_id, command FROM focus_jumps ORDER BY seq DESC`)
	if err != nil {
		return 0, "", fmt.Errorf("history: querying jumps: %w", err)
	}
	defer rows.Close()

	first := true
	var current int64
	for rows.Next() {
		var id int64
		var cmd string
		if err := rows.Scan(&id, &cmd); err != nil {
			return 0, "", err
		}
		if first {
			current = id
			first = false
			continue
		}
		if id != current {
			return id, cmd, nil
		}
	}
	if err := rows.Err(); err != nil {
		return 0, "", err
	}
	return 0, "", ErrEmpty
}
