// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state persists the widget's small amount of local state.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/quorumhq/guide-tui/internal/model"
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS dismissed_insights (
	page         TEXT NOT NULL,
	insight_id   TEXT NOT NULL,
	dismissed_at INTEGER NOT NULL,
	PRIMARY KEY (page, insight_id)
);
`

// =============================================================================
// DISMISSAL STORE
// =============================================================================

// DismissalStore records which insights the user has dismissed, per page.
type DismissalStore struct {
	db *sql.DB
}

// Open opens (creating if necessary) the dismissal database at path.
func Open(path string) (*DismissalStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &DismissalStore{db: db}, nil
}

// Close releases the database.
func (s *DismissalStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Dismiss records an insight as dismissed on a page. Re-dismissing is a
// no-op that refreshes the timestamp.
func (s *DismissalStore) Dismiss(page, insightID string) error {
	_, err := s.db.Exec(`
		INSERT INTO dismissed_insights (page, insight_id, dismissed_at)
		VALUES (?, ?, ?)
		ON CONFLICT (page, insight_id) DO UPDATE SET dismissed_at = excluded.dismissed_at
	`, page, insightID, time.Now().Unix())
	return err
}

// IsDismissed reports whether an insight has been dismissed on a page.
func (s *DismissalStore) IsDismissed(page, insightID string) (bool, error) {
	var one int
	err := s.db.QueryRow(`
		SELECT 1 FROM dismissed_insights WHERE page = ? AND insight_id = ?
	`, page, insightID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Filter returns the insights that have not been dismissed on the page,
// preserving order. A query failure degrades to showing everything; a
// broken local database must not hide the feed.
func (s *DismissalStore) Filter(page string, insights []model.InsightItem) []model.InsightItem {
	dismissed, err := s.dismissedSet(page)
	if err != nil || len(dismissed) == 0 {
		return insights
	}

	out := make([]model.InsightItem, 0, len(insights))
	for _, in := range insights {
		if _, ok := dismissed[in.ID]; !ok {
			out = append(out, in)
		}
	}
	return out
}

func (s *DismissalStore) dismissedSet(page string) (map[string]struct{}, error) {
	rows, err := s.db.Query(`
		SELECT insight_id FROM dismissed_insights WHERE page = ?
	`, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		set[id] = struct{}{}
	}
	return set, rows.Err()
}

// Prune drops dismissals older than maxAge so the portal can resurface an
// insight that has stayed relevant for a long time. Returns the number of
// rows removed.
func (s *DismissalStore) Prune(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).Unix()
	res, err := s.db.Exec(`
		DELETE FROM dismissed_insights WHERE dismissed_at < ?
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
