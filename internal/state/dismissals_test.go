// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state persists the widget's small amount of local state.
package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/quorumhq/guide-tui/internal/model"
)

func openStore(t *testing.T) *DismissalStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDismiss_RoundTrip(t *testing.T) {
	s := openStore(t)

	dismissed, err := s.IsDismissed("tasks", "i1")
	if err != nil {
		t.Fatal(err)
	}
	if dismissed {
		t.Error("fresh store should have no dismissals")
	}

	if err := s.Dismiss("tasks", "i1"); err != nil {
		t.Fatalf("Dismiss failed: %v", err)
	}

	dismissed, err = s.IsDismissed("tasks", "i1")
	if err != nil {
		t.Fatal(err)
	}
	if !dismissed {
		t.Error("dismissal should persist")
	}
}

func TestDismiss_Idempotent(t *testing.T) {
	s := openStore(t)

	if err := s.Dismiss("tasks", "i1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Dismiss("tasks", "i1"); err != nil {
		t.Errorf("re-dismiss should not error: %v", err)
	}
}

func TestDismissals_ScopedByPage(t *testing.T) {
	s := openStore(t)

	if err := s.Dismiss("tasks", "i1"); err != nil {
		t.Fatal(err)
	}

	dismissed, err := s.IsDismissed("meetings", "i1")
	if err != nil {
		t.Fatal(err)
	}
	if dismissed {
		t.Error("dismissal on one page must not hide the insight on another")
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	s := openStore(t)

	if err := s.Dismiss("tasks", "i2"); err != nil {
		t.Fatal(err)
	}

	insights := []model.InsightItem{
		{ID: "i1", Title: "first"},
		{ID: "i2", Title: "second"},
		{ID: "i3", Title: "third"},
	}

	got := s.Filter("tasks", insights)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "i1" || got[1].ID != "i3" {
		t.Errorf("order not preserved: %+v", got)
	}
}

func TestFilter_NothingDismissed(t *testing.T) {
	s := openStore(t)

	insights := []model.InsightItem{{ID: "i1"}, {ID: "i2"}}
	if got := s.Filter("tasks", insights); len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestPrune(t *testing.T) {
	s := openStore(t)

	if err := s.Dismiss("tasks", "old"); err != nil {
		t.Fatal(err)
	}

	// Backdate the row past the cutoff.
	if _, err := s.db.Exec(
		"UPDATE dismissed_insights SET dismissed_at = ? WHERE insight_id = 'old'",
		time.Now().Add(-48*time.Hour).Unix(),
	); err != nil {
		t.Fatal(err)
	}
	if err := s.Dismiss("tasks", "fresh"); err != nil {
		t.Fatal(err)
	}

	removed, err := s.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	dismissed, err := s.IsDismissed("tasks", "fresh")
	if err != nil {
		t.Fatal(err)
	}
	if !dismissed {
		t.Error("fresh dismissal must survive pruning")
	}
}

func TestReopen_KeepsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Dismiss("budget", "i9"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	dismissed, err := s2.IsDismissed("budget", "i9")
	if err != nil {
		t.Fatal(err)
	}
	if !dismissed {
		t.Error("dismissal must survive reopen")
	}
}
