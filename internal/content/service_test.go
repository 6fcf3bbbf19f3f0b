// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/traveledu/tcms-go/internal/store"
)

// testService creates a service over a temporary database with migrations
// applied and one author account.
func testService(t *testing.T) (*Service, int64, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "tcms-content-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	authorID := createTestUser(t, db)

	cleanup := func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
	return NewService(db, nil), authorID, cleanup
}

func createTestUser(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	now := time.Now()
	u, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        "editor@example.com",
		PasswordHash: "x",
		Role:         "editor",
		Name:         "Editor",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return u.ID
}

func TestSlugConflictAtPersistTime(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	// Two inserts with the same slug model the losing side of the
	// check-then-write race: the pre-check holds no lock, so the UNIQUE
	// index is the backstop.
	now := time.Now()
	base := store.CreateProgramParams{
		ID:       "prog-race-1",
		Type:     "study_tour",
		Title:    "Race One",
		Slug:     "race-slug",
		AuthorID: authorID,
		Status:   "draft",
		Gallery:  "[]", Highlights: "[]", Itinerary: "[]", Requirements: "[]", Sessions: "[]",
		CreatedAt: now, UpdatedAt: now,
	}
	if _, err := svc.Queries().CreateProgram(ctx, base); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	loser := base
	loser.ID = "prog-race-2"
	_, err := svc.Queries().CreateProgram(ctx, loser)
	if err == nil {
		t.Fatal("second insert with duplicate slug should fail")
	}

	translated := TranslateUniqueViolation(err)
	if !errors.Is(translated, ErrSlugConflict) {
		t.Fatalf("TranslateUniqueViolation(%v) = %v, want ErrSlugConflict", err, translated)
	}
}
