// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/traveledu/tcms-go/internal/content"
	"github.com/traveledu/tcms-go/internal/media"
	"github.com/traveledu/tcms-go/internal/model"
	"github.com/traveledu/tcms-go/internal/store"
)

func testScheduler(t *testing.T) (*Scheduler, *content.Service, int64) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "tcms-scheduler-test-*.db")
	if err != nil {
		t.Fatalf("creating temp db: %v", err)
	}
	f.Close()

	db, err := store.NewDB(f.Name())
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}

	now := time.Now()
	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
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

	contentSvc := content.NewService(db, nil)
	mediaSvc := media.NewService(db, t.TempDir())
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	return New(db, contentSvc, mediaSvc, nil, logger), contentSvc, user.ID
}

func TestPublishDue(t *testing.T) {
	s, contentSvc, authorID := testScheduler(t)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	due, err := contentSvc.CreateProgram(ctx, authorID, content.ProgramInput{
		Type: model.ProgramTypeStudyTour, Title: "Due Tour", Summary: "s", Body: "b",
		ScheduledAt: &past,
	})
	if err != nil {
		t.Fatalf("creating due program: %v", err)
	}
	notYet, err := contentSvc.CreateProgram(ctx, authorID, content.ProgramInput{
		Type: model.ProgramTypeStudyTour, Title: "Future Tour", Summary: "s", Body: "b",
		ScheduledAt: &future,
	})
	if err != nil {
		t.Fatalf("creating future program: %v", err)
	}
	duePost, err := contentSvc.CreatePost(ctx, authorID, content.PostInput{
		Title: "Due Post", Excerpt: "e", Body: "b", ScheduledAt: &past,
	})
	if err != nil {
		t.Fatalf("creating due post: %v", err)
	}

	if err := s.PublishDue(ctx); err != nil {
		t.Fatalf("PublishDue: %v", err)
	}

	got, err := contentSvc.GetProgram(ctx, due.ID, content.BaseLanguage)
	if err != nil {
		t.Fatalf("reloading due program: %v", err)
	}
	if got.Status != model.StatusPublished || got.PublishedAt == nil {
		t.Fatalf("due program = %s/%v, want published", got.Status, got.PublishedAt)
	}

	still, err := contentSvc.GetProgram(ctx, notYet.ID, content.BaseLanguage)
	if err != nil {
		t.Fatalf("reloading future program: %v", err)
	}
	if still.Status != model.StatusDraft {
		t.Fatalf("future program status = %s, want draft", still.Status)
	}

	gotPost, err := contentSvc.GetPost(ctx, duePost.ID, content.BaseLanguage)
	if err != nil {
		t.Fatalf("reloading due post: %v", err)
	}
	if gotPost.Status != model.StatusPublished {
		t.Fatalf("due post status = %s, want published", gotPost.Status)
	}
}

func TestPublishDueIsIdempotent(t *testing.T) {
	s, contentSvc, authorID := testScheduler(t)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	p, err := contentSvc.CreateProgram(ctx, authorID, content.ProgramInput{
		Type: model.ProgramTypeSummerCamp, Title: "Once Published", Summary: "s", Body: "b",
		ScheduledAt: &past,
	})
	if err != nil {
		t.Fatalf("creating program: %v", err)
	}

	if err := s.PublishDue(ctx); err != nil {
		t.Fatalf("first PublishDue: %v", err)
	}
	first, err := contentSvc.GetProgram(ctx, p.ID, content.BaseLanguage)
	if err != nil {
		t.Fatalf("reloading program: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	if err := s.PublishDue(ctx); err != nil {
		t.Fatalf("second PublishDue: %v", err)
	}
	second, err := contentSvc.GetProgram(ctx, p.ID, content.BaseLanguage)
	if err != nil {
		t.Fatalf("reloading program again: %v", err)
	}
	if first.PublishedAt == nil || second.PublishedAt == nil || !first.PublishedAt.Equal(*second.PublishedAt) {
		t.Fatalf("published_at changed across runs: %v vs %v", first.PublishedAt, second.PublishedAt)
	}
}

func TestStartAndStop(t *testing.T) {
	s, _, _ := testScheduler(t)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}
