// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package migrate

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveledu/tcms-go/internal/content"
	"github.com/traveledu/tcms-go/internal/model"
	"github.com/traveledu/tcms-go/internal/store"
)

type stubSource struct {
	programs []LegacyProgram
	posts    []LegacyPost
}

func (s *stubSource) Programs(context.Context) ([]LegacyProgram, error) { return s.programs, nil }
func (s *stubSource) Posts(context.Context) ([]LegacyPost, error)       { return s.posts, nil }

func testImporter(t *testing.T) (*Importer, *content.Service) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "tcms-migrate-test-*.db")
	require.NoError(t, err)
	f.Close()

	db, err := store.NewDB(f.Name())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, store.Migrate(db))

	now := time.Now()
	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        "importer@example.com",
		PasswordHash: "x",
		Role:         "admin",
		Name:         "Importer",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	contentSvc := content.NewService(db, nil)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewImporter(contentSvc, user.ID, logger), contentSvc
}

func TestRunImportsThroughSlugPath(t *testing.T) {
	im, contentSvc := testImporter(t)
	ctx := context.Background()

	src := &stubSource{
		programs: []LegacyProgram{
			{ID: 1, Category: "summer", Title: "Singapore Coding Camp", Published: true,
				Summary: sql.NullString{String: "s", Valid: true},
				Body:    sql.NullString{String: "b", Valid: true}},
			{ID: 2, Category: "summer_camp", Title: "Singapore Coding Camp",
				Summary: sql.NullString{String: "s", Valid: true},
				Body:    sql.NullString{String: "b", Valid: true}},
			{ID: 3, Category: "cruise", Title: "Unknown Category"},
		},
		posts: []LegacyPost{
			{ID: 10, Title: "Safety Guide", Published: true,
				Excerpt: sql.NullString{String: "e", Valid: true},
				Body:    sql.NullString{String: "b", Valid: true}},
		},
	}

	res, err := im.Run(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 2, res.ProgramsImported)
	assert.Equal(t, 1, res.PostsImported)
	assert.Equal(t, 1, res.Skipped)

	// Duplicate titles go through slug dedup, not a UNIQUE failure.
	rows, _, err := contentSvc.ListPrograms(ctx, content.ProgramListOptions{Language: content.BaseLanguage, Limit: 10})
	require.NoError(t, err)

	slugs := map[string]bool{}
	for _, p := range rows {
		slugs[p.Slug] = true
	}
	assert.True(t, slugs["singapore-coding-camp"], "slugs = %v", slugs)
	assert.True(t, slugs["singapore-coding-camp-1"], "slugs = %v", slugs)

	// Published flag carried over.
	for _, p := range rows {
		if p.Slug != "singapore-coding-camp" {
			continue
		}
		assert.Equal(t, model.StatusPublished, p.Status)
		assert.NotNil(t, p.PublishedAt)
	}
}
