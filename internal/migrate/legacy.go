// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

// Package migrate imports content from the predecessor site's MySQL
// database. It is a one-shot tool invoked with the -import-legacy flag;
// records go through the regular content service so slugs are derived and
// deduplicated the same way as editor-created content.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/traveledu/tcms-go/internal/content"
	"github.com/traveledu/tcms-go/internal/model"
)

// LegacyProgram is a row of the old site's programs table.
type LegacyProgram struct {
	ID          int64
	Category    string
	Title       string
	Summary     sql.NullString
	Body        sql.NullString
	Published   bool
	PublishedAt sql.NullTime
}

// LegacyPost is a row of the old site's articles table.
type LegacyPost struct {
	ID          int64
	Title       string
	Excerpt     sql.NullString
	Body        sql.NullString
	Published   bool
	PublishedAt sql.NullTime
}

// Reader reads the legacy MySQL database.
type Reader struct {
	db *sql.DB
}

// NewReader opens and pings the legacy database.
func NewReader(dsn string) (*Reader, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening legacy database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to legacy database: %w", err)
	}
	return &Reader{db: db}, nil
}

// Close closes the legacy connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

// Programs reads every row of the legacy programs table.
func (r *Reader) Programs(ctx context.Context) ([]LegacyProgram, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, title, summary, body, published, published_at FROM programs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying legacy programs: %w", err)
	}
	defer rows.Close()

	var out []LegacyProgram
	for rows.Next() {
		var p LegacyProgram
		if err := rows.Scan(&p.ID, &p.Category, &p.Title, &p.Summary, &p.Body, &p.Published, &p.PublishedAt); err != nil {
			return nil, fmt.Errorf("scanning legacy program: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Posts reads every row of the legacy articles table.
func (r *Reader) Posts(ctx context.Context) ([]LegacyPost, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, excerpt, body, published, published_at FROM articles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying legacy articles: %w", err)
	}
	defer rows.Close()

	var out []LegacyPost
	for rows.Next() {
		var p LegacyPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Body, &p.Published, &p.PublishedAt); err != nil {
			return nil, fmt.Errorf("scanning legacy article: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Source yields legacy rows. Reader implements it over MySQL; tests use a
// stub.
type Source interface {
	Programs(ctx context.Context) ([]LegacyProgram, error)
	Posts(ctx context.Context) ([]LegacyPost, error)
}

// Result summarizes an import run.
type Result struct {
	ProgramsImported int
	PostsImported    int
	Skipped          int
}

// Importer writes legacy rows through the content service.
type Importer struct {
	content  *content.Service
	authorID int64
	logger   *slog.Logger
}

// NewImporter creates an importer attributing records to authorID.
func NewImporter(contentSvc *content.Service, authorID int64, logger *slog.Logger) *Importer {
	return &Importer{content: contentSvc, authorID: authorID, logger: logger}
}

// legacyCategories maps the old site's category labels onto program types.
var legacyCategories = map[string]string{
	"study_tour":  model.ProgramTypeStudyTour,
	"research":    model.ProgramTypeStudyTour,
	"summer":      model.ProgramTypeSummerCamp,
	"summer_camp": model.ProgramTypeSummerCamp,
	"winter":      model.ProgramTypeWinterCamp,
	"winter_camp": model.ProgramTypeWinterCamp,
	"exchange":    model.ProgramTypeExchange,
}

// Run imports everything the reader yields. Rows that fail validation are
// skipped and logged, not fatal; a half-imported catalog is easier to fix
// than a crashed migration.
func (im *Importer) Run(ctx context.Context, src Source) (Result, error) {
	var res Result

	programs, err := src.Programs(ctx)
	if err != nil {
		return res, err
	}
	for _, lp := range programs {
		programType, ok := legacyCategories[lp.Category]
		if !ok {
			im.logger.Warn("skipping legacy program with unknown category",
				"legacy_id", lp.ID, "category", lp.Category)
			res.Skipped++
			continue
		}
		in := content.ProgramInput{
			Type:    programType,
			Title:   lp.Title,
			Summary: lp.Summary.String,
			Body:    lp.Body.String,
		}
		if lp.Published {
			in.Status = model.StatusPublished
		}
		created, err := im.content.CreateProgram(ctx, im.authorID, in)
		if err != nil {
			im.logger.Warn("skipping legacy program", "legacy_id", lp.ID, "error", err)
			res.Skipped++
			continue
		}
		im.logger.Info("imported legacy program",
			"legacy_id", lp.ID, "id", created.ID, "slug", created.Slug)
		res.ProgramsImported++
	}

	posts, err := src.Posts(ctx)
	if err != nil {
		return res, err
	}
	for _, lp := range posts {
		in := content.PostInput{
			Title:   lp.Title,
			Excerpt: lp.Excerpt.String,
			Body:    lp.Body.String,
		}
		if lp.Published {
			in.Status = model.StatusPublished
		}
		created, err := im.content.CreatePost(ctx, im.authorID, in)
		if err != nil {
			im.logger.Warn("skipping legacy article", "legacy_id", lp.ID, "error", err)
			res.Skipped++
			continue
		}
		im.logger.Info("imported legacy article",
			"legacy_id", lp.ID, "id", created.ID, "slug", created.Slug)
		res.PostsImported++
	}

	im.logger.Info("legacy import finished",
		"programs", res.ProgramsImported,
		"posts", res.PostsImported,
		"skipped", res.Skipped,
		"finished_at", time.Now(),
	)
	return res, nil
}
