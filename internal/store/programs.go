// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const programColumns = `id, type, title, slug, summary, body, gallery, highlights, itinerary,
requirements, sessions, location_id, cover_media_id, status, author_id,
published_at, scheduled_at, created_at, updated_at`

func scanProgram(row interface{ Scan(...any) error }) (Program, error) {
	var p Program
	err := row.Scan(
		&p.ID, &p.Type, &p.Title, &p.Slug, &p.Summary, &p.Body, &p.Gallery,
		&p.Highlights, &p.Itinerary, &p.Requirements, &p.Sessions,
		&p.LocationID, &p.CoverMediaID, &p.Status, &p.AuthorID,
		&p.PublishedAt, &p.ScheduledAt, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (q *Queries) queryPrograms(ctx context.Context, query string, args ...any) ([]Program, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// CreateProgramParams holds the fields for CreateProgram.
type CreateProgramParams struct {
	ID           string
	Type         string
	Title        string
	Slug         string
	Summary      string
	Body         string
	Gallery      string
	Highlights   string
	Itinerary    string
	Requirements string
	Sessions     string
	LocationID   sql.NullString
	CoverMediaID sql.NullString
	Status       string
	AuthorID     int64
	ScheduledAt  sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const createProgram = `INSERT INTO programs (` + programColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, ?, ?, ?)
RETURNING ` + programColumns

// CreateProgram inserts a canonical program record.
func (q *Queries) CreateProgram(ctx context.Context, arg CreateProgramParams) (Program, error) {
	row := q.db.QueryRowContext(ctx, createProgram,
		arg.ID, arg.Type, arg.Title, arg.Slug, arg.Summary, arg.Body,
		arg.Gallery, arg.Highlights, arg.Itinerary, arg.Requirements,
		arg.Sessions, arg.LocationID, arg.CoverMediaID, arg.Status,
		arg.AuthorID, arg.ScheduledAt, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanProgram(row)
}

const getProgramByID = `SELECT ` + programColumns + ` FROM programs WHERE id = ?`

// GetProgramByID fetches a program by its id.
func (q *Queries) GetProgramByID(ctx context.Context, id string) (Program, error) {
	return scanProgram(q.db.QueryRowContext(ctx, getProgramByID, id))
}

const getProgramBySlug = `SELECT ` + programColumns + ` FROM programs WHERE slug = ?`

// GetProgramBySlug fetches a program by its canonical slug.
func (q *Queries) GetProgramBySlug(ctx context.Context, slug string) (Program, error) {
	return scanProgram(q.db.QueryRowContext(ctx, getProgramBySlug, slug))
}

const getPublishedProgramBySlug = `SELECT ` + programColumns + `
FROM programs WHERE slug = ? AND status = 'published'`

// GetPublishedProgramBySlug fetches a published program by slug.
func (q *Queries) GetPublishedProgramBySlug(ctx context.Context, slug string) (Program, error) {
	return scanProgram(q.db.QueryRowContext(ctx, getPublishedProgramBySlug, slug))
}

// ListProgramsParams holds pagination for ListPrograms.
type ListProgramsParams struct {
	Limit  int64
	Offset int64
}

const listPrograms = `SELECT ` + programColumns + `
FROM programs ORDER BY created_at DESC LIMIT ? OFFSET ?`

// ListPrograms lists programs newest-first.
func (q *Queries) ListPrograms(ctx context.Context, arg ListProgramsParams) ([]Program, error) {
	return q.queryPrograms(ctx, listPrograms, arg.Limit, arg.Offset)
}

// ListProgramsByStatusParams holds filter and pagination for ListProgramsByStatus.
type ListProgramsByStatusParams struct {
	Status string
	Limit  int64
	Offset int64
}

const listProgramsByStatus = `SELECT ` + programColumns + `
FROM programs WHERE status = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`

// ListProgramsByStatus lists programs with the given status, newest-first.
func (q *Queries) ListProgramsByStatus(ctx context.Context, arg ListProgramsByStatusParams) ([]Program, error) {
	return q.queryPrograms(ctx, listProgramsByStatus, arg.Status, arg.Limit, arg.Offset)
}

// ListPublishedProgramsByTypeParams holds filter and pagination.
type ListPublishedProgramsByTypeParams struct {
	Type   string
	Limit  int64
	Offset int64
}

const listPublishedProgramsByType = `SELECT ` + programColumns + `
FROM programs WHERE status = 'published' AND type = ?
ORDER BY published_at DESC LIMIT ? OFFSET ?`

// ListPublishedProgramsByType lists published programs of one category.
func (q *Queries) ListPublishedProgramsByType(ctx context.Context, arg ListPublishedProgramsByTypeParams) ([]Program, error) {
	return q.queryPrograms(ctx, listPublishedProgramsByType, arg.Type, arg.Limit, arg.Offset)
}

const listProgramsByType = `SELECT ` + programColumns + ` FROM programs WHERE type = ?`

// ListProgramsByType lists every program of one category (repair scan).
func (q *Queries) ListProgramsByType(ctx context.Context, programType string) ([]Program, error) {
	return q.queryPrograms(ctx, listProgramsByType, programType)
}

const countPrograms = `SELECT COUNT(*) FROM programs`

// CountPrograms counts all programs.
func (q *Queries) CountPrograms(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countPrograms).Scan(&n)
	return n, err
}

const countProgramsByStatus = `SELECT COUNT(*) FROM programs WHERE status = ?`

// CountProgramsByStatus counts programs with the given status.
func (q *Queries) CountProgramsByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countProgramsByStatus, status).Scan(&n)
	return n, err
}

const countPublishedProgramsByType = `SELECT COUNT(*) FROM programs WHERE status = 'published' AND type = ?`

// CountPublishedProgramsByType counts published programs of one category.
func (q *Queries) CountPublishedProgramsByType(ctx context.Context, programType string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countPublishedProgramsByType, programType).Scan(&n)
	return n, err
}

// UpdateProgramParams holds the fields for UpdateProgram.
type UpdateProgramParams struct {
	ID           string
	Type         string
	Title        string
	Slug         string
	Summary      string
	Body         string
	Gallery      string
	Highlights   string
	Itinerary    string
	Requirements string
	Sessions     string
	LocationID   sql.NullString
	CoverMediaID sql.NullString
	Status       string
	ScheduledAt  sql.NullTime
	UpdatedAt    time.Time
}

const updateProgram = `UPDATE programs SET
type = ?, title = ?, slug = ?, summary = ?, body = ?, gallery = ?,
highlights = ?, itinerary = ?, requirements = ?, sessions = ?,
location_id = ?, cover_media_id = ?, status = ?, scheduled_at = ?, updated_at = ?
WHERE id = ?
RETURNING ` + programColumns

// UpdateProgram updates a canonical program record. The published_at column
// is managed separately by PublishProgram so re-publishing stays idempotent.
func (q *Queries) UpdateProgram(ctx context.Context, arg UpdateProgramParams) (Program, error) {
	row := q.db.QueryRowContext(ctx, updateProgram,
		arg.Type, arg.Title, arg.Slug, arg.Summary, arg.Body, arg.Gallery,
		arg.Highlights, arg.Itinerary, arg.Requirements, arg.Sessions,
		arg.LocationID, arg.CoverMediaID, arg.Status, arg.ScheduledAt,
		arg.UpdatedAt, arg.ID,
	)
	return scanProgram(row)
}

// PublishProgramParams holds the fields for PublishProgram.
type PublishProgramParams struct {
	ID          string
	PublishedAt time.Time
	UpdatedAt   time.Time
}

const publishProgram = `UPDATE programs SET
status = 'published',
published_at = COALESCE(published_at, ?),
updated_at = ?
WHERE id = ?
RETURNING ` + programColumns

// PublishProgram transitions a program to published. The COALESCE keeps the
// original published_at on re-publish.
func (q *Queries) PublishProgram(ctx context.Context, arg PublishProgramParams) (Program, error) {
	row := q.db.QueryRowContext(ctx, publishProgram, arg.PublishedAt, arg.UpdatedAt, arg.ID)
	return scanProgram(row)
}

const deleteProgram = `DELETE FROM programs WHERE id = ?`

// DeleteProgram removes a program. Translation rows are removed by the caller.
func (q *Queries) DeleteProgram(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteProgram, id)
	return err
}

const countProgramSlug = `SELECT COUNT(*) FROM programs WHERE slug = ?`

// CountProgramSlug counts canonical programs holding the slug.
func (q *Queries) CountProgramSlug(ctx context.Context, slug string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countProgramSlug, slug).Scan(&n)
	return n, err
}

// CountProgramSlugExcludingParams holds the fields for CountProgramSlugExcluding.
type CountProgramSlugExcludingParams struct {
	Slug string
	ID   string
}

const countProgramSlugExcluding = `SELECT COUNT(*) FROM programs WHERE slug = ? AND id != ?`

// CountProgramSlugExcluding counts canonical programs holding the slug,
// ignoring the given program (update-in-place).
func (q *Queries) CountProgramSlugExcluding(ctx context.Context, arg CountProgramSlugExcludingParams) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countProgramSlugExcluding, arg.Slug, arg.ID).Scan(&n)
	return n, err
}

const listDueScheduledPrograms = `SELECT ` + programColumns + `
FROM programs WHERE status = 'draft' AND scheduled_at IS NOT NULL AND scheduled_at <= ?`

// ListDueScheduledPrograms lists drafts whose scheduled publish time arrived.
func (q *Queries) ListDueScheduledPrograms(ctx context.Context, now time.Time) ([]Program, error) {
	return q.queryPrograms(ctx, listDueScheduledPrograms, now)
}
