// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const testimonialColumns = `id, author_name, author_role, quote, program_type, avatar_media_id,
status, published_at, created_at, updated_at`

func scanTestimonial(row interface{ Scan(...any) error }) (Testimonial, error) {
	var t Testimonial
	err := row.Scan(
		&t.ID, &t.AuthorName, &t.AuthorRole, &t.Quote, &t.ProgramType,
		&t.AvatarMediaID, &t.Status, &t.PublishedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (q *Queries) queryTestimonials(ctx context.Context, query string, args ...any) ([]Testimonial, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// CreateTestimonialParams holds the fields for CreateTestimonial.
type CreateTestimonialParams struct {
	ID            string
	AuthorName    string
	AuthorRole    string
	Quote         string
	ProgramType   string
	AvatarMediaID sql.NullString
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const createTestimonial = `INSERT INTO testimonials (` + testimonialColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, NULL, ?, ?)
RETURNING ` + testimonialColumns

// CreateTestimonial inserts a testimonial.
func (q *Queries) CreateTestimonial(ctx context.Context, arg CreateTestimonialParams) (Testimonial, error) {
	row := q.db.QueryRowContext(ctx, createTestimonial,
		arg.ID, arg.AuthorName, arg.AuthorRole, arg.Quote, arg.ProgramType,
		arg.AvatarMediaID, arg.Status, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanTestimonial(row)
}

const getTestimonialByID = `SELECT ` + testimonialColumns + ` FROM testimonials WHERE id = ?`

// GetTestimonialByID fetches a testimonial by id.
func (q *Queries) GetTestimonialByID(ctx context.Context, id string) (Testimonial, error) {
	return scanTestimonial(q.db.QueryRowContext(ctx, getTestimonialByID, id))
}

// ListTestimonialsParams holds pagination.
type ListTestimonialsParams struct {
	Limit  int64
	Offset int64
}

const listTestimonials = `SELECT ` + testimonialColumns + `
FROM testimonials ORDER BY created_at DESC LIMIT ? OFFSET ?`

// ListTestimonials lists testimonials newest-first.
func (q *Queries) ListTestimonials(ctx context.Context, arg ListTestimonialsParams) ([]Testimonial, error) {
	return q.queryTestimonials(ctx, listTestimonials, arg.Limit, arg.Offset)
}

// ListTestimonialsByStatusParams holds filter and pagination.
type ListTestimonialsByStatusParams struct {
	Status string
	Limit  int64
	Offset int64
}

const listTestimonialsByStatus = `SELECT ` + testimonialColumns + `
FROM testimonials WHERE status = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`

// ListTestimonialsByStatus lists testimonials with the given status.
func (q *Queries) ListTestimonialsByStatus(ctx context.Context, arg ListTestimonialsByStatusParams) ([]Testimonial, error) {
	return q.queryTestimonials(ctx, listTestimonialsByStatus, arg.Status, arg.Limit, arg.Offset)
}

const countTestimonials = `SELECT COUNT(*) FROM testimonials`

// CountTestimonials counts all testimonials.
func (q *Queries) CountTestimonials(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countTestimonials).Scan(&n)
	return n, err
}

const countTestimonialsByStatus = `SELECT COUNT(*) FROM testimonials WHERE status = ?`

// CountTestimonialsByStatus counts testimonials with the given status.
func (q *Queries) CountTestimonialsByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countTestimonialsByStatus, status).Scan(&n)
	return n, err
}

// UpdateTestimonialParams holds the fields for UpdateTestimonial.
type UpdateTestimonialParams struct {
	ID            string
	AuthorName    string
	AuthorRole    string
	Quote         string
	ProgramType   string
	AvatarMediaID sql.NullString
	Status        string
	UpdatedAt     time.Time
}

const updateTestimonial = `UPDATE testimonials SET
author_name = ?, author_role = ?, quote = ?, program_type = ?,
avatar_media_id = ?, status = ?, updated_at = ?
WHERE id = ?
RETURNING ` + testimonialColumns

// UpdateTestimonial updates a testimonial.
func (q *Queries) UpdateTestimonial(ctx context.Context, arg UpdateTestimonialParams) (Testimonial, error) {
	row := q.db.QueryRowContext(ctx, updateTestimonial,
		arg.AuthorName, arg.AuthorRole, arg.Quote, arg.ProgramType,
		arg.AvatarMediaID, arg.Status, arg.UpdatedAt, arg.ID,
	)
	return scanTestimonial(row)
}

// PublishTestimonialParams holds the fields for PublishTestimonial.
type PublishTestimonialParams struct {
	ID          string
	PublishedAt time.Time
	UpdatedAt   time.Time
}

const publishTestimonial = `UPDATE testimonials SET
status = 'published',
published_at = COALESCE(published_at, ?),
updated_at = ?
WHERE id = ?
RETURNING ` + testimonialColumns

// PublishTestimonial transitions a testimonial to published.
func (q *Queries) PublishTestimonial(ctx context.Context, arg PublishTestimonialParams) (Testimonial, error) {
	row := q.db.QueryRowContext(ctx, publishTestimonial, arg.PublishedAt, arg.UpdatedAt, arg.ID)
	return scanTestimonial(row)
}

const deleteTestimonial = `DELETE FROM testimonials WHERE id = ?`

// DeleteTestimonial removes a testimonial.
func (q *Queries) DeleteTestimonial(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteTestimonial, id)
	return err
}
