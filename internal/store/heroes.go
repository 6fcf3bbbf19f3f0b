// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const heroBannerColumns = `id, headline, subheadline, cta_label, cta_url, media_id, position,
status, published_at, created_at, updated_at`

func scanHeroBanner(row interface{ Scan(...any) error }) (HeroBanner, error) {
	var h HeroBanner
	err := row.Scan(
		&h.ID, &h.Headline, &h.Subheadline, &h.CtaLabel, &h.CtaUrl,
		&h.MediaID, &h.Position, &h.Status, &h.PublishedAt,
		&h.CreatedAt, &h.UpdatedAt,
	)
	return h, err
}

func (q *Queries) queryHeroBanners(ctx context.Context, query string, args ...any) ([]HeroBanner, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []HeroBanner
	for rows.Next() {
		h, err := scanHeroBanner(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	return items, rows.Err()
}

// CreateHeroBannerParams holds the fields for CreateHeroBanner.
type CreateHeroBannerParams struct {
	ID          string
	Headline    string
	Subheadline string
	CtaLabel    string
	CtaUrl      string
	MediaID     sql.NullString
	Position    int64
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const createHeroBanner = `INSERT INTO hero_banners (` + heroBannerColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL, ?, ?)
RETURNING ` + heroBannerColumns

// CreateHeroBanner inserts a hero banner.
func (q *Queries) CreateHeroBanner(ctx context.Context, arg CreateHeroBannerParams) (HeroBanner, error) {
	row := q.db.QueryRowContext(ctx, createHeroBanner,
		arg.ID, arg.Headline, arg.Subheadline, arg.CtaLabel, arg.CtaUrl,
		arg.MediaID, arg.Position, arg.Status, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanHeroBanner(row)
}

const getHeroBannerByID = `SELECT ` + heroBannerColumns + ` FROM hero_banners WHERE id = ?`

// GetHeroBannerByID fetches a hero banner by id.
func (q *Queries) GetHeroBannerByID(ctx context.Context, id string) (HeroBanner, error) {
	return scanHeroBanner(q.db.QueryRowContext(ctx, getHeroBannerByID, id))
}

// ListHeroBannersParams holds pagination.
type ListHeroBannersParams struct {
	Limit  int64
	Offset int64
}

const listHeroBanners = `SELECT ` + heroBannerColumns + `
FROM hero_banners ORDER BY position, created_at LIMIT ? OFFSET ?`

// ListHeroBanners lists hero banners in display order.
func (q *Queries) ListHeroBanners(ctx context.Context, arg ListHeroBannersParams) ([]HeroBanner, error) {
	return q.queryHeroBanners(ctx, listHeroBanners, arg.Limit, arg.Offset)
}

// ListHeroBannersByStatusParams holds filter and pagination.
type ListHeroBannersByStatusParams struct {
	Status string
	Limit  int64
	Offset int64
}

const listHeroBannersByStatus = `SELECT ` + heroBannerColumns + `
FROM hero_banners WHERE status = ? ORDER BY position, created_at LIMIT ? OFFSET ?`

// ListHeroBannersByStatus lists hero banners with the given status.
func (q *Queries) ListHeroBannersByStatus(ctx context.Context, arg ListHeroBannersByStatusParams) ([]HeroBanner, error) {
	return q.queryHeroBanners(ctx, listHeroBannersByStatus, arg.Status, arg.Limit, arg.Offset)
}

const countHeroBanners = `SELECT COUNT(*) FROM hero_banners`

// CountHeroBanners counts all hero banners.
func (q *Queries) CountHeroBanners(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countHeroBanners).Scan(&n)
	return n, err
}

const countHeroBannersByStatus = `SELECT COUNT(*) FROM hero_banners WHERE status = ?`

// CountHeroBannersByStatus counts hero banners with the given status.
func (q *Queries) CountHeroBannersByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countHeroBannersByStatus, status).Scan(&n)
	return n, err
}

// UpdateHeroBannerParams holds the fields for UpdateHeroBanner.
type UpdateHeroBannerParams struct {
	ID          string
	Headline    string
	Subheadline string
	CtaLabel    string
	CtaUrl      string
	MediaID     sql.NullString
	Position    int64
	Status      string
	UpdatedAt   time.Time
}

const updateHeroBanner = `UPDATE hero_banners SET
headline = ?, subheadline = ?, cta_label = ?, cta_url = ?, media_id = ?,
position = ?, status = ?, updated_at = ?
WHERE id = ?
RETURNING ` + heroBannerColumns

// UpdateHeroBanner updates a hero banner.
func (q *Queries) UpdateHeroBanner(ctx context.Context, arg UpdateHeroBannerParams) (HeroBanner, error) {
	row := q.db.QueryRowContext(ctx, updateHeroBanner,
		arg.Headline, arg.Subheadline, arg.CtaLabel, arg.CtaUrl, arg.MediaID,
		arg.Position, arg.Status, arg.UpdatedAt, arg.ID,
	)
	return scanHeroBanner(row)
}

// PublishHeroBannerParams holds the fields for PublishHeroBanner.
type PublishHeroBannerParams struct {
	ID          string
	PublishedAt time.Time
	UpdatedAt   time.Time
}

const publishHeroBanner = `UPDATE hero_banners SET
status = 'published',
published_at = COALESCE(published_at, ?),
updated_at = ?
WHERE id = ?
RETURNING ` + heroBannerColumns

// PublishHeroBanner transitions a hero banner to published.
func (q *Queries) PublishHeroBanner(ctx context.Context, arg PublishHeroBannerParams) (HeroBanner, error) {
	row := q.db.QueryRowContext(ctx, publishHeroBanner, arg.PublishedAt, arg.UpdatedAt, arg.ID)
	return scanHeroBanner(row)
}

const deleteHeroBanner = `DELETE FROM hero_banners WHERE id = ?`

// DeleteHeroBanner removes a hero banner.
func (q *Queries) DeleteHeroBanner(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteHeroBanner, id)
	return err
}
