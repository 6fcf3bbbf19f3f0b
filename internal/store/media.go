// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const mediaColumns = `id, filename, mime_type, size, width, height, alt, uploaded_by,
created_at, updated_at`

func scanMedia(row interface{ Scan(...any) error }) (Media, error) {
	var m Media
	err := row.Scan(
		&m.ID, &m.Filename, &m.MimeType, &m.Size, &m.Width, &m.Height,
		&m.Alt, &m.UploadedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// CreateMediaParams holds the fields for CreateMedia.
type CreateMediaParams struct {
	ID         string
	Filename   string
	MimeType   string
	Size       int64
	Width      sql.NullInt64
	Height     sql.NullInt64
	Alt        string
	UploadedBy int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const createMedia = `INSERT INTO media (` + mediaColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + mediaColumns

// CreateMedia records an uploaded file.
func (q *Queries) CreateMedia(ctx context.Context, arg CreateMediaParams) (Media, error) {
	row := q.db.QueryRowContext(ctx, createMedia,
		arg.ID, arg.Filename, arg.MimeType, arg.Size, arg.Width, arg.Height,
		arg.Alt, arg.UploadedBy, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanMedia(row)
}

const getMediaByID = `SELECT ` + mediaColumns + ` FROM media WHERE id = ?`

// GetMediaByID fetches a media record by id.
func (q *Queries) GetMediaByID(ctx context.Context, id string) (Media, error) {
	return scanMedia(q.db.QueryRowContext(ctx, getMediaByID, id))
}

// ListMediaParams holds pagination.
type ListMediaParams struct {
	Limit  int64
	Offset int64
}

const listMedia = `SELECT ` + mediaColumns + `
FROM media ORDER BY created_at DESC LIMIT ? OFFSET ?`

// ListMedia lists media records newest-first.
func (q *Queries) ListMedia(ctx context.Context, arg ListMediaParams) ([]Media, error) {
	rows, err := q.db.QueryContext(ctx, listMedia, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const listAllMedia = `SELECT ` + mediaColumns + ` FROM media`

// ListAllMedia lists every media record (health scan).
func (q *Queries) ListAllMedia(ctx context.Context) ([]Media, error) {
	rows, err := q.db.QueryContext(ctx, listAllMedia)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const countMedia = `SELECT COUNT(*) FROM media`

// CountMedia counts all media records.
func (q *Queries) CountMedia(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countMedia).Scan(&n)
	return n, err
}

// UpdateMediaAltParams holds the fields for UpdateMediaAlt.
type UpdateMediaAltParams struct {
	ID        string
	Alt       string
	UpdatedAt time.Time
}

const updateMediaAlt = `UPDATE media SET alt = ?, updated_at = ? WHERE id = ?
RETURNING ` + mediaColumns

// UpdateMediaAlt updates the alt text of a media record.
func (q *Queries) UpdateMediaAlt(ctx context.Context, arg UpdateMediaAltParams) (Media, error) {
	return scanMedia(q.db.QueryRowContext(ctx, updateMediaAlt, arg.Alt, arg.UpdatedAt, arg.ID))
}

const deleteMedia = `DELETE FROM media WHERE id = ?`

// DeleteMedia removes a media record. Columns referencing it are set to
// NULL by the schema's ON DELETE SET NULL actions.
func (q *Queries) DeleteMedia(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteMedia, id)
	return err
}

const mediaVariantColumns = `id, media_id, type, width, height, size, created_at`

// CreateMediaVariantParams holds the fields for CreateMediaVariant.
type CreateMediaVariantParams struct {
	MediaID   string
	Type      string
	Width     int64
	Height    int64
	Size      int64
	CreatedAt time.Time
}

const createMediaVariant = `INSERT INTO media_variants (media_id, type, width, height, size, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + mediaVariantColumns

// CreateMediaVariant records a derived rendition of an image.
func (q *Queries) CreateMediaVariant(ctx context.Context, arg CreateMediaVariantParams) (MediaVariant, error) {
	var v MediaVariant
	err := q.db.QueryRowContext(ctx, createMediaVariant,
		arg.MediaID, arg.Type, arg.Width, arg.Height, arg.Size, arg.CreatedAt,
	).Scan(&v.ID, &v.MediaID, &v.Type, &v.Width, &v.Height, &v.Size, &v.CreatedAt)
	return v, err
}

const listMediaVariants = `SELECT ` + mediaVariantColumns + `
FROM media_variants WHERE media_id = ? ORDER BY width`

// ListMediaVariants lists the variants of one media record.
func (q *Queries) ListMediaVariants(ctx context.Context, mediaID string) ([]MediaVariant, error) {
	rows, err := q.db.QueryContext(ctx, listMediaVariants, mediaID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []MediaVariant
	for rows.Next() {
		var v MediaVariant
		if err := rows.Scan(&v.ID, &v.MediaID, &v.Type, &v.Width, &v.Height, &v.Size, &v.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

const deleteMediaVariants = `DELETE FROM media_variants WHERE media_id = ?`

// DeleteMediaVariants removes every variant of one media record.
func (q *Queries) DeleteMediaVariants(ctx context.Context, mediaID string) error {
	_, err := q.db.ExecContext(ctx, deleteMediaVariants, mediaID)
	return err
}
