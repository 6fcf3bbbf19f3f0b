// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const translationColumns = `id, entity_type, entity_id, language, title, slug, summary, body, blocks,
created_at, updated_at`

func scanTranslation(row interface{ Scan(...any) error }) (Translation, error) {
	var t Translation
	err := row.Scan(
		&t.ID, &t.EntityType, &t.EntityID, &t.Language, &t.Title, &t.Slug,
		&t.Summary, &t.Body, &t.Blocks, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// UpsertTranslationParams holds the fields for UpsertTranslation.
type UpsertTranslationParams struct {
	ID         string
	EntityType string
	EntityID   string
	Language   string
	Title      string
	Slug       string
	Summary    string
	Body       string
	Blocks     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const upsertTranslation = `INSERT INTO translations (` + translationColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (entity_type, entity_id, language) DO UPDATE SET
title = excluded.title,
slug = excluded.slug,
summary = excluded.summary,
body = excluded.body,
blocks = excluded.blocks,
updated_at = excluded.updated_at
RETURNING ` + translationColumns

// UpsertTranslation inserts or replaces the translation row for one
// (entity, language) pair. A slug collision with another row still fails
// on the slug unique index.
func (q *Queries) UpsertTranslation(ctx context.Context, arg UpsertTranslationParams) (Translation, error) {
	row := q.db.QueryRowContext(ctx, upsertTranslation,
		arg.ID, arg.EntityType, arg.EntityID, arg.Language, arg.Title,
		arg.Slug, arg.Summary, arg.Body, arg.Blocks, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanTranslation(row)
}

// GetTranslationParams identifies one translation row.
type GetTranslationParams struct {
	EntityType string
	EntityID   string
	Language   string
}

const getTranslation = `SELECT ` + translationColumns + `
FROM translations WHERE entity_type = ? AND entity_id = ? AND language = ?`

// GetTranslation fetches the translation of an entity in one language.
func (q *Queries) GetTranslation(ctx context.Context, arg GetTranslationParams) (Translation, error) {
	row := q.db.QueryRowContext(ctx, getTranslation, arg.EntityType, arg.EntityID, arg.Language)
	return scanTranslation(row)
}

const getTranslationBySlug = `SELECT ` + translationColumns + ` FROM translations WHERE slug = ?`

// GetTranslationBySlug fetches a translation row by its slug.
func (q *Queries) GetTranslationBySlug(ctx context.Context, slug string) (Translation, error) {
	return scanTranslation(q.db.QueryRowContext(ctx, getTranslationBySlug, slug))
}

// ListTranslationsForEntityParams identifies an entity.
type ListTranslationsForEntityParams struct {
	EntityType string
	EntityID   string
}

const listTranslationsForEntity = `SELECT ` + translationColumns + `
FROM translations WHERE entity_type = ? AND entity_id = ? ORDER BY language`

// ListTranslationsForEntity lists every translation row of an entity.
func (q *Queries) ListTranslationsForEntity(ctx context.Context, arg ListTranslationsForEntityParams) ([]Translation, error) {
	rows, err := q.db.QueryContext(ctx, listTranslationsForEntity, arg.EntityType, arg.EntityID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Translation
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// DeleteTranslationsForEntityParams identifies an entity.
type DeleteTranslationsForEntityParams struct {
	EntityType string
	EntityID   string
}

const deleteTranslationsForEntity = `DELETE FROM translations WHERE entity_type = ? AND entity_id = ?`

// DeleteTranslationsForEntity removes every translation row of an entity.
func (q *Queries) DeleteTranslationsForEntity(ctx context.Context, arg DeleteTranslationsForEntityParams) error {
	_, err := q.db.ExecContext(ctx, deleteTranslationsForEntity, arg.EntityType, arg.EntityID)
	return err
}

const countTranslationSlug = `SELECT COUNT(*) FROM translations WHERE slug = ?`

// CountTranslationSlug counts translation rows holding the slug.
func (q *Queries) CountTranslationSlug(ctx context.Context, slug string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countTranslationSlug, slug).Scan(&n)
	return n, err
}

// CountTranslationSlugExcludingParams holds the fields for CountTranslationSlugExcluding.
type CountTranslationSlugExcludingParams struct {
	Slug       string
	EntityType string
	EntityID   string
	Language   string
}

const countTranslationSlugExcluding = `SELECT COUNT(*) FROM translations
WHERE slug = ? AND NOT (entity_type = ? AND entity_id = ? AND language = ?)`

// CountTranslationSlugExcluding counts translation rows holding the slug,
// ignoring the row being updated.
func (q *Queries) CountTranslationSlugExcluding(ctx context.Context, arg CountTranslationSlugExcludingParams) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countTranslationSlugExcluding,
		arg.Slug, arg.EntityType, arg.EntityID, arg.Language).Scan(&n)
	return n, err
}
