// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const languageColumns = `id, code, name, native_name, is_default, is_active, position, created_at, updated_at`

func scanLanguage(row interface{ Scan(...any) error }) (Language, error) {
	var l Language
	err := row.Scan(
		&l.ID, &l.Code, &l.Name, &l.NativeName, &l.IsDefault, &l.IsActive,
		&l.Position, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// CreateLanguageParams holds the fields for CreateLanguage.
type CreateLanguageParams struct {
	Code       string
	Name       string
	NativeName string
	IsDefault  int64
	IsActive   int64
	Position   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const createLanguage = `INSERT INTO languages (code, name, native_name, is_default, is_active, position, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + languageColumns

// CreateLanguage inserts a content language.
func (q *Queries) CreateLanguage(ctx context.Context, arg CreateLanguageParams) (Language, error) {
	row := q.db.QueryRowContext(ctx, createLanguage,
		arg.Code, arg.Name, arg.NativeName, arg.IsDefault, arg.IsActive,
		arg.Position, arg.CreatedAt, arg.UpdatedAt)
	return scanLanguage(row)
}

const getLanguageByCode = `SELECT ` + languageColumns + ` FROM languages WHERE code = ?`

// GetLanguageByCode fetches a language by its code.
func (q *Queries) GetLanguageByCode(ctx context.Context, code string) (Language, error) {
	return scanLanguage(q.db.QueryRowContext(ctx, getLanguageByCode, code))
}

const listActiveLanguages = `SELECT ` + languageColumns + `
FROM languages WHERE is_active = 1 ORDER BY position, code`

// ListActiveLanguages lists active languages in display order.
func (q *Queries) ListActiveLanguages(ctx context.Context) ([]Language, error) {
	rows, err := q.db.QueryContext(ctx, listActiveLanguages)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Language
	for rows.Next() {
		l, err := scanLanguage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

const getDefaultLanguage = `SELECT ` + languageColumns + ` FROM languages WHERE is_default = 1 LIMIT 1`

// GetDefaultLanguage returns the base content language.
func (q *Queries) GetDefaultLanguage(ctx context.Context) (Language, error) {
	return scanLanguage(q.db.QueryRowContext(ctx, getDefaultLanguage))
}
