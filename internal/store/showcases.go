// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const showcaseColumns = `id, program_type, program_slug, position, created_at, updated_at`

func scanShowcase(row interface{ Scan(...any) error }) (Showcase, error) {
	var s Showcase
	err := row.Scan(&s.ID, &s.ProgramType, &s.ProgramSlug, &s.Position, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (q *Queries) queryShowcases(ctx context.Context, query string, args ...any) ([]Showcase, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Showcase
	for rows.Next() {
		s, err := scanShowcase(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// CreateShowcaseParams holds the fields for CreateShowcase.
type CreateShowcaseParams struct {
	ID          string
	ProgramType string
	ProgramSlug string
	Position    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const createShowcase = `INSERT INTO showcases (` + showcaseColumns + `)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + showcaseColumns

// CreateShowcase inserts a showcase entry.
func (q *Queries) CreateShowcase(ctx context.Context, arg CreateShowcaseParams) (Showcase, error) {
	row := q.db.QueryRowContext(ctx, createShowcase,
		arg.ID, arg.ProgramType, arg.ProgramSlug, arg.Position, arg.CreatedAt, arg.UpdatedAt)
	return scanShowcase(row)
}

const getShowcaseByID = `SELECT ` + showcaseColumns + ` FROM showcases WHERE id = ?`

// GetShowcaseByID fetches a showcase entry by id.
func (q *Queries) GetShowcaseByID(ctx context.Context, id string) (Showcase, error) {
	return scanShowcase(q.db.QueryRowContext(ctx, getShowcaseByID, id))
}

const listShowcases = `SELECT ` + showcaseColumns + ` FROM showcases ORDER BY position, created_at`

// ListShowcases lists showcase entries in display order.
func (q *Queries) ListShowcases(ctx context.Context) ([]Showcase, error) {
	return q.queryShowcases(ctx, listShowcases)
}

// ListShowcasesByPointerParams identifies showcase rows by the program they reference.
type ListShowcasesByPointerParams struct {
	ProgramType string
	ProgramSlug string
}

const listShowcasesByPointer = `SELECT ` + showcaseColumns + `
FROM showcases WHERE program_type = ? AND program_slug = ?`

// ListShowcasesByPointer lists showcase rows referencing one program pointer.
func (q *Queries) ListShowcasesByPointer(ctx context.Context, arg ListShowcasesByPointerParams) ([]Showcase, error) {
	return q.queryShowcases(ctx, listShowcasesByPointer, arg.ProgramType, arg.ProgramSlug)
}

// UpdateShowcaseParams holds the fields for UpdateShowcase.
type UpdateShowcaseParams struct {
	ID          string
	ProgramType string
	ProgramSlug string
	Position    int64
	UpdatedAt   time.Time
}

const updateShowcase = `UPDATE showcases SET
program_type = ?, program_slug = ?, position = ?, updated_at = ?
WHERE id = ?
RETURNING ` + showcaseColumns

// UpdateShowcase updates a showcase entry.
func (q *Queries) UpdateShowcase(ctx context.Context, arg UpdateShowcaseParams) (Showcase, error) {
	row := q.db.QueryRowContext(ctx, updateShowcase,
		arg.ProgramType, arg.ProgramSlug, arg.Position, arg.UpdatedAt, arg.ID)
	return scanShowcase(row)
}

// RetargetShowcasesParams holds the fields for RetargetShowcases.
type RetargetShowcasesParams struct {
	NewSlug     string
	UpdatedAt   time.Time
	ProgramType string
	OldSlug     string
}

const retargetShowcases = `UPDATE showcases SET program_slug = ?, updated_at = ?
WHERE program_type = ? AND program_slug = ?`

// RetargetShowcases repoints every showcase row from one program slug to
// another and reports how many rows moved.
func (q *Queries) RetargetShowcases(ctx context.Context, arg RetargetShowcasesParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, retargetShowcases,
		arg.NewSlug, arg.UpdatedAt, arg.ProgramType, arg.OldSlug)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteShowcase = `DELETE FROM showcases WHERE id = ?`

// DeleteShowcase removes a showcase entry.
func (q *Queries) DeleteShowcase(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteShowcase, id)
	return err
}
