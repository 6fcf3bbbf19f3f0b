// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const partnerColumns = `id, name, url, logo_media_id, position, created_at, updated_at`

func scanPartner(row interface{ Scan(...any) error }) (Partner, error) {
	var p Partner
	err := row.Scan(&p.ID, &p.Name, &p.Url, &p.LogoMediaID, &p.Position, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreatePartnerParams holds the fields for CreatePartner.
type CreatePartnerParams struct {
	ID          string
	Name        string
	Url         string
	LogoMediaID sql.NullString
	Position    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const createPartner = `INSERT INTO partners (` + partnerColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + partnerColumns

// CreatePartner inserts a partner entry.
func (q *Queries) CreatePartner(ctx context.Context, arg CreatePartnerParams) (Partner, error) {
	row := q.db.QueryRowContext(ctx, createPartner,
		arg.ID, arg.Name, arg.Url, arg.LogoMediaID, arg.Position, arg.CreatedAt, arg.UpdatedAt)
	return scanPartner(row)
}

const getPartnerByID = `SELECT ` + partnerColumns + ` FROM partners WHERE id = ?`

// GetPartnerByID fetches a partner by id.
func (q *Queries) GetPartnerByID(ctx context.Context, id string) (Partner, error) {
	return scanPartner(q.db.QueryRowContext(ctx, getPartnerByID, id))
}

const listPartners = `SELECT ` + partnerColumns + ` FROM partners ORDER BY position, created_at`

// ListPartners lists partners in display order.
func (q *Queries) ListPartners(ctx context.Context) ([]Partner, error) {
	rows, err := q.db.QueryContext(ctx, listPartners)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Partner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// UpdatePartnerParams holds the fields for UpdatePartner.
type UpdatePartnerParams struct {
	ID          string
	Name        string
	Url         string
	LogoMediaID sql.NullString
	Position    int64
	UpdatedAt   time.Time
}

const updatePartner = `UPDATE partners SET
name = ?, url = ?, logo_media_id = ?, position = ?, updated_at = ?
WHERE id = ?
RETURNING ` + partnerColumns

// UpdatePartner updates a partner entry.
func (q *Queries) UpdatePartner(ctx context.Context, arg UpdatePartnerParams) (Partner, error) {
	row := q.db.QueryRowContext(ctx, updatePartner,
		arg.Name, arg.Url, arg.LogoMediaID, arg.Position, arg.UpdatedAt, arg.ID)
	return scanPartner(row)
}

const deletePartner = `DELETE FROM partners WHERE id = ?`

// DeletePartner removes a partner entry.
func (q *Queries) DeletePartner(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deletePartner, id)
	return err
}
