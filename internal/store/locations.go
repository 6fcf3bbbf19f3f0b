// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const locationColumns = `id, city, country, created_at, updated_at`

func scanLocation(row interface{ Scan(...any) error }) (Location, error) {
	var l Location
	err := row.Scan(&l.ID, &l.City, &l.Country, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// CreateLocationParams holds the fields for CreateLocation.
type CreateLocationParams struct {
	ID        string
	City      string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const createLocation = `INSERT INTO locations (` + locationColumns + `)
VALUES (?, ?, ?, ?, ?)
RETURNING ` + locationColumns

// CreateLocation inserts a location.
func (q *Queries) CreateLocation(ctx context.Context, arg CreateLocationParams) (Location, error) {
	row := q.db.QueryRowContext(ctx, createLocation,
		arg.ID, arg.City, arg.Country, arg.CreatedAt, arg.UpdatedAt)
	return scanLocation(row)
}

const getLocationByID = `SELECT ` + locationColumns + ` FROM locations WHERE id = ?`

// GetLocationByID fetches a location by id.
func (q *Queries) GetLocationByID(ctx context.Context, id string) (Location, error) {
	return scanLocation(q.db.QueryRowContext(ctx, getLocationByID, id))
}

const listLocations = `SELECT ` + locationColumns + ` FROM locations ORDER BY country, city`

// ListLocations lists every location.
func (q *Queries) ListLocations(ctx context.Context) ([]Location, error) {
	rows, err := q.db.QueryContext(ctx, listLocations)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// UpdateLocationParams holds the fields for UpdateLocation.
type UpdateLocationParams struct {
	ID        string
	City      string
	Country   string
	UpdatedAt time.Time
}

const updateLocation = `UPDATE locations SET city = ?, country = ?, updated_at = ?
WHERE id = ?
RETURNING ` + locationColumns

// UpdateLocation updates a location.
func (q *Queries) UpdateLocation(ctx context.Context, arg UpdateLocationParams) (Location, error) {
	row := q.db.QueryRowContext(ctx, updateLocation, arg.City, arg.Country, arg.UpdatedAt, arg.ID)
	return scanLocation(row)
}

const deleteLocation = `DELETE FROM locations WHERE id = ?`

// DeleteLocation removes a location. Programs referencing it get a NULL
// location_id via the schema's ON DELETE SET NULL.
func (q *Queries) DeleteLocation(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteLocation, id)
	return err
}
