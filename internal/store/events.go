// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const eventColumns = `id, level, category, message, user_id, ip, url, metadata, created_at`

// CreateEventParams holds the fields for CreateEvent.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Ip        string
	Url       string
	Metadata  string
	CreatedAt time.Time
}

const createEvent = `INSERT INTO events (level, category, message, user_id, ip, url, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// CreateEvent appends an event-log entry.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	_, err := q.db.ExecContext(ctx, createEvent,
		arg.Level, arg.Category, arg.Message, arg.UserID, arg.Ip, arg.Url,
		arg.Metadata, arg.CreatedAt)
	return err
}

// ListEventsParams holds pagination.
type ListEventsParams struct {
	Limit  int64
	Offset int64
}

const listEvents = `SELECT ` + eventColumns + `
FROM events ORDER BY id DESC LIMIT ? OFFSET ?`

// ListEvents lists event-log entries newest-first.
func (q *Queries) ListEvents(ctx context.Context, arg ListEventsParams) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEvents, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID,
			&e.Ip, &e.Url, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

const countEvents = `SELECT COUNT(*) FROM events`

// CountEvents counts all event-log entries.
func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countEvents).Scan(&n)
	return n, err
}

const pruneEvents = `DELETE FROM events WHERE created_at < ?`

// PruneEvents removes entries older than the cutoff and reports how many
// were removed.
func (q *Queries) PruneEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, pruneEvents, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
