// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const subscriberColumns = `id, email, language, subscribed_at, unsubscribed_at`

func scanSubscriber(row interface{ Scan(...any) error }) (Subscriber, error) {
	var s Subscriber
	err := row.Scan(&s.ID, &s.Email, &s.Language, &s.SubscribedAt, &s.UnsubscribedAt)
	return s, err
}

// UpsertSubscriberParams holds the fields for UpsertSubscriber.
type UpsertSubscriberParams struct {
	ID           string
	Email        string
	Language     string
	SubscribedAt time.Time
}

const upsertSubscriber = `INSERT INTO subscribers (` + subscriberColumns + `)
VALUES (?, ?, ?, ?, NULL)
ON CONFLICT (email) DO UPDATE SET
language = excluded.language,
subscribed_at = excluded.subscribed_at,
unsubscribed_at = NULL
RETURNING ` + subscriberColumns

// UpsertSubscriber subscribes an address, re-activating it if it had
// unsubscribed before.
func (q *Queries) UpsertSubscriber(ctx context.Context, arg UpsertSubscriberParams) (Subscriber, error) {
	row := q.db.QueryRowContext(ctx, upsertSubscriber,
		arg.ID, arg.Email, arg.Language, arg.SubscribedAt)
	return scanSubscriber(row)
}

const getSubscriberByEmail = `SELECT ` + subscriberColumns + ` FROM subscribers WHERE email = ?`

// GetSubscriberByEmail fetches a subscriber by email.
func (q *Queries) GetSubscriberByEmail(ctx context.Context, email string) (Subscriber, error) {
	return scanSubscriber(q.db.QueryRowContext(ctx, getSubscriberByEmail, email))
}

// ListSubscribersParams holds pagination.
type ListSubscribersParams struct {
	Limit  int64
	Offset int64
}

const listSubscribers = `SELECT ` + subscriberColumns + `
FROM subscribers ORDER BY subscribed_at DESC LIMIT ? OFFSET ?`

// ListSubscribers lists subscribers newest-first.
func (q *Queries) ListSubscribers(ctx context.Context, arg ListSubscribersParams) ([]Subscriber, error) {
	rows, err := q.db.QueryContext(ctx, listSubscribers, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Subscriber
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

const listActiveSubscribers = `SELECT ` + subscriberColumns + `
FROM subscribers WHERE unsubscribed_at IS NULL ORDER BY subscribed_at DESC`

// ListActiveSubscribers lists subscribers that have not unsubscribed (CSV export).
func (q *Queries) ListActiveSubscribers(ctx context.Context) ([]Subscriber, error) {
	rows, err := q.db.QueryContext(ctx, listActiveSubscribers)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Subscriber
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

const countSubscribers = `SELECT COUNT(*) FROM subscribers`

// CountSubscribers counts all subscribers.
func (q *Queries) CountSubscribers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countSubscribers).Scan(&n)
	return n, err
}

// UnsubscribeParams holds the fields for Unsubscribe.
type UnsubscribeParams struct {
	Email          string
	UnsubscribedAt time.Time
}

const unsubscribe = `UPDATE subscribers SET unsubscribed_at = COALESCE(unsubscribed_at, ?)
WHERE email = ?`

// Unsubscribe marks a subscriber as unsubscribed, keeping the first
// unsubscribe time on repeat requests.
func (q *Queries) Unsubscribe(ctx context.Context, arg UnsubscribeParams) error {
	_, err := q.db.ExecContext(ctx, unsubscribe, arg.UnsubscribedAt, arg.Email)
	return err
}
