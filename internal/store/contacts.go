// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const contactColumns = `id, name, email, phone, subject, message, program_slug, ip, user_agent,
browser, os, country, is_read, created_at`

func scanContactSubmission(row interface{ Scan(...any) error }) (ContactSubmission, error) {
	var c ContactSubmission
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message,
		&c.ProgramSlug, &c.Ip, &c.UserAgent, &c.Browser, &c.Os, &c.Country,
		&c.IsRead, &c.CreatedAt,
	)
	return c, err
}

// CreateContactSubmissionParams holds the fields for CreateContactSubmission.
type CreateContactSubmissionParams struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Subject     string
	Message     string
	ProgramSlug string
	Ip          string
	UserAgent   string
	Browser     string
	Os          string
	Country     string
	CreatedAt   time.Time
}

const createContactSubmission = `INSERT INTO contact_submissions (` + contactColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
RETURNING ` + contactColumns

// CreateContactSubmission records a contact-form submission.
func (q *Queries) CreateContactSubmission(ctx context.Context, arg CreateContactSubmissionParams) (ContactSubmission, error) {
	row := q.db.QueryRowContext(ctx, createContactSubmission,
		arg.ID, arg.Name, arg.Email, arg.Phone, arg.Subject, arg.Message,
		arg.ProgramSlug, arg.Ip, arg.UserAgent, arg.Browser, arg.Os,
		arg.Country, arg.CreatedAt,
	)
	return scanContactSubmission(row)
}

const getContactSubmissionByID = `SELECT ` + contactColumns + ` FROM contact_submissions WHERE id = ?`

// GetContactSubmissionByID fetches a submission by id.
func (q *Queries) GetContactSubmissionByID(ctx context.Context, id string) (ContactSubmission, error) {
	return scanContactSubmission(q.db.QueryRowContext(ctx, getContactSubmissionByID, id))
}

// ListContactSubmissionsParams holds pagination.
type ListContactSubmissionsParams struct {
	Limit  int64
	Offset int64
}

const listContactSubmissions = `SELECT ` + contactColumns + `
FROM contact_submissions ORDER BY created_at DESC LIMIT ? OFFSET ?`

// ListContactSubmissions lists submissions newest-first.
func (q *Queries) ListContactSubmissions(ctx context.Context, arg ListContactSubmissionsParams) ([]ContactSubmission, error) {
	rows, err := q.db.QueryContext(ctx, listContactSubmissions, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []ContactSubmission
	for rows.Next() {
		c, err := scanContactSubmission(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const listAllContactSubmissions = `SELECT ` + contactColumns + `
FROM contact_submissions ORDER BY created_at DESC`

// ListAllContactSubmissions lists every submission (CSV export).
func (q *Queries) ListAllContactSubmissions(ctx context.Context) ([]ContactSubmission, error) {
	rows, err := q.db.QueryContext(ctx, listAllContactSubmissions)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []ContactSubmission
	for rows.Next() {
		c, err := scanContactSubmission(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const countContactSubmissions = `SELECT COUNT(*) FROM contact_submissions`

// CountContactSubmissions counts all submissions.
func (q *Queries) CountContactSubmissions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countContactSubmissions).Scan(&n)
	return n, err
}

const markContactSubmissionRead = `UPDATE contact_submissions SET is_read = 1 WHERE id = ?`

// MarkContactSubmissionRead marks a submission as read.
func (q *Queries) MarkContactSubmissionRead(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, markContactSubmissionRead, id)
	return err
}

const deleteContactSubmission = `DELETE FROM contact_submissions WHERE id = ?`

// DeleteContactSubmission removes a submission.
func (q *Queries) DeleteContactSubmission(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteContactSubmission, id)
	return err
}
