// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const blogPostColumns = `id, title, slug, excerpt, body, cover_media_id, status, author_id,
published_at, scheduled_at, created_at, updated_at`

func scanBlogPost(row interface{ Scan(...any) error }) (BlogPost, error) {
	var p BlogPost
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Body, &p.CoverMediaID,
		&p.Status, &p.AuthorID, &p.PublishedAt, &p.ScheduledAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (q *Queries) queryBlogPosts(ctx context.Context, query string, args ...any) ([]BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// CreateBlogPostParams holds the fields for CreateBlogPost.
type CreateBlogPostParams struct {
	ID           string
	Title        string
	Slug         string
	Excerpt      string
	Body         string
	CoverMediaID sql.NullString
	Status       string
	AuthorID     int64
	ScheduledAt  sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const createBlogPost = `INSERT INTO blog_posts (` + blogPostColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL, ?, ?, ?)
RETURNING ` + blogPostColumns

// CreateBlogPost inserts a canonical blog post.
func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (BlogPost, error) {
	row := q.db.QueryRowContext(ctx, createBlogPost,
		arg.ID, arg.Title, arg.Slug, arg.Excerpt, arg.Body, arg.CoverMediaID,
		arg.Status, arg.AuthorID, arg.ScheduledAt, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanBlogPost(row)
}

const getBlogPostByID = `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE id = ?`

// GetBlogPostByID fetches a blog post by id.
func (q *Queries) GetBlogPostByID(ctx context.Context, id string) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getBlogPostByID, id))
}

const getBlogPostBySlug = `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE slug = ?`

// GetBlogPostBySlug fetches a blog post by its canonical slug.
func (q *Queries) GetBlogPostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getBlogPostBySlug, slug))
}

const getPublishedBlogPostBySlug = `SELECT ` + blogPostColumns + `
FROM blog_posts WHERE slug = ? AND status = 'published'`

// GetPublishedBlogPostBySlug fetches a published blog post by slug.
func (q *Queries) GetPublishedBlogPostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getPublishedBlogPostBySlug, slug))
}

// ListBlogPostsParams holds pagination for ListBlogPosts.
type ListBlogPostsParams struct {
	Limit  int64
	Offset int64
}

const listBlogPosts = `SELECT ` + blogPostColumns + `
FROM blog_posts ORDER BY created_at DESC LIMIT ? OFFSET ?`

// ListBlogPosts lists blog posts newest-first.
func (q *Queries) ListBlogPosts(ctx context.Context, arg ListBlogPostsParams) ([]BlogPost, error) {
	return q.queryBlogPosts(ctx, listBlogPosts, arg.Limit, arg.Offset)
}

// ListBlogPostsByStatusParams holds filter and pagination.
type ListBlogPostsByStatusParams struct {
	Status string
	Limit  int64
	Offset int64
}

const listBlogPostsByStatus = `SELECT ` + blogPostColumns + `
FROM blog_posts WHERE status = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`

// ListBlogPostsByStatus lists blog posts with the given status.
func (q *Queries) ListBlogPostsByStatus(ctx context.Context, arg ListBlogPostsByStatusParams) ([]BlogPost, error) {
	return q.queryBlogPosts(ctx, listBlogPostsByStatus, arg.Status, arg.Limit, arg.Offset)
}

const listPublishedBlogPosts = `SELECT ` + blogPostColumns + `
FROM blog_posts WHERE status = 'published' ORDER BY published_at DESC LIMIT ? OFFSET ?`

// ListPublishedBlogPostsParams holds pagination.
type ListPublishedBlogPostsParams struct {
	Limit  int64
	Offset int64
}

// ListPublishedBlogPosts lists published posts newest-first by publish time.
func (q *Queries) ListPublishedBlogPosts(ctx context.Context, arg ListPublishedBlogPostsParams) ([]BlogPost, error) {
	return q.queryBlogPosts(ctx, listPublishedBlogPosts, arg.Limit, arg.Offset)
}

const countBlogPosts = `SELECT COUNT(*) FROM blog_posts`

// CountBlogPosts counts all blog posts.
func (q *Queries) CountBlogPosts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countBlogPosts).Scan(&n)
	return n, err
}

const countBlogPostsByStatus = `SELECT COUNT(*) FROM blog_posts WHERE status = ?`

// CountBlogPostsByStatus counts blog posts with the given status.
func (q *Queries) CountBlogPostsByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countBlogPostsByStatus, status).Scan(&n)
	return n, err
}

// UpdateBlogPostParams holds the fields for UpdateBlogPost.
type UpdateBlogPostParams struct {
	ID           string
	Title        string
	Slug         string
	Excerpt      string
	Body         string
	CoverMediaID sql.NullString
	Status       string
	ScheduledAt  sql.NullTime
	UpdatedAt    time.Time
}

const updateBlogPost = `UPDATE blog_posts SET
title = ?, slug = ?, excerpt = ?, body = ?, cover_media_id = ?, status = ?,
scheduled_at = ?, updated_at = ?
WHERE id = ?
RETURNING ` + blogPostColumns

// UpdateBlogPost updates a canonical blog post.
func (q *Queries) UpdateBlogPost(ctx context.Context, arg UpdateBlogPostParams) (BlogPost, error) {
	row := q.db.QueryRowContext(ctx, updateBlogPost,
		arg.Title, arg.Slug, arg.Excerpt, arg.Body, arg.CoverMediaID,
		arg.Status, arg.ScheduledAt, arg.UpdatedAt, arg.ID,
	)
	return scanBlogPost(row)
}

// PublishBlogPostParams holds the fields for PublishBlogPost.
type PublishBlogPostParams struct {
	ID          string
	PublishedAt time.Time
	UpdatedAt   time.Time
}

const publishBlogPost = `UPDATE blog_posts SET
status = 'published',
published_at = COALESCE(published_at, ?),
updated_at = ?
WHERE id = ?
RETURNING ` + blogPostColumns

// PublishBlogPost transitions a post to published, keeping the first
// published_at on re-publish.
func (q *Queries) PublishBlogPost(ctx context.Context, arg PublishBlogPostParams) (BlogPost, error) {
	row := q.db.QueryRowContext(ctx, publishBlogPost, arg.PublishedAt, arg.UpdatedAt, arg.ID)
	return scanBlogPost(row)
}

const deleteBlogPost = `DELETE FROM blog_posts WHERE id = ?`

// DeleteBlogPost removes a blog post.
func (q *Queries) DeleteBlogPost(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteBlogPost, id)
	return err
}

const countBlogPostSlug = `SELECT COUNT(*) FROM blog_posts WHERE slug = ?`

// CountBlogPostSlug counts canonical blog posts holding the slug.
func (q *Queries) CountBlogPostSlug(ctx context.Context, slug string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countBlogPostSlug, slug).Scan(&n)
	return n, err
}

// CountBlogPostSlugExcludingParams holds the fields for CountBlogPostSlugExcluding.
type CountBlogPostSlugExcludingParams struct {
	Slug string
	ID   string
}

const countBlogPostSlugExcluding = `SELECT COUNT(*) FROM blog_posts WHERE slug = ? AND id != ?`

// CountBlogPostSlugExcluding counts canonical blog posts holding the slug,
// ignoring the given post.
func (q *Queries) CountBlogPostSlugExcluding(ctx context.Context, arg CountBlogPostSlugExcludingParams) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countBlogPostSlugExcluding, arg.Slug, arg.ID).Scan(&n)
	return n, err
}

const listDueScheduledBlogPosts = `SELECT ` + blogPostColumns + `
FROM blog_posts WHERE status = 'draft' AND scheduled_at IS NOT NULL AND scheduled_at <= ?`

// ListDueScheduledBlogPosts lists drafts whose scheduled publish time arrived.
func (q *Queries) ListDueScheduledBlogPosts(ctx context.Context, now time.Time) ([]BlogPost, error) {
	return q.queryBlogPosts(ctx, listDueScheduledBlogPosts, now)
}
