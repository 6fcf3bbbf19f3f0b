// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/traveledu/tcms-go/internal/model"
	"github.com/traveledu/tcms-go/internal/store"
	"github.com/traveledu/tcms-go/internal/util"
)

// PostInput carries the writable fields of a blog post. Language routes the
// write the same way program edits do: base language to the canonical row,
// anything else to a translation overlay.
type PostInput struct {
	Language     string
	Title        string
	Slug         string
	Excerpt      string
	Body         string
	CoverMediaID *string
	Status       string
	ScheduledAt  *time.Time
}

func (in *PostInput) normalize() error {
	if in.Language == "" {
		in.Language = BaseLanguage
	}
	if !util.IsValidLangCode(in.Language) {
		return validationErr("invalid language %q", in.Language)
	}
	if in.Status == "" {
		in.Status = model.StatusDraft
	}
	if !model.IsValidStatus(in.Status) {
		return validationErr("invalid status %q", in.Status)
	}
	if in.Title == "" {
		return validationErr("title is required")
	}
	return nil
}

// CreatePost creates a canonical blog post in the base language.
func (s *Service) CreatePost(ctx context.Context, authorID int64, in PostInput) (PostView, error) {
	if err := in.normalize(); err != nil {
		return PostView{}, err
	}
	if in.Language != BaseLanguage {
		return PostView{}, validationErr("posts are created in the base language %q; add translations after", BaseLanguage)
	}

	slug := in.Slug
	if slug == "" {
		slug = util.SlugOrFallback(in.Title)
	}
	slug, err := s.EnsureUniqueSlug(ctx, model.EntityTypePost, slug, "")
	if err != nil {
		return PostView{}, err
	}

	now := time.Now()
	p, err := s.queries.CreateBlogPost(ctx, store.CreateBlogPostParams{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Slug:         slug,
		Excerpt:      in.Excerpt,
		Body:         in.Body,
		CoverMediaID: util.NullStringFromPtr(in.CoverMediaID),
		Status:       in.Status,
		AuthorID:     authorID,
		ScheduledAt:  util.NullTimeFromPtr(in.ScheduledAt),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return PostView{}, TranslateUniqueViolation(err)
	}

	if in.Status == model.StatusPublished {
		p, err = s.queries.PublishBlogPost(ctx, store.PublishBlogPostParams{
			ID: p.ID, PublishedAt: now, UpdatedAt: now,
		})
		if err != nil {
			return PostView{}, fmt.Errorf("publishing new post: %w", err)
		}
	}

	s.invalidate(ctx)
	return s.mergePost(ctx, p, BaseLanguage)
}

// UpdatePost applies an edit in one language, mirroring UpdateProgram's
// routing. Blog posts are never showcase targets, so a slug change needs no
// pointer sync.
func (s *Service) UpdatePost(ctx context.Context, id string, in PostInput) (PostView, error) {
	if err := in.normalize(); err != nil {
		return PostView{}, err
	}

	p, err := s.queries.GetBlogPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PostView{}, ErrNotFound
		}
		return PostView{}, fmt.Errorf("loading post: %w", err)
	}

	if in.Language != BaseLanguage {
		if _, err := s.SaveTranslation(ctx, model.EntityTypePost, p.ID, in.Language, TranslationText{
			Title: in.Title, Slug: in.Slug, Summary: in.Excerpt, Body: in.Body,
		}); err != nil {
			return PostView{}, err
		}
		// The canonical record, status included, is only mutated through
		// base-language edits.
		s.invalidate(ctx)
		return s.mergePost(ctx, p, in.Language)
	}

	slug := in.Slug
	if slug == "" {
		slug = p.Slug
	}
	slug, err = s.EnsureUniqueSlug(ctx, model.EntityTypePost, slug, p.ID)
	if err != nil {
		return PostView{}, err
	}

	p, err = s.queries.UpdateBlogPost(ctx, store.UpdateBlogPostParams{
		ID:           p.ID,
		Title:        in.Title,
		Slug:         slug,
		Excerpt:      in.Excerpt,
		Body:         in.Body,
		CoverMediaID: util.NullStringFromPtr(in.CoverMediaID),
		Status:       in.Status,
		ScheduledAt:  util.NullTimeFromPtr(in.ScheduledAt),
		UpdatedAt:    time.Now(),
	})
	if err != nil {
		return PostView{}, TranslateUniqueViolation(err)
	}

	if err := s.applyPostStatus(ctx, &p, in.Status); err != nil {
		return PostView{}, err
	}

	s.invalidate(ctx)
	return s.mergePost(ctx, p, BaseLanguage)
}

func (s *Service) applyPostStatus(ctx context.Context, p *store.BlogPost, status string) error {
	if status != model.StatusPublished {
		return nil
	}
	now := time.Now()
	updated, err := s.queries.PublishBlogPost(ctx, store.PublishBlogPostParams{
		ID: p.ID, PublishedAt: now, UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("publishing post: %w", err)
	}
	*p = updated
	return nil
}

// DeletePost removes the canonical post and its translations in one
// transaction.
func (s *Service) DeletePost(ctx context.Context, id string) error {
	err := s.withTx(ctx, func(q *store.Queries) error {
		if _, err := q.GetBlogPostByID(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("loading post: %w", err)
		}
		if err := q.DeleteTranslationsForEntity(ctx, store.DeleteTranslationsForEntityParams{
			EntityType: model.EntityTypePost, EntityID: id,
		}); err != nil {
			return fmt.Errorf("deleting translations: %w", err)
		}
		if err := q.DeleteBlogPost(ctx, id); err != nil {
			return fmt.Errorf("deleting post: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// GetPost returns one post merged for the language, addressed by id.
func (s *Service) GetPost(ctx context.Context, id, language string) (PostView, error) {
	p, err := s.queries.GetBlogPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PostView{}, ErrNotFound
		}
		return PostView{}, fmt.Errorf("loading post: %w", err)
	}
	return s.mergePost(ctx, p, language)
}

// GetPublishedPostBySlug resolves a canonical or translated slug to a
// published post merged for the language.
func (s *Service) GetPublishedPostBySlug(ctx context.Context, slug, language string) (PostView, error) {
	p, err := s.queries.GetPublishedBlogPostBySlug(ctx, slug)
	if err == nil {
		return s.mergePost(ctx, p, language)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return PostView{}, fmt.Errorf("loading post: %w", err)
	}

	tr, err := s.queries.GetTranslationBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PostView{}, ErrNotFound
		}
		return PostView{}, fmt.Errorf("resolving translated slug: %w", err)
	}
	if tr.EntityType != model.EntityTypePost {
		return PostView{}, ErrNotFound
	}
	p, err = s.queries.GetBlogPostByID(ctx, tr.EntityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PostView{}, ErrNotFound
		}
		return PostView{}, fmt.Errorf("loading post: %w", err)
	}
	if p.Status != model.StatusPublished {
		return PostView{}, ErrNotFound
	}
	if language == "" {
		language = tr.Language
	}
	return s.mergePost(ctx, p, language)
}

// PostListOptions filters and paginates post listings.
type PostListOptions struct {
	Status   string
	Language string
	Page     int64
	Limit    int64
}

// ListPosts returns a page of posts merged for the language plus the total
// row count.
func (s *Service) ListPosts(ctx context.Context, opts PostListOptions) ([]PostView, int64, error) {
	if opts.Status != "" && !model.IsValidStatus(opts.Status) {
		return nil, 0, validationErr("invalid status %q", opts.Status)
	}

	limit, offset := pageToRange(opts.Page, opts.Limit)

	var rows []store.BlogPost
	var total int64
	var err error
	if opts.Status == "" {
		rows, err = s.queries.ListBlogPosts(ctx, store.ListBlogPostsParams{Limit: limit, Offset: offset})
		if err == nil {
			total, err = s.queries.CountBlogPosts(ctx)
		}
	} else {
		rows, err = s.queries.ListBlogPostsByStatus(ctx, store.ListBlogPostsByStatusParams{
			Status: opts.Status, Limit: limit, Offset: offset,
		})
		if err == nil {
			total, err = s.queries.CountBlogPostsByStatus(ctx, opts.Status)
		}
	}
	if err != nil {
		return nil, 0, fmt.Errorf("listing posts: %w", err)
	}

	views := make([]PostView, 0, len(rows))
	for _, p := range rows {
		v, err := s.mergePost(ctx, p, opts.Language)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, v)
	}
	return views, total, nil
}

// ListPublishedPosts returns a page of published posts merged for the
// language, newest publish first.
func (s *Service) ListPublishedPosts(ctx context.Context, language string, page, limit int64) ([]PostView, int64, error) {
	l, offset := pageToRange(page, limit)
	rows, err := s.queries.ListPublishedBlogPosts(ctx, store.ListPublishedBlogPostsParams{
		Limit: l, Offset: offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("listing posts: %w", err)
	}
	total, err := s.queries.CountBlogPostsByStatus(ctx, model.StatusPublished)
	if err != nil {
		return nil, 0, fmt.Errorf("counting posts: %w", err)
	}

	views := make([]PostView, 0, len(rows))
	for _, p := range rows {
		v, err := s.mergePost(ctx, p, language)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, v)
	}
	return views, total, nil
}
