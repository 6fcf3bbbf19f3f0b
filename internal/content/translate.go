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

// TranslationText carries the translatable fields of an entity for one
// language. Blocks is the JSON-encoded translated block structure and may be
// empty for entities without block columns.
type TranslationText struct {
	Title   string
	Slug    string
	Summary string
	Body    string
	Blocks  string
}

// lookupTranslation fetches the translation row for one language, mapping
// sql.ErrNoRows to an ok=false result.
func (s *Service) lookupTranslation(ctx context.Context, entityType, entityID, language string) (store.Translation, bool, error) {
	tr, err := s.queries.GetTranslation(ctx, store.GetTranslationParams{
		EntityType: entityType, EntityID: entityID, Language: language,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Translation{}, false, nil
		}
		return store.Translation{}, false, fmt.Errorf("loading translation: %w", err)
	}
	return tr, true, nil
}

// SaveTranslation upserts the translation row for a non-base language. The
// slug is derived from the translated title when absent and resolved for
// uniqueness across both tables. Canonical rows are never touched here.
func (s *Service) SaveTranslation(ctx context.Context, entityType, entityID, language string, text TranslationText) (store.Translation, error) {
	if language == BaseLanguage {
		return store.Translation{}, fmt.Errorf("base language %q edits the canonical record, not a translation", BaseLanguage)
	}
	if !model.IsValidEntityType(entityType) {
		return store.Translation{}, fmt.Errorf("unknown entity type %q", entityType)
	}

	slug := text.Slug
	if slug == "" {
		slug = util.SlugOrFallback(text.Title)
	}
	slug, err := s.EnsureUniqueSlug(ctx, entityType, slug, entityID)
	if err != nil {
		return store.Translation{}, err
	}

	now := time.Now()
	tr, err := s.queries.UpsertTranslation(ctx, store.UpsertTranslationParams{
		ID:         uuid.NewString(),
		EntityType: entityType,
		EntityID:   entityID,
		Language:   language,
		Title:      text.Title,
		Slug:       slug,
		Summary:    text.Summary,
		Body:       text.Body,
		Blocks:     text.Blocks,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return store.Translation{}, TranslateUniqueViolation(err)
	}

	s.invalidate(ctx)
	return tr, nil
}

// ProgramView is a program merged for one language: canonical structure with
// the language's text overlaid. For a non-base language without a translation
// the text fields are empty; translations are authored, never auto-filled
// from the base language. The slug stays canonical so the record remains
// addressable.
type ProgramView struct {
	ID           string              `json:"id"`
	Type         string              `json:"type"`
	Language     string              `json:"language"`
	Title        string              `json:"title"`
	Slug         string              `json:"slug"`
	Summary      string              `json:"summary"`
	Body         string              `json:"body"`
	Blocks       model.ProgramBlocks `json:"blocks"`
	LocationID   *string             `json:"locationId,omitempty"`
	CoverMediaID *string             `json:"coverMediaId,omitempty"`
	Status       string              `json:"status"`
	AuthorID     int64               `json:"authorId"`
	PublishedAt  *time.Time          `json:"publishedAt,omitempty"`
	ScheduledAt  *time.Time          `json:"scheduledAt,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	Translated   bool                `json:"translated"`
}

// mergeProgram overlays a language onto the canonical program row.
func (s *Service) mergeProgram(ctx context.Context, p store.Program, language string) (ProgramView, error) {
	view := ProgramView{
		ID:           p.ID,
		Type:         p.Type,
		Language:     language,
		Slug:         p.Slug,
		LocationID:   util.NullStringPtr(p.LocationID),
		CoverMediaID: util.NullStringPtr(p.CoverMediaID),
		Status:       p.Status,
		AuthorID:     p.AuthorID,
		PublishedAt:  util.NullTimePtr(p.PublishedAt),
		ScheduledAt:  util.NullTimePtr(p.ScheduledAt),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	if language == "" || language == BaseLanguage {
		view.Language = BaseLanguage
		view.Title = p.Title
		view.Summary = p.Summary
		view.Body = p.Body
		view.Translated = true

		blocks, err := unmarshalProgramBlocks(p)
		if err != nil {
			return ProgramView{}, err
		}
		view.Blocks = blocks
		return view, nil
	}

	tr, ok, err := s.lookupTranslation(ctx, model.EntityTypeProgram, p.ID, language)
	if err != nil {
		return ProgramView{}, err
	}
	if !ok {
		// No translation: text fields stay empty. The canonical text is
		// deliberately not substituted.
		return view, nil
	}

	view.Title = tr.Title
	view.Slug = tr.Slug
	view.Summary = tr.Summary
	view.Body = tr.Body
	view.Translated = true
	if tr.Blocks != "" {
		blocks, err := model.UnmarshalBlocks(tr.Blocks)
		if err != nil {
			return ProgramView{}, fmt.Errorf("decoding translated blocks: %w", err)
		}
		view.Blocks = blocks
	}
	return view, nil
}

// unmarshalProgramBlocks assembles the block struct from a canonical row's
// JSON columns.
func unmarshalProgramBlocks(p store.Program) (model.ProgramBlocks, error) {
	var blocks model.ProgramBlocks
	var err error

	if blocks.Gallery, err = model.UnmarshalGallery(p.Gallery); err != nil {
		return blocks, fmt.Errorf("decoding gallery: %w", err)
	}
	if blocks.Highlights, err = model.UnmarshalStringList(p.Highlights); err != nil {
		return blocks, fmt.Errorf("decoding highlights: %w", err)
	}
	if blocks.Itinerary, err = model.UnmarshalItinerary(p.Itinerary); err != nil {
		return blocks, fmt.Errorf("decoding itinerary: %w", err)
	}
	if blocks.Requirements, err = model.UnmarshalStringList(p.Requirements); err != nil {
		return blocks, fmt.Errorf("decoding requirements: %w", err)
	}
	if blocks.Sessions, err = model.UnmarshalSessions(p.Sessions); err != nil {
		return blocks, fmt.Errorf("decoding sessions: %w", err)
	}
	return blocks, nil
}

// PostView is a blog post merged for one language.
type PostView struct {
	ID           string     `json:"id"`
	Language     string     `json:"language"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Excerpt      string     `json:"excerpt"`
	Body         string     `json:"body"`
	CoverMediaID *string    `json:"coverMediaId,omitempty"`
	Status       string     `json:"status"`
	AuthorID     int64      `json:"authorId"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	ScheduledAt  *time.Time `json:"scheduledAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Translated   bool       `json:"translated"`
}

// mergePost overlays a language onto the canonical blog post row.
func (s *Service) mergePost(ctx context.Context, p store.BlogPost, language string) (PostView, error) {
	view := PostView{
		ID:           p.ID,
		Language:     language,
		Slug:         p.Slug,
		CoverMediaID: util.NullStringPtr(p.CoverMediaID),
		Status:       p.Status,
		AuthorID:     p.AuthorID,
		PublishedAt:  util.NullTimePtr(p.PublishedAt),
		ScheduledAt:  util.NullTimePtr(p.ScheduledAt),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	if language == "" || language == BaseLanguage {
		view.Language = BaseLanguage
		view.Title = p.Title
		view.Excerpt = p.Excerpt
		view.Body = p.Body
		view.Translated = true
		return view, nil
	}

	tr, ok, err := s.lookupTranslation(ctx, model.EntityTypePost, p.ID, language)
	if err != nil {
		return PostView{}, err
	}
	if !ok {
		return view, nil
	}

	view.Title = tr.Title
	view.Slug = tr.Slug
	view.Excerpt = tr.Summary
	view.Body = tr.Body
	view.Translated = true
	return view, nil
}

// TestimonialView is a testimonial merged for one language. The translation
// row's title maps to the quote and its summary to the author role.
type TestimonialView struct {
	ID            string     `json:"id"`
	Language      string     `json:"language"`
	AuthorName    string     `json:"authorName"`
	AuthorRole    string     `json:"authorRole"`
	Quote         string     `json:"quote"`
	ProgramType   string     `json:"programType"`
	AvatarMediaID *string    `json:"avatarMediaId,omitempty"`
	Status        string     `json:"status"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Translated    bool       `json:"translated"`
}

func (s *Service) mergeTestimonial(ctx context.Context, tm store.Testimonial, language string) (TestimonialView, error) {
	view := TestimonialView{
		ID:            tm.ID,
		Language:      language,
		AuthorName:    tm.AuthorName,
		ProgramType:   tm.ProgramType,
		AvatarMediaID: util.NullStringPtr(tm.AvatarMediaID),
		Status:        tm.Status,
		PublishedAt:   util.NullTimePtr(tm.PublishedAt),
		CreatedAt:     tm.CreatedAt,
		UpdatedAt:     tm.UpdatedAt,
	}

	if language == "" || language == BaseLanguage {
		view.Language = BaseLanguage
		view.AuthorRole = tm.AuthorRole
		view.Quote = tm.Quote
		view.Translated = true
		return view, nil
	}

	tr, ok, err := s.lookupTranslation(ctx, model.EntityTypeTestimonial, tm.ID, language)
	if err != nil {
		return TestimonialView{}, err
	}
	if !ok {
		return view, nil
	}

	view.Quote = tr.Title
	view.AuthorRole = tr.Summary
	view.Translated = true
	return view, nil
}

// HeroView is a hero banner merged for one language. The translation row's
// title maps to the headline, summary to the subheadline, and body to the
// call-to-action label.
type HeroView struct {
	ID          string     `json:"id"`
	Language    string     `json:"language"`
	Headline    string     `json:"headline"`
	Subheadline string     `json:"subheadline"`
	CtaLabel    string     `json:"ctaLabel"`
	CtaURL      string     `json:"ctaUrl"`
	MediaID     *string    `json:"mediaId,omitempty"`
	Position    int64      `json:"position"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Translated  bool       `json:"translated"`
}

func (s *Service) mergeHero(ctx context.Context, h store.HeroBanner, language string) (HeroView, error) {
	view := HeroView{
		ID:          h.ID,
		Language:    language,
		CtaURL:      h.CtaUrl,
		MediaID:     util.NullStringPtr(h.MediaID),
		Position:    h.Position,
		Status:      h.Status,
		PublishedAt: util.NullTimePtr(h.PublishedAt),
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}

	if language == "" || language == BaseLanguage {
		view.Language = BaseLanguage
		view.Headline = h.Headline
		view.Subheadline = h.Subheadline
		view.CtaLabel = h.CtaLabel
		view.Translated = true
		return view, nil
	}

	tr, ok, err := s.lookupTranslation(ctx, model.EntityTypeHero, h.ID, language)
	if err != nil {
		return HeroView{}, err
	}
	if !ok {
		return view, nil
	}

	view.Headline = tr.Title
	view.Subheadline = tr.Summary
	view.CtaLabel = tr.Body
	view.Translated = true
	return view, nil
}

// Translations lists every translation row of an entity.
func (s *Service) Translations(ctx context.Context, entityType, entityID string) ([]store.Translation, error) {
	return s.queries.ListTranslationsForEntity(ctx, store.ListTranslationsForEntityParams{
		EntityType: entityType, EntityID: entityID,
	})
}
