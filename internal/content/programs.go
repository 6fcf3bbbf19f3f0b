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

// ErrNotFound is returned when the addressed entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation wraps input problems the caller should report as 400.
var ErrValidation = errors.New("invalid input")

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ProgramInput carries the writable fields of a program. Language selects the
// routing: base language writes the canonical record, any other language
// writes a translation overlay and leaves canonical non-text fields alone.
type ProgramInput struct {
	Type         string
	Language     string
	Title        string
	Slug         string
	Summary      string
	Body         string
	Blocks       model.ProgramBlocks
	LocationID   *string
	CoverMediaID *string
	Status       string
	ScheduledAt  *time.Time
}

func (in *ProgramInput) normalize() error {
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

// CreateProgram creates a canonical program. Creation always writes the
// canonical record: the first complete language becomes the base text, so
// base-language input is required here.
func (s *Service) CreateProgram(ctx context.Context, authorID int64, in ProgramInput) (ProgramView, error) {
	if err := in.normalize(); err != nil {
		return ProgramView{}, err
	}
	if in.Language != BaseLanguage {
		return ProgramView{}, validationErr("programs are created in the base language %q; add translations after", BaseLanguage)
	}
	if !model.IsValidProgramType(in.Type) {
		return ProgramView{}, validationErr("invalid program type %q", in.Type)
	}

	slug := in.Slug
	if slug == "" {
		slug = util.SlugOrFallback(in.Title)
	}
	slug, err := s.EnsureUniqueSlug(ctx, model.EntityTypeProgram, slug, "")
	if err != nil {
		return ProgramView{}, err
	}

	cols, err := marshalBlockColumns(in.Blocks)
	if err != nil {
		return ProgramView{}, err
	}

	now := time.Now()
	p, err := s.queries.CreateProgram(ctx, store.CreateProgramParams{
		ID:           uuid.NewString(),
		Type:         in.Type,
		Title:        in.Title,
		Slug:         slug,
		Summary:      in.Summary,
		Body:         in.Body,
		Gallery:      cols.gallery,
		Highlights:   cols.highlights,
		Itinerary:    cols.itinerary,
		Requirements: cols.requirements,
		Sessions:     cols.sessions,
		LocationID:   util.NullStringFromPtr(in.LocationID),
		CoverMediaID: util.NullStringFromPtr(in.CoverMediaID),
		Status:       in.Status,
		AuthorID:     authorID,
		ScheduledAt:  util.NullTimeFromPtr(in.ScheduledAt),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return ProgramView{}, TranslateUniqueViolation(err)
	}

	if in.Status == model.StatusPublished {
		p, err = s.queries.PublishProgram(ctx, store.PublishProgramParams{
			ID: p.ID, PublishedAt: now, UpdatedAt: now,
		})
		if err != nil {
			return ProgramView{}, fmt.Errorf("publishing new program: %w", err)
		}
	}

	s.invalidate(ctx)
	return s.mergeProgram(ctx, p, BaseLanguage)
}

// UpdateProgram applies an edit in one language. Base-language edits mutate
// the canonical record; a canonical slug change retargets showcase pointers
// in the same transaction, so committed showcases never hold a stale slug.
// Non-base edits upsert a translation row only. A transition to published
// sets published_at exactly once.
func (s *Service) UpdateProgram(ctx context.Context, id string, in ProgramInput) (ProgramView, error) {
	if err := in.normalize(); err != nil {
		return ProgramView{}, err
	}

	p, err := s.queries.GetProgramByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProgramView{}, ErrNotFound
		}
		return ProgramView{}, fmt.Errorf("loading program: %w", err)
	}

	if in.Language != BaseLanguage {
		blocks, err := model.MarshalBlocks(in.Blocks)
		if err != nil {
			return ProgramView{}, err
		}
		if _, err := s.SaveTranslation(ctx, model.EntityTypeProgram, p.ID, in.Language, TranslationText{
			Title: in.Title, Slug: in.Slug, Summary: in.Summary, Body: in.Body, Blocks: blocks,
		}); err != nil {
			return ProgramView{}, err
		}
		// The canonical record, status included, is only mutated through
		// base-language edits.
		s.invalidate(ctx)
		return s.mergeProgram(ctx, p, in.Language)
	}

	programType := in.Type
	if programType == "" {
		programType = p.Type
	}
	if !model.IsValidProgramType(programType) {
		return ProgramView{}, validationErr("invalid program type %q", programType)
	}

	slug := in.Slug
	if slug == "" {
		slug = p.Slug
	}
	slug, err = s.EnsureUniqueSlug(ctx, model.EntityTypeProgram, slug, p.ID)
	if err != nil {
		return ProgramView{}, err
	}
	oldSlug, oldType := p.Slug, p.Type

	cols, err := marshalBlockColumns(in.Blocks)
	if err != nil {
		return ProgramView{}, err
	}

	now := time.Now()
	err = s.withTx(ctx, func(q *store.Queries) error {
		p, err = q.UpdateProgram(ctx, store.UpdateProgramParams{
			ID:           p.ID,
			Type:         programType,
			Title:        in.Title,
			Slug:         slug,
			Summary:      in.Summary,
			Body:         in.Body,
			Gallery:      cols.gallery,
			Highlights:   cols.highlights,
			Itinerary:    cols.itinerary,
			Requirements: cols.requirements,
			Sessions:     cols.sessions,
			LocationID:   util.NullStringFromPtr(in.LocationID),
			CoverMediaID: util.NullStringFromPtr(in.CoverMediaID),
			Status:       in.Status,
			ScheduledAt:  util.NullTimeFromPtr(in.ScheduledAt),
			UpdatedAt:    now,
		})
		if err != nil {
			return TranslateUniqueViolation(err)
		}
		if err := s.applyProgramStatus(ctx, q, &p, in.Status); err != nil {
			return err
		}
		if p.Slug != oldSlug {
			return s.retargetShowcases(ctx, q, oldType, oldSlug, p.Slug)
		}
		return nil
	})
	if err != nil {
		return ProgramView{}, err
	}

	s.invalidate(ctx)
	return s.mergeProgram(ctx, p, BaseLanguage)
}

// applyProgramStatus runs the publish transition when the target status is
// published. The COALESCE in the query keeps the first published_at, making
// re-publish idempotent.
func (s *Service) applyProgramStatus(ctx context.Context, q *store.Queries, p *store.Program, status string) error {
	if status != model.StatusPublished {
		return nil
	}
	now := time.Now()
	updated, err := q.PublishProgram(ctx, store.PublishProgramParams{
		ID: p.ID, PublishedAt: now, UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("publishing program: %w", err)
	}
	*p = updated
	return nil
}

// DeleteProgram removes the canonical record and cascades its translation
// rows in one transaction. Showcase rows that point at the program are left
// in place; the nightly repair scan reports them.
func (s *Service) DeleteProgram(ctx context.Context, id string) error {
	err := s.withTx(ctx, func(q *store.Queries) error {
		if _, err := q.GetProgramByID(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("loading program: %w", err)
		}
		if err := q.DeleteTranslationsForEntity(ctx, store.DeleteTranslationsForEntityParams{
			EntityType: model.EntityTypeProgram, EntityID: id,
		}); err != nil {
			return fmt.Errorf("deleting translations: %w", err)
		}
		if err := q.DeleteProgram(ctx, id); err != nil {
			return fmt.Errorf("deleting program: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// GetProgram returns one program merged for the language, addressed by id.
func (s *Service) GetProgram(ctx context.Context, id, language string) (ProgramView, error) {
	p, err := s.queries.GetProgramByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProgramView{}, ErrNotFound
		}
		return ProgramView{}, fmt.Errorf("loading program: %w", err)
	}
	return s.mergeProgram(ctx, p, language)
}

// GetPublishedProgramBySlug resolves a slug (canonical or translated) to a
// published program merged for the language.
func (s *Service) GetPublishedProgramBySlug(ctx context.Context, slug, language string) (ProgramView, error) {
	p, err := s.queries.GetPublishedProgramBySlug(ctx, slug)
	if err == nil {
		return s.mergeProgram(ctx, p, language)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return ProgramView{}, fmt.Errorf("loading program: %w", err)
	}

	// Not a canonical slug; it may be a translated one.
	tr, err := s.queries.GetTranslationBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProgramView{}, ErrNotFound
		}
		return ProgramView{}, fmt.Errorf("resolving translated slug: %w", err)
	}
	if tr.EntityType != model.EntityTypeProgram {
		return ProgramView{}, ErrNotFound
	}
	p, err = s.queries.GetProgramByID(ctx, tr.EntityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProgramView{}, ErrNotFound
		}
		return ProgramView{}, fmt.Errorf("loading program: %w", err)
	}
	if p.Status != model.StatusPublished {
		return ProgramView{}, ErrNotFound
	}
	if language == "" {
		language = tr.Language
	}
	return s.mergeProgram(ctx, p, language)
}

// ProgramListOptions filters and paginates program listings.
type ProgramListOptions struct {
	Status   string
	Language string
	Page     int64
	Limit    int64
}

// ListPrograms returns a page of programs merged for the language plus the
// total row count for pagination.
func (s *Service) ListPrograms(ctx context.Context, opts ProgramListOptions) ([]ProgramView, int64, error) {
	if opts.Status != "" && !model.IsValidStatus(opts.Status) {
		return nil, 0, validationErr("invalid status %q", opts.Status)
	}

	limit, offset := pageToRange(opts.Page, opts.Limit)

	var rows []store.Program
	var total int64
	var err error
	if opts.Status == "" {
		rows, err = s.queries.ListPrograms(ctx, store.ListProgramsParams{Limit: limit, Offset: offset})
		if err == nil {
			total, err = s.queries.CountPrograms(ctx)
		}
	} else {
		rows, err = s.queries.ListProgramsByStatus(ctx, store.ListProgramsByStatusParams{
			Status: opts.Status, Limit: limit, Offset: offset,
		})
		if err == nil {
			total, err = s.queries.CountProgramsByStatus(ctx, opts.Status)
		}
	}
	if err != nil {
		return nil, 0, fmt.Errorf("listing programs: %w", err)
	}

	views := make([]ProgramView, 0, len(rows))
	for _, p := range rows {
		v, err := s.mergeProgram(ctx, p, opts.Language)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, v)
	}
	return views, total, nil
}

// ListPublishedProgramsByType returns a page of published programs of one
// category, merged for the language.
func (s *Service) ListPublishedProgramsByType(ctx context.Context, programType, language string, page, limit int64) ([]ProgramView, int64, error) {
	if !model.IsValidProgramType(programType) {
		return nil, 0, validationErr("invalid program type %q", programType)
	}
	l, offset := pageToRange(page, limit)
	rows, err := s.queries.ListPublishedProgramsByType(ctx, store.ListPublishedProgramsByTypeParams{
		Type: programType, Limit: l, Offset: offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("listing programs: %w", err)
	}
	total, err := s.queries.CountPublishedProgramsByType(ctx, programType)
	if err != nil {
		return nil, 0, fmt.Errorf("counting programs: %w", err)
	}

	views := make([]ProgramView, 0, len(rows))
	for _, p := range rows {
		v, err := s.mergeProgram(ctx, p, language)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, v)
	}
	return views, total, nil
}

// blockColumns holds the serialized JSON column values of a program's blocks.
type blockColumns struct {
	gallery, highlights, itinerary, requirements, sessions string
}

func marshalBlockColumns(b model.ProgramBlocks) (blockColumns, error) {
	var cols blockColumns
	var err error
	if cols.gallery, err = model.MarshalGallery(b.Gallery); err != nil {
		return cols, err
	}
	if cols.highlights, err = model.MarshalStringList(b.Highlights); err != nil {
		return cols, err
	}
	if cols.itinerary, err = model.MarshalItinerary(b.Itinerary); err != nil {
		return cols, err
	}
	if cols.requirements, err = model.MarshalStringList(b.Requirements); err != nil {
		return cols, err
	}
	if cols.sessions, err = model.MarshalSessions(b.Sessions); err != nil {
		return cols, err
	}
	return cols, nil
}

// Pagination bounds shared by all listings.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// pageToRange converts 1-based page/limit into LIMIT/OFFSET, clamping out of
// range values to the defaults.
func pageToRange(page, limit int64) (int64, int64) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}
