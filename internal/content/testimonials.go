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

// TestimonialInput carries the writable fields of a testimonial. Non-base
// languages translate the quote and the author role; the author name and the
// program type stay canonical.
type TestimonialInput struct {
	Language      string
	AuthorName    string
	AuthorRole    string
	Quote         string
	ProgramType   string
	AvatarMediaID *string
	Status        string
}

func (in *TestimonialInput) normalize() error {
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
	if in.Quote == "" {
		return validationErr("quote is required")
	}
	return nil
}

// CreateTestimonial creates a testimonial in the base language.
func (s *Service) CreateTestimonial(ctx context.Context, in TestimonialInput) (TestimonialView, error) {
	if err := in.normalize(); err != nil {
		return TestimonialView{}, err
	}
	if in.Language != BaseLanguage {
		return TestimonialView{}, validationErr("testimonials are created in the base language %q; add translations after", BaseLanguage)
	}
	if in.AuthorName == "" {
		return TestimonialView{}, validationErr("author name is required")
	}
	if in.ProgramType != "" && !model.IsValidProgramType(in.ProgramType) {
		return TestimonialView{}, validationErr("invalid program type %q", in.ProgramType)
	}

	now := time.Now()
	tm, err := s.queries.CreateTestimonial(ctx, store.CreateTestimonialParams{
		ID:            uuid.NewString(),
		AuthorName:    in.AuthorName,
		AuthorRole:    in.AuthorRole,
		Quote:         in.Quote,
		ProgramType:   in.ProgramType,
		AvatarMediaID: util.NullStringFromPtr(in.AvatarMediaID),
		Status:        in.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return TestimonialView{}, err
	}

	if in.Status == model.StatusPublished {
		tm, err = s.queries.PublishTestimonial(ctx, store.PublishTestimonialParams{
			ID: tm.ID, PublishedAt: now, UpdatedAt: now,
		})
		if err != nil {
			return TestimonialView{}, fmt.Errorf("publishing new testimonial: %w", err)
		}
	}

	s.invalidate(ctx)
	return s.mergeTestimonial(ctx, tm, BaseLanguage)
}

// UpdateTestimonial applies an edit in one language.
func (s *Service) UpdateTestimonial(ctx context.Context, id string, in TestimonialInput) (TestimonialView, error) {
	if err := in.normalize(); err != nil {
		return TestimonialView{}, err
	}

	tm, err := s.queries.GetTestimonialByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TestimonialView{}, ErrNotFound
		}
		return TestimonialView{}, fmt.Errorf("loading testimonial: %w", err)
	}

	if in.Language != BaseLanguage {
		// Translation rows carry generic field names: the quote travels as
		// the title, the author role as the summary.
		if _, err := s.SaveTranslation(ctx, model.EntityTypeTestimonial, tm.ID, in.Language, TranslationText{
			Title: in.Quote, Summary: in.AuthorRole,
		}); err != nil {
			return TestimonialView{}, err
		}
		if err := s.applyTestimonialStatus(ctx, &tm, in.Status); err != nil {
			return TestimonialView{}, err
		}
		s.invalidate(ctx)
		return s.mergeTestimonial(ctx, tm, in.Language)
	}

	if in.AuthorName == "" {
		return TestimonialView{}, validationErr("author name is required")
	}
	if in.ProgramType != "" && !model.IsValidProgramType(in.ProgramType) {
		return TestimonialView{}, validationErr("invalid program type %q", in.ProgramType)
	}

	tm, err = s.queries.UpdateTestimonial(ctx, store.UpdateTestimonialParams{
		ID:            tm.ID,
		AuthorName:    in.AuthorName,
		AuthorRole:    in.AuthorRole,
		Quote:         in.Quote,
		ProgramType:   in.ProgramType,
		AvatarMediaID: util.NullStringFromPtr(in.AvatarMediaID),
		Status:        in.Status,
		UpdatedAt:     time.Now(),
	})
	if err != nil {
		return TestimonialView{}, err
	}

	if err := s.applyTestimonialStatus(ctx, &tm, in.Status); err != nil {
		return TestimonialView{}, err
	}

	s.invalidate(ctx)
	return s.mergeTestimonial(ctx, tm, BaseLanguage)
}

func (s *Service) applyTestimonialStatus(ctx context.Context, tm *store.Testimonial, status string) error {
	if status != model.StatusPublished {
		return nil
	}
	now := time.Now()
	updated, err := s.queries.PublishTestimonial(ctx, store.PublishTestimonialParams{
		ID: tm.ID, PublishedAt: now, UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("publishing testimonial: %w", err)
	}
	*tm = updated
	return nil
}

// DeleteTestimonial removes a testimonial and its translations.
func (s *Service) DeleteTestimonial(ctx context.Context, id string) error {
	err := s.withTx(ctx, func(q *store.Queries) error {
		if _, err := q.GetTestimonialByID(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("loading testimonial: %w", err)
		}
		if err := q.DeleteTranslationsForEntity(ctx, store.DeleteTranslationsForEntityParams{
			EntityType: model.EntityTypeTestimonial, EntityID: id,
		}); err != nil {
			return fmt.Errorf("deleting translations: %w", err)
		}
		if err := q.DeleteTestimonial(ctx, id); err != nil {
			return fmt.Errorf("deleting testimonial: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// GetTestimonial returns one testimonial merged for the language.
func (s *Service) GetTestimonial(ctx context.Context, id, language string) (TestimonialView, error) {
	tm, err := s.queries.GetTestimonialByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TestimonialView{}, ErrNotFound
		}
		return TestimonialView{}, fmt.Errorf("loading testimonial: %w", err)
	}
	return s.mergeTestimonial(ctx, tm, language)
}

// ListTestimonials returns a page of testimonials merged for the language.
// Status filters when set; public reads pass the published status.
func (s *Service) ListTestimonials(ctx context.Context, status, language string, page, limit int64) ([]TestimonialView, int64, error) {
	if status != "" && !model.IsValidStatus(status) {
		return nil, 0, validationErr("invalid status %q", status)
	}

	l, offset := pageToRange(page, limit)

	var rows []store.Testimonial
	var total int64
	var err error
	if status == "" {
		rows, err = s.queries.ListTestimonials(ctx, store.ListTestimonialsParams{Limit: l, Offset: offset})
		if err == nil {
			total, err = s.queries.CountTestimonials(ctx)
		}
	} else {
		rows, err = s.queries.ListTestimonialsByStatus(ctx, store.ListTestimonialsByStatusParams{
			Status: status, Limit: l, Offset: offset,
		})
		if err == nil {
			total, err = s.queries.CountTestimonialsByStatus(ctx, status)
		}
	}
	if err != nil {
		return nil, 0, fmt.Errorf("listing testimonials: %w", err)
	}

	views := make([]TestimonialView, 0, len(rows))
	for _, tm := range rows {
		v, err := s.mergeTestimonial(ctx, tm, language)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, v)
	}
	return views, total, nil
}
