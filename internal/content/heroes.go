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

// HeroInput carries the writable fields of a hero banner. Non-base languages
// translate the headline, subheadline and call-to-action label; the link URL,
// media and position stay canonical.
type HeroInput struct {
	Language    string
	Headline    string
	Subheadline string
	CtaLabel    string
	CtaURL      string
	MediaID     *string
	Position    int64
	Status      string
}

func (in *HeroInput) normalize() error {
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
	if in.Headline == "" {
		return validationErr("headline is required")
	}
	return nil
}

// CreateHero creates a hero banner in the base language.
func (s *Service) CreateHero(ctx context.Context, in HeroInput) (HeroView, error) {
	if err := in.normalize(); err != nil {
		return HeroView{}, err
	}
	if in.Language != BaseLanguage {
		return HeroView{}, validationErr("hero banners are created in the base language %q; add translations after", BaseLanguage)
	}

	now := time.Now()
	h, err := s.queries.CreateHeroBanner(ctx, store.CreateHeroBannerParams{
		ID:          uuid.NewString(),
		Headline:    in.Headline,
		Subheadline: in.Subheadline,
		CtaLabel:    in.CtaLabel,
		CtaUrl:      in.CtaURL,
		MediaID:     util.NullStringFromPtr(in.MediaID),
		Position:    in.Position,
		Status:      in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return HeroView{}, err
	}

	if in.Status == model.StatusPublished {
		h, err = s.queries.PublishHeroBanner(ctx, store.PublishHeroBannerParams{
			ID: h.ID, PublishedAt: now, UpdatedAt: now,
		})
		if err != nil {
			return HeroView{}, fmt.Errorf("publishing new hero banner: %w", err)
		}
	}

	s.invalidate(ctx)
	return s.mergeHero(ctx, h, BaseLanguage)
}

// UpdateHero applies an edit in one language.
func (s *Service) UpdateHero(ctx context.Context, id string, in HeroInput) (HeroView, error) {
	if err := in.normalize(); err != nil {
		return HeroView{}, err
	}

	h, err := s.queries.GetHeroBannerByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return HeroView{}, ErrNotFound
		}
		return HeroView{}, fmt.Errorf("loading hero banner: %w", err)
	}

	if in.Language != BaseLanguage {
		// Headline rides in the title field, subheadline in the summary,
		// the call-to-action label in the body.
		if _, err := s.SaveTranslation(ctx, model.EntityTypeHero, h.ID, in.Language, TranslationText{
			Title: in.Headline, Summary: in.Subheadline, Body: in.CtaLabel,
		}); err != nil {
			return HeroView{}, err
		}
		if err := s.applyHeroStatus(ctx, &h, in.Status); err != nil {
			return HeroView{}, err
		}
		s.invalidate(ctx)
		return s.mergeHero(ctx, h, in.Language)
	}

	h, err = s.queries.UpdateHeroBanner(ctx, store.UpdateHeroBannerParams{
		ID:          h.ID,
		Headline:    in.Headline,
		Subheadline: in.Subheadline,
		CtaLabel:    in.CtaLabel,
		CtaUrl:      in.CtaURL,
		MediaID:     util.NullStringFromPtr(in.MediaID),
		Position:    in.Position,
		Status:      in.Status,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		return HeroView{}, err
	}

	if err := s.applyHeroStatus(ctx, &h, in.Status); err != nil {
		return HeroView{}, err
	}

	s.invalidate(ctx)
	return s.mergeHero(ctx, h, BaseLanguage)
}

func (s *Service) applyHeroStatus(ctx context.Context, h *store.HeroBanner, status string) error {
	if status != model.StatusPublished {
		return nil
	}
	now := time.Now()
	updated, err := s.queries.PublishHeroBanner(ctx, store.PublishHeroBannerParams{
		ID: h.ID, PublishedAt: now, UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("publishing hero banner: %w", err)
	}
	*h = updated
	return nil
}

// DeleteHero removes a hero banner and its translations.
func (s *Service) DeleteHero(ctx context.Context, id string) error {
	err := s.withTx(ctx, func(q *store.Queries) error {
		if _, err := q.GetHeroBannerByID(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("loading hero banner: %w", err)
		}
		if err := q.DeleteTranslationsForEntity(ctx, store.DeleteTranslationsForEntityParams{
			EntityType: model.EntityTypeHero, EntityID: id,
		}); err != nil {
			return fmt.Errorf("deleting translations: %w", err)
		}
		if err := q.DeleteHeroBanner(ctx, id); err != nil {
			return fmt.Errorf("deleting hero banner: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// GetHero returns one hero banner merged for the language.
func (s *Service) GetHero(ctx context.Context, id, language string) (HeroView, error) {
	h, err := s.queries.GetHeroBannerByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return HeroView{}, ErrNotFound
		}
		return HeroView{}, fmt.Errorf("loading hero banner: %w", err)
	}
	return s.mergeHero(ctx, h, language)
}

// ListHeroes returns a page of hero banners in display order, merged for the
// language.
func (s *Service) ListHeroes(ctx context.Context, status, language string, page, limit int64) ([]HeroView, int64, error) {
	if status != "" && !model.IsValidStatus(status) {
		return nil, 0, validationErr("invalid status %q", status)
	}

	l, offset := pageToRange(page, limit)

	var rows []store.HeroBanner
	var total int64
	var err error
	if status == "" {
		rows, err = s.queries.ListHeroBanners(ctx, store.ListHeroBannersParams{Limit: l, Offset: offset})
		if err == nil {
			total, err = s.queries.CountHeroBanners(ctx)
		}
	} else {
		rows, err = s.queries.ListHeroBannersByStatus(ctx, store.ListHeroBannersByStatusParams{
			Status: status, Limit: l, Offset: offset,
		})
		if err == nil {
			total, err = s.queries.CountHeroBannersByStatus(ctx, status)
		}
	}
	if err != nil {
		return nil, 0, fmt.Errorf("listing hero banners: %w", err)
	}

	views := make([]HeroView, 0, len(rows))
	for _, h := range rows {
		v, err := s.mergeHero(ctx, h, language)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, v)
	}
	return views, total, nil
}
