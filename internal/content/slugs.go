// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/traveledu/tcms-go/internal/model"
	"github.com/traveledu/tcms-go/internal/store"
)

// ErrSlugConflict is returned when a slug collides at persist time. The
// uniqueness pre-check below holds no lock, so two concurrent writers can
// both see a slug as free; the loser's INSERT hits the UNIQUE index and the
// violation is translated into this error rather than a server fault.
var ErrSlugConflict = errors.New("slug already in use")

// TranslateUniqueViolation maps a database unique-constraint failure onto
// ErrSlugConflict, passing every other error through unchanged.
func TranslateUniqueViolation(err error) error {
	if store.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrSlugConflict, err)
	}
	return err
}

// slugTaken reports whether the candidate slug is used by any canonical row
// or translation row other than the entity itself.
func (s *Service) slugTaken(ctx context.Context, q *store.Queries, entityType, candidate, excludeID string) (bool, error) {
	var canonical int64
	var err error

	switch entityType {
	case model.EntityTypeProgram:
		if excludeID == "" {
			canonical, err = q.CountProgramSlug(ctx, candidate)
		} else {
			canonical, err = q.CountProgramSlugExcluding(ctx, store.CountProgramSlugExcludingParams{
				Slug: candidate, ID: excludeID,
			})
		}
	case model.EntityTypePost:
		if excludeID == "" {
			canonical, err = q.CountBlogPostSlug(ctx, candidate)
		} else {
			canonical, err = q.CountBlogPostSlugExcluding(ctx, store.CountBlogPostSlugExcludingParams{
				Slug: candidate, ID: excludeID,
			})
		}
	default:
		// Testimonials and hero banners have no canonical slug column;
		// only their translation rows can collide.
	}
	if err != nil {
		return false, fmt.Errorf("counting canonical slugs: %w", err)
	}
	if canonical > 0 {
		return true, nil
	}

	translated, err := q.CountTranslationSlug(ctx, candidate)
	if err != nil {
		return false, fmt.Errorf("counting translation slugs: %w", err)
	}
	if translated == 0 {
		return false, nil
	}

	if excludeID != "" {
		// The entity's own translation rows should not block a rename.
		own, err := q.ListTranslationsForEntity(ctx, store.ListTranslationsForEntityParams{
			EntityType: entityType, EntityID: excludeID,
		})
		if err != nil {
			return false, fmt.Errorf("listing own translations: %w", err)
		}
		for _, t := range own {
			if t.Slug == candidate {
				translated--
			}
		}
	}
	return translated > 0, nil
}

// EnsureUniqueSlug resolves base into a slug that is free across the
// entity's canonical table and the translations table, appending -1, -2, …
// until no conflict remains. excludeID skips the entity's own rows so an
// update can keep its slug. The check is advisory only: a concurrent writer
// can claim the slug between this check and the insert, in which case the
// UNIQUE index fires and the caller sees ErrSlugConflict.
func (s *Service) EnsureUniqueSlug(ctx context.Context, entityType, base, excludeID string) (string, error) {
	candidate := base
	for suffix := 1; ; suffix++ {
		taken, err := s.slugTaken(ctx, s.queries, entityType, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}
