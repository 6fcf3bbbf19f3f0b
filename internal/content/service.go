// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content implements the bilingual content model: canonical records
// in the base language, per-language translation overlays, slug resolution
// across both, and the showcase pointer sync that follows slug changes.
package content

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/traveledu/tcms-go/internal/cache"
	"github.com/traveledu/tcms-go/internal/model"
	"github.com/traveledu/tcms-go/internal/store"
)

// BaseLanguage is the canonical content language. Canonical rows hold the
// base-language text; every other language lives in the translations table.
const BaseLanguage = model.LanguageChinese

// Service coordinates content reads and writes across the canonical tables
// and the translations table.
type Service struct {
	db        *sql.DB
	queries   *store.Queries
	cache     cache.Cacher
	languages *cache.TypedCache[[]store.Language]
}

// NewService creates a content service. The cache may be nil; it is cleared
// on every admin write so public reads never serve stale merged views.
func NewService(db *sql.DB, c cache.Cacher) *Service {
	s := &Service{
		db:      db,
		queries: store.New(db),
		cache:   c,
	}
	if c != nil {
		s.languages = cache.NewTypedCache[[]store.Language](c, time.Hour)
	}
	return s
}

// Queries exposes the underlying query layer for callers that need raw rows.
func (s *Service) Queries() *store.Queries {
	return s.queries
}

// InvalidateCache drops all cached public responses. Exposed for callers
// that publish outside the service, like the scheduler.
func (s *Service) InvalidateCache(ctx context.Context) {
	s.invalidate(ctx)
}

// invalidate drops all cached public responses after a write.
func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Clear(ctx)
	}
}

const activeLanguagesKey = "languages:active"

// ActiveLanguages returns the active language rows ordered by position.
// The set changes only by migration or manual edit, so it is memoized; the
// write-path Clear drops the memo along with everything else.
func (s *Service) ActiveLanguages(ctx context.Context) ([]store.Language, error) {
	if s.languages != nil {
		if rows, ok := s.languages.Get(ctx, activeLanguagesKey); ok {
			return *rows, nil
		}
	}
	rows, err := s.queries.ListActiveLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing languages: %w", err)
	}
	if s.languages != nil {
		_ = s.languages.Set(ctx, activeLanguagesKey, &rows)
	}
	return rows, nil
}

// withTx runs fn inside a transaction, committing on nil error.
func (s *Service) withTx(ctx context.Context, fn func(q *store.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(s.queries.WithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
