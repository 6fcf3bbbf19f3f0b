// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/traveledu/tcms-go/internal/model"
	"github.com/traveledu/tcms-go/internal/store"
	"github.com/traveledu/tcms-go/internal/util"
)

// retargetShowcases rewrites showcase rows pointing at (programType, oldSlug)
// to the new slug. It runs inside the same transaction as the slug change, so
// a committed showcase row never holds a slug its program no longer has.
// Deletes still leave dangling rows; those are the repair scan's job.
func (s *Service) retargetShowcases(ctx context.Context, q *store.Queries, programType, oldSlug, newSlug string) error {
	n, err := q.RetargetShowcases(ctx, store.RetargetShowcasesParams{
		NewSlug:     newSlug,
		UpdatedAt:   time.Now(),
		ProgramType: programType,
		OldSlug:     oldSlug,
	})
	if err != nil {
		return fmt.Errorf("retargeting showcases: %w", err)
	}
	if n > 0 {
		slog.Info("showcase pointers retargeted",
			"category", model.EventCategoryShowcase,
			"program_type", programType,
			"old_slug", oldSlug,
			"new_slug", newSlug,
			"rows", n,
		)
	}
	return nil
}

// Repair statuses per showcase row.
const (
	RepairValid = "valid"
	RepairFixed = "fixed"
	RepairError = "error"
)

// RepairResult reports the outcome of the repair scan for one showcase row.
type RepairResult struct {
	ShowcaseID  string `json:"showcaseId"`
	ProgramType string `json:"programType"`
	ProgramSlug string `json:"programSlug"`
	Status      string `json:"status"`
	NewSlug     string `json:"newSlug,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// RepairShowcases scans every showcase row and verifies its program pointer.
// A pointer whose slug matches a live program of the same type is valid. A
// dangling pointer is matched against the type's programs by fuzzy title
// comparison; a single match rewrites the pointer (fixed), anything else is
// an error for an operator to resolve.
func (s *Service) RepairShowcases(ctx context.Context) ([]RepairResult, error) {
	rows, err := s.queries.ListShowcases(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing showcases: %w", err)
	}

	results := make([]RepairResult, 0, len(rows))
	fixed := 0
	for _, sc := range rows {
		res := s.repairRow(ctx, sc)
		if res.Status == RepairFixed {
			fixed++
		}
		results = append(results, res)
	}

	if fixed > 0 {
		s.invalidate(ctx)
	}
	slog.Info("showcase repair scan finished",
		"rows", len(results),
		"fixed", fixed,
	)
	return results, nil
}

func (s *Service) repairRow(ctx context.Context, sc store.Showcase) RepairResult {
	res := RepairResult{
		ShowcaseID:  sc.ID,
		ProgramType: sc.ProgramType,
		ProgramSlug: sc.ProgramSlug,
	}

	p, err := s.queries.GetProgramBySlug(ctx, sc.ProgramSlug)
	if err == nil {
		if p.Type == sc.ProgramType {
			res.Status = RepairValid
			return res
		}
		// Slug exists but under another category; fall through to the
		// fuzzy match within the row's own category.
	} else if !errors.Is(err, sql.ErrNoRows) {
		res.Status = RepairError
		res.Detail = err.Error()
		return res
	}

	candidates, err := s.queries.ListProgramsByType(ctx, sc.ProgramType)
	if err != nil {
		res.Status = RepairError
		res.Detail = err.Error()
		return res
	}

	match, matches := s.fuzzyMatch(sc.ProgramSlug, candidates)
	switch matches {
	case 0:
		res.Status = RepairError
		res.Detail = "no program matches the dangling pointer"
	case 1:
		if err := s.retargetRow(ctx, sc, match.Slug); err != nil {
			res.Status = RepairError
			res.Detail = err.Error()
			return res
		}
		res.Status = RepairFixed
		res.NewSlug = match.Slug
		slog.Warn("showcase pointer repaired",
			"category", model.EventCategoryShowcase,
			"showcase_id", sc.ID,
			"old_slug", sc.ProgramSlug,
			"new_slug", match.Slug,
		)
	default:
		res.Status = RepairError
		res.Detail = fmt.Sprintf("%d programs match the dangling pointer", matches)
	}
	return res
}

// fuzzyMatch finds programs whose normalized title or slug contains the
// dangling slug's normalized form or vice versa. Returns the last match and
// the match count; the fix only applies when the count is exactly one.
func (s *Service) fuzzyMatch(danglingSlug string, candidates []store.Program) (store.Program, int) {
	needle := normalizeForMatch(danglingSlug)
	if needle == "" {
		return store.Program{}, 0
	}

	var match store.Program
	matches := 0
	for _, c := range candidates {
		title := normalizeForMatch(c.Title)
		slug := normalizeForMatch(c.Slug)
		if containsEither(title, needle) || containsEither(slug, needle) {
			match = c
			matches++
		}
	}
	return match, matches
}

func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// normalizeForMatch reduces a title or slug to a comparable token string.
func normalizeForMatch(s string) string {
	return strings.ReplaceAll(util.Slugify(s), "-", "")
}

func (s *Service) retargetRow(ctx context.Context, sc store.Showcase, newSlug string) error {
	_, err := s.queries.UpdateShowcase(ctx, store.UpdateShowcaseParams{
		ID:          sc.ID,
		ProgramType: sc.ProgramType,
		ProgramSlug: newSlug,
		Position:    sc.Position,
		UpdatedAt:   time.Now(),
	})
	return err
}

// ShowcaseInput carries the writable fields of a showcase entry.
type ShowcaseInput struct {
	ProgramType string
	ProgramSlug string
	Position    int64
}

// CreateShowcase adds a showcase entry. The (type, slug) pointer must match
// a live program at creation time; afterwards drift is tolerated until the
// repair scan runs.
func (s *Service) CreateShowcase(ctx context.Context, in ShowcaseInput) (store.Showcase, error) {
	if !model.IsValidProgramType(in.ProgramType) {
		return store.Showcase{}, validationErr("invalid program type %q", in.ProgramType)
	}
	p, err := s.queries.GetProgramBySlug(ctx, in.ProgramSlug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Showcase{}, validationErr("no program with slug %q", in.ProgramSlug)
		}
		return store.Showcase{}, fmt.Errorf("resolving program: %w", err)
	}
	if p.Type != in.ProgramType {
		return store.Showcase{}, validationErr("program %q has type %q, not %q", in.ProgramSlug, p.Type, in.ProgramType)
	}

	now := time.Now()
	sc, err := s.queries.CreateShowcase(ctx, store.CreateShowcaseParams{
		ID:          uuid.NewString(),
		ProgramType: in.ProgramType,
		ProgramSlug: in.ProgramSlug,
		Position:    in.Position,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return store.Showcase{}, err
	}
	s.invalidate(ctx)
	return sc, nil
}

// UpdateShowcase edits a showcase entry with the same pointer validation as
// creation.
func (s *Service) UpdateShowcase(ctx context.Context, id string, in ShowcaseInput) (store.Showcase, error) {
	if !model.IsValidProgramType(in.ProgramType) {
		return store.Showcase{}, validationErr("invalid program type %q", in.ProgramType)
	}
	if _, err := s.queries.GetShowcaseByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Showcase{}, ErrNotFound
		}
		return store.Showcase{}, fmt.Errorf("loading showcase: %w", err)
	}
	p, err := s.queries.GetProgramBySlug(ctx, in.ProgramSlug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Showcase{}, validationErr("no program with slug %q", in.ProgramSlug)
		}
		return store.Showcase{}, fmt.Errorf("resolving program: %w", err)
	}
	if p.Type != in.ProgramType {
		return store.Showcase{}, validationErr("program %q has type %q, not %q", in.ProgramSlug, p.Type, in.ProgramType)
	}

	sc, err := s.queries.UpdateShowcase(ctx, store.UpdateShowcaseParams{
		ID:          id,
		ProgramType: in.ProgramType,
		ProgramSlug: in.ProgramSlug,
		Position:    in.Position,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		return store.Showcase{}, err
	}
	s.invalidate(ctx)
	return sc, nil
}

// DeleteShowcase removes a showcase entry.
func (s *Service) DeleteShowcase(ctx context.Context, id string) error {
	if _, err := s.queries.GetShowcaseByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("loading showcase: %w", err)
	}
	if err := s.queries.DeleteShowcase(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ShowcaseEntry is a showcase row resolved against its program for public
// reads. Program is nil when the pointer is dangling; such rows are skipped
// by the public listing.
type ShowcaseEntry struct {
	Showcase store.Showcase
	Program  *ProgramView
}

// ListShowcaseEntries resolves every showcase row against published programs
// merged for the language. Dangling rows are dropped from the result; they
// stay in the table for the repair scan.
func (s *Service) ListShowcaseEntries(ctx context.Context, language string) ([]ShowcaseEntry, error) {
	rows, err := s.queries.ListShowcases(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing showcases: %w", err)
	}

	entries := make([]ShowcaseEntry, 0, len(rows))
	for _, sc := range rows {
		p, err := s.queries.GetPublishedProgramBySlug(ctx, sc.ProgramSlug)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, fmt.Errorf("resolving showcase program: %w", err)
		}
		if p.Type != sc.ProgramType {
			continue
		}
		view, err := s.mergeProgram(ctx, p, language)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ShowcaseEntry{Showcase: sc, Program: &view})
	}
	return entries, nil
}

// ListShowcases returns the raw showcase rows for the admin panel.
func (s *Service) ListShowcases(ctx context.Context) ([]store.Showcase, error) {
	return s.queries.ListShowcases(ctx)
}
