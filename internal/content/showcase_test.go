// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/traveledu/tcms-go/internal/model"
	"github.com/traveledu/tcms-go/internal/store"
)

func TestCreateShowcaseValidatesPointer(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:   model.ProgramTypeSummerCamp,
		Title:  "Oxford Summer School",
		Status: model.StatusPublished,
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}

	if _, err := svc.CreateShowcase(ctx, ShowcaseInput{
		ProgramType: model.ProgramTypeSummerCamp,
		ProgramSlug: p.Slug,
	}); err != nil {
		t.Fatalf("CreateShowcase: %v", err)
	}

	// Unknown slug is rejected at creation time.
	if _, err := svc.CreateShowcase(ctx, ShowcaseInput{
		ProgramType: model.ProgramTypeSummerCamp,
		ProgramSlug: "no-such-program",
	}); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown slug err = %v, want ErrValidation", err)
	}

	// Category mismatch is rejected too.
	if _, err := svc.CreateShowcase(ctx, ShowcaseInput{
		ProgramType: model.ProgramTypeWinterCamp,
		ProgramSlug: p.Slug,
	}); !errors.Is(err, ErrValidation) {
		t.Errorf("type mismatch err = %v, want ErrValidation", err)
	}
}

func TestSlugChangeRetargetsShowcases(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:   model.ProgramTypeStudyTour,
		Title:  "Kyoto Culture Tour",
		Status: model.StatusPublished,
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	sc, err := svc.CreateShowcase(ctx, ShowcaseInput{
		ProgramType: model.ProgramTypeStudyTour,
		ProgramSlug: p.Slug,
	})
	if err != nil {
		t.Fatalf("CreateShowcase: %v", err)
	}

	// A second showcase for a different program must not be touched.
	other, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:   model.ProgramTypeStudyTour,
		Title:  "Nara Culture Tour",
		Status: model.StatusPublished,
	})
	if err != nil {
		t.Fatalf("CreateProgram(other): %v", err)
	}
	if _, err := svc.CreateShowcase(ctx, ShowcaseInput{
		ProgramType: model.ProgramTypeStudyTour,
		ProgramSlug: other.Slug,
	}); err != nil {
		t.Fatalf("CreateShowcase(other): %v", err)
	}

	if _, err := svc.UpdateProgram(ctx, p.ID, ProgramInput{
		Type:   model.ProgramTypeStudyTour,
		Title:  "Kyoto Culture Tour",
		Slug:   "kyoto-heritage-tour",
		Status: model.StatusPublished,
	}); err != nil {
		t.Fatalf("UpdateProgram: %v", err)
	}

	// The pointer sync commits with the slug change.
	got, err := svc.Queries().GetShowcaseByID(ctx, sc.ID)
	if err != nil {
		t.Fatalf("GetShowcaseByID: %v", err)
	}
	if got.ProgramSlug != "kyoto-heritage-tour" {
		t.Fatalf("showcase points at %q, want retargeted slug", got.ProgramSlug)
	}

	rows, err := svc.ListShowcases(ctx)
	if err != nil {
		t.Fatalf("ListShowcases: %v", err)
	}
	for _, r := range rows {
		if r.ID != sc.ID && r.ProgramSlug != other.Slug {
			t.Errorf("unrelated showcase retargeted to %q", r.ProgramSlug)
		}
	}
}

func TestRepairShowcases(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:   model.ProgramTypeExchange,
		Title:  "Melbourne Exchange Semester",
		Status: model.StatusPublished,
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}

	valid, err := svc.CreateShowcase(ctx, ShowcaseInput{
		ProgramType: model.ProgramTypeExchange,
		ProgramSlug: p.Slug,
	})
	if err != nil {
		t.Fatalf("CreateShowcase: %v", err)
	}

	// Write a dangling pointer straight into the table, bypassing the
	// validation: an old slug the program no longer has, but close enough
	// to the title for the fuzzy match.
	now := time.Now()
	dangling, err := svc.Queries().CreateShowcase(ctx, store.CreateShowcaseParams{
		ID:          uuid.NewString(),
		ProgramType: model.ProgramTypeExchange,
		ProgramSlug: "melbourne-exchange",
		Position:    1,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("inserting dangling showcase: %v", err)
	}

	// And one the scan cannot possibly resolve.
	broken, err := svc.Queries().CreateShowcase(ctx, store.CreateShowcaseParams{
		ID:          uuid.NewString(),
		ProgramType: model.ProgramTypeExchange,
		ProgramSlug: "completely-unrelated",
		Position:    2,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("inserting broken showcase: %v", err)
	}

	results, err := svc.RepairShowcases(ctx)
	if err != nil {
		t.Fatalf("RepairShowcases: %v", err)
	}

	byID := make(map[string]RepairResult, len(results))
	for _, r := range results {
		byID[r.ShowcaseID] = r
	}

	if got := byID[valid.ID]; got.Status != RepairValid {
		t.Errorf("valid row status = %q, want %q", got.Status, RepairValid)
	}
	if got := byID[dangling.ID]; got.Status != RepairFixed || got.NewSlug != p.Slug {
		t.Errorf("dangling row = %+v, want fixed -> %q", got, p.Slug)
	}
	if got := byID[broken.ID]; got.Status != RepairError {
		t.Errorf("broken row status = %q, want %q", got.Status, RepairError)
	}

	// The fix is persisted.
	row, err := svc.Queries().GetShowcaseByID(ctx, dangling.ID)
	if err != nil {
		t.Fatalf("GetShowcaseByID: %v", err)
	}
	if row.ProgramSlug != p.Slug {
		t.Errorf("persisted slug = %q, want %q", row.ProgramSlug, p.Slug)
	}
}

func TestListShowcaseEntriesSkipsDangling(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:   model.ProgramTypeSummerCamp,
		Title:  "Vancouver Eco Camp",
		Status: model.StatusPublished,
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	if _, err := svc.CreateShowcase(ctx, ShowcaseInput{
		ProgramType: model.ProgramTypeSummerCamp,
		ProgramSlug: p.Slug,
	}); err != nil {
		t.Fatalf("CreateShowcase: %v", err)
	}

	now := time.Now()
	if _, err := svc.Queries().CreateShowcase(ctx, store.CreateShowcaseParams{
		ID:          uuid.NewString(),
		ProgramType: model.ProgramTypeSummerCamp,
		ProgramSlug: "gone-program",
		Position:    1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		t.Fatalf("inserting dangling showcase: %v", err)
	}

	entries, err := svc.ListShowcaseEntries(ctx, BaseLanguage)
	if err != nil {
		t.Fatalf("ListShowcaseEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1 (dangling row skipped)", len(entries))
	}
	if entries[0].Program == nil || entries[0].Program.ID != p.ID {
		t.Errorf("entry resolved to %+v", entries[0].Program)
	}
}

func TestDeleteProgramLeavesShowcasesDangling(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:   model.ProgramTypeWinterCamp,
		Title:  "Hokkaido Winter Camp",
		Status: model.StatusPublished,
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}

	var ids []string
	for pos := int64(0); pos < 2; pos++ {
		sc, err := svc.CreateShowcase(ctx, ShowcaseInput{
			ProgramType: model.ProgramTypeWinterCamp,
			ProgramSlug: p.Slug,
			Position:    pos,
		})
		if err != nil {
			t.Fatalf("CreateShowcase(%d): %v", pos, err)
		}
		ids = append(ids, sc.ID)
	}

	// Deleting the program does NOT cascade into showcases; the pointers
	// stay dangling until the repair scan looks at them.
	if err := svc.DeleteProgram(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProgram: %v", err)
	}
	for _, id := range ids {
		row, err := svc.Queries().GetShowcaseByID(ctx, id)
		if err != nil {
			t.Fatalf("showcase row %s gone after program delete: %v", id, err)
		}
		if row.ProgramSlug != p.Slug {
			t.Errorf("showcase %s slug = %q, want the stale %q", id, row.ProgramSlug, p.Slug)
		}
	}

	// With the only winter camp deleted, the scan has nothing to retarget
	// to and must flag every row for an operator.
	results, err := svc.RepairShowcases(ctx)
	if err != nil {
		t.Fatalf("RepairShowcases: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("repair reported %d rows, want 2", len(results))
	}
	for _, r := range results {
		if r.Status != RepairError {
			t.Errorf("row %s status = %q, want %q", r.ShowcaseID, r.Status, RepairError)
		}
	}
}
