// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/traveledu/tcms-go/internal/model"
	"github.com/traveledu/tcms-go/internal/util"
)

func TestCreateProgramDerivesSlug(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:  model.ProgramTypeSummerCamp,
		Title: "Tokyo Summer Camp",
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	if p.Slug != "tokyo-summer-camp" {
		t.Errorf("slug = %q, want tokyo-summer-camp", p.Slug)
	}
	if p.Status != model.StatusDraft {
		t.Errorf("status = %q, want draft", p.Status)
	}
	if p.Language != BaseLanguage {
		t.Errorf("language = %q, want %q", p.Language, BaseLanguage)
	}
}

func TestCreateProgramChineseTitleFallsBack(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()

	p, err := svc.CreateProgram(context.Background(), authorID, ProgramInput{
		Type:  model.ProgramTypeStudyTour,
		Title: "北京研学之旅",
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	if !util.IsFallbackSlug(p.Slug) {
		t.Errorf("slug = %q, want timestamp fallback", p.Slug)
	}
}

func TestCreateProgramSlugSuffixing(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	want := []string{"winter-camp", "winter-camp-1", "winter-camp-2"}
	for i, w := range want {
		p, err := svc.CreateProgram(ctx, authorID, ProgramInput{
			Type:  model.ProgramTypeWinterCamp,
			Title: "Winter Camp",
		})
		if err != nil {
			t.Fatalf("CreateProgram #%d: %v", i, err)
		}
		if p.Slug != w {
			t.Errorf("program #%d slug = %q, want %q", i, p.Slug, w)
		}
	}
}

func TestCreateProgramRejectsNonBaseLanguage(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()

	_, err := svc.CreateProgram(context.Background(), authorID, ProgramInput{
		Type:     model.ProgramTypeExchange,
		Language: model.LanguageEnglish,
		Title:    "Exchange Semester",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestUpdateProgramTranslationRoundTrip(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:    model.ProgramTypeStudyTour,
		Title:   "故宫深度研学",
		Summary: "五天四夜",
		Body:    "详细介绍",
		Blocks:  model.ProgramBlocks{Highlights: []string{"故宫", "长城"}},
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}

	if _, err := svc.UpdateProgram(ctx, p.ID, ProgramInput{
		Language: model.LanguageEnglish,
		Title:    "Forbidden City Study Tour",
		Summary:  "Five days, four nights",
		Body:     "Full description",
		Blocks:   model.ProgramBlocks{Highlights: []string{"Forbidden City", "Great Wall"}},
	}); err != nil {
		t.Fatalf("UpdateProgram(en): %v", err)
	}

	en, err := svc.GetProgram(ctx, p.ID, model.LanguageEnglish)
	if err != nil {
		t.Fatalf("GetProgram(en): %v", err)
	}
	if !en.Translated {
		t.Error("en view not marked translated")
	}
	if en.Title != "Forbidden City Study Tour" {
		t.Errorf("en title = %q", en.Title)
	}
	if en.Slug != "forbidden-city-study-tour" {
		t.Errorf("en slug = %q, want forbidden-city-study-tour", en.Slug)
	}
	if len(en.Blocks.Highlights) != 2 || en.Blocks.Highlights[0] != "Forbidden City" {
		t.Errorf("en highlights = %v", en.Blocks.Highlights)
	}

	// The base-language view stays untouched by the translation write.
	zh, err := svc.GetProgram(ctx, p.ID, BaseLanguage)
	if err != nil {
		t.Fatalf("GetProgram(zh): %v", err)
	}
	if zh.Title != "故宫深度研学" || zh.Summary != "五天四夜" {
		t.Errorf("zh view changed: title=%q summary=%q", zh.Title, zh.Summary)
	}
}

func TestGetProgramUntranslatedLanguage(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:    model.ProgramTypeSummerCamp,
		Title:   "暑期国际营",
		Summary: "概要",
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}

	en, err := svc.GetProgram(ctx, p.ID, model.LanguageEnglish)
	if err != nil {
		t.Fatalf("GetProgram(en): %v", err)
	}
	if en.Translated {
		t.Error("untranslated view marked translated")
	}
	// Text stays empty rather than falling back to the base language; the
	// slug stays canonical so the record remains addressable.
	if en.Title != "" || en.Summary != "" || en.Body != "" {
		t.Errorf("untranslated text leaked: title=%q summary=%q", en.Title, en.Summary)
	}
	if en.Slug != p.Slug {
		t.Errorf("slug = %q, want canonical %q", en.Slug, p.Slug)
	}
}

func TestPublishProgramIdempotent(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:   model.ProgramTypeExchange,
		Title:  "Berlin Exchange",
		Status: model.StatusPublished,
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	if p.PublishedAt == nil {
		t.Fatal("publishedAt not set on publish")
	}
	first := *p.PublishedAt

	time.Sleep(20 * time.Millisecond)
	p2, err := svc.UpdateProgram(ctx, p.ID, ProgramInput{
		Type:   model.ProgramTypeExchange,
		Title:  "Berlin Exchange",
		Status: model.StatusPublished,
	})
	if err != nil {
		t.Fatalf("UpdateProgram: %v", err)
	}
	if p2.PublishedAt == nil || !p2.PublishedAt.Equal(first) {
		t.Errorf("publishedAt moved on re-publish: %v -> %v", first, p2.PublishedAt)
	}
}

func TestDeleteProgramCascadesTranslations(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:  model.ProgramTypeStudyTour,
		Title: "丝绸之路研学",
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	if _, err := svc.UpdateProgram(ctx, p.ID, ProgramInput{
		Language: model.LanguageEnglish,
		Title:    "Silk Road Study Tour",
	}); err != nil {
		t.Fatalf("UpdateProgram(en): %v", err)
	}

	if err := svc.DeleteProgram(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProgram: %v", err)
	}

	if _, err := svc.GetProgram(ctx, p.ID, BaseLanguage); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProgram after delete: %v, want ErrNotFound", err)
	}
	rows, err := svc.Translations(ctx, model.EntityTypeProgram, p.ID)
	if err != nil {
		t.Fatalf("Translations: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("%d translation rows survived the delete", len(rows))
	}
}

func TestDeleteProgramNotFound(t *testing.T) {
	svc, _, cleanup := testService(t)
	defer cleanup()

	if err := svc.DeleteProgram(context.Background(), "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetPublishedProgramBySlug(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:   model.ProgramTypeSummerCamp,
		Title:  "Singapore Coding Camp",
		Status: model.StatusPublished,
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	if _, err := svc.UpdateProgram(ctx, p.ID, ProgramInput{
		Language: model.LanguageEnglish,
		Title:    "Singapore Coding Camp EN",
	}); err != nil {
		t.Fatalf("UpdateProgram(en): %v", err)
	}

	// Canonical slug resolves.
	got, err := svc.GetPublishedProgramBySlug(ctx, p.Slug, BaseLanguage)
	if err != nil {
		t.Fatalf("canonical slug lookup: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("resolved id = %q, want %q", got.ID, p.ID)
	}

	// Translated slug resolves to the same program, merged for its language.
	got, err = svc.GetPublishedProgramBySlug(ctx, "singapore-coding-camp-en", "")
	if err != nil {
		t.Fatalf("translated slug lookup: %v", err)
	}
	if got.ID != p.ID || got.Language != model.LanguageEnglish {
		t.Errorf("resolved id=%q lang=%q", got.ID, got.Language)
	}

	// Drafts are invisible to published lookups.
	draft, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:  model.ProgramTypeSummerCamp,
		Title: "Unannounced Camp",
	})
	if err != nil {
		t.Fatalf("CreateProgram(draft): %v", err)
	}
	if _, err := svc.GetPublishedProgramBySlug(ctx, draft.Slug, BaseLanguage); !errors.Is(err, ErrNotFound) {
		t.Errorf("draft lookup err = %v, want ErrNotFound", err)
	}
}

func TestEnsureUniqueSlugAcrossTranslations(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:  model.ProgramTypeStudyTour,
		Title: "西安古都行",
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	if _, err := svc.UpdateProgram(ctx, p.ID, ProgramInput{
		Language: model.LanguageEnglish,
		Title:    "Ancient Capital Tour",
	}); err != nil {
		t.Fatalf("UpdateProgram(en): %v", err)
	}

	// A translation row now owns "ancient-capital-tour"; a new canonical
	// slug derived from the same words must step aside.
	p2, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:  model.ProgramTypeStudyTour,
		Title: "Ancient Capital Tour",
	})
	if err != nil {
		t.Fatalf("CreateProgram #2: %v", err)
	}
	if p2.Slug != "ancient-capital-tour-1" {
		t.Errorf("slug = %q, want ancient-capital-tour-1", p2.Slug)
	}
}

func TestListProgramsPagination(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		status := model.StatusDraft
		if i%2 == 0 {
			status = model.StatusPublished
		}
		if _, err := svc.CreateProgram(ctx, authorID, ProgramInput{
			Type:   model.ProgramTypeSummerCamp,
			Title:  "Camp " + string(rune('A'+i)),
			Status: status,
		}); err != nil {
			t.Fatalf("CreateProgram #%d: %v", i, err)
		}
	}

	views, total, err := svc.ListPrograms(ctx, ProgramListOptions{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("ListPrograms: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(views) != 2 {
		t.Errorf("page size = %d, want 2", len(views))
	}

	_, published, err := svc.ListPrograms(ctx, ProgramListOptions{Status: model.StatusPublished, Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("ListPrograms(published): %v", err)
	}
	if published != 3 {
		t.Errorf("published total = %d, want 3", published)
	}
}

func TestTranslationEditDoesNotPublishCanonical(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:  model.ProgramTypeSummerCamp,
		Title: "上海科创营",
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}

	// A translation upsert carrying a published status must not leak into
	// the canonical record.
	if _, err := svc.UpdateProgram(ctx, p.ID, ProgramInput{
		Language: model.LanguageEnglish,
		Title:    "Shanghai Tech Camp",
		Status:   model.StatusPublished,
	}); err != nil {
		t.Fatalf("UpdateProgram(en): %v", err)
	}

	got, err := svc.GetProgram(ctx, p.ID, BaseLanguage)
	if err != nil {
		t.Fatalf("GetProgram: %v", err)
	}
	if got.Status != model.StatusDraft {
		t.Errorf("canonical status = %q after translation edit, want %q", got.Status, model.StatusDraft)
	}
	if got.PublishedAt != nil {
		t.Errorf("canonical published_at set by translation edit: %v", got.PublishedAt)
	}
}

func TestPublishedSlugLookupErrorHandling(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:   model.ProgramTypeStudyTour,
		Title:  "Xi'an Heritage Tour",
		Status: model.StatusPublished,
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	if _, err := svc.UpdateProgram(ctx, p.ID, ProgramInput{
		Language: model.LanguageEnglish,
		Title:    "Xi'an Heritage Tour",
		Slug:     "xian-heritage-tour-en",
		Status:   model.StatusPublished,
	}); err != nil {
		t.Fatalf("UpdateProgram(en): %v", err)
	}

	// A post's translation slug must not resolve as a program.
	post, err := svc.CreatePost(ctx, authorID, PostInput{
		Title:  "报名指南",
		Status: model.StatusPublished,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if _, err := svc.UpdatePost(ctx, post.ID, PostInput{
		Language: model.LanguageEnglish,
		Title:    "Application Guide",
		Slug:     "application-guide",
	}); err != nil {
		t.Fatalf("UpdatePost(en): %v", err)
	}
	if _, err := svc.GetPublishedProgramBySlug(ctx, "application-guide", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-entity slug err = %v, want ErrNotFound", err)
	}

	if _, err := svc.GetPublishedProgramBySlug(ctx, "no-such-slug", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown slug err = %v, want ErrNotFound", err)
	}

	// An infrastructure failure is a real error, never a 404.
	_ = svc.db.Close()
	_, err = svc.GetPublishedProgramBySlug(ctx, p.Slug, "")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("closed database err = %v, want a non-not-found error", err)
	}
	_, err = svc.GetPublishedPostBySlug(ctx, "application-guide", "")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("closed database post err = %v, want a non-not-found error", err)
	}
}
