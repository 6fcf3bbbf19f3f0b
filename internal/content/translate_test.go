// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"testing"

	"github.com/traveledu/tcms-go/internal/model"
)

func TestSaveTranslationRejectsBaseLanguage(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:  model.ProgramTypeStudyTour,
		Title: "敦煌艺术研学",
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	if _, err := svc.SaveTranslation(ctx, model.EntityTypeProgram, p.ID, BaseLanguage, TranslationText{
		Title: "should not land",
	}); err == nil {
		t.Fatal("base-language translation accepted")
	}
}

func TestSaveTranslationUpserts(t *testing.T) {
	svc, authorID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, authorID, ProgramInput{
		Type:  model.ProgramTypeStudyTour,
		Title: "黄山自然营",
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}

	if _, err := svc.SaveTranslation(ctx, model.EntityTypeProgram, p.ID, model.LanguageEnglish, TranslationText{
		Title: "Huangshan Nature Camp",
	}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := svc.SaveTranslation(ctx, model.EntityTypeProgram, p.ID, model.LanguageEnglish, TranslationText{
		Title: "Mount Huang Nature Camp",
	}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	rows, err := svc.Translations(ctx, model.EntityTypeProgram, p.ID)
	if err != nil {
		t.Fatalf("Translations: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 (second save must overwrite)", len(rows))
	}
	if rows[0].Title != "Mount Huang Nature Camp" {
		t.Errorf("title = %q after upsert", rows[0].Title)
	}
}

func TestTestimonialTranslationMapping(t *testing.T) {
	svc, _, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	tm, err := svc.CreateTestimonial(ctx, TestimonialInput{
		AuthorName:  "王女士",
		AuthorRole:  "学生家长",
		Quote:       "孩子收获很大",
		ProgramType: model.ProgramTypeSummerCamp,
	})
	if err != nil {
		t.Fatalf("CreateTestimonial: %v", err)
	}

	if _, err := svc.UpdateTestimonial(ctx, tm.ID, TestimonialInput{
		Language:   model.LanguageEnglish,
		AuthorRole: "Parent",
		Quote:      "Our child learned so much",
	}); err != nil {
		t.Fatalf("UpdateTestimonial(en): %v", err)
	}

	en, err := svc.GetTestimonial(ctx, tm.ID, model.LanguageEnglish)
	if err != nil {
		t.Fatalf("GetTestimonial(en): %v", err)
	}
	if !en.Translated || en.Quote != "Our child learned so much" || en.AuthorRole != "Parent" {
		t.Errorf("en view = %+v", en)
	}
	// The author name is canonical, not translated.
	if en.AuthorName != "王女士" {
		t.Errorf("author name = %q", en.AuthorName)
	}

	// Without a translation the quote stays empty.
	fr, err := svc.GetTestimonial(ctx, tm.ID, "fr")
	if err != nil {
		t.Fatalf("GetTestimonial(fr): %v", err)
	}
	if fr.Translated || fr.Quote != "" || fr.AuthorRole != "" {
		t.Errorf("fr view = %+v", fr)
	}
}

func TestHeroTranslationMapping(t *testing.T) {
	svc, _, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	h, err := svc.CreateHero(ctx, HeroInput{
		Headline:    "探索世界课堂",
		Subheadline: "2026 夏季项目报名中",
		CtaLabel:    "立即报名",
		CtaURL:      "/programs/summer",
	})
	if err != nil {
		t.Fatalf("CreateHero: %v", err)
	}

	if _, err := svc.UpdateHero(ctx, h.ID, HeroInput{
		Language:    model.LanguageEnglish,
		Headline:    "Explore the World Classroom",
		Subheadline: "Summer 2026 enrollment open",
		CtaLabel:    "Apply Now",
	}); err != nil {
		t.Fatalf("UpdateHero(en): %v", err)
	}

	en, err := svc.GetHero(ctx, h.ID, model.LanguageEnglish)
	if err != nil {
		t.Fatalf("GetHero(en): %v", err)
	}
	if !en.Translated {
		t.Error("en view not marked translated")
	}
	if en.Headline != "Explore the World Classroom" || en.Subheadline != "Summer 2026 enrollment open" || en.CtaLabel != "Apply Now" {
		t.Errorf("en view = %+v", en)
	}
	// The link target is canonical.
	if en.CtaURL != "/programs/summer" {
		t.Errorf("cta url = %q", en.CtaURL)
	}
}
