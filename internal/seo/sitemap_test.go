// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
	"time"
)

func TestSitemapBuilderAddHomepage(t *testing.T) {
	builder := NewSitemapBuilder("https://example.com")
	builder.AddHomepage()

	if len(builder.urls) != 1 {
		t.Fatalf("urls length = %d, want 1", len(builder.urls))
	}

	url := builder.urls[0]
	if url.Loc != "https://example.com" {
		t.Errorf("Loc = %q, want %q", url.Loc, "https://example.com")
	}
	if url.Priority != "1.0" {
		t.Errorf("Priority = %q, want %q", url.Priority, "1.0")
	}
	if url.ChangeFreq != ChangeFreqDaily {
		t.Errorf("ChangeFreq = %q, want %q", url.ChangeFreq, ChangeFreqDaily)
	}
}

func TestSitemapBuilderAddProgram(t *testing.T) {
	builder := NewSitemapBuilder("https://example.com")
	updatedAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	builder.AddProgram(ProgramEntry{
		Type:      "study_tour",
		Slug:      "forbidden-city-study-tour",
		UpdatedAt: updatedAt,
	})

	if len(builder.urls) != 1 {
		t.Fatalf("urls length = %d, want 1", len(builder.urls))
	}

	url := builder.urls[0]
	want := "https://example.com/programs/study_tour/forbidden-city-study-tour"
	if url.Loc != want {
		t.Errorf("Loc = %q, want %q", url.Loc, want)
	}
	if url.LastMod != updatedAt.Format(time.RFC3339) {
		t.Errorf("LastMod = %q, want %q", url.LastMod, updatedAt.Format(time.RFC3339))
	}
}

func TestSitemapBuilderAddPostZeroTime(t *testing.T) {
	builder := NewSitemapBuilder("https://example.com")
	builder.AddPost(PostEntry{Slug: "summer-2026-enrollment"})

	if len(builder.urls) != 1 {
		t.Fatalf("urls length = %d, want 1", len(builder.urls))
	}
	if builder.urls[0].LastMod != "" {
		t.Errorf("LastMod = %q, want empty for zero time", builder.urls[0].LastMod)
	}
}

func TestGenerateSitemap(t *testing.T) {
	programs := []ProgramEntry{
		{Type: "study_tour", Slug: "forbidden-city-study-tour"},
		{Type: "summer_camp", Slug: "singapore-coding-camp"},
	}
	posts := []PostEntry{
		{Slug: "summer-2026-enrollment"},
	}

	out, err := GenerateSitemap("https://example.com", programs, posts)
	if err != nil {
		t.Fatalf("GenerateSitemap() error = %v", err)
	}

	xml := string(out)
	if !strings.HasPrefix(xml, "<?xml") {
		t.Error("output should start with XML header")
	}
	if !strings.Contains(xml, XMLNamespace) {
		t.Error("output should contain the sitemap namespace")
	}
	for _, want := range []string{
		"https://example.com</loc>",
		"/programs/study_tour/forbidden-city-study-tour",
		"/programs/summer_camp/singapore-coding-camp",
		"/blog/summer-2026-enrollment",
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("output should contain %q", want)
		}
	}

	if got := strings.Count(xml, "<url>"); got != 4 {
		t.Errorf("url entries = %d, want 4", got)
	}
}
