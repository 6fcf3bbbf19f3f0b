// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple latin", "Summer Camp 2026", "summer-camp-2026"},
		{"accents transliterated", "Université de Montréal", "universite-de-montreal"},
		{"umlaut transliterated", "Zürich Exchange", "zurich-exchange"},
		{"cjk stripped", "北京研学之旅", ""},
		{"mixed cjk and latin keeps latin", "北京 Study Tour", "study-tour"},
		{"symbols collapse", "Tokyo -- Winter!! Camp", "tokyo-winter-camp"},
		{"leading trailing hyphens trimmed", "  -Hello World-  ", "hello-world"},
		{"cjk with year leaves digits", "2025 夏令营", "2025"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Summer Camp 2026", "Université de Montréal", "北京 Study Tour"}
	for _, in := range inputs {
		once := Slugify(in)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSlugOrFallback(t *testing.T) {
	// A CJK-only title yields nothing usable and must produce the
	// timestamp fallback instead of an empty slug.
	got := SlugOrFallback("北京研学之旅")
	if !IsFallbackSlug(got) {
		t.Errorf("SlugOrFallback(cjk) = %q, want item-<timestamp>", got)
	}

	// Digits-only residue (a year surviving CJK stripping) is not a real
	// slug either.
	got = SlugOrFallback("2025 夏令营")
	if !IsFallbackSlug(got) {
		t.Errorf("SlugOrFallback(%q) = %q, want item-<timestamp>", "2025 夏令营", got)
	}

	// Too-short results fall back as well.
	got = SlugOrFallback("ab")
	if !IsFallbackSlug(got) {
		t.Errorf("SlugOrFallback(short) = %q, want item-<timestamp>", got)
	}

	// A usable title keeps its derived slug.
	got = SlugOrFallback("Summer Camp")
	if got != "summer-camp" {
		t.Errorf("SlugOrFallback = %q, want summer-camp", got)
	}
	if !strings.HasPrefix(SlugOrFallback(""), "item-") {
		t.Error("SlugOrFallback(\"\") must use the fallback prefix")
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"a", "summer-camp", "item-1700000000", "a1-b2"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "-abc", "abc-", "a--b", "Hello", "a b", "中文"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}

func TestIsValidLangCode(t *testing.T) {
	for _, s := range []string{"zh", "en", "fr"} {
		if !IsValidLangCode(s) {
			t.Errorf("IsValidLangCode(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "e", "eng", "EN", "z1"} {
		if IsValidLangCode(s) {
			t.Errorf("IsValidLangCode(%q) = true, want false", s)
		}
	}
}
