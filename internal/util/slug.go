// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// URL slug generation and validation with Unicode normalization support.
package util

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// slugRegex matches non-alphanumeric characters (except hyphens)
	slugRegex = regexp.MustCompile(`[^a-z0-9-]+`)
	// multipleHyphens matches multiple consecutive hyphens
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// whitespaceRegex matches any run of whitespace
	whitespaceRegex = regexp.MustCompile(`\s+`)
	// fallbackSlugRegex matches slugs produced by the timestamp fallback.
	fallbackSlugRegex = regexp.MustCompile(`^item-\d{10,}$`)
)

// minSlugLength is the minimum length a derived slug must have before the
// timestamp fallback kicks in.
const minSlugLength = 3

// cjkScripts are stripped before transliteration. Titles on this site are
// mostly Chinese; slugs must stay ASCII-only rather than pinyin.
var cjkScripts = runes.In(unicode.Han)

// Slugify converts a string to a URL-friendly slug.
// Latin text is lowercased and hyphenated; accented characters are
// transliterated or decomposed and stripped; CJK characters are removed
// entirely. May return ""; callers needing a guaranteed slug use
// SlugOrFallback.
func Slugify(s string) string {
	// Strip CJK first so it is removed rather than transliterated
	result, _, _ := transform.String(runes.Remove(cjkScripts), s)

	// Transliterate what can be transliterated (ü -> u, é -> e)
	result = unidecode.Unidecode(result)

	// Normalize unicode characters (decompose remaining accents)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ = transform.String(t, result)

	result = strings.ToLower(result)
	result = whitespaceRegex.ReplaceAllString(result, "-")
	result = slugRegex.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return result
}

// SlugOrFallback derives a slug from the title, falling back to a
// timestamp-based token when the title yields nothing usable: empty,
// too short, or letter-free results (symbol-only titles, CJK-only titles,
// or CJK titles whose only residue is a year). A non-empty slug is always
// returned.
func SlugOrFallback(title string) string {
	slug := Slugify(title)
	if len(slug) < minSlugLength || !containsLetter(slug) {
		return fmt.Sprintf("item-%d", time.Now().Unix())
	}
	return slug
}

func containsLetter(s string) bool {
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return true
		}
	}
	return false
}

// IsFallbackSlug reports whether the slug matches the timestamp fallback pattern.
func IsFallbackSlug(s string) bool {
	return fallbackSlugRegex.MatchString(s)
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	// Check if it only contains lowercase letters, numbers, and hyphens
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	// Check that it doesn't start or end with a hyphen
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	// Check for consecutive hyphens
	if strings.Contains(s, "--") {
		return false
	}

	return true
}

// IsValidLangCode checks that a string looks like an ISO 639-1 language code.
func IsValidLangCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
