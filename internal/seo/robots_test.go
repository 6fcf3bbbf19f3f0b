// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
)

func TestRobotsBuilderBuildDefault(t *testing.T) {
	content := NewRobotsBuilder(RobotsConfig{
		SiteURL: "https://example.com",
	}).Build()

	if !strings.Contains(content, "User-agent: *") {
		t.Error("Build() should contain 'User-agent: *'")
	}
	for _, path := range []string{"/api", "/uploads"} {
		if !strings.Contains(content, "Disallow: "+path) {
			t.Errorf("Build() should disallow %q", path)
		}
	}
	if !strings.Contains(content, "Allow: /") {
		t.Error("Build() should contain 'Allow: /'")
	}
	if !strings.Contains(content, "Sitemap: https://example.com/sitemap.xml") {
		t.Error("Build() should reference the sitemap")
	}
}

func TestRobotsBuilderDisallowAll(t *testing.T) {
	content := NewRobotsBuilder(RobotsConfig{
		SiteURL:     "https://staging.example.com",
		DisallowAll: true,
	}).Build()

	if !strings.Contains(content, "Disallow: /\n") {
		t.Error("Build() should disallow everything")
	}
	if strings.Contains(content, "Sitemap:") {
		t.Error("Build() should not reference the sitemap when crawling is blocked")
	}
}

func TestRobotsBuilderExtraPaths(t *testing.T) {
	content := NewRobotsBuilder(RobotsConfig{
		SiteURL:       "https://example.com",
		DisallowPaths: []string{"/drafts"},
	}).Build()

	if !strings.Contains(content, "Disallow: /drafts") {
		t.Error("Build() should include extra disallow paths")
	}
}

func TestGenerateRobotsTrimsTrailingSlash(t *testing.T) {
	content := GenerateRobots("https://example.com/", false)
	if !strings.Contains(content, "Sitemap: https://example.com/sitemap.xml") {
		t.Errorf("sitemap reference wrong:\n%s", content)
	}
}
