// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the sitemap and robots.txt served to crawlers. The
// frontend renders pages client-side, so the crawl surface comes from here.
package seo

import (
	"encoding/xml"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL is a single url entry.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap is the complete urlset document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// ProgramEntry carries the fields the sitemap needs from a program.
type ProgramEntry struct {
	Type      string
	Slug      string
	UpdatedAt time.Time
}

// PostEntry carries the fields the sitemap needs from a blog post.
type PostEntry struct {
	Slug      string
	UpdatedAt time.Time
}

// SitemapBuilder assembles sitemap XML from published content.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder rooted at the public site URL.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: siteURL,
		urls:    make([]SitemapURL, 0),
	}
}

// AddHomepage adds the site root.
func (b *SitemapBuilder) AddHomepage() {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL,
		ChangeFreq: ChangeFreqDaily,
		Priority:   "1.0",
	})
}

// AddProgram adds a program detail page. Program URLs nest under the
// category, matching the frontend routes.
func (b *SitemapBuilder) AddProgram(p ProgramEntry) {
	url := SitemapURL{
		Loc:        b.siteURL + "/programs/" + p.Type + "/" + p.Slug,
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.8",
	}
	if !p.UpdatedAt.IsZero() {
		url.LastMod = p.UpdatedAt.Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// AddPrograms adds multiple program pages.
func (b *SitemapBuilder) AddPrograms(programs []ProgramEntry) {
	for _, p := range programs {
		b.AddProgram(p)
	}
}

// AddPost adds a blog post page.
func (b *SitemapBuilder) AddPost(p PostEntry) {
	url := SitemapURL{
		Loc:        b.siteURL + "/blog/" + p.Slug,
		ChangeFreq: ChangeFreqMonthly,
		Priority:   "0.6",
	}
	if !p.UpdatedAt.IsZero() {
		url.LastMod = p.UpdatedAt.Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// AddPosts adds multiple blog post pages.
func (b *SitemapBuilder) AddPosts(posts []PostEntry) {
	for _, p := range posts {
		b.AddPost(p)
	}
}

// Build generates the sitemap XML including the header.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap builds a full sitemap from published content.
func GenerateSitemap(siteURL string, programs []ProgramEntry, posts []PostEntry) ([]byte, error) {
	builder := NewSitemapBuilder(siteURL)
	builder.AddHomepage()
	builder.AddPrograms(programs)
	builder.AddPosts(posts)
	return builder.Build()
}
