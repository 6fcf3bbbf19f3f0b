// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/traveledu/tcms-go/internal/content"
	"github.com/traveledu/tcms-go/internal/model"
	"github.com/traveledu/tcms-go/internal/seo"
)

// sitemapPageSize bounds a single list query while collecting entries.
const sitemapPageSize = 200

// PublicSitemap handles GET /sitemap.xml over all published content.
func (h *Handler) PublicSitemap(w http.ResponseWriter, r *http.Request) {
	h.serveCachedRaw(w, r, "application/xml; charset=utf-8", func() ([]byte, error) {
		ctx := r.Context()

		var programs []seo.ProgramEntry
		for page := int64(1); ; page++ {
			views, total, err := h.content.ListPrograms(ctx, content.ProgramListOptions{
				Status: model.StatusPublished,
				Page:   page,
				Limit:  sitemapPageSize,
			})
			if err != nil {
				return nil, err
			}
			for _, v := range views {
				programs = append(programs, seo.ProgramEntry{
					Type:      v.Type,
					Slug:      v.Slug,
					UpdatedAt: v.UpdatedAt,
				})
			}
			if int64(len(programs)) >= total || len(views) == 0 {
				break
			}
		}

		var posts []seo.PostEntry
		for page := int64(1); ; page++ {
			views, total, err := h.content.ListPosts(ctx, content.PostListOptions{
				Status: model.StatusPublished,
				Page:   page,
				Limit:  sitemapPageSize,
			})
			if err != nil {
				return nil, err
			}
			for _, v := range views {
				posts = append(posts, seo.PostEntry{
					Slug:      v.Slug,
					UpdatedAt: v.UpdatedAt,
				})
			}
			if int64(len(posts)) >= total || len(views) == 0 {
				break
			}
		}

		return seo.GenerateSitemap(h.cfg.BaseURL, programs, posts)
	})
}

// PublicRobots handles GET /robots.txt. Non-production deployments block
// all crawlers.
func (h *Handler) PublicRobots(w http.ResponseWriter, r *http.Request) {
	body := seo.GenerateRobots(h.cfg.BaseURL, h.cfg.IsDevelopment())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// serveCachedRaw is serveCached for non-JSON payloads.
func (h *Handler) serveCachedRaw(w http.ResponseWriter, r *http.Request, contentType string, build func() ([]byte, error)) {
	key := "public:" + r.URL.Path + "?" + r.URL.RawQuery

	if h.cache != nil {
		if raw, err := h.cache.Get(r.Context(), key); err == nil {
			w.Header().Set("Content-Type", contentType)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(raw)
			return
		}
	}

	raw, err := build()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if h.cache != nil {
		if err := h.cache.Set(r.Context(), key, raw, h.cacheFor()); err != nil {
			slog.Warn("caching public response", "key", key, "error", err)
		}
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
