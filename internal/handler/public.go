// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/traveledu/tcms-go/internal/contact"
	"github.com/traveledu/tcms-go/internal/content"
	"github.com/traveledu/tcms-go/internal/model"
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	sanitize = bluemonday.UGCPolicy()
)

// renderMarkdown converts Markdown to sanitized HTML for public responses.
func renderMarkdown(src string) string {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		slog.Warn("rendering markdown", "error", err)
		return ""
	}
	return sanitize.Sanitize(buf.String())
}

// cacheFor returns the public response TTL.
func (h *Handler) cacheFor() time.Duration {
	return time.Duration(h.cfg.CacheTTL) * time.Second
}

// serveCached answers from cache when possible, otherwise builds the payload,
// stores it and writes it. Cache failures degrade to uncached serving.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, build func() (any, error)) {
	key := "public:" + r.URL.Path + "?" + r.URL.RawQuery

	if h.cache != nil {
		if raw, err := h.cache.Get(r.Context(), key); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(raw)
			return
		}
	}

	payload, err := build()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if h.cache != nil {
		if err := h.cache.Set(r.Context(), key, raw, h.cacheFor()); err != nil {
			slog.Warn("caching public response", "key", key, "error", err)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// PublicListPrograms handles GET /api/programs. Published only; optional
// type filter.
func (h *Handler) PublicListPrograms(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, func() (any, error) {
		page, limit := parsePagination(r)
		lang := requestLanguage(r)
		programType := r.URL.Query().Get("type")

		var (
			programs []content.ProgramView
			total    int64
			err      error
		)
		if programType != "" {
			programs, total, err = h.content.ListPublishedProgramsByType(r.Context(), programType, lang, page, limit)
		} else {
			programs, total, err = h.content.ListPrograms(r.Context(), content.ProgramListOptions{
				Status:   model.StatusPublished,
				Language: lang,
				Page:     page,
				Limit:    limit,
			})
		}
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"programs":   programs,
			"pagination": newPagination(page, limit, total),
		}, nil
	})
}

// PublicGetProgram handles GET /api/programs/{slug}. The slug may be the
// canonical one or a translated one.
func (h *Handler) PublicGetProgram(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, func() (any, error) {
		p, err := h.content.GetPublishedProgramBySlug(r.Context(), chi.URLParam(r, "slug"), requestLanguage(r))
		if err != nil {
			return nil, err
		}
		return map[string]any{"program": p}, nil
	})
}

// publicPost carries the merged post plus its rendered HTML body.
type publicPost struct {
	content.PostView
	BodyHTML string `json:"bodyHtml"`
}

// PublicListPosts handles GET /api/posts.
func (h *Handler) PublicListPosts(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, func() (any, error) {
		page, limit := parsePagination(r)
		posts, total, err := h.content.ListPublishedPosts(r.Context(), requestLanguage(r), page, limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"posts":      posts,
			"pagination": newPagination(page, limit, total),
		}, nil
	})
}

// PublicGetPost handles GET /api/posts/{slug}. The body is served both as
// Markdown and as rendered HTML.
func (h *Handler) PublicGetPost(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, func() (any, error) {
		p, err := h.content.GetPublishedPostBySlug(r.Context(), chi.URLParam(r, "slug"), requestLanguage(r))
		if err != nil {
			return nil, err
		}
		return map[string]any{"post": publicPost{PostView: p, BodyHTML: renderMarkdown(p.Body)}}, nil
	})
}

// PublicListTestimonials handles GET /api/testimonials.
func (h *Handler) PublicListTestimonials(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, func() (any, error) {
		page, limit := parsePagination(r)
		rows, total, err := h.content.ListTestimonials(r.Context(), model.StatusPublished, requestLanguage(r), page, limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"testimonials": rows,
			"pagination":   newPagination(page, limit, total),
		}, nil
	})
}

// PublicListHeroes handles GET /api/heroes.
func (h *Handler) PublicListHeroes(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, func() (any, error) {
		page, limit := parsePagination(r)
		rows, total, err := h.content.ListHeroes(r.Context(), model.StatusPublished, requestLanguage(r), page, limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"heroes":     rows,
			"pagination": newPagination(page, limit, total),
		}, nil
	})
}

// PublicListPartners handles GET /api/partners.
func (h *Handler) PublicListPartners(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, func() (any, error) {
		rows, err := h.content.ListPartners(r.Context())
		if err != nil {
			return nil, err
		}
		return map[string]any{"partners": partnerList(rows)}, nil
	})
}

// languageResponse is the public shape of a language row.
type languageResponse struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
	IsDefault  bool   `json:"isDefault"`
}

// PublicListLanguages handles GET /api/languages for the frontend language
// switcher.
func (h *Handler) PublicListLanguages(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, func() (any, error) {
		rows, err := h.content.ActiveLanguages(r.Context())
		if err != nil {
			return nil, err
		}
		out := make([]languageResponse, 0, len(rows))
		for _, l := range rows {
			out = append(out, languageResponse{
				Code:       l.Code,
				Name:       l.Name,
				NativeName: l.NativeName,
				IsDefault:  l.IsDefault == 1,
			})
		}
		return map[string]any{"languages": out}, nil
	})
}

// showcaseEntryResponse pairs a showcase slot with its resolved program.
type showcaseEntryResponse struct {
	ID          string              `json:"id"`
	ProgramType string              `json:"programType"`
	Position    int64               `json:"position"`
	Program     content.ProgramView `json:"program"`
}

// PublicShowcase handles GET /api/showcase. Dangling pointers are dropped.
func (h *Handler) PublicShowcase(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, func() (any, error) {
		entries, err := h.content.ListShowcaseEntries(r.Context(), requestLanguage(r))
		if err != nil {
			return nil, err
		}
		out := make([]showcaseEntryResponse, 0, len(entries))
		for _, e := range entries {
			if e.Program == nil {
				continue
			}
			out = append(out, showcaseEntryResponse{
				ID:          e.Showcase.ID,
				ProgramType: e.Showcase.ProgramType,
				Position:    e.Showcase.Position,
				Program:     *e.Program,
			})
		}
		return map[string]any{"showcase": out}, nil
	})
}

// requestIP strips the port from the remote address when present.
func requestIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

type contactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	ProgramSlug string `json:"programSlug"`
}

// PublicSubmitContact handles POST /api/contact.
func (h *Handler) PublicSubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	_, err := h.contact.CreateSubmission(r.Context(), contact.SubmissionInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Subject:     req.Subject,
		Message:     req.Message,
		ProgramSlug: req.ProgramSlug,
		IP:          requestIP(r),
		UserAgent:   r.UserAgent(),
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "received"})
}

type subscribeRequest struct {
	Email    string `json:"email"`
	Language string `json:"language"`
}

// PublicSubscribe handles POST /api/subscribe. Re-subscribing an active
// address is a no-op beyond updating the language.
func (h *Handler) PublicSubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := h.contact.Subscribe(r.Context(), req.Email, req.Language); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "subscribed"})
}

// PublicUnsubscribe handles POST /api/unsubscribe. Unknown addresses are
// answered the same as known ones.
func (h *Handler) PublicUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.contact.Unsubscribe(r.Context(), req.Email); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "unsubscribed"})
}
