// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the JSON API surface. Admin routes require a
// session (or the development resolver); public routes serve published
// content only.
package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"

	"github.com/traveledu/tcms-go/internal/aitrans"
	"github.com/traveledu/tcms-go/internal/cache"
	"github.com/traveledu/tcms-go/internal/config"
	"github.com/traveledu/tcms-go/internal/contact"
	"github.com/traveledu/tcms-go/internal/content"
	"github.com/traveledu/tcms-go/internal/media"
	"github.com/traveledu/tcms-go/internal/store"
	"github.com/traveledu/tcms-go/internal/util"
)

// Pagination limits.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Handler holds the dependencies shared by all API endpoints.
type Handler struct {
	cfg      *config.Config
	db       *sql.DB
	queries  *store.Queries
	content  *content.Service
	media    *media.Service
	contact  *contact.Service
	sessions *scs.SessionManager
	cache    cache.Cacher

	// translator is optional; nil when no OpenAI key is configured.
	translator *aitrans.Translator
}

// New creates the API handler.
func New(cfg *config.Config, db *sql.DB, contentSvc *content.Service, mediaSvc *media.Service, contactSvc *contact.Service, sessions *scs.SessionManager, c cache.Cacher) *Handler {
	return &Handler{
		cfg:      cfg,
		db:       db,
		queries:  store.New(db),
		content:  contentSvc,
		media:    mediaSvc,
		contact:  contactSvc,
		sessions: sessions,
		cache:    c,
	}
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func newPagination(page, limit, total int64) Pagination {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeServiceError maps service errors to API status codes. Validation
// failures carry their message to the client; everything else is logged and
// reported as an internal error. In development the 500 body carries the
// underlying error so it can be read without tailing logs; production
// clients only ever see the generic message.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, content.ErrNotFound), errors.Is(err, contact.ErrNotFound),
		errors.Is(err, media.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, content.ErrValidation), errors.Is(err, contact.ErrValidation),
		errors.Is(err, media.ErrUnsupportedType), errors.Is(err, media.ErrTooLarge):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, content.ErrSlugConflict):
		writeError(w, http.StatusBadRequest, "slug already in use")
	default:
		slog.Error("request failed", "error", err)
		if h.cfg.IsDevelopment() {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON decodes a request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// parsePagination reads page and limit query parameters with bounds.
func parsePagination(r *http.Request) (page, limit int64) {
	page = 1
	limit = DefaultPageSize
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// requestLanguage reads the language query parameter, defaulting to the
// base language. Unknown codes fall back rather than erroring so stale
// links keep working.
func requestLanguage(r *http.Request) string {
	lang := r.URL.Query().Get("language")
	if lang == "" || !util.IsValidLangCode(lang) {
		return content.BaseLanguage
	}
	return lang
}
