// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/traveledu/tcms-go/internal/content"
)

type heroRequest struct {
	Language    string  `json:"language"`
	Headline    string  `json:"headline"`
	Subheadline string  `json:"subheadline"`
	CtaLabel    string  `json:"ctaLabel"`
	CtaURL      string  `json:"ctaUrl"`
	MediaID     *string `json:"mediaId"`
	Position    int64   `json:"position"`
	Status      string  `json:"status"`
}

func (req heroRequest) toInput() content.HeroInput {
	return content.HeroInput{
		Language:    req.Language,
		Headline:    req.Headline,
		Subheadline: req.Subheadline,
		CtaLabel:    req.CtaLabel,
		CtaURL:      req.CtaURL,
		MediaID:     req.MediaID,
		Position:    req.Position,
		Status:      req.Status,
	}
}

// AdminCreateHero handles POST /api/admin/heroes.
func (h *Handler) AdminCreateHero(w http.ResponseWriter, r *http.Request) {
	var req heroRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	hero, err := h.content.CreateHero(r.Context(), req.toInput())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"hero": hero})
}

// AdminUpdateHero handles PUT /api/admin/heroes/{id}.
func (h *Handler) AdminUpdateHero(w http.ResponseWriter, r *http.Request) {
	var req heroRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	hero, err := h.content.UpdateHero(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hero": hero})
}

// AdminGetHero handles GET /api/admin/heroes/{id}.
func (h *Handler) AdminGetHero(w http.ResponseWriter, r *http.Request) {
	hero, err := h.content.GetHero(r.Context(), chi.URLParam(r, "id"), requestLanguage(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hero": hero})
}

// AdminListHeroes handles GET /api/admin/heroes.
func (h *Handler) AdminListHeroes(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	rows, total, err := h.content.ListHeroes(r.Context(), r.URL.Query().Get("status"), requestLanguage(r), page, limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"heroes":     rows,
		"pagination": newPagination(page, limit, total),
	})
}

// AdminDeleteHero handles DELETE /api/admin/heroes/{id}.
func (h *Handler) AdminDeleteHero(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteHero(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
