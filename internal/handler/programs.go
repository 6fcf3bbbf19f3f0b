// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/traveledu/tcms-go/internal/content"
	"github.com/traveledu/tcms-go/internal/middleware"
	"github.com/traveledu/tcms-go/internal/model"
)

type programRequest struct {
	Type         string              `json:"type"`
	Language     string              `json:"language"`
	Title        string              `json:"title"`
	Slug         string              `json:"slug"`
	Summary      string              `json:"summary"`
	Body         string              `json:"body"`
	Blocks       model.ProgramBlocks `json:"blocks"`
	LocationID   *string             `json:"locationId"`
	CoverMediaID *string             `json:"coverMediaId"`
	Status       string              `json:"status"`
	ScheduledAt  *time.Time          `json:"scheduledAt"`
}

func (req programRequest) toInput() content.ProgramInput {
	return content.ProgramInput{
		Type:         req.Type,
		Language:     req.Language,
		Title:        req.Title,
		Slug:         req.Slug,
		Summary:      req.Summary,
		Body:         req.Body,
		Blocks:       req.Blocks,
		LocationID:   req.LocationID,
		CoverMediaID: req.CoverMediaID,
		Status:       req.Status,
		ScheduledAt:  req.ScheduledAt,
	}
}

// AdminCreateProgram handles POST /api/admin/programs.
func (h *Handler) AdminCreateProgram(w http.ResponseWriter, r *http.Request) {
	var req programRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.content.CreateProgram(r.Context(), middleware.GetUserID(r), req.toInput())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"program": p})
}

// AdminUpdateProgram handles PUT /api/admin/programs/{id}. The language
// field routes the write: the base language updates the canonical row,
// anything else writes a translation overlay.
func (h *Handler) AdminUpdateProgram(w http.ResponseWriter, r *http.Request) {
	var req programRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.content.UpdateProgram(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"program": p})
}

// AdminGetProgram handles GET /api/admin/programs/{id}.
func (h *Handler) AdminGetProgram(w http.ResponseWriter, r *http.Request) {
	p, err := h.content.GetProgram(r.Context(), chi.URLParam(r, "id"), requestLanguage(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"program": p})
}

// AdminListPrograms handles GET /api/admin/programs.
func (h *Handler) AdminListPrograms(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	programs, total, err := h.content.ListPrograms(r.Context(), content.ProgramListOptions{
		Status:   r.URL.Query().Get("status"),
		Language: requestLanguage(r),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"programs":   programs,
		"pagination": newPagination(page, limit, total),
	})
}

// AdminDeleteProgram handles DELETE /api/admin/programs/{id}.
func (h *Handler) AdminDeleteProgram(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteProgram(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type translationResponse struct {
	Language  string    `json:"language"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// listTranslations returns the overlay languages of an entity.
func (h *Handler) listTranslations(w http.ResponseWriter, r *http.Request, entityType string) {
	rows, err := h.content.Translations(r.Context(), entityType, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	out := make([]translationResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, translationResponse{
			Language:  row.Language,
			Title:     row.Title,
			Slug:      row.Slug,
			UpdatedAt: row.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"translations": out})
}

// AdminListProgramTranslations handles GET /api/admin/programs/{id}/translations.
func (h *Handler) AdminListProgramTranslations(w http.ResponseWriter, r *http.Request) {
	h.listTranslations(w, r, model.EntityTypeProgram)
}
