// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/traveledu/tcms-go/internal/content"
	"github.com/traveledu/tcms-go/internal/store"
)

type showcaseRequest struct {
	ProgramType string `json:"programType"`
	ProgramSlug string `json:"programSlug"`
	Position    int64  `json:"position"`
}

type showcaseResponse struct {
	ID          string    `json:"id"`
	ProgramType string    `json:"programType"`
	ProgramSlug string    `json:"programSlug"`
	Position    int64     `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toShowcaseResponse(sc store.Showcase) showcaseResponse {
	return showcaseResponse{
		ID:          sc.ID,
		ProgramType: sc.ProgramType,
		ProgramSlug: sc.ProgramSlug,
		Position:    sc.Position,
		CreatedAt:   sc.CreatedAt,
		UpdatedAt:   sc.UpdatedAt,
	}
}

// AdminCreateShowcase handles POST /api/admin/showcases. The pointer is
// validated against a live program of the same type.
func (h *Handler) AdminCreateShowcase(w http.ResponseWriter, r *http.Request) {
	var req showcaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sc, err := h.content.CreateShowcase(r.Context(), content.ShowcaseInput{
		ProgramType: req.ProgramType,
		ProgramSlug: req.ProgramSlug,
		Position:    req.Position,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"showcase": toShowcaseResponse(sc)})
}

// AdminUpdateShowcase handles PUT /api/admin/showcases/{id}.
func (h *Handler) AdminUpdateShowcase(w http.ResponseWriter, r *http.Request) {
	var req showcaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sc, err := h.content.UpdateShowcase(r.Context(), chi.URLParam(r, "id"), content.ShowcaseInput{
		ProgramType: req.ProgramType,
		ProgramSlug: req.ProgramSlug,
		Position:    req.Position,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"showcase": toShowcaseResponse(sc)})
}

// AdminListShowcases handles GET /api/admin/showcases. Raw pointer rows,
// including dangling ones, so operators can see what repair would touch.
func (h *Handler) AdminListShowcases(w http.ResponseWriter, r *http.Request) {
	rows, err := h.content.ListShowcases(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	out := make([]showcaseResponse, 0, len(rows))
	for _, sc := range rows {
		out = append(out, toShowcaseResponse(sc))
	}
	writeJSON(w, http.StatusOK, map[string]any{"showcases": out})
}

// AdminDeleteShowcase handles DELETE /api/admin/showcases/{id}.
func (h *Handler) AdminDeleteShowcase(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteShowcase(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AdminRepairShowcases handles POST /api/admin/showcase/repair. Scans every
// pointer, fixes the unambiguous dangles and reports the rest.
func (h *Handler) AdminRepairShowcases(w http.ResponseWriter, r *http.Request) {
	results, err := h.content.RepairShowcases(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
