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

type locationRequest struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type locationResponse struct {
	ID        string    `json:"id"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toLocationResponse(l store.Location) locationResponse {
	return locationResponse{
		ID:        l.ID,
		City:      l.City,
		Country:   l.Country,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// AdminCreateLocation handles POST /api/admin/locations.
func (h *Handler) AdminCreateLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l, err := h.content.CreateLocation(r.Context(), content.LocationInput{City: req.City, Country: req.Country})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"location": toLocationResponse(l)})
}

// AdminUpdateLocation handles PUT /api/admin/locations/{id}.
func (h *Handler) AdminUpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l, err := h.content.UpdateLocation(r.Context(), chi.URLParam(r, "id"), content.LocationInput{City: req.City, Country: req.Country})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"location": toLocationResponse(l)})
}

// AdminListLocations handles GET /api/admin/locations.
func (h *Handler) AdminListLocations(w http.ResponseWriter, r *http.Request) {
	rows, err := h.content.ListLocations(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	out := make([]locationResponse, 0, len(rows))
	for _, l := range rows {
		out = append(out, toLocationResponse(l))
	}
	writeJSON(w, http.StatusOK, map[string]any{"locations": out})
}

// AdminDeleteLocation handles DELETE /api/admin/locations/{id}. Programs
// pointing at the location keep working with a cleared location reference.
func (h *Handler) AdminDeleteLocation(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteLocation(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
