// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/traveledu/tcms-go/internal/content"
	"github.com/traveledu/tcms-go/internal/store"
	"github.com/traveledu/tcms-go/internal/util"
)

type partnerRequest struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	LogoMediaID *string `json:"logoMediaId"`
	Position    int64   `json:"position"`
}

type partnerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	LogoMediaID *string   `json:"logoMediaId,omitempty"`
	Position    int64     `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toPartnerResponse(p store.Partner) partnerResponse {
	return partnerResponse{
		ID:          p.ID,
		Name:        p.Name,
		URL:         p.Url,
		LogoMediaID: util.NullStringPtr(p.LogoMediaID),
		Position:    p.Position,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func partnerList(rows []store.Partner) []partnerResponse {
	out := make([]partnerResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, toPartnerResponse(p))
	}
	return out
}

// AdminCreatePartner handles POST /api/admin/partners.
func (h *Handler) AdminCreatePartner(w http.ResponseWriter, r *http.Request) {
	var req partnerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.content.CreatePartner(r.Context(), content.PartnerInput{
		Name:        req.Name,
		URL:         req.URL,
		LogoMediaID: req.LogoMediaID,
		Position:    req.Position,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"partner": toPartnerResponse(p)})
}

// AdminUpdatePartner handles PUT /api/admin/partners/{id}.
func (h *Handler) AdminUpdatePartner(w http.ResponseWriter, r *http.Request) {
	var req partnerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.content.UpdatePartner(r.Context(), chi.URLParam(r, "id"), content.PartnerInput{
		Name:        req.Name,
		URL:         req.URL,
		LogoMediaID: req.LogoMediaID,
		Position:    req.Position,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"partner": toPartnerResponse(p)})
}

// AdminListPartners handles GET /api/admin/partners.
func (h *Handler) AdminListPartners(w http.ResponseWriter, r *http.Request) {
	rows, err := h.content.ListPartners(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"partners": partnerList(rows)})
}

// AdminDeletePartner handles DELETE /api/admin/partners/{id}.
func (h *Handler) AdminDeletePartner(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeletePartner(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
