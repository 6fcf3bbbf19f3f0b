// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/traveledu/tcms-go/internal/content"
)

type testimonialRequest struct {
	Language      string  `json:"language"`
	AuthorName    string  `json:"authorName"`
	AuthorRole    string  `json:"authorRole"`
	Quote         string  `json:"quote"`
	ProgramType   string  `json:"programType"`
	AvatarMediaID *string `json:"avatarMediaId"`
	Status        string  `json:"status"`
}

func (req testimonialRequest) toInput() content.TestimonialInput {
	return content.TestimonialInput{
		Language:      req.Language,
		AuthorName:    req.AuthorName,
		AuthorRole:    req.AuthorRole,
		Quote:         req.Quote,
		ProgramType:   req.ProgramType,
		AvatarMediaID: req.AvatarMediaID,
		Status:        req.Status,
	}
}

// AdminCreateTestimonial handles POST /api/admin/testimonials.
func (h *Handler) AdminCreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req testimonialRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tm, err := h.content.CreateTestimonial(r.Context(), req.toInput())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"testimonial": tm})
}

// AdminUpdateTestimonial handles PUT /api/admin/testimonials/{id}.
func (h *Handler) AdminUpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req testimonialRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tm, err := h.content.UpdateTestimonial(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"testimonial": tm})
}

// AdminGetTestimonial handles GET /api/admin/testimonials/{id}.
func (h *Handler) AdminGetTestimonial(w http.ResponseWriter, r *http.Request) {
	tm, err := h.content.GetTestimonial(r.Context(), chi.URLParam(r, "id"), requestLanguage(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"testimonial": tm})
}

// AdminListTestimonials handles GET /api/admin/testimonials.
func (h *Handler) AdminListTestimonials(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	rows, total, err := h.content.ListTestimonials(r.Context(), r.URL.Query().Get("status"), requestLanguage(r), page, limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"testimonials": rows,
		"pagination":   newPagination(page, limit, total),
	})
}

// AdminDeleteTestimonial handles DELETE /api/admin/testimonials/{id}.
func (h *Handler) AdminDeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteTestimonial(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
