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

type postRequest struct {
	Language     string     `json:"language"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Excerpt      string     `json:"excerpt"`
	Body         string     `json:"body"`
	CoverMediaID *string    `json:"coverMediaId"`
	Status       string     `json:"status"`
	ScheduledAt  *time.Time `json:"scheduledAt"`
}

func (req postRequest) toInput() content.PostInput {
	return content.PostInput{
		Language:     req.Language,
		Title:        req.Title,
		Slug:         req.Slug,
		Excerpt:      req.Excerpt,
		Body:         req.Body,
		CoverMediaID: req.CoverMediaID,
		Status:       req.Status,
		ScheduledAt:  req.ScheduledAt,
	}
}

// AdminCreatePost handles POST /api/admin/posts.
func (h *Handler) AdminCreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.content.CreatePost(r.Context(), middleware.GetUserID(r), req.toInput())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"post": p})
}

// AdminUpdatePost handles PUT /api/admin/posts/{id}.
func (h *Handler) AdminUpdatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.content.UpdatePost(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": p})
}

// AdminGetPost handles GET /api/admin/posts/{id}.
func (h *Handler) AdminGetPost(w http.ResponseWriter, r *http.Request) {
	p, err := h.content.GetPost(r.Context(), chi.URLParam(r, "id"), requestLanguage(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": p})
}

// AdminListPosts handles GET /api/admin/posts.
func (h *Handler) AdminListPosts(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	posts, total, err := h.content.ListPosts(r.Context(), content.PostListOptions{
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
		"posts":      posts,
		"pagination": newPagination(page, limit, total),
	})
}

// AdminDeletePost handles DELETE /api/admin/posts/{id}.
func (h *Handler) AdminDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AdminListPostTranslations handles GET /api/admin/posts/{id}/translations.
func (h *Handler) AdminListPostTranslations(w http.ResponseWriter, r *http.Request) {
	h.listTranslations(w, r, model.EntityTypePost)
}
