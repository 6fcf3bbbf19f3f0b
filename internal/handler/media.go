// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/traveledu/tcms-go/internal/middleware"
	"github.com/traveledu/tcms-go/internal/model"
	"github.com/traveledu/tcms-go/internal/store"
)

// maxUploadBytes bounds the multipart form. Videos are the largest allowed
// upload; the form overhead rides on top.
const maxUploadBytes = model.MaxVideoSize + 1<<20

type mediaResponse struct {
	ID        string                 `json:"id"`
	Filename  string                 `json:"filename"`
	MimeType  string                 `json:"mimeType"`
	Size      int64                  `json:"size"`
	Width     int64                  `json:"width,omitempty"`
	Height    int64                  `json:"height,omitempty"`
	Alt       string                 `json:"alt"`
	URL       string                 `json:"url"`
	Variants  []mediaVariantResponse `json:"variants,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

type mediaVariantResponse struct {
	Type   string `json:"type"`
	Width  int64  `json:"width"`
	Height int64  `json:"height"`
	Size   int64  `json:"size"`
	URL    string `json:"url"`
}

func (h *Handler) toMediaResponse(m store.Media, variants []store.MediaVariant) mediaResponse {
	resp := mediaResponse{
		ID:        m.ID,
		Filename:  m.Filename,
		MimeType:  m.MimeType,
		Size:      m.Size,
		Width:     m.Width.Int64,
		Height:    m.Height.Int64,
		Alt:       m.Alt,
		URL:       h.media.FileURL(m),
		CreatedAt: m.CreatedAt,
	}
	for _, v := range variants {
		resp.Variants = append(resp.Variants, mediaVariantResponse{
			Type:   v.Type,
			Width:  v.Width,
			Height: v.Height,
			Size:   v.Size,
			URL:    h.media.VariantURL(m, v.Type),
		})
	}
	return resp
}

// AdminUploadMedia handles POST /api/admin/media. Multipart form with a
// single "file" part; images get resized variants, videos are stored as is.
func (h *Handler) AdminUploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	m, err := h.media.Upload(r.Context(), file, header.Filename, mimeType, header.Size, middleware.GetUserID(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	_, variants, err := h.media.Get(r.Context(), m.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"media": h.toMediaResponse(m, variants)})
}

// AdminGetMedia handles GET /api/admin/media/{id}.
func (h *Handler) AdminGetMedia(w http.ResponseWriter, r *http.Request) {
	m, variants, err := h.media.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"media": h.toMediaResponse(m, variants)})
}

// AdminListMedia handles GET /api/admin/media.
func (h *Handler) AdminListMedia(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	rows, total, err := h.media.List(r.Context(), limit, (page-1)*limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	out := make([]mediaResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, h.toMediaResponse(m, nil))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"media":      out,
		"pagination": newPagination(page, limit, total),
	})
}

type mediaAltRequest struct {
	Alt string `json:"alt"`
}

// AdminUpdateMediaAlt handles PUT /api/admin/media/{id}.
func (h *Handler) AdminUpdateMediaAlt(w http.ResponseWriter, r *http.Request) {
	var req mediaAltRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m, err := h.media.UpdateAlt(r.Context(), chi.URLParam(r, "id"), req.Alt)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"media": h.toMediaResponse(m, nil)})
}

// AdminDeleteMedia handles DELETE /api/admin/media/{id}. Removes the record,
// variant rows and every file on disk.
func (h *Handler) AdminDeleteMedia(w http.ResponseWriter, r *http.Request) {
	if err := h.media.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AdminMediaHealthScan handles POST /api/admin/media/health-scan.
func (h *Handler) AdminMediaHealthScan(w http.ResponseWriter, r *http.Request) {
	results, err := h.media.HealthScan(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
