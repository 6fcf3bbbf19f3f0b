// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/traveledu/tcms-go/internal/store"
)

type submissionResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Message     string    `json:"message"`
	ProgramSlug string    `json:"programSlug,omitempty"`
	Browser     string    `json:"browser"`
	Os          string    `json:"os"`
	Country     string    `json:"country,omitempty"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toSubmissionResponse(sub store.ContactSubmission) submissionResponse {
	return submissionResponse{
		ID:          sub.ID,
		Name:        sub.Name,
		Email:       sub.Email,
		Phone:       sub.Phone,
		Subject:     sub.Subject,
		Message:     sub.Message,
		ProgramSlug: sub.ProgramSlug,
		Browser:     sub.Browser,
		Os:          sub.Os,
		Country:     sub.Country,
		IsRead:      sub.IsRead != 0,
		CreatedAt:   sub.CreatedAt,
	}
}

// AdminListSubmissions handles GET /api/admin/contacts.
func (h *Handler) AdminListSubmissions(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	rows, total, err := h.contact.ListSubmissions(r.Context(), limit, (page-1)*limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	out := make([]submissionResponse, 0, len(rows))
	for _, sub := range rows {
		out = append(out, toSubmissionResponse(sub))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"contacts":   out,
		"pagination": newPagination(page, limit, total),
	})
}

// AdminMarkSubmissionRead handles POST /api/admin/contacts/{id}/read.
func (h *Handler) AdminMarkSubmissionRead(w http.ResponseWriter, r *http.Request) {
	if err := h.contact.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AdminDeleteSubmission handles DELETE /api/admin/contacts/{id}.
func (h *Handler) AdminDeleteSubmission(w http.ResponseWriter, r *http.Request) {
	if err := h.contact.DeleteSubmission(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// setCSVHeaders prepares a dated CSV download response.
func setCSVHeaders(w http.ResponseWriter, entity string) {
	filename := fmt.Sprintf("%s-%s.csv", entity, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

// AdminExportSubmissions handles GET /api/admin/contacts/export.
func (h *Handler) AdminExportSubmissions(w http.ResponseWriter, r *http.Request) {
	setCSVHeaders(w, "contacts")
	if err := h.contact.WriteSubmissionsCSV(r.Context(), w); err != nil {
		// Headers are already out; the download arrives truncated.
		slog.Error("streaming contacts CSV", "error", err)
	}
}
