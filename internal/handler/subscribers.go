// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/traveledu/tcms-go/internal/store"
)

type subscriberResponse struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Language       string     `json:"language"`
	SubscribedAt   time.Time  `json:"subscribedAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt,omitempty"`
}

func toSubscriberResponse(s store.Subscriber) subscriberResponse {
	resp := subscriberResponse{
		ID:           s.ID,
		Email:        s.Email,
		Language:     s.Language,
		SubscribedAt: s.SubscribedAt,
	}
	if s.UnsubscribedAt.Valid {
		t := s.UnsubscribedAt.Time
		resp.UnsubscribedAt = &t
	}
	return resp
}

// AdminListSubscribers handles GET /api/admin/subscribers.
func (h *Handler) AdminListSubscribers(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	rows, total, err := h.contact.ListSubscribers(r.Context(), limit, (page-1)*limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	out := make([]subscriberResponse, 0, len(rows))
	for _, s := range rows {
		out = append(out, toSubscriberResponse(s))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"subscribers": out,
		"pagination":  newPagination(page, limit, total),
	})
}

// AdminExportSubscribers handles GET /api/admin/subscribers/export. Active
// subscribers only.
func (h *Handler) AdminExportSubscribers(w http.ResponseWriter, r *http.Request) {
	setCSVHeaders(w, "subscribers")
	if err := h.contact.WriteSubscribersCSV(r.Context(), w); err != nil {
		slog.Error("streaming subscribers CSV", "error", err)
	}
}
