// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/traveledu/tcms-go/internal/aitrans"
	"github.com/traveledu/tcms-go/internal/content"
)

// SetTranslator wires the optional AI draft translator.
func (h *Handler) SetTranslator(t *aitrans.Translator) {
	h.translator = t
}

// AdminTranslateProgramDraft handles POST /api/admin/programs/{id}/translate-draft.
// It reads the canonical Chinese text and returns an English draft without
// persisting anything.
func (h *Handler) AdminTranslateProgramDraft(w http.ResponseWriter, r *http.Request) {
	if h.translator == nil || !h.translator.Enabled() {
		writeError(w, http.StatusNotFound, "ai translation is not configured")
		return
	}

	p, err := h.content.GetProgram(r.Context(), chi.URLParam(r, "id"), content.BaseLanguage)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	draft, err := h.translator.TranslateDraft(r.Context(), aitrans.SourceText{
		Title:   p.Title,
		Summary: p.Summary,
		Body:    p.Body,
	})
	if err != nil {
		if errors.Is(err, aitrans.ErrDisabled) {
			writeError(w, http.StatusNotFound, "ai translation is not configured")
			return
		}
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"draft": draft})
}
