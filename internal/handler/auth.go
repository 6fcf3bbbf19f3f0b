// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/traveledu/tcms-go/internal/auth"
	"github.com/traveledu/tcms-go/internal/middleware"
	"github.com/traveledu/tcms-go/internal/model"
	"github.com/traveledu/tcms-go/internal/store"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the account shape returned to clients. Password hashes
// never leave the server.
type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func toUserResponse(u store.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.failLogin(w, r, req.Email)
			return
		}
		h.writeServiceError(w, err)
		return
	}

	valid, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !valid {
		h.failLogin(w, r, req.Email)
		return
	}

	// Transparent parameter upgrade on successful verification.
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(req.Password); err == nil {
			err = h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
				ID:           user.ID,
				PasswordHash: newHash,
				UpdatedAt:    time.Now(),
			})
			if err != nil {
				slog.Warn("rehashing password", "user_id", user.ID, "error", err)
			}
		}
	}

	if err := h.queries.TouchUserLogin(r.Context(), store.TouchUserLoginParams{
		ID:          user.ID,
		LastLoginAt: time.Now(),
	}); err != nil {
		slog.Warn("recording login time", "user_id", user.ID, "error", err)
	}

	// New token on privilege change prevents session fixation.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.sessions.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	slog.Info("user logged in",
		"category", model.EventCategoryAuth,
		"user_id", user.ID,
		"email", user.Email,
	)
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserResponse(user)})
}

// failLogin answers an invalid credential pair. The message does not reveal
// whether the account exists.
func (h *Handler) failLogin(w http.ResponseWriter, r *http.Request, email string) {
	slog.Warn("failed login attempt",
		"category", model.EventCategoryAuth,
		"email", email,
		"remote_addr", r.RemoteAddr,
	)
	writeError(w, http.StatusUnauthorized, "invalid email or password")
}

// Logout handles POST /api/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessions.GetInt64(r.Context(), middleware.SessionKeyUserID)
	if err := h.sessions.Destroy(r.Context()); err != nil {
		h.writeServiceError(w, err)
		return
	}
	if userID != 0 {
		slog.Info("user logged out", "category", model.EventCategoryAuth, "user_id", userID)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Me handles GET /api/auth/me. Runs behind LoadUser.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserResponse(*user)})
}
