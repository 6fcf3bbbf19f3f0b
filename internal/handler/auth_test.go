// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/traveledu/tcms-go/internal/auth"
	"github.com/traveledu/tcms-go/internal/store"
)

func createLoginUser(t *testing.T, h *Handler, email, password string) store.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	now := time.Now()
	user, err := h.queries.CreateUser(context.Background(), store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Role:         "admin",
		Name:         "Admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("creating login user: %v", err)
	}
	return user
}

// loginRecorder runs Login behind the session middleware, which the handler
// needs for token renewal.
func (h *Handler) loginRecorder(body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	h.sessions.LoadAndSave(http.HandlerFunc(h.Login)).ServeHTTP(rec, req)
	return rec
}

func TestLoginSuccess(t *testing.T) {
	h, _ := testHandler(t)
	user := createLoginUser(t, h, "admin@example.com", "correct horse battery")

	rec := h.loginRecorder(`{"email": "admin@example.com", "password": "correct horse battery"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		User userResponse `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.User.ID != user.ID || resp.User.Role != "admin" {
		t.Fatalf("user = %+v", resp.User)
	}
	if strings.Contains(rec.Body.String(), "passwordHash") {
		t.Fatal("password hash leaked in response")
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Fatal("expected a session cookie")
	}

	got, err := h.queries.GetUserByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("reloading user: %v", err)
	}
	if !got.LastLoginAt.Valid {
		t.Fatal("last_login_at not recorded")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h, _ := testHandler(t)
	createLoginUser(t, h, "admin@example.com", "correct horse battery")

	rec := h.loginRecorder(`{"email": "admin@example.com", "password": "wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLoginUnknownAccountSameAnswer(t *testing.T) {
	h, _ := testHandler(t)
	createLoginUser(t, h, "admin@example.com", "correct horse battery")

	wrongPass := h.loginRecorder(`{"email": "admin@example.com", "password": "wrong"}`)
	unknown := h.loginRecorder(`{"email": "ghost@example.com", "password": "wrong"}`)
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Fatal("unknown account and wrong password answers differ")
	}
}
