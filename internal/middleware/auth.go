// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/traveledu/tcms-go/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for user data.
const (
	ContextKeyUser        ContextKey = "user"
	ContextKeyRequestPath ContextKey = "request_path"
)

// SessionKeyUserID is the session key holding the logged-in user's id.
const SessionKeyUserID = "user_id"

// AuthorResolver determines which account a request acts as. The production
// resolver reads the session; the development resolver bypasses auth and
// attributes every write to the first admin account.
type AuthorResolver interface {
	ResolveAuthor(r *http.Request) (store.User, error)
}

// ErrNoAuthor is returned when a request carries no usable identity.
var ErrNoAuthor = errors.New("no authenticated user")

// SessionResolver resolves the author from the scs session. This is the
// production path.
type SessionResolver struct {
	Sessions *scs.SessionManager
	Queries  *store.Queries
}

// ResolveAuthor looks up the session user in the database.
func (sr *SessionResolver) ResolveAuthor(r *http.Request) (store.User, error) {
	userID := sr.Sessions.GetInt64(r.Context(), SessionKeyUserID)
	if userID == 0 {
		return store.User{}, ErrNoAuthor
	}
	user, err := sr.Queries.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.User{}, ErrNoAuthor
		}
		return store.User{}, fmt.Errorf("loading session user: %w", err)
	}
	return user, nil
}

// DevResolver resolves every request to the first admin account. Only wired
// when auth bypass is enabled in development.
type DevResolver struct {
	Queries *store.Queries
}

// ResolveAuthor returns the oldest admin account.
func (dr *DevResolver) ResolveAuthor(r *http.Request) (store.User, error) {
	user, err := dr.Queries.FirstAdminUser(r.Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.User{}, ErrNoAuthor
		}
		return store.User{}, fmt.Errorf("loading dev admin user: %w", err)
	}
	return user, nil
}

// writeAuthError writes a JSON error body in the API error shape.
func writeAuthError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// LoadUser creates middleware that resolves the request author and stores it
// in the request context. Requests without a resolvable author get 401.
func LoadUser(resolver AuthorResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.ResolveAuthor(r)
			if err != nil {
				if errors.Is(err, ErrNoAuthor) {
					writeAuthError(w, http.StatusUnauthorized, "authentication required")
					return
				}
				slog.Error("resolving request author", "error", err)
				writeAuthError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *store.User {
	user, ok := r.Context().Value(ContextKeyUser).(store.User)
	if !ok {
		return nil
	}
	return &user
}

// GetUserID returns the current user's ID from context, or 0 if not found.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}

// RequestPath creates middleware that stores the request path in the context.
// The logging handler includes it in error events.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, ok := ctx.Value(ContextKeyRequestPath).(string)
	if !ok {
		return ""
	}
	return path
}

// User roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// roleLevel returns a numeric level for role hierarchy.
// Higher level = more permissions. Public users have level 0 (no admin access).
func roleLevel(role string) int {
	switch role {
	case RoleAdmin:
		return 2
	case RoleEditor:
		return 1
	default:
		return 0
	}
}

// RequireRole creates middleware that requires a minimum user role.
// Roles are hierarchical: admin > editor. For example, RequireRole("editor")
// allows both admin and editor users. Must run after LoadUser.
func RequireRole(minRole string) func(http.Handler) http.Handler {
	minLevel := roleLevel(minRole)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if roleLevel(user.Role) < minLevel {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", user.ID,
					"user_role", user.Role,
					"required_role", minRole,
					"remote_addr", r.RemoteAddr,
				)
				writeAuthError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireEditor creates middleware that requires at least editor role.
// Allows both admin and editor users.
func RequireEditor() func(http.Handler) http.Handler {
	return RequireRole(RoleEditor)
}

// RequireAdmin creates middleware that requires admin role.
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(RoleAdmin)
}
