// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"

	"filippo.io/csrf/gorilla"
)

// CSRFConfig configures cross-site request forgery protection for the
// admin routes. The underlying filippo.io/csrf library validates Fetch
// metadata headers, so no token cookie is issued.
type CSRFConfig struct {
	// AuthKey is a 32-byte key. The session secret is reused here.
	AuthKey []byte

	// ErrorHandler answers rejected requests. Defaults to a JSON 403.
	ErrorHandler http.Handler

	// TrustedOrigins lists host:port values allowed to make cross-origin
	// requests, typically the React frontend's dev server.
	TrustedOrigins []string
}

// DefaultCSRFConfig returns the CSRF settings for the given environment.
func DefaultCSRFConfig(authKey []byte, isDev bool) CSRFConfig {
	cfg := CSRFConfig{AuthKey: authKey}
	if isDev {
		// The library expects host-only values, not full URLs.
		cfg.TrustedOrigins = []string{
			"localhost:8080",
			"localhost:5173",
			"127.0.0.1:8080",
		}
	}
	return cfg
}

// CSRF returns the CSRF protection middleware.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	opts := []csrf.Option{}
	if cfg.ErrorHandler != nil {
		opts = append(opts, csrf.ErrorHandler(cfg.ErrorHandler))
	} else {
		opts = append(opts, csrf.ErrorHandler(http.HandlerFunc(rejectCSRF)))
	}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}
	return csrf.Protect(cfg.AuthKey, opts...)
}

func rejectCSRF(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	slog.Warn("csrf validation failed",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
		"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
	)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"error":"csrf validation failed"}`))
}
