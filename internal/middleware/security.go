// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// SecurityHeadersConfig controls the headers added to every response.
// The API serves JSON and uploaded files, never HTML, so the default
// CSP forbids everything and only the uploads tree relaxes it enough
// for browsers to render images directly.
type SecurityHeadersConfig struct {
	// IsDevelopment disables HSTS, which would otherwise pin localhost
	// to HTTPS in the developer's browser.
	IsDevelopment bool

	// ContentSecurityPolicy overrides the default deny-all policy.
	ContentSecurityPolicy string

	// HSTSMaxAge in seconds. 0 disables the header.
	HSTSMaxAge int

	// HSTSIncludeSubDomains extends the HSTS policy to subdomains.
	HSTSIncludeSubDomains bool

	// FrameOptions sets X-Frame-Options. Empty disables the header.
	FrameOptions string

	// ReferrerPolicy sets Referrer-Policy. Empty disables the header.
	ReferrerPolicy string

	// ExcludePaths skip all security headers by prefix match.
	ExcludePaths []string
}

// DefaultSecurityHeadersConfig returns the policy for the JSON API.
func DefaultSecurityHeadersConfig(isDev bool) SecurityHeadersConfig {
	cfg := SecurityHeadersConfig{
		IsDevelopment:         isDev,
		ContentSecurityPolicy: "default-src 'none'; img-src 'self'; frame-ancestors 'none'",
		HSTSMaxAge:            31536000,
		FrameOptions:          "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}
	if !isDev {
		cfg.HSTSIncludeSubDomains = true
	}
	return cfg
}

// SecurityHeaders adds the configured security headers to every response.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	var hsts string
	if cfg.HSTSMaxAge > 0 {
		hsts = "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubDomains {
			hsts += "; includeSubDomains"
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range cfg.ExcludePaths {
				if strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}

			h := w.Header()
			if cfg.ContentSecurityPolicy != "" {
				h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}
			if !cfg.IsDevelopment && hsts != "" {
				h.Set("Strict-Transport-Security", hsts)
			}
			if cfg.FrameOptions != "" {
				h.Set("X-Frame-Options", cfg.FrameOptions)
			}
			h.Set("X-Content-Type-Options", "nosniff")
			if cfg.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", cfg.ReferrerPolicy)
			}

			next.ServeHTTP(w, r)
		})
	}
}
