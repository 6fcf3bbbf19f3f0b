// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"os"
	"time"
)

type healthCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

type healthStatus struct {
	Status string                 `json:"status"`
	Checks map[string]healthCheck `json:"checks"`
}

// Health handles GET /healthz. Degraded state answers 503 so load balancers
// pull the instance. The cache check is informational only; a dead Redis
// must not take the API down with it.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())
	uploadsCheck := h.checkUploadsDir()

	status := healthStatus{
		Status: "healthy",
		Checks: map[string]healthCheck{
			"database": dbCheck,
			"uploads":  uploadsCheck,
			"cache":    h.checkCache(r.Context()),
		},
	}
	code := http.StatusOK
	if dbCheck.Status != "healthy" || uploadsCheck.Status != "healthy" {
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

func (h *Handler) checkDatabase(ctx context.Context) healthCheck {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := h.db.PingContext(ctx); err != nil {
		return healthCheck{Status: "unhealthy", Message: err.Error()}
	}
	return healthCheck{Status: "healthy", Latency: time.Since(start).Round(time.Microsecond).String()}
}

// checkCache pings the cache backend when it supports pinging. The
// in-memory cache does not and always reports healthy.
func (h *Handler) checkCache(ctx context.Context) healthCheck {
	if h.cache == nil {
		return healthCheck{Status: "disabled"}
	}
	p, ok := h.cache.(interface{ Ping(context.Context) error })
	if !ok {
		return healthCheck{Status: "healthy"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := p.Ping(ctx); err != nil {
		return healthCheck{Status: "unhealthy", Message: err.Error()}
	}
	return healthCheck{Status: "healthy", Latency: time.Since(start).Round(time.Microsecond).String()}
}

func (h *Handler) checkUploadsDir() healthCheck {
	info, err := os.Stat(h.cfg.UploadsDir)
	if err != nil {
		return healthCheck{Status: "unhealthy", Message: err.Error()}
	}
	if !info.IsDir() {
		return healthCheck{Status: "unhealthy", Message: "uploads path is not a directory"}
	}
	return healthCheck{Status: "healthy"}
}
