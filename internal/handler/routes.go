// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/traveledu/tcms-go/internal/middleware"
)

// Routes builds the router. The resolver decides how admin requests map to
// an account; production passes a SessionResolver, development with auth
// disabled passes a DevResolver.
func (h *Handler) Routes(resolver middleware.AuthorResolver) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.RequestPath)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(h.cfg.IsDevelopment())))
	r.Use(h.sessions.LoadAndSave)

	csrfProtect := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(h.cfg.SessionSecret), h.cfg.IsDevelopment()))

	r.Get("/healthz", h.Health)
	r.Get("/sitemap.xml", h.PublicSitemap)
	r.Get("/robots.txt", h.PublicRobots)

	// Public read API. Cached, published content only.
	r.Group(func(r chi.Router) {
		r.Get("/api/programs", h.PublicListPrograms)
		r.Get("/api/programs/{slug}", h.PublicGetProgram)
		r.Get("/api/posts", h.PublicListPosts)
		r.Get("/api/posts/{slug}", h.PublicGetPost)
		r.Get("/api/testimonials", h.PublicListTestimonials)
		r.Get("/api/heroes", h.PublicListHeroes)
		r.Get("/api/partners", h.PublicListPartners)
		r.Get("/api/showcase", h.PublicShowcase)
		r.Get("/api/languages", h.PublicListLanguages)
	})

	// Public write API. Per-IP rate limit keeps form spam in check.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(1, 5))
		r.Post("/api/contact", h.PublicSubmitContact)
		r.Post("/api/subscribe", h.PublicSubscribe)
		r.Post("/api/unsubscribe", h.PublicUnsubscribe)
	})

	// Auth. Login gets a tighter limit than the rest of the API.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(0.5, 5))
		r.Post("/api/auth/login", h.Login)
	})
	r.Post("/api/auth/logout", h.Logout)

	// Admin API. Session-authenticated, CSRF-protected, editor or better.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(csrfProtect)
		r.Use(middleware.LoadUser(resolver))
		r.Use(middleware.RequireEditor())

		r.Get("/me", h.Me)

		r.Route("/programs", func(r chi.Router) {
			r.Get("/", h.AdminListPrograms)
			r.Post("/", h.AdminCreateProgram)
			r.Get("/{id}", h.AdminGetProgram)
			r.Put("/{id}", h.AdminUpdateProgram)
			r.Delete("/{id}", h.AdminDeleteProgram)
			r.Get("/{id}/translations", h.AdminListProgramTranslations)
			r.Post("/{id}/translate-draft", h.AdminTranslateProgramDraft)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.AdminListPosts)
			r.Post("/", h.AdminCreatePost)
			r.Get("/{id}", h.AdminGetPost)
			r.Put("/{id}", h.AdminUpdatePost)
			r.Delete("/{id}", h.AdminDeletePost)
			r.Get("/{id}/translations", h.AdminListPostTranslations)
		})

		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", h.AdminListTestimonials)
			r.Post("/", h.AdminCreateTestimonial)
			r.Get("/{id}", h.AdminGetTestimonial)
			r.Put("/{id}", h.AdminUpdateTestimonial)
			r.Delete("/{id}", h.AdminDeleteTestimonial)
		})

		r.Route("/heroes", func(r chi.Router) {
			r.Get("/", h.AdminListHeroes)
			r.Post("/", h.AdminCreateHero)
			r.Get("/{id}", h.AdminGetHero)
			r.Put("/{id}", h.AdminUpdateHero)
			r.Delete("/{id}", h.AdminDeleteHero)
		})

		r.Route("/partners", func(r chi.Router) {
			r.Get("/", h.AdminListPartners)
			r.Post("/", h.AdminCreatePartner)
			r.Put("/{id}", h.AdminUpdatePartner)
			r.Delete("/{id}", h.AdminDeletePartner)
		})

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", h.AdminListLocations)
			r.Post("/", h.AdminCreateLocation)
			r.Put("/{id}", h.AdminUpdateLocation)
			r.Delete("/{id}", h.AdminDeleteLocation)
		})

		r.Route("/showcases", func(r chi.Router) {
			r.Get("/", h.AdminListShowcases)
			r.Post("/", h.AdminCreateShowcase)
			r.Put("/{id}", h.AdminUpdateShowcase)
			r.Delete("/{id}", h.AdminDeleteShowcase)
		})
		r.Post("/showcase/repair", h.AdminRepairShowcases)

		r.Route("/media", func(r chi.Router) {
			r.Get("/", h.AdminListMedia)
			r.Post("/", h.AdminUploadMedia)
			r.Get("/{id}", h.AdminGetMedia)
			r.Put("/{id}", h.AdminUpdateMediaAlt)
			r.Delete("/{id}", h.AdminDeleteMedia)
		})
		r.Post("/media/health-scan", h.AdminMediaHealthScan)

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", h.AdminListSubmissions)
			r.Get("/export", h.AdminExportSubmissions)
			r.Post("/{id}/read", h.AdminMarkSubmissionRead)
			r.Delete("/{id}", h.AdminDeleteSubmission)
		})

		r.Route("/subscribers", func(r chi.Router) {
			r.Get("/", h.AdminListSubscribers)
			r.Get("/export", h.AdminExportSubscribers)
		})
	})

	// Uploaded files.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.cfg.UploadsDir)))
	r.Get("/uploads/*", func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	})

	return r
}
