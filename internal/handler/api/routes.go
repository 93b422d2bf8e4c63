// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/intravvel/console-go/internal/middleware"
)

// Routes builds the /api/v1 router: public endpoints behind a per-IP
// limiter, everything else behind the bearer token verifier with a
// per-operator limiter.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	// Global rate limiting for the API (100 requests per second with burst of 200)
	rateLimiter := middleware.NewGlobalRateLimiter(100, 200)
	r.Use(rateLimiter.Middleware())

	// Public endpoints (no authentication required)
	r.Get("/status", h.Status)
	r.Post("/auth/login", h.Login)
	r.Post("/contact", h.Contact)

	// Protected endpoints (bearer token required)
	r.Group(func(r chi.Router) {
		r.Use(middleware.TokenAuth(h.identity))
		r.Use(middleware.UserRateLimit(10, 20)) // per operator

		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/session", h.SessionInfo)

		r.Get("/services", h.ListServices)
		r.Post("/services", h.CreateService)
		r.Get("/services/{id}", h.GetService)
		r.Put("/services/{id}", h.UpdateService)
		r.Delete("/services/{id}", h.DeleteService)

		r.Get("/content", h.ListContent)
		r.Get("/content/{section}", h.GetContent)
		r.Put("/content/{section}", h.UpsertContent)

		r.Get("/messages", h.ListMessages)
		r.Get("/messages/{id}", h.GetMessage)
		r.Patch("/messages/{id}", h.UpdateMessageStatus)
		r.Delete("/messages/{id}", h.DeleteMessage)

		r.Post("/ai/generate", h.Generate)
	})

	return r
}
