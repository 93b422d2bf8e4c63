// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/intravvel/console-go/internal/middleware"
	"github.com/intravvel/console-go/internal/model"
	"github.com/intravvel/console-go/internal/store"
)

// ListServices returns all services, newest first.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.queries.ListServices(r.Context())
	if err != nil {
		h.logger.Error("listing services failed", "error", err)
		WriteInternalError(w, "Failed to list services")
		return
	}
	WriteSuccess(w, services, &Meta{Total: int64(len(services))})
}

// GetService returns a single service.
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.requireService(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, svc, nil)
}

// CreateService creates a service from an operator draft.
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var draft model.ServiceDraft
	if !decodeJSON(w, r, &draft) {
		return
	}

	if errs := draft.Validate(); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	price, _ := model.ParsePrice(draft.Price)

	now := time.Now()
	svc, err := h.queries.CreateService(r.Context(), store.CreateServiceParams{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		Price:       price,
		Duration:    draft.Duration,
		ImageURL:    draft.ImageURL,
		Featured:    draft.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		h.logger.Error("creating service failed", "error", err)
		WriteInternalError(w, "Failed to create service")
		return
	}

	h.logMutation(r, model.EventCategoryService, "service created", svc.ID)
	WriteCreated(w, svc)
}

// UpdateService replaces the editable fields of a service.
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.requireService(w, r)
	if !ok {
		return
	}

	var draft model.ServiceDraft
	if !decodeJSON(w, r, &draft) {
		return
	}

	if errs := draft.Validate(); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	price, _ := model.ParsePrice(draft.Price)

	svc, err := h.queries.UpdateService(r.Context(), store.UpdateServiceParams{
		ID:          existing.ID,
		Title:       draft.Title,
		Description: draft.Description,
		Price:       price,
		Duration:    draft.Duration,
		ImageURL:    draft.ImageURL,
		Featured:    draft.Featured,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		h.logger.Error("updating service failed", "id", existing.ID, "error", err)
		WriteInternalError(w, "Failed to update service")
		return
	}

	h.logMutation(r, model.EventCategoryService, "service updated", svc.ID)
	WriteSuccess(w, svc, nil)
}

// DeleteService removes a service.
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.queries.DeleteService(r.Context(), id)
	if err != nil {
		h.logger.Error("deleting service failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to delete service")
		return
	}
	if deleted == 0 {
		WriteNotFound(w, "Service not found")
		return
	}

	h.logMutation(r, model.EventCategoryService, "service deleted", id)
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}

// requireService fetches the service named in the URL, writing the error
// response on failure.
func (h *Handler) requireService(w http.ResponseWriter, r *http.Request) (model.Service, bool) {
	id := chi.URLParam(r, "id")

	svc, err := h.queries.GetService(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Service not found")
		} else {
			h.logger.Error("fetching service failed", "id", id, "error", err)
			WriteInternalError(w, "Failed to retrieve service")
		}
		return model.Service{}, false
	}
	return svc, true
}

// logMutation records an entity change in the event log with the acting
// operator attached.
func (h *Handler) logMutation(r *http.Request, category, message, entityID string) {
	var userID *int64
	if user := middleware.GetUser(r); user != nil {
		userID = &user.ID
	}
	_ = h.events.LogInfo(r.Context(), category, message, userID,
		map[string]any{"id": entityID})
}
