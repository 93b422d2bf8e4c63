// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/intravvel/console-go/internal/model"
	"github.com/intravvel/console-go/internal/store"
)

// ListContent returns every stored content section.
func (h *Handler) ListContent(w http.ResponseWriter, r *http.Request) {
	sections, err := h.queries.ListSiteContent(r.Context())
	if err != nil {
		h.logger.Error("listing content failed", "error", err)
		WriteInternalError(w, "Failed to list content")
		return
	}
	WriteSuccess(w, sections, &Meta{Total: int64(len(sections))})
}

// GetContent returns a single content section by key.
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	if !model.IsValidSection(section) {
		WriteNotFound(w, "Unknown content section")
		return
	}

	content, err := h.queries.GetSiteContent(r.Context(), section)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Content section not stored yet")
		} else {
			h.logger.Error("fetching content failed", "section", section, "error", err)
			WriteInternalError(w, "Failed to retrieve content")
		}
		return
	}
	WriteSuccess(w, content, nil)
}

// UpsertContentRequest is the body for PUT /content/{section}.
type UpsertContentRequest struct {
	Data map[string]string `json:"data"`
}

// UpsertContent inserts or fully replaces a content section. The section
// key is taken from the URL, so a row per section is the invariant.
func (h *Handler) UpsertContent(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	if !model.IsValidSection(section) {
		WriteNotFound(w, "Unknown content section")
		return
	}

	var req UpsertContentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Data == nil {
		WriteBadRequest(w, "Missing data payload", nil)
		return
	}

	if err := model.ValidateSectionData(section, req.Data); err != nil {
		WriteValidationError(w, map[string]string{"data": err.Error()})
		return
	}

	content, err := h.queries.UpsertSiteContent(r.Context(), store.UpsertSiteContentParams{
		Section:   section,
		Data:      req.Data,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		h.logger.Error("upserting content failed", "section", section, "error", err)
		WriteInternalError(w, "Failed to save content")
		return
	}

	h.logMutation(r, model.EventCategoryContent, "content section saved", section)
	WriteSuccess(w, content, nil)
}
