// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/intravvel/console-go/internal/model"
)

// ListMessages returns all contact messages, newest first.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.queries.ListMessages(r.Context())
	if err != nil {
		h.logger.Error("listing messages failed", "error", err)
		WriteInternalError(w, "Failed to list messages")
		return
	}
	WriteSuccess(w, messages, &Meta{Total: int64(len(messages))})
}

// GetMessage returns a single contact message.
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	msg, ok := h.requireMessage(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, msg, nil)
}

// UpdateMessageStatusRequest is the body for PATCH /messages/{id}.
type UpdateMessageStatusRequest struct {
	Status string `json:"status"`
}

// UpdateMessageStatus moves a message along the new → read → archived
// triage flow. Regressions are rejected; same-status updates are no-ops.
func (h *Handler) UpdateMessageStatus(w http.ResponseWriter, r *http.Request) {
	msg, ok := h.requireMessage(w, r)
	if !ok {
		return
	}

	var req UpdateMessageStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if !model.IsValidMessageStatus(req.Status) {
		WriteValidationError(w, map[string]string{"status": "Unknown status"})
		return
	}
	if !model.CanTransition(msg.Status, req.Status) {
		WriteValidationError(w, map[string]string{
			"status": "Cannot change status from " + msg.Status + " to " + req.Status,
		})
		return
	}

	if msg.Status == req.Status {
		WriteSuccess(w, msg, nil)
		return
	}

	updated, err := h.queries.UpdateMessageStatus(r.Context(), msg.ID, req.Status)
	if err != nil {
		h.logger.Error("updating message status failed", "id", msg.ID, "error", err)
		WriteInternalError(w, "Failed to update message")
		return
	}

	h.logMutation(r, model.EventCategoryMessage, "message status changed", msg.ID)
	WriteSuccess(w, updated, nil)
}

// DeleteMessage removes a contact message.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.queries.DeleteMessage(r.Context(), id)
	if err != nil {
		h.logger.Error("deleting message failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to delete message")
		return
	}
	if deleted == 0 {
		WriteNotFound(w, "Message not found")
		return
	}

	h.logMutation(r, model.EventCategoryMessage, "message deleted", id)
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}

func (h *Handler) requireMessage(w http.ResponseWriter, r *http.Request) (model.Message, bool) {
	id := chi.URLParam(r, "id")

	msg, err := h.queries.GetMessage(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Message not found")
		} else {
			h.logger.Error("fetching message failed", "id", id, "error", err)
			WriteInternalError(w, "Failed to retrieve message")
		}
		return model.Message{}, false
	}
	return msg, true
}
