// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/intravvel/console-go/internal/model"
	"github.com/intravvel/console-go/internal/store"
)

// ContactResponse is the public acknowledgement for a contact submission.
type ContactResponse struct {
	ID        string `json:"id"`
	EmailSent bool   `json:"email_sent"`
}

// Contact accepts a public contact form submission: the message is
// stored with status "new" and the site admin is notified by email on a
// best-effort basis.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	var draft model.MessageDraft
	if !decodeJSON(w, r, &draft) {
		return
	}

	if errs := draft.Validate(); len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}

	msg, err := h.queries.CreateMessage(r.Context(), store.CreateMessageParams{
		ID:        uuid.NewString(),
		Name:      draft.Name,
		Email:     draft.Email,
		Subject:   draft.Subject,
		Body:      draft.Body,
		Status:    model.MessageStatusNew,
		CreatedAt: time.Now(),
	})
	if err != nil {
		h.logger.Error("storing contact message failed", "error", err)
		WriteInternalError(w, "Failed to submit message")
		return
	}

	emailSent := h.mailer.NotifyContact(msg)

	_ = h.events.LogInfo(r.Context(), model.EventCategoryMessage, "contact message received",
		nil, map[string]any{"id": msg.ID, "email_sent": emailSent})

	WriteCreated(w, ContactResponse{ID: msg.ID, EmailSent: emailSent})
}
