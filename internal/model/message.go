// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// Message triage statuses. The default flow is forward-only
// (new -> read -> archived); archiving is permitted from any status.
const (
	MessageStatusNew      = "new"
	MessageStatusRead     = "read"
	MessageStatusArchived = "archived"
)

// Message is an inbound contact-form submission awaiting triage.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// IsValidMessageStatus checks whether s is a known triage status.
func IsValidMessageStatus(s string) bool {
	switch s {
	case MessageStatusNew, MessageStatusRead, MessageStatusArchived:
		return true
	}
	return false
}

// CanTransition reports whether a message may move from one status to
// another. Transitions are one-directional; a no-op transition to the
// current status is allowed.
func CanTransition(from, to string) bool {
	if !IsValidMessageStatus(from) || !IsValidMessageStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	switch from {
	case MessageStatusNew:
		return to == MessageStatusRead || to == MessageStatusArchived
	case MessageStatusRead:
		return to == MessageStatusArchived
	}
	return false
}

// MessageDraft holds a contact-form submission before it is stored.
type MessageDraft struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"message"`
}

// Validate checks required fields and returns per-field error messages.
func (d MessageDraft) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(d.Name) == "" {
		errs["name"] = "Name is required"
	}
	email := strings.TrimSpace(d.Email)
	if email == "" {
		errs["email"] = "Email is required"
	} else if !strings.Contains(email, "@") {
		errs["email"] = "Email is not valid"
	}
	if strings.TrimSpace(d.Subject) == "" {
		errs["subject"] = "Subject is required"
	}
	if strings.TrimSpace(d.Body) == "" {
		errs["message"] = "Message is required"
	}
	return errs
}
