// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"net/http"
	"sync"

	"github.com/intravvel/console-go/internal/model"
)

// MessageManager holds the operator's working copy of the contact inbox.
// Opening a new message marks it read exactly once; archiving works from
// any status.
type MessageManager struct {
	client *Client

	mu       sync.RWMutex
	messages []model.Message
	selected string
}

// NewMessageManager creates a manager with an empty local inbox.
func NewMessageManager(c *Client) *MessageManager {
	return &MessageManager{client: c}
}

// Refresh replaces the local inbox with the server's, newest first.
func (m *MessageManager) Refresh(ctx context.Context) error {
	var messages []model.Message
	if err := m.client.do(ctx, http.MethodGet, "/messages", nil, &messages); err != nil {
		return err
	}

	m.mu.Lock()
	m.messages = messages
	m.mu.Unlock()
	return nil
}

// Messages returns a copy of the local inbox.
func (m *MessageManager) Messages() []model.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// UnreadCount counts messages still in the new status.
func (m *MessageManager) UnreadCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, msg := range m.messages {
		if msg.Status == model.MessageStatusNew {
			n++
		}
	}
	return n
}

// Selected returns the selected message from the local inbox, or nil.
func (m *MessageManager) Selected() *model.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.messages {
		if m.messages[i].ID == m.selected {
			msg := m.messages[i]
			return &msg
		}
	}
	return nil
}

// Open selects a message for reading. When the local copy says the
// message is still new it is marked read on the server; a message
// already read or archived is left untouched, so the mark happens at
// most once per message.
func (m *MessageManager) Open(ctx context.Context, id string) (model.Message, error) {
	var msg model.Message
	if err := m.client.do(ctx, http.MethodGet, "/messages/"+id, nil, &msg); err != nil {
		return model.Message{}, err
	}

	if msg.Status == model.MessageStatusNew {
		updated, err := m.setStatus(ctx, id, model.MessageStatusRead)
		if err != nil {
			return model.Message{}, err
		}
		msg = updated
	}

	m.mu.Lock()
	m.selected = id
	m.mu.Unlock()

	if err := m.Refresh(ctx); err != nil {
		return msg, err
	}
	return msg, nil
}

// Archive moves a message to archived. Allowed from any status; archiving
// an already archived message is a no-op.
func (m *MessageManager) Archive(ctx context.Context, id string) error {
	if _, err := m.setStatus(ctx, id, model.MessageStatusArchived); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

// Delete removes a message, clears the selection if it pointed at the
// deleted entity, and refreshes the inbox.
func (m *MessageManager) Delete(ctx context.Context, id string) error {
	if err := m.client.do(ctx, http.MethodDelete, "/messages/"+id, nil, nil); err != nil {
		return err
	}

	m.mu.Lock()
	if m.selected == id {
		m.selected = ""
	}
	m.mu.Unlock()

	return m.Refresh(ctx)
}

// ContactAck is the server's acknowledgement of a contact submission.
type ContactAck struct {
	ID        string `json:"id"`
	EmailSent bool   `json:"email_sent"`
}

// SubmitContact sends a contact-form submission through the public
// endpoint. It validates the draft locally first and needs no session.
func (c *Client) SubmitContact(ctx context.Context, draft model.MessageDraft) (ContactAck, error) {
	if errs := draft.Validate(); len(errs) > 0 {
		return ContactAck{}, &ValidationError{Fields: errs}
	}

	var ack ContactAck
	if err := c.do(ctx, http.MethodPost, "/contact", draft, &ack); err != nil {
		return ContactAck{}, err
	}
	return ack, nil
}

func (m *MessageManager) setStatus(ctx context.Context, id, status string) (model.Message, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: status}

	var updated model.Message
	if err := m.client.do(ctx, http.MethodPatch, "/messages/"+id, body, &updated); err != nil {
		return model.Message{}, err
	}
	return updated, nil
}
