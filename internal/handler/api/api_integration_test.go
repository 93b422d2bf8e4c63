// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/intravvel/console-go/internal/ai"
	"github.com/intravvel/console-go/internal/identity"
	"github.com/intravvel/console-go/internal/model"
)

func TestStatusIsPublic(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/status", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	data := unmarshalData[StatusResponse](t, w)
	if data.Status != "ok" || data.Version != "v1" {
		t.Errorf("unexpected status payload: %+v", data)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/services", "/content", "/messages", "/auth/session"} {
		w := env.do(t, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: %d, want 401", path, w.Code)
		}
	}

	// Presented but invalid credentials are forbidden, not unauthenticated.
	w := env.do(t, http.MethodGet, "/services", "bogus-token", nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("bogus token: %d, want 403", w.Code)
	}
}

func TestLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    "ops@intravvel.com",
		Password: "correct horse",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d, body %s", w.Code, w.Body.String())
	}
	session := unmarshalData[identity.Session](t, w)
	if session.Token == "" {
		t.Fatal("expected a token")
	}

	w = env.do(t, http.MethodGet, "/auth/session", session.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("session info: %d", w.Code)
	}
	user := unmarshalData[model.User](t, w)
	if user.Email != "ops@intravvel.com" {
		t.Errorf("session user = %q", user.Email)
	}

	w = env.do(t, http.MethodPost, "/auth/logout", session.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: %d", w.Code)
	}

	w = env.do(t, http.MethodGet, "/auth/session", session.Token, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("revoked token still accepted: %d", w.Code)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    "ops@intravvel.com",
		Password: "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: %d, want 401", w.Code)
	}

	w = env.do(t, http.MethodPost, "/auth/login", "", LoginRequest{})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty credentials: %d, want 422", w.Code)
	}
}

func TestServiceCRUD(t *testing.T) {
	env := newTestEnv(t)

	draft := model.ServiceDraft{
		Title:       "Bali Beach Escape",
		Description: "Five days of sun and surf.",
		Price:       "1299.99",
		Duration:    "5 Days / 4 Nights",
		Featured:    true,
	}

	w := env.do(t, http.MethodPost, "/services", env.token, draft)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d, body %s", w.Code, w.Body.String())
	}
	created := unmarshalData[model.Service](t, w)
	if created.ID == "" || created.Price != 1299.99 || !created.Featured {
		t.Errorf("created service: %+v", created)
	}

	w = env.do(t, http.MethodGet, "/services", env.token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	services := unmarshalData[[]model.Service](t, w)
	if len(services) != 1 {
		t.Fatalf("listed %d services, want 1", len(services))
	}

	draft.Title = "Bali Beach Escape Deluxe"
	draft.Price = "1499"
	w = env.do(t, http.MethodPut, "/services/"+created.ID, env.token, draft)
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d, body %s", w.Code, w.Body.String())
	}
	updated := unmarshalData[model.Service](t, w)
	if updated.Title != "Bali Beach Escape Deluxe" || updated.Price != 1499 {
		t.Errorf("updated service: %+v", updated)
	}

	w = env.do(t, http.MethodDelete, "/services/"+created.ID, env.token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: %d", w.Code)
	}
	w = env.do(t, http.MethodGet, "/services/"+created.ID, env.token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: %d, want 404", w.Code)
	}
}

func TestServiceValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/services", env.token, model.ServiceDraft{
		Title: "No price or description",
		Price: "-5",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid draft: %d, want 422", w.Code)
	}
	detail := unmarshalError(t, w)
	if detail.Code != "validation_error" {
		t.Errorf("error code = %q", detail.Code)
	}
	if _, ok := detail.Details["price"]; !ok {
		t.Errorf("missing price error: %v", detail.Details)
	}
	if _, ok := detail.Details["description"]; !ok {
		t.Errorf("missing description error: %v", detail.Details)
	}
}

func TestContentUpsert(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/content/hero", env.token, UpsertContentRequest{
		Data: map[string]string{"title": "Welcome"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("insert: %d, body %s", w.Code, w.Body.String())
	}

	// Full replace of the same section, never a second row.
	w = env.do(t, http.MethodPut, "/content/hero", env.token, UpsertContentRequest{
		Data: map[string]string{"title": "Hello", "subtitle": "Travel far"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("replace: %d", w.Code)
	}

	w = env.do(t, http.MethodGet, "/content", env.token, nil)
	sections := unmarshalData[[]model.ContentSection](t, w)
	if len(sections) != 1 {
		t.Fatalf("listed %d sections, want 1", len(sections))
	}
	if sections[0].Data["title"] != "Hello" {
		t.Errorf("section data: %v", sections[0].Data)
	}

	// Unknown section key.
	w = env.do(t, http.MethodPut, "/content/sidebar", env.token, UpsertContentRequest{
		Data: map[string]string{"title": "x"},
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown section: %d, want 404", w.Code)
	}

	// Stray field for the section shape.
	w = env.do(t, http.MethodPut, "/content/hero", env.token, UpsertContentRequest{
		Data: map[string]string{"heading": "x"},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("stray field: %d, want 422", w.Code)
	}
}

func TestContactAndMessageTriage(t *testing.T) {
	env := newTestEnv(t)

	// Public submission, no token.
	w := env.do(t, http.MethodPost, "/contact", "", model.MessageDraft{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "Booking inquiry",
		Body:    "June availability?",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("contact: %d, body %s", w.Code, w.Body.String())
	}
	ack := unmarshalData[ContactResponse](t, w)
	if ack.ID == "" {
		t.Fatal("expected message ID")
	}
	if ack.EmailSent {
		t.Error("unconfigured mailer should report email_sent=false")
	}

	w = env.do(t, http.MethodGet, "/messages/"+ack.ID, env.token, nil)
	msg := unmarshalData[model.Message](t, w)
	if msg.Status != model.MessageStatusNew {
		t.Fatalf("fresh message status = %q", msg.Status)
	}

	// new -> read
	w = env.do(t, http.MethodPatch, "/messages/"+ack.ID, env.token,
		UpdateMessageStatusRequest{Status: model.MessageStatusRead})
	if w.Code != http.StatusOK {
		t.Fatalf("mark read: %d", w.Code)
	}

	// read -> new is a regression
	w = env.do(t, http.MethodPatch, "/messages/"+ack.ID, env.token,
		UpdateMessageStatusRequest{Status: model.MessageStatusNew})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("regression: %d, want 422", w.Code)
	}

	// read -> read is a no-op
	w = env.do(t, http.MethodPatch, "/messages/"+ack.ID, env.token,
		UpdateMessageStatusRequest{Status: model.MessageStatusRead})
	if w.Code != http.StatusOK {
		t.Errorf("same-status update: %d, want 200", w.Code)
	}

	// read -> archived
	w = env.do(t, http.MethodPatch, "/messages/"+ack.ID, env.token,
		UpdateMessageStatusRequest{Status: model.MessageStatusArchived})
	if w.Code != http.StatusOK {
		t.Fatalf("archive: %d", w.Code)
	}

	w = env.do(t, http.MethodDelete, "/messages/"+ack.ID, env.token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: %d", w.Code)
	}
	w = env.do(t, http.MethodDelete, "/messages/"+ack.ID, env.token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("double delete: %d, want 404", w.Code)
	}
}

func TestContactValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/contact", "", model.MessageDraft{Email: "nope"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid draft: %d, want 422", w.Code)
	}
}

func TestGenerate(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/ai/generate", env.token, GenerateRequest{
		Prompt:      "Describe a beach holiday",
		ContentType: "service_description",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("generate: %d, body %s", w.Code, w.Body.String())
	}
	data := unmarshalData[GenerateResponse](t, w)
	if data.Content != "Generated copy." {
		t.Errorf("content = %q", data.Content)
	}

	// Empty prompt.
	w = env.do(t, http.MethodPost, "/ai/generate", env.token, GenerateRequest{Prompt: "  "})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty prompt: %d, want 422", w.Code)
	}

	// Provider without credentials.
	env.generator.err = ai.ErrNotConfigured
	w = env.do(t, http.MethodPost, "/ai/generate", env.token, GenerateRequest{Prompt: "hi"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("unconfigured: %d, want 500", w.Code)
	}
	if detail := unmarshalError(t, w); detail.Code != "not_configured" {
		t.Errorf("error code = %q", detail.Code)
	}
}
