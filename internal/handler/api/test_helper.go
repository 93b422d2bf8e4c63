// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/intravvel/console-go/internal/ai"
	"github.com/intravvel/console-go/internal/identity"
	"github.com/intravvel/console-go/internal/mailer"
	"github.com/intravvel/console-go/internal/model"
	"github.com/intravvel/console-go/internal/testutil"
)

// fakeGenerator returns canned content without touching the network.
type fakeGenerator struct {
	content string
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, req ai.GenerateRequest) (ai.GenerateResponse, error) {
	if f.err != nil {
		return ai.GenerateResponse{}, f.err
	}
	return ai.GenerateResponse{Content: f.content, Model: "fake-model"}, nil
}

// testEnv wires a full API router over an in-memory database.
type testEnv struct {
	db        *sql.DB
	handler   *Handler
	router    http.Handler
	generator *fakeGenerator
	user      model.User
	token     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.MemoryDB(t)
	logger := testutil.TestLogger()

	provider := identity.NewService(db, time.Hour, logger)
	generator := &fakeGenerator{content: "Generated copy."}
	m := mailer.New(mailer.Config{}, logger) // unconfigured: Notify reports false

	h := NewHandler(db, provider, generator, m, logger)

	user := testutil.CreateUser(t, db, "ops@intravvel.com", "correct horse")
	token := testutil.IssueToken(t, db, user.ID, time.Hour)

	return &testEnv{
		db:        db,
		handler:   h,
		router:    h.Routes(),
		generator: generator,
		user:      user,
		token:     token,
	}
}

// do performs a request against the router. A non-empty token is sent as
// a bearer credential.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// unmarshalData unmarshals a JSON response body's data field.
func unmarshalData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	return resp.Data
}

// unmarshalError unmarshals a JSON error response body.
func unmarshalError(t *testing.T, w *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error %q: %v", w.Body.String(), err)
	}
	return resp.Error
}
