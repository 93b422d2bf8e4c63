// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/intravvel/console-go/internal/identity"
	"github.com/intravvel/console-go/internal/model"
)

// fakeProvider verifies exactly one token.
type fakeProvider struct {
	token string
	user  model.User
	err   error
}

func (f *fakeProvider) SignIn(ctx context.Context, email, password string) (identity.Session, error) {
	return identity.Session{}, errors.New("not implemented")
}

func (f *fakeProvider) VerifyToken(ctx context.Context, token string) (model.User, error) {
	if f.err != nil {
		return model.User{}, f.err
	}
	if token == f.token {
		return f.user, nil
	}
	return model.User{}, identity.ErrInvalidToken
}

func (f *fakeProvider) SignOut(ctx context.Context, token string) error {
	return nil
}

func authedHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r)
		if user == nil {
			t.Error("expected user in context")
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestTokenAuth(t *testing.T) {
	provider := &fakeProvider{
		token: "good-token",
		user:  model.User{ID: 7, Email: "ops@intravvel.com"},
	}
	handler := TokenAuth(provider)(authedHandler(t))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"valid token", "Bearer good-token", http.StatusNoContent, ""},
		{"missing header", "", http.StatusUnauthorized, "unauthorized"},
		{"malformed header", "good-token", http.StatusUnauthorized, "unauthorized"},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized, "unauthorized"},
		{"unknown token", "Bearer bad-token", http.StatusForbidden, "forbidden"},
		{"case-insensitive scheme", "bearer good-token", http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/services", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantCode != "" {
				var apiErr APIError
				if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
					t.Fatalf("error body is not JSON: %v", err)
				}
				if apiErr.Error.Code != tt.wantCode {
					t.Errorf("error code = %q, want %q", apiErr.Error.Code, tt.wantCode)
				}
			}
		})
	}
}

func TestTokenAuthProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("database is down")}
	handler := TokenAuth(provider)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run on provider failure")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/services", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestGetUserWithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetUser(req) != nil {
		t.Error("expected nil user for unauthenticated request")
	}
}
