// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/intravvel/console-go/internal/identity"
	"github.com/intravvel/console-go/internal/middleware"
	"github.com/intravvel/console-go/internal/model"
)

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an operator and issues a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		WriteValidationError(w, map[string]string{
			"email":    "Email is required",
			"password": "Password is required",
		})
		return
	}

	session, err := h.identity.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			WriteUnauthorized(w, "Invalid email or password")
			return
		}
		h.logger.Error("login failed", "error", err)
		WriteInternalError(w, "Failed to sign in")
		return
	}

	_ = h.events.LogInfo(r.Context(), model.EventCategoryAuth, "operator signed in",
		&session.User.ID, nil)

	WriteSuccess(w, session, nil)
}

// Logout revokes the caller's bearer token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		WriteUnauthorized(w, "Missing bearer token")
		return
	}

	if err := h.identity.SignOut(r.Context(), parts[1]); err != nil {
		h.logger.Error("logout failed", "error", err)
		WriteInternalError(w, "Failed to sign out")
		return
	}

	if user := middleware.GetUser(r); user != nil {
		_ = h.events.LogInfo(r.Context(), model.EventCategoryAuth, "operator signed out",
			&user.ID, nil)
	}

	WriteSuccess(w, map[string]string{"status": "signed_out"}, nil)
}

// SessionInfo returns the operator account behind the presented token.
func (h *Handler) SessionInfo(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}
	WriteSuccess(w, user, nil)
}
