// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package identity implements operator authentication: credential checks,
// bearer token issuance and verification.
package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/intravvel/console-go/internal/auth"
	"github.com/intravvel/console-go/internal/model"
	"github.com/intravvel/console-go/internal/store"
)

// Errors returned by the identity service.
var (
	// ErrInvalidCredentials is returned when the email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned when a bearer token is unknown, expired
	// or revoked.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Session is the result of a successful sign-in. Token is the raw bearer
// token; it is returned to the caller once and only its hash is stored.
type Session struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      model.User `json:"user"`
}

// Provider is the authentication surface consumed by HTTP handlers and
// middleware. Satisfied by *Service; tests substitute fakes.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	VerifyToken(ctx context.Context, token string) (model.User, error)
	SignOut(ctx context.Context, token string) error
}

// Service is the store-backed Provider implementation.
type Service struct {
	queries  *store.Queries
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewService creates an identity service issuing tokens with the given TTL.
func NewService(db *sql.DB, tokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		queries:  store.New(db),
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// SignIn checks the operator's credentials and issues a bearer token.
// Unknown emails and wrong passwords both map to ErrInvalidCredentials so
// the response does not reveal which accounts exist.
func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	user, err := s.queries.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("login attempt for unknown email",
			"category", model.EventCategoryAuth, "email", email)
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return Session{}, fmt.Errorf("checking password: %w", err)
	}
	if !ok {
		s.logger.Warn("login attempt with wrong password",
			"category", model.EventCategoryAuth, "user_id", user.ID)
		return Session{}, ErrInvalidCredentials
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := s.queries.UpdateUserPassword(ctx, user.ID, newHash, time.Now()); err != nil {
				s.logger.Warn("password rehash failed",
					"category", model.EventCategoryAuth, "user_id", user.ID, "error", err)
			}
		}
	}

	raw, prefix, err := model.GenerateToken()
	if err != nil {
		return Session{}, fmt.Errorf("generating token: %w", err)
	}

	now := time.Now()
	token, err := s.queries.CreateAuthToken(ctx, store.CreateAuthTokenParams{
		UserID:      user.ID,
		TokenHash:   model.HashToken(raw),
		TokenPrefix: prefix,
		ExpiresAt:   now.Add(s.tokenTTL),
		CreatedAt:   now,
	})
	if err != nil {
		return Session{}, fmt.Errorf("storing token: %w", err)
	}

	if err := s.queries.UpdateUserLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("recording last login failed",
			"category", model.EventCategoryAuth, "user_id", user.ID, "error", err)
	}

	s.logger.Info("operator signed in", "user_id", user.ID, "token_prefix", prefix)

	return Session{
		Token:     raw,
		ExpiresAt: token.ExpiresAt,
		User:      user,
	}, nil
}

// VerifyToken resolves a raw bearer token to its operator account.
// Returns ErrInvalidToken for unknown, expired or revoked tokens.
func (s *Service) VerifyToken(ctx context.Context, rawToken string) (model.User, error) {
	token, err := s.queries.GetAuthTokenByHash(ctx, model.HashToken(rawToken))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrInvalidToken
	}
	if err != nil {
		return model.User{}, fmt.Errorf("looking up token: %w", err)
	}

	if !token.Valid(time.Now()) {
		return model.User{}, ErrInvalidToken
	}

	if err := s.queries.TouchAuthToken(ctx, token.ID, time.Now()); err != nil {
		s.logger.Warn("updating token last use failed",
			"category", model.EventCategoryAuth, "token_id", token.ID, "error", err)
	}

	user, err := s.queries.GetUserByID(ctx, token.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		// The account was deleted out from under the token.
		return model.User{}, ErrInvalidToken
	}
	if err != nil {
		return model.User{}, fmt.Errorf("looking up token user: %w", err)
	}

	return user, nil
}

// SignOut revokes the given bearer token. Revoking an already invalid
// token is not an error.
func (s *Service) SignOut(ctx context.Context, rawToken string) error {
	if err := s.queries.RevokeAuthToken(ctx, model.HashToken(rawToken), time.Now()); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

// PurgeExpiredTokens removes expired and revoked tokens from storage.
func (s *Service) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.queries.DeleteExpiredAuthTokens(ctx, time.Now())
}
