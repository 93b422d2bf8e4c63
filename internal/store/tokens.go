// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// AuthToken is a stored bearer token. Only the SHA-256 hash of the raw
// token is kept; the prefix identifies the token in listings.
type AuthToken struct {
	ID          int64
	UserID      int64
	TokenHash   string
	TokenPrefix string
	ExpiresAt   time.Time
	RevokedAt   sql.NullTime
	LastUsedAt  sql.NullTime
	CreatedAt   time.Time
}

// Valid reports whether the token is usable at the given instant.
func (t AuthToken) Valid(now time.Time) bool {
	return !t.RevokedAt.Valid && now.Before(t.ExpiresAt)
}

const createAuthToken = `
INSERT INTO auth_tokens (user_id, token_hash, token_prefix, expires_at, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, user_id, token_hash, token_prefix, expires_at, revoked_at, last_used_at, created_at
`

// CreateAuthTokenParams holds the input for CreateAuthToken.
type CreateAuthTokenParams struct {
	UserID      int64
	TokenHash   string
	TokenPrefix string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// CreateAuthToken stores a newly issued bearer token.
func (q *Queries) CreateAuthToken(ctx context.Context, arg CreateAuthTokenParams) (AuthToken, error) {
	row := q.db.QueryRowContext(ctx, createAuthToken,
		arg.UserID, arg.TokenHash, arg.TokenPrefix, arg.ExpiresAt, arg.CreatedAt)
	return scanAuthToken(row)
}

const getAuthTokenByHash = `
SELECT id, user_id, token_hash, token_prefix, expires_at, revoked_at, last_used_at, created_at
FROM auth_tokens WHERE token_hash = ?
`

// GetAuthTokenByHash looks up a token by its SHA-256 hash.
func (q *Queries) GetAuthTokenByHash(ctx context.Context, hash string) (AuthToken, error) {
	return scanAuthToken(q.db.QueryRowContext(ctx, getAuthTokenByHash, hash))
}

const touchAuthToken = `
UPDATE auth_tokens SET last_used_at = ? WHERE id = ?
`

// TouchAuthToken records when a token was last presented.
func (q *Queries) TouchAuthToken(ctx context.Context, id int64, at time.Time) error {
	_, err := q.db.ExecContext(ctx, touchAuthToken, at, id)
	return err
}

const revokeAuthToken = `
UPDATE auth_tokens SET revoked_at = ? WHERE token_hash = ? AND revoked_at IS NULL
`

// RevokeAuthToken marks the token with the given hash as revoked.
func (q *Queries) RevokeAuthToken(ctx context.Context, hash string, at time.Time) error {
	_, err := q.db.ExecContext(ctx, revokeAuthToken, at, hash)
	return err
}

const revokeUserTokens = `
UPDATE auth_tokens SET revoked_at = ? WHERE user_id = ? AND revoked_at IS NULL
`

// RevokeUserTokens revokes all active tokens belonging to a user.
func (q *Queries) RevokeUserTokens(ctx context.Context, userID int64, at time.Time) error {
	_, err := q.db.ExecContext(ctx, revokeUserTokens, at, userID)
	return err
}

const deleteExpiredAuthTokens = `
DELETE FROM auth_tokens WHERE expires_at < ? OR revoked_at IS NOT NULL
`

// DeleteExpiredAuthTokens removes expired and revoked tokens.
// Returns the number of rows deleted.
func (q *Queries) DeleteExpiredAuthTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteExpiredAuthTokens, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanAuthToken(row rowScanner) (AuthToken, error) {
	var t AuthToken
	err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.TokenPrefix,
		&t.ExpiresAt, &t.RevokedAt, &t.LastUsedAt, &t.CreatedAt)
	return t, err
}
