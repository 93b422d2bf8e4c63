// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// GenerateToken generates a new random bearer token.
// Returns the raw token (shown to the caller once) and its prefix,
// which is stored alongside the hash for identification in listings.
func GenerateToken() (rawToken string, prefix string, err error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", err
	}

	rawToken = base64.URLEncoding.EncodeToString(bytes)
	prefix = rawToken[:8]

	return rawToken, prefix, nil
}

// HashToken creates a SHA-256 hash of a bearer token for storage.
// Only the hash is persisted; the raw token never touches the database.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
