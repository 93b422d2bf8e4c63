// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package client is the Go SDK for the admin console API. It keeps a
// bearer token in a TokenStore, maps API error envelopes to typed
// errors and notifies subscribers when the session changes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/intravvel/console-go/internal/identity"
	"github.com/intravvel/console-go/internal/model"
)

// Errors returned by the client.
var (
	// ErrUnauthenticated is returned when no valid session is available.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError carries per-field messages for a rejected draft.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// APIError is any other error response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
}

// TokenStore persists the bearer token between calls.
type TokenStore interface {
	Token() string
	SetToken(token string) error
	Clear() error
}

// MemoryTokenStore keeps the token in process memory.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Token returns the stored token.
func (s *MemoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken stores the token.
func (s *MemoryTokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear removes the stored token.
func (s *MemoryTokenStore) Clear() error {
	return s.SetToken("")
}

// FileTokenStore persists the token to a file so CLI sessions survive
// process restarts.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

// NewFileTokenStore creates a token store backed by the given file.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Token reads the stored token. A missing or unreadable file yields the
// empty string.
func (s *FileTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// SetToken writes the token with owner-only permissions.
func (s *FileTokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

// Clear removes the token file.
func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Client talks to the admin console API.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore

	mu      sync.Mutex
	nextSub int
	subs    map[int]func(*identity.Session)
}

// New creates a client for the API rooted at baseURL (including the
// /api/v1 prefix). A nil store defaults to an in-memory one.
func New(baseURL string, store TokenStore) *Client {
	if store == nil {
		store = NewMemoryTokenStore()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   store,
		subs:    make(map[int]func(*identity.Session)),
	}
}

// OnSessionChange registers a callback invoked with the new session
// after sign-in and with nil after sign-out. The returned function
// unsubscribes; calling it more than once is harmless.
func (c *Client) OnSessionChange(fn func(*identity.Session)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Client) notify(session *identity.Session) {
	c.mu.Lock()
	subs := make([]func(*identity.Session), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(session)
	}
}

// SignIn authenticates and stores the issued bearer token.
func (c *Client) SignIn(ctx context.Context, email, password string) (identity.Session, error) {
	var session identity.Session
	err := c.do(ctx, http.MethodPost, "/auth/login",
		map[string]string{"email": email, "password": password}, &session)
	if err != nil {
		return identity.Session{}, err
	}

	if err := c.store.SetToken(session.Token); err != nil {
		return identity.Session{}, fmt.Errorf("storing token: %w", err)
	}

	c.notify(&session)
	return session, nil
}

// SignOut revokes the current token and clears it locally. The local
// token is cleared even when the server call fails.
func (c *Client) SignOut(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)

	if clearErr := c.store.Clear(); clearErr != nil && err == nil {
		err = fmt.Errorf("clearing token: %w", clearErr)
	}

	c.notify(nil)
	if errors.Is(err, ErrUnauthenticated) {
		// The token was already dead; signing out is still a success.
		return nil
	}
	return err
}

// CurrentSession returns the operator behind the stored token, or
// ErrUnauthenticated when there is no usable session.
func (c *Client) CurrentSession(ctx context.Context) (model.User, error) {
	if c.store.Token() == "" {
		return model.User{}, ErrUnauthenticated
	}
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/auth/session", nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// do performs an API call, decoding the data envelope into out when
// out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, respBody)
	}

	if out != nil {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(respBody, &envelope); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
	}
	return nil
}

// decodeError maps the server's error envelope to a typed error.
func decodeError(statusCode int, body []byte) error {
	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Message string            `json:"message"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &envelope)

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		// 401 means no token was sent, 403 means the stored token is
		// dead. Either way the caller needs to sign in again.
		return ErrUnauthenticated
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnprocessableEntity:
		return &ValidationError{Fields: envelope.Error.Details}
	default:
		return &APIError{
			StatusCode: statusCode,
			Code:       envelope.Error.Code,
			Message:    envelope.Error.Message,
		}
	}
}
