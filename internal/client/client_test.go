// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intravvel/console-go/internal/ai"
	"github.com/intravvel/console-go/internal/client"
	"github.com/intravvel/console-go/internal/handler/api"
	"github.com/intravvel/console-go/internal/identity"
	"github.com/intravvel/console-go/internal/mailer"
	"github.com/intravvel/console-go/internal/testutil"
)

const (
	testEmail    = "ops@intravvel.com"
	testPassword = "correct horse"
)

type stubGenerator struct {
	content string
	err     error
}

func (s *stubGenerator) Generate(_ context.Context, _ ai.GenerateRequest) (ai.GenerateResponse, error) {
	if s.err != nil {
		return ai.GenerateResponse{}, s.err
	}
	return ai.GenerateResponse{Content: s.content, Model: "stub-model"}, nil
}

// newTestServer runs the full API over an in-memory database and returns
// a client pointed at it.
func newTestServer(t *testing.T) (*client.Client, *httptest.Server) {
	t.Helper()

	db := testutil.MemoryDB(t)
	logger := testutil.TestLogger()

	provider := identity.NewService(db, time.Hour, logger)
	generator := &stubGenerator{content: "Generated copy."}
	m := mailer.New(mailer.Config{}, logger)

	h := api.NewHandler(db, provider, generator, m, logger)
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)

	testutil.CreateUser(t, db, testEmail, testPassword)

	return client.New(srv.URL, nil), srv
}

func signIn(t *testing.T, c *client.Client) identity.Session {
	t.Helper()
	session, err := c.SignIn(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	return session
}

func TestSignInAndSessionLifecycle(t *testing.T) {
	c, _ := newTestServer(t)
	ctx := context.Background()

	_, err := c.CurrentSession(ctx)
	require.ErrorIs(t, err, client.ErrUnauthenticated)

	session := signIn(t, c)
	assert.Equal(t, testEmail, session.User.Email)

	user, err := c.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, testEmail, user.Email)

	require.NoError(t, c.SignOut(ctx))
	_, err = c.CurrentSession(ctx)
	require.ErrorIs(t, err, client.ErrUnauthenticated)

	// Signing out without a session is still a success.
	require.NoError(t, c.SignOut(ctx))
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	c, _ := newTestServer(t)

	_, err := c.SignIn(context.Background(), testEmail, "wrong")
	require.ErrorIs(t, err, client.ErrUnauthenticated)
}

func TestSessionChangeNotifications(t *testing.T) {
	c, _ := newTestServer(t)
	ctx := context.Background()

	var events []string
	unsubscribe := c.OnSessionChange(func(s *identity.Session) {
		if s == nil {
			events = append(events, "signed-out")
		} else {
			events = append(events, "signed-in:"+s.User.Email)
		}
	})

	signIn(t, c)
	require.NoError(t, c.SignOut(ctx))
	assert.Equal(t, []string{"signed-in:" + testEmail, "signed-out"}, events)

	unsubscribe()
	signIn(t, c)
	assert.Len(t, events, 2, "unsubscribed callback must not fire")
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := client.NewFileTokenStore(path)

	assert.Empty(t, store.Token())
	require.NoError(t, store.SetToken("tok_abc123"))
	assert.Equal(t, "tok_abc123", store.Token())

	// A second store over the same file sees the token.
	assert.Equal(t, "tok_abc123", client.NewFileTokenStore(path).Token())

	require.NoError(t, store.Clear())
	assert.Empty(t, store.Token())
	require.NoError(t, store.Clear(), "clearing twice is harmless")
}

func TestGenerateContent(t *testing.T) {
	c, _ := newTestServer(t)
	ctx := context.Background()
	signIn(t, c)

	out, err := c.GenerateContent(ctx, "Describe a beach holiday", "service_description", 0)
	require.NoError(t, err)
	assert.Equal(t, "Generated copy.", out.Content)
	assert.Equal(t, "stub-model", out.Model)

	_, err = c.GenerateContent(ctx, "   ", "", 0)
	var verr *client.ValidationError
	require.ErrorAs(t, err, &verr)
}
