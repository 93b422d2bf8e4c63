// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"errors"
	"sync"

	"github.com/intravvel/console-go/internal/identity"
	"github.com/intravvel/console-go/internal/model"
)

// AuthState describes what the gate currently knows about the session.
type AuthState int

const (
	// StatePending means the stored token has not been checked yet.
	StatePending AuthState = iota
	// StateAuthenticated means the token resolved to a live session.
	StateAuthenticated
	// StateUnauthenticated means there is no usable session.
	StateUnauthenticated
)

func (s AuthState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Gate guards access to protected operations. It starts pending, resolves
// the stored token exactly once, and then tracks sign-in and sign-out
// through the client's session-change notifications. Any failure to
// resolve counts as unauthenticated, never as a crash.
type Gate struct {
	client *Client

	mu       sync.RWMutex
	state    AuthState
	user     *model.User
	nextSub  int
	subs     map[int]func(AuthState)
	detachFn func()
}

// NewGate creates a pending gate over the client and begins tracking its
// session changes.
func NewGate(c *Client) *Gate {
	g := &Gate{
		client: c,
		state:  StatePending,
		subs:   make(map[int]func(AuthState)),
	}
	g.detachFn = c.OnSessionChange(g.onSessionChange)
	return g
}

// Resolve checks the stored token against the server and settles the
// gate. A transport failure or a rejected token both settle as
// unauthenticated; the transport error is returned so the caller can
// retry, but the gate no longer blocks rendering.
func (g *Gate) Resolve(ctx context.Context) error {
	user, err := g.client.CurrentSession(ctx)
	if err != nil {
		g.setState(StateUnauthenticated, nil)
		if errors.Is(err, ErrUnauthenticated) {
			return nil
		}
		return err
	}

	g.setState(StateAuthenticated, &user)
	return nil
}

// State returns the current gate state.
func (g *Gate) State() AuthState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// User returns the authenticated operator, or nil.
func (g *Gate) User() *model.User {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.user
}

// Allow reports whether protected operations may proceed. Pending is not
// allowed: callers show a loading state until the gate settles.
func (g *Gate) Allow() bool {
	return g.State() == StateAuthenticated
}

// Subscribe registers a callback invoked on every state change. The
// returned function unsubscribes; calling it more than once is harmless.
func (g *Gate) Subscribe(fn func(AuthState)) func() {
	g.mu.Lock()
	id := g.nextSub
	g.nextSub++
	g.subs[id] = fn
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		delete(g.subs, id)
		g.mu.Unlock()
	}
}

// Close detaches the gate from the client's session notifications.
func (g *Gate) Close() {
	if g.detachFn != nil {
		g.detachFn()
	}
}

func (g *Gate) onSessionChange(session *identity.Session) {
	if session == nil {
		g.setState(StateUnauthenticated, nil)
		return
	}
	user := session.User
	g.setState(StateAuthenticated, &user)
}

func (g *Gate) setState(state AuthState, user *model.User) {
	g.mu.Lock()
	changed := g.state != state || g.user != user
	g.state = state
	g.user = user
	subs := make([]func(AuthState), 0, len(g.subs))
	for _, fn := range g.subs {
		subs = append(subs, fn)
	}
	g.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range subs {
		fn(state)
	}
}
