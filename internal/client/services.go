// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"net/http"
	"sync"

	"github.com/intravvel/console-go/internal/model"
)

// ServiceManager holds the operator's working copy of the service
// catalog. Drafts are validated locally before they touch the network,
// and every successful mutation refetches the list so the local copy
// always mirrors the server.
type ServiceManager struct {
	client *Client

	mu       sync.RWMutex
	services []model.Service
	selected string
}

// NewServiceManager creates a manager with an empty local list.
func NewServiceManager(c *Client) *ServiceManager {
	return &ServiceManager{client: c}
}

// Refresh replaces the local list with the server's, newest first.
func (m *ServiceManager) Refresh(ctx context.Context) error {
	var services []model.Service
	if err := m.client.do(ctx, http.MethodGet, "/services", nil, &services); err != nil {
		return err
	}

	m.mu.Lock()
	m.services = services
	m.mu.Unlock()
	return nil
}

// Services returns a copy of the local list.
func (m *ServiceManager) Services() []model.Service {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Service, len(m.services))
	copy(out, m.services)
	return out
}

// Select marks a service as the one being worked on.
func (m *ServiceManager) Select(id string) {
	m.mu.Lock()
	m.selected = id
	m.mu.Unlock()
}

// Selected returns the selected service from the local list, or nil when
// nothing is selected or the selection no longer exists.
func (m *ServiceManager) Selected() *model.Service {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.services {
		if m.services[i].ID == m.selected {
			svc := m.services[i]
			return &svc
		}
	}
	return nil
}

// Create validates the draft locally, submits it and refreshes the list.
func (m *ServiceManager) Create(ctx context.Context, draft model.ServiceDraft) (model.Service, error) {
	if errs := draft.Validate(); len(errs) > 0 {
		return model.Service{}, &ValidationError{Fields: errs}
	}

	var created model.Service
	if err := m.client.do(ctx, http.MethodPost, "/services", draft, &created); err != nil {
		return model.Service{}, err
	}

	if err := m.Refresh(ctx); err != nil {
		return created, err
	}
	return created, nil
}

// Update validates the draft locally, submits it and refreshes the list.
func (m *ServiceManager) Update(ctx context.Context, id string, draft model.ServiceDraft) (model.Service, error) {
	if errs := draft.Validate(); len(errs) > 0 {
		return model.Service{}, &ValidationError{Fields: errs}
	}

	var updated model.Service
	if err := m.client.do(ctx, http.MethodPut, "/services/"+id, draft, &updated); err != nil {
		return model.Service{}, err
	}

	if err := m.Refresh(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// Delete removes the service, clears the selection if it pointed at the
// deleted entity, and refreshes the list.
func (m *ServiceManager) Delete(ctx context.Context, id string) error {
	if err := m.client.do(ctx, http.MethodDelete, "/services/"+id, nil, nil); err != nil {
		return err
	}

	m.mu.Lock()
	if m.selected == id {
		m.selected = ""
	}
	m.mu.Unlock()

	return m.Refresh(ctx)
}
