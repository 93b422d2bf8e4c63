// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"net/http"
	"sync"

	"github.com/intravvel/console-go/internal/model"
)

// ContentManager holds the operator's working copy of the site content
// sections. Section payloads replace the stored row wholesale, so the
// manager validates the field set locally before submitting.
type ContentManager struct {
	client *Client

	mu       sync.RWMutex
	sections map[string]model.ContentSection
}

// NewContentManager creates a manager with an empty local copy.
func NewContentManager(c *Client) *ContentManager {
	return &ContentManager{
		client:   c,
		sections: make(map[string]model.ContentSection),
	}
}

// Refresh replaces the local copy with the server's sections.
func (m *ContentManager) Refresh(ctx context.Context) error {
	var sections []model.ContentSection
	if err := m.client.do(ctx, http.MethodGet, "/content", nil, &sections); err != nil {
		return err
	}

	byKey := make(map[string]model.ContentSection, len(sections))
	for _, s := range sections {
		byKey[s.Section] = s
	}

	m.mu.Lock()
	m.sections = byKey
	m.mu.Unlock()
	return nil
}

// Section returns the local copy of a section and whether it is present.
func (m *ContentManager) Section(key string) (model.ContentSection, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sections[key]
	return s, ok
}

// Upsert validates the payload shape locally, replaces the stored
// section and refreshes the local copy.
func (m *ContentManager) Upsert(ctx context.Context, key string, data map[string]string) (model.ContentSection, error) {
	if err := model.ValidateSectionData(key, data); err != nil {
		return model.ContentSection{}, &ValidationError{Fields: map[string]string{"data": err.Error()}}
	}

	body := struct {
		Data map[string]string `json:"data"`
	}{Data: data}

	var updated model.ContentSection
	if err := m.client.do(ctx, http.MethodPut, "/content/"+key, body, &updated); err != nil {
		return model.ContentSection{}, err
	}

	if err := m.Refresh(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}
