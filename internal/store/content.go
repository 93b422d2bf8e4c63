// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/intravvel/console-go/internal/model"
)

const listSiteContent = `
SELECT section, data, updated_at FROM site_content ORDER BY section
`

// ListSiteContent returns all stored content sections.
func (q *Queries) ListSiteContent(ctx context.Context) ([]model.ContentSection, error) {
	rows, err := q.db.QueryContext(ctx, listSiteContent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []model.ContentSection
	for rows.Next() {
		s, err := scanSiteContent(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

const getSiteContent = `
SELECT section, data, updated_at FROM site_content WHERE section = ?
`

// GetSiteContent fetches a single content section by key.
func (q *Queries) GetSiteContent(ctx context.Context, section string) (model.ContentSection, error) {
	return scanSiteContent(q.db.QueryRowContext(ctx, getSiteContent, section))
}

const upsertSiteContent = `
INSERT INTO site_content (section, data, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(section) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
RETURNING section, data, updated_at
`

// UpsertSiteContentParams holds the input for UpsertSiteContent.
type UpsertSiteContentParams struct {
	Section   string
	Data      map[string]string
	UpdatedAt time.Time
}

// UpsertSiteContent inserts or replaces a content section. At most one
// row per section key ever exists.
func (q *Queries) UpsertSiteContent(ctx context.Context, arg UpsertSiteContentParams) (model.ContentSection, error) {
	raw, err := model.EncodeSectionData(arg.Data)
	if err != nil {
		return model.ContentSection{}, err
	}
	row := q.db.QueryRowContext(ctx, upsertSiteContent, arg.Section, raw, arg.UpdatedAt)
	return scanSiteContent(row)
}

func scanSiteContent(row rowScanner) (model.ContentSection, error) {
	var s model.ContentSection
	var raw string
	if err := row.Scan(&s.Section, &raw, &s.UpdatedAt); err != nil {
		return s, err
	}
	s.Data = model.DecodeSectionData(raw)
	return s, nil
}
