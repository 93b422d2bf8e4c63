// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/intravvel/console-go/internal/model"
)

const listServices = `
SELECT id, title, description, price, duration, image_url, featured, created_at, updated_at
FROM services ORDER BY created_at DESC
`

// ListServices returns all services, newest first.
func (q *Queries) ListServices(ctx context.Context) ([]model.Service, error) {
	rows, err := q.db.QueryContext(ctx, listServices)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []model.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

const getService = `
SELECT id, title, description, price, duration, image_url, featured, created_at, updated_at
FROM services WHERE id = ?
`

// GetService fetches a single service by ID.
func (q *Queries) GetService(ctx context.Context, id string) (model.Service, error) {
	return scanService(q.db.QueryRowContext(ctx, getService, id))
}

const createService = `
INSERT INTO services (id, title, description, price, duration, image_url, featured, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, title, description, price, duration, image_url, featured, created_at, updated_at
`

// CreateServiceParams holds the input for CreateService.
type CreateServiceParams struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Duration    string
	ImageURL    string
	Featured    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateService inserts a new service.
func (q *Queries) CreateService(ctx context.Context, arg CreateServiceParams) (model.Service, error) {
	row := q.db.QueryRowContext(ctx, createService,
		arg.ID, arg.Title, arg.Description, arg.Price, arg.Duration,
		arg.ImageURL, arg.Featured, arg.CreatedAt, arg.UpdatedAt)
	return scanService(row)
}

const updateService = `
UPDATE services
SET title = ?, description = ?, price = ?, duration = ?, image_url = ?, featured = ?, updated_at = ?
WHERE id = ?
RETURNING id, title, description, price, duration, image_url, featured, created_at, updated_at
`

// UpdateServiceParams holds the input for UpdateService.
type UpdateServiceParams struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Duration    string
	ImageURL    string
	Featured    bool
	UpdatedAt   time.Time
}

// UpdateService replaces the editable fields of a service.
func (q *Queries) UpdateService(ctx context.Context, arg UpdateServiceParams) (model.Service, error) {
	row := q.db.QueryRowContext(ctx, updateService,
		arg.Title, arg.Description, arg.Price, arg.Duration,
		arg.ImageURL, arg.Featured, arg.UpdatedAt, arg.ID)
	return scanService(row)
}

const deleteService = `DELETE FROM services WHERE id = ?`

// DeleteService removes a service. Returns the number of rows deleted.
func (q *Queries) DeleteService(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteService, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanService(row rowScanner) (model.Service, error) {
	var s model.Service
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Price, &s.Duration,
		&s.ImageURL, &s.Featured, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
