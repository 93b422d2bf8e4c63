// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model contains domain models and constants for the application.
package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Service represents a bookable travel package offered on the site.
type Service struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Duration    string    `json:"duration"`
	ImageURL    string    `json:"image_url"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ServiceDraft holds operator input for creating or updating a Service.
// Price arrives as free text from a form field and is parsed on validation.
type ServiceDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Duration    string `json:"duration"`
	ImageURL    string `json:"image_url"`
	Featured    bool   `json:"featured"`
}

// ParsePrice parses a user-entered price string. The result must be a
// finite, non-negative number.
func ParsePrice(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// Validate checks required fields and returns per-field error messages.
// An empty map means the draft is valid.
func (d ServiceDraft) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(d.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(d.Description) == "" {
		errs["description"] = "Description is required"
	}
	if _, ok := ParsePrice(d.Price); !ok {
		errs["price"] = "Price must be a non-negative number"
	}
	return errs
}
