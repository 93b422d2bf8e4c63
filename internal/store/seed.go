// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/intravvel/console-go/internal/auth"
	"github.com/intravvel/console-go/internal/model"
)

// Default admin credentials, used when no password is configured.
const (
	DefaultAdminEmail    = "admin@intravvel.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// defaultSectionData returns the initial payload for a content section.
func defaultSectionData(section string) map[string]string {
	switch section {
	case model.SectionHero:
		return map[string]string{
			"title":            "Discover Your Next Adventure",
			"subtitle":         "Curated travel experiences around the world",
			"background_image": "",
		}
	case model.SectionAbout:
		return map[string]string{
			"heading": "About Intravvel",
			"content": "We craft unforgettable journeys for curious travelers.",
		}
	case model.SectionContactInfo:
		return map[string]string{
			"address": "123 Travel Street, Wanderlust City",
			"phone":   "+1 234 567 8900",
			"email":   "hello@intravvel.com",
		}
	case model.SectionFooter:
		return map[string]string{
			"copyright":   "Intravvel Travel Services",
			"description": "Your journey begins here.",
		}
	}
	return map[string]string{}
}

// Seed creates initial data: the admin operator account and one row per
// content section. Existing rows are left untouched.
func Seed(ctx context.Context, db *sql.DB, adminEmail, adminPassword string) error {
	queries := New(db)

	if adminEmail == "" {
		adminEmail = DefaultAdminEmail
	}
	if adminPassword == "" {
		adminPassword = DefaultAdminPassword
	}

	_, err := queries.GetUserByEmail(ctx, adminEmail)
	switch {
	case err == nil:
		slog.Info("admin user already exists, skipping seed", "email", adminEmail)
	case errors.Is(err, sql.ErrNoRows):
		passwordHash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		now := time.Now()
		user, err := queries.CreateUser(ctx, CreateUserParams{
			Email:        adminEmail,
			Name:         DefaultAdminName,
			PasswordHash: passwordHash,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("creating admin user: %w", err)
		}

		slog.Info("created admin user", "id", user.ID, "email", user.Email)
	default:
		return fmt.Errorf("checking for admin user: %w", err)
	}

	for _, section := range model.Sections() {
		if _, err := queries.GetSiteContent(ctx, section); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking content section %q: %w", section, err)
		}

		if _, err := queries.UpsertSiteContent(ctx, UpsertSiteContentParams{
			Section:   section,
			Data:      defaultSectionData(section),
			UpdatedAt: time.Now(),
		}); err != nil {
			return fmt.Errorf("seeding content section %q: %w", section, err)
		}
		slog.Info("seeded content section", "section", section)
	}

	return nil
}

// SeedDemo inserts sample services for development environments.
// It is a no-op when services already exist.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	existing, err := queries.ListServices(ctx)
	if err != nil {
		return fmt.Errorf("listing services: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	samples := []CreateServiceParams{
		{
			Title:       "Bali Beach Escape",
			Description: "Five days of sun, surf and temple tours on the Island of the Gods.",
			Price:       1299.99,
			Duration:    "5 Days / 4 Nights",
			Featured:    true,
		},
		{
			Title:       "Alpine Hiking Week",
			Description: "Guided hut-to-hut trekking through the Swiss Alps.",
			Price:       1850,
			Duration:    "7 Days / 6 Nights",
		},
		{
			Title:       "Kyoto Culture Tour",
			Description: "Tea ceremonies, gardens and the old capital at cherry blossom time.",
			Price:       2100.50,
			Duration:    "6 Days / 5 Nights",
		},
	}

	now := time.Now()
	for _, s := range samples {
		s.ID = uuid.NewString()
		s.CreatedAt = now
		s.UpdatedAt = now
		if _, err := queries.CreateService(ctx, s); err != nil {
			return fmt.Errorf("seeding service %q: %w", s.Title, err)
		}
		// Keep list ordering deterministic for newest-first queries.
		now = now.Add(time.Second)
	}

	slog.Info("seeded demo services", "count", len(samples))
	return nil
}
