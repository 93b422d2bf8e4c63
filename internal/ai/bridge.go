// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ai bridges the admin console to hosted text generation
// providers. The underlying client is built lazily on first use and an
// unconfigured bridge fails fast without touching the network.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/intravvel/console-go/internal/model"
)

const httpTimeout = 120 * time.Second

// Provider identifiers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// ErrNotConfigured is returned when no API key is configured for the
// selected provider. Callers should treat it as a setup problem, not a
// transient failure.
var ErrNotConfigured = errors.New("ai provider is not configured")

// GenerateRequest describes a content generation call.
type GenerateRequest struct {
	// Prompt is the operator's instruction.
	Prompt string
	// ContentType optionally names the kind of copy wanted, e.g.
	// "service_description" or "hero". It shapes the instruction sent
	// to the provider.
	ContentType string
	// MaxTokens caps the response length. Zero uses the provider default.
	MaxTokens int
}

// GenerateResponse is the provider's answer.
type GenerateResponse struct {
	Content     string
	Model       string
	TotalTokens int
}

// Generator is the surface consumed by HTTP handlers. Satisfied by
// *Bridge; tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
}

// client is a single-provider text generation client.
type client interface {
	generate(ctx context.Context, modelName string, req GenerateRequest) (GenerateResponse, error)
}

// Bridge routes generation requests to the configured provider.
type Bridge struct {
	providerID string
	apiKey     string
	modelName  string
	logger     *slog.Logger

	initOnce sync.Once
	client   client
}

// NewBridge creates a bridge for the given provider. An empty apiKey
// produces a bridge whose Generate always returns ErrNotConfigured.
// An empty modelName selects the provider's default model.
func NewBridge(providerID, apiKey, modelName string, logger *slog.Logger) *Bridge {
	if modelName == "" {
		modelName = defaultModel(providerID)
	}
	return &Bridge{
		providerID: providerID,
		apiKey:     apiKey,
		modelName:  modelName,
		logger:     logger,
	}
}

func defaultModel(providerID string) string {
	switch providerID {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	default:
		return "gemini-2.0-flash"
	}
}

// Configured reports whether the bridge has a credential to work with.
func (b *Bridge) Configured() bool {
	return b.apiKey != ""
}

// Generate produces content for the request. The provider client is
// constructed once, on the first configured call.
func (b *Bridge) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	if !b.Configured() {
		return GenerateResponse{}, ErrNotConfigured
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return GenerateResponse{}, errors.New("prompt is empty")
	}

	b.initOnce.Do(func() {
		switch b.providerID {
		case ProviderOpenAI:
			b.client = newOpenAIClient(b.apiKey)
		default:
			b.client = newGeminiClient(b.apiKey)
		}
	})

	resp, err := b.client.generate(ctx, b.modelName, req)
	if err != nil {
		b.logger.Error("content generation failed",
			"category", model.EventCategoryAI, "provider", b.providerID, "error", err)
		return GenerateResponse{}, fmt.Errorf("generating content: %w", err)
	}

	b.logger.Info("generated content",
		"provider", b.providerID, "model", resp.Model, "tokens", resp.TotalTokens)
	return resp, nil
}

// buildInstruction prefixes the prompt with guidance for the requested
// content type.
func buildInstruction(req GenerateRequest) string {
	var intro string
	switch req.ContentType {
	case "service_description":
		intro = "Write a compelling travel service description for a travel agency website. Keep it under 150 words."
	case "hero":
		intro = "Write a short, punchy hero headline and subtitle for a travel agency website."
	case "about":
		intro = "Write warm, trustworthy About Us copy for a travel agency website."
	default:
		intro = "You are a copywriter for a travel agency website."
	}
	return intro + "\n\n" + req.Prompt
}
