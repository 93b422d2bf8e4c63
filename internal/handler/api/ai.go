// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/intravvel/console-go/internal/ai"
	"github.com/intravvel/console-go/internal/model"
)

// GenerateRequest is the body for POST /ai/generate.
type GenerateRequest struct {
	Prompt      string `json:"prompt"`
	ContentType string `json:"content_type,omitempty"`
	MaxTokens   int    `json:"max_tokens,omitempty"`
}

// GenerateResponse carries the generated copy back to the operator.
type GenerateResponse struct {
	Content string `json:"content"`
	Model   string `json:"model"`
}

// Generate produces website copy with the configured AI provider.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		WriteValidationError(w, map[string]string{"prompt": "Prompt is required"})
		return
	}

	resp, err := h.generator.Generate(r.Context(), ai.GenerateRequest{
		Prompt:      req.Prompt,
		ContentType: req.ContentType,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			WriteError(w, http.StatusInternalServerError, "not_configured",
				"AI provider is not configured", nil)
			return
		}
		h.logger.Error("content generation failed",
			"category", model.EventCategoryAI, "error", err)
		WriteInternalError(w, "Failed to generate content")
		return
	}

	WriteSuccess(w, GenerateResponse{
		Content: resp.Content,
		Model:   resp.Model,
	}, nil)
}
