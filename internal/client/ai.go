// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"net/http"
)

// GeneratedContent is the result of an AI generation call.
type GeneratedContent struct {
	Content string `json:"content"`
	Model   string `json:"model"`
}

// GenerateContent asks the server's AI provider for website copy.
// contentType selects the drafting instruction (service_description,
// hero, about); empty means generic copy.
func (c *Client) GenerateContent(ctx context.Context, prompt, contentType string, maxTokens int) (GeneratedContent, error) {
	body := struct {
		Prompt      string `json:"prompt"`
		ContentType string `json:"content_type,omitempty"`
		MaxTokens   int    `json:"max_tokens,omitempty"`
	}{Prompt: prompt, ContentType: contentType, MaxTokens: maxTokens}

	var out GeneratedContent
	if err := c.do(ctx, http.MethodPost, "/ai/generate", body, &out); err != nil {
		return GeneratedContent{}, err
	}
	return out, nil
}
