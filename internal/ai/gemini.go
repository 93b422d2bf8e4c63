// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// geminiClient implements client for the Google Gemini REST API.
type geminiClient struct {
	baseURL string
	apiKey  string
}

func newGeminiClient(apiKey string) *geminiClient {
	return &geminiClient{
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		apiKey:  apiKey,
	}
}

func (c *geminiClient) generate(ctx context.Context, modelName string, req GenerateRequest) (GenerateResponse, error) {
	body := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]string{
					{"text": buildInstruction(req)},
				},
			},
		},
	}
	if req.MaxTokens > 0 {
		body["generationConfig"] = map[string]any{
			"maxOutputTokens": req.MaxTokens,
		}
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("gemini marshal: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, modelName)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	httpClient := &http.Client{Timeout: httpTimeout}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("gemini call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("gemini read: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return GenerateResponse{}, fmt.Errorf("gemini error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
		UsageMetadata struct {
			TotalTokenCount int `json:"totalTokenCount"`
		} `json:"usageMetadata"`
		ModelVersion string `json:"modelVersion"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return GenerateResponse{}, fmt.Errorf("gemini decode: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return GenerateResponse{}, fmt.Errorf("gemini: no candidates returned")
	}

	respModel := result.ModelVersion
	if respModel == "" {
		respModel = modelName
	}

	return GenerateResponse{
		Content:     result.Candidates[0].Content.Parts[0].Text,
		Model:       respModel,
		TotalTokens: result.UsageMetadata.TotalTokenCount,
	}, nil
}
