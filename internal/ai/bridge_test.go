// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/intravvel/console-go/internal/testutil"
)

func TestGenerateUnconfiguredFailsFast(t *testing.T) {
	bridge := NewBridge(ProviderGemini, "", "", testutil.TestLogger())

	if bridge.Configured() {
		t.Error("bridge without key should not report configured")
	}

	_, err := bridge.Generate(context.Background(), GenerateRequest{Prompt: "hello"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("got %v, want ErrNotConfigured", err)
	}
}

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	bridge := NewBridge(ProviderGemini, "test-key", "", testutil.TestLogger())

	if _, err := bridge.Generate(context.Background(), GenerateRequest{Prompt: "   "}); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}

func TestGeminiGenerate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "Sun, sand and surf."}}}},
			},
			"usageMetadata": map[string]int{"totalTokenCount": 42},
			"modelVersion":  "gemini-2.0-flash-001",
		})
	}))
	defer srv.Close()

	c := newGeminiClient("test-key")
	c.baseURL = srv.URL

	resp, err := c.generate(context.Background(), "gemini-2.0-flash", GenerateRequest{
		Prompt:      "Describe a beach holiday",
		ContentType: "service_description",
		MaxTokens:   256,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if resp.Content != "Sun, sand and surf." {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.TotalTokens != 42 {
		t.Errorf("tokens = %d", resp.TotalTokens)
	}
	if resp.Model != "gemini-2.0-flash-001" {
		t.Errorf("model = %q", resp.Model)
	}

	if gotPath != "/models/gemini-2.0-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if _, ok := gotBody["generationConfig"]; !ok {
		t.Error("expected generationConfig with max tokens")
	}
}

func TestGeminiGenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newGeminiClient("test-key")
	c.baseURL = srv.URL

	_, err := c.generate(context.Background(), "gemini-2.0-flash", GenerateRequest{Prompt: "hi"})
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestBuildInstruction(t *testing.T) {
	got := buildInstruction(GenerateRequest{Prompt: "Bali trip", ContentType: "service_description"})
	if !strings.Contains(got, "Bali trip") {
		t.Errorf("prompt missing from instruction: %q", got)
	}
	if !strings.Contains(got, "description") {
		t.Errorf("content type guidance missing: %q", got)
	}

	freeform := buildInstruction(GenerateRequest{Prompt: "anything"})
	if !strings.Contains(freeform, "anything") {
		t.Errorf("freeform prompt missing: %q", freeform)
	}
}
