// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openAIClient implements client via the official OpenAI SDK.
type openAIClient struct {
	api openai.Client
}

func newOpenAIClient(apiKey string) *openAIClient {
	return &openAIClient{
		api: openai.NewClient(option.WithAPIKey(apiKey)),
	}
}

func (c *openAIClient) generate(ctx context.Context, modelName string, req GenerateRequest) (GenerateResponse, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(buildInstruction(req)),
		},
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return GenerateResponse{}, fmt.Errorf("openai: no choices returned")
	}

	return GenerateResponse{
		Content:     resp.Choices[0].Message.Content,
		Model:       resp.Model,
		TotalTokens: int(resp.Usage.TotalTokens),
	}, nil
}
