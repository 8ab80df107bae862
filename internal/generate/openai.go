// Copyright Electionwire Media, 2026. All rights reserved.

package generate

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIBackend generates profiles through the OpenAI chat completions API.
// It has no live search tool, so the prompt's sourcing rules carry the full
// weight of keeping citations real; the gate rejects what slips through.
type OpenAIBackend struct {
	model string
	opts  []option.RequestOption
}

// NewOpenAIBackend creates an OpenAI-backed generator.
func NewOpenAIBackend(apiKey, model, baseURL string) (*OpenAIBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if model == "" {
		model = "gpt-5"
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIBackend{model: model, opts: opts}, nil
}

// Name returns the backend name.
func (b *OpenAIBackend) Name() string {
	return fmt.Sprintf("openai:%s", b.model)
}

// Generate sends the prompt and returns the raw JSON payload text.
func (b *OpenAIBackend) Generate(ctx context.Context, prompt string) ([]byte, error) {
	client := openai.NewClient(b.opts...)

	msgs := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage("You are an expert political researcher. Respond with a single JSON object and nothing else."),
		openai.UserMessage(prompt),
	}

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(b.model),
		Messages: msgs,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai generate failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned empty choices")
	}
	text := resp.Choices[0].Message.Content
	if text == "" {
		return nil, fmt.Errorf("openai returned empty content")
	}
	return []byte(text), nil
}
