// Copyright Electionwire Media, 2026. All rights reserved.

package generate

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

// GeminiBackend generates profiles through the Gemini API with Google Search
// grounding enabled, so the model researches live sources before answering.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend creates a Gemini-backed generator.
func NewGeminiBackend(ctx context.Context, apiKey, model string) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-pro"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiBackend{client: client, model: model}, nil
}

// Name returns the backend name.
func (b *GeminiBackend) Name() string {
	return fmt.Sprintf("gemini:%s", b.model)
}

// Generate sends the prompt and returns the raw JSON payload text.
func (b *GeminiBackend) Generate(ctx context.Context, prompt string) ([]byte, error) {
	var schema map[string]any
	if err := json.Unmarshal([]byte(ResponseSchemaJSON), &schema); err != nil {
		return nil, fmt.Errorf("invalid response schema: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: schema,
		Temperature:        genai.Ptr[float32](0.3),
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini returned empty text (safety block?)")
	}
	return []byte(text), nil
}
