// Copyright Electionwire Media, 2026. All rights reserved.

// Package generate invokes an external generative-AI backend to research
// one candidate profile against a fixed JSON schema. The backend is an
// opaque upstream producer; everything it returns is validated at this
// boundary before the gate ever sees it.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/electionwire/autopost/pkg/types"
)

// Backend produces one raw generation response for a research prompt.
// Each implementation wraps a single provider per the Strategy pattern.
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// backoffBase is the retry backoff base delay. Tests override this to
// avoid real sleeps.
var backoffBase = 2 * time.Second

// NewBackend constructs the backend selected by cfg.Provider.
func NewBackend(ctx context.Context, cfg types.GenerationConfig) (Backend, error) {
	switch cfg.Provider {
	case types.ProviderGemini:
		return NewGeminiBackend(ctx, cfg.APIKey, cfg.Model)
	case types.ProviderOpenAI:
		return NewOpenAIBackend(cfg.APIKey, cfg.Model, "")
	case types.ProviderCodex:
		return NewCodexBackend(cfg.CodexBin, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

// Generate runs the backend with retry on transient errors, then parses
// and boundary-validates the response. Invalid JSON or a malformed
// envelope is fatal: the run aborts rather than feeding garbage to the
// validation gate. The context deadline bounds each attempt.
func Generate(ctx context.Context, backend Backend, prompt string, maxRetries int) (*types.GenerationPayload, error) {
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var raw []byte
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
		raw, err = backend.Generate(ctx, prompt)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s generation: %w", backend.Name(), err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s generation failed after %d attempts: %w", backend.Name(), maxRetries, err)
	}

	return ParsePayload(raw)
}

// ParsePayload decodes and boundary-validates a raw backend response.
func ParsePayload(raw []byte) (*types.GenerationPayload, error) {
	text := stripFences(string(raw))
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("backend returned an empty response")
	}

	var payload types.GenerationPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("backend returned invalid JSON: %w", err)
	}

	switch payload.Status {
	case types.PayloadPublish:
	case types.PayloadSkip:
		if strings.TrimSpace(payload.Reason) == "" {
			return nil, fmt.Errorf("skip payload is missing a reason")
		}
		return &payload, nil
	default:
		return nil, fmt.Errorf("payload status %q is not publish or skip", payload.Status)
	}

	payload.ContentHTML = NormalizeContent(payload.ContentHTML)
	return &payload, nil
}

// stripFences removes a surrounding markdown code fence, which some models
// emit despite the JSON response instruction.
func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if i := strings.Index(trimmed, "\n"); i >= 0 {
		// Drop the language tag line (e.g. ```json).
		trimmed = trimmed[i+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
