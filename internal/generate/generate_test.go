// Copyright Electionwire Media, 2026. All rights reserved.

package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/electionwire/autopost/pkg/types"
)

func TestMain(m *testing.M) {
	backoffBase = time.Millisecond
	os.Exit(m.Run())
}

// mockBackend scripts a sequence of responses for Generate.
type mockBackend struct {
	calls     int
	responses []mockResponse
}

type mockResponse struct {
	raw []byte
	err error
}

func (m *mockBackend) Name() string { return "mock" }

func (m *mockBackend) Generate(_ context.Context, _ string) ([]byte, error) {
	if m.calls >= len(m.responses) {
		return nil, errors.New("mock exhausted")
	}
	r := m.responses[m.calls]
	m.calls++
	return r.raw, r.err
}

func publishPayloadJSON(t *testing.T) []byte {
	t.Helper()
	payload := map[string]any{
		"status":         "publish",
		"title":          "Maya Gurung Profile: Nepal Election 2026 Candidate",
		"slug":           "maya-gurung-profile",
		"excerpt":        "A profile of Maya Gurung.",
		"content_html":   "<h2>Background</h2><p>Profile body.</p>",
		"post_status":    "publish",
		"topic_keywords": []string{"nepal election"},
		"seo": map[string]any{
			"focus_keyphrase":  "maya gurung profile",
			"meta_title":       "Maya Gurung Profile",
			"meta_description": "A profile of Maya Gurung.",
		},
		"sources": []map[string]any{
			{"url": "https://news1.example.com/maya"},
		},
		"key_facts": []map[string]any{
			{"fact": "Maya Gurung is a candidate.", "supporting_source_urls": []string{"https://news1.example.com/maya", "https://news2.example.com/maya"}, "confidence": 90},
		},
		"candidate_profile": map[string]any{
			"candidate_name": "Maya Gurung",
			"election_name":  "Nepal Election 2026",
			"election_date":  "2026-03-05",
		},
		"confidence": 90,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return raw
}

func TestGenerate_SucceedsFirstAttempt(t *testing.T) {
	backend := &mockBackend{responses: []mockResponse{
		{raw: publishPayloadJSON(t)},
	}}

	payload, err := Generate(context.Background(), backend, "prompt", 3)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if payload.Status != types.PayloadPublish {
		t.Errorf("status = %q, want publish", payload.Status)
	}
	if backend.calls != 1 {
		t.Errorf("backend called %d times, want 1", backend.calls)
	}
}

func TestGenerate_RetriesTransientError(t *testing.T) {
	backend := &mockBackend{responses: []mockResponse{
		{err: errors.New("rate limited")},
		{err: errors.New("rate limited")},
		{raw: publishPayloadJSON(t)},
	}}

	payload, err := Generate(context.Background(), backend, "prompt", 3)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if payload == nil || payload.Title == "" {
		t.Fatal("expected a parsed payload after retries")
	}
	if backend.calls != 3 {
		t.Errorf("backend called %d times, want 3", backend.calls)
	}
}

func TestGenerate_FailsAfterExhaustingRetries(t *testing.T) {
	backend := &mockBackend{responses: []mockResponse{
		{err: errors.New("down")},
		{err: errors.New("down")},
		{err: errors.New("down")},
	}}

	_, err := Generate(context.Background(), backend, "prompt", 3)
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("error = %q, want attempt count mentioned", err)
	}
	if backend.calls != 3 {
		t.Errorf("backend called %d times, want 3", backend.calls)
	}
}

func TestGenerate_ContextCancelledStopsRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	backend := &mockBackend{responses: []mockResponse{
		{err: errors.New("down")},
		{raw: publishPayloadJSON(t)},
	}}

	_, err := Generate(ctx, backend, "prompt", 3)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if backend.calls != 1 {
		t.Errorf("backend called %d times, want 1", backend.calls)
	}
}

func TestParsePayload_Publish(t *testing.T) {
	payload, err := ParsePayload(publishPayloadJSON(t))
	if err != nil {
		t.Fatalf("ParsePayload returned error: %v", err)
	}
	if payload.Status != types.PayloadPublish {
		t.Errorf("status = %q, want publish", payload.Status)
	}
	if payload.CandidateProfile.CandidateName != "Maya Gurung" {
		t.Errorf("candidate = %q", payload.CandidateProfile.CandidateName)
	}
}

func TestParsePayload_PublishWithFences(t *testing.T) {
	fenced := fmt.Sprintf("```json\n%s\n```", publishPayloadJSON(t))
	payload, err := ParsePayload([]byte(fenced))
	if err != nil {
		t.Fatalf("ParsePayload returned error: %v", err)
	}
	if payload.Status != types.PayloadPublish {
		t.Errorf("status = %q, want publish", payload.Status)
	}
}

func TestParsePayload_Skip(t *testing.T) {
	raw := []byte(`{"status": "skip", "reason": "no uncovered candidate found"}`)
	payload, err := ParsePayload(raw)
	if err != nil {
		t.Fatalf("ParsePayload returned error: %v", err)
	}
	if payload.Status != types.PayloadSkip {
		t.Errorf("status = %q, want skip", payload.Status)
	}
	if payload.Reason == "" {
		t.Error("expected reason to survive parsing")
	}
}

func TestParsePayload_SkipWithoutReason(t *testing.T) {
	if _, err := ParsePayload([]byte(`{"status": "skip"}`)); err == nil {
		t.Fatal("expected error for skip without reason")
	}
}

func TestParsePayload_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty response", ""},
		{"whitespace only", "   \n"},
		{"invalid JSON", "candidate profile: Maya Gurung"},
		{"unknown status", `{"status": "maybe", "title": "X"}`},
		{"missing status", `{"title": "X"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePayload([]byte(tt.raw)); err == nil {
				t.Fatalf("ParsePayload(%q) succeeded, want error", tt.raw)
			}
		})
	}
}

func TestParsePayload_NormalizesMarkdownBody(t *testing.T) {
	var payload map[string]any
	if err := json.Unmarshal(publishPayloadJSON(t), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	payload["content_html"] = "## Background\n\nProfile body."
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	parsed, err := ParsePayload(raw)
	if err != nil {
		t.Fatalf("ParsePayload returned error: %v", err)
	}
	if !strings.Contains(parsed.ContentHTML, "<h2") {
		t.Errorf("content = %q, want rendered h2", parsed.ContentHTML)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\": 1}\n```\n  ", `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewBackend_UnknownProvider(t *testing.T) {
	_, err := NewBackend(context.Background(), types.GenerationConfig{
		AIConfig: types.AIConfig{Provider: "oracle"},
	})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
