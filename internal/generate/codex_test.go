// Copyright Electionwire Media, 2026. All rights reserved.

package generate

import "testing"

func TestResolveCodexBinary_Explicit(t *testing.T) {
	got, err := resolveCodexBinary("/opt/codex/bin/codex")
	if err != nil {
		t.Fatalf("resolveCodexBinary returned error: %v", err)
	}
	if got != "/opt/codex/bin/codex" {
		t.Errorf("got %q, want explicit path", got)
	}
}

func TestResolveCodexBinary_Env(t *testing.T) {
	t.Setenv("CODEX_BIN", "/usr/local/bin/codex")
	got, err := resolveCodexBinary("")
	if err != nil {
		t.Fatalf("resolveCodexBinary returned error: %v", err)
	}
	if got != "/usr/local/bin/codex" {
		t.Errorf("got %q, want CODEX_BIN value", got)
	}
}

func TestResolveCodexBinary_ExplicitWinsOverEnv(t *testing.T) {
	t.Setenv("CODEX_BIN", "/usr/local/bin/codex")
	got, err := resolveCodexBinary("/opt/codex/bin/codex")
	if err != nil {
		t.Fatalf("resolveCodexBinary returned error: %v", err)
	}
	if got != "/opt/codex/bin/codex" {
		t.Errorf("got %q, want explicit path", got)
	}
}

func TestCodexBackendName(t *testing.T) {
	b := &CodexBackend{bin: "codex"}
	if b.Name() != "codex" {
		t.Errorf("Name() = %q", b.Name())
	}
	b.model = "gpt-5-codex"
	if b.Name() != "codex:gpt-5-codex" {
		t.Errorf("Name() = %q", b.Name())
	}
}
