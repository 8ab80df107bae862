// Copyright Electionwire Media, 2026. All rights reserved.

package generate

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CodexBackend generates profiles by shelling out to the Codex CLI with web
// search enabled. The CLI writes its final JSON message to an output file,
// which keeps the payload separate from the agent's progress chatter on
// stdout.
type CodexBackend struct {
	bin   string
	model string
}

// NewCodexBackend creates a Codex-backed generator. bin may be empty, in
// which case CODEX_BIN and then PATH are consulted.
func NewCodexBackend(bin, model string) (*CodexBackend, error) {
	resolved, err := resolveCodexBinary(bin)
	if err != nil {
		return nil, err
	}
	return &CodexBackend{bin: resolved, model: model}, nil
}

// Name returns the backend name.
func (b *CodexBackend) Name() string {
	if b.model == "" {
		return "codex"
	}
	return fmt.Sprintf("codex:%s", b.model)
}

// Generate runs the CLI with the prompt on stdin and returns the raw JSON
// payload text from the output file.
func (b *CodexBackend) Generate(ctx context.Context, prompt string) ([]byte, error) {
	workDir, err := os.MkdirTemp("", "autopost-codex-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create codex work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	schemaPath := filepath.Join(workDir, "schema.json")
	if err := os.WriteFile(schemaPath, []byte(ResponseSchemaJSON), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write codex schema: %w", err)
	}
	outputPath := filepath.Join(workDir, "payload.json")

	args := []string{}
	if b.model != "" {
		args = append(args, "--model", b.model)
	}
	args = append(args,
		"--search",
		"exec",
		"--skip-git-repo-check",
		"--output-schema", schemaPath,
		"-o", outputPath,
		"-",
	)

	cmd := exec.CommandContext(ctx, b.bin, args...)
	cmd.Stdin = strings.NewReader(prompt)
	cmd.Env = append(os.Environ(), "NO_COLOR=1")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("codex CLI failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("codex CLI failed: %w", err)
	}

	payload, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("codex produced no output file: %w", err)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, fmt.Errorf("codex output file is empty")
	}
	return payload, nil
}

func resolveCodexBinary(explicit string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit, nil
	}
	if env := strings.TrimSpace(os.Getenv("CODEX_BIN")); env != "" {
		return env, nil
	}
	if found, err := exec.LookPath("codex"); err == nil {
		return found, nil
	}
	return "", fmt.Errorf("unable to find codex CLI: set CODEX_BIN or add codex to PATH")
}
