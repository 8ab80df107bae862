// Copyright Electionwire Media, 2026. All rights reserved.

// Package pipeline orchestrates one unattended automation run: snapshot
// the store index, generate a candidate profile, gate it, and persist the
// accepted draft. Every run ends with a journal entry, except the
// held-lock skip, which belongs to the run already in flight.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/electionwire/autopost/internal/gate"
	"github.com/electionwire/autopost/internal/generate"
	"github.com/electionwire/autopost/internal/journal"
	"github.com/electionwire/autopost/internal/lockfile"
	"github.com/electionwire/autopost/pkg/types"
)

// Store is the content store surface the pipeline needs. Satisfied by
// *wordpress.Client.
type Store interface {
	ListPosts(ctx context.Context) ([]types.PostRef, error)
	ListCandidateNames(ctx context.Context) ([]string, error)
	InsertPost(ctx context.Context, draft *types.PostDraft) (types.InsertResult, error)
}

// Recorder is the journal surface the pipeline needs. Satisfied by
// *journal.Journal.
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) error
}

// Result summarizes one run.
type Result struct {
	// RunID identifies the run in the journal.
	RunID string

	// Outcome classifies how the run ended.
	Outcome journal.Outcome

	// Reason carries the skip or rejection reason, empty for created runs.
	Reason string

	// Detail is an optional elaboration on Reason.
	Detail string

	// Title, Slug, and Candidate describe the generated draft, when one
	// was produced.
	Title     string
	Slug      string
	Candidate string

	// Payload is the raw generation payload JSON for the journal.
	Payload string

	// Post identifies the created post for created runs.
	Post types.InsertResult
}

// ExitCode maps the run outcome to the process exit code: 0 for success
// and expected skips, 2 for a gate rejection, 1 for a fatal failure.
func (r Result) ExitCode() int {
	switch r.Outcome {
	case journal.OutcomeRejected:
		return 2
	case journal.OutcomeFailed:
		return 1
	default:
		return 0
	}
}

// Pipeline wires the run dependencies.
type Pipeline struct {
	Store   Store
	Backend generate.Backend
	Journal Recorder
	Log     *RunLogger
}

// Run executes one automation run under the overlap lock. A held lock is
// an expected skip, not an error. The returned error is non-nil only for
// fatal failures, and the Result is always usable for exit-code mapping.
func (p *Pipeline) Run(ctx context.Context, cfg types.PipelineConfig) (Result, error) {
	lockPath := cfg.LockPath
	if lockPath == "" {
		lockPath = "autopost.lock"
	}
	result := Result{RunID: journal.NewRunID()}
	startedAt := time.Now().UTC()

	lock, err := lockfile.Acquire(lockPath, cfg.StaleLockAge)
	switch {
	case errors.Is(err, lockfile.ErrHeld):
		p.Log.Printf("Skipping run: %v", err)
		return Result{Outcome: journal.OutcomeSkipped, Reason: "lock_held", Detail: err.Error()}, nil
	case err != nil:
		err = fmt.Errorf("acquiring lock: %w", err)
	default:
		defer lock.Release()
		p.Log.Printf("Job started (run %s).", result.RunID)
		result, err = p.run(ctx, cfg, result)
	}
	if err != nil {
		result.Outcome = journal.OutcomeFailed
		result.Reason = "error"
		result.Detail = err.Error()
		p.Log.Printf("Job failed: %v", err)
	}

	p.record(ctx, result, startedAt)
	return result, err
}

func (p *Pipeline) run(ctx context.Context, cfg types.PipelineConfig, result Result) (Result, error) {
	posts, err := p.Store.ListPosts(ctx)
	if err != nil {
		return result, fmt.Errorf("listing posts: %w", err)
	}
	p.Log.Printf("Loaded %d existing post title(s).", len(posts))

	candidates, err := p.Store.ListCandidateNames(ctx)
	if err != nil {
		return result, fmt.Errorf("listing candidates: %w", err)
	}
	p.Log.Printf("Loaded %d existing candidate profile(s).", len(candidates))

	index := gate.NewIndex(posts, candidates)

	prompt, err := generate.BuildPrompt(
		cfg.Generation.Topic,
		cfg.Generation.ElectionDate,
		index.Titles(),
		candidates,
		cfg.Gate.MinSources,
		cfg.Gate.MinConfidence,
	)
	if err != nil {
		return result, err
	}

	p.Log.Printf("Starting %s research step.", p.Backend.Name())
	genCtx := ctx
	if cfg.Generation.Timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, cfg.Generation.Timeout)
		defer cancel()
	}
	payload, err := generate.Generate(genCtx, p.Backend, prompt, cfg.Generation.MaxRetries)
	if err != nil {
		return result, err
	}
	p.Log.Printf("Research step completed.")

	result.Title = payload.Title
	result.Slug = payload.Slug
	result.Candidate = payload.CandidateProfile.CandidateName
	result.Payload = payloadJSON(payload)

	if payload.Status == types.PayloadSkip {
		p.Log.Printf("Model returned skip: %s", payload.Reason)
		result.Outcome = journal.OutcomeSkipped
		result.Reason = "model_skip"
		result.Detail = payload.Reason
		return result, nil
	}

	decision := gate.Evaluate(&payload.PostDraft, index, cfg.Gate)
	switch decision.Outcome {
	case gate.OutcomeReject:
		p.Log.Printf("Validation failed; skipping publish.")
		p.Log.Printf(" - %s: %s", decision.Reason, decision.Detail)
		result.Outcome = journal.OutcomeRejected
		result.Reason = decision.Reason
		result.Detail = decision.Detail
		return result, nil
	case gate.OutcomeSkip:
		p.Log.Printf("Duplicate content; skipping publish (%s).", decision.Reason)
		result.Outcome = journal.OutcomeSkipped
		result.Reason = decision.Reason
		result.Detail = decision.Detail
		return result, nil
	}

	draft := decision.Draft
	result.Title = draft.Title
	result.Slug = draft.Slug

	if cfg.DryRun {
		p.Log.Printf("Dry-run enabled; not publishing post.")
		result.Outcome = journal.OutcomeDryRun
		result.Reason = "dry_run"
		result.Post = types.InsertResult{Status: types.InsertSkipped}
		return result, nil
	}

	inserted, err := p.Store.InsertPost(ctx, draft)
	if err != nil {
		return result, fmt.Errorf("inserting post: %w", err)
	}
	p.Log.Printf("Insert result: status=%s id=%d link=%s", inserted.Status, inserted.PostID, inserted.PostURL)

	result.Outcome = journal.OutcomeCreated
	result.Post = inserted
	return result, nil
}

// record writes the journal entry. Journal failures are logged, not
// fatal: the post may already be live and the run outcome must stand.
func (p *Pipeline) record(ctx context.Context, result Result, startedAt time.Time) {
	if p.Journal == nil {
		return
	}
	entry := journal.Entry{
		RunID:      result.RunID,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
		Model:      p.Backend.Name(),
		Outcome:    result.Outcome,
		Reason:     result.Reason,
		PostID:     result.Post.PostID,
		PostURL:    result.Post.PostURL,
		Title:      result.Title,
		Slug:       result.Slug,
		Candidate:  result.Candidate,
		Payload:    result.Payload,
	}
	if err := p.Journal.Record(ctx, entry); err != nil {
		p.Log.Printf("warning: journal write failed: %v", err)
	}
}

func payloadJSON(payload *types.GenerationPayload) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(data)
}
