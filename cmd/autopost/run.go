// Copyright Electionwire Media, 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/electionwire/autopost/internal/generate"
	"github.com/electionwire/autopost/internal/journal"
	"github.com/electionwire/autopost/internal/pipeline"
	"github.com/electionwire/autopost/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one automation run: research, validate, publish",
	Long: `Run performs one full automation cycle. It snapshots the existing post
titles and candidate names from WordPress, asks the AI backend to research
one uncovered candidate, validates the returned profile against the
duplicate and quality policy, and creates the post.

Exit codes: 0 on success or an expected skip (duplicate topic, model skip,
held lock), 2 when validation rejects the draft, 1 on a fatal error.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("provider", "", "AI backend: gemini, openai, or codex")
	runCmd.Flags().String("model", "", "model identifier for the selected backend")
	runCmd.Flags().String("api-key", "", "AI API key (or GEMINI_API_KEY / OPENAI_API_KEY)")
	runCmd.Flags().String("codex-bin", "", "explicit path to the codex CLI binary")
	runCmd.Flags().Duration("gen-timeout", 0, "timeout for the generation step")
	runCmd.Flags().Int("max-retries", 3, "retry attempts for transient backend failures")

	runCmd.Flags().String("topic", "Nepal election candidate profile", "primary research topic")
	runCmd.Flags().String("election-date", "2026-03-05", "target election date (YYYY-MM-DD)")
	runCmd.Flags().Int("min-sources", 8, "minimum distinct source domains per profile")
	runCmd.Flags().Int("min-confidence", 85, "minimum confidence for the profile and each key fact")
	runCmd.Flags().String("post-status", "publish", "WordPress status for created posts")
	runCmd.Flags().String("category", "", "category for created posts")
	runCmd.Flags().Bool("require-faq", false, "require an FAQ section in the content")

	runCmd.Flags().Bool("dry-run", false, "run generation and validation, but do not post")
	runCmd.Flags().String("lock-path", "", "overlap-guard lock file path")
	runCmd.Flags().Duration("stale-lock-age", 0, "age after which a leftover lock is broken")
	runCmd.Flags().String("log-file", "", "run log file path")
	runCmd.Flags().String("journal-dir", "", "run journal directory")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := types.PipelineConfig{
		Store:      storeConfig(cmd),
		Generation: generationConfig(cmd),
		Gate:       gateConfig(cmd),
		Journal:    journalConfig(cmd),
	}
	cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")
	cfg.LockPath = flagOrConfig(cmd, "lock-path", "lock_path")
	if cfg.LockPath == "" {
		cfg.LockPath = "autopost.lock"
	}
	cfg.StaleLockAge = viper.GetDuration("stale_lock_age")
	if cmd.Flags().Changed("stale-lock-age") {
		cfg.StaleLockAge, _ = cmd.Flags().GetDuration("stale-lock-age")
	}
	if cfg.StaleLockAge == 0 {
		cfg.StaleLockAge = 2 * time.Hour
	}
	cfg.LogFile = flagOrConfig(cmd, "log-file", "log_file")
	if cfg.LogFile == "" {
		cfg.LogFile = "logs/autopost.log"
	}

	log, err := pipeline.NewRunLogger(os.Stdout, cfg.LogFile)
	if err != nil {
		return err
	}
	defer log.Close()

	ctx := context.Background()

	backend, err := generate.NewBackend(ctx, cfg.Generation)
	if err != nil {
		log.Printf("Job failed: %v", err)
		return err
	}

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		log.Printf("Job failed: %v", err)
		return err
	}
	defer j.Close()

	p := &pipeline.Pipeline{
		Store:   newStoreClient(cmd),
		Backend: backend,
		Journal: j,
		Log:     log,
	}

	result, err := p.Run(ctx, cfg)
	if err != nil {
		return err
	}
	if code := result.ExitCode(); code != 0 {
		log.Close()
		j.Close()
		os.Exit(code)
	}
	return nil
}
