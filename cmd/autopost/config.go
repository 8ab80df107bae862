// Copyright Electionwire Media, 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/electionwire/autopost/internal/secrets"
	"github.com/electionwire/autopost/pkg/types"
)

// flagOrConfig returns the flag value when set, falling back to the viper
// key (config file or AUTOPOST_* environment).
func flagOrConfig(cmd *cobra.Command, flag, key string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	return viper.GetString(key)
}

func intFlagOrConfig(cmd *cobra.Command, flag, key string, fallback int) int {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return fallback
}

// storeConfig assembles the WordPress client settings from persistent
// flags, config, and secrets.
func storeConfig(cmd *cobra.Command) types.StoreConfig {
	appPassword, _ := cmd.Flags().GetString("app-password")
	return types.StoreConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("store.timeout"),
			UserAgent: "autopost/" + version,
		},
		BaseURL:          flagOrConfig(cmd, "base-url", "store.base_url"),
		Username:         flagOrConfig(cmd, "username", "store.username"),
		AppPassword:      secrets.Resolve(loadedSecrets, appPassword, "WORDPRESS_APP_PASSWORD", secrets.WordPressAppPassword),
		CandidateMetaKey: flagOrConfig(cmd, "candidate-meta-key", "store.candidate_meta_key"),
	}
}

// generationConfig assembles the backend settings for commands that
// generate content.
func generationConfig(cmd *cobra.Command) types.GenerationConfig {
	provider := types.AIProvider(flagOrConfig(cmd, "provider", "generation.provider"))
	if provider == "" {
		provider = types.ProviderGemini
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	secretKey := secrets.GeminiAPIKey
	envKey := "GEMINI_API_KEY"
	if provider == types.ProviderOpenAI {
		secretKey = secrets.OpenAIAPIKey
		envKey = "OPENAI_API_KEY"
	}

	timeout := viper.GetDuration("generation.timeout")
	if cmd.Flags().Changed("gen-timeout") {
		timeout, _ = cmd.Flags().GetDuration("gen-timeout")
	}
	if timeout == 0 {
		timeout = 15 * time.Minute
	}

	return types.GenerationConfig{
		AIConfig: types.AIConfig{
			Provider:   provider,
			Model:      flagOrConfig(cmd, "model", "generation.model"),
			APIKey:     secrets.Resolve(loadedSecrets, apiKey, envKey, secretKey),
			MaxRetries: intFlagOrConfig(cmd, "max-retries", "generation.max_retries", 3),
			Timeout:    timeout,
		},
		Topic:        flagOrConfig(cmd, "topic", "generation.topic"),
		ElectionDate: flagOrConfig(cmd, "election-date", "generation.election_date"),
		CodexBin:     flagOrConfig(cmd, "codex-bin", "generation.codex_bin"),
	}
}

// gateConfig assembles the validation policy.
func gateConfig(cmd *cobra.Command) types.GateConfig {
	status := types.PostStatus(flagOrConfig(cmd, "post-status", "gate.post_status"))
	if status == "" {
		status = types.StatusPublish
	}

	requireFAQ := status == types.StatusPublish
	if cmd.Flags().Changed("require-faq") {
		requireFAQ, _ = cmd.Flags().GetBool("require-faq")
	} else if viper.IsSet("gate.require_faq") {
		requireFAQ = viper.GetBool("gate.require_faq")
	}

	return types.GateConfig{
		MinSources:    intFlagOrConfig(cmd, "min-sources", "gate.min_sources", 8),
		MinConfidence: intFlagOrConfig(cmd, "min-confidence", "gate.min_confidence", 85),
		PostStatus:    status,
		CategoryName:  flagOrConfig(cmd, "category", "gate.category_name"),
		RequireFAQ:    requireFAQ,
	}
}

// journalConfig assembles the run journal settings.
func journalConfig(cmd *cobra.Command) types.JournalConfig {
	dir := viper.GetString("journal.dir")
	if cmd != nil && cmd.Flags().Lookup("journal-dir") != nil {
		if v, _ := cmd.Flags().GetString("journal-dir"); v != "" {
			dir = v
		}
	}
	if dir == "" {
		dir = "journal"
	}
	return types.JournalConfig{Dir: dir}
}
