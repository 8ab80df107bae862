// Copyright Electionwire Media, 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/electionwire/autopost/internal/generate"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the research prompt for the current store state",
	Long: `Prompt fetches the existing titles and candidate names from WordPress
and prints the exact prompt a run would send to the AI backend. Useful for
tuning the topic and policy before letting cron loose.`,
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().String("topic", "Nepal election candidate profile", "primary research topic")
	promptCmd.Flags().String("election-date", "2026-03-05", "target election date (YYYY-MM-DD)")
	promptCmd.Flags().Int("min-sources", 8, "minimum distinct source domains per profile")
	promptCmd.Flags().Int("min-confidence", 85, "minimum confidence for the profile and each key fact")

	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	client := newStoreClient(cmd)
	ctx := context.Background()

	posts, err := client.ListPosts(ctx)
	if err != nil {
		return err
	}
	candidates, err := client.ListCandidateNames(ctx)
	if err != nil {
		return err
	}

	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		titles = append(titles, p.Title)
	}

	minSources := intFlagOrConfig(cmd, "min-sources", "gate.min_sources", 8)
	minConfidence := intFlagOrConfig(cmd, "min-confidence", "gate.min_confidence", 85)

	prompt, err := generate.BuildPrompt(
		flagOrConfig(cmd, "topic", "generation.topic"),
		flagOrConfig(cmd, "election-date", "generation.election_date"),
		titles,
		candidates,
		minSources,
		minConfidence,
	)
	if err != nil {
		return err
	}

	fmt.Println(prompt)
	return nil
}
