// Copyright Electionwire Media, 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/electionwire/autopost/internal/wordpress"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect the WordPress content store",
	Long: `Store queries the WordPress REST API for the state the automation
validates against: existing post titles and slugs, and the candidate names
already profiled.`,
}

var storeTitlesCmd = &cobra.Command{
	Use:   "titles",
	Short: "List existing post titles and slugs",
	RunE:  runStoreTitles,
}

var storeCandidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List candidate names already profiled",
	RunE:  runStoreCandidates,
}

func init() {
	storeTitlesCmd.Flags().Bool("json", false, "output results as JSON")
	storeCandidatesCmd.Flags().Bool("json", false, "output results as JSON")

	storeCmd.AddCommand(storeTitlesCmd)
	storeCmd.AddCommand(storeCandidatesCmd)
	rootCmd.AddCommand(storeCmd)
}

// newStoreClient builds the WordPress client from the persistent flags
// and config.
func newStoreClient(cmd *cobra.Command) *wordpress.Client {
	return wordpress.NewClient(storeConfig(cmd))
}

func runStoreTitles(cmd *cobra.Command, args []string) error {
	client := newStoreClient(cmd)

	posts, err := client.ListPosts(context.Background())
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(posts)
	}

	for _, p := range posts {
		fmt.Printf("%d\t%s\t%s\n", p.ID, p.Slug, p.Title)
	}
	fmt.Fprintf(os.Stderr, "%d post(s)\n", len(posts))
	return nil
}

func runStoreCandidates(cmd *cobra.Command, args []string) error {
	client := newStoreClient(cmd)

	candidates, err := client.ListCandidateNames(context.Background())
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(candidates)
	}

	for _, name := range candidates {
		fmt.Println(name)
	}
	fmt.Fprintf(os.Stderr, "%d candidate(s)\n", len(candidates))
	return nil
}
