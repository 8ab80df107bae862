// Copyright Electionwire Media, 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/electionwire/autopost/internal/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Review past automation runs",
	Long: `Journal queries the local run journal. Every run leaves one record:
what was generated, how the gate decided, and which post was created.`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run in full, including the generation payload",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all runs to journal/export.yaml",
	RunE:  runJournalExport,
}

func init() {
	journalCmd.PersistentFlags().String("journal-dir", "", "run journal directory")
	journalListCmd.Flags().Int("limit", 20, "maximum number of runs to list (0 for all)")
	journalListCmd.Flags().Bool("json", false, "output results as JSON")

	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalExportCmd)
	rootCmd.AddCommand(journalCmd)
}

func openJournal(cmd *cobra.Command) (*journal.Journal, error) {
	return journal.Open(journalConfig(cmd))
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer j.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := j.List(context.Background(), limit)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %s  %-8s", e.StartedAt.Format("2006-01-02 15:04"), e.RunID, e.Outcome)
		switch {
		case e.PostID != 0:
			line += fmt.Sprintf("  post %d: %s", e.PostID, e.Title)
		case e.Reason != "":
			line += "  " + e.Reason
		}
		fmt.Println(line)
	}
	fmt.Fprintf(os.Stderr, "%d run(s)\n", len(entries))
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer j.Close()

	entry, err := j.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(entry)
}

func runJournalExport(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.ExportYAML(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "journal exported")
	return nil
}
