package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openelexva/reconcile/internal/cli"
	"github.com/openelexva/reconcile/internal/config"
	"github.com/openelexva/reconcile/internal/dedupe"
)

func dedupeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Suppress near-duplicate records in the stored set",
		Long: `Run the near-duplicate suppression pass over the stored canonical set:
exact duplicates by full-record hash, then rows differing only in
report bookkeeping fields, keeping the first-seen row of each cluster.`,
		RunE: runDedupe,
	}

	cmd.Flags().Bool("dry-run", false, "Report what would be removed without changing the database")

	return cmd
}

func runDedupe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.LoadPipeline()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := loadRecords(ctx, store)
	if err != nil {
		return err
	}

	result, err := dedupe.Suppress(ctx, records)
	if err != nil {
		return fmt.Errorf("duplicate suppression failed: %w", err)
	}

	if !dryRun {
		if _, err := store.ReplaceTransactions(ctx, dereference(result.Records)); err != nil {
			return fmt.Errorf("failed to store deduplicated records: %w", err)
		}
	}

	summary := fmt.Sprintf(
		"Input rows:       %d\nExact duplicates: %d\nNear duplicates:  %d\nSurviving rows:   %d",
		len(records), result.ExactDuplicates, result.NearDuplicates, len(result.Records))
	if dryRun {
		summary += "\n" + cli.FormatWarning("Dry run: database unchanged")
	}
	fmt.Println(cli.RenderBox("Duplicate suppression", summary))
	return nil
}
