package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openelexva/reconcile/internal/cli"
	"github.com/openelexva/reconcile/internal/config"
	"github.com/openelexva/reconcile/internal/reference"
)

func mappingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mappings",
		Short: "Build committee and name lookup tables from the stored set",
		Long: `Derive the committee identity table (most frequent committee and
candidate name per committee code) and the name variation table
(observed raw spellings mapped to normalized names) and store both.`,
		RunE: runMappings,
	}
}

func runMappings(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.LoadPipeline()

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := loadRecords(ctx, store)
	if err != nil {
		return err
	}

	identities := reference.BuildCommitteeIdentities(records)
	variations := reference.BuildNameVariations(records)

	if err := store.SaveCommitteeMappings(ctx, identities); err != nil {
		return fmt.Errorf("failed to store committee mappings: %w", err)
	}
	if err := store.SaveNameVariations(ctx, variations); err != nil {
		return fmt.Errorf("failed to store name variations: %w", err)
	}

	fmt.Println(cli.RenderBox("Lookup tables built", fmt.Sprintf(
		"Committee mappings: %d\nName variations:    %d",
		len(identities), len(variations))))
	return nil
}
