package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openelexva/reconcile/internal/calendar"
	"github.com/openelexva/reconcile/internal/cli"
	"github.com/openelexva/reconcile/internal/config"
	"github.com/openelexva/reconcile/internal/consolidate"
	"github.com/openelexva/reconcile/internal/export"
	"github.com/openelexva/reconcile/internal/ingest"
	"github.com/openelexva/reconcile/internal/normalize"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <data-dir>",
		Short: "Ingest extract folders and build the canonical record set",
		Long: `Read every YYYY and YYYY_MM extract folder under the data directory,
normalize names and offices, annotate filing timeliness, collapse
amended filings to their latest version, and store the result.`,
		Args: cobra.ExactArgs(1),
		RunE: runProcess,
	}

	cmd.Flags().Int("min-year", 0, "Skip extract folders before this year")
	cmd.Flags().Bool("include-legacy", false, "Also read pre-2012 yearly extract folders")
	cmd.Flags().Int("fuzzy-threshold", 0, "Minimum name similarity (0-100) for amendment grouping")
	cmd.Flags().String("calendar", "", "YAML file with filing calendar overrides")
	cmd.Flags().String("equivalences", "", "YAML file with name equivalence overrides")
	cmd.Flags().String("csv", "", "Also write the canonical set to this CSV file")

	_ = viper.BindPFlag("ingest.min_folder_year", cmd.Flags().Lookup("min-year"))
	_ = viper.BindPFlag("ingest.include_legacy", cmd.Flags().Lookup("include-legacy"))
	_ = viper.BindPFlag("consolidate.fuzzy_threshold", cmd.Flags().Lookup("fuzzy-threshold"))
	_ = viper.BindPFlag("calendar.path", cmd.Flags().Lookup("calendar"))
	_ = viper.BindPFlag("equivalences.path", cmd.Flags().Lookup("equivalences"))

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.LoadPipeline()
	dataDir := config.ExpandPath(args[0])

	if _, err := os.Stat(dataDir); err != nil {
		return fmt.Errorf("data directory %s: %w", dataDir, err)
	}

	equivalences := normalize.DefaultEquivalences()
	if cfg.EquivalencesPath != "" {
		loaded, err := normalize.LoadEquivalences(cfg.EquivalencesPath)
		if err != nil {
			return fmt.Errorf("failed to load equivalences: %w", err)
		}
		equivalences = loaded
	}

	cal := calendar.New()
	if cfg.CalendarPath != "" {
		if err := cal.Load(cfg.CalendarPath); err != nil {
			return fmt.Errorf("failed to load filing calendar: %w", err)
		}
	}

	fmt.Println(cli.FormatTitle("Processing extract folders"))

	processor := ingest.NewProcessor(normalize.New(equivalences), cal, ingest.Options{
		MinFolderYear: cfg.MinFolderYear,
		IncludeLegacy: cfg.IncludeLegacy,
		ShowProgress:  showProgress(),
	})
	records, err := processor.ProcessDirectory(ctx, dataDir)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	ingested := len(records)

	consolidator := consolidate.New(cfg.FuzzyThreshold)
	records, err = consolidator.Consolidate(ctx, records)
	if err != nil {
		return fmt.Errorf("amendment consolidation failed: %w", err)
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	stored, err := store.ReplaceTransactions(ctx, dereference(records))
	if err != nil {
		return fmt.Errorf("failed to store records: %w", err)
	}

	if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
		if err := export.WriteRecords(config.ExpandPath(csvPath), records); err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess("Wrote " + csvPath))
	}

	fmt.Println(cli.RenderBox("Processing complete", fmt.Sprintf(
		"Rows ingested:      %d\nAfter amendments:   %d\nStored:             %d",
		ingested, len(records), stored)))
	return nil
}
