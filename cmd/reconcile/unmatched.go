package main

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/openelexva/reconcile/internal/cli"
	"github.com/openelexva/reconcile/internal/common"
	"github.com/openelexva/reconcile/internal/config"
	"github.com/openelexva/reconcile/internal/export"
	"github.com/openelexva/reconcile/internal/resolve"
)

func unmatchedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unmatched",
		Short: "Find contributions with no matching recipient receipt",
		Long: `Select reported political contributions from the stored disbursements,
resolve each recipient to a committee through the lookup tables, and
report every contribution the recipient never itemized as a receipt,
with a reason code per miss.`,
		RunE: runUnmatched,
	}

	cmd.Flags().Int("min-year", 0, "Minimum report year for contributions (default 2018)")
	cmd.Flags().Float64("min-amount", 0, "Minimum contribution amount (default 1000)")
	cmd.Flags().String("committee", "", "Restrict the analysis to one donor committee code")
	cmd.Flags().Int("workers", 0, "Concurrent matching workers (default: CPU count)")
	cmd.Flags().String("output", "", "Write results to this CSV file instead of stdout")

	return cmd
}

func runUnmatched(cmd *cobra.Command, _ []string) error {
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

	identities, err := store.GetCommitteeMappings(ctx)
	if err != nil {
		return err
	}
	variations, err := store.GetNameVariations(ctx)
	if err != nil {
		return err
	}
	tables := resolve.NewTables(identities, variations)

	opts := resolve.DefaultOptions()
	if v, _ := cmd.Flags().GetInt("min-year"); v > 0 {
		opts.MinYear = v
	}
	if v, _ := cmd.Flags().GetFloat64("min-amount"); v > 0 {
		opts.MinAmount = decimal.NewFromFloat(v)
	}
	opts.CommitteeOnly, _ = cmd.Flags().GetString("committee")
	if v, _ := cmd.Flags().GetInt("workers"); v > 0 {
		opts.Workers = v
	}
	opts.ShowProgress = showProgress()

	analyzer := resolve.NewAnalyzer(tables, opts)
	results, err := analyzer.Analyze(ctx, records)
	if err != nil {
		if errors.Is(err, common.ErrNoLookupTables) {
			return fmt.Errorf("%w (run `reconcile mappings` first)", err)
		}
		return fmt.Errorf("unmatched analysis failed: %w", err)
	}

	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		if err := export.WriteUnmatched(config.ExpandPath(outPath), results); err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Wrote %d unmatched contributions to %s", len(results), outPath)))
		return nil
	}

	printUnmatched(results)
	return nil
}

func printUnmatched(results []resolve.Unmatched) {
	if len(results) == 0 {
		fmt.Println(cli.FormatSuccess("Every selected contribution has a matching receipt"))
		return
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("%d unmatched contributions", len(results))))
	header := cli.TableHeaderStyle.Render(fmt.Sprintf(
		"%-30s %-30s %-12s %12s  %s",
		"DONOR", "RECIPIENT", "DATE", "AMOUNT", "REASON"))
	fmt.Println(header)

	for _, result := range results {
		rec := result.Contribution
		fmt.Println(cli.TableCellStyle.Render(fmt.Sprintf(
			"%-30.30s %-30.30s %-12s %12s  %s",
			rec.CommitteeName,
			rec.CounterpartyName(),
			rec.TransactionDate,
			rec.Amount.StringFixed(2),
			result.Reason)))
	}
}
