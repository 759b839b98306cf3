package main

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/openelexva/reconcile/internal/cli"
	"github.com/openelexva/reconcile/internal/common"
	"github.com/openelexva/reconcile/internal/config"
	"github.com/openelexva/reconcile/internal/model"
	"github.com/openelexva/reconcile/internal/storage"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the stored canonical set",
		Long: `Print per-schedule record counts and totals for the stored canonical
set, optionally restricted to one schedule, committee or year range.`,
		RunE: runStats,
	}

	cmd.Flags().String("schedule", "", "Restrict to one schedule (e.g. ScheduleA)")
	cmd.Flags().String("committee", "", "Restrict to one committee code")
	cmd.Flags().Int("min-year", 0, "Restrict to report years at or after this year")

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.LoadPipeline()

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	filter := storage.TransactionFilter{}
	if v, _ := cmd.Flags().GetString("schedule"); v != "" {
		filter.Schedule = model.ScheduleType(v)
	}
	filter.CommitteeCode, _ = cmd.Flags().GetString("committee")
	filter.MinReportYear, _ = cmd.Flags().GetInt("min-year")

	records, err := store.GetTransactionsFiltered(ctx, filter)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return common.ErrNoRecords
	}

	counts := make(map[model.ScheduleType]int)
	totals := make(map[model.ScheduleType]decimal.Decimal)
	for i := range records {
		schedule := records[i].Schedule
		counts[schedule]++
		totals[schedule] = totals[schedule].Add(records[i].Amount)
	}

	schedules := make([]string, 0, len(counts))
	for schedule := range counts {
		schedules = append(schedules, string(schedule))
	}
	sort.Strings(schedules)

	body := ""
	for _, schedule := range schedules {
		s := model.ScheduleType(schedule)
		body += fmt.Sprintf("%-10s %8d rows  $%s\n", schedule, counts[s], totals[s].StringFixed(2))
	}
	body += fmt.Sprintf("%-10s %8d rows", "total", len(records))

	fmt.Println(cli.RenderBox("Canonical set", body))
	return nil
}
