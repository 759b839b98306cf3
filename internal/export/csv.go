// Package export writes processed records and analysis results to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/openelexva/reconcile/internal/model"
	"github.com/openelexva/reconcile/internal/resolve"
)

// recordColumns fixes the CSV column order for processed records.
var recordColumns = []string{
	"report_id",
	"committee_code",
	"committee_name",
	"committee_name_normalized",
	"candidate_name",
	"candidate_name_normalized",
	"committee_type",
	"zip_code",
	"report_year",
	"report_date",
	"submitted_date",
	"due_date",
	"party",
	"office_sought",
	"office_sought_normal",
	"district",
	"district_normal",
	"level",
	"candidate_city",
	"election_cycle",
	"primary_or_general",
	"schedule_type",
	"transaction_type",
	"transaction_date",
	"amount",
	"total_to_date",
	"purpose",
	"entity_name",
	"entity_name_normalized",
	"entity_first_name",
	"entity_last_name",
	"entity_address",
	"entity_city",
	"entity_state",
	"entity_zip",
	"entity_employer",
	"entity_occupation",
	"entity_is_individual",
	"amendment_count",
	"data_source",
	"folder_name",
	"on_time",
}

// WriteRecords writes records to path as CSV with a header row.
func WriteRecords(path string, records []*model.TransactionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(recordColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(recordColumns))
	for _, rec := range records {
		fields := rec.Fields()
		for i, col := range recordColumns {
			row[i] = fields[col]
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// WriteUnmatched writes the unmatched contribution report to path.
func WriteUnmatched(path string, results []resolve.Unmatched) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	header := []string{
		"donor_committee",
		"recipient_name",
		"matched_committee_code",
		"matched_candidate",
		"transaction_date",
		"amount",
		"purpose",
		"reason",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, result := range results {
		rec := result.Contribution
		code := ""
		candidate := ""
		if result.MatchedCommittee != nil {
			code = result.MatchedCommittee.CommitteeCode
			candidate = result.MatchedCommittee.CandidateNameNormalized
		}
		row := []string{
			rec.CommitteeName,
			rec.CounterpartyName(),
			code,
			candidate,
			rec.TransactionDate,
			rec.Amount.StringFixed(2),
			rec.Purpose,
			result.Reason,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
