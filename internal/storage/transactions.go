package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openelexva/reconcile/internal/model"
)

const transactionColumns = `
	hash, report_id, committee_code, committee_name, committee_name_normalized,
	candidate_name, candidate_name_normalized, committee_type, zip_code,
	report_year, report_date, submitted_date, due_date, party,
	office_sought, office_sought_normal, district, district_normal, level, candidate_city,
	election_cycle, election_cycle_start_date, election_cycle_end_date, primary_or_general,
	schedule_type, transaction_type, transaction_date, amount, total_to_date, purpose,
	entity_name, entity_name_normalized, entity_first_name, entity_last_name,
	entity_address, entity_city, entity_state, entity_zip, entity_employer, entity_occupation,
	entity_is_individual, amendment_count, data_source, folder_name, on_time`

// SaveTransactions inserts records, skipping any whose hash is already
// stored. It returns the number of newly inserted rows.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, records []model.TransactionRecord) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateRecords(records); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted, err := saveTransactionsTx(ctx, tx, records)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transactions: %w", err)
	}
	return inserted, nil
}

// ReplaceTransactions clears the transactions table and inserts records
// in a single database transaction.
func (s *SQLiteStorage) ReplaceTransactions(ctx context.Context, records []model.TransactionRecord) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateRecords(records); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions"); err != nil {
		return 0, fmt.Errorf("failed to clear transactions: %w", err)
	}

	inserted, err := saveTransactionsTx(ctx, tx, records)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transactions: %w", err)
	}
	return inserted, nil
}

func saveTransactionsTx(ctx context.Context, tx *sql.Tx, records []model.TransactionRecord) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for i := range records {
		r := &records[i]
		result, execErr := stmt.ExecContext(ctx,
			r.Hash(), r.ReportID, r.CommitteeCode, r.CommitteeName, r.CommitteeNameNormalized,
			r.CandidateName, r.CandidateNameNormalized, r.CommitteeType, r.ZipCode,
			r.ReportYear, r.ReportDate, r.SubmittedDate, r.DueDate, r.Party,
			r.OfficeSought, r.OfficeSoughtNormal, r.District, r.DistrictNormal, string(r.Level), r.CandidateCity,
			r.ElectionCycle, r.ElectionCycleStartDate, r.ElectionCycleEndDate, r.PrimaryOrGeneral,
			string(r.Schedule), r.TransactionType, r.TransactionDate,
			r.Amount.StringFixed(2), r.TotalToDate.StringFixed(2), r.Purpose,
			r.EntityName, r.EntityNameNormalized, r.EntityFirstName, r.EntityLastName,
			r.EntityAddress, r.EntityCity, r.EntityState, r.EntityZip, r.EntityEmployer, r.EntityOccupation,
			nullableBool(r.EntityIsIndividual), r.AmendmentCount, string(r.DataSource), r.FolderName,
			nullableBool(r.OnTime),
		)
		if execErr != nil {
			return 0, fmt.Errorf("failed to insert transaction %s: %w", r.ReportID, execErr)
		}
		affected, affErr := result.RowsAffected()
		if affErr != nil {
			return 0, fmt.Errorf("failed to read insert result: %w", affErr)
		}
		inserted += int(affected)
	}
	return inserted, nil
}

// GetTransactions loads every stored record ordered by committee code,
// entity name and amount.
func (s *SQLiteStorage) GetTransactions(ctx context.Context) ([]model.TransactionRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		ORDER BY committee_code, entity_name_normalized, amount
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.TransactionRecord
	for rows.Next() {
		record, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return records, nil
}

// TransactionFilter narrows a read of the canonical set. Zero values
// leave the corresponding column unconstrained.
type TransactionFilter struct {
	Schedule      model.ScheduleType
	CommitteeCode string
	MinReportYear int
}

// GetTransactionsFiltered loads the stored records matching the filter,
// in the same order as GetTransactions.
func (s *SQLiteStorage) GetTransactionsFiltered(ctx context.Context, filter TransactionFilter) ([]model.TransactionRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	args := make([]any, 0, 3)
	if filter.Schedule != "" {
		query += " AND schedule_type = ?"
		args = append(args, string(filter.Schedule))
	}
	if filter.CommitteeCode != "" {
		query += " AND committee_code = ?"
		args = append(args, filter.CommitteeCode)
	}
	if filter.MinReportYear > 0 {
		query += " AND report_year >= ?"
		args = append(args, filter.MinReportYear)
	}
	query += " ORDER BY committee_code, entity_name_normalized, amount"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.TransactionRecord
	for rows.Next() {
		record, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return records, nil
}

// CountTransactions returns the number of stored records.
func (s *SQLiteStorage) CountTransactions(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func scanTransaction(rows *sql.Rows) (model.TransactionRecord, error) {
	var (
		r                  model.TransactionRecord
		hash               string
		level              string
		schedule           string
		dataSource         string
		amount             string
		totalToDate        string
		entityIsIndividual sql.NullBool
		onTime             sql.NullBool
	)

	err := rows.Scan(
		&hash, &r.ReportID, &r.CommitteeCode, &r.CommitteeName, &r.CommitteeNameNormalized,
		&r.CandidateName, &r.CandidateNameNormalized, &r.CommitteeType, &r.ZipCode,
		&r.ReportYear, &r.ReportDate, &r.SubmittedDate, &r.DueDate, &r.Party,
		&r.OfficeSought, &r.OfficeSoughtNormal, &r.District, &r.DistrictNormal, &level, &r.CandidateCity,
		&r.ElectionCycle, &r.ElectionCycleStartDate, &r.ElectionCycleEndDate, &r.PrimaryOrGeneral,
		&schedule, &r.TransactionType, &r.TransactionDate, &amount, &totalToDate, &r.Purpose,
		&r.EntityName, &r.EntityNameNormalized, &r.EntityFirstName, &r.EntityLastName,
		&r.EntityAddress, &r.EntityCity, &r.EntityState, &r.EntityZip, &r.EntityEmployer, &r.EntityOccupation,
		&entityIsIndividual, &r.AmendmentCount, &dataSource, &r.FolderName, &onTime,
	)
	if err != nil {
		return r, fmt.Errorf("failed to scan transaction: %w", err)
	}

	r.Level = model.GovernmentLevel(level)
	r.Schedule = model.ScheduleType(schedule)
	r.DataSource = model.DataSource(dataSource)
	r.EntityIsIndividual = boolPtr(entityIsIndividual)
	r.OnTime = boolPtr(onTime)

	r.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return r, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
	}
	r.TotalToDate, err = decimal.NewFromString(totalToDate)
	if err != nil {
		return r, fmt.Errorf("failed to parse stored total %q: %w", totalToDate, err)
	}
	return r, nil
}

func nullableBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}

func boolPtr(b sql.NullBool) *bool {
	if !b.Valid {
		return nil
	}
	v := b.Bool
	return &v
}
