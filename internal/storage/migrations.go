package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the schema version after all migrations run.
const ExpectedSchemaVersion = 2

// Migration represents a single database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			if _, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS transactions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					hash TEXT NOT NULL UNIQUE,
					report_id TEXT,
					committee_code TEXT,
					committee_name TEXT,
					committee_name_normalized TEXT,
					candidate_name TEXT,
					candidate_name_normalized TEXT,
					committee_type TEXT,
					zip_code TEXT,
					report_year INTEGER,
					report_date TEXT,
					submitted_date TEXT,
					due_date TEXT,
					party TEXT,
					office_sought TEXT,
					office_sought_normal TEXT,
					district TEXT,
					district_normal TEXT,
					level TEXT,
					candidate_city TEXT,
					election_cycle TEXT,
					election_cycle_start_date TEXT,
					election_cycle_end_date TEXT,
					primary_or_general TEXT,
					schedule_type TEXT,
					transaction_type TEXT,
					transaction_date TEXT,
					amount TEXT,
					total_to_date TEXT,
					purpose TEXT,
					entity_name TEXT,
					entity_name_normalized TEXT,
					entity_first_name TEXT,
					entity_last_name TEXT,
					entity_address TEXT,
					entity_city TEXT,
					entity_state TEXT,
					entity_zip TEXT,
					entity_employer TEXT,
					entity_occupation TEXT,
					entity_is_individual INTEGER,
					amendment_count INTEGER DEFAULT 0,
					data_source TEXT,
					folder_name TEXT,
					on_time INTEGER
				)
			`); err != nil {
				return fmt.Errorf("failed to create transactions table: %w", err)
			}

			if _, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS committee_mappings (
					committee_code TEXT PRIMARY KEY,
					committee_name_normalized TEXT NOT NULL,
					candidate_name_normalized TEXT NOT NULL
				)
			`); err != nil {
				return fmt.Errorf("failed to create committee_mappings table: %w", err)
			}

			if _, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS name_variations (
					name_variation TEXT PRIMARY KEY,
					normalized_name TEXT NOT NULL
				)
			`); err != nil {
				return fmt.Errorf("failed to create name_variations table: %w", err)
			}

			return nil
		},
	},
	{
		Version:     2,
		Description: "Add lookup indexes for analysis queries",
		Up: func(tx *sql.Tx) error {
			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_transactions_committee_code ON transactions(committee_code)",
				"CREATE INDEX IF NOT EXISTS idx_transactions_schedule_type ON transactions(schedule_type)",
				"CREATE INDEX IF NOT EXISTS idx_transactions_transaction_date ON transactions(transaction_date)",
				"CREATE INDEX IF NOT EXISTS idx_transactions_entity_name_normalized ON transactions(entity_name_normalized)",
				"CREATE INDEX IF NOT EXISTS idx_committee_mappings_candidate ON committee_mappings(candidate_name_normalized)",
			}
			for _, idx := range indexes {
				if _, err := tx.Exec(idx); err != nil {
					return fmt.Errorf("failed to create index: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
