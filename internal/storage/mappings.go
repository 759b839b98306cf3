package storage

import (
	"context"
	"fmt"

	"github.com/openelexva/reconcile/internal/model"
)

// SaveCommitteeMappings replaces the stored committee reference table.
func (s *SQLiteStorage) SaveCommitteeMappings(ctx context.Context, identities []model.CommitteeIdentity) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for i := range identities {
		if err := validateIdentity(identities[i]); err != nil {
			return fmt.Errorf("committee mapping at index %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM committee_mappings"); err != nil {
		return fmt.Errorf("failed to clear committee mappings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO committee_mappings (committee_code, committee_name_normalized, candidate_name_normalized)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, identity := range identities {
		if _, err := stmt.ExecContext(ctx,
			identity.CommitteeCode,
			identity.CommitteeNameNormalized,
			identity.CandidateNameNormalized,
		); err != nil {
			return fmt.Errorf("failed to insert committee mapping %s: %w", identity.CommitteeCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit committee mappings: %w", err)
	}
	return nil
}

// GetCommitteeMappings loads the committee reference table ordered by
// committee code.
func (s *SQLiteStorage) GetCommitteeMappings(ctx context.Context) ([]model.CommitteeIdentity, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT committee_code, committee_name_normalized, candidate_name_normalized
		FROM committee_mappings
		ORDER BY committee_code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query committee mappings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var identities []model.CommitteeIdentity
	for rows.Next() {
		var identity model.CommitteeIdentity
		if err := rows.Scan(
			&identity.CommitteeCode,
			&identity.CommitteeNameNormalized,
			&identity.CandidateNameNormalized,
		); err != nil {
			return nil, fmt.Errorf("failed to scan committee mapping: %w", err)
		}
		identities = append(identities, identity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read committee mappings: %w", err)
	}
	return identities, nil
}

// SaveNameVariations replaces the stored name variation table.
func (s *SQLiteStorage) SaveNameVariations(ctx context.Context, variations []model.NameVariation) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM name_variations"); err != nil {
		return fmt.Errorf("failed to clear name variations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO name_variations (name_variation, normalized_name)
		VALUES (?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, variation := range variations {
		if _, err := stmt.ExecContext(ctx, variation.Variation, variation.Normalized); err != nil {
			return fmt.Errorf("failed to insert name variation %q: %w", variation.Variation, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit name variations: %w", err)
	}
	return nil
}

// GetNameVariations loads the name variation table ordered by variation.
func (s *SQLiteStorage) GetNameVariations(ctx context.Context) ([]model.NameVariation, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name_variation, normalized_name
		FROM name_variations
		ORDER BY name_variation
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query name variations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var variations []model.NameVariation
	for rows.Next() {
		var variation model.NameVariation
		if err := rows.Scan(&variation.Variation, &variation.Normalized); err != nil {
			return nil, fmt.Errorf("failed to scan name variation: %w", err)
		}
		variations = append(variations, variation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read name variations: %w", err)
	}
	return variations, nil
}
