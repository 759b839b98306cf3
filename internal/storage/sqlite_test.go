package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openelexva/reconcile/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testRecord(reportID string) model.TransactionRecord {
	onTime := true
	return model.TransactionRecord{
		ReportID:                reportID,
		CommitteeCode:           "CC-24-00123",
		CommitteeName:           "Friends of Jane Doe",
		CommitteeNameNormalized: "FRIENDS OF JANE DOE",
		CandidateName:           "Jane Doe",
		CandidateNameNormalized: "JANE DOE",
		CommitteeType:           "Candidate Campaign Committee",
		ReportYear:              2024,
		ReportDate:              "2024-07-10",
		OfficeSought:            "House of Delegates",
		OfficeSoughtNormal:      "delegate",
		District:                "42nd District",
		DistrictNormal:          "42",
		Level:                   model.LevelState,
		ElectionCycle:           "11/2024",
		PrimaryOrGeneral:        "general",
		Schedule:                model.ScheduleA,
		TransactionType:         "ScheduleA",
		TransactionDate:         "2024-06-30",
		Amount:                  decimal.NewFromInt(1250),
		TotalToDate:             decimal.NewFromInt(1250),
		EntityName:              "Dominion Energy",
		EntityNameNormalized:    "DOMINION",
		DataSource:              model.SourceModern,
		FolderName:              "2024_07",
		OnTime:                  &onTime,
	}
}

func TestNewSQLiteStorageRequiresPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
}

func TestSaveTransactionsRoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	record := testRecord("R100")
	inserted, err := store.SaveTransactions(ctx, []model.TransactionRecord{record})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	loaded, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, record.ReportID, got.ReportID)
	assert.Equal(t, record.CommitteeCode, got.CommitteeCode)
	assert.Equal(t, record.OfficeSoughtNormal, got.OfficeSoughtNormal)
	assert.Equal(t, record.DistrictNormal, got.DistrictNormal)
	assert.Equal(t, model.LevelState, got.Level)
	assert.Equal(t, model.ScheduleA, got.Schedule)
	assert.True(t, record.Amount.Equal(got.Amount))
	require.NotNil(t, got.OnTime)
	assert.True(t, *got.OnTime)
	assert.Nil(t, got.EntityIsIndividual)
	assert.Equal(t, record.Hash(), got.Hash())
}

func TestSaveTransactionsSkipsDuplicateHashes(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	record := testRecord("R100")
	inserted, err := store.SaveTransactions(ctx, []model.TransactionRecord{record, record})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	// Second save of the same record is a no-op
	inserted, err = store.SaveTransactions(ctx, []model.TransactionRecord{record})
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	count, err := store.CountTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReplaceTransactions(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.SaveTransactions(ctx, []model.TransactionRecord{testRecord("R100"), testRecord("R101")})
	require.NoError(t, err)

	replacement := testRecord("R200")
	inserted, err := store.ReplaceTransactions(ctx, []model.TransactionRecord{replacement})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	loaded, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "R200", loaded[0].ReportID)
}

func TestGetTransactionsFiltered(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	receipt := testRecord("R100")
	disbursement := testRecord("R101")
	disbursement.Schedule = model.ScheduleD
	disbursement.CommitteeCode = "PAC-15-00999"
	old := testRecord("R102")
	old.ReportYear = 2016
	old.FolderName = "2016_07"

	_, err := store.SaveTransactions(ctx, []model.TransactionRecord{receipt, disbursement, old})
	require.NoError(t, err)

	bySchedule, err := store.GetTransactionsFiltered(ctx, TransactionFilter{Schedule: model.ScheduleD})
	require.NoError(t, err)
	require.Len(t, bySchedule, 1)
	assert.Equal(t, "R101", bySchedule[0].ReportID)

	byCommittee, err := store.GetTransactionsFiltered(ctx, TransactionFilter{CommitteeCode: "CC-24-00123"})
	require.NoError(t, err)
	assert.Len(t, byCommittee, 2)

	byYear, err := store.GetTransactionsFiltered(ctx, TransactionFilter{MinReportYear: 2018})
	require.NoError(t, err)
	assert.Len(t, byYear, 2)

	all, err := store.GetTransactionsFiltered(ctx, TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSaveTransactionsPreservesNilOnTime(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	record := testRecord("R100")
	record.OnTime = nil
	record.TransactionDate = "not-a-date"

	_, err := store.SaveTransactions(ctx, []model.TransactionRecord{record})
	require.NoError(t, err)

	loaded, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Nil(t, loaded[0].OnTime)
}

func TestCommitteeMappingsRoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	identities := []model.CommitteeIdentity{
		{CommitteeCode: "CC-24-00123", CommitteeNameNormalized: "FRIENDS OF JANE DOE", CandidateNameNormalized: "JANE DOE"},
		{CommitteeCode: "PAC-15-00999", CommitteeNameNormalized: "GOOD GOVERNMENT PAC", CandidateNameNormalized: model.NotACandidate},
	}
	require.NoError(t, store.SaveCommitteeMappings(ctx, identities))

	loaded, err := store.GetCommitteeMappings(ctx)
	require.NoError(t, err)
	assert.Equal(t, identities, loaded)

	// A second save replaces rather than appends
	require.NoError(t, store.SaveCommitteeMappings(ctx, identities[:1]))
	loaded, err = store.GetCommitteeMappings(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestSaveCommitteeMappingsValidates(t *testing.T) {
	store := newTestStorage(t)

	err := store.SaveCommitteeMappings(context.Background(), []model.CommitteeIdentity{
		{CommitteeCode: "", CommitteeNameNormalized: "SOMEBODY"},
	})
	assert.ErrorIs(t, err, ErrInvalidMapping)
}

func TestNameVariationsRoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	variations := []model.NameVariation{
		{Variation: "dominion energy services", Normalized: "DOMINION"},
		{Variation: "friends of jane doe", Normalized: "FRIENDS OF JANE DOE"},
	}
	require.NoError(t, store.SaveNameVariations(ctx, variations))

	loaded, err := store.GetNameVariations(ctx)
	require.NoError(t, err)
	assert.Equal(t, variations, loaded)
}

func TestValidateContextRejectsNil(t *testing.T) {
	store := newTestStorage(t)

	//nolint:staticcheck // exercising the nil-context guard
	_, err := store.GetTransactions(nil)
	assert.ErrorIs(t, err, ErrNilContext)
}
