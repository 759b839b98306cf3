package dedupe

import (
	"context"
	"testing"

	"github.com/openelexva/reconcile/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record() *model.TransactionRecord {
	onTime := true
	return &model.TransactionRecord{
		ReportID:             "R100",
		CommitteeCode:        "CC-24-00123",
		CandidateName:        "Jane Doe",
		EntityName:           "John Smith",
		EntityNameNormalized: "JOHN SMITH",
		TransactionDate:      "2024-03-10",
		ReportDate:           "2024-04-15",
		Amount:               decimal.NewFromFloat(250.00),
		Schedule:             model.ScheduleA,
		FolderName:           "2024_03",
		OnTime:               &onTime,
	}
}

func TestSuppressExactDuplicates(t *testing.T) {
	got, err := Suppress(context.Background(), []*model.TransactionRecord{record(), record(), record()})
	require.NoError(t, err)
	assert.Len(t, got.Records, 1)
	assert.Equal(t, 2, got.ExactDuplicates)
	assert.Equal(t, 0, got.NearDuplicates)
}

func TestSuppressNearDuplicateFlexibleFields(t *testing.T) {
	a := record()
	b := record()
	b.ReportID = "R200"
	b.FolderName = "2024_04"
	late := false
	b.OnTime = &late
	b.ReportDate = "2024-05-20"

	got, err := Suppress(context.Background(), []*model.TransactionRecord{a, b})
	require.NoError(t, err)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "R100", got.Records[0].ReportID)
	assert.Equal(t, 1, got.NearDuplicates)
}

func TestSuppressCollapsesAtTwoSubstantiveDiffs(t *testing.T) {
	a := record()
	b := record()
	b.ReportID = "R200"
	b.Purpose = "Event tickets"
	b.EntityCity = "Norfolk"

	got, err := Suppress(context.Background(), []*model.TransactionRecord{a, b})
	require.NoError(t, err)
	assert.Len(t, got.Records, 1)
	assert.Equal(t, 1, got.NearDuplicates)
}

func TestSuppressKeepsThreeSubstantiveDiffs(t *testing.T) {
	a := record()
	b := record()
	b.ReportID = "R200"
	b.Purpose = "Event tickets"
	b.EntityCity = "Norfolk"
	b.EntityEmployer = "Acme Corp"

	got, err := Suppress(context.Background(), []*model.TransactionRecord{a, b})
	require.NoError(t, err)
	assert.Len(t, got.Records, 2)
	assert.Equal(t, 0, got.NearDuplicates)
}

func TestSuppressDistinctAmountsNeverCollapse(t *testing.T) {
	a := record()
	b := record()
	b.ReportID = "R200"
	b.Amount = decimal.NewFromFloat(250.02)

	got, err := Suppress(context.Background(), []*model.TransactionRecord{a, b})
	require.NoError(t, err)
	assert.Len(t, got.Records, 2)
	assert.Equal(t, 0, got.ExactDuplicates)
	assert.Equal(t, 0, got.NearDuplicates)
}

func TestSuppressDistinctEntitiesNeverCollapse(t *testing.T) {
	a := record()
	b := record()
	b.ReportID = "R200"
	b.EntityName = "Acme Corp"
	b.EntityNameNormalized = "ACME CORP"

	got, err := Suppress(context.Background(), []*model.TransactionRecord{a, b})
	require.NoError(t, err)
	assert.Len(t, got.Records, 2)
}

func TestSuppressEmptyInput(t *testing.T) {
	got, err := Suppress(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got.Records)
}

func TestSuppressCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := record()
	b := record()
	b.ReportID = "R200"
	_, err := Suppress(ctx, []*model.TransactionRecord{a, b})
	assert.Error(t, err)
}
