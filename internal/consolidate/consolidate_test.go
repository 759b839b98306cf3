package consolidate

import (
	"context"
	"testing"

	"github.com/openelexva/reconcile/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{name: "identical", a: "SMITH JOHN", b: "SMITH JOHN", expected: 100},
		{name: "both empty", a: "", b: "", expected: 100},
		{name: "single edit", a: "SMITH JOHN", b: "SMYTH JOHN", expected: 90},
		{name: "disjoint", a: "AAAA", b: "BBBB", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Ratio(tt.a, tt.b))
		})
	}
}

func TestNamesMatch(t *testing.T) {
	tests := []struct {
		name     string
		n1       string
		n2       string
		expected bool
	}{
		{name: "case insensitive exact", n1: "smith john", n2: "SMITH JOHN", expected: true},
		{name: "near miss above threshold", n1: "SMITH JOHNATHAN", n2: "SMITH JONATHAN", expected: true},
		{name: "different names", n1: "SMITH JOHN", n2: "WILLIAMS PAT", expected: false},
		{name: "blank matches only blank", n1: "", n2: "SMITH JOHN", expected: false},
		{name: "both blank", n1: "", n2: "", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, namesMatch(tt.n1, tt.n2, DefaultFuzzyThreshold))
		})
	}
}

func record(amendment int, reportID string) *model.TransactionRecord {
	return &model.TransactionRecord{
		ReportID:             reportID,
		CommitteeCode:        "CC-24-00123",
		EntityName:           "John Smith",
		EntityNameNormalized: "JOHN SMITH",
		TransactionDate:      "2024-03-10",
		Amount:               decimal.NewFromFloat(250.00),
		Schedule:             model.ScheduleA,
		AmendmentCount:       amendment,
	}
}

func TestConsolidateKeepsLatestAmendment(t *testing.T) {
	records := []*model.TransactionRecord{
		record(0, "R1"),
		record(1, "R2"),
		record(2, "R3"),
	}

	got, err := New(0).Consolidate(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].AmendmentCount)
	assert.Equal(t, "R3", got[0].ReportID)
}

func TestConsolidateIsIdempotent(t *testing.T) {
	records := []*model.TransactionRecord{
		record(0, "R1"),
		record(3, "R2"),
		record(1, "R3"),
	}

	c := New(0)
	first, err := c.Consolidate(context.Background(), records)
	require.NoError(t, err)
	second, err := c.Consolidate(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestConsolidateSeparatesDifferentEntities(t *testing.T) {
	a := record(0, "R1")
	b := record(1, "R2")
	b.EntityName = "Acme Corp"
	b.EntityNameNormalized = "ACME CORP"

	got, err := New(0).Consolidate(context.Background(), []*model.TransactionRecord{a, b})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestConsolidateSeparatesDistantDates(t *testing.T) {
	a := record(0, "R1")
	b := record(2, "R2")
	a.TransactionDate = "2024-03-01"
	b.TransactionDate = "2024-03-29"
	c := record(1, "R3")
	c.TransactionDate = "2024-05-15"

	got, err := New(0).Consolidate(context.Background(), []*model.TransactionRecord{a, b, c})
	require.NoError(t, err)
	require.Len(t, got, 2)

	amendments := []int{got[0].AmendmentCount, got[1].AmendmentCount}
	assert.ElementsMatch(t, []int{2, 1}, amendments)
}

func TestConsolidateUnparseableDatesNeverCluster(t *testing.T) {
	a := record(0, "R1")
	b := record(1, "R2")
	a.TransactionDate = "unknown"
	b.TransactionDate = "unknown"

	got, err := New(0).Consolidate(context.Background(), []*model.TransactionRecord{a, b})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestConsolidateDropsExactDuplicates(t *testing.T) {
	got, err := New(0).Consolidate(context.Background(), []*model.TransactionRecord{
		record(1, "R1"),
		record(1, "R1"),
	})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestConsolidateStableOrder(t *testing.T) {
	a := record(0, "R1")
	a.CommitteeCode = "CC-24-00999"
	b := record(0, "R2")
	b.CommitteeCode = "CC-24-00001"

	got, err := New(0).Consolidate(context.Background(), []*model.TransactionRecord{a, b})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "CC-24-00001", got[0].CommitteeCode)
}

func TestConsolidateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(0).Consolidate(ctx, []*model.TransactionRecord{record(0, "R1"), record(1, "R2")})
	assert.Error(t, err)
}
