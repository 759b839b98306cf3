package resolve

import (
	"context"
	"testing"

	"github.com/openelexva/reconcile/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contribution(amount float64, date string) *model.TransactionRecord {
	return &model.TransactionRecord{
		Schedule:                model.ScheduleD,
		CommitteeCode:           "PAC-15-00999",
		CommitteeName:           "Good Government PAC",
		CommitteeNameNormalized: "GOOD GOVERNMENT PAC",
		CommitteeType:           "Political Action Committee",
		EntityName:              "Doe, Jane M.",
		EntityNameNormalized:    "Doe, Jane M.",
		Purpose:                 "Campaign contribution",
		Amount:                  decimal.NewFromFloat(amount),
		TransactionDate:         date,
		ReportYear:              2021,
	}
}

func receipt(code string, amount float64, date string) *model.TransactionRecord {
	return &model.TransactionRecord{
		Schedule:             model.ScheduleA,
		CommitteeCode:        code,
		CommitteeType:        "Candidate Campaign Committee",
		EntityName:           "Good Government PAC",
		EntityNameNormalized: "GOOD GOVERNMENT PAC",
		Amount:               decimal.NewFromFloat(amount),
		TransactionDate:      date,
		ReportYear:           2021,
	}
}

func analyzer(t *testing.T) *Analyzer {
	t.Helper()
	opts := DefaultOptions()
	opts.Workers = 2
	return NewAnalyzer(NewTables(testIdentities(), testVariations()), opts)
}

func TestAnalyzeMatchedContributionIsSilent(t *testing.T) {
	records := []*model.TransactionRecord{
		contribution(5000, "2021-05-01"),
		receipt("CC-22-00450", 5000, "2021-05-10"),
	}

	got, err := analyzer(t).Analyze(context.Background(), records)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAnalyzeAmountWithinTolerance(t *testing.T) {
	records := []*model.TransactionRecord{
		contribution(5000.00, "2021-05-01"),
		receipt("CC-22-00450", 5000.01, "2021-05-10"),
	}

	got, err := analyzer(t).Analyze(context.Background(), records)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAnalyzeAmountMismatch(t *testing.T) {
	records := []*model.TransactionRecord{
		contribution(5000.00, "2021-05-01"),
		receipt("CC-22-00450", 5000.02, "2021-05-10"),
	}

	got, err := analyzer(t).Analyze(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ReasonAmountOrDateMismatch, got[0].Reason)
	assert.Equal(t, "CC-22-00450", got[0].MatchedCommittee.CommitteeCode)
}

func TestAnalyzeDateWindow(t *testing.T) {
	tests := []struct {
		name        string
		receiptDate string
		matched     bool
	}{
		{name: "receipt sixty days after", receiptDate: "2021-06-30", matched: true},
		{name: "receipt sixty one days after", receiptDate: "2021-07-01", matched: false},
		{name: "receipt thirty days before", receiptDate: "2021-04-01", matched: true},
		{name: "receipt thirty one days before", receiptDate: "2021-03-31", matched: false},
		{name: "unparseable receipt date passes", receiptDate: "unknown", matched: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []*model.TransactionRecord{
				contribution(5000, "2021-05-01"),
				receipt("CC-22-00450", 5000, tt.receiptDate),
			}

			got, err := analyzer(t).Analyze(context.Background(), records)
			require.NoError(t, err)
			if tt.matched {
				assert.Empty(t, got)
			} else {
				assert.Len(t, got, 1)
			}
		})
	}
}

func TestAnalyzeSiblingCommitteeRetry(t *testing.T) {
	// The 2021 filing resolves to CC-22-00450, but only the candidate's
	// older committee holds the receipt.
	records := []*model.TransactionRecord{
		contribution(5000, "2021-05-01"),
		receipt("CC-22-00450", 9999, "2021-05-10"),
		receipt("CC-18-00100", 5000, "2021-05-10"),
	}

	got, err := analyzer(t).Analyze(context.Background(), records)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAnalyzeNoReceiptsForCommittee(t *testing.T) {
	records := []*model.TransactionRecord{
		contribution(5000, "2021-05-01"),
	}

	got, err := analyzer(t).Analyze(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ReasonNoReceiptForCommittee, got[0].Reason)
}

func TestAnalyzeUnknownRecipient(t *testing.T) {
	c := contribution(5000, "2021-05-01")
	c.EntityName = "Mystery Fund"
	c.EntityNameNormalized = "MYSTERY FUND"

	got, err := analyzer(t).Analyze(context.Background(), []*model.TransactionRecord{c})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ReasonNoLookupEntry, got[0].Reason)
	assert.Nil(t, got[0].MatchedCommittee)
}

func TestAnalyzeSelectionFilters(t *testing.T) {
	small := contribution(500, "2021-05-01")

	wrongPurpose := contribution(5000, "2021-05-01")
	wrongPurpose.Purpose = "Office supplies"

	wrongType := contribution(5000, "2021-05-01")
	wrongType.CommitteeType = "Candidate Campaign Committee"

	tooOld := contribution(5000, "2017-05-01")
	tooOld.ReportYear = 2017

	got, err := analyzer(t).Analyze(context.Background(),
		[]*model.TransactionRecord{small, wrongPurpose, wrongType, tooOld})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAnalyzeCommitteeOnlyFilter(t *testing.T) {
	opts := DefaultOptions()
	opts.Workers = 1
	opts.CommitteeOnly = "dominion"
	a := NewAnalyzer(NewTables(testIdentities(), testVariations()), opts)

	got, err := a.Analyze(context.Background(), []*model.TransactionRecord{
		contribution(5000, "2021-05-01"),
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAnalyzeNoTables(t *testing.T) {
	a := NewAnalyzer(NewTables(nil, nil), DefaultOptions())
	_, err := a.Analyze(context.Background(), nil)
	assert.Error(t, err)
}
