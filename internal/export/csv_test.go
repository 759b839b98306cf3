package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openelexva/reconcile/internal/model"
	"github.com/openelexva/reconcile/internal/resolve"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteRecords(t *testing.T) {
	onTime := true
	record := &model.TransactionRecord{
		ReportID:             "R100",
		CommitteeCode:        "CC-24-00123",
		EntityName:           "Dominion Energy",
		EntityNameNormalized: "DOMINION",
		Amount:               decimal.NewFromFloat(1250.50),
		Schedule:             model.ScheduleA,
		OnTime:               &onTime,
	}

	path := filepath.Join(t.TempDir(), "records.csv")
	require.NoError(t, WriteRecords(path, []*model.TransactionRecord{record}))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, recordColumns, rows[0])

	byColumn := make(map[string]string, len(recordColumns))
	for i, col := range rows[0] {
		byColumn[col] = rows[1][i]
	}
	assert.Equal(t, "R100", byColumn["report_id"])
	assert.Equal(t, "1250.50", byColumn["amount"])
	assert.Equal(t, "true", byColumn["on_time"])
	assert.Equal(t, "NULL", byColumn["entity_is_individual"])
}

func TestWriteUnmatched(t *testing.T) {
	results := []resolve.Unmatched{
		{
			Contribution: &model.TransactionRecord{
				CommitteeName:   "Good Government PAC",
				EntityName:      "Friends of Jane Doe",
				TransactionDate: "2024-06-01",
				Amount:          decimal.NewFromInt(5000),
				Purpose:         "Contribution",
			},
			MatchedCommittee: &model.CommitteeIdentity{
				CommitteeCode:           "CC-24-00123",
				CandidateNameNormalized: "JANE DOE",
			},
			Reason: resolve.ReasonNoReceiptForCommittee,
		},
	}

	path := filepath.Join(t.TempDir(), "unmatched.csv")
	require.NoError(t, WriteUnmatched(path, results))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "Good Government PAC", rows[1][0])
	assert.Equal(t, "CC-24-00123", rows[1][2])
	assert.Equal(t, resolve.ReasonNoReceiptForCommittee, rows[1][7])
}
