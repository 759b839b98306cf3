package resolve

import (
	"testing"

	"github.com/openelexva/reconcile/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIdentities() []model.CommitteeIdentity {
	return []model.CommitteeIdentity{
		{
			CommitteeCode:           "CC-18-00100",
			CommitteeNameNormalized: "FRIENDS OF JANE DOE",
			CandidateNameNormalized: "JANE DOE",
		},
		{
			CommitteeCode:           "CC-22-00450",
			CommitteeNameNormalized: "JANE DOE FOR SENATE",
			CandidateNameNormalized: "JANE DOE",
		},
		{
			CommitteeCode:           "PAC-15-00999",
			CommitteeNameNormalized: "GOOD GOVERNMENT PAC",
			CandidateNameNormalized: model.NotACandidate,
		},
	}
}

func testVariations() []model.NameVariation {
	return []model.NameVariation{
		{Variation: "Doe, Jane M.", Normalized: "JANE DOE"},
		{Variation: "Friends of Jane", Normalized: "FRIENDS OF JANE DOE"},
	}
}

func TestResolveCommittee(t *testing.T) {
	resolver := NewResolver(NewTables(testIdentities(), testVariations()))

	tests := []struct {
		name         string
		recipient    string
		filingYear   int
		expectedCode string
	}{
		{
			name:         "variation lookup then year proximity",
			recipient:    "Doe, Jane M.",
			filingYear:   2021,
			expectedCode: "CC-22-00450",
		},
		{
			name:         "earlier filing year picks earlier committee",
			recipient:    "Doe, Jane M.",
			filingYear:   2019,
			expectedCode: "CC-18-00100",
		},
		{
			name:         "direct committee name lookup",
			recipient:    "GOOD GOVERNMENT PAC",
			filingYear:   2020,
			expectedCode: "PAC-15-00999",
		},
		{
			name:         "case insensitive direct candidate lookup",
			recipient:    "jane doe",
			filingYear:   2022,
			expectedCode: "CC-22-00450",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.ResolveCommittee(tt.recipient, tt.filingYear)
			require.NotNil(t, got)
			assert.Equal(t, tt.expectedCode, got.CommitteeCode)
		})
	}
}

func TestResolveCommitteeMisses(t *testing.T) {
	resolver := NewResolver(NewTables(testIdentities(), testVariations()))

	assert.Nil(t, resolver.ResolveCommittee("", 2020))
	assert.Nil(t, resolver.ResolveCommittee("TOTALLY UNKNOWN ENTITY", 2020))
	// The non-candidate marker never resolves through the name index.
	assert.Nil(t, resolver.ResolveCommittee(model.NotACandidate, 2020))
}

func TestCommitteeCodeYear(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
		ok       bool
	}{
		{name: "two thousands", code: "CC-18-00100", expected: 2018, ok: true},
		{name: "nineteen hundreds", code: "CC-98-00004", expected: 1998, ok: true},
		{name: "boundary at fifty", code: "CC-50-00001", expected: 1950, ok: true},
		{name: "pac code has no year", code: "PAC-15-00999", ok: false},
		{name: "malformed", code: "CC-ABC-1", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, ok := committeeCodeYear(tt.code)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, year)
			}
		})
	}
}
