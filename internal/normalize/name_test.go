package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIndividual(t *testing.T) {
	n := New(nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "Jane Doe", want: "JANE DOE"},
		{name: "middle name dropped", input: "Jane M Doe", want: "JANE DOE"},
		{name: "middle initial dropped", input: "John Q. Smith", want: "JOHN SMITH"},
		{name: "title stripped", input: "Delegate Jane Doe", want: "JANE DOE"},
		{name: "honorable stripped", input: "The Honorable John Smith", want: "JOHN SMITH"},
		{name: "lt gov stripped", input: "Lt. Gov. Jane Doe", want: "JANE DOE"},
		{name: "generational suffix kept", input: "John Smith Jr", want: "JOHN SMITH JR"},
		{name: "suffix after middle", input: "John Andrew Smith III", want: "JOHN SMITH III"},
		{name: "hyphen treated as space", input: "Mary Jones-Smith", want: "MARY SMITH"},
		{name: "single token unchanged", input: "Cher", want: "CHER"},
		{name: "whitespace collapsed", input: "  Jane   Doe  ", want: "JANE DOE"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.input, KindIndividual))
		})
	}
}

func TestNormalizeOrganization(t *testing.T) {
	n := New(nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "punctuation stripped", input: "Smith & Co., Inc.", want: "SMITH CO"},
		{name: "trailing pac stripped", input: "Good Government PAC", want: "GOOD GOVERNMENT"},
		{name: "long form pac", input: "Teachers Political Action Committee", want: "TEACHERS"},
		{name: "association collapsed", input: "Virginia Education Association", want: "VA EDUCATION ASSOC"},
		{name: "assn collapsed", input: "Realtors Assn of Richmond", want: "REALTORS ASSOC OF RICHMOND"},
		{name: "highway collapsed", input: "Highway Contractors Inc", want: "HWY CONTRACTORS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.input, KindOrganization))
		})
	}
}

func TestNormalizeUnknownKind(t *testing.T) {
	n := New(nil)

	// Unknown kind gets the universal substitutions but keeps
	// punctuation and every name token.
	assert.Equal(t, "SMITH, JOHN A.", n.Normalize("Smith, John A.", KindUnknown))
	assert.Equal(t, "VA WINE PAC", n.Normalize("Virginia Wine Political Action Committee", KindUnknown))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := New(nil)

	inputs := []struct {
		name string
		kind Kind
	}{
		{name: "Delegate Jane M Doe", kind: KindIndividual},
		{name: "John Smith Jr", kind: KindIndividual},
		{name: "Doe, Jane", kind: KindIndividual},
		{name: "Smith & Co., Inc.", kind: KindOrganization},
		{name: "Dominion Energy Inc. PAC - VA", kind: KindOrganization},
		{name: "Virginia Education Association", kind: KindUnknown},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			once := n.Normalize(tt.name, tt.kind)
			twice := n.Normalize(once, tt.kind)
			assert.Equal(t, once, twice)
		})
	}
}

func TestKindFromBool(t *testing.T) {
	individual := true
	organization := false

	assert.Equal(t, KindUnknown, KindFromBool(nil))
	assert.Equal(t, KindIndividual, KindFromBool(&individual))
	assert.Equal(t, KindOrganization, KindFromBool(&organization))
}
