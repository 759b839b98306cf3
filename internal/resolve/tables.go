// Package resolve finds contributions reported as disbursements that
// never appear as receipts on the recipient committee's own filings.
package resolve

import (
	"strings"

	"github.com/openelexva/reconcile/internal/model"
)

// Tables holds the lookup tables driving committee resolution: observed
// name variations, committee identities by code, and a reverse index
// from normalized names back to identities.
type Tables struct {
	variations  map[string]string
	byCode      map[string]*model.CommitteeIdentity
	byName      map[string]*model.CommitteeIdentity
	byCandidate map[string][]*model.CommitteeIdentity
}

// NewTables builds the lookup tables. Non-candidate committee markers
// never enter the reverse name index, so a stray "NOT A CC" string can
// not resolve to a committee.
func NewTables(identities []model.CommitteeIdentity, variations []model.NameVariation) *Tables {
	t := &Tables{
		variations:  make(map[string]string, len(variations)),
		byCode:      make(map[string]*model.CommitteeIdentity, len(identities)),
		byName:      make(map[string]*model.CommitteeIdentity, len(identities)*2),
		byCandidate: make(map[string][]*model.CommitteeIdentity),
	}

	for _, v := range variations {
		t.variations[strings.ToLower(v.Variation)] = v.Normalized
	}

	for i := range identities {
		identity := &identities[i]
		t.byCode[identity.CommitteeCode] = identity

		if name := identity.CommitteeNameNormalized; name != "" {
			t.byName[strings.ToLower(name)] = identity
		}
		if identity.IsCandidateCommittee() {
			name := identity.CandidateNameNormalized
			t.byName[strings.ToLower(name)] = identity
			t.byCandidate[name] = append(t.byCandidate[name], identity)
		}
	}

	return t
}

// Empty reports whether the tables carry no lookup data at all.
func (t *Tables) Empty() bool {
	return len(t.byCode) == 0 && len(t.variations) == 0
}

// CommitteesForCandidate returns every committee identity registered
// under a candidate's normalized name.
func (t *Tables) CommitteesForCandidate(candidateName string) []*model.CommitteeIdentity {
	return t.byCandidate[candidateName]
}
