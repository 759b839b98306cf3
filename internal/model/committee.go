package model

// NotACandidate is the sentinel candidate name for committees with no
// associated candidate (PACs, party committees). It is stored verbatim in
// the reference tables and must be excluded from candidate-name lookups.
const NotACandidate = "NOT A CC"

// CommitteeIdentity is the canonical identity behind one committee code.
// A candidate may own several codes across years and offices; each code
// maps to exactly one committee name and one candidate name.
type CommitteeIdentity struct {
	CommitteeCode           string
	CommitteeNameNormalized string
	CandidateNameNormalized string
}

// IsCandidateCommittee reports whether the identity belongs to a
// candidate campaign committee.
func (c CommitteeIdentity) IsCandidateCommittee() bool {
	return c.CandidateNameNormalized != "" && c.CandidateNameNormalized != NotACandidate
}

// NameVariation maps one observed raw name spelling to its normalized
// canonical form. Many variations map to one canonical name.
type NameVariation struct {
	Variation  string
	Normalized string
}
