package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/openelexva/reconcile/internal/model"
)

var committeeCodeYearRe = regexp.MustCompile(`^CC-(\d{2})-`)

// Resolver maps recipient names from disbursement records onto
// committee identities using exact lookups only.
type Resolver struct {
	tables *Tables
}

// NewResolver wraps lookup tables in a resolver.
func NewResolver(tables *Tables) *Resolver {
	return &Resolver{tables: tables}
}

// ResolveCommittee finds the committee a recipient name refers to. The
// name is tried through the variation table first, then directly
// against the normalized name index. When the resolved candidate runs
// multiple committees, the code whose embedded year sits closest to the
// filing year wins. Returns nil when nothing resolves.
func (r *Resolver) ResolveCommittee(recipientName string, filingYear int) *model.CommitteeIdentity {
	clean := strings.ToLower(strings.TrimSpace(recipientName))
	if clean == "" {
		return nil
	}

	var matched *model.CommitteeIdentity
	if normalized, ok := r.tables.variations[clean]; ok {
		matched = r.tables.byName[strings.ToLower(normalized)]
	} else {
		matched = r.tables.byName[clean]
	}
	if matched == nil {
		return nil
	}

	siblings := r.tables.CommitteesForCandidate(matched.CandidateNameNormalized)
	if len(siblings) > 1 {
		if best := closestByYear(siblings, filingYear); best != nil {
			return best
		}
	}
	return matched
}

// closestByYear picks the committee whose CC-YY code year is nearest
// the filing year. Codes outside the CC-YY pattern are skipped; the
// first of equally distant codes wins.
func closestByYear(committees []*model.CommitteeIdentity, filingYear int) *model.CommitteeIdentity {
	var best *model.CommitteeIdentity
	minDiff := -1

	for _, committee := range committees {
		year, ok := committeeCodeYear(committee.CommitteeCode)
		if !ok {
			continue
		}
		diff := filingYear - year
		if diff < 0 {
			diff = -diff
		}
		if minDiff < 0 || diff < minDiff {
			minDiff = diff
			best = committee
		}
	}
	return best
}

// committeeCodeYear extracts the registration year from a CC-YY-NNNNN
// committee code. Two digit years below fifty read as 2000s.
func committeeCodeYear(code string) (int, bool) {
	m := committeeCodeYearRe.FindStringSubmatch(code)
	if m == nil {
		return 0, false
	}
	suffix, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	if suffix < 50 {
		return 2000 + suffix, true
	}
	return 1900 + suffix, true
}
