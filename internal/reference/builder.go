// Package reference derives the lookup tables used for receipt
// resolution: committee identities keyed by code and the observed
// variations of every normalized name.
package reference

import (
	"regexp"
	"sort"
	"strings"

	"github.com/openelexva/reconcile/internal/common"
	"github.com/openelexva/reconcile/internal/model"
)

var numericOnlyRe = regexp.MustCompile(`^[\d\s\-\.]+$`)

var placeholderNames = map[string]bool{
	"n/a":     true,
	"na":      true,
	"none":    true,
	"null":    true,
	"unknown": true,
}

// CleanName validates a name for lookup-table use. Placeholder values,
// single characters, and purely numeric strings come back empty.
func CleanName(name string) string {
	cleaned := strings.TrimSpace(name)
	if len(cleaned) < 2 {
		return ""
	}
	if placeholderNames[strings.ToLower(cleaned)] {
		return ""
	}
	if numericOnlyRe.MatchString(cleaned) {
		return ""
	}
	return cleaned
}

// BuildCommitteeIdentities maps each committee code to its single
// canonical identity. When filings disagree on a code's names, the most
// frequent valid spelling wins; codes that never carry a valid
// candidate name are marked as non-candidate committees.
func BuildCommitteeIdentities(records []*model.TransactionRecord) []model.CommitteeIdentity {
	type tally struct {
		committeeNames map[string]int
		candidateNames map[string]int
	}

	byCode := make(map[string]*tally)
	order := make([]string, 0)

	for _, rec := range records {
		code := strings.TrimSpace(rec.CommitteeCode)
		if code == "" {
			continue
		}
		t, ok := byCode[code]
		if !ok {
			t = &tally{
				committeeNames: make(map[string]int),
				candidateNames: make(map[string]int),
			}
			byCode[code] = t
			order = append(order, code)
		}
		if name := CleanName(rec.CommitteeNameNormalized); name != "" {
			t.committeeNames[name]++
		}
		if name := CleanName(rec.CandidateNameNormalized); name != "" {
			t.candidateNames[name]++
		}
	}

	sort.Strings(order)

	identities := make([]model.CommitteeIdentity, 0, len(byCode))
	for _, code := range order {
		t := byCode[code]
		committeeName := mostFrequent(t.committeeNames)
		if committeeName == "" {
			continue
		}
		candidateName := mostFrequent(t.candidateNames)
		if candidateName == "" {
			candidateName = model.NotACandidate
		}
		identities = append(identities, model.CommitteeIdentity{
			CommitteeCode:           code,
			CommitteeNameNormalized: committeeName,
			CandidateNameNormalized: candidateName,
		})
	}

	common.LogInfo("committee identities built", common.Fields{
		"codes":      len(byCode),
		"identities": len(identities),
	})
	return identities
}

// BuildNameVariations maps every observed raw spelling to its
// normalized form, across entity, committee and candidate names.
// Identity pairs are skipped. When one spelling maps to two normalized
// forms the longer form wins.
func BuildNameVariations(records []*model.TransactionRecord) []model.NameVariation {
	variations := make(map[string]string)
	order := make([]string, 0)

	add := func(raw, normalized string) {
		variation := CleanName(raw)
		normal := CleanName(normalized)
		if variation == "" || normal == "" || variation == normal {
			return
		}
		existing, ok := variations[variation]
		if !ok {
			variations[variation] = normal
			order = append(order, variation)
			return
		}
		if existing != normal && len(normal) > len(existing) {
			variations[variation] = normal
		}
	}

	for _, rec := range records {
		add(rec.EntityName, rec.EntityNameNormalized)
		add(rec.CommitteeName, rec.CommitteeNameNormalized)
		add(rec.CandidateName, rec.CandidateNameNormalized)
	}

	sort.Strings(order)

	out := make([]model.NameVariation, 0, len(order))
	for _, variation := range order {
		out = append(out, model.NameVariation{
			Variation:  variation,
			Normalized: variations[variation],
		})
	}

	common.LogInfo("name variations built", common.Fields{"variations": len(out)})
	return out
}

func mostFrequent(counts map[string]int) string {
	best := ""
	bestCount := 0
	for name, count := range counts {
		if count > bestCount || (count == bestCount && name < best) {
			best = name
			bestCount = count
		}
	}
	return best
}
