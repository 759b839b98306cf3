// Package normalize canonicalizes free-text person and organization names
// into stable comparison keys. Normalization is a pure, idempotent
// projection: applying it twice yields the same string.
package normalize

import "strings"

// Kind says what sort of entity a name belongs to. Filings only flag
// individuals on the modern schema, so unknown is common.
type Kind int

const (
	// KindUnknown applies the universal substitutions only.
	KindUnknown Kind = iota
	// KindIndividual strips titles and reduces to first + last + suffix.
	KindIndividual
	// KindOrganization strips punctuation and trailing PAC/INC tokens.
	KindOrganization
)

// KindFromBool maps the tri-state is-individual flag carried by modern
// filings onto a Kind.
func KindFromBool(isIndividual *bool) Kind {
	switch {
	case isIndividual == nil:
		return KindUnknown
	case *isIndividual:
		return KindIndividual
	default:
		return KindOrganization
	}
}

// Normalizer canonicalizes names using the built-in rules plus an
// equivalence table of curated entity collapses.
type Normalizer struct {
	equivalences *Equivalences
}

// New returns a Normalizer using the supplied equivalence table, or the
// built-in curated table when eq is nil.
func New(eq *Equivalences) *Normalizer {
	if eq == nil {
		eq = DefaultEquivalences()
	}
	return &Normalizer{equivalences: eq}
}

// Normalize canonicalizes a name for comparison. Empty input returns the
// empty string.
func (n *Normalizer) Normalize(name string, kind Kind) string {
	if name == "" {
		return ""
	}

	normalized := strings.ToUpper(strings.TrimSpace(name))
	normalized = spacesRe.ReplaceAllString(normalized, " ")

	if kind == KindIndividual {
		for _, rule := range titleRules {
			normalized = rule.ReplaceAllString(normalized, "")
		}
		normalized = leadingNonWordRe.ReplaceAllString(normalized, "")
		normalized = trailingNonWordRe.ReplaceAllString(normalized, "")
		normalized = strings.TrimSpace(spacesRe.ReplaceAllString(normalized, " "))
		normalized = extractFirstLast(normalized)
	}

	// Universal substitutions, individuals and organizations alike.
	normalized = pacRe.ReplaceAllString(normalized, "PAC")
	normalized = associationRe.ReplaceAllString(normalized, "ASSOC")
	normalized = assnRe.ReplaceAllString(normalized, "ASSOC")
	normalized = virginiaRe.ReplaceAllString(normalized, "VA")
	normalized = highwayRe.ReplaceAllString(normalized, "HWY")

	if kind == KindOrganization {
		normalized = punctuationRe.ReplaceAllString(normalized, "")
		normalized = strings.TrimSpace(trailingPACRe.ReplaceAllString(normalized, ""))
		normalized = strings.TrimSpace(trailingINCRe.ReplaceAllString(normalized, ""))
	}

	normalized = n.equivalences.Apply(strings.TrimSpace(normalized))

	return strings.TrimSpace(spacesRe.ReplaceAllString(normalized, " "))
}

// extractFirstLast reduces a cleaned individual name to first + last +
// generational suffixes, discarding middle names and initials. Hyphens
// are treated as spaces so hyphenated and space-separated variants reduce
// identically. Names with fewer than two non-suffix tokens are returned
// unchanged.
func extractFirstLast(name string) string {
	if name == "" {
		return ""
	}

	parts := strings.Fields(strings.ReplaceAll(name, "-", " "))
	if len(parts) < 2 {
		return name
	}

	var nameParts, suffixParts []string
	for _, part := range parts {
		if generationalSuffixes[part] {
			suffixParts = append(suffixParts, part)
		} else {
			nameParts = append(nameParts, part)
		}
	}

	if len(nameParts) < 2 {
		return name
	}

	result := append([]string{nameParts[0], nameParts[len(nameParts)-1]}, suffixParts...)
	return strings.Join(result, " ")
}
