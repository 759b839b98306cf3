package normalize

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Equivalence collapses a hand-curated set of observed spellings of one
// entity onto a single canonical string. Exact entries match the whole
// normalized name; Prefixes absorb variable trailing qualifiers.
type Equivalence struct {
	Canonical string   `yaml:"canonical"`
	Exact     []string `yaml:"exact"`
	Prefixes  []string `yaml:"prefixes,omitempty"`
}

// Equivalences is an ordered table of curated entity collapses, applied
// first-match-wins after rule-based normalization.
type Equivalences struct {
	entries []Equivalence
	exact   map[string]string
}

// NewEquivalences builds a table from the given entries.
func NewEquivalences(entries []Equivalence) *Equivalences {
	eq := &Equivalences{
		entries: entries,
		exact:   make(map[string]string),
	}
	for _, e := range entries {
		for _, spelling := range e.Exact {
			eq.exact[spelling] = e.Canonical
		}
	}
	return eq
}

// Apply collapses name to its canonical form if it appears in the table,
// otherwise returns it unchanged.
func (eq *Equivalences) Apply(name string) string {
	if canonical, ok := eq.exact[name]; ok {
		return canonical
	}
	for _, e := range eq.entries {
		for _, prefix := range e.Prefixes {
			if strings.HasPrefix(name, prefix) {
				return e.Canonical
			}
		}
	}
	return name
}

type equivalenceFile struct {
	Equivalences []Equivalence `yaml:"equivalences"`
}

// LoadEquivalences reads a curated equivalence table from a YAML file, so
// the sets can grow without code changes.
func LoadEquivalences(path string) (*Equivalences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read equivalence table: %w", err)
	}

	var file equivalenceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse equivalence table: %w", err)
	}
	if len(file.Equivalences) == 0 {
		return nil, fmt.Errorf("equivalence table %s has no entries", path)
	}

	return NewEquivalences(file.Equivalences), nil
}

// DefaultEquivalences returns the compiled-in curated table: the two
// heavy-donor entities whose historical spellings dominate the unmatched
// queues.
func DefaultEquivalences() *Equivalences {
	return NewEquivalences([]Equivalence{
		{
			Canonical: "DOMINION ENERGY",
			Exact: []string{
				"DOMINION",
				"DOMINION PAC",
				"DOMINION ENERGY PAC",
				"DOMINION POLITICAL ACTION COMMITTEE",
				"DOMINION POLITICAL ACTION COMMITTEE - VA",
				"DOMINION POLITICAL ACTION COMMITTEE- VA LAST NAME LEFT BLANK",
				"DOMINION EMPLOYEES PAC",
				"DOMINION VA POWER",
				"DOMINION VA. POWER",
				"DOMINION ENERGY INC. PAC",
				"DOMINION ENERGY INC PAC - VA",
				"DOMINION ENERGY INC. PAC - VA",
				"DOMINION ENERGY INC. PAC - VIRGINIA",
				"DOMINION ENERGY INC PAC - VIRGINIA",
				"DOMINION PAC - VA",
				"DOMINION POWER",
				"DOMINION PAC VA",
				"DOMINION POLITICAL ACTION COMMITTE - VA",
				"DOMINION PAC-VA",
				"DOMINION POWER PAC",
				"DOMINION POLITICAL ACTION COMITTEE",
				"DOMINION PAC OF VA",
				"DOMINION POLITICAL ACCTION COMMITEE",
				"DOMINION-PAC-VA",
				"DOMINION ENERGY, INC.",
				"DOMINION ENERGY INC.",
				"DOMINION ENERGY INC",
				"DOMINION RESOURCES INC. PAC - VA",
				"DOMINION RESOURCES",
				"DOMINIONENERGY", // no space
				"DOMINION ENGERGY", // misspelling
			},
			Prefixes: []string{"DOMINION ENERGY "},
		},
		{
			Canonical: "CLEAN VA FUND",
			Exact: []string{
				"CLEAN VA FUND",
				"CLEAN VA",
				"CLEAN VA ACTION FUND",
				"CLEAN VA PAC",
				"CLEAN VA FUND PAC",
				"CLEAN VA FUND (PAC)",
			},
		},
	})
}
