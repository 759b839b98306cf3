// Package office maps raw "office sought" and district strings onto the
// fixed vocabulary used for grouping: a canonical office, a government
// level, and a composite district key.
package office

import (
	"regexp"
	"strings"

	"github.com/openelexva/reconcile/internal/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	trailingDashRe = regexp.MustCompile(`\s*-\s*.*$`)
	boilerplateRe  = regexp.MustCompile(`\b(prince william county|blue ridge district|arlington county|at large)\b`)
	spacesRe       = regexp.MustCompile(`\s+`)
	digitsRe       = regexp.MustCompile(`\d+`)
	alnumRe        = regexp.MustCompile(`[a-zA-Z0-9]`)
	leadingZeroRe  = regexp.MustCompile(`^0+`)

	titleCaser = cases.Title(language.AmericanEnglish)
)

// stateOffices is the set of canonical offices elected statewide or to
// the General Assembly.
var stateOffices = map[string]bool{
	"delegate":                      true,
	"senator":                       true,
	"governor":                      true,
	"lieutenant governor":           true,
	"attorney general":              true,
	"treasurer":                     true,
	"secretary of the commonwealth": true,
}

// atLargeMarkers are the spellings that flag an at-large seat in either
// the office or the district field.
var atLargeMarkers = []string{"at large", "at-large", "atlarge", " al ", " al,", " al."}

// NormalizeOffice maps a raw office-sought string to the canonical office
// vocabulary. Unmatched input passes through lower-cased and trimmed;
// empty input returns "".
func NormalizeOffice(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	office := strings.ToLower(strings.TrimSpace(raw))

	// Strip the district half ("house of delegates - 42nd district") and
	// well-known boilerplate before rule matching.
	clean := trailingDashRe.ReplaceAllString(office, "")
	clean = strings.TrimSpace(boilerplateRe.ReplaceAllString(clean, ""))
	clean = spacesRe.ReplaceAllString(clean, " ")

	for _, rule := range officeRules {
		if rule.matches(clean) {
			return rule.result
		}
	}
	return clean
}

// DetermineLevel classifies an office/district pair as federal, state or
// local government.
func DetermineLevel(officeNormal, district string) model.GovernmentLevel {
	districtStr := strings.ToLower(strings.TrimSpace(district))
	if strings.Contains(districtStr, "congressional") {
		return model.LevelFederal
	}
	if stateOffices[officeNormal] {
		return model.LevelState
	}
	return model.LevelLocal
}

// NormalizeDistrict produces the composite district grouping key. Mayors
// and at-large seats always key to district "0"; local keys carry the
// city name and are title-cased for stable grouping. Fully empty input
// returns "".
func NormalizeDistrict(district, candidateCity string, level model.GovernmentLevel, officeSought string) string {
	officeNormal := ""
	if officeSought != "" {
		officeNormal = NormalizeOffice(officeSought)
	}

	atLarge := containsAtLargeMarker(officeSought) || containsAtLargeMarker(district)

	suffix := ""
	if idx := strings.Index(officeSought, "-"); idx >= 0 {
		suffix = " - " + strings.TrimSpace(officeSought[idx+1:])
	}

	city := strings.TrimSpace(candidateCity)
	local := level == model.LevelLocal

	if officeNormal == "mayor" || atLarge {
		if local && city != "" {
			return titleCaser.String(city + " (0)")
		}
		return "0"
	}

	districtStr := strings.TrimSpace(district)
	if districtStr == "" {
		if local && city != "" {
			return titleCaser.String(city + " (0)")
		}
		if city != "" {
			return titleCaser.String(city)
		}
		return ""
	}

	if num := digitsRe.FindString(districtStr); num != "" {
		normal := leadingZeroRe.ReplaceAllString(num, "")
		if normal == "" {
			normal = "0"
		}
		if local && city != "" {
			return titleCaser.String(city + " (" + normal + ")" + suffix)
		}
		return normal
	}

	if local && city != "" {
		if !alnumRe.MatchString(districtStr) {
			return titleCaser.String(city + " (0)")
		}
		return titleCaser.String(city + " (" + districtStr + ")")
	}

	return titleCaser.String(districtStr)
}

// DetermineCycle classifies an election cycle string as a primary or
// general election. November cycles ("11/...") are general; anything
// else is a primary. Empty input returns "".
func DetermineCycle(electionCycle string) string {
	cycle := strings.TrimSpace(electionCycle)
	if cycle == "" {
		return ""
	}
	if strings.HasPrefix(cycle, "11/") {
		return "general"
	}
	return "primary"
}

func containsAtLargeMarker(s string) bool {
	if s == "" {
		return false
	}
	lower := strings.ToLower(s)
	for _, marker := range atLargeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
