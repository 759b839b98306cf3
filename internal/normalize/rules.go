package normalize

import "regexp"

// titleRules is the ordered list of title and honorific patterns stripped
// from individual names before first/last reduction. Order matters:
// multi-word titles come before their abbreviations so "LIEUTENANT
// GOVERNOR" is consumed before "LT" gets a chance at it. Each pattern is
// matched as a whole word against the already-uppercased name.
var titleRules = []*regexp.Regexp{
	// Political titles
	regexp.MustCompile(`\bDELEGATE\b`), regexp.MustCompile(`\bDEL\.?\b`),
	regexp.MustCompile(`\bSENATOR\b`), regexp.MustCompile(`\bSEN\.?\b`),
	regexp.MustCompile(`\bGOVERNOR\b`), regexp.MustCompile(`\bGOV\.?\b`),
	regexp.MustCompile(`\bLIEUTENANT GOVERNOR\b`), regexp.MustCompile(`\bLT\.? GOV\.?\b`), regexp.MustCompile(`\bLIEUT\.? GOV\.?\b`),
	regexp.MustCompile(`\bATTORNEY GENERAL\b`), regexp.MustCompile(`\bAG\b`), regexp.MustCompile(`\bA\.G\.?\b`),
	regexp.MustCompile(`\bMAYOR\b`), regexp.MustCompile(`\bSHERIFF\b`),

	// Personal honorifics
	regexp.MustCompile(`\bTHE HONORABLE\b`), regexp.MustCompile(`\bHONORABLE\b`), regexp.MustCompile(`\bHON\.?\b`),
	regexp.MustCompile(`\bMR\.?\b`), regexp.MustCompile(`\bMRS\.?\b`), regexp.MustCompile(`\bMS\.?\b`), regexp.MustCompile(`\bMISS\.?\b`),
	regexp.MustCompile(`\bDR\.?\b`), regexp.MustCompile(`\bDOCTOR\b`),
	regexp.MustCompile(`\bPROF\.?\b`), regexp.MustCompile(`\bPROFESSOR\b`),
	regexp.MustCompile(`\bREV\.?\b`), regexp.MustCompile(`\bREVEREND\b`),

	// Military ranks
	regexp.MustCompile(`\bCAPT\.?\b`), regexp.MustCompile(`\bCAPTAIN\b`),
	regexp.MustCompile(`\bCOL\.?\b`), regexp.MustCompile(`\bCOLONEL\b`),
	regexp.MustCompile(`\bMAJ\.?\b`), regexp.MustCompile(`\bMAJOR\b`),
	regexp.MustCompile(`\bLT\.?\b`), regexp.MustCompile(`\bLIEUTENANT\b`),
	regexp.MustCompile(`\bGEN\.?\b`), regexp.MustCompile(`\bGENERAL\b`),

	// Professional suffixes
	regexp.MustCompile(`\bESQ\.?\b`), regexp.MustCompile(`\bESQUIRE\b`),
}

var (
	spacesRe          = regexp.MustCompile(`\s+`)
	leadingNonWordRe  = regexp.MustCompile(`^\W+`)
	trailingNonWordRe = regexp.MustCompile(`\W+$`)
	punctuationRe     = regexp.MustCompile(`[^\w\s]`)
	trailingPACRe     = regexp.MustCompile(`\bPAC$`)
	trailingINCRe     = regexp.MustCompile(`\bINC$`)

	// Whole-word substitutions applied to every name regardless of kind.
	// Longest match first so POLITICAL ACTION COMMITTEE collapses before
	// ASSOCIATION gets rewritten inside it.
	pacRe         = regexp.MustCompile(`\bPOLITICAL\s+ACTION\s+COMMITTEE\b`)
	associationRe = regexp.MustCompile(`\bASSOCIATION\b`)
	assnRe        = regexp.MustCompile(`\bASSN\b`)
	virginiaRe    = regexp.MustCompile(`\bVIRGINIA\b`)
	highwayRe     = regexp.MustCompile(`\bHIGHWAY\b`)
)

// generationalSuffixes are kept during first/last reduction and appended
// after the surname.
var generationalSuffixes = map[string]bool{
	"JR":     true,
	"SR":     true,
	"III":    true,
	"IV":     true,
	"V":      true,
	"JUNIOR": true,
	"SENIOR": true,
}
