package office

import "strings"

// officeRule pairs a predicate over the cleaned office string with the
// canonical office it maps to. Rules are evaluated in order and the
// first match wins, so broader patterns must come after narrower ones.
type officeRule struct {
	matches func(office string) bool
	result  string
}

func exactly(values ...string) func(string) bool {
	return func(office string) bool {
		for _, v := range values {
			if office == v {
				return true
			}
		}
		return false
	}
}

func anyOf(substrings ...string) func(string) bool {
	return func(office string) bool {
		for _, s := range substrings {
			if strings.Contains(office, s) {
				return true
			}
		}
		return false
	}
}

func allOf(substrings ...string) func(string) bool {
	return func(office string) bool {
		for _, s := range substrings {
			if !strings.Contains(office, s) {
				return false
			}
		}
		return true
	}
}

var officeRules = []officeRule{
	{exactly("hod", "h.o.d."), "delegate"},
	{exactly("ag", "a.g."), "attorney general"},
	{exactly("gov", "governor"), "governor"},
	{anyOf("lt gov", "lt. gov", "lieutenant gov", "lieut gov", "lieu gov"), "lieutenant governor"},
	{anyOf("delegate", "hod"), "delegate"},
	{anyOf("senator", "senate"), "senator"},
	{func(o string) bool {
		return strings.Contains(o, "governor") && !strings.Contains(o, "lieutenant") && !strings.Contains(o, "lt")
	}, "governor"},
	{func(o string) bool {
		return (strings.Contains(o, "lieutenant") || strings.Contains(o, "lt")) && strings.Contains(o, "governor")
	}, "lieutenant governor"},
	{allOf("attorney", "general"), "attorney general"},
	{anyOf("treasurer"), "treasurer"},
	{allOf("secretary", "commonwealth"), "secretary of the commonwealth"},
	{func(o string) bool {
		member := strings.Contains(o, "member") && strings.Contains(o, "county board")
		chair := (strings.Contains(o, "supervisor") || strings.Contains(o, "county board")) &&
			(strings.Contains(o, "chair") || strings.Contains(o, "chairman"))
		return member || chair
	}, "chair board of supervisors"},
	{func(o string) bool {
		return (strings.Contains(o, "member") && strings.Contains(o, "board")) ||
			strings.Contains(o, "supervisor") || strings.Contains(o, "county board")
	}, "member board of supervisors"},
	{func(o string) bool {
		return strings.Contains(o, "school") && strings.Contains(o, "board") &&
			(strings.Contains(o, "chair") || strings.Contains(o, "chairman"))
	}, "chair school board"},
	{allOf("school", "board"), "school board"},
	{anyOf("city council", "town council"), "city council"},
	{anyOf("mayor"), "mayor"},
	{anyOf("sheriff"), "sheriff"},
	{allOf("clerk", "court"), "clerk of court"},
	{allOf("commonwealth", "attorney"), "commonwealth attorney"},
}
