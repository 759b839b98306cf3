package calendar

import (
	"strconv"
	"strings"
)

// OnTime reports whether a transaction was reported before the deadline
// of the filing period it falls in. The report is matched against
// on-cycle periods only when the election cycle's year equals the
// report year. Returns nil when the dates or year cannot be resolved,
// and false when no matching period covers the transaction date.
func (c *Calendar) OnTime(transactionDate, reportedDate, electionCycle, reportYear string) *bool {
	if strings.TrimSpace(transactionDate) == "" ||
		strings.TrimSpace(reportedDate) == "" ||
		strings.TrimSpace(reportYear) == "" {
		return nil
	}

	txDate, ok := ParseDate(transactionDate)
	if !ok {
		return nil
	}
	repDate, ok := ParseDate(reportedDate)
	if !ok {
		return nil
	}

	year, err := strconv.Atoi(strings.TrimSpace(reportYear))
	if err != nil {
		return nil
	}

	electionYear, hasElectionYear := parseElectionYear(electionCycle)
	onCycle := hasElectionYear && electionYear == year

	for _, period := range c.PeriodsForYear(year) {
		if !period.Contains(txDate) {
			continue
		}
		if period.OnCycle != onCycle {
			continue
		}
		result := !repDate.After(period.Deadline)
		return &result
	}

	// No period covers the transaction, treat as late.
	late := false
	return &late
}

// parseElectionYear extracts the year from an election cycle value,
// either a "MM/YYYY" date fragment or a bare year.
func parseElectionYear(electionCycle string) (int, bool) {
	cycle := strings.TrimSpace(electionCycle)
	if cycle == "" {
		return 0, false
	}
	if idx := strings.LastIndexByte(cycle, '/'); idx >= 0 {
		cycle = cycle[idx+1:]
	}
	year, err := strconv.Atoi(cycle)
	if err != nil {
		return 0, false
	}
	return year, true
}
