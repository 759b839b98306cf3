package model

import "time"

// FilingPeriod is one reporting window in a year's filing calendar. A
// transaction dated inside [Start, End] was due by Deadline. On-cycle
// windows apply to committees on that year's ballot; off-cycle windows to
// everyone else. The two partitions cover the year independently.
type FilingPeriod struct {
	Start    time.Time
	End      time.Time
	Deadline time.Time
	OnCycle  bool
}

// Contains reports whether d falls inside the window, inclusive at both
// ends.
func (p FilingPeriod) Contains(d time.Time) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}
