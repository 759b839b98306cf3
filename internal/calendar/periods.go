package calendar

import (
	"fmt"
	"os"
	"time"

	"github.com/openelexva/reconcile/internal/model"

	"gopkg.in/yaml.v3"
)

// Calendar resolves the filing periods in effect for a given report
// year. Years with curated period data use it; every other year falls
// back to the generic semiannual schedule.
type Calendar struct {
	curated map[int][]model.FilingPeriod
}

// New returns a calendar carrying the built-in curated years.
func New() *Calendar {
	return &Calendar{curated: map[int][]model.FilingPeriod{
		2024: periods2024(),
	}}
}

// periodSpec is the YAML shape for one filing period in an override
// file. Dates are ISO strings.
type periodSpec struct {
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
	Deadline string `yaml:"deadline"`
	OnCycle  bool   `yaml:"on_cycle"`
}

// Load reads curated filing periods from a YAML file keyed by year and
// merges them over the built-in calendar. File entries win on conflict.
func (c *Calendar) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading filing calendar: %w", err)
	}

	var byYear map[int][]periodSpec
	if err := yaml.Unmarshal(data, &byYear); err != nil {
		return fmt.Errorf("parsing filing calendar: %w", err)
	}

	for year, specs := range byYear {
		periods := make([]model.FilingPeriod, 0, len(specs))
		for _, spec := range specs {
			start, ok1 := ParseDate(spec.Start)
			end, ok2 := ParseDate(spec.End)
			deadline, ok3 := ParseDate(spec.Deadline)
			if !ok1 || !ok2 || !ok3 {
				return fmt.Errorf("filing calendar year %d: unparseable period %q..%q due %q",
					year, spec.Start, spec.End, spec.Deadline)
			}
			periods = append(periods, model.FilingPeriod{
				Start:    start,
				End:      end,
				Deadline: deadline,
				OnCycle:  spec.OnCycle,
			})
		}
		c.curated[year] = periods
	}
	return nil
}

// PeriodsForYear returns the filing periods for a report year, falling
// back to the generic semiannual schedule when no curated data exists.
func (c *Calendar) PeriodsForYear(year int) []model.FilingPeriod {
	if periods, ok := c.curated[year]; ok {
		return periods
	}
	return genericPeriods(year)
}

// genericPeriods is the semiannual fallback: two off-cycle halves with
// deadlines fifteen days after each half closes.
func genericPeriods(year int) []model.FilingPeriod {
	return []model.FilingPeriod{
		{
			Start:    date(year, time.January, 1),
			End:      date(year, time.June, 30),
			Deadline: date(year, time.July, 15),
			OnCycle:  false,
		},
		{
			Start:    date(year, time.July, 1),
			End:      date(year, time.December, 31),
			Deadline: date(year+1, time.January, 15),
			OnCycle:  false,
		},
	}
}

// periods2024 is the published 2024 Virginia schedule: the off-cycle
// semiannual halves, the on-cycle reports for candidates on the
// November 5 ballot, and the two pre-election large contribution
// windows.
func periods2024() []model.FilingPeriod {
	return []model.FilingPeriod{
		{Start: date(2024, 1, 1), End: date(2024, 6, 30), Deadline: date(2024, 7, 15), OnCycle: false},
		{Start: date(2024, 7, 1), End: date(2024, 12, 31), Deadline: date(2025, 1, 15), OnCycle: false},

		{Start: date(2024, 1, 1), End: date(2024, 3, 31), Deadline: date(2024, 4, 15), OnCycle: true},
		{Start: date(2024, 4, 1), End: date(2024, 6, 6), Deadline: date(2024, 6, 10), OnCycle: true},
		{Start: date(2024, 6, 7), End: date(2024, 6, 30), Deadline: date(2024, 7, 15), OnCycle: true},
		{Start: date(2024, 7, 1), End: date(2024, 8, 31), Deadline: date(2024, 9, 16), OnCycle: true},
		{Start: date(2024, 9, 1), End: date(2024, 9, 30), Deadline: date(2024, 10, 15), OnCycle: true},
		{Start: date(2024, 10, 1), End: date(2024, 10, 24), Deadline: date(2024, 10, 28), OnCycle: true},
		{Start: date(2024, 10, 25), End: date(2024, 11, 28), Deadline: date(2024, 12, 5), OnCycle: true},
		{Start: date(2024, 11, 29), End: date(2024, 12, 31), Deadline: date(2025, 1, 15), OnCycle: true},

		{Start: date(2024, 6, 7), End: date(2024, 6, 17), Deadline: date(2024, 6, 17), OnCycle: true},
		{Start: date(2024, 10, 25), End: date(2024, 11, 4), Deadline: date(2024, 11, 4), OnCycle: true},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
