// Package schedule expands weekly recurrence rules into concrete
// candidate time intervals. It is pure calendar arithmetic: nothing
// here touches persistence.
package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidRule is returned for recurrence rules that cannot be expanded.
var ErrInvalidRule = errors.New("invalid recurrence rule")

// Interval is a candidate [Start, End) slot window.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Rule describes a weekly recurrence. Window bounds are minutes
// from midnight of each selected day.
type Rule struct {
	Weekdays        []time.Weekday `json:"weekdays"`
	WindowStartMin  int            `json:"window_start"`
	WindowEndMin    int            `json:"window_end"`
	DurationMinutes int            `json:"duration_minutes"`
	StepMinutes     int            `json:"step_minutes"`
	Weeks           int            `json:"weeks"`
	ReferenceDate   time.Time      `json:"reference_date"` // time-of-day is ignored
}

// Validate checks the rule bounds that guarantee expansion terminates.
func (r Rule) Validate() error {
	if len(r.Weekdays) == 0 {
		return fmt.Errorf("%w: at least one weekday required", ErrInvalidRule)
	}
	for _, wd := range r.Weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidRule, wd)
		}
	}
	if r.WindowEndMin <= r.WindowStartMin {
		return fmt.Errorf("%w: window end must be after window start", ErrInvalidRule)
	}
	if r.WindowStartMin < 0 || r.WindowEndMin > 24*60 {
		return fmt.Errorf("%w: window outside the day", ErrInvalidRule)
	}
	if r.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidRule)
	}
	if r.StepMinutes <= 0 {
		return fmt.Errorf("%w: step must be positive", ErrInvalidRule)
	}
	if r.Weeks < 1 {
		return fmt.Errorf("%w: weeks must be at least 1", ErrInvalidRule)
	}
	return nil
}

// Candidates expands the rule into concrete intervals.
//
// Order is fixed for reproducibility: weekdays ascending (Sunday first),
// then week by week, then the time cursor within each day. Calling twice
// with the same rule yields the same sequence.
func Candidates(r Rule) ([]Interval, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	weekdays := dedupeWeekdays(r.Weekdays)

	loc := r.ReferenceDate.Location()
	ref := time.Date(r.ReferenceDate.Year(), r.ReferenceDate.Month(), r.ReferenceDate.Day(), 0, 0, 0, 0, loc)

	var out []Interval
	for _, wd := range weekdays {
		// First occurrence of wd on or after the reference date.
		ahead := (int(wd) - int(ref.Weekday()) + 7) % 7
		anchor := ref.AddDate(0, 0, ahead)

		for week := 0; week < r.Weeks; week++ {
			day := anchor.AddDate(0, 0, 7*week)
			windowEnd := day.Add(time.Duration(r.WindowEndMin) * time.Minute)

			cursor := day.Add(time.Duration(r.WindowStartMin) * time.Minute)
			for {
				end := cursor.Add(time.Duration(r.DurationMinutes) * time.Minute)
				if end.After(windowEnd) {
					break
				}
				out = append(out, Interval{Start: cursor, End: end})
				cursor = cursor.Add(time.Duration(r.StepMinutes) * time.Minute)
			}
		}
	}
	return out, nil
}

// RuleFromAvailability builds the expansion rule for a single stored
// availability template, anchored at reference.
func RuleFromAvailability(weekday, startMin, endMin, duration, step, weeks int, reference time.Time) Rule {
	return Rule{
		Weekdays:        []time.Weekday{time.Weekday(weekday)},
		WindowStartMin:  startMin,
		WindowEndMin:    endMin,
		DurationMinutes: duration,
		StepMinutes:     step,
		Weeks:           weeks,
		ReferenceDate:   reference,
	}
}

func dedupeWeekdays(in []time.Weekday) []time.Weekday {
	seen := make(map[time.Weekday]bool, len(in))
	out := make([]time.Weekday, 0, len(in))
	for _, wd := range in {
		if !seen[wd] {
			seen[wd] = true
			out = append(out, wd)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
