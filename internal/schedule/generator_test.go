package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-09-02 is a Monday.
var aMonday = time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)

func validRule() Rule {
	return Rule{
		Weekdays:        []time.Weekday{time.Monday},
		WindowStartMin:  9 * 60,
		WindowEndMin:    10 * 60,
		DurationMinutes: 30,
		StepMinutes:     30,
		Weeks:           1,
		ReferenceDate:   aMonday,
	}
}

func TestCandidatesMondayWindow(t *testing.T) {
	got, err := Candidates(validRule())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, time.Date(2024, 9, 2, 9, 0, 0, 0, time.UTC), got[0].Start)
	assert.Equal(t, time.Date(2024, 9, 2, 9, 30, 0, 0, time.UTC), got[0].End)
	assert.Equal(t, time.Date(2024, 9, 2, 9, 30, 0, 0, time.UTC), got[1].Start)
	assert.Equal(t, time.Date(2024, 9, 2, 10, 0, 0, 0, time.UTC), got[1].End)
}

func TestCandidatesPerDayCount(t *testing.T) {
	cases := []struct {
		name     string
		window   int // minutes
		duration int
		step     int
		want     int
	}{
		{"exact fit", 60, 30, 30, 2},
		{"overlapping steps", 60, 30, 15, 3},
		{"single", 45, 45, 15, 1},
		{"duration exceeds window", 30, 45, 15, 0},
		{"uneven tail dropped", 100, 30, 30, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validRule()
			r.WindowEndMin = r.WindowStartMin + tc.window
			r.DurationMinutes = tc.duration
			r.StepMinutes = tc.step

			got, err := Candidates(r)
			require.NoError(t, err)
			assert.Len(t, got, tc.want)

			// floor((window - duration)/step) + 1 when non-negative
			expected := 0
			if tc.window >= tc.duration {
				expected = (tc.window-tc.duration)/tc.step + 1
			}
			assert.Equal(t, expected, len(got))
		})
	}
}

func TestCandidatesDurationAndContainment(t *testing.T) {
	r := validRule()
	r.Weekdays = []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	r.WindowStartMin = 8 * 60
	r.WindowEndMin = 12*60 + 10
	r.DurationMinutes = 45
	r.StepMinutes = 20
	r.Weeks = 3

	got, err := Candidates(r)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	for _, iv := range got {
		assert.Equal(t, 45*time.Minute, iv.End.Sub(iv.Start))

		dayStart := time.Date(iv.Start.Year(), iv.Start.Month(), iv.Start.Day(), 0, 0, 0, 0, time.UTC)
		assert.False(t, iv.Start.Before(dayStart.Add(8*time.Hour)))
		assert.False(t, iv.End.After(dayStart.Add(12*time.Hour+10*time.Minute)))
	}
}

func TestCandidatesOrdering(t *testing.T) {
	r := validRule()
	r.Weekdays = []time.Weekday{time.Friday, time.Monday} // unsorted on purpose
	r.Weeks = 2

	got, err := Candidates(r)
	require.NoError(t, err)
	require.Len(t, got, 8)

	// Weekday outer loop sorted ascending: all Mondays before all Fridays.
	for i, iv := range got {
		if i < 4 {
			assert.Equal(t, time.Monday, iv.Start.Weekday())
		} else {
			assert.Equal(t, time.Friday, iv.Start.Weekday())
		}
	}
	// Week inner loop: week 1 Monday slots before week 2 Monday slots.
	assert.True(t, got[1].Start.Before(got[2].Start))
	assert.Equal(t, got[0].Start.AddDate(0, 0, 7), got[2].Start)
}

func TestCandidatesAnchorOnOrAfterReference(t *testing.T) {
	r := validRule()
	// Reference is a Monday; asking for Sunday must anchor 6 days ahead,
	// never behind the reference date.
	r.Weekdays = []time.Weekday{time.Sunday}

	got, err := Candidates(r)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2024, 9, 8, 9, 0, 0, 0, time.UTC), got[0].Start)
}

func TestCandidatesAnchorSameDay(t *testing.T) {
	got, err := Candidates(validRule())
	require.NoError(t, err)
	assert.Equal(t, aMonday.Add(9*time.Hour), got[0].Start)
}

func TestCandidatesIdempotent(t *testing.T) {
	r := validRule()
	r.Weekdays = []time.Weekday{time.Tuesday, time.Thursday}
	r.Weeks = 4

	first, err := Candidates(r)
	require.NoError(t, err)
	second, err := Candidates(r)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCandidatesDuplicateWeekdays(t *testing.T) {
	r := validRule()
	r.Weekdays = []time.Weekday{time.Monday, time.Monday}

	got, err := Candidates(r)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestValidateRejectsBadRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Rule)
	}{
		{"no weekdays", func(r *Rule) { r.Weekdays = nil }},
		{"weekday out of range", func(r *Rule) { r.Weekdays = []time.Weekday{7} }},
		{"window inverted", func(r *Rule) { r.WindowEndMin = r.WindowStartMin }},
		{"window past midnight", func(r *Rule) { r.WindowEndMin = 25 * 60 }},
		{"zero duration", func(r *Rule) { r.DurationMinutes = 0 }},
		{"zero step", func(r *Rule) { r.StepMinutes = 0 }},
		{"negative step", func(r *Rule) { r.StepMinutes = -5 }},
		{"zero weeks", func(r *Rule) { r.Weeks = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validRule()
			tc.mutate(&r)

			_, err := Candidates(r)
			assert.ErrorIs(t, err, ErrInvalidRule)
		})
	}
}
