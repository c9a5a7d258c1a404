package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestWeekPNG(t *testing.T) {
	monday := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	slots := []*model.Slot{
		{
			StartTime: monday.Add(9 * time.Hour),
			EndTime:   monday.Add(10 * time.Hour),
			Status:    model.SlotStatusFree,
			Location:  "Consulta 2",
		},
		{
			StartTime: monday.AddDate(0, 0, 2).Add(15 * time.Hour),
			EndTime:   monday.AddDate(0, 0, 2).Add(15*time.Hour + 30*time.Minute),
			Status:    model.SlotStatusReserved,
		},
	}

	img, err := WeekPNG(monday.AddDate(0, 0, 3), slots)
	require.NoError(t, err)
	require.Greater(t, len(img), len(pngMagic))
	assert.Equal(t, pngMagic, img[:4])
}

func TestWeekPNGEmpty(t *testing.T) {
	img, err := WeekPNG(time.Now(), nil)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, img[:4])
}

func TestNormalizeToWeekBounds(t *testing.T) {
	// a Thursday
	thursday := time.Date(2024, 9, 5, 14, 30, 0, 0, time.UTC)
	week := normalizeToWeekBounds(thursday)

	assert.Equal(t, time.Monday, week.start.Weekday())
	assert.Equal(t, time.Sunday, week.end.Weekday())
	assert.Equal(t, 2, week.start.Day())
	assert.Equal(t, 8, week.end.Day())
}

func TestCalculateHourRange(t *testing.T) {
	day := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	slots := []*model.Slot{
		{StartTime: day.Add(10 * time.Hour), EndTime: day.Add(11 * time.Hour)},
		{StartTime: day.Add(17 * time.Hour), EndTime: day.Add(17*time.Hour + 45*time.Minute)},
	}

	hours := calculateHourRange(slots)
	assert.Equal(t, 8, hours.start)
	assert.Equal(t, 20, hours.end)

	empty := calculateHourRange(nil)
	assert.Equal(t, defaultMinHour-hourPadding, empty.start)
}
