// Package render draws the weekly slot schedule as a PNG, used by the
// API to give staff a printable view of a professional's week.
package render

import (
	"bytes"
	"image/color"
	"strconv"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
)

const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 100
	leftLabelsWidth = 80
	legendWidth     = 120
	dayPaddingX     = 8
	minSlotHeight   = 8.0
	slotRadius      = 6.0
	daysInWeek      = 7
	hourPadding     = 2
	defaultMinHour  = 8
	defaultMaxHour  = 21
)

var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	todayBgColor   = color.NRGBA{255, 99, 71, 125}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}

	slotFreeColor      = color.RGBA{133, 193, 85, 220}
	slotReservedColor  = color.RGBA{255, 182, 193, 255}
	slotCancelledColor = color.RGBA{158, 158, 158, 200}
	slotDefaultColor   = color.RGBA{220, 220, 220, 200}
	slotTextColor      = color.RGBA{20, 24, 28, 230}

	legendItemColor = color.RGBA{70, 74, 78, 220}
)

type weekBounds struct {
	start time.Time
	end   time.Time
}

type hourRange struct {
	start int
	end   int
	total int
}

// WeekPNG renders the slots falling inside the week containing reference.
// Days run Monday through Sunday; the hour axis is trimmed to the slots
// actually present.
func WeekPNG(reference time.Time, slots []*model.Slot) ([]byte, error) {
	week := normalizeToWeekBounds(reference)
	today := normalizeToDay(time.Now())
	highlightToday := !today.Before(week.start) && !today.After(week.end)

	slotsByDay := groupSlotsByDay(slots)
	hours := calculateHourRange(slots)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / daysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, week)
	drawHourLabels(dc, hours, cellHeight)

	date := week.start
	for dayIndex := 0; dayIndex < daysInWeek; dayIndex++ {
		x := float64(leftLabelsWidth + dayIndex*dayWidth)
		y := float64(headerHeight)
		isToday := highlightToday && sameDay(date, today)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, dayIndex, isToday)
		drawDayHeader(dc, date, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)
		for _, slot := range slotsByDay[date.Format("2006-01-02")] {
			drawSlot(dc, slot, x, y, dayWidth, hours, cellHeight)
		}

		date = date.AddDate(0, 0, 1)
	}

	drawLegend(dc, dayWidth)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// normalizeToWeekBounds snaps a date to its Monday-to-Sunday week.
func normalizeToWeekBounds(date time.Time) weekBounds {
	normalized := normalizeToDay(date)

	sinceMonday := int(normalized.Weekday()) - 1
	if normalized.Weekday() == time.Sunday {
		sinceMonday = 6
	}

	start := normalized.AddDate(0, 0, -sinceMonday)
	return weekBounds{start: start, end: start.AddDate(0, 0, 6)}
}

func normalizeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func groupSlotsByDay(slots []*model.Slot) map[string][]*model.Slot {
	byDay := make(map[string][]*model.Slot)
	for _, slot := range slots {
		key := slot.StartTime.Format("2006-01-02")
		byDay[key] = append(byDay[key], slot)
	}
	return byDay
}

func calculateHourRange(slots []*model.Slot) hourRange {
	minHour := 24
	maxHour := 0

	for _, slot := range slots {
		startH := slot.StartTime.Hour()
		endH := slot.EndTime.Hour()
		if slot.EndTime.Minute() > 0 {
			endH++
		}
		if startH < minHour {
			minHour = startH
		}
		if endH > maxHour {
			maxHour = endH
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	start := max(minHour-hourPadding, 0)
	end := min(maxHour+hourPadding, 23)

	return hourRange{start: start, end: end, total: end - start + 1}
}

func drawHeader(dc *gg.Context, week weekBounds) {
	title := week.start.Format("02 Jan") + " - " + week.end.Format("02 Jan 2006")
	dc.SetColor(textColor)
	w, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, float64(imageWidth)/2-w/2, float64(headerHeight)/4+h/2, 0, 0)
}

func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	dc.SetColor(hourLabelColor)
	for idx := 0; idx < hours.total; idx++ {
		y := float64(headerHeight) + float64(idx)*cellHeight
		label := formatTwoDigits(hours.start+idx) + ":00"
		dc.DrawStringAnchored(label, float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case dayIndex%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(date.Format("02.01"), x+float64(dayWidth)/2, y, 0.5, -2.2)
	dc.DrawStringAnchored(date.Format("Mon"), x+float64(dayWidth)/2, y, 0.5, -0.8)
}

func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)
	for idx := 0; idx <= hours.total; idx++ {
		hy := y + float64(idx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

func drawSlot(dc *gg.Context, slot *model.Slot, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	startHour := float64(slot.StartTime.Hour()) + float64(slot.StartTime.Minute())/60.0
	endHour := float64(slot.EndTime.Hour()) + float64(slot.EndTime.Minute())/60.0

	slotY := y + (startHour-float64(hours.start))*cellHeight
	slotHeight := (endHour - startHour) * cellHeight
	if slotHeight < minSlotHeight {
		slotHeight = minSlotHeight
	}
	slotWidth := float64(dayWidth) - float64(dayPaddingX*2)

	fill := slotColor(slot.Status)
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), slotY+2, slotWidth, slotHeight-4, slotRadius)
	dc.Fill()

	dc.SetColor(darken(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), slotY+2, slotWidth, slotHeight-4, slotRadius)
	dc.Stroke()

	dc.SetColor(slotTextColor)
	label := slot.StartTime.Format("15:04")
	dc.DrawStringAnchored(label, x+float64(dayPaddingX)+8, slotY+16, 0, 0)

	if slot.Location != "" && slotHeight > 30 {
		loc := slot.Location
		if len(loc) > 20 {
			loc = loc[:17] + "..."
		}
		dc.DrawStringAnchored(loc, x+float64(dayPaddingX)+8, slotY+30, 0, 0)
	}
}

func slotColor(status model.SlotStatus) color.RGBA {
	switch status {
	case model.SlotStatusFree:
		return slotFreeColor
	case model.SlotStatusReserved:
		return slotReservedColor
	case model.SlotStatusCancelled:
		return slotCancelledColor
	default:
		return slotDefaultColor
	}
}

func darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func drawLegend(dc *gg.Context, dayWidth int) {
	x := float64(leftLabelsWidth + daysInWeek*dayWidth + 10)
	y := float64(imageHeight) - 80.0

	items := []struct {
		label string
		clr   color.Color
	}{
		{"Free", slotFreeColor},
		{"Reserved", slotReservedColor},
		{"Cancelled", slotCancelledColor},
	}

	boxW, boxH := 20.0, 14.0
	for _, item := range items {
		dc.SetColor(item.clr)
		dc.DrawRoundedRectangle(x, y, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.label, x+boxW+8, y+boxH/2+1, 0, 0.2)
		y += boxH + 14
	}
}

func formatTwoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
