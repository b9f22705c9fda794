package planner

import (
	"fmt"

	"backend-trafella/internal/itinerary"
	"backend-trafella/internal/poi"
	"backend-trafella/internal/timeline"
)

const seedGap = 30

type window struct {
	label      string
	start, end int
}

var templateWindows = []window{
	{"morning", 9 * 60, 10*60 + 30},
	{"afternoon", 11 * 60, 12*60 + 30},
	{"evening", 14 * 60, 16 * 60},
}

// MaxActivitiesPerDay bounds a seeded day so the evening spread never
// yields empty windows.
const MaxActivitiesPerDay = 48

// Seed turns generated day plans into an editable plan with default times.
func Seed(destination string, days []itinerary.DayPlan) Plan {
	plan := Plan{Destination: destination, Days: make([]Day, len(days))}
	for i, d := range days {
		plan.Days[i] = seedDay(i+1, d)
	}
	return plan
}

func seedDay(number int, d itinerary.DayPlan) Day {
	windows := seedWindows(d.Items)
	day := Day{Number: number, Date: d.Date, Activities: make([]Activity, len(d.Items))}
	for i, item := range d.Items {
		day.Activities[i] = Activity{
			Activity: timeline.Activity{
				ID:          windows[i].label,
				Name:        item.Name,
				StartTime:   timeline.FormatClock(windows[i].start),
				EndTime:     timeline.FormatClock(windows[i].end),
				Description: item.Description,
				Location:    item.Location,
			},
			POIID:    item.POIID,
			Category: item.Category,
			Lat:      item.Lat,
			Lng:      item.Lng,
		}
	}
	return day
}

// seedWindows gives the first three items the template windows. Later
// items follow each other after a short gap at their own duration, or when
// that overruns the day they share the evening evenly.
func seedWindows(items []itinerary.Item) []window {
	out := make([]window, len(items))
	fixed := min(len(items), len(templateWindows))
	copy(out, templateWindows[:fixed])
	if len(items) <= fixed {
		return out
	}

	tail := items[fixed:]
	cursor := templateWindows[len(templateWindows)-1].end
	fits := true
	for i, item := range tail {
		duration := item.Duration
		if duration <= 0 {
			duration = poi.DefaultDurationMinutes
		}
		start := cursor + seedGap
		end := start + duration
		if end > timeline.DayEnd {
			fits = false
			break
		}
		out[fixed+i] = window{label: slotLabel(fixed + i), start: start, end: end}
		cursor = end
	}
	if fits {
		return out
	}

	eveningStart := templateWindows[len(templateWindows)-1].end
	span := (timeline.DayEnd - eveningStart) / len(tail)
	for i := range tail {
		start := eveningStart + i*span
		end := start + span
		if i == len(tail)-1 {
			end = timeline.DayEnd
		}
		out[fixed+i] = window{label: slotLabel(fixed + i), start: start, end: end}
	}
	return out
}

func slotLabel(index int) string {
	if index < len(templateWindows) {
		return templateWindows[index].label
	}
	return fmt.Sprintf("slot-%d", index+1)
}

// reorder moves the content at from to to. Slot labels and time windows
// stay where they are. It reports whether anything moved.
func reorder(d *Day, from, to int) bool {
	n := len(d.Activities)
	if from == to || from < 0 || to < 0 || from >= n || to >= n {
		return false
	}

	moved := append([]Activity{}, d.Activities...)
	item := moved[from]
	moved = append(moved[:from], moved[from+1:]...)
	moved = append(moved[:to], append([]Activity{item}, moved[to:]...)...)

	for i := range d.Activities {
		slot := d.Activities[i]
		content := moved[i]
		content.ID = slot.ID
		content.StartTime = slot.StartTime
		content.EndTime = slot.EndTime
		d.Activities[i] = content
	}
	return true
}

// updateTime applies patch to one activity, reflows the day and commits
// the result only if the whole day validates.
func updateTime(d *Day, activityID string, patch TimePatch) error {
	idx := -1
	for i, a := range d.Activities {
		if a.ID == activityID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("activity %s: %w", activityID, ErrNotFound)
	}

	edited := d.Activities[idx].Activity
	var bad []string
	if patch.StartTime != nil {
		if !timeline.ValidClock(*patch.StartTime) {
			bad = append(bad, fmt.Sprintf("Invalid time format for \"%s\": %s", edited.Name, *patch.StartTime))
		}
		edited.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		if !timeline.ValidClock(*patch.EndTime) {
			bad = append(bad, fmt.Sprintf("Invalid time format for \"%s\": %s", edited.Name, *patch.EndTime))
		}
		edited.EndTime = *patch.EndTime
	}
	if len(bad) > 0 {
		return &ValidationError{Messages: bad}
	}

	reflowed := timeline.Reflow(d.schedule(), edited)
	if res := timeline.Validate(reflowed); !res.Valid {
		return &ValidationError{Messages: res.Errors}
	}
	for i := range d.Activities {
		d.Activities[i].StartTime = reflowed[i].StartTime
		d.Activities[i].EndTime = reflowed[i].EndTime
	}
	return nil
}
