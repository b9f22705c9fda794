package timeline

import (
	"fmt"
	"sort"
)

type ValidationResult struct {
	Valid  bool     `json:"isValid"`
	Errors []string `json:"errors"`
}

// Validate reports every problem with a day's schedule without changing it.
// Activities with a malformed time are excluded from the other checks.
func Validate(activities []Activity) ValidationResult {
	errs := []string{}

	type timed struct {
		name       string
		start, end int
	}
	var valid []timed

	for _, a := range activities {
		startOK, endOK := ValidClock(a.StartTime), ValidClock(a.EndTime)
		if !startOK {
			errs = append(errs, fmt.Sprintf("Invalid time format for \"%s\": %s", a.Name, a.StartTime))
		}
		if !endOK {
			errs = append(errs, fmt.Sprintf("Invalid time format for \"%s\": %s", a.Name, a.EndTime))
		}
		if !startOK || !endOK {
			continue
		}

		start, _ := ParseClock(a.StartTime)
		end, _ := ParseClock(a.EndTime)
		if start >= end {
			errs = append(errs, fmt.Sprintf("End time cannot be before start time for \"%s\"", a.Name))
		}
		if start < DayStart {
			errs = append(errs, fmt.Sprintf("Activity \"%s\" starts before 6:00 AM", a.Name))
		}
		if end > DayEnd {
			errs = append(errs, fmt.Sprintf("Activity \"%s\" ends after 11:00 PM", a.Name))
		}
		valid = append(valid, timed{name: a.Name, start: start, end: end})
	}

	sort.SliceStable(valid, func(i, j int) bool { return valid[i].start < valid[j].start })
	for i := 0; i+1 < len(valid); i++ {
		if valid[i].end > valid[i+1].start {
			errs = append(errs, fmt.Sprintf("Activities \"%s\" and \"%s\" have overlapping times", valid[i].name, valid[i+1].name))
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
