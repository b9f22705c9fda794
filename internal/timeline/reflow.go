package timeline

// Reflow applies edited to the activity with the same ID and shifts its
// neighbours so the day stays contiguous. The result is always a new slice.
//
// A later end cascades through every following activity, each keeping its
// previous duration. An earlier end pulls only the next activity. Any
// activity pushed past DayEnd is kept whole by shrinking the one before it.
func Reflow(activities []Activity, edited Activity) []Activity {
	result := make([]Activity, len(activities))
	copy(result, activities)

	idx := -1
	for i, a := range activities {
		if a.ID == edited.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return result
	}

	durations := make([]int, len(activities))
	for i, a := range activities {
		d, ok := a.Duration()
		if !ok {
			return result
		}
		durations[i] = d
	}
	newStart, errStart := ParseClock(edited.StartTime)
	newEnd, errEnd := ParseClock(edited.EndTime)
	if errStart != nil || errEnd != nil {
		return result
	}
	oldEnd, _ := ParseClock(activities[idx].EndTime)

	result[idx] = edited
	if idx > 0 {
		if prevEnd, _ := ParseClock(result[idx-1].EndTime); prevEnd > newStart {
			result[idx-1].EndTime = edited.StartTime
		}
	}

	switch {
	case newEnd > oldEnd:
		for i := idx + 1; i < len(result); i++ {
			place(result, i, durations[i])
		}
	case newEnd < oldEnd:
		if idx+1 < len(result) {
			place(result, idx+1, durations[idx+1])
		}
	}
	return result
}

// place starts result[i] where result[i-1] ends. When that would overrun
// DayEnd the previous activity gives up the difference.
func place(result []Activity, i, duration int) {
	start, _ := ParseClock(result[i-1].EndTime)
	end := start + duration
	if end > DayEnd {
		start = max(DayStart, DayEnd-duration)
		end = DayEnd
		result[i-1].EndTime = FormatClock(start)
	}
	result[i].StartTime = FormatClock(start)
	result[i].EndTime = FormatClock(end)
}
