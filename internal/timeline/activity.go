package timeline

type Activity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// Duration is the activity length in minutes, or false when either time
// is malformed.
func (a Activity) Duration() (int, bool) {
	start, err := ParseClock(a.StartTime)
	if err != nil {
		return 0, false
	}
	end, err := ParseClock(a.EndTime)
	if err != nil {
		return 0, false
	}
	return end - start, true
}
