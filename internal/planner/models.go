package planner

import (
	"time"

	"backend-trafella/internal/timeline"
)

// Activity is one slot of a day. The embedded ID is the slot label
// ("morning", "afternoon", "evening", "slot-4", ...) and stays with the
// position when activities are reordered.
type Activity struct {
	timeline.Activity
	POIID    string  `json:"poiId,omitempty"`
	Category string  `json:"category,omitempty"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

type Day struct {
	Number     int        `json:"dayNumber"`
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
}

type Plan struct {
	Destination string `json:"destination"`
	Days        []Day  `json:"days"`
}

type Session struct {
	ID        string    `json:"id"`
	Current   Plan      `json:"current"`
	Original  Plan      `json:"original"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TimePatch carries the fields of an activity's window that change.
type TimePatch struct {
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

func (p Plan) Clone() Plan {
	out := Plan{Destination: p.Destination, Days: make([]Day, len(p.Days))}
	for i, d := range p.Days {
		out.Days[i] = Day{Number: d.Number, Date: d.Date, Activities: append([]Activity{}, d.Activities...)}
	}
	return out
}

func (p *Plan) day(number int) *Day {
	for i := range p.Days {
		if p.Days[i].Number == number {
			return &p.Days[i]
		}
	}
	return nil
}

func (d Day) schedule() []timeline.Activity {
	out := make([]timeline.Activity, len(d.Activities))
	for i, a := range d.Activities {
		out[i] = a.Activity
	}
	return out
}
