package poi

import "time"

// DefaultDurationMinutes is the visit length assumed when a POI has no
// typical duration recorded.
const DefaultDurationMinutes = 120

type POI struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Description     string    `json:"description"`
	Lat             float64   `json:"lat"`
	Lng             float64   `json:"lng"`
	Location        string    `json:"location"`
	Destination     string    `json:"destination"`
	DurationMinutes *int      `json:"duration,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}

// Duration returns the typical visit length, defaulting to 120 minutes.
func (p POI) Duration() int {
	if p.DurationMinutes == nil {
		return DefaultDurationMinutes
	}
	return *p.DurationMinutes
}
