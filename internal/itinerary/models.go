package itinerary

const dateLayout = "2006-01-02"

type Item struct {
	Name        string  `json:"name"`
	POIID       string  `json:"poiId"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"`
	Location    string  `json:"location"`
}

type DayPlan struct {
	Date  string `json:"date"`
	Items []Item `json:"items"`
}

type Response struct {
	Days []DayPlan `json:"days"`
}

// ItemCount is the number of POIs placed across all days.
func (r Response) ItemCount() int {
	n := 0
	for _, d := range r.Days {
		n += len(d.Items)
	}
	return n
}
