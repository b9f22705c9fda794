package itinerary

import (
	"math"
	"sort"
	"time"

	"backend-trafella/internal/poi"
	"backend-trafella/internal/shared/geo"
)

const DefaultCapPerDay = 6

// Cluster splits pois into daysCount days of at most capPerDay items. Each
// day is seeded with the first POI not yet placed and filled with the POIs
// nearest to that seed. POIs beyond the trip's capacity are dropped.
// Day d is stamped startDate+d.
func Cluster(pois []poi.POI, daysCount, capPerDay int, startDate time.Time) []DayPlan {
	if daysCount <= 0 {
		return []DayPlan{}
	}
	if capPerDay <= 0 {
		capPerDay = DefaultCapPerDay
	}

	remaining := make([]int, len(pois))
	for i := range pois {
		remaining[i] = i
	}

	type candidate struct {
		idx  int
		dist float64
	}

	days := make([]DayPlan, 0, daysCount)
	for d := 0; d < daysCount; d++ {
		day := DayPlan{Date: startDate.AddDate(0, 0, d).Format(dateLayout), Items: []Item{}}
		if len(remaining) == 0 {
			days = append(days, day)
			continue
		}

		seed := pois[remaining[0]]
		rest := make([]candidate, 0, len(remaining)-1)
		for _, idx := range remaining[1:] {
			p := pois[idx]
			rest = append(rest, candidate{idx: idx, dist: geo.HaversineKm(seed.Lat, seed.Lng, p.Lat, p.Lng)})
		}
		sort.SliceStable(rest, func(i, j int) bool { return distanceLess(rest[i].dist, rest[j].dist) })

		take := min(capPerDay-1, len(rest))
		chosen := make(map[int]struct{}, take+1)
		chosen[remaining[0]] = struct{}{}
		day.Items = append(day.Items, toItem(seed))
		for _, c := range rest[:take] {
			chosen[c.idx] = struct{}{}
			day.Items = append(day.Items, toItem(pois[c.idx]))
		}

		next := make([]int, 0, len(remaining)-len(chosen))
		for _, idx := range remaining {
			if _, ok := chosen[idx]; !ok {
				next = append(next, idx)
			}
		}
		remaining = next
		days = append(days, day)
	}
	return days
}

// distanceLess orders NaN after every number, +Inf included.
func distanceLess(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}

func toItem(p poi.POI) Item {
	return Item{
		Name:        p.Name,
		POIID:       p.ID,
		Lat:         p.Lat,
		Lng:         p.Lng,
		Category:    p.Category,
		Description: p.Description,
		Duration:    p.Duration(),
		Location:    p.Location,
	}
}
