package itinerary

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection renders an itinerary for the map: a Point per item and
// a LineString per day tracing its visit order.
func FeatureCollection(resp Response) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for d, day := range resp.Days {
		var route orb.LineString
		for i, item := range day.Items {
			pt := orb.Point{item.Lng, item.Lat}
			f := geojson.NewFeature(pt)
			f.ID = item.POIID
			f.Properties["kind"] = "stop"
			f.Properties["day"] = d + 1
			f.Properties["date"] = day.Date
			f.Properties["order"] = i + 1
			f.Properties["name"] = item.Name
			f.Properties["category"] = item.Category
			f.Properties["duration"] = item.Duration
			f.Properties["location"] = item.Location
			fc.Append(f)
			route = append(route, pt)
		}
		if len(route) < 2 {
			continue
		}
		f := geojson.NewFeature(route)
		f.Properties["kind"] = "route"
		f.Properties["day"] = d + 1
		f.Properties["date"] = day.Date
		fc.Append(f)
	}
	return fc
}
