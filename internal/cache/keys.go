package cache

import (
	"strconv"
	"strings"
)

// Resource names used as key prefixes. Invalidation after a mutation
// targets a whole resource via InvalidateResource.
const (
	ResourceWeather    = "weather"
	ResourceFarms      = "farms"
	ResourcePlots      = "plots"
	ResourceActivities = "activities"
	ResourceListings   = "listings"
)

// Key identifies a cached value by resource type and parameters.
type Key struct {
	Resource string
	Params   []string
}

// String renders the canonical "resource:param1:param2" form.
func (k Key) String() string {
	if len(k.Params) == 0 {
		return k.Resource
	}
	return k.Resource + ":" + strings.Join(k.Params, ":")
}

// WeatherKey keys weather data by coordinates. Coordinates are rounded to
// four decimal places (~11m) so nearby fixes share an entry.
func WeatherKey(lat, lon float64) Key {
	return Key{Resource: ResourceWeather, Params: []string{
		strconv.FormatFloat(lat, 'f', 4, 64),
		strconv.FormatFloat(lon, 'f', 4, 64),
	}}
}

// FarmsKey keys the farm list of a user.
func FarmsKey(userID string) Key {
	return Key{Resource: ResourceFarms, Params: []string{userID}}
}

// PlotsKey keys the plot list of a farm.
func PlotsKey(farmID string) Key {
	return Key{Resource: ResourcePlots, Params: []string{farmID}}
}

// ActivitiesKey keys the activity list of a user.
func ActivitiesKey(userID string) Key {
	return Key{Resource: ResourceActivities, Params: []string{userID}}
}

// ListingsKey keys the full marketplace listing collection.
func ListingsKey() Key {
	return Key{Resource: ResourceListings}
}
