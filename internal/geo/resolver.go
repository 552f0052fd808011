package geo

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/agrocampo/api/internal/domain"
	"github.com/agrocampo/api/internal/logger"
)

// Status is the resolver state observed by a caller.
type Status string

const (
	StatusResolved    Status = "resolved"
	StatusDenied      Status = "denied"
	StatusUnsupported Status = "unsupported"
	StatusError       Status = "error"
)

// Failure kinds a device can report when it never obtained a fix.
const (
	FailurePermissionDenied = "permission_denied"
	FailureUnsupported      = "unsupported"
)

// Resolution is the outcome of a resolve attempt. Failures are carried as
// state with a human-readable reason, never as an error: the caller must
// render a persistent retry affordance rather than crash.
type Resolution struct {
	Status   Status                   `json:"status"`
	Location *domain.LocationSnapshot `json:"location,omitempty"`
	Reason   string                   `json:"reason,omitempty"`
}

const (
	geocodeCacheSize = 256
	geocodeCacheTTL  = 6 * time.Hour
)

// Resolver turns device coordinates into a stored, human-readable
// location snapshot. Manual overrides short-circuit resolution entirely.
type Resolver struct {
	geocoder ReverseGeocoder
	store    *LocationStore
	timeout  time.Duration

	// Reverse-geocode results rarely change for a coordinate cell, so
	// they are cached in a bounded LRU keyed by rounded coordinates.
	geocodeCache *expirable.LRU[string, Place]
}

// NewResolver creates a resolver with the given geocoder and store.
// timeout bounds how long a single resolution may wait on the network.
func NewResolver(geocoder ReverseGeocoder, store *LocationStore, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Resolver{
		geocoder:     geocoder,
		store:        store,
		timeout:      timeout,
		geocodeCache: expirable.NewLRU[string, Place](geocodeCacheSize, nil, geocodeCacheTTL),
	}
}

// Resolve resolves coordinates for a user. A previously stored snapshot
// (manual or detected) is returned immediately without touching the
// network; otherwise the coordinates are reverse-geocoded within the
// configured timeout.
func (r *Resolver) Resolve(ctx context.Context, userID string, lat, lon float64) Resolution {
	if loc, ok := r.store.Get(userID); ok {
		return Resolution{Status: StatusResolved, Location: &loc}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	place, err := r.lookup(ctx, lat, lon)
	if err != nil {
		logger.FromContext(ctx).Warn("reverse geocoding failed", "lat", lat, "lon", lon, "error", err)
		return Resolution{Status: StatusError, Reason: "could not determine your location, check your connection and try again"}
	}

	if place.City == "" && place.State == "" {
		// No usable label: treated as unresolved rather than silently
		// succeeding with an empty location.
		return Resolution{Status: StatusDenied, Reason: "no recognizable place at these coordinates"}
	}

	loc := r.store.SetDetected(userID, place.City, place.State)
	return Resolution{Status: StatusResolved, Location: &loc}
}

func (r *Resolver) lookup(ctx context.Context, lat, lon float64) (Place, error) {
	key := geocodeKey(lat, lon)
	if place, ok := r.geocodeCache.Get(key); ok {
		return place, nil
	}

	place, err := r.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		return Place{}, err
	}

	r.geocodeCache.Add(key, place)
	return place, nil
}

// ReportFailure records a device-side acquisition failure (permission
// denied or geolocation unsupported) as resolver state.
func (r *Resolver) ReportFailure(kind string) Resolution {
	switch kind {
	case FailurePermissionDenied:
		return Resolution{Status: StatusDenied, Reason: "location permission denied, enable it in your browser settings"}
	case FailureUnsupported:
		return Resolution{Status: StatusUnsupported, Reason: "geolocation is not supported on this device"}
	default:
		return Resolution{Status: StatusError, Reason: "could not determine your location, check your connection and try again"}
	}
}

// SetManual stores an explicit city/state override for the user.
func (r *Resolver) SetManual(userID, city, state string) domain.LocationSnapshot {
	return r.store.SetManual(userID, city, state)
}

// Current returns the stored snapshot, if any.
func (r *Resolver) Current(userID string) (domain.LocationSnapshot, bool) {
	return r.store.Get(userID)
}

// Clear removes the stored location, requiring fresh resolution.
func (r *Resolver) Clear(userID string) {
	r.store.Clear(userID)
}

// geocodeKey rounds coordinates to ~100m cells so nearby fixes share a
// cached geocode result.
func geocodeKey(lat, lon float64) string {
	return fmt.Sprintf("%.3f:%.3f", lat, lon)
}
