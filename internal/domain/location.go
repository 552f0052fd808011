package domain

import "time"

// LocationSnapshot is a resolved place for a user: either automatically
// detected through reverse geocoding or manually overridden. Manual
// overrides short-circuit automatic resolution until cleared.
type LocationSnapshot struct {
	City        string    `json:"city"`
	State       string    `json:"state"`
	IsCustomSet bool      `json:"is_custom_set"`
	ResolvedAt  time.Time `json:"resolved_at"`
}

// FullLocation renders the combined "City/ST" label.
func (l LocationSnapshot) FullLocation() string {
	if l.City == "" && l.State == "" {
		return ""
	}
	if l.State == "" {
		return l.City
	}
	return l.City + "/" + l.State
}
