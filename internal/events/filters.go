package events

import (
	"time"

	"github.com/agora-concertations/backend/internal/models"
)

// Filters narrows the public event listing. Zero values mean "no filter".
type Filters struct {
	Theme    string
	Scale    string
	Upcoming bool
	Now      time.Time
}

// ParseFilters normalizes raw GET parameters. Unknown theme or scale values
// are treated as "no filter", never as a validation error: the listing is
// driven by user-editable query strings and stays permissive.
func ParseFilters(theme, scale, upcoming string, now time.Time) Filters {
	f := Filters{Now: now}
	if models.ValidTheme(theme) {
		f.Theme = theme
	}
	if models.ValidScale(scale) {
		f.Scale = scale
	}
	f.Upcoming = upcoming == "1" || upcoming == "true" || upcoming == "on"
	return f
}

// IsZero reports whether no filter is active (used to decide cacheability).
func (f Filters) IsZero() bool {
	return f.Theme == "" && f.Scale == "" && !f.Upcoming
}
