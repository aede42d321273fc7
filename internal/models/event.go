package models

import (
	"time"

	"github.com/google/uuid"
)

// PubStatus is the publication status of an event.
type PubStatus string

const (
	PubStatusPublic      PubStatus = "pub"
	PubStatusPrivate     PubStatus = "priv"
	PubStatusUnpublished PubStatus = "unpub"
)

// Theme is the national consultation theme of an event.
type Theme string

const (
	ThemeSante  Theme = "sante"
	ThemeBiodiv Theme = "biodiv"
)

// Themes lists the valid theme values, used to validate listing filters.
var Themes = []Theme{ThemeSante, ThemeBiodiv}

// ValidTheme reports whether s is a known theme value.
func ValidTheme(s string) bool {
	for _, t := range Themes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Scale is the geographic scale of an event.
type Scale string

const (
	ScaleLocal        Scale = "loc"
	ScaleRegional     Scale = "reg"
	ScaleDepartmental Scale = "dep"
	ScaleNational     Scale = "nat"
)

// Scales lists the valid scale values, used to validate listing filters.
var Scales = []Scale{ScaleLocal, ScaleRegional, ScaleDepartmental, ScaleNational}

// ValidScale reports whether s is a known scale value.
func ValidScale(s string) bool {
	for _, sc := range Scales {
		if string(sc) == s {
			return true
		}
	}
	return false
}

// Event represents a concertation. The owner is immutable after creation and
// is always present in the organizers set (both written in one transaction).
type Event struct {
	ID                   uuid.UUID   `json:"id"`
	OwnerID              uuid.UUID   `json:"owner_id"`
	OrganizerIDs         []uuid.UUID `json:"organizer_ids,omitempty"`
	PubStatus            PubStatus   `json:"pub_status"`
	Theme                Theme       `json:"theme"`
	SubTheme             string      `json:"sub_theme,omitempty"`
	Subject              string      `json:"subject,omitempty"`
	Description          string      `json:"description,omitempty"`
	Scale                Scale       `json:"scale"`
	Start                time.Time   `json:"start"`
	End                  time.Time   `json:"end"`
	PlaceName            string      `json:"place_name,omitempty"`
	Address              string      `json:"address"`
	ZipCode              string      `json:"zip_code"`
	City                 string      `json:"city"`
	PracticalInformation string      `json:"practical_information,omitempty"`
	ImageURL             string      `json:"image_url,omitempty"`
	BookingOnline        bool        `json:"booking_online"`
	ParticipantHelp      bool        `json:"participant_help"`
	Planning             string      `json:"planning,omitempty"`
	Synthesis            string      `json:"synthesis,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// HasOrganizer reports whether userID is in the loaded organizers set.
func (e *Event) HasOrganizer(userID uuid.UUID) bool {
	for _, id := range e.OrganizerIDs {
		if id == userID {
			return true
		}
	}
	return false
}
