package events

import (
	"testing"
	"time"
)

func TestParseFilters(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		theme    string
		scale    string
		upcoming string
		want     Filters
	}{
		{"empty input means no filter", "", "", "", Filters{Now: now}},
		{"valid theme kept", "sante", "", "", Filters{Theme: "sante", Now: now}},
		{"valid scale kept", "", "reg", "", Filters{Scale: "reg", Now: now}},
		{"invalid theme silently dropped", "bogus", "", "", Filters{Now: now}},
		{"invalid scale silently dropped", "", "galactic", "", Filters{Now: now}},
		{"upcoming flag accepts 1", "", "", "1", Filters{Upcoming: true, Now: now}},
		{"upcoming flag accepts true", "", "", "true", Filters{Upcoming: true, Now: now}},
		{"upcoming flag accepts on", "", "", "on", Filters{Upcoming: true, Now: now}},
		{"unknown upcoming value ignored", "", "", "yes please", Filters{Now: now}},
		{"combined", "biodiv", "nat", "1", Filters{Theme: "biodiv", Scale: "nat", Upcoming: true, Now: now}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFilters(tt.theme, tt.scale, tt.upcoming, now)
			if got != tt.want {
				t.Errorf("ParseFilters(%q, %q, %q) = %+v, want %+v", tt.theme, tt.scale, tt.upcoming, got, tt.want)
			}
		})
	}
}

func TestFiltersIsZero(t *testing.T) {
	if !(Filters{Now: time.Now()}).IsZero() {
		t.Error("filters with only Now set should be zero")
	}
	if (Filters{Theme: "sante"}).IsZero() {
		t.Error("theme filter should not be zero")
	}
	if (Filters{Upcoming: true}).IsZero() {
		t.Error("upcoming filter should not be zero")
	}
}
