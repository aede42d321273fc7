package events

import (
	"testing"

	"github.com/agora-concertations/backend/internal/models"
)

func validEventRequest() EventRequest {
	return EventRequest{
		PubStatus: "pub",
		Theme:     "sante",
		Subject:   "Atelier santé de quartier",
		Scale:     "loc",
		Start:     "2026-04-01T18:00:00Z",
		End:       "2026-04-01T20:00:00Z",
		Address:   "1 rue de la Mairie",
		ZipCode:   "75011",
		City:      "Paris",
	}
}

func TestEventRequestApply(t *testing.T) {
	var e models.Event
	req := validEventRequest()
	if fields := req.apply(&e); fields != nil {
		t.Fatalf("apply returned errors: %v", fields)
	}
	if e.PubStatus != models.PubStatusPublic || e.Theme != models.ThemeSante || e.Scale != models.ScaleLocal {
		t.Errorf("enums not applied: %+v", e)
	}
	if !e.End.After(e.Start) {
		t.Errorf("dates not applied: start=%v end=%v", e.Start, e.End)
	}
}

func TestEventRequestApplyDefaults(t *testing.T) {
	var e models.Event
	req := validEventRequest()
	req.PubStatus = ""
	req.Scale = ""
	if fields := req.apply(&e); fields != nil {
		t.Fatalf("apply returned errors: %v", fields)
	}
	if e.PubStatus != models.PubStatusUnpublished {
		t.Errorf("pub_status default = %q, want unpub", e.PubStatus)
	}
	if e.Scale != models.ScaleLocal {
		t.Errorf("scale default = %q, want loc", e.Scale)
	}
}

func TestEventRequestApplyRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EventRequest)
		field  string
	}{
		{"unknown pub_status", func(r *EventRequest) { r.PubStatus = "published" }, "pub_status"},
		{"unknown theme", func(r *EventRequest) { r.Theme = "cuisine" }, "theme"},
		{"unknown scale", func(r *EventRequest) { r.Scale = "galactic" }, "scale"},
		{"unparseable start", func(r *EventRequest) { r.Start = "tomorrow" }, "start"},
		{"unparseable end", func(r *EventRequest) { r.End = "2026-04-01" }, "end"},
		{"end before start", func(r *EventRequest) { r.End = "2026-03-31T18:00:00Z" }, "end"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validEventRequest()
			tt.mutate(&req)
			var e models.Event
			fields := req.apply(&e)
			if fields == nil {
				t.Fatal("apply accepted invalid request")
			}
			if fields[tt.field] == "" {
				t.Errorf("expected error on %q, got %v", tt.field, fields)
			}
			if !e.Start.IsZero() || e.Subject != "" {
				t.Error("event must stay untouched on validation failure")
			}
		})
	}
}

func TestEventRequestApplyEqualStartEnd(t *testing.T) {
	req := validEventRequest()
	req.End = req.Start
	var e models.Event
	if fields := req.apply(&e); fields != nil {
		t.Errorf("equal start and end should be accepted, got %v", fields)
	}
}
