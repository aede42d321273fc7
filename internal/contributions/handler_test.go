package contributions

import (
	"testing"
	"time"

	"github.com/agora-concertations/backend/internal/models"
)

func TestContributionRequestValidate(t *testing.T) {
	req := ContributionRequest{Kind: "idea", Title: "Jardins partagés", Status: "study", ChangeOn: "2026-02-10"}
	status, changeOn, public, fields := req.validate()
	if fields != nil {
		t.Fatalf("validate returned errors: %v", fields)
	}
	if status != models.StatusUnderStudy {
		t.Errorf("status = %q", status)
	}
	if !changeOn.Equal(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("changeOn = %v", changeOn)
	}
	if !public {
		t.Error("public must default to true when omitted")
	}
}

func TestContributionRequestValidatePublicFlag(t *testing.T) {
	hidden := false
	req := ContributionRequest{Kind: "proposal", Title: "x", Status: "selected", Public: &hidden}
	_, _, public, fields := req.validate()
	if fields != nil {
		t.Fatalf("validate returned errors: %v", fields)
	}
	if public {
		t.Error("explicit public=false lost")
	}
}

func TestContributionRequestValidateRejections(t *testing.T) {
	tests := []struct {
		name  string
		req   ContributionRequest
		field string
	}{
		{"unknown kind", ContributionRequest{Kind: "poem", Status: "study"}, "kind"},
		{"unknown status", ContributionRequest{Kind: "idea", Status: "maybe"}, "status"},
		{"bad date", ContributionRequest{Kind: "idea", Status: "study", ChangeOn: "10/02/2026"}, "change_on"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, fields := tt.req.validate()
			if fields == nil {
				t.Fatal("validate accepted invalid request")
			}
			if fields[tt.field] == "" {
				t.Errorf("expected error on %q, got %v", tt.field, fields)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Santé", "santé"},
		{"Jardins Partagés", "jardins-partagés"},
		{"  spaced   out  ", "spaced-out"},
		{"already-slug", "already-slug"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
