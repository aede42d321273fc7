package contributions

import (
	"testing"
	"time"

	"github.com/agora-concertations/backend/internal/models"
)

func TestNeedsStatusRow(t *testing.T) {
	study := &models.ContributionStatus{
		Status:   models.StatusUnderStudy,
		ChangeOn: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		current *models.ContributionStatus
		status  models.ContributionStatusValue
		want    bool
	}{
		{"no history yet always appends", nil, models.StatusUnderStudy, true},
		{"same value appends nothing", study, models.StatusUnderStudy, false},
		{"different value appends", study, models.StatusSelected, true},
		{"back to an earlier value still appends", study, models.StatusUnsuccessful, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := needsStatusRow(tt.current, tt.status); got != tt.want {
				t.Errorf("needsStatusRow(%v, %q) = %v, want %v", tt.current, tt.status, got, tt.want)
			}
		})
	}
}

func TestNeedsStatusRowIdempotent(t *testing.T) {
	// Applying the decision twice with the same value must not append twice:
	// after the first append the latest row carries the value, so the second
	// call reports false.
	first := needsStatusRow(nil, models.StatusSelected)
	if !first {
		t.Fatal("first save must append")
	}
	latest := &models.ContributionStatus{Status: models.StatusSelected}
	if needsStatusRow(latest, models.StatusSelected) {
		t.Error("second save with identical value must not append")
	}
}
