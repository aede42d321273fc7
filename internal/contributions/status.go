package contributions

import (
	"github.com/agora-concertations/backend/internal/models"
)

// needsStatusRow decides whether saving a contribution with the given status
// appends a new timeline row. A row is appended when the contribution has no
// history yet, or when the value differs from the latest entry. Re-saving the
// same value appends nothing, keeping repeated form submissions from
// polluting the timeline.
func needsStatusRow(current *models.ContributionStatus, status models.ContributionStatusValue) bool {
	if current == nil {
		return true
	}
	return current.Status != status
}
