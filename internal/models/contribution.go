package models

import (
	"time"

	"github.com/google/uuid"
)

// ContributionKind is the nature of a contribution.
type ContributionKind string

const (
	KindProposal ContributionKind = "proposal"
	KindIdea     ContributionKind = "idea"
	KindProject  ContributionKind = "project"
)

// ValidContributionKind reports whether s is a known kind value.
func ValidContributionKind(s string) bool {
	switch ContributionKind(s) {
	case KindProposal, KindIdea, KindProject:
		return true
	}
	return false
}

// ContributionStatusValue is one step of a contribution's review timeline.
type ContributionStatusValue string

const (
	StatusUnsuccessful ContributionStatusValue = "unsuccessful"
	StatusUnderStudy   ContributionStatusValue = "study"
	StatusSelected     ContributionStatusValue = "selected"
)

// ValidContributionStatus reports whether s is a known status value.
func ValidContributionStatus(s string) bool {
	switch ContributionStatusValue(s) {
	case StatusUnsuccessful, StatusUnderStudy, StatusSelected:
		return true
	}
	return false
}

// Contribution is an organizer-curated item attached to an event. Its review
// history lives in contribution_statuses as append-only rows; the current
// status is the most recently created row, never a cached field.
type Contribution struct {
	ID          uuid.UUID        `json:"id"`
	EventID     uuid.UUID        `json:"event_id"`
	Kind        ContributionKind `json:"kind"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Public      bool             `json:"public"`
	Tags        []string         `json:"tags,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// CurrentStatus is the latest timeline entry, loaded on reads. Nil only
	// before the first save completes, which every creation path prevents.
	CurrentStatus *ContributionStatus `json:"current_status,omitempty"`
}

// ContributionStatus is an append-only timeline entry. Rows are never updated
// or deleted; each status change is a new row.
type ContributionStatus struct {
	ID             uuid.UUID               `json:"id"`
	ContributionID uuid.UUID               `json:"contribution_id"`
	ChangeOn       time.Time               `json:"change_on"`
	Status         ContributionStatusValue `json:"status"`
	CreatedAt      time.Time               `json:"created_at"`
}
