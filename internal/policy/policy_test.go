package policy

import (
	"testing"

	"github.com/google/uuid"

	"github.com/agora-concertations/backend/internal/models"
)

func newUser(isOrganizer bool) *models.User {
	return &models.User{ID: uuid.New(), IsOrganizer: isOrganizer}
}

func TestIsOrganizerRole(t *testing.T) {
	if IsOrganizerRole(nil) {
		t.Error("nil user must not pass the role gate")
	}
	if IsOrganizerRole(newUser(false)) {
		t.Error("participant-only user must not pass the role gate")
	}
	if !IsOrganizerRole(newUser(true)) {
		t.Error("organizer must pass the role gate")
	}
}

func TestCanManageEvent(t *testing.T) {
	owner := newUser(true)
	coorg := newUser(true)
	other := newUser(true)

	event := &models.Event{
		ID:           uuid.New(),
		OwnerID:      owner.ID,
		OrganizerIDs: []uuid.UUID{owner.ID, coorg.ID},
	}

	tests := []struct {
		name string
		user *models.User
		want bool
	}{
		{"owner", owner, true},
		{"co-organizer", coorg, true},
		{"unrelated organizer", other, false},
		{"nil user", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManageEvent(tt.user, event); got != tt.want {
				t.Errorf("CanManageEvent() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A co-organizer must not be able to add further organizers: the privilege
// is owner-only and non-transitive.
func TestCanAddOrganizerIsOwnerOnly(t *testing.T) {
	owner := newUser(true)
	coorg := newUser(true)
	event := &models.Event{
		ID:           uuid.New(),
		OwnerID:      owner.ID,
		OrganizerIDs: []uuid.UUID{owner.ID, coorg.ID},
	}

	if !CanAddOrganizer(owner, event) {
		t.Error("owner must be able to add organizers")
	}
	if CanAddOrganizer(coorg, event) {
		t.Error("co-organizer must not be able to add organizers")
	}
}

func TestCanViewContribution(t *testing.T) {
	owner := newUser(true)
	coorg := newUser(true)
	stranger := newUser(false)

	event := &models.Event{
		ID:           uuid.New(),
		OwnerID:      owner.ID,
		OrganizerIDs: []uuid.UUID{owner.ID, coorg.ID},
	}
	private := &models.Contribution{ID: uuid.New(), EventID: event.ID, Public: false}
	public := &models.Contribution{ID: uuid.New(), EventID: event.ID, Public: true}

	tests := []struct {
		name    string
		user    *models.User
		contrib *models.Contribution
		want    bool
	}{
		{"public visible to anonymous", nil, public, true},
		{"public visible to stranger", stranger, public, true},
		{"private visible to owner", owner, private, true},
		{"private hidden from co-organizer", coorg, private, false},
		{"private hidden from stranger", stranger, private, false},
		{"private hidden from anonymous", nil, private, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewContribution(tt.user, tt.contrib, event); got != tt.want {
				t.Errorf("CanViewContribution() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanManageBookingAsOrganizer(t *testing.T) {
	owner := newUser(true)
	coorg := newUser(true)
	participant := newUser(false)

	event := &models.Event{
		ID:           uuid.New(),
		OwnerID:      owner.ID,
		OrganizerIDs: []uuid.UUID{owner.ID, coorg.ID},
	}
	booking := &models.Booking{ID: uuid.New(), EventID: event.ID, ParticipantID: participant.ID}

	if !CanManageBookingAsOrganizer(owner, booking, event) {
		t.Error("owner must manage bookings of their event")
	}
	if !CanManageBookingAsOrganizer(coorg, booking, event) {
		t.Error("co-organizer must manage bookings of their event")
	}
	if CanManageBookingAsOrganizer(participant, booking, event) {
		t.Error("the participant must not accept or decline their own booking")
	}

	otherEvent := &models.Event{ID: uuid.New(), OwnerID: owner.ID, OrganizerIDs: []uuid.UUID{owner.ID}}
	if CanManageBookingAsOrganizer(owner, booking, otherEvent) {
		t.Error("event mismatch must fail")
	}
}

func TestCanManageBookingAsParticipant(t *testing.T) {
	participant := newUser(false)
	other := newUser(false)
	booking := &models.Booking{ID: uuid.New(), EventID: uuid.New(), ParticipantID: participant.ID}

	if !CanManageBookingAsParticipant(participant.ID, booking) {
		t.Error("participant must be able to remove their own booking")
	}
	if CanManageBookingAsParticipant(other.ID, booking) {
		t.Error("other users must not remove someone else's booking")
	}
}
