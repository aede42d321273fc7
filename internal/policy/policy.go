// Package policy holds the access-control predicates gating every mutating
// operation. They are pure functions of (actor, resource) so each
// authorization decision is independently testable; handlers compose them
// and map failures to 403 (wrong role) or 404 (out-of-scope resource).
package policy

import (
	"github.com/google/uuid"

	"github.com/agora-concertations/backend/internal/models"
)

// IsOrganizerRole is the coarse role gate for organizer-only routes.
// Failing it signals Forbidden, not NotFound: the route class itself is
// off-limits, no resource existence is leaked.
func IsOrganizerRole(u *models.User) bool {
	return u != nil && u.IsOrganizer
}

// CanManageEvent reports whether u may update the event, manage its
// contributions, and view its bookings. True for the owner and any
// co-organizer. Lookups for managed events are scoped by this predicate and
// a mismatch yields NotFound, so actors cannot probe for events they do not
// manage.
func CanManageEvent(u *models.User, e *models.Event) bool {
	if u == nil || e == nil {
		return false
	}
	return e.OwnerID == u.ID || e.HasOrganizer(u.ID)
}

// CanAddOrganizer is strictly owner-only: co-organizers cannot extend the
// organizer set, keeping the privilege non-transitive.
func CanAddOrganizer(u *models.User, e *models.Event) bool {
	if u == nil || e == nil {
		return false
	}
	return e.OwnerID == u.ID
}

// CanViewContribution allows anyone on public contributions and only the
// parent event's owner on private ones. Co-organizers are deliberately
// excluded from private contributions.
func CanViewContribution(u *models.User, c *models.Contribution, parent *models.Event) bool {
	if c == nil || parent == nil {
		return false
	}
	if c.Public {
		return true
	}
	return u != nil && parent.OwnerID == u.ID
}

// CanManageBookingAsOrganizer gates accept/decline: the actor must organize
// the booking's event. Never combined with the participant variant.
func CanManageBookingAsOrganizer(u *models.User, b *models.Booking, event *models.Event) bool {
	if u == nil || b == nil || event == nil || event.ID != b.EventID {
		return false
	}
	return CanManageEvent(u, event)
}

// CanManageBookingAsParticipant gates self-unregistration: only the booking's
// own participant may remove it.
func CanManageBookingAsParticipant(userID uuid.UUID, b *models.Booking) bool {
	if b == nil {
		return false
	}
	return b.ParticipantID == userID
}
