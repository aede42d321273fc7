package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the derived lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingDeclined  BookingStatus = "declined"
)

// Booking is a participant's registration record for an event. At most one
// booking exists per (event, participant) pair, enforced by a unique
// constraint at the storage layer.
//
// A booking starts pending. An organizer accepting it sets ConfirmedOn; an
// organizer declining it sets CancelledOn and CancelledBy. Neither is ever
// cleared, but re-invoking the same transition refreshes the timestamp.
// Participants remove their own booking by deleting the row outright.
type Booking struct {
	ID            uuid.UUID  `json:"id"`
	EventID       uuid.UUID  `json:"event_id"`
	ParticipantID uuid.UUID  `json:"participant_id"`
	OfferHelp     bool       `json:"offer_help"`
	Comment       string     `json:"comment,omitempty"`
	ConfirmedOn   *time.Time `json:"confirmed_on,omitempty"`
	CancelledOn   *time.Time `json:"cancelled_on,omitempty"`
	CancelledBy   *uuid.UUID `json:"cancelled_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Participant details, populated on organizer-facing reads and exports.
	ParticipantFirstName string `json:"participant_first_name,omitempty"`
	ParticipantLastName  string `json:"participant_last_name,omitempty"`
	ParticipantEmail     string `json:"participant_email,omitempty"`
}

// Status derives the lifecycle state. CancelledOn wins over ConfirmedOn when
// both are set (decline after accept overwrites the decision).
func (b *Booking) Status() BookingStatus {
	if b.CancelledOn != nil {
		return BookingDeclined
	}
	if b.ConfirmedOn != nil {
		return BookingConfirmed
	}
	return BookingPending
}

// Accept records an organizer confirmation at the given time. Calling it
// again refreshes the timestamp. It never clears an earlier decline.
func (b *Booking) Accept(now time.Time) {
	b.ConfirmedOn = &now
}

// Decline records an organizer refusal by the given actor at the given time.
func (b *Booking) Decline(by uuid.UUID, now time.Time) {
	b.CancelledOn = &now
	b.CancelledBy = &by
}
