package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind identifies which booking lifecycle email is sent.
const (
	NotificationRegistrationReceived  = "registration_received"
	NotificationParticipationAccepted = "participation_accepted"
	NotificationParticipationDeclined = "participation_declined"
)

// NotificationLogStatus for delivery.
const (
	NotificationStatusPending = "pending"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
)

// NotificationLog records dispatched booking notifications. Delivery failures
// are recorded here and never surfaced to the request that caused them.
type NotificationLog struct {
	ID             uuid.UUID  `json:"id"`
	EventID        *uuid.UUID `json:"event_id,omitempty"`
	BookingID      *uuid.UUID `json:"booking_id,omitempty"`
	Kind           string     `json:"kind"`
	RecipientName  string     `json:"recipient_name"`
	RecipientEmail string     `json:"recipient_email"`
	EventSubject   string     `json:"event_subject,omitempty"`
	Status         string     `json:"status"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
