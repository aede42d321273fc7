package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestBookingStatusDerivation(t *testing.T) {
	now := time.Now()
	actor := uuid.New()

	tests := []struct {
		name        string
		confirmedOn *time.Time
		cancelledOn *time.Time
		want        BookingStatus
	}{
		{"fresh booking is pending", nil, nil, BookingPending},
		{"confirmed_on set", &now, nil, BookingConfirmed},
		{"cancelled_on set", nil, &now, BookingDeclined},
		{"decline wins over earlier accept", &now, &now, BookingDeclined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{ConfirmedOn: tt.confirmedOn, CancelledOn: tt.cancelledOn}
			if tt.cancelledOn != nil {
				b.CancelledBy = &actor
			}
			if got := b.Status(); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBookingAccept(t *testing.T) {
	b := &Booking{}
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	b.Accept(first)
	if b.ConfirmedOn == nil || !b.ConfirmedOn.Equal(first) {
		t.Fatalf("ConfirmedOn = %v, want %v", b.ConfirmedOn, first)
	}
	if b.Status() != BookingConfirmed {
		t.Fatalf("Status() = %q after accept", b.Status())
	}

	// Re-accepting is allowed and refreshes the timestamp.
	second := first.Add(48 * time.Hour)
	b.Accept(second)
	if !b.ConfirmedOn.Equal(second) {
		t.Errorf("repeat accept kept old timestamp %v", b.ConfirmedOn)
	}
}

func TestBookingDecline(t *testing.T) {
	actor := uuid.New()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	b := &Booking{}
	b.Decline(actor, now)
	if b.CancelledOn == nil || !b.CancelledOn.Equal(now) {
		t.Fatalf("CancelledOn = %v, want %v", b.CancelledOn, now)
	}
	if b.CancelledBy == nil || *b.CancelledBy != actor {
		t.Fatalf("CancelledBy = %v, want %v", b.CancelledBy, actor)
	}
	if b.Status() != BookingDeclined {
		t.Fatalf("Status() = %q after decline", b.Status())
	}
}

func TestBookingDeclineAfterAcceptKeepsConfirmation(t *testing.T) {
	actor := uuid.New()
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	b := &Booking{}
	b.Accept(t0)
	b.Decline(actor, t0.Add(time.Hour))

	// The earlier confirmation timestamp stays on the record; only the
	// derived status flips.
	if b.ConfirmedOn == nil || !b.ConfirmedOn.Equal(t0) {
		t.Errorf("ConfirmedOn = %v, want %v", b.ConfirmedOn, t0)
	}
	if b.Status() != BookingDeclined {
		t.Errorf("Status() = %q, want declined", b.Status())
	}
}
