// Package export builds the organizer-facing bookings CSV and archives
// generated files to object storage.
package export

import (
	"bytes"
	"encoding/csv"

	"github.com/agora-concertations/backend/internal/models"
)

var csvHeader = []string{"Prénom", "Nom", "Email", "Aide", "Commentaire", "Statut"}

const dateLayout = "02/01/2006"

// StatusLabel renders the booking lifecycle state as the French label shown
// to organizers in the exported file.
func StatusLabel(b *models.Booking) string {
	switch b.Status() {
	case models.BookingConfirmed:
		return "Confirmée le " + b.ConfirmedOn.Format(dateLayout)
	case models.BookingDeclined:
		return "Déclinée le " + b.CancelledOn.Format(dateLayout)
	default:
		return "En attente"
	}
}

// BookingsCSV renders the event's bookings as a CSV document, one row per
// booking in the given order.
func BookingsCSV(bookings []models.Booking) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i := range bookings {
		b := &bookings[i]
		help := "non"
		if b.OfferHelp {
			help = "oui"
		}
		row := []string{
			b.ParticipantFirstName,
			b.ParticipantLastName,
			b.ParticipantEmail,
			help,
			b.Comment,
			StatusLabel(b),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
