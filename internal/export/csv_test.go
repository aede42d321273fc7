package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/agora-concertations/backend/internal/models"
)

func TestStatusLabel(t *testing.T) {
	when := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	actor := uuid.New()

	pending := &models.Booking{}
	if got := StatusLabel(pending); got != "En attente" {
		t.Errorf("pending label = %q", got)
	}

	confirmed := &models.Booking{}
	confirmed.Accept(when)
	if got := StatusLabel(confirmed); got != "Confirmée le 15/03/2026" {
		t.Errorf("confirmed label = %q", got)
	}

	declined := &models.Booking{}
	declined.Decline(actor, when)
	if got := StatusLabel(declined); got != "Déclinée le 15/03/2026" {
		t.Errorf("declined label = %q", got)
	}
}

func TestBookingsCSV(t *testing.T) {
	when := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	confirmed := models.Booking{
		ParticipantFirstName: "Ada",
		ParticipantLastName:  "Lovelace",
		ParticipantEmail:     "ada@example.org",
		OfferHelp:            true,
		Comment:              "peut apporter du café",
	}
	confirmed.Accept(when)
	pending := models.Booking{
		ParticipantFirstName: "Blaise",
		ParticipantLastName:  "Pascal",
		ParticipantEmail:     "blaise@example.org",
	}

	out, err := BookingsCSV([]models.Booking{confirmed, pending})
	if err != nil {
		t.Fatalf("BookingsCSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	if records[0][0] != "Prénom" || records[0][5] != "Statut" {
		t.Errorf("header = %v", records[0])
	}
	want1 := []string{"Ada", "Lovelace", "ada@example.org", "oui", "peut apporter du café", "Confirmée le 15/03/2026"}
	for i, cell := range want1 {
		if records[1][i] != cell {
			t.Errorf("row 1 col %d = %q, want %q", i, records[1][i], cell)
		}
	}
	if records[2][3] != "non" || records[2][5] != "En attente" {
		t.Errorf("row 2 = %v", records[2])
	}
}

func TestBookingsCSVEmpty(t *testing.T) {
	out, err := BookingsCSV(nil)
	if err != nil {
		t.Fatalf("BookingsCSV: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("empty export should still carry the header, got %d records", len(records))
	}
}
