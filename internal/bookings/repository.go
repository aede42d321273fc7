package bookings

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agora-concertations/backend/internal/models"
)

const bookingColumns = `b.id, b.event_id, b.participant_id, b.offer_help, b.comment,
	b.confirmed_on, b.cancelled_on, b.cancelled_by, b.created_at, b.updated_at,
	u.first_name, u.last_name, u.email`

// Repository handles booking persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a bookings repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a pending booking. The unique (event_id, participant_id)
// constraint rejects concurrent double-registration at the storage layer;
// callers detect the duplicate-key error and report Conflict. No
// check-then-insert.
func (r *Repository) Create(ctx context.Context, b *models.Booking) error {
	const q = `INSERT INTO bookings (event_id, participant_id, offer_help, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, b.EventID, b.ParticipantID, b.OfferHelp, b.Comment).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// GetByID returns a booking with participant details loaded.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	const q = `SELECT ` + bookingColumns + `
		FROM bookings b
		INNER JOIN users u ON u.id = b.participant_id
		WHERE b.id = $1`
	var b models.Booking
	err := r.pool.QueryRow(ctx, q, id).Scan(&b.ID, &b.EventID, &b.ParticipantID, &b.OfferHelp, &b.Comment,
		&b.ConfirmedOn, &b.CancelledOn, &b.CancelledBy, &b.CreatedAt, &b.UpdatedAt,
		&b.ParticipantFirstName, &b.ParticipantLastName, &b.ParticipantEmail)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByEventAndParticipant returns the caller's booking for an event, if any.
func (r *Repository) GetByEventAndParticipant(ctx context.Context, eventID, participantID uuid.UUID) (*models.Booking, error) {
	const q = `SELECT ` + bookingColumns + `
		FROM bookings b
		INNER JOIN users u ON u.id = b.participant_id
		WHERE b.event_id = $1 AND b.participant_id = $2`
	var b models.Booking
	err := r.pool.QueryRow(ctx, q, eventID, participantID).Scan(&b.ID, &b.EventID, &b.ParticipantID, &b.OfferHelp, &b.Comment,
		&b.ConfirmedOn, &b.CancelledOn, &b.CancelledBy, &b.CreatedAt, &b.UpdatedAt,
		&b.ParticipantFirstName, &b.ParticipantLastName, &b.ParticipantEmail)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByEvent returns all bookings of an event with participant details,
// oldest first (the organizer view and the CSV export).
func (r *Repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Booking, error) {
	const q = `SELECT ` + bookingColumns + `
		FROM bookings b
		INNER JOIN users u ON u.id = b.participant_id
		WHERE b.event_id = $1
		ORDER BY b.created_at`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.EventID, &b.ParticipantID, &b.OfferHelp, &b.Comment,
			&b.ConfirmedOn, &b.CancelledOn, &b.CancelledBy, &b.CreatedAt, &b.UpdatedAt,
			&b.ParticipantFirstName, &b.ParticipantLastName, &b.ParticipantEmail); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// SaveDecision persists the accept/decline fields set by the lifecycle
// transition. Status rows are never reverted, only re-stamped.
func (r *Repository) SaveDecision(ctx context.Context, b *models.Booking) error {
	const q = `UPDATE bookings SET confirmed_on = $1, cancelled_on = $2, cancelled_by = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at`
	return r.pool.QueryRow(ctx, q, b.ConfirmedOn, b.CancelledOn, b.CancelledBy, b.ID).Scan(&b.UpdatedAt)
}

// DeleteOwned removes the booking only when it belongs to the participant.
// Returns false when nothing matched, which callers surface as NotFound.
// Self-unregistration is a hard delete; only organizer declines stay in
// history.
func (r *Repository) DeleteOwned(ctx context.Context, id, participantID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1 AND participant_id = $2`, id, participantID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
