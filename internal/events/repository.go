package events

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agora-concertations/backend/internal/models"
)

const eventColumns = `e.id, e.owner_id, e.pub_status, e.theme, e.sub_theme, e.subject, e.description, e.scale,
	e.start_at, e.end_at, e.place_name, e.address, e.zip_code, e.city, e.practical_information, e.image_url,
	e.booking_online, e.participant_help, e.planning, e.synthesis, e.created_at, e.updated_at`

// Repository handles event and organizer membership persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanEvent(row pgx.Row, e *models.Event) error {
	return row.Scan(&e.ID, &e.OwnerID, &e.PubStatus, &e.Theme, &e.SubTheme, &e.Subject, &e.Description, &e.Scale,
		&e.Start, &e.End, &e.PlaceName, &e.Address, &e.ZipCode, &e.City, &e.PracticalInformation, &e.ImageURL,
		&e.BookingOnline, &e.ParticipantHelp, &e.Planning, &e.Synthesis, &e.CreatedAt, &e.UpdatedAt)
}

// Create inserts an event and its owner membership in one transaction, so an
// event is never visible without its owner in the organizers set.
func (r *Repository) Create(ctx context.Context, e *models.Event) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `INSERT INTO events (owner_id, pub_status, theme, sub_theme, subject, description, scale,
			start_at, end_at, place_name, address, zip_code, city, practical_information, image_url,
			booking_online, participant_help, planning, synthesis)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at, updated_at`
	err = tx.QueryRow(ctx, q, e.OwnerID, e.PubStatus, e.Theme, e.SubTheme, e.Subject, e.Description, e.Scale,
		e.Start, e.End, e.PlaceName, e.Address, e.ZipCode, e.City, e.PracticalInformation, e.ImageURL,
		e.BookingOnline, e.ParticipantHelp, e.Planning, e.Synthesis).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO event_organizers (event_id, user_id) VALUES ($1, $2)`, e.ID, e.OwnerID); err != nil {
		return err
	}
	e.OrganizerIDs = []uuid.UUID{e.OwnerID}

	return tx.Commit(ctx)
}

// GetByID returns an event with its organizer IDs loaded.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	const q = `SELECT ` + eventColumns + `,
			COALESCE(array_agg(eo.user_id) FILTER (WHERE eo.user_id IS NOT NULL), '{}')
		FROM events e
		LEFT JOIN event_organizers eo ON eo.event_id = e.id
		WHERE e.id = $1
		GROUP BY e.id`
	var e models.Event
	err := r.pool.QueryRow(ctx, q, id).Scan(&e.ID, &e.OwnerID, &e.PubStatus, &e.Theme, &e.SubTheme, &e.Subject,
		&e.Description, &e.Scale, &e.Start, &e.End, &e.PlaceName, &e.Address, &e.ZipCode, &e.City,
		&e.PracticalInformation, &e.ImageURL, &e.BookingOnline, &e.ParticipantHelp, &e.Planning, &e.Synthesis,
		&e.CreatedAt, &e.UpdatedAt, &e.OrganizerIDs)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetManagedByUser returns the event only when the user is one of its
// organizers. A non-organizer of the event gets pgx.ErrNoRows, which handlers
// surface as NotFound so existence is not leaked.
func (r *Repository) GetManagedByUser(ctx context.Context, id, userID uuid.UUID) (*models.Event, error) {
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !e.HasOrganizer(userID) {
		return nil, pgx.ErrNoRows
	}
	return e, nil
}

// ListManagedBy returns events the user organizes, ordered by start (the
// organizer dashboard).
func (r *Repository) ListManagedBy(ctx context.Context, userID uuid.UUID) ([]models.Event, error) {
	const q = `SELECT ` + eventColumns + `
		FROM events e
		INNER JOIN event_organizers eo ON eo.event_id = e.id AND eo.user_id = $1
		ORDER BY e.start_at, e.end_at`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Event
	for rows.Next() {
		var e models.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// ListPublic returns public events matching the filters, ordered by start.
func (r *Repository) ListPublic(ctx context.Context, f Filters) ([]models.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events e WHERE e.pub_status = 'pub'`
	var args []interface{}
	if f.Theme != "" {
		args = append(args, f.Theme)
		q += ` AND e.theme = $` + strconv.Itoa(len(args))
	}
	if f.Scale != "" {
		args = append(args, f.Scale)
		q += ` AND e.scale = $` + strconv.Itoa(len(args))
	}
	if f.Upcoming {
		args = append(args, f.Now)
		q += ` AND e.start_at >= $` + strconv.Itoa(len(args))
	}
	q += ` ORDER BY e.start_at, e.end_at`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Event
	for rows.Next() {
		var e models.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Update rewrites the mutable event fields. Owner and organizer memberships
// are not touched here.
func (r *Repository) Update(ctx context.Context, e *models.Event) error {
	const q = `UPDATE events SET pub_status = $1, theme = $2, sub_theme = $3, subject = $4, description = $5,
			scale = $6, start_at = $7, end_at = $8, place_name = $9, address = $10, zip_code = $11, city = $12,
			practical_information = $13, image_url = $14, booking_online = $15, participant_help = $16,
			planning = $17, synthesis = $18, updated_at = NOW()
		WHERE id = $19
		RETURNING updated_at`
	return r.pool.QueryRow(ctx, q, e.PubStatus, e.Theme, e.SubTheme, e.Subject, e.Description,
		e.Scale, e.Start, e.End, e.PlaceName, e.Address, e.ZipCode, e.City,
		e.PracticalInformation, e.ImageURL, e.BookingOnline, e.ParticipantHelp,
		e.Planning, e.Synthesis, e.ID).Scan(&e.UpdatedAt)
}

// AddOrganizer adds the user to the event's organizer set. Returns false when
// the user was already a member (the operation is a reported no-op, never an
// error).
func (r *Repository) AddOrganizer(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	const q = `INSERT INTO event_organizers (event_id, user_id) VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING`
	tag, err := r.pool.Exec(ctx, q, eventID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
