package notifier

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agora-concertations/backend/internal/models"
)

// LogRepository persists notification delivery records.
type LogRepository struct {
	pool *pgxpool.Pool
}

// NewLogRepository creates a notification log repository.
func NewLogRepository(pool *pgxpool.Pool) *LogRepository {
	return &LogRepository{pool: pool}
}

// Create inserts a pending log row for a delivery attempt.
func (r *LogRepository) Create(ctx context.Context, l *models.NotificationLog) error {
	const q = `INSERT INTO notification_logs (event_id, booking_id, kind, recipient_name, recipient_email, event_subject, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, l.EventID, l.BookingID, l.Kind, l.RecipientName, l.RecipientEmail, l.EventSubject, models.NotificationStatusPending).
		Scan(&l.ID, &l.CreatedAt)
}

// MarkSent records a successful delivery.
func (r *LogRepository) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	const q = `UPDATE notification_logs SET status = $1, sent_at = $2 WHERE id = $3`
	_, err := r.pool.Exec(ctx, q, models.NotificationStatusSent, at, id)
	return err
}

// MarkFailed records a failed delivery with the provider error.
func (r *LogRepository) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	const q = `UPDATE notification_logs SET status = $1, error_message = $2 WHERE id = $3`
	_, err := r.pool.Exec(ctx, q, models.NotificationStatusFailed, message, id)
	return err
}

// ListByEvent returns delivery records for one event, newest first.
func (r *LogRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.NotificationLog, error) {
	const q = `SELECT id, event_id, booking_id, kind, recipient_name, recipient_email, event_subject, status, sent_at, error_message, created_at
		FROM notification_logs
		WHERE event_id = $1
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.NotificationLog
	for rows.Next() {
		var l models.NotificationLog
		if err := rows.Scan(&l.ID, &l.EventID, &l.BookingID, &l.Kind, &l.RecipientName, &l.RecipientEmail,
			&l.EventSubject, &l.Status, &l.SentAt, &l.ErrorMessage, &l.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
