package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/agora-concertations/backend/internal/models"
	"github.com/agora-concertations/backend/pkg/queue"
)

// Worker consumes the notification queue, delivers emails, and records every
// attempt. Failures retry with backoff up to queue.MaxRetries, then land in
// the DLQ.
type Worker struct {
	jobs   *queue.Queue
	sender *Sender
	logs   *LogRepository
	logger *zap.Logger
}

// NewWorker creates a notification worker.
func NewWorker(jobs *queue.Queue, sender *Sender, logs *LogRepository, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{jobs: jobs, sender: sender, logs: logs, logger: logger}
}

// Run blocks consuming jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("notification worker started", zap.String("queue", queue.QueueNotifications))
	for {
		job, _, err := w.jobs.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Error("dequeue failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue
		}
		if err := w.process(ctx, job); err != nil {
			w.logger.Warn("job failed", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt), zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			if rerr := w.jobs.Retry(ctx, job); rerr != nil {
				w.logger.Error("retry failed", zap.String("job_id", job.ID), zap.Error(rerr))
			}
		}
	}
}

// process delivers one job. Returning a non-nil error requeues the job;
// permanently undeliverable jobs are logged and swallowed.
func (w *Worker) process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeNotification {
		w.logger.Warn("unknown job type dropped", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		return nil
	}
	var payload queue.NotificationPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		w.logger.Warn("malformed payload dropped", zap.String("job_id", job.ID), zap.Error(err))
		return nil
	}

	eventID := payload.EventID
	log := &models.NotificationLog{
		EventID:        &eventID,
		BookingID:      payload.BookingID,
		Kind:           payload.Kind,
		RecipientName:  payload.RecipientName,
		RecipientEmail: payload.RecipientEmail,
		EventSubject:   payload.EventSubject,
	}
	if err := w.logs.Create(ctx, log); err != nil {
		return err
	}

	if err := w.sender.Send(ctx, payload); err != nil {
		if merr := w.logs.MarkFailed(ctx, log.ID, err.Error()); merr != nil {
			w.logger.Error("mark failed errored", zap.String("log_id", log.ID.String()), zap.Error(merr))
		}
		if errors.Is(err, ErrDisabled) {
			// Nothing to retry when delivery is switched off.
			w.logger.Info("delivery disabled, notification recorded only", zap.String("kind", payload.Kind))
			return nil
		}
		return err
	}

	if err := w.logs.MarkSent(ctx, log.ID, time.Now()); err != nil {
		w.logger.Error("mark sent errored", zap.String("log_id", log.ID.String()), zap.Error(err))
	}
	w.logger.Info("notification sent",
		zap.String("kind", payload.Kind),
		zap.String("recipient", payload.RecipientEmail),
		zap.String("event_id", payload.EventID.String()))
	return nil
}
