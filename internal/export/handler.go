package export

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agora-concertations/backend/internal/bookings"
	"github.com/agora-concertations/backend/internal/events"
	"github.com/agora-concertations/backend/pkg/response"
	"github.com/agora-concertations/backend/pkg/storage"
)

// Handler serves booking exports for managed events. Both routes run after
// RequireManageAccess, so the event in context is already scoped to the actor.
type Handler struct {
	bookingRepo *bookings.Repository
	s3          *storage.S3
	logger      *zap.Logger
}

// NewHandler creates an export handler. s3 may be nil; archival then reports
// service unavailable while the plain download keeps working.
func NewHandler(bookingRepo *bookings.Repository, s3 *storage.S3, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{bookingRepo: bookingRepo, s3: s3, logger: logger}
}

// Download handles GET /organizer/events/:id/bookings/export. Streams the CSV
// as an attachment.
func (h *Handler) Download(c *gin.Context) {
	event := events.ManagedEvent(c)
	list, err := h.bookingRepo.ListByEvent(c.Request.Context(), event.ID)
	if err != nil {
		h.logger.Error("export listing failed", zap.Error(err), zap.String("event_id", event.ID.String()))
		response.Internal(c, "failed to export bookings")
		return
	}
	out, err := BookingsCSV(list)
	if err != nil {
		h.logger.Error("export encoding failed", zap.Error(err), zap.String("event_id", event.ID.String()))
		response.Internal(c, "failed to export bookings")
		return
	}

	filename := fmt.Sprintf("bookings-%s.csv", event.ID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", out)
}

// Archive handles POST /organizer/events/:id/bookings/export/archive. Uploads
// the CSV to the exports bucket and returns a pre-signed download URL.
func (h *Handler) Archive(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "export archival is not configured")
		return
	}
	event := events.ManagedEvent(c)
	list, err := h.bookingRepo.ListByEvent(c.Request.Context(), event.ID)
	if err != nil {
		h.logger.Error("export listing failed", zap.Error(err), zap.String("event_id", event.ID.String()))
		response.Internal(c, "failed to export bookings")
		return
	}
	out, err := BookingsCSV(list)
	if err != nil {
		h.logger.Error("export encoding failed", zap.Error(err), zap.String("event_id", event.ID.String()))
		response.Internal(c, "failed to export bookings")
		return
	}

	generatedAt := time.Now()
	key := storage.ExportKey(event.ID.String(), generatedAt)
	bucket := h.s3.ExportsBucket()
	if _, err := h.s3.Upload(c.Request.Context(), bucket, key, "text/csv; charset=utf-8", bytes.NewReader(out), int64(len(out))); err != nil {
		h.logger.Error("export upload failed", zap.Error(err), zap.String("key", key))
		response.Internal(c, "failed to archive export")
		return
	}
	url, err := h.s3.GeneratePresignedDownloadURL(c.Request.Context(), bucket, key, h.s3.PresignExpire())
	if err != nil {
		h.logger.Error("export presign failed", zap.Error(err), zap.String("key", key))
		response.Internal(c, "failed to archive export")
		return
	}

	response.OK(c, gin.H{
		"key":          key,
		"download_url": url,
		"expires_in":   int(h.s3.PresignExpire().Seconds()),
		"generated_at": generatedAt.UTC(),
		"rows":         len(list),
	})
}
