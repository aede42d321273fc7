package bookings

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agora-concertations/backend/internal/auth"
	"github.com/agora-concertations/backend/internal/events"
	"github.com/agora-concertations/backend/internal/middleware"
	"github.com/agora-concertations/backend/internal/models"
	"github.com/agora-concertations/backend/internal/policy"
	"github.com/agora-concertations/backend/pkg/queue"
	"github.com/agora-concertations/backend/pkg/response"
)

// RegisterRequest is the body for POST /events/:id/register.
type RegisterRequest struct {
	OfferHelp bool   `json:"offer_help"`
	Comment   string `json:"comment"`
}

// Handler handles booking HTTP endpoints.
type Handler struct {
	repo      *Repository
	eventRepo *events.Repository
	userRepo  *auth.Repository
	jobs      *queue.Queue
	logger    *zap.Logger
}

// NewHandler creates a bookings handler. jobs may be nil (notifications
// disabled).
func NewHandler(repo *Repository, eventRepo *events.Repository, userRepo *auth.Repository, jobs *queue.Queue, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, eventRepo: eventRepo, userRepo: userRepo, jobs: jobs, logger: logger}
}

// Register handles POST /events/:id/register. Creates a pending booking; a
// duplicate registration reports Conflict with a friendly message and never
// creates a second row.
func (h *Handler) Register(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	event, err := h.eventRepo.GetByID(c.Request.Context(), eventID)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	booking := &models.Booking{
		EventID:       event.ID,
		ParticipantID: userID,
		OfferHelp:     req.OfferHelp,
		Comment:       req.Comment,
	}
	if err := h.repo.Create(c.Request.Context(), booking); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			response.Conflict(c, "already registered for this event")
			return
		}
		h.logger.Error("create booking failed", zap.Error(err), zap.String("event_id", event.ID.String()))
		response.Internal(c, "failed to register")
		return
	}

	h.notify(c, models.NotificationRegistrationReceived, event, booking)
	response.Created(c, booking)
}

// Unregister handles DELETE /bookings/:id. The delete is scoped to the
// requesting participant; someone else's booking yields NotFound.
func (h *Handler) Unregister(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	deleted, err := h.repo.DeleteOwned(c.Request.Context(), id, userID)
	if err != nil {
		h.logger.Error("delete booking failed", zap.Error(err), zap.String("booking_id", id.String()))
		response.Internal(c, "failed to unregister")
		return
	}
	if !deleted {
		response.NotFound(c, "booking not found")
		return
	}
	response.NoContent(c)
}

// MyBooking handles GET /events/:id/my-booking. Returns the caller's booking
// for the event, if any.
func (h *Handler) MyBooking(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	booking, err := h.repo.GetByEventAndParticipant(c.Request.Context(), eventID, userID)
	if err != nil {
		response.NotFound(c, "no booking for this event")
		return
	}
	response.OK(c, booking)
}

// ListByEvent handles GET /organizer/events/:id/bookings (after
// RequireManageAccess).
func (h *Handler) ListByEvent(c *gin.Context) {
	event := events.ManagedEvent(c)
	list, err := h.repo.ListByEvent(c.Request.Context(), event.ID)
	if err != nil {
		h.logger.Error("list bookings failed", zap.Error(err), zap.String("event_id", event.ID.String()))
		response.Internal(c, "failed to list bookings")
		return
	}
	out := make([]gin.H, 0, len(list))
	for i := range list {
		out = append(out, gin.H{"booking": list[i], "status": list[i].Status()})
	}
	response.OK(c, out)
}

// Accept handles POST /organizer/bookings/:id/accept. Re-invocation is
// permitted and refreshes the confirmation timestamp.
func (h *Handler) Accept(c *gin.Context) {
	booking, event, ok := h.managedBooking(c)
	if !ok {
		return
	}
	booking.Accept(time.Now())
	if err := h.repo.SaveDecision(c.Request.Context(), booking); err != nil {
		h.logger.Error("accept booking failed", zap.Error(err), zap.String("booking_id", booking.ID.String()))
		response.Internal(c, "failed to accept booking")
		return
	}
	h.notify(c, models.NotificationParticipationAccepted, event, booking)
	response.OK(c, gin.H{"booking": booking, "status": booking.Status()})
}

// Decline handles POST /organizer/bookings/:id/decline. The row is kept for
// export and audit, unlike participant self-unregistration.
func (h *Handler) Decline(c *gin.Context) {
	booking, event, ok := h.managedBooking(c)
	if !ok {
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	booking.Decline(userID, time.Now())
	if err := h.repo.SaveDecision(c.Request.Context(), booking); err != nil {
		h.logger.Error("decline booking failed", zap.Error(err), zap.String("booking_id", booking.ID.String()))
		response.Internal(c, "failed to decline booking")
		return
	}
	h.notify(c, models.NotificationParticipationDeclined, event, booking)
	response.OK(c, gin.H{"booking": booking, "status": booking.Status()})
}

// managedBooking loads the :id booking scoped to the requesting organizer.
// Bookings of events the actor does not manage yield NotFound.
func (h *Handler) managedBooking(c *gin.Context) (*models.Booking, *models.Event, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return nil, nil, false
	}
	booking, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "booking not found")
		return nil, nil, false
	}
	event, err := h.eventRepo.GetByID(c.Request.Context(), booking.EventID)
	if err != nil {
		response.NotFound(c, "booking not found")
		return nil, nil, false
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	actor := &models.User{ID: userID, IsOrganizer: true}
	if !policy.CanManageBookingAsOrganizer(actor, booking, event) {
		response.NotFound(c, "booking not found")
		return nil, nil, false
	}
	return booking, event, true
}

// notify enqueues the booking notification after the state change has
// committed. Queue failures are logged and swallowed; they never fail the
// request.
func (h *Handler) notify(c *gin.Context, kind string, event *models.Event, booking *models.Booking) {
	if h.jobs == nil {
		return
	}
	name := strings.TrimSpace(booking.ParticipantFirstName + " " + booking.ParticipantLastName)
	email := booking.ParticipantEmail
	if email == "" {
		participant, err := h.userRepo.GetByID(c.Request.Context(), booking.ParticipantID)
		if err != nil {
			h.logger.Warn("notification recipient lookup failed", zap.Error(err), zap.String("booking_id", booking.ID.String()))
			return
		}
		name = participant.FullName()
		email = participant.Email
	}
	bookingID := booking.ID
	err := h.jobs.EnqueueNotification(c.Request.Context(), queue.NotificationPayload{
		Kind:           kind,
		EventID:        event.ID,
		BookingID:      &bookingID,
		RecipientName:  name,
		RecipientEmail: email,
		EventSubject:   event.Subject,
	})
	if err != nil {
		h.logger.Warn("enqueue notification failed", zap.Error(err), zap.String("kind", kind))
	}
}
