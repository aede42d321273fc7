package events

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agora-concertations/backend/internal/auth"
	"github.com/agora-concertations/backend/internal/middleware"
	"github.com/agora-concertations/backend/internal/models"
	"github.com/agora-concertations/backend/internal/policy"
	"github.com/agora-concertations/backend/pkg/redis"
	"github.com/agora-concertations/backend/pkg/response"
)

const (
	publicListCacheKey = "cache:public_events"
	publicListCacheTTL = 60 * time.Second
)

// EventRequest is the body for creating and updating events.
type EventRequest struct {
	PubStatus            string `json:"pub_status"`
	Theme                string `json:"theme" binding:"required"`
	SubTheme             string `json:"sub_theme"`
	Subject              string `json:"subject"`
	Description          string `json:"description"`
	Scale                string `json:"scale"`
	Start                string `json:"start" binding:"required"`
	End                  string `json:"end" binding:"required"`
	PlaceName            string `json:"place_name"`
	Address              string `json:"address" binding:"required"`
	ZipCode              string `json:"zip_code" binding:"required"`
	City                 string `json:"city" binding:"required"`
	PracticalInformation string `json:"practical_information"`
	ImageURL             string `json:"image_url"`
	BookingOnline        bool   `json:"booking_online"`
	ParticipantHelp      bool   `json:"participant_help"`
	Planning             string `json:"planning"`
	Synthesis            string `json:"synthesis"`
}

// AddOrganizerRequest is the body for POST /organizer/events/:id/organizers.
type AddOrganizerRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Handler handles event HTTP endpoints.
type Handler struct {
	repo     *Repository
	userRepo *auth.Repository
	cache    *redis.Client
	logger   *zap.Logger
}

// NewHandler creates an events handler. cache may be nil (listing served
// uncached).
func NewHandler(repo *Repository, userRepo *auth.Repository, cache *redis.Client, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, userRepo: userRepo, cache: cache, logger: logger}
}

// apply validates the request and copies it onto the event. Returns per-field
// messages on failure; the event is untouched in that case.
func (req *EventRequest) apply(e *models.Event) map[string]string {
	fields := map[string]string{}

	pubStatus := models.PubStatusUnpublished
	if req.PubStatus != "" {
		switch models.PubStatus(req.PubStatus) {
		case models.PubStatusPublic, models.PubStatusPrivate, models.PubStatusUnpublished:
			pubStatus = models.PubStatus(req.PubStatus)
		default:
			fields["pub_status"] = "must be one of pub, priv, unpub"
		}
	}

	if !models.ValidTheme(req.Theme) {
		fields["theme"] = "unknown theme"
	}

	scale := models.ScaleLocal
	if req.Scale != "" {
		if !models.ValidScale(req.Scale) {
			fields["scale"] = "unknown scale"
		} else {
			scale = models.Scale(req.Scale)
		}
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		fields["start"] = "must be RFC3339"
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		fields["end"] = "must be RFC3339"
	}
	if fields["start"] == "" && fields["end"] == "" && end.Before(start) {
		fields["end"] = "must not be before start"
	}

	if len(fields) > 0 {
		return fields
	}

	e.PubStatus = pubStatus
	e.Theme = models.Theme(req.Theme)
	e.SubTheme = req.SubTheme
	e.Subject = req.Subject
	e.Description = req.Description
	e.Scale = scale
	e.Start = start
	e.End = end
	e.PlaceName = req.PlaceName
	e.Address = req.Address
	e.ZipCode = req.ZipCode
	e.City = req.City
	e.PracticalInformation = req.PracticalInformation
	e.ImageURL = req.ImageURL
	e.BookingOnline = req.BookingOnline
	e.ParticipantHelp = req.ParticipantHelp
	e.Planning = req.Planning
	e.Synthesis = req.Synthesis
	return nil
}

// List handles GET /events. Public listing with permissive theme/scale/
// upcoming filters; the unfiltered listing is briefly cached in Redis.
func (h *Handler) List(c *gin.Context) {
	f := ParseFilters(c.Query("theme"), c.Query("scale"), c.Query("upcoming"), time.Now())

	if h.cache != nil && f.IsZero() {
		if raw, err := h.cache.Get(c.Request.Context(), publicListCacheKey).Result(); err == nil {
			var cached []models.Event
			if json.Unmarshal([]byte(raw), &cached) == nil {
				response.OK(c, cached)
				return
			}
		}
	}

	list, err := h.repo.ListPublic(c.Request.Context(), f)
	if err != nil {
		h.logger.Error("list public events failed", zap.Error(err))
		response.Internal(c, "failed to list events")
		return
	}

	if h.cache != nil && f.IsZero() {
		if raw, err := json.Marshal(list); err == nil {
			_ = h.cache.Set(c.Request.Context(), publicListCacheKey, raw, publicListCacheTTL).Err()
		}
	}
	response.OK(c, list)
}

// Detail handles GET /events/:id. Accessible by direct link regardless of
// publication status, matching the listing/detail split: only the listing is
// restricted to public events.
func (h *Handler) Detail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	event, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	response.OK(c, event)
}

// Dashboard handles GET /organizer/events. Lists events the actor organizes.
func (h *Handler) Dashboard(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	list, err := h.repo.ListManagedBy(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("dashboard listing failed", zap.Error(err))
		response.Internal(c, "failed to list events")
		return
	}
	response.OK(c, list)
}

// Create handles POST /organizer/events. The creator becomes owner and sole
// initial organizer, in one transaction.
func (h *Handler) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	event := &models.Event{OwnerID: c.MustGet(middleware.ContextUserID).(uuid.UUID)}
	if fields := req.apply(event); fields != nil {
		response.ValidationFailed(c, fields)
		return
	}

	if err := h.repo.Create(c.Request.Context(), event); err != nil {
		h.logger.Error("create event failed", zap.Error(err))
		response.Internal(c, "failed to create event")
		return
	}
	h.invalidateListing(c)
	response.Created(c, event)
}

// ManagedDetail handles GET /organizer/events/:id (after RequireManageAccess).
func (h *Handler) ManagedDetail(c *gin.Context) {
	response.OK(c, ManagedEvent(c))
}

// Update handles PATCH /organizer/events/:id (after RequireManageAccess).
// Owner and organizer set are immutable here.
func (h *Handler) Update(c *gin.Context) {
	event := ManagedEvent(c)

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if fields := req.apply(event); fields != nil {
		response.ValidationFailed(c, fields)
		return
	}

	if err := h.repo.Update(c.Request.Context(), event); err != nil {
		h.logger.Error("update event failed", zap.Error(err), zap.String("event_id", event.ID.String()))
		response.Internal(c, "failed to update event")
		return
	}
	h.invalidateListing(c)
	response.OK(c, event)
}

// AddOrganizer handles POST /organizer/events/:id/organizers. Owner-only:
// co-organizers manage the event but cannot extend the organizer set.
func (h *Handler) AddOrganizer(c *gin.Context) {
	event := ManagedEvent(c)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	actor := &models.User{ID: userID, IsOrganizer: true}

	if !policy.CanAddOrganizer(actor, event) {
		response.Forbidden(c, "only the event owner can add organizers")
		return
	}

	var req AddOrganizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	target, err := h.userRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.NotFound(c, "no user with this email")
		return
	}
	if !policy.IsOrganizerRole(target) {
		response.ValidationFailed(c, map[string]string{"email": "this email does not belong to an organizer account"})
		return
	}

	added, err := h.repo.AddOrganizer(c.Request.Context(), event.ID, target.ID)
	if err != nil {
		h.logger.Error("add organizer failed", zap.Error(err), zap.String("event_id", event.ID.String()))
		response.Internal(c, "failed to add organizer")
		return
	}
	if !added {
		response.OK(c, gin.H{"added": false, "message": "already a member of the organizers"})
		return
	}
	response.OK(c, gin.H{"added": true, "user_id": target.ID})
}

func (h *Handler) invalidateListing(c *gin.Context) {
	if h.cache != nil {
		_ = h.cache.Del(c.Request.Context(), publicListCacheKey).Err()
	}
}
