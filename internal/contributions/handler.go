package contributions

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agora-concertations/backend/internal/events"
	"github.com/agora-concertations/backend/internal/middleware"
	"github.com/agora-concertations/backend/internal/models"
	"github.com/agora-concertations/backend/internal/policy"
	"github.com/agora-concertations/backend/pkg/response"
)

// ContributionRequest is the body for creating and updating contributions.
// The review status rides along with the content fields, as one form.
type ContributionRequest struct {
	Kind        string   `json:"kind" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Public      *bool    `json:"public"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status" binding:"required"`
	ChangeOn    string   `json:"change_on"`
}

// Handler handles contribution HTTP endpoints.
type Handler struct {
	repo      *Repository
	eventRepo *events.Repository
	logger    *zap.Logger
}

// NewHandler creates a contributions handler.
func NewHandler(repo *Repository, eventRepo *events.Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, eventRepo: eventRepo, logger: logger}
}

// validate checks enum and date fields, returning per-field messages and the
// parsed pieces on success.
func (req *ContributionRequest) validate() (models.ContributionStatusValue, time.Time, bool, map[string]string) {
	fields := map[string]string{}

	if !models.ValidContributionKind(req.Kind) {
		fields["kind"] = "must be one of proposal, idea, project"
	}
	if !models.ValidContributionStatus(req.Status) {
		fields["status"] = "must be one of unsuccessful, study, selected"
	}

	changeOn := time.Now().UTC().Truncate(24 * time.Hour)
	if req.ChangeOn != "" {
		parsed, err := time.Parse("2006-01-02", req.ChangeOn)
		if err != nil {
			fields["change_on"] = "must be a YYYY-MM-DD date"
		} else {
			changeOn = parsed
		}
	}

	if len(fields) > 0 {
		return "", time.Time{}, false, fields
	}

	public := true
	if req.Public != nil {
		public = *req.Public
	}
	return models.ContributionStatusValue(req.Status), changeOn, public, nil
}

// ListPublic handles GET /contributions. Cross-event listing of public
// contributions on public events, with permissive theme/scale/tag filters:
// invalid values are dropped, never rejected.
func (h *Handler) ListPublic(c *gin.Context) {
	f := PublicFilters{Tag: c.Query("tag")}
	if models.ValidTheme(c.Query("theme")) {
		f.Theme = c.Query("theme")
	}
	if models.ValidScale(c.Query("scale")) {
		f.Scale = c.Query("scale")
	}

	list, err := h.repo.ListPublic(c.Request.Context(), f)
	if err != nil {
		h.logger.Error("list public contributions failed", zap.Error(err))
		response.Internal(c, "failed to list contributions")
		return
	}
	response.OK(c, list)
}

// ListByEvent handles GET /events/:id/contributions. Public contributions of
// the event, reachable by direct link like the event detail itself.
func (h *Handler) ListByEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	if _, err := h.eventRepo.GetByID(c.Request.Context(), eventID); err != nil {
		response.NotFound(c, "event not found")
		return
	}
	list, err := h.repo.ListByEvent(c.Request.Context(), eventID, true)
	if err != nil {
		h.logger.Error("list event contributions failed", zap.Error(err), zap.String("event_id", eventID.String()))
		response.Internal(c, "failed to list contributions")
		return
	}
	response.OK(c, list)
}

// Detail handles GET /contributions/:id. Private contributions are visible to
// the parent event's owner only; everyone else gets NotFound so private items
// are indistinguishable from absent ones.
func (h *Handler) Detail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid contribution id")
		return
	}
	contribution, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "contribution not found")
		return
	}
	parent, err := h.eventRepo.GetByID(c.Request.Context(), contribution.EventID)
	if err != nil {
		response.NotFound(c, "contribution not found")
		return
	}

	var actor *models.User
	if v, ok := c.Get(middleware.ContextUserID); ok {
		actor = &models.User{ID: v.(uuid.UUID)}
	}
	if !policy.CanViewContribution(actor, contribution, parent) {
		response.NotFound(c, "contribution not found")
		return
	}
	response.OK(c, contribution)
}

// ListManaged handles GET /organizer/events/:id/contributions (after
// RequireManageAccess). Private contributions included.
func (h *Handler) ListManaged(c *gin.Context) {
	event := events.ManagedEvent(c)
	list, err := h.repo.ListByEvent(c.Request.Context(), event.ID, false)
	if err != nil {
		h.logger.Error("list managed contributions failed", zap.Error(err), zap.String("event_id", event.ID.String()))
		response.Internal(c, "failed to list contributions")
		return
	}
	response.OK(c, list)
}

// Create handles POST /organizer/events/:id/contributions (after
// RequireManageAccess). Contribution and first status row land atomically.
func (h *Handler) Create(c *gin.Context) {
	event := events.ManagedEvent(c)

	var req ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	status, changeOn, public, fields := req.validate()
	if fields != nil {
		response.ValidationFailed(c, fields)
		return
	}

	contribution := &models.Contribution{
		EventID:     event.ID,
		Kind:        models.ContributionKind(req.Kind),
		Title:       req.Title,
		Description: req.Description,
		Public:      public,
		Tags:        req.Tags,
	}
	if err := h.repo.Create(c.Request.Context(), contribution, status, changeOn); err != nil {
		h.logger.Error("create contribution failed", zap.Error(err), zap.String("event_id", event.ID.String()))
		response.Internal(c, "failed to create contribution")
		return
	}
	response.Created(c, contribution)
}

// Update handles PATCH /organizer/contributions/:id. The lookup is scoped to
// events the actor manages; out-of-scope contributions yield NotFound. The
// status row is appended only when the value actually changed.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid contribution id")
		return
	}
	contribution, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "contribution not found")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	if _, err := h.eventRepo.GetManagedByUser(c.Request.Context(), contribution.EventID, userID); err != nil {
		response.NotFound(c, "contribution not found")
		return
	}

	var req ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	status, changeOn, public, fields := req.validate()
	if fields != nil {
		response.ValidationFailed(c, fields)
		return
	}

	contribution.Kind = models.ContributionKind(req.Kind)
	contribution.Title = req.Title
	contribution.Description = req.Description
	contribution.Public = public
	contribution.Tags = req.Tags
	if err := h.repo.Update(c.Request.Context(), contribution, status, changeOn); err != nil {
		h.logger.Error("update contribution failed", zap.Error(err), zap.String("contribution_id", id.String()))
		response.Internal(c, "failed to update contribution")
		return
	}
	response.OK(c, contribution)
}
