package events

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agora-concertations/backend/internal/middleware"
	"github.com/agora-concertations/backend/internal/models"
	"github.com/agora-concertations/backend/pkg/response"
)

// ContextEvent is the context key for the event loaded by RequireManageAccess.
const ContextEvent = "managed_event"

// RequireManageAccess loads the :id event scoped to the requesting organizer.
// Call after JWT and RequireOrganizer. Events the actor does not manage yield
// NotFound, not Forbidden, so their existence is never leaked.
func RequireManageAccess(repo *Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.BadRequest(c, "invalid event id")
			c.Abort()
			return
		}
		userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
		event, err := repo.GetManagedByUser(c.Request.Context(), eventID, userID)
		if err != nil {
			response.NotFound(c, "event not found")
			c.Abort()
			return
		}
		c.Set(ContextEvent, event)
		c.Next()
	}
}

// ManagedEvent returns the event stored by RequireManageAccess.
func ManagedEvent(c *gin.Context) *models.Event {
	return c.MustGet(ContextEvent).(*models.Event)
}
