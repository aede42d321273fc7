package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/agora-concertations/backend/pkg/response"
)

// RequireOrganizer allows only users with the organizer flag. A wrong role
// yields Forbidden (the route class is off-limits); missing or invalid
// resources on organizer routes yield NotFound further down.
func RequireOrganizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(ContextIsOrganizer)
		if !ok {
			response.Unauthorized(c, "missing user context")
			c.Abort()
			return
		}
		isOrganizer, _ := val.(bool)
		if !isOrganizer {
			response.Forbidden(c, "organizer role required")
			c.Abort()
			return
		}
		c.Next()
	}
}
