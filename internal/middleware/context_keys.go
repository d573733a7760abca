package middleware

import "github.com/gin-gonic/gin"

// ActorHeader carries the acting user's ID, resolved by the external
// authentication layer in front of this service. Audit fields record it
// verbatim.
const ActorHeader = "X-Actor-ID"

// systemActor is recorded when no acting user was supplied (scheduler runs,
// internal calls).
const systemActor = "system"

// GetActorFromContext returns the acting user ID for audit trails.
func GetActorFromContext(c *gin.Context) string {
	if actor := c.GetHeader(ActorHeader); actor != "" {
		return actor
	}
	return systemActor
}
