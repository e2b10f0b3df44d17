package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Keys used to store the resolved actor and organization in the Gin context.
const (
	actorIDKey = contextKey("actorID")
	orgIDKey   = contextKey("orgID")
)

// Headers the upstream gateway resolves authentication into. This core treats
// the actor and organization as pre-resolved facts.
const (
	HeaderActorID = "X-Actor-ID"
	HeaderOrgID   = "X-Org-ID"
)

// ActorContextMiddleware copies the pre-resolved actor and organization ids
// from request headers into the Gin context, rejecting requests without them.
func ActorContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(HeaderActorID)
		orgID := c.GetHeader(HeaderOrgID)
		if actorID == "" || orgID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID and X-Org-ID headers are required"})
			return
		}
		c.Set(string(actorIDKey), actorID)
		c.Set(string(orgIDKey), orgID)
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting principal's id from the Gin context.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(actorIDKey))
	if !exists {
		return "", false
	}
	actorID, ok := val.(string)
	return actorID, ok
}

// GetOrgIDFromContext retrieves the organization id from the Gin context.
func GetOrgIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(orgIDKey))
	if !exists {
		return "", false
	}
	orgID, ok := val.(string)
	return orgID, ok
}
