package middleware

import (
	"github.com/agristore/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// principalIDKey is the gin context key for the resolved principal ID
const principalIDKey = "principal_id"

// principalNameKey is the gin context key for the resolved principal name
const principalNameKey = "principal_name"

// PrincipalHeader is the header carrying the resolved principal ID.
// Authentication happens upstream; this service only records who acted.
const PrincipalHeader = "X-Principal-ID"

// PrincipalNameHeader is the optional header carrying the principal's
// display name, denormalized onto created records.
const PrincipalNameHeader = "X-Principal-Name"

// ResolvedPrincipal extracts the acting principal's ID and display name from
// the request headers and stores them in the gin context. An absent or
// malformed ID header leaves the principal unset; write operations decide
// whether to require it.
func ResolvedPrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(PrincipalHeader)
		if raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set(principalIDKey, id)
				if name := c.GetHeader(PrincipalNameHeader); name != "" {
					c.Set(principalNameKey, name)
				}
				// Downstream layers read the principal from the request
				// context for log enrichment.
				c.Request = c.Request.WithContext(
					logger.WithPrincipalID(c.Request.Context(), id.String()),
				)
			} else {
				logger.FromContext(c.Request.Context()).Debug("ignoring malformed principal id header")
			}
		}
		c.Next()
	}
}

// GetPrincipalName returns the resolved principal's display name, or an
// empty string when the request carried none.
func GetPrincipalName(c *gin.Context) string {
	return c.GetString(principalNameKey)
}

// GetPrincipalID returns the resolved principal ID, or uuid.Nil when the
// request carried none.
func GetPrincipalID(c *gin.Context) uuid.UUID {
	if v, exists := c.Get(principalIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
