package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexauth/digestgate/core"
)

// Handlers contains HTTP handlers for the protected API endpoints
type Handlers struct{}

// NewHandlers creates new handlers
func NewHandlers() *Handlers {
	return &Handlers{}
}

// Me returns the authenticated user
func (h *Handlers) Me(c *gin.Context) {
	v, _ := c.Get(IdentityKey)

	identity, ok := v.(*core.Identity)
	if !ok || identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":   identity.Username,
		"attributes": identity.Attributes,
	})
}

// Authorize confirms the request carried valid digest credentials
func (h *Handlers) Authorize(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authorized": true})
}

// Health reports service liveness
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
