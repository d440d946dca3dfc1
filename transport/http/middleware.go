package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexauth/digestgate/core"
	"github.com/nexauth/digestgate/internal/metrics"
	"github.com/nexauth/digestgate/service"
)

// IdentityKey is the gin context key holding the authenticated identity.
const IdentityKey = "identity"

// DigestAuthMiddleware creates middleware that verifies Digest authorization
// headers. Requests without Digest credentials pass through unauthenticated;
// rejected requests are answered with a 401 and a fresh challenge, marked
// stale when only the nonce had expired.
func DigestAuthMiddleware(verifier *service.VerifierService, challenger *service.ChallengeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		identity, err := verifier.Verify(c.Request.Context(), header, c.Request.Method)
		if err != nil {
			// Any previously established identity is discarded on failure
			c.Set(IdentityKey, nil)

			if !core.IsRejection(err) {
				metrics.AuthOutcomes.WithLabelValues("error").Inc()
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authentication service failure"})
				return
			}

			metrics.AuthOutcomes.WithLabelValues("rejected").Inc()
			stale := errors.Is(err, core.ErrNonceExpired)
			c.Header("WWW-Authenticate", challenger.Challenge(stale))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if identity != nil {
			metrics.AuthOutcomes.WithLabelValues("accepted").Inc()
			c.Set(IdentityKey, identity)
		}

		c.Next()
	}
}

// RequireIdentity aborts with a challenge when no identity was established
// by the digest middleware upstream.
func RequireIdentity(challenger *service.ChallengeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(IdentityKey)
		if !ok || v == nil {
			c.Header("WWW-Authenticate", challenger.Challenge(false))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Next()
	}
}
