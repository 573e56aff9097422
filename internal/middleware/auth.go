package middleware

import (
	"errors"
	"strings"

	"github.com/emrecancorapci/chingu-backend/internal/constants"
	apierrors "github.com/emrecancorapci/chingu-backend/internal/errors"
	"github.com/emrecancorapci/chingu-backend/internal/models"
	"github.com/emrecancorapci/chingu-backend/internal/policy"
	"github.com/emrecancorapci/chingu-backend/internal/repository"
	"github.com/emrecancorapci/chingu-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// RequireAuth verifies the Bearer token, confirms its subject still
// exists, and stores an immutable Principal in the request context.
// The role claim is carried through as-is: judging it is the policy
// evaluator's job, so a corrupted role fails there, not here.
func RequireAuth(tokens *services.TokenService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apierrors.Respond(c, apierrors.Unauthorized("No token provided."))
			c.Abort()
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if errors.Is(err, services.ErrSecretNotConfigured) {
				apierrors.Respond(c, err)
			} else {
				apierrors.Respond(c, apierrors.Unauthorized("Not authorized. Token is invalid."))
			}
			c.Abort()
			return
		}

		exists, err := users.ExistsByID(claims.ID)
		if err != nil {
			apierrors.Respond(c, err)
			c.Abort()
			return
		}
		if !exists {
			apierrors.Respond(c, apierrors.Unauthorized("Not authorized. User not found."))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPrincipal, policy.Principal{
			ID:       claims.ID,
			Username: claims.Username,
			Role:     models.UserRole(claims.Role),
		})
		c.Next()
	}
}

// GetPrincipal retrieves the authenticated principal from context.
func GetPrincipal(c *gin.Context) (policy.Principal, bool) {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return policy.Principal{}, false
	}

	principal, ok := value.(policy.Principal)
	return principal, ok
}
