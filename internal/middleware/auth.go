package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/lucasmrt/planify-api/internal/auth"
	"github.com/lucasmrt/planify-api/internal/constants"
	"github.com/lucasmrt/planify-api/internal/database"
	apierrors "github.com/lucasmrt/planify-api/internal/errors"
	"github.com/lucasmrt/planify-api/internal/models"
	"github.com/lucasmrt/planify-api/internal/policy"
)

// RequireAuth validates the bearer token and loads the caller from the
// store, so revoked users and role changes take effect on the next request.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.TokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		userID, err := tokens.Validate(tokenString)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCaller, policy.Caller{
			ID:        user.ID,
			Role:      user.Role,
			CompanyID: user.CompanyID,
		})
		c.Next()
	}
}

// GetCaller retrieves the authenticated caller from context
func GetCaller(c *gin.Context) (policy.Caller, bool) {
	value, exists := c.Get(constants.ContextKeyCaller)
	if !exists {
		return policy.Caller{}, false
	}
	caller, ok := value.(policy.Caller)
	return caller, ok
}
