package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/infrastructure/auth"
	"github.com/leadcrm/backend/internal/infrastructure/logger"
	"github.com/leadcrm/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Context keys set by Authenticate
const (
	ClaimsKey     = "jwt_claims"
	ActorIDKey    = "actor_id"
	bearerPrefix  = "Bearer "
	authHeaderKey = "Authorization"
)

// Authenticate verifies the bearer token and stores the claims and the
// acting user on the request.
func Authenticate(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderKey)
		if !strings.HasPrefix(header, bearerPrefix) || strings.TrimSpace(header[len(bearerPrefix):]) == "" {
			abort(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Missing or malformed authorization header")
			return
		}

		claims, err := verifier.Verify(strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			logger.L(c.Request.Context()).Info("token rejected", zap.Error(err))
			msg := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = "Token has expired"
			}
			abort(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, msg)
			return
		}

		// Verify has already checked that user_id parses
		actorID, _ := claims.UserUUID()
		c.Set(ClaimsKey, claims)
		c.Set(ActorIDKey, actorID)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// RequireAdminDepartment rejects users outside an admin department
func RequireAdminDepartment() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			abort(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !claims.IsAdmin() {
			abort(c, http.StatusForbidden, dto.ErrCodeForbidden, "Access restricted to the admin department")
			return
		}
		c.Next()
	}
}

// GetClaims returns the verified claims of the request
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// GetActorID returns the acting user, uuid.Nil when unauthenticated
func GetActorID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(ActorIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(code, message, GetRequestID(c)))
}
