package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/satriadi/go-task-api/internal/domain/entity"
	"github.com/satriadi/go-task-api/pkg/apperr"
	"github.com/satriadi/go-task-api/pkg/response"
)

// CtxIdentityKey is where the resolved user lands in the Gin context.
const CtxIdentityKey = "identity"

// Authenticator turns a raw bearer token into a full identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// Auth extracts the bearer token from the Authorization header, runs the
// authenticator, and supplies the resolved identity to the handler. Bad
// credentials abort with a uniform 401 and a WWW-Authenticate hint; store
// faults keep their 500 so the two are never conflated.
func Auth(authn Authenticator, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c)
			return
		}

		u, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			if apperr.KindOf(err) == apperr.Authentication {
				abortUnauthorized(c)
				return
			}
			if logger != nil {
				logger.WithError(err).
					WithField("client_ip", ClientIP(c)).
					Error("authentication failed with internal fault")
			}
			response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
			c.Abort()
			return
		}

		c.Set(CtxIdentityKey, u)
		c.Next()
	}
}

// Identity returns the authenticated user set by Auth, or nil.
func Identity(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func abortUnauthorized(c *gin.Context) {
	// One generic message for every credential failure; which check failed
	// is never revealed.
	c.Header("WWW-Authenticate", "Bearer")
	response.Error[any](c, http.StatusUnauthorized, "could not validate credentials", nil)
	c.Abort()
}
