package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/pkg/response"
)

// CtxIdentityKey holds the *entity.Identity resolved by Auth.
const CtxIdentityKey = "identity"

// Auth resolves the bearer token through the gate. On rejection it aborts
// with a single 401 envelope; on a store failure with a 500.
func Auth(gate *application.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := gate.Verify(c.Request.Context(), c.GetHeader("Authorization"))
		switch {
		case err == nil:
		case errors.Is(err, application.ErrMissingToken):
			response.Error(c, http.StatusUnauthorized, "Not authorized, no token", err, nil)
			return
		case errors.Is(err, application.ErrInvalidToken):
			response.Error(c, http.StatusUnauthorized, "Not authorized, token failed", err, nil)
			return
		default:
			if gate.Logger != nil {
				gate.Logger.WithError(err).WithFields(logrus.Fields{
					"request_id": c.GetString("request_id"),
					"path":       c.Request.URL.Path,
				}).Error("auth gate failed")
			}
			response.Error(c, http.StatusInternalServerError, "Internal Server Error", err, nil)
			return
		}

		c.Set(CtxIdentityKey, &id)
		c.Next()
	}
}

// IdentityFrom returns the identity attached by Auth.
func IdentityFrom(c *gin.Context) (*entity.Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*entity.Identity)
	return id, ok && id != nil
}
