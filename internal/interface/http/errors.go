package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/satriadi/go-task-api/internal/interface/middleware"
	"github.com/satriadi/go-task-api/pkg/apperr"
	"github.com/satriadi/go-task-api/pkg/response"
)

// respondError is the single place service errors become HTTP responses.
// Internal faults are always logged with full detail; the detail reaches the
// caller only when debug is on.
func respondError(c *gin.Context, logger *logrus.Logger, debug bool, err error) {
	kind := apperr.KindOf(err)

	var detail interface{}
	if kind == apperr.Internal {
		if logger != nil {
			logger.WithError(err).
				WithField("request_id", c.GetString("request_id")).
				WithField("client_ip", middleware.ClientIP(c)).
				Error("internal fault")
		}
		if debug {
			detail = err.Error()
		}
	}
	if kind == apperr.Authentication {
		c.Header("WWW-Authenticate", "Bearer")
	}

	response.Error[any](c, kind.HTTPStatus(), apperr.MessageOf(err), detail)
}
