package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/placebook/pkg/apperror"
	"github.com/oksasatya/placebook/pkg/response"
)

const (
	unknownError = "An unknown error occurred!"
	routeMissing = "Could not find this route."
)

// ErrorHandler renders the last error recorded with c.Error, once.
// Responses already written by a handler are left alone.
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		fields := logrus.Fields{
			"request_id": c.GetString(CtxRequestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}

		ae, ok := apperror.As(err)
		if !ok {
			logger.WithFields(fields).WithError(err).Error("unhandled error")
			response.Error(c, http.StatusInternalServerError, unknownError, nil)
			return
		}
		code := ae.Code
		if code == 0 {
			code = http.StatusInternalServerError
		}
		msg := ae.Message
		if msg == "" {
			msg = unknownError
		}
		if code >= http.StatusInternalServerError {
			logger.WithFields(fields).WithError(err).Error(msg)
		} else if ae.Err != nil {
			logger.WithFields(fields).WithError(ae.Err).Debug(msg)
		}
		response.Error(c, code, msg, ae.Details)
	}
}

// NoRoute answers requests for unregistered paths.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(apperror.NotFound(routeMissing))
	}
}
