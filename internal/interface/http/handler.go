package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/placebook/internal/interface/middleware"
	"github.com/oksasatya/placebook/pkg/apperror"
	"github.com/oksasatya/placebook/pkg/validation"
)

// bindJSON binds the body into dst. On failure it records a 422 on the
// context and returns false.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(apperror.Validation(apperror.InvalidInput).WithDetails(validation.ToDetails(err)))
		return false
	}
	return true
}

func callerID(c *gin.Context) string {
	return middleware.UserID(c)
}
