package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageBody is returned by operations that have no resource to show.
type MessageBody struct {
	Message string `json:"message"`
}

// Resource writes {key: data}.
func Resource(ctx *gin.Context, status int, key string, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, gin.H{key: data})
}

// Message writes {message: msg}.
func Message(ctx *gin.Context, status int, msg string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, MessageBody{Message: msg})
}

// Error writes an ErrorBody and aborts the chain.
func Error(ctx *gin.Context, status int, msg string, details map[string]string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, ErrorBody{Message: msg, Details: details})
}
