package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every API response, success or failure.
type Envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Success writes data under the envelope and returns what was written.
func Success[T any](ctx *gin.Context, status int, data T, message string) Envelope[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := Envelope[T]{Message: message, Data: data}
	ctx.JSON(status, resp)
	return resp
}

// Error writes a failure envelope with null data and aborts the handler chain.
func Error(ctx *gin.Context, status int, message string) Envelope[any] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := Envelope[any]{Message: message}
	ctx.AbortWithStatusJSON(status, resp)
	return resp
}
