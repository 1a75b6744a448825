package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the JSON envelope for non-auth endpoints and for all error
// responses. Message is a stable, client-facing string; Error carries
// structured details (e.g. per-field validation messages) and never internals.
type APIResponse[T any] struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
	Data      T           `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

func Success[T any](ctx *gin.Context, status int, data T, message string) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Success:   true,
		Message:   message,
		RequestID: ctx.GetString("request_id"),
		Data:      data,
	}
	ctx.JSON(status, resp)
	return resp
}

func Error[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := APIResponse[T]{
		Success:   false,
		Message:   message,
		RequestID: ctx.GetString("request_id"),
		Error:     err,
	}
	ctx.JSON(status, resp)
	return resp
}
