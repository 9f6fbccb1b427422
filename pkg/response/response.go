package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExposeStackKey is the gin context key that allows stacks in error bodies.
// It is set by middleware.ErrorStack and is false in production.
const ExposeStackKey = "expose_stack"

// ErrorBody is the envelope written for every failed request.
type ErrorBody struct {
	Message   string `json:"message"`
	Stack     string `json:"stack,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

// JSON writes a successful flat body.
func JSON(ctx *gin.Context, status int, body any) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, body)
}

// Error aborts the request with an error envelope. cause, when set, becomes
// the stack outside production.
func Error(ctx *gin.Context, status int, message string, cause error, details any) {
	stack := ""
	if cause != nil {
		stack = cause.Error()
	}
	write(ctx, status, message, stack, details)
}

// ErrorStack aborts the request with a raw stack trace, used by recovery.
func ErrorStack(ctx *gin.Context, status int, message, stack string) {
	write(ctx, status, message, stack, nil)
}

func write(ctx *gin.Context, status int, message, stack string, details any) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	body := ErrorBody{
		Message:   message,
		RequestID: ctx.GetString("request_id"),
		Errors:    details,
	}
	if ctx.GetBool(ExposeStackKey) {
		body.Stack = stack
	}
	ctx.AbortWithStatusJSON(status, body)
}
