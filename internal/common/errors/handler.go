// internal/common/errors/handler.go
package errors

import (
	"context"
	stderrors "errors"
	"time"
)

// ErrorHandler turns any error returned by a client operation into the
// message the user should see, logging it along the way.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle normalizes err, logs it and returns the user-facing message.
// Validation and auth failures are logged as warnings since the user can fix them.
func (h *ErrorHandler) Handle(operation string, err error) string {
	if err == nil {
		return ""
	}
	stdErr := h.Normalize(err)

	fields := map[string]interface{}{
		"operation":     operation,
		"errorCode":     string(stdErr.Code),
		"errorCategory": GetErrorCategory(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
	}
	if stdErr.StatusCode != 0 {
		fields["statusCode"] = stdErr.StatusCode
	}
	if len(stdErr.Metadata) > 0 {
		fields["metadata"] = stdErr.Metadata
	}

	switch GetErrorCategory(stdErr.Code) {
	case "VALIDATION", "AUTH", "SESSION":
		h.logger.Warn("operation rejected", fields)
	default:
		h.logger.Error("operation failed", fields)
	}

	return stdErr.Message
}

// Normalize ensures we always have a StandardError.
func (h *ErrorHandler) Normalize(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return NewAPITimeoutError("request", err)
	}
	if stderrors.Is(err, context.Canceled) {
		return &StandardError{
			Code:      ErrCodeInternal,
			Message:   "Operation cancelled",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		}
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   DefaultRequestMessage,
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
