// Package errors provides the standardized error type used across the HR client.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeAPIRequestFailed   ErrorCode = "API_REQUEST_FAILED"
	ErrCodeAPIUnauthorized    ErrorCode = "API_UNAUTHORIZED"
	ErrCodeAPIResponseInvalid ErrorCode = "API_RESPONSE_INVALID"
	ErrCodeAPITimeout         ErrorCode = "API_TIMEOUT"

	ErrCodeLoginFailed     ErrorCode = "LOGIN_FAILED"
	ErrCodeSessionExpired  ErrorCode = "SESSION_EXPIRED"
	ErrCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"

	ErrCodeStorageCorrupt     ErrorCode = "STORAGE_CORRUPT"
	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"

	ErrCodeExportFailed  ErrorCode = "EXPORT_FAILED"
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Messages shown when the server gave nothing better.
const (
	DefaultLoginFailedMessage = "Login failed"
	DefaultRequestMessage     = "Something went wrong, please try again"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Retryable  bool                   `json:"retryable"`
	StatusCode int                    `json:"statusCode,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = map[string]interface{}{}
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError reports field-level failures. fields maps field to message key.
func NewValidationFailedError(step string, fields map[string]string) *StandardError {
	meta := make(map[string]interface{}, len(fields))
	names := make([]string, 0, len(fields))
	for f, key := range fields {
		meta[f] = key
		names = append(names, f)
	}
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "error-please-fix-errors",
		Details:   fmt.Sprintf("step %s: invalid fields %s", step, strings.Join(names, ",")),
		Retryable: false,
		Metadata:  meta,
		Timestamp: time.Now().UTC(),
	}
}

// NewAPIRequestFailedError wraps a non-2xx response. message is the server's
// message when it sent one.
func NewAPIRequestFailedError(operation string, status int, message string) *StandardError {
	var meta map[string]interface{}
	if strings.TrimSpace(message) == "" {
		message = DefaultRequestMessage
	} else {
		meta = map[string]interface{}{metaServerMessage: message}
	}
	return &StandardError{
		Code:       ErrCodeAPIRequestFailed,
		Message:    message,
		Details:    fmt.Sprintf("%s returned status %d", operation, status),
		Retryable:  status >= 500,
		StatusCode: status,
		Metadata:   meta,
		Timestamp:  time.Now().UTC(),
	}
}

// NewAPITransportError covers failures before any response arrived.
func NewAPITransportError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAPIRequestFailed,
		Message:   DefaultRequestMessage,
		Details:   fmt.Sprintf("%s: %v", operation, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewAPITimeoutError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAPITimeout,
		Message:   "The server took too long to respond",
		Details:   fmt.Sprintf("%s: %v", operation, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewAPIUnauthorizedError(operation, message string) *StandardError {
	var meta map[string]interface{}
	if strings.TrimSpace(message) == "" {
		message = "Authentication required"
	} else {
		meta = map[string]interface{}{metaServerMessage: message}
	}
	return &StandardError{
		Code:       ErrCodeAPIUnauthorized,
		Message:    message,
		Details:    operation,
		StatusCode: 401,
		Metadata:   meta,
		Timestamp:  time.Now().UTC(),
	}
}

func NewAPIResponseInvalidError(operation string, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAPIResponseInvalid,
		Message:   "Unexpected response from server",
		Details:   fmt.Sprintf("%s: %s", operation, details),
		Timestamp: time.Now().UTC(),
	}
}

// NewLoginFailedError picks the first non-empty of the server message, the
// cause's text and "Login failed".
func NewLoginFailedError(serverMessage string, cause error) *StandardError {
	msg := strings.TrimSpace(serverMessage)
	details := ""
	if cause != nil {
		details = cause.Error()
		if stdErr, ok := AsStandardError(cause); ok {
			details = stdErr.Details
		}
		if msg == "" {
			msg = strings.TrimSpace(details)
		}
	}
	if msg == "" {
		msg = DefaultLoginFailedMessage
	}
	return &StandardError{
		Code:      ErrCodeLoginFailed,
		Message:   msg,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

func NewSessionExpiredError(loginAt time.Time) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionExpired,
		Message:   "Session expired, please log in again",
		Details:   fmt.Sprintf("login at %s", loginAt.UTC().Format(time.RFC3339)),
		Timestamp: time.Now().UTC(),
	}
}

func NewSessionNotFoundError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Not logged in",
		Timestamp: time.Now().UTC(),
	}
}

func NewStorageCorruptError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageCorrupt,
		Message:   "Stored session is unreadable",
		Details:   fmt.Sprintf("key %s: %v", key, err),
		Timestamp: time.Now().UTC(),
	}
}

func NewStorageUnavailableError(backend string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageUnavailable,
		Message:   "Session storage unavailable",
		Details:   fmt.Sprintf("%s: %v", backend, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewExportFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExportFailed,
		Message:   "Export failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewConfigInvalidError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid configuration",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError unwraps err looking for a *StandardError.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

const metaServerMessage = "serverMessage"

// ServerMessage returns the message the API sent with a failed response, or "".
func ServerMessage(err error) string {
	stdErr, ok := AsStandardError(err)
	if !ok || stdErr.Metadata == nil {
		return ""
	}
	msg, _ := stdErr.Metadata[metaServerMessage].(string)
	return msg
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeAPIRequestFailed, ErrCodeAPITimeout, ErrCodeStorageUnavailable, ErrCodeExportFailed:
		return true
	default:
		return false
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "UNAUTHORIZED") || strings.Contains(codeStr, "LOGIN"):
		return "AUTH"
	case strings.Contains(codeStr, "API"):
		return "NETWORK"
	case strings.Contains(codeStr, "SESSION"):
		return "SESSION"
	case strings.Contains(codeStr, "STORAGE"):
		return "STORAGE"
	case strings.Contains(codeStr, "EXPORT"):
		return "EXPORT"
	case strings.Contains(codeStr, "CONFIG"):
		return "CONFIG"
	default:
		return "OTHER"
	}
}
