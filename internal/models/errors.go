package models

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the standardized API error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError is a tagged application error. Every failure crossing a handler
// boundary is one of these; raw errors are wrapped before they reach a client.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error codes used across the API.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeDependency    = "DEPENDENCY_FAILURE"
	CodeCascade       = "CASCADE_FAILURE"
	CodeMisconfigured = "SERVER_MISCONFIGURED"
	CodeInternal      = "INTERNAL_ERROR"
)

// NewNotFoundError reports that the referenced entity does not exist.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewValidationError reports a client input fault.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewMissingFieldsError reports every missing required field, not just the first.
func NewMissingFieldsError(fields ...string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: "Missing required fields: " + strings.Join(fields, ", "),
	}
}

// NewUnauthorizedError reports a missing, malformed, or expired credential.
// The message is uniform on purpose; token parse detail stays in logs.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// NewDependencyError reports a collaborator fault (image pipeline, text
// generation, store transport). The wrapped error is logged, not returned.
func NewDependencyError(collaborator string, err error) *AppError {
	return &AppError{
		Code:    CodeDependency,
		Message: fmt.Sprintf("%s is currently unavailable", collaborator),
		Err:     err,
	}
}

// NewCascadeError reports a partially-completed multi-step delete.
func NewCascadeError(err error) *AppError {
	return &AppError{
		Code:    CodeCascade,
		Message: "Failed to delete blog and its comments",
		Err:     err,
	}
}

// NewMisconfiguredError reports a missing required server secret.
func NewMisconfiguredError(message string) *AppError {
	return &AppError{
		Code:    CodeMisconfigured,
		Message: message,
	}
}

// NewInternalError wraps an unexpected error behind a generic message.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError renders err as a standardized JSON error response.
// Dependency, cascade and internal faults keep their wrapped detail out of
// the payload; callers log it instead.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		switch appErr.Code {
		case CodeValidation, CodeNotFound:
			if appErr.Err != nil {
				response.Details = appErr.Err.Error()
			}
		}
	} else {
		response = ErrorResponse{Error: err.Error()}
	}

	return c.Status(status).JSON(response)
}

// StatusFor maps an AppError code to its HTTP status.
func StatusFor(err error) int {
	appErr, ok := err.(*AppError)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeDependency:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
