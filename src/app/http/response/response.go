// Package response defines the JSON envelope every endpoint answers with.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"diarybook/src/core/domain"
)

// Client-visible messages.
const (
	MsgNoToken          = "Access denied. No token provided."
	MsgTokenExpired     = "Token has expired"
	MsgInvalidToken     = "Invalid token"
	MsgValidationFailed = "Validation failed"
	MsgNotFound         = "Diary entry not found"
	MsgEndpointNotFound = "Endpoint not found"
	MsgInternal         = "Internal server error"
)

// Machine-readable error codes.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeTokenExpired    = "TOKEN_EXPIRED"
	CodeInvalidToken    = "INVALID_TOKEN"
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeInternal        = "INTERNAL_ERROR"
)

// Success is the body of a 2xx response.
type Success struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Error is the body of a 4xx/5xx response. It never carries data.
type Error struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	Code      string       `json:"code"`
	Errors    []FieldError `json:"errors,omitempty"`
	RequestID string       `json:"request_id,omitempty"`

	// Detail is the underlying error text, only filled in development.
	Detail string `json:"detail,omitempty"`
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Success{Success: true, Data: data})
}

// Created sends a 201 response with the created resource.
func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Success{Success: true, Message: message, Data: data})
}

// Message sends a 200 response with a message and optional data.
func Message(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Success{Success: true, Message: message, Data: data})
}

func abort(c *gin.Context, status int, body Error) {
	c.AbortWithStatusJSON(status, body)
}

// Unauthorized sends a 401 response.
func Unauthorized(c *gin.Context, code, message, requestID string) {
	abort(c, http.StatusUnauthorized, Error{Message: message, Code: code, RequestID: requestID})
}

// ValidationFailed sends a 400 response listing every rejected field.
func ValidationFailed(c *gin.Context, fields []FieldError, requestID string) {
	abort(c, http.StatusBadRequest, Error{
		Message:   MsgValidationFailed,
		Code:      CodeValidation,
		Errors:    fields,
		RequestID: requestID,
	})
}

// NotFound sends a 404 response.
func NotFound(c *gin.Context, message, requestID string) {
	abort(c, http.StatusNotFound, Error{Message: message, Code: CodeNotFound, RequestID: requestID})
}

// InternalError sends a 500 response. detail is omitted when empty.
func InternalError(c *gin.Context, requestID, detail string) {
	abort(c, http.StatusInternalServerError, Error{
		Message:   MsgInternal,
		Code:      CodeInternal,
		RequestID: requestID,
		Detail:    detail,
	})
}

// FromDomainError converts a domain error to the matching HTTP response.
// When debug is set, internal failures expose the error text in Detail.
func FromDomainError(c *gin.Context, err error, requestID string, debug bool) {
	switch {
	case domain.IsUnauthenticated(err):
		Unauthorized(c, CodeUnauthenticated, MsgNoToken, requestID)
	case domain.IsTokenExpired(err):
		Unauthorized(c, CodeTokenExpired, MsgTokenExpired, requestID)
	case domain.IsInvalidToken(err):
		Unauthorized(c, CodeInvalidToken, MsgInvalidToken, requestID)
	case domain.IsNotFound(err):
		NotFound(c, MsgNotFound, requestID)
	case domain.IsValidationError(err):
		var de *domain.DomainError
		field := FieldError{Message: err.Error()}
		if errors.As(err, &de) {
			field = FieldError{Field: de.Field, Message: de.Message}
		}
		ValidationFailed(c, []FieldError{field}, requestID)
	default:
		detail := ""
		if debug {
			detail = diagnostic(err)
		}
		InternalError(c, requestID, detail)
	}
}

// diagnostic renders err together with the collaborator failure it wraps.
func diagnostic(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) && de.Cause != nil {
		return de.Error() + ": " + de.Cause.Error()
	}
	return err.Error()
}
