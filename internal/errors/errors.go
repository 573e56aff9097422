// Package errors defines the API error taxonomy and the single place
// where failures become HTTP responses. No layer below the handlers
// writes to the response directly.
package errors

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is a classified failure carrying the HTTP status it maps to.
// Fields holds per-field validation messages of the form
// "<field> is <reason>" and is only populated for validation failures.
type APIError struct {
	Status  int      `json:"-"`
	Message string   `json:"message"`
	Fields  []string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Validation returns a 400 error carrying one message per offending field.
func Validation(fields []string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: "Validation failed", Fields: fields}
}

// BadRequest returns a 400 error for structurally invalid input that is
// not a field-level validation failure (malformed id, corrupted role).
func BadRequest(message string) *APIError {
	if message == "" {
		message = "Invalid request"
	}
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

// Unauthorized returns a 401 error.
func Unauthorized(message string) *APIError {
	if message == "" {
		message = "Authentication required"
	}
	return &APIError{Status: http.StatusUnauthorized, Message: message}
}

// Forbidden returns a 403 error.
func Forbidden(message string) *APIError {
	if message == "" {
		message = "Access denied"
	}
	return &APIError{Status: http.StatusForbidden, Message: message}
}

// NotFound returns a 404 error.
func NotFound(message string) *APIError {
	if message == "" {
		message = "No data found"
	}
	return &APIError{Status: http.StatusNotFound, Message: message}
}

// Conflict returns a 409 error.
func Conflict(message string) *APIError {
	if message == "" {
		message = "Resource conflict"
	}
	return &APIError{Status: http.StatusConflict, Message: message}
}

// Internal returns a 500 error with a generic client-facing message.
func Internal() *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: "Something went wrong. Please try again later."}
}

// Respond translates err into the one error response for this request.
// Classified errors keep their status and message; anything else is
// logged server-side and reported as a generic 500 so internal detail
// never reaches the client.
func Respond(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, apiErr)
		return
	}

	log.Printf("unclassified error: %v", err)
	c.JSON(http.StatusInternalServerError, Internal())
}
