package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rohitdhavare/my-expenses-tracker/internal/calendar"
	apperrors "github.com/rohitdhavare/my-expenses-tracker/internal/errors"
	"github.com/rohitdhavare/my-expenses-tracker/internal/middleware"
	"github.com/rohitdhavare/my-expenses-tracker/internal/uuid"
)

// ErrorDetail represents the body of an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// CountResponse acknowledges a bulk change and reports how many records it touched.
type CountResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

// parsePathID parses a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseDate parses an optional YYYY-MM-DD value. Empty input yields nil.
func parseDate(value, name string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := calendar.Parse(value)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, name+" must be a YYYY-MM-DD date")
	}
	return &d, nil
}

// requireDate is parseDate for values that must be present.
func requireDate(value, name string) (time.Time, error) {
	d, err := parseDate(value, name)
	if err != nil {
		return time.Time{}, err
	}
	if d == nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, name+" is required")
	}
	return *d, nil
}

// bindJSON binds the request body into req, mapping failures to ErrInvalidInput.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return nil
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}
