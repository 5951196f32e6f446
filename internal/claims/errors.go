package claims

import (
	"errors"
	"net/http"
)

// Domain errors for claim operations.
var (
	ErrNotFound        = errors.New("claim not found")
	ErrFileNotFound    = errors.New("file not found for claim")
	ErrMissingFields   = errors.New("claim id, amount, and description are required")
	ErrInvalidAmount   = errors.New("claim amount must be a positive number")
	ErrInvalidClaimID  = errors.New("claim id contains invalid characters")
	ErrInvalidFile     = errors.New("invalid file")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrRequestTooLarge = errors.New("request body exceeds maximum upload size")
	ErrMalformedForm   = errors.New("malformed multipart form")
)

// MapHTTPStatus maps claim domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrFileNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrFileTooLarge) || errors.Is(err, ErrRequestTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidClaimID) ||
		errors.Is(err, ErrInvalidFile) ||
		errors.Is(err, ErrMalformedForm) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
