package claims_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/JaimeStill/adjuster/internal/claims"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"claim not found", claims.ErrNotFound, http.StatusNotFound},
		{"file not found", claims.ErrFileNotFound, http.StatusNotFound},
		{"missing fields", claims.ErrMissingFields, http.StatusBadRequest},
		{"invalid amount", claims.ErrInvalidAmount, http.StatusBadRequest},
		{"invalid claim id", claims.ErrInvalidClaimID, http.StatusBadRequest},
		{"invalid file", claims.ErrInvalidFile, http.StatusBadRequest},
		{"wrapped invalid file", fmt.Errorf("%w: extension %q", claims.ErrInvalidFile, ".exe"), http.StatusBadRequest},
		{"file too large", claims.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"request too large", claims.ErrRequestTooLarge, http.StatusRequestEntityTooLarge},
		{"malformed form", claims.ErrMalformedForm, http.StatusBadRequest},
		{"wrapped malformed form", fmt.Errorf("%w: unexpected EOF", claims.ErrMalformedForm), http.StatusBadRequest},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := claims.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}
