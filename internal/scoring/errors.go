package scoring

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/adjuster/internal/claims"
)

// ErrInvalidAmount indicates the claim amount is not a positive finite number.
var ErrInvalidAmount = errors.New("claim amount is not a positive finite number")

// MapHTTPStatus maps scoring errors to HTTP status codes, delegating claim
// lookup errors to the claims domain.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidAmount) {
		return http.StatusBadRequest
	}
	return claims.MapHTTPStatus(err)
}
