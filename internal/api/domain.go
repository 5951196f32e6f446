package api

import (
	"github.com/JaimeStill/adjuster/internal/claims"
	"github.com/JaimeStill/adjuster/internal/scoring"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Claims  claims.System
	Scoring scoring.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	claimsSystem := claims.New(
		runtime.Storage,
		runtime.Logger,
		runtime.MaxUploadSize,
	)

	scoringSystem := scoring.New(
		scoring.NewEngine(nil),
		claimsSystem,
		runtime.Logger,
	)

	return &Domain{
		Claims:  claimsSystem,
		Scoring: scoringSystem,
	}
}
