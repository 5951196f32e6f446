package api

import (
	"net/http"

	"github.com/JaimeStill/adjuster/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, maxUploadSize int64) {
	routes.Register(
		mux,
		domain.Claims.Handler(maxUploadSize).Routes(),
		domain.Scoring.Handler().Routes(),
	)
}
