// Package api assembles the API surface: domain systems, route registration,
// and the middleware stack.
package api

import (
	"net/http"

	"github.com/JaimeStill/adjuster/internal/config"
	"github.com/JaimeStill/adjuster/internal/infrastructure"
	"github.com/JaimeStill/adjuster/pkg/middleware"
)

// NewHandler creates the API handler with all domain endpoints registered
// and the middleware stack applied.
func NewHandler(cfg *config.Config, infra *infrastructure.Infrastructure) http.Handler {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime.MaxUploadSize)

	stack := middleware.New()
	stack.Use(middleware.CORS(&cfg.API.CORS))
	stack.Use(middleware.Logger(runtime.Logger))

	return stack.Apply(mux)
}
