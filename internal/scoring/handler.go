package scoring

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/adjuster/pkg/handlers"
	"github.com/JaimeStill/adjuster/pkg/routes"
)

// Handler provides the HTTP endpoint for server-side claim scoring.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "scoring"),
	}
}

// Routes returns the route group definition for scoring endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/score_claim/{claim_id}", Handler: h.Score},
		},
	}
}

// Score evaluates the stored claim identified by the path parameter.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	result, err := h.sys.Evaluate(r.Context(), r.PathValue("claim_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
