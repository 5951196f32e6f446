package scoring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/adjuster/internal/claims"
)

// System defines the public contract for server-side claim scoring.
type System interface {
	Handler() *Handler

	// Evaluate loads the claim and computes its score.
	Evaluate(ctx context.Context, claimID string) (*Result, error)
}

type service struct {
	engine *Engine
	claims claims.System
	logger *slog.Logger
}

// New creates a scoring system over the given engine and claim store.
func New(engine *Engine, claimSys claims.System, logger *slog.Logger) System {
	return &service{
		engine: engine,
		claims: claimSys,
		logger: logger.With("system", "scoring"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Evaluate(ctx context.Context, claimID string) (*Result, error) {
	claim, err := s.claims.Find(ctx, claimID)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.Evaluate(claim.Amount, claim.Description, len(claim.AttachedFiles))
	if err != nil {
		return nil, fmt.Errorf("score claim %s: %w", claimID, err)
	}

	s.logger.Info(
		"claim scored",
		"claim_id", claimID,
		"score", result.Score,
		"label", result.Label,
	)

	return result, nil
}
