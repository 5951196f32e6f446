package claims

import (
	"context"

	"github.com/JaimeStill/adjuster/pkg/storage"
)

// System defines the public contract for claim domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// Submit validates and persists a claim with its accepted files.
	// Last write wins for a repeated claim id.
	Submit(ctx context.Context, cmd SubmitCommand) (*SubmitResult, error)

	// Find returns the claim record for the given id.
	Find(ctx context.Context, claimID string) (*Claim, error)

	// List returns all persisted claims, newest first.
	List(ctx context.Context) ([]Claim, error)

	// OpenFile streams a stored file that belongs to the given claim.
	// The filename must match one of the claim's recorded descriptors.
	OpenFile(ctx context.Context, claimID, filename string) (*storage.DownloadResult, error)
}
