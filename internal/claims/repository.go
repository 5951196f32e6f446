package claims

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/adjuster/pkg/storage"
)

const claimsPrefix = "claims"

// Stored files are grouped by kind under the uploads directory.
var kindDirs = map[string]string{
	KindPDF:   "uploads/pdfs",
	KindImage: "uploads/images",
}

type repo struct {
	store       storage.System
	logger      *slog.Logger
	maxFileSize int64
}

// New creates a claim repository backed by the given storage system.
// maxFileSize bounds the size of any single accepted file.
func New(store storage.System, logger *slog.Logger, maxFileSize int64) System {
	return &repo{
		store:       store,
		logger:      logger.With("system", "claims"),
		maxFileSize: maxFileSize,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, maxUploadSize)
}

func (r *repo) Submit(ctx context.Context, cmd SubmitCommand) (*SubmitResult, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	accepted := make([]FileUpload, 0, len(cmd.Files))
	rejected := []RejectedFile{}

	for _, file := range cmd.Files {
		if err := checkUpload(file, r.maxFileSize); err != nil {
			r.logger.Warn(
				"file rejected",
				"claim_id", cmd.ClaimID,
				"filename", file.Filename,
				"error", err,
			)
			rejected = append(rejected, RejectedFile{
				Filename: file.Filename,
				Error:    err.Error(),
			})
			continue
		}
		accepted = append(accepted, file)
	}

	descriptors := make([]FileDescriptor, len(accepted))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, file := range accepted {
		g.Go(func() error {
			desc, err := r.saveFile(gctx, cmd.ClaimID, file)
			if err != nil {
				return err
			}
			descriptors[i] = *desc
			return nil
		})
	}

	// A write failure aborts the submission; files already committed stay
	// in place. There is no rollback across a partially stored batch.
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("store claim files: %w", err)
	}

	claim := Claim{
		ClaimID:       cmd.ClaimID,
		Amount:        cmd.Amount,
		Description:   cmd.Description,
		AttachedFiles: descriptors,
		SubmittedAt:   time.Now().UTC(),
	}

	record, err := json.MarshalIndent(claim, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode claim %s: %w", claim.ClaimID, err)
	}

	if err := r.store.Upload(ctx, recordKey(claim.ClaimID), bytes.NewReader(record)); err != nil {
		return nil, fmt.Errorf("store claim record %s: %w", claim.ClaimID, err)
	}

	r.logger.Info(
		"claim submitted",
		"claim_id", claim.ClaimID,
		"amount", claim.Amount,
		"files", len(descriptors),
		"rejected", len(rejected),
	)

	return &SubmitResult{
		ClaimID:       claim.ClaimID,
		UploadedFiles: descriptors,
		RejectedFiles: rejected,
	}, nil
}

func (r *repo) Find(ctx context.Context, claimID string) (*Claim, error) {
	if err := validateClaimID(claimID); err != nil {
		return nil, err
	}

	result, err := r.store.Download(ctx, recordKey(claimID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read claim %s: %w", claimID, err)
	}
	defer result.Body.Close()

	var claim Claim
	if err := json.NewDecoder(result.Body).Decode(&claim); err != nil {
		return nil, fmt.Errorf("decode claim %s: %w", claimID, err)
	}

	return &claim, nil
}

func (r *repo) List(ctx context.Context) ([]Claim, error) {
	keys, err := r.store.List(ctx, claimsPrefix)
	if err != nil {
		return nil, fmt.Errorf("list claim records: %w", err)
	}

	records := make([]Claim, 0, len(keys))
	for _, key := range keys {
		if path.Ext(key) != ".json" {
			continue
		}

		result, err := r.store.Download(ctx, key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("read claim record %s: %w", key, err)
		}

		var claim Claim
		err = json.NewDecoder(result.Body).Decode(&claim)
		result.Body.Close()
		if err != nil {
			r.logger.Warn("skipping unreadable claim record", "key", key, "error", err)
			continue
		}

		records = append(records, claim)
	}

	slices.SortFunc(records, func(a, b Claim) int {
		return b.SubmittedAt.Compare(a.SubmittedAt)
	})

	return records, nil
}

func (r *repo) OpenFile(ctx context.Context, claimID, filename string) (*storage.DownloadResult, error) {
	if err := validateStoredName(filename); err != nil {
		return nil, err
	}

	claim, err := r.Find(ctx, claimID)
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(claim.AttachedFiles, func(d FileDescriptor) bool {
		return d.StoredName == filename
	})
	if idx < 0 {
		return nil, ErrFileNotFound
	}

	desc := claim.AttachedFiles[idx]
	result, err := r.store.Download(ctx, fileKey(desc.Kind, desc.StoredName))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("open file %s for claim %s: %w", filename, claimID, err)
	}

	return result, nil
}

func (r *repo) saveFile(ctx context.Context, claimID string, file FileUpload) (*FileDescriptor, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	storedName := fmt.Sprintf("%s_%s%s", claimID, newToken(), ext)

	if err := r.store.Upload(ctx, fileKey(file.Kind, storedName), bytes.NewReader(file.Data)); err != nil {
		return nil, fmt.Errorf("store %s: %w", file.Filename, err)
	}

	desc := &FileDescriptor{
		OriginalName: file.Filename,
		StoredName:   storedName,
		Kind:         file.Kind,
		SizeBytes:    int64(len(file.Data)),
	}

	if file.Kind == KindPDF {
		desc.PageCount = extractPDFPageCount(r.logger, file.Data)
	}

	return desc, nil
}

func recordKey(claimID string) string {
	return path.Join(claimsPrefix, claimID+".json")
}

func fileKey(kind, storedName string) string {
	return path.Join(kindDirs[kind], storedName)
}

// newToken returns a short random suffix for stored filenames so repeated
// uploads under the same claim id never collide.
func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func extractPDFPageCount(logger *slog.Logger, data []byte) *int {
	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		logger.Warn("failed to extract PDF page count", "error", err)
		return nil
	}

	return &count
}
