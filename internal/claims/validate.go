package claims

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// Allowed file extensions per kind, compared case-insensitively.
var allowedExtensions = map[string][]string{
	KindPDF:   {".pdf"},
	KindImage: {".png", ".jpg", ".jpeg", ".gif"},
}

// claimIDPattern restricts claim ids to characters safe for storage keys.
var claimIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

func validateCommand(cmd SubmitCommand) error {
	if cmd.ClaimID == "" || cmd.Description == "" {
		return ErrMissingFields
	}
	if err := validateClaimID(cmd.ClaimID); err != nil {
		return err
	}
	if math.IsNaN(cmd.Amount) || math.IsInf(cmd.Amount, 0) || cmd.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// validateClaimID rejects ids that could escape the storage layout.
// The id participates in both record keys and stored filenames.
func validateClaimID(id string) error {
	if !claimIDPattern.MatchString(id) || strings.Contains(id, "..") {
		return ErrInvalidClaimID
	}
	return nil
}

// validateStoredName rejects download filenames containing directory
// separators or traversal segments.
func validateStoredName(name string) error {
	if name == "" ||
		strings.ContainsAny(name, `/\`) ||
		strings.Contains(name, "..") {
		return fmt.Errorf("%w: invalid filename", ErrInvalidFile)
	}
	return nil
}

// checkUpload enforces the per-file extension and size policy.
func checkUpload(file FileUpload, maxSize int64) error {
	exts, ok := allowedExtensions[file.Kind]
	if !ok {
		return fmt.Errorf("%w: unknown file kind %q", ErrInvalidFile, file.Kind)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !slices.Contains(exts, ext) {
		return fmt.Errorf(
			"%w: extension %q not allowed for %s uploads",
			ErrInvalidFile, ext, file.Kind,
		)
	}

	if int64(len(file.Data)) > maxSize {
		return ErrFileTooLarge
	}

	return nil
}
