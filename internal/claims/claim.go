// Package claims implements the claim domain for Adjuster.
// It provides types, validation, filesystem-backed persistence, and HTTP
// endpoints for claim submission, retrieval, listing, and file download.
package claims

import "time"

// File kinds recognized by the intake service.
const (
	KindPDF   = "pdf"
	KindImage = "image"
)

// Claim represents one persisted claim submission.
type Claim struct {
	ClaimID       string           `json:"claim_id"`
	Amount        float64          `json:"amount"`
	Description   string           `json:"description"`
	AttachedFiles []FileDescriptor `json:"attached_files"`
	SubmittedAt   time.Time        `json:"submitted_at"`
}

// FileDescriptor maps an uploaded file's original name to its stored name
// and kind. PageCount is populated for PDF files when pdfcpu can read the
// document; nil values are omitted.
type FileDescriptor struct {
	OriginalName string `json:"original_name"`
	StoredName   string `json:"stored_name"`
	Kind         string `json:"kind"`
	SizeBytes    int64  `json:"size_bytes"`
	PageCount    *int   `json:"page_count,omitempty"`
}

// FileUpload carries one uploaded file into the intake service.
type FileUpload struct {
	Filename string
	Kind     string
	Data     []byte
}

// SubmitCommand carries the data needed to persist a new claim.
// Files holds the PDF document and image evidence uploads in the order
// they were received.
type SubmitCommand struct {
	ClaimID     string
	Amount      float64
	Description string
	Files       []FileUpload
}

// RejectedFile reports one file that was skipped during submission.
// A rejected file does not block acceptance of the rest of the submission.
type RejectedFile struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// SubmitResult reports the outcome of a claim submission.
type SubmitResult struct {
	ClaimID       string           `json:"claimId"`
	UploadedFiles []FileDescriptor `json:"uploadedFiles"`
	RejectedFiles []RejectedFile   `json:"rejectedFiles,omitempty"`
}
