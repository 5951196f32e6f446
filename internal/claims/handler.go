package claims

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/JaimeStill/adjuster/pkg/handlers"
	"github.com/JaimeStill/adjuster/pkg/routes"
)

// formOverhead is the headroom granted beyond the configured upload size
// for text fields and multipart framing when capping the request body.
const formOverhead = 64 << 10

// Form field names accepted by the submission endpoint.
const (
	FieldClaimID       = "claimId"
	FieldClaimAmount   = "claimAmount"
	FieldDescription   = "description"
	FieldPDFDocument   = "pdfDocument"
	FieldImageEvidence = "imageEvidence"
)

// Handler provides HTTP endpoints for claim operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// SubmitResponse is the acknowledgment body for claim submissions.
type SubmitResponse struct {
	Success       bool             `json:"success"`
	ClaimID       string           `json:"claimId,omitempty"`
	UploadedFiles []FileDescriptor `json:"uploadedFiles"`
	RejectedFiles []RejectedFile   `json:"rejectedFiles,omitempty"`
	Error         string           `json:"error,omitempty"`
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "claims"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for claim endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/submit_claim", Handler: h.Submit},
			{Method: "GET", Pattern: "/get_claim/{claim_id}", Handler: h.Get},
			{Method: "GET", Pattern: "/list_claims", Handler: h.List},
			{Method: "GET", Pattern: "/download_file/{claim_id}/{filename}", Handler: h.Download},
		},
	}
}

// Submit processes a multipart claim submission with an optional PDF
// document and zero or more image evidence files.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+formOverhead)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.fail(w, http.StatusRequestEntityTooLarge, ErrRequestTooLarge)
			return
		}
		h.fail(w, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrMalformedForm, err))
		return
	}

	cmd := SubmitCommand{
		ClaimID:     strings.TrimSpace(r.FormValue(FieldClaimID)),
		Description: strings.TrimSpace(r.FormValue(FieldDescription)),
	}

	rawAmount := strings.TrimSpace(r.FormValue(FieldClaimAmount))
	if rawAmount == "" {
		h.fail(w, http.StatusBadRequest, ErrMissingFields)
		return
	}

	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil {
		h.fail(w, http.StatusBadRequest, ErrInvalidAmount)
		return
	}
	cmd.Amount = amount

	files, err := collectUploads(r.MultipartForm)
	if err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}
	cmd.Files = files

	result, err := h.sys.Submit(r.Context(), cmd)
	if err != nil {
		h.fail(w, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, SubmitResponse{
		Success:       true,
		ClaimID:       result.ClaimID,
		UploadedFiles: result.UploadedFiles,
		RejectedFiles: result.RejectedFiles,
	})
}

// Get returns a single claim record by its claim id path parameter.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	claim, err := h.sys.Find(r.Context(), r.PathValue("claim_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, claim)
}

// List returns all persisted claim records.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, records)
}

// Download streams a stored file belonging to the claim identified by the
// path parameters.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	claimID := r.PathValue("claim_id")
	filename := r.PathValue("filename")

	result, err := h.sys.OpenFile(r.Context(), claimID, filename)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer result.Body.Close()

	w.Header().Set("Content-Type", result.ContentType)
	if result.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(result.ContentLength, 10))
	}
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filename),
	)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, result.Body)
}

func (h *Handler) fail(w http.ResponseWriter, status int, err error) {
	h.logger.Error(
		"claim submission rejected",
		"status", status,
		"error", err,
	)

	handlers.RespondJSON(w, status, SubmitResponse{
		Success: false,
		Error:   err.Error(),
	})
}

// collectUploads reads the PDF document and image evidence parts from the
// parsed form, preserving submission order within each field. Parts with an
// empty filename are ignored, matching browser behavior for blank file inputs.
func collectUploads(form *multipart.Form) ([]FileUpload, error) {
	if form == nil {
		return nil, nil
	}

	var uploads []FileUpload

	if pdfs := form.File[FieldPDFDocument]; len(pdfs) > 0 && pdfs[0].Filename != "" {
		upload, err := readUpload(pdfs[0], KindPDF)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}

	for _, header := range form.File[FieldImageEvidence] {
		if header.Filename == "" {
			continue
		}

		upload, err := readUpload(header, KindImage)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}

	return uploads, nil
}

func readUpload(header *multipart.FileHeader, kind string) (FileUpload, error) {
	part, err := header.Open()
	if err != nil {
		return FileUpload{}, fmt.Errorf("%w: %s", ErrInvalidFile, header.Filename)
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return FileUpload{}, fmt.Errorf("%w: %s", ErrInvalidFile, header.Filename)
	}

	return FileUpload{
		Filename: header.Filename,
		Kind:     kind,
		Data:     data,
	}, nil
}
