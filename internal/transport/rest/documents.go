package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/heartmarshall/sentence-miner/internal/domain"
	"github.com/heartmarshall/sentence-miner/internal/service/document"
)

type documentService interface {
	ImportFile(ctx context.Context, fileName string, data []byte) (document.ImportResult, error)
	ImportText(ctx context.Context, title, content string) (document.ImportResult, error)
	ImportDocument(ctx context.Context, title, content string, sentences []string) document.ImportResult
	ListDocuments(ctx context.Context) ([]domain.DocumentSummary, error)
}

// DocumentHandler serves document import and listing.
type DocumentHandler struct {
	svc      documentService
	maxBytes int64
	log      *slog.Logger
}

// NewDocumentHandler creates a DocumentHandler. Uploads larger than
// maxBytes are rejected.
func NewDocumentHandler(svc documentService, maxBytes int64, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{svc: svc, maxBytes: maxBytes, log: logger.With("handler", "document")}
}

type importRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Sentences []string `json:"sentences"`
}

type importResponse struct {
	OK                bool   `json:"ok"`
	DocumentID        int64  `json:"documentId,omitempty"`
	InsertedSentences int    `json:"insertedSentences"`
	Code              string `json:"code,omitempty"`
	Message           string `json:"message,omitempty"`
}

// Import handles POST /api/documents. It accepts a multipart upload in the
// "file" field or a JSON body {title, content, sentences?}.
func (h *DocumentHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var (
		res document.ImportResult
		err error
	)
	if mediaType == "multipart/form-data" {
		res, err = h.importUpload(r)
	} else {
		res, err = h.importJSON(r)
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	case errors.Is(err, errBadBody):
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	case err != nil:
		handleError(h.log, w, r, err)
		return
	}

	h.writeImportResult(w, r, res)
}

var errBadBody = errors.New("bad body")

func (h *DocumentHandler) importUpload(r *http.Request) (document.ImportResult, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return document.ImportResult{}, err
		}
		return document.ImportResult{}, errBadBody
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return document.ImportResult{}, err
	}
	return h.svc.ImportFile(r.Context(), header.Filename, data)
}

func (h *DocumentHandler) importJSON(r *http.Request) (document.ImportResult, error) {
	var req importRequest
	if err := decodeJSON(r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return document.ImportResult{}, err
		}
		return document.ImportResult{}, errBadBody
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return document.ImportResult{}, domain.NewValidationError("title", "required")
	}
	if len(req.Sentences) > 0 {
		return h.svc.ImportDocument(r.Context(), title, req.Content, req.Sentences), nil
	}
	return h.svc.ImportText(r.Context(), title, req.Content)
}

func (h *DocumentHandler) writeImportResult(w http.ResponseWriter, r *http.Request, res document.ImportResult) {
	status := http.StatusCreated
	switch {
	case res.OK:
	case res.Code == document.CodeNoSentences:
		status = http.StatusUnprocessableEntity
	case res.Code == document.CodeDocumentAlreadyExists:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
		h.log.ErrorContext(r.Context(), "import failed",
			slog.String("code", string(res.Code)),
			slog.String("error", res.Details),
		)
	}

	writeJSON(w, status, importResponse{
		OK:                res.OK,
		DocumentID:        res.DocumentID,
		InsertedSentences: res.InsertedSentences,
		Code:              string(res.Code),
		Message:           res.Message,
	})
}

// List handles GET /api/documents.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.ListDocuments(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentResponses(docs))
}
