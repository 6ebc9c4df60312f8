package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/sentence-miner/internal/service/export"
)

type exportService interface {
	ExportActive(ctx context.Context) (export.File, error)
}

// ExportHandler serves the CSV download.
type ExportHandler struct {
	svc exportService
	log *slog.Logger
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(svc exportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, log: logger.With("handler", "export")}
}

// CSV handles GET /api/export.csv. Every card in the file is marked
// exported before the response is written.
func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.ExportActive(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	w.Header().Set("X-Exported-Count", strconv.Itoa(len(f.CardIDs)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(f.Body))
}
