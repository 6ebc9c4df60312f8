package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/sentence-miner/internal/domain"
)

type miningService interface {
	ListMinableSentences(ctx context.Context) ([]domain.MinableSentence, error)
	MarkWordsKnown(ctx context.Context, words []string) (int64, error)
	MarkSentenceFullyKnown(ctx context.Context, sentenceID int64) (int64, error)
	ListKnownWords(ctx context.Context) ([]string, error)
}

// MiningHandler serves the ranking view and the known-word set.
type MiningHandler struct {
	svc miningService
	log *slog.Logger
}

// NewMiningHandler creates a MiningHandler.
func NewMiningHandler(svc miningService, logger *slog.Logger) *MiningHandler {
	return &MiningHandler{svc: svc, log: logger.With("handler", "mining")}
}

type knownWordsRequest struct {
	Words []string `json:"words"`
}

type addedResponse struct {
	Added int64 `json:"added"`
}

type knownWordsResponse struct {
	Words []string `json:"words"`
}

// Minable handles GET /api/sentences/minable.
func (h *MiningHandler) Minable(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.ListMinableSentences(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMinableResponses(rows))
}

// MarkSentenceKnown handles POST /api/sentences/{id}/known.
func (h *MiningHandler) MarkSentenceKnown(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid sentence id")
		return
	}

	added, err := h.svc.MarkSentenceFullyKnown(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, addedResponse{Added: added})
}

// AddKnownWords handles POST /api/known-words.
func (h *MiningHandler) AddKnownWords(w http.ResponseWriter, r *http.Request) {
	var req knownWordsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	added, err := h.svc.MarkWordsKnown(r.Context(), req.Words)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, addedResponse{Added: added})
}

// KnownWords handles GET /api/known-words.
func (h *MiningHandler) KnownWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.svc.ListKnownWords(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if words == nil {
		words = []string{}
	}
	writeJSON(w, http.StatusOK, knownWordsResponse{Words: words})
}
