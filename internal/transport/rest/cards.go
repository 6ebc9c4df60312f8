package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/sentence-miner/internal/domain"
	"github.com/heartmarshall/sentence-miner/internal/service/card"
)

type cardService interface {
	CreateCard(ctx context.Context, sentenceID int64) (card.CreateResult, error)
	GetCard(ctx context.Context, id int64) (domain.AnkiCard, error)
	ListActiveCards(ctx context.Context) ([]domain.AnkiCard, error)
	ListAllCards(ctx context.Context) ([]domain.AnkiCard, error)
	UpdateFront(ctx context.Context, id int64, front string) error
	UpdateBack(ctx context.Context, id int64, back string) error
	MarkExported(ctx context.Context, ids []int64) (int64, error)
	AwaitBack(ctx context.Context, id int64, timeout time.Duration) (domain.AnkiCard, error)
}

// CardHandler serves card lifecycle endpoints.
type CardHandler struct {
	svc         cardService
	defaultWait time.Duration
	maxWait     time.Duration
	log         *slog.Logger
}

// NewCardHandler creates a CardHandler. A back request without a wait
// parameter waits defaultWait; every wait is capped at maxWait.
func NewCardHandler(svc cardService, defaultWait, maxWait time.Duration, logger *slog.Logger) *CardHandler {
	return &CardHandler{
		svc:         svc,
		defaultWait: defaultWait,
		maxWait:     maxWait,
		log:         logger.With("handler", "card"),
	}
}

type createCardResponse struct {
	ID      int64 `json:"id"`
	Created bool  `json:"created"`
}

type updateCardRequest struct {
	Front *string `json:"front"`
	Back  *string `json:"back"`
}

type markExportedRequest struct {
	IDs []int64 `json:"ids"`
}

type markedResponse struct {
	Marked int64 `json:"marked"`
}

type backResponse struct {
	Ready bool         `json:"ready"`
	Card  cardResponse `json:"card"`
}

// Create handles POST /api/sentences/{id}/card. Responds 201 for a new
// card and 200 when a card with the same front already existed.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	sentenceID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid sentence id")
		return
	}

	res, err := h.svc.CreateCard(r.Context(), sentenceID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, createCardResponse{ID: res.ID, Created: res.Created})
}

// List handles GET /api/cards?scope=active|all. Default scope is active.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		cards []domain.AnkiCard
		err   error
	)
	switch r.URL.Query().Get("scope") {
	case "", "active":
		cards, err = h.svc.ListActiveCards(r.Context())
	case "all":
		cards, err = h.svc.ListAllCards(r.Context())
	default:
		writeError(w, http.StatusBadRequest, "scope must be active or all")
		return
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardResponses(cards))
}

// Get handles GET /api/cards/{id}.
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	c, err := h.svc.GetCard(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardResponse(c))
}

// Back handles GET /api/cards/{id}/back?wait=30s. It holds the request until
// the back is filled or the wait elapses; wait=0 answers immediately.
func (h *CardHandler) Back(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	wait := h.defaultWait
	if v := r.URL.Query().Get("wait"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			writeError(w, http.StatusBadRequest, "wait must be a non-negative duration")
			return
		}
		wait = d
	}
	wait = min(wait, h.maxWait)

	c, err := h.svc.AwaitBack(r.Context(), id, wait)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, backResponse{Ready: c.HasBack(), Card: toCardResponse(c)})
}

// Update handles PATCH /api/cards/{id} with {front?, back?}.
func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	var req updateCardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Front == nil && req.Back == nil {
		writeError(w, http.StatusBadRequest, "front or back is required")
		return
	}

	ctx := r.Context()
	if req.Front != nil {
		if err := h.svc.UpdateFront(ctx, id, *req.Front); err != nil {
			handleError(h.log, w, r, err)
			return
		}
	}
	if req.Back != nil {
		if err := h.svc.UpdateBack(ctx, id, *req.Back); err != nil {
			handleError(h.log, w, r, err)
			return
		}
	}

	c, err := h.svc.GetCard(ctx, id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardResponse(c))
}

// MarkExported handles POST /api/cards/export with {ids}.
func (h *CardHandler) MarkExported(w http.ResponseWriter, r *http.Request) {
	var req markExportedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := h.svc.MarkExported(r.Context(), req.IDs)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, markedResponse{Marked: n})
}
