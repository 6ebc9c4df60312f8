package rest

import (
	"context"
	"log/slog"
	"net/http"
)

type pollerControl interface {
	Start(ctx context.Context) bool
	Stop()
	IsRunning() bool
}

// PollerHandler exposes status and start/stop of the translation poller.
type PollerHandler struct {
	poller pollerControl
	// runCtx outlives requests; a started poller runs until Stop or
	// until runCtx ends.
	runCtx context.Context
	log    *slog.Logger
}

// NewPollerHandler creates a PollerHandler.
func NewPollerHandler(runCtx context.Context, poller pollerControl, logger *slog.Logger) *PollerHandler {
	return &PollerHandler{poller: poller, runCtx: runCtx, log: logger.With("handler", "poller")}
}

type pollerRequest struct {
	Action string `json:"action"`
}

type pollerResponse struct {
	Running bool `json:"running"`
	Changed bool `json:"changed"`
}

// Status handles GET /api/translation/poller.
func (h *PollerHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pollerResponse{Running: h.poller.IsRunning()})
}

// Control handles POST /api/translation/poller with {action: start|stop}.
func (h *PollerHandler) Control(w http.ResponseWriter, r *http.Request) {
	var req pollerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var changed bool
	switch req.Action {
	case "start":
		changed = h.poller.Start(h.runCtx)
	case "stop":
		changed = h.poller.IsRunning()
		h.poller.Stop()
	default:
		writeError(w, http.StatusBadRequest, "action must be start or stop")
		return
	}

	h.log.InfoContext(r.Context(), "poller control",
		slog.String("action", req.Action),
		slog.Bool("changed", changed),
	)
	writeJSON(w, http.StatusOK, pollerResponse{Running: h.poller.IsRunning(), Changed: changed})
}
