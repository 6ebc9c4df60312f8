package rest

import (
	"net/http"

	"github.com/heartmarshall/sentence-miner/internal/transport/middleware"
)

// Handlers groups every REST handler the router mounts.
type Handlers struct {
	Health    *HealthHandler
	Documents *DocumentHandler
	Mining    *MiningHandler
	Cards     *CardHandler
	Export    *ExportHandler
	Poller    *PollerHandler
}

// Register mounts all routes on mux. importLimit wraps the import endpoint
// and may be nil.
func (h Handlers) Register(mux *http.ServeMux, importLimit middleware.Middleware) {
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	var importHandler http.Handler = http.HandlerFunc(h.Documents.Import)
	if importLimit != nil {
		importHandler = importLimit(importHandler)
	}
	mux.Handle("POST /api/documents", importHandler)
	mux.HandleFunc("GET /api/documents", h.Documents.List)

	mux.HandleFunc("GET /api/sentences/minable", h.Mining.Minable)
	mux.HandleFunc("POST /api/sentences/{id}/known", h.Mining.MarkSentenceKnown)
	mux.HandleFunc("GET /api/known-words", h.Mining.KnownWords)
	mux.HandleFunc("POST /api/known-words", h.Mining.AddKnownWords)

	mux.HandleFunc("POST /api/sentences/{id}/card", h.Cards.Create)
	mux.HandleFunc("GET /api/cards", h.Cards.List)
	mux.HandleFunc("POST /api/cards/export", h.Cards.MarkExported)
	mux.HandleFunc("GET /api/cards/{id}", h.Cards.Get)
	mux.HandleFunc("GET /api/cards/{id}/back", h.Cards.Back)
	mux.HandleFunc("PATCH /api/cards/{id}", h.Cards.Update)

	mux.HandleFunc("GET /api/export.csv", h.Export.CSV)

	mux.HandleFunc("GET /api/translation/poller", h.Poller.Status)
	mux.HandleFunc("POST /api/translation/poller", h.Poller.Control)
}
