package middleware

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/sentence-miner/internal/config"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines middleware so that the first one given runs outermost:
// Chain(a, b)(h) is a(b(h)).
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}

// Standard is the stack every API request goes through. The request id is
// assigned first so recovery and access logs can carry it.
func Standard(logger *slog.Logger, cors config.CORSConfig) Middleware {
	return Chain(
		RequestID(),
		Recovery(logger),
		Logger(logger),
		CORS(cors),
	)
}
