//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/sentence-miner/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/sentence-miner/internal/app"
	"github.com/heartmarshall/sentence-miner/internal/config"
	"github.com/heartmarshall/sentence-miner/internal/transport/middleware"
	"github.com/heartmarshall/sentence-miner/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	svc    *app.Services
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func testConfig() *config.Config {
	return &config.Config{
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PATCH,OPTIONS",
			AllowedHeaders: "Content-Type,X-Request-Id",
			MaxAge:         86400,
		},
		Translation: config.TranslationConfig{
			Provider:       "openai",
			BatchSize:      5,
			PollInterval:   100 * time.Millisecond,
			RetryBackoff:   100 * time.Millisecond,
			DevFallback:    true,
			SourceLanguage: "German",
			TargetLanguage: "English",
		},
		Import: config.ImportConfig{
			MaxUploadBytes: 1 << 20,
			Language:       "german",
			Candidates:     "english,german",
			MinWords:       4,
			MaxWords:       29,
		},
		Export: config.ExportConfig{
			AwaitTimeout: time.Minute,
			MaxWait:      10 * time.Second,
		},
	}
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper). No translation API
// key is configured, so the poller runs on the dev fallback.
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	cfg := testConfig()

	svc, err := app.NewServices(pool, cfg, logger)
	require.NoError(t, err)

	runCtx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		svc.Poller.Stop()
		svc.Poller.Wait()
	})

	mux := http.NewServeMux()
	rest.Handlers{
		Health:    rest.NewHealthHandler(pool, svc.Poller, "test-version"),
		Documents: rest.NewDocumentHandler(svc.Documents, cfg.Import.MaxUploadBytes, logger),
		Mining:    rest.NewMiningHandler(svc.Mining, logger),
		Cards:     rest.NewCardHandler(svc.Cards, cfg.Export.AwaitTimeout, cfg.Export.MaxWait, logger),
		Export:    rest.NewExportHandler(svc.Export, logger),
		Poller:    rest.NewPollerHandler(runCtx, svc.Poller, logger),
	}.Register(mux, nil)

	handler := middleware.Standard(logger, cfg.CORS)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		svc:    svc,
	}
}

// ---------------------------------------------------------------------------
// Request helpers.
// ---------------------------------------------------------------------------

// doJSON sends body as JSON (nil for no body) and decodes the response into
// out when out is non-nil. It returns the status code.
func (ts *testServer) doJSON(t *testing.T, method, path string, body, out any) int {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// upload posts a multipart file to /api/documents.
func (ts *testServer) upload(t *testing.T, fileName, content string, out any) int {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := ts.Client.Post(ts.URL+"/api/documents", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// ---------------------------------------------------------------------------
// Response shapes.
// ---------------------------------------------------------------------------

type importResp struct {
	OK                bool   `json:"ok"`
	DocumentID        int64  `json:"documentId"`
	InsertedSentences int    `json:"insertedSentences"`
	Code              string `json:"code"`
	Message           string `json:"message"`
}

type wordResp struct {
	Word        string `json:"word"`
	CleanedWord string `json:"cleanedWord"`
	IsKnown     bool   `json:"isKnown"`
}

type minableResp struct {
	SentenceID   int64      `json:"sentenceId"`
	Content      string     `json:"content"`
	UnknownCount int        `json:"unknownCount"`
	Words        []wordResp `json:"words"`
}

type cardResp struct {
	ID           int64    `json:"id"`
	Front        string   `json:"front"`
	Back         string   `json:"back"`
	UnknownWords []string `json:"unknownWords"`
	State        string   `json:"state"`
}

type createCardResp struct {
	ID      int64 `json:"id"`
	Created bool  `json:"created"`
}

type backResp struct {
	Ready bool     `json:"ready"`
	Card  cardResp `json:"card"`
}

// minableByID fetches the ranking view and indexes it by sentence id.
func (ts *testServer) minableByID(t *testing.T) map[int64]minableResp {
	t.Helper()

	var rows []minableResp
	require.Equal(t, http.StatusOK, ts.doJSON(t, http.MethodGet, "/api/sentences/minable", nil, &rows))

	out := make(map[int64]minableResp, len(rows))
	for i, r := range rows {
		if i > 0 {
			require.LessOrEqual(t, rows[i-1].UnknownCount, r.UnknownCount, "ranking must be ascending by unknown count")
		}
		out[r.SentenceID] = r
	}
	return out
}

// findByContent returns the ranking row whose content contains needle.
func findByContent(rows map[int64]minableResp, needle string) (minableResp, bool) {
	for _, r := range rows {
		if bytes.Contains([]byte(r.Content), []byte(needle)) {
			return r, true
		}
	}
	return minableResp{}, false
}
