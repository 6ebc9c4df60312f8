// Package export renders finished cards as an Anki-importable CSV file and
// marks exactly the rendered cards as exported.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/heartmarshall/sentence-miner/internal/domain"
)

type cardStore interface {
	ListActiveCards(ctx context.Context) ([]domain.AnkiCard, error)
	MarkExported(ctx context.Context, ids []int64) (int64, error)
}

// Service builds CSV exports.
type Service struct {
	cards cardStore
	now   func() time.Time
	log   *slog.Logger
}

// NewService creates a new export service.
func NewService(log *slog.Logger, cards cardStore) *Service {
	return &Service{
		cards: cards,
		now:   time.Now,
		log:   log.With("service", "export"),
	}
}

// File is a rendered export.
type File struct {
	Name    string
	Body    string
	CardIDs []int64
	Marked  int64
}

// ExportActive renders every card not yet exported and then marks those
// cards exported. If marking fails the file is not returned and no card
// changes state.
func (s *Service) ExportActive(ctx context.Context) (File, error) {
	cards, err := s.cards.ListActiveCards(ctx)
	if err != nil {
		return File{}, fmt.Errorf("export: %w", err)
	}

	f := File{
		Name:    FileName(s.now()),
		Body:    RenderCSV(cards),
		CardIDs: make([]int64, 0, len(cards)),
	}
	for _, c := range cards {
		f.CardIDs = append(f.CardIDs, c.ID)
	}

	marked, err := s.cards.MarkExported(ctx, f.CardIDs)
	if err != nil {
		return File{}, fmt.Errorf("export: %w", err)
	}
	f.Marked = marked

	s.log.InfoContext(ctx, "cards exported to csv",
		slog.String("file", f.Name),
		slog.Int("rendered", len(f.CardIDs)),
		slog.Int64("marked", marked),
	)
	return f, nil
}

// FileName returns anki_export_YYYYMMDD_HHMMSS.csv for t in local time.
func FileName(t time.Time) string {
	return "anki_export_" + t.Format("20060102_150405") + ".csv"
}

var lineBreak = regexp.MustCompile(`\r\n|\r|\n`)

// RenderCSV renders one row per card: the unknown words joined by "_",
// the front and the back. Every field is quoted; there is no header row.
// Line breaks inside front and back become <br/>.
func RenderCSV(cards []domain.AnkiCard) string {
	rows := make([]string, 0, len(cards))
	for _, c := range cards {
		key := strings.Join(c.UnknownWords(), "_")
		rows = append(rows, quote(key)+","+quote(toHTML(c.Front))+","+quote(toHTML(c.Back)))
	}
	return strings.Join(rows, "\n")
}

func toHTML(s string) string {
	return strings.TrimSpace(lineBreak.ReplaceAllString(s, "<br/>"))
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
