package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/sentence-miner/internal/domain"
)

type stageError struct {
	code ImportCode
	err  error
}

func (e *stageError) Error() string { return e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

// ImportDocument stores a document with its sentences and their word
// occurrences in one transaction. Storage failures are reported in the
// result, never as an error.
func (s *Service) ImportDocument(ctx context.Context, title, content string, sentences []string) ImportResult {
	sentences = cleanSentences(sentences)
	if len(sentences) == 0 {
		return failed(CodeNoSentences, nil)
	}

	var (
		docID    int64
		inserted int
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		id, err := s.docs.Create(txCtx, title, content)
		if err != nil {
			if errors.Is(err, domain.ErrDocumentExists) {
				return err
			}
			return &stageError{code: CodeDocumentInsertFailed, err: err}
		}

		ids, err := s.docs.AddSentences(txCtx, id, sentences)
		if err != nil {
			return &stageError{code: CodeSentenceInsertFailed, err: err}
		}
		if len(ids) != len(sentences) {
			return &stageError{
				code: CodeSentenceInsertFailed,
				err:  fmt.Errorf("inserted %d of %d sentences", len(ids), len(sentences)),
			}
		}

		docID, inserted = id, len(ids)
		return nil
	})
	if err != nil {
		res := classify(err)
		s.log.WarnContext(ctx, "import failed",
			slog.String("title", title),
			slog.String("code", string(res.Code)),
			slog.String("error", err.Error()),
		)
		return res
	}

	s.log.InfoContext(ctx, "document imported",
		slog.Int64("document_id", docID),
		slog.String("title", title),
		slog.Int("sentences", inserted),
	)
	return ImportResult{OK: true, DocumentID: docID, InsertedSentences: inserted}
}

func classify(err error) ImportResult {
	if errors.Is(err, domain.ErrDocumentExists) {
		return failed(CodeDocumentAlreadyExists, err)
	}
	var se *stageError
	if errors.As(err, &se) {
		return failed(se.code, se.err)
	}
	return failed(CodeDBError, err)
}

func cleanSentences(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ImportFile extracts sentences from an uploaded file, keeps those in the
// source language and imports them under the file name. The error is
// non-nil only when the file cannot be read.
func (s *Service) ImportFile(ctx context.Context, fileName string, data []byte) (ImportResult, error) {
	title := strings.TrimSpace(fileName)
	if title == "" {
		return ImportResult{}, domain.NewValidationError("file_name", "required")
	}

	extracted, err := s.extract.Extract(title, data)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read %s: %w", title, err)
	}

	sentences := s.language.Filter(extracted.Sentences)
	s.log.DebugContext(ctx, "sentences extracted",
		slog.String("file", title),
		slog.Int("candidates", len(extracted.Sentences)),
		slog.Int("kept", len(sentences)),
	)

	return s.ImportDocument(ctx, title, extracted.Text, sentences), nil
}

// ImportText splits pasted plain text into sentences, keeps those in the
// source language and imports them under title.
func (s *Service) ImportText(ctx context.Context, title, content string) (ImportResult, error) {
	extracted, err := s.extract.Extract(plainTextName, []byte(content))
	if err != nil {
		return ImportResult{}, fmt.Errorf("read text: %w", err)
	}
	return s.ImportDocument(ctx, title, content, s.language.Filter(extracted.Sentences)), nil
}

const plainTextName = "pasted.txt"
