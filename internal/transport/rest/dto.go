package rest

import (
	"time"

	"github.com/heartmarshall/sentence-miner/internal/domain"
)

type wordResponse struct {
	ID          int64  `json:"id"`
	Word        string `json:"word"`
	CleanedWord string `json:"cleanedWord"`
	IsKnown     bool   `json:"isKnown"`
}

type minableSentenceResponse struct {
	SentenceID   int64          `json:"sentenceId"`
	Content      string         `json:"content"`
	UnknownCount int            `json:"unknownCount"`
	Words        []wordResponse `json:"words"`
}

type cardResponse struct {
	ID           int64      `json:"id"`
	Front        string     `json:"front"`
	Back         string     `json:"back"`
	UnknownWords []string   `json:"unknownWords"`
	State        string     `json:"state"`
	CreatedAt    time.Time  `json:"createdAt"`
	ExportedAt   *time.Time `json:"exportedAt,omitempty"`
}

type documentResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	SentenceCount int       `json:"sentenceCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toCardResponse(c domain.AnkiCard) cardResponse {
	return cardResponse{
		ID:           c.ID,
		Front:        c.Front,
		Back:         c.Back,
		UnknownWords: c.UnknownWords(),
		State:        c.State().String(),
		CreatedAt:    c.CreatedAt,
		ExportedAt:   c.ExportedAt,
	}
}

func toCardResponses(cards []domain.AnkiCard) []cardResponse {
	out := make([]cardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardResponse(c))
	}
	return out
}

func toMinableResponses(rows []domain.MinableSentence) []minableSentenceResponse {
	out := make([]minableSentenceResponse, 0, len(rows))
	for _, row := range rows {
		words := make([]wordResponse, 0, len(row.Words))
		for _, w := range row.Words {
			words = append(words, wordResponse{
				ID:          w.ID,
				Word:        w.Word,
				CleanedWord: w.CleanedWord,
				IsKnown:     w.IsKnown,
			})
		}
		out = append(out, minableSentenceResponse{
			SentenceID:   row.SentenceID,
			Content:      row.Content,
			UnknownCount: row.UnknownCount,
			Words:        words,
		})
	}
	return out
}

func toDocumentResponses(docs []domain.DocumentSummary) []documentResponse {
	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentResponse{
			ID:            d.ID,
			Title:         d.Title,
			SentenceCount: d.SentenceCount,
			CreatedAt:     d.CreatedAt,
		})
	}
	return out
}
