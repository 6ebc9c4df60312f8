package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/heartmarshall/sentence-miner/internal/domain"
)

// zeroTemperature asks for deterministic output. go-openai omits a literal
// 0, which the API would treat as its default of 1.
const zeroTemperature = math.SmallestNonzeroFloat32

// OpenAIConfig configures an OpenAI-compatible chat completion endpoint.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAI translates through the chat completions API.
type OpenAI struct {
	client *openai.Client
	model  string
	langs  Languages
	log    *slog.Logger
}

// NewOpenAI creates an OpenAI translator.
func NewOpenAI(cfg OpenAIConfig, langs Languages, log *slog.Logger) *OpenAI {
	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(cc),
		model:  cfg.Model,
		langs:  langs,
		log:    log,
	}
}

// TranslateBatch sends all items in one request.
func (o *OpenAI) TranslateBatch(ctx context.Context, items []domain.TranslationItem) ([]domain.TranslationResult, error) {
	if len(items) == 0 {
		return nil, nil
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(o.langs)},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(o.langs, items)},
		},
		Temperature: zeroTemperature,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			o.log.WarnContext(ctx, "openai api error",
				slog.Int("status", apiErr.HTTPStatusCode),
				slog.String("error", apiErr.Message),
			)
		}
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("openai: %w: empty completion", ErrMalformedResponse)
	}

	results, err := parseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}

	o.log.DebugContext(ctx, "batch translated",
		slog.Int("items", len(items)),
		slog.Int("results", len(results)),
	)
	return results, nil
}
