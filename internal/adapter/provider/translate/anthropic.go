package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/sentence-miner/internal/domain"
)

// AnthropicConfig configures the Messages API client.
type AnthropicConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Anthropic translates through the Messages API.
type Anthropic struct {
	client anthropic.Client
	model  string
	langs  Languages
	log    *slog.Logger
}

// NewAnthropic creates an Anthropic translator.
func NewAnthropic(cfg AnthropicConfig, langs Languages, log *slog.Logger) *Anthropic {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	return &Anthropic{
		client: anthropic.NewClient(opts...),
		model:  cfg.Model,
		langs:  langs,
		log:    log,
	}
}

// TranslateBatch sends all items in one request.
func (a *Anthropic) TranslateBatch(ctx context.Context, items []domain.TranslationItem) ([]domain.TranslationResult, error) {
	if len(items) == 0 {
		return nil, nil
	}

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 4096,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt(a.langs)}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(a.langs, items))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic messages: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		text.WriteString(block.Text)
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("anthropic: %w: empty response", ErrMalformedResponse)
	}

	results, err := parseResponse(text.String())
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	a.log.DebugContext(ctx, "batch translated",
		slog.Int("items", len(items)),
		slog.Int("results", len(results)),
	)
	return results, nil
}
