// Package translate sends batches of sentences to a language model and
// parses the translations and word glosses it returns.
package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/sentence-miner/internal/config"
	"github.com/heartmarshall/sentence-miner/internal/domain"
)

// ErrNotConfigured is returned by a translator that has no credentials.
var ErrNotConfigured = errors.New("translator not configured")

// Languages names the translation direction used in prompts.
type Languages struct {
	Source string
	Target string
}

// Unconfigured always fails with ErrNotConfigured.
type Unconfigured struct{}

// TranslateBatch implements the translator contract.
func (Unconfigured) TranslateBatch(context.Context, []domain.TranslationItem) ([]domain.TranslationResult, error) {
	return nil, ErrNotConfigured
}

// Translator is satisfied by every provider in this package.
type Translator interface {
	TranslateBatch(ctx context.Context, items []domain.TranslationItem) ([]domain.TranslationResult, error)
}

// New selects a provider by cfg.Provider. Without an API key it returns
// Unconfigured so the server still starts.
func New(cfg config.TranslationConfig, log *slog.Logger) (Translator, error) {
	langs := Languages{Source: cfg.SourceLanguage, Target: cfg.TargetLanguage}
	log = log.With("adapter", "translate", "provider", strings.ToLower(cfg.Provider))

	if !cfg.TranslatorConfigured() {
		log.Warn("no translation api key set; translations will fail unless dev fallback is on")
		return Unconfigured{}, nil
	}

	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAI(OpenAIConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.RequestTimeout,
		}, langs, log), nil
	case "anthropic":
		return NewAnthropic(AnthropicConfig{
			APIKey:  cfg.AnthropicKey,
			BaseURL: cfg.AnthropicURL,
			Model:   cfg.AnthropicModel,
			Timeout: cfg.RequestTimeout,
		}, langs, log), nil
	default:
		return nil, fmt.Errorf("unknown translation provider %q", cfg.Provider)
	}
}
