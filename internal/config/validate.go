package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Mining.PageSize < 0 {
		return fmt.Errorf("mining.page_size must be >= 0 (got %d)", c.Mining.PageSize)
	}
	if err := c.Translation.validate(); err != nil {
		return fmt.Errorf("translation: %w", err)
	}
	if err := c.Import.validate(); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if c.Export.AwaitTimeout <= 0 {
		return fmt.Errorf("export.await_timeout must be > 0 (got %v)", c.Export.AwaitTimeout)
	}
	return nil
}

func (t *TranslationConfig) validate() error {
	switch strings.ToLower(t.Provider) {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("provider must be openai or anthropic (got %q)", t.Provider)
	}
	if t.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", t.BatchSize)
	}
	if t.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be > 0 (got %v)", t.PollInterval)
	}
	if t.RetryBackoff < 0 || t.CardDelay < 0 {
		return fmt.Errorf("retry_backoff and card_delay must be >= 0")
	}
	return nil
}

func (i *ImportConfig) validate() error {
	if i.MinWords < 1 {
		return fmt.Errorf("min_words must be >= 1 (got %d)", i.MinWords)
	}
	if i.MaxWords < i.MinWords {
		return fmt.Errorf("max_words must be >= min_words (got %d < %d)", i.MaxWords, i.MinWords)
	}
	if i.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be > 0 (got %d)", i.MaxUploadBytes)
	}
	if len(i.CandidateList()) == 0 {
		return fmt.Errorf("candidates must not be empty")
	}
	return nil
}
