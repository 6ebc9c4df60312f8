package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Log         LogConfig         `yaml:"log"`
	CORS        CORSConfig        `yaml:"cors"`
	Mining      MiningConfig      `yaml:"mining"`
	Translation TranslationConfig `yaml:"translation"`
	Import      ImportConfig      `yaml:"import"`
	Export      ExportConfig      `yaml:"export"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"120s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	ImportPerMinute int           `yaml:"import_per_minute" env:"SERVER_IMPORT_PER_MINUTE" env-default:"10"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// MiningConfig controls the ranking view.
type MiningConfig struct {
	// PageSize caps the number of sentences returned; 0 means unlimited.
	PageSize int `yaml:"page_size" env:"MINING_PAGE_SIZE" env-default:"0"`
}

// TranslationConfig controls the background translation poller and the
// language-model backend it calls.
type TranslationConfig struct {
	Provider       string        `yaml:"provider"        env:"TRANSLATION_PROVIDER"        env-default:"openai"`
	APIKey         string        `yaml:"api_key"         env:"OPENAI_API_KEY"`
	BaseURL        string        `yaml:"base_url"        env:"OPENAI_BASE_URL"             env-default:"https://api.openai.com/v1"`
	Model          string        `yaml:"model"           env:"OPENAI_MODEL"                env-default:"gpt-4o-mini"`
	AnthropicKey   string        `yaml:"anthropic_key"   env:"ANTHROPIC_API_KEY"`
	AnthropicModel string        `yaml:"anthropic_model" env:"ANTHROPIC_MODEL"             env-default:"claude-3-5-haiku-latest"`
	AnthropicURL   string        `yaml:"anthropic_url"   env:"ANTHROPIC_BASE_URL"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"TRANSLATION_REQUEST_TIMEOUT" env-default:"60s"`
	PollInterval   time.Duration `yaml:"poll_interval"   env:"TRANSLATION_POLL_INTERVAL"   env-default:"5s"`
	BatchSize      int           `yaml:"batch_size"      env:"TRANSLATION_BATCH_SIZE"      env-default:"5"`
	RetryBackoff   time.Duration `yaml:"retry_backoff"   env:"TRANSLATION_RETRY_BACKOFF"   env-default:"1s"`
	CardDelay      time.Duration `yaml:"card_delay"      env:"TRANSLATION_CARD_DELAY"      env-default:"50ms"`
	DevFallback    bool          `yaml:"dev_fallback"    env:"TRANSLATION_DEV_FALLBACK"    env-default:"false"`
	Autostart      bool          `yaml:"autostart"       env:"TRANSLATION_JOB_AUTOSTART"   env-default:"false"`
	SourceLanguage string        `yaml:"source_language" env:"TRANSLATION_SOURCE_LANGUAGE" env-default:"German"`
	TargetLanguage string        `yaml:"target_language" env:"TRANSLATION_TARGET_LANGUAGE" env-default:"English"`
}

// ImportConfig controls document import and sentence extraction.
type ImportConfig struct {
	MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"IMPORT_MAX_UPLOAD_BYTES" env-default:"10485760"`
	Language       string `yaml:"language"         env:"IMPORT_LANGUAGE"         env-default:"german"`
	Candidates     string `yaml:"candidates"       env:"IMPORT_CANDIDATES"       env-default:"english,german"`
	MinWords       int    `yaml:"min_words"        env:"IMPORT_MIN_WORDS"        env-default:"4"`
	MaxWords       int    `yaml:"max_words"        env:"IMPORT_MAX_WORDS"        env-default:"29"`
}

// ExportConfig controls export and back-waiting.
type ExportConfig struct {
	AwaitTimeout time.Duration `yaml:"await_timeout" env:"EXPORT_AWAIT_TIMEOUT" env-default:"10h"`
	MaxWait      time.Duration `yaml:"max_wait"      env:"EXPORT_MAX_WAIT"      env-default:"60s"`
}

// CandidateList returns the configured detector candidates, trimmed and
// lowercased, skipping empty items.
func (c ImportConfig) CandidateList() []string {
	parts := strings.Split(c.Candidates, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TranslatorConfigured reports whether the selected provider has credentials.
func (c TranslationConfig) TranslatorConfigured() bool {
	switch strings.ToLower(c.Provider) {
	case "anthropic":
		return c.AnthropicKey != ""
	default:
		return c.APIKey != ""
	}
}
