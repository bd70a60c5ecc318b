// Package config provides unified configuration for the precis service.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (PRECIS_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the precis service.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Provider      ProviderConfig      `yaml:"provider"`
	Summarizer    SummarizerConfig    `yaml:"summarizer"`
	Storage       StorageConfig       `yaml:"storage"`
	Auth          AuthConfig          `yaml:"auth"`
	Observability ObservabilityConfig `yaml:"observability"`
	Debug         DebugConfig         `yaml:"debug"`
}

// DebugConfig holds debug logging settings. The PRECIS_DEBUG and
// PRECIS_LOG_LEVEL environment variables take precedence over these fields.
type DebugConfig struct {
	Categories string `yaml:"categories"` // comma-separated, e.g. "providers,storage" or "all"
	Level      string `yaml:"level"`      // ERROR, WARN, INFO, DEBUG, or TRACE (default: INFO)
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `yaml:"port"`          // default: 8080
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"` // default: 120s
}

// ProviderConfig holds LLM provider settings.
type ProviderConfig struct {
	Name         string `yaml:"name"`          // "openai", "groq", or "openrouter", default: "openai"
	APIKey       string `yaml:"api_key"`       // required
	APIKeyFile   string `yaml:"api_key_file"`  // _file variant for api_key
	BaseURL      string `yaml:"base_url"`      // optional override
	DefaultModel string `yaml:"default_model"` // optional, per-provider default applies
	SiteURL      string `yaml:"site_url"`      // openrouter attribution header
	SiteName     string `yaml:"site_name"`     // openrouter attribution header
}

// SummarizerConfig holds settings for the summarize engine.
type SummarizerConfig struct {
	Temperature     *float64      `yaml:"temperature"`       // optional, provider default when unset
	MaxOutputTokens *int          `yaml:"max_output_tokens"` // optional
	Timeout         time.Duration `yaml:"timeout"`           // per-call provider deadline, default: 60s
	SchemaName      string        `yaml:"schema_name"`       // default: "article_summary"
}

// StorageConfig holds state management settings.
type StorageConfig struct {
	Type     string         `yaml:"type"`     // "memory" or "postgres", default: "memory"
	MaxSize  int            `yaml:"max_size"` // for memory store, default: 10000
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	DSNFile        string `yaml:"dsn_file"`         // _file variant for dsn
	MaxConns       int32  `yaml:"max_conns"`        // default: 25
	MigrateOnStart bool   `yaml:"migrate_on_start"` // default: false
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	Type         string         `yaml:"type"`           // "none", "apikey", or "jwt", default: "none"
	APIKeys      []APIKeyConfig `yaml:"api_keys"`       // API key entries for type=apikey
	JWT          JWTConfig      `yaml:"jwt"`            // settings for type=jwt
	RateLimitRPM int            `yaml:"rate_limit_rpm"` // per-subject requests per minute, 0 disables
}

// APIKeyConfig describes a single API key entry.
type APIKeyConfig struct {
	Key     string `yaml:"key"`
	KeyFile string `yaml:"key_file"` // _file variant for key
	Subject string `yaml:"subject"`
}

// JWTConfig holds shared-secret JWT validation settings.
type JWTConfig struct {
	Secret     string `yaml:"secret"`
	SecretFile string `yaml:"secret_file"` // _file variant for secret
	Issuer     string `yaml:"issuer"`      // optional expected issuer
	Audience   string `yaml:"audience"`    // optional expected audience
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
		Provider: ProviderConfig{
			Name: "openai",
		},
		Summarizer: SummarizerConfig{
			Timeout:    60 * time.Second,
			SchemaName: "article_summary",
		},
		Storage: StorageConfig{
			Type:    "memory",
			MaxSize: 10000,
			Postgres: PostgresConfig{
				MaxConns: 25,
			},
		},
		Auth: AuthConfig{
			Type: "none",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}
