package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	// provider.name must be a known value.
	switch c.Provider.Name {
	case "openai", "groq", "openrouter":
		// valid
	default:
		errs = append(errs, fmt.Errorf("provider.name must be \"openai\", \"groq\", or \"openrouter\", got %q", c.Provider.Name))
	}

	// provider.api_key is required (directly or via api_key_file).
	if c.Provider.APIKey == "" && c.Provider.APIKeyFile == "" {
		errs = append(errs, fmt.Errorf("provider.api_key or provider.api_key_file is required"))
	}

	// server.port must be positive.
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	// summarizer.timeout must not be negative.
	if c.Summarizer.Timeout < 0 {
		errs = append(errs, fmt.Errorf("summarizer.timeout must be >= 0, got %v", c.Summarizer.Timeout))
	}

	// summarizer.temperature must stay in the provider-accepted range.
	if t := c.Summarizer.Temperature; t != nil && (*t < 0 || *t > 2) {
		errs = append(errs, fmt.Errorf("summarizer.temperature must be between 0 and 2, got %v", *t))
	}

	// storage.type must be a known value.
	switch c.Storage.Type {
	case "memory", "postgres":
		// valid
	default:
		errs = append(errs, fmt.Errorf("storage.type must be \"memory\" or \"postgres\", got %q", c.Storage.Type))
	}

	// If storage.type is "postgres", DSN or DSNFile must be set.
	if c.Storage.Type == "postgres" {
		if c.Storage.Postgres.DSN == "" && c.Storage.Postgres.DSNFile == "" {
			errs = append(errs, fmt.Errorf("storage.postgres.dsn or storage.postgres.dsn_file is required when storage.type is \"postgres\""))
		}
	}

	// auth.type must be a known value, with the matching credentials present.
	switch c.Auth.Type {
	case "none":
		// valid
	case "apikey":
		if len(c.Auth.APIKeys) == 0 {
			errs = append(errs, fmt.Errorf("auth.api_keys must contain at least one entry when auth.type is \"apikey\""))
		}
	case "jwt":
		if c.Auth.JWT.Secret == "" && c.Auth.JWT.SecretFile == "" {
			errs = append(errs, fmt.Errorf("auth.jwt.secret or auth.jwt.secret_file is required when auth.type is \"jwt\""))
		}
	default:
		errs = append(errs, fmt.Errorf("auth.type must be \"none\", \"apikey\", or \"jwt\", got %q", c.Auth.Type))
	}

	if c.Auth.RateLimitRPM < 0 {
		errs = append(errs, fmt.Errorf("auth.rate_limit_rpm must not be negative, got %d", c.Auth.RateLimitRPM))
	}

	return errors.Join(errs...)
}
