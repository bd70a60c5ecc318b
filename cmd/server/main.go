// Command server runs the precis content summarization service.
//
// Configuration is layered: built-in defaults, an optional YAML file
// (-config flag, PRECIS_CONFIG, ./config.yaml, /etc/precis/config.yaml),
// then PRECIS_* environment overrides. The most common variables:
//
//	PRECIS_PROVIDER     - LLM provider: "openai", "groq", or "openrouter"
//	PRECIS_API_KEY      - Provider credential (required)
//	PRECIS_BASE_URL     - Provider base URL override
//	PRECIS_MODEL        - Default model name (optional)
//	PRECIS_PORT         - Listen port (default: 8080)
//	PRECIS_STORAGE      - Storage type: "memory" or "postgres"
//	PRECIS_POSTGRES_DSN - Connection string for storage type "postgres"
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/precishq/precis/pkg/auth"
	"github.com/precishq/precis/pkg/auth/apikey"
	"github.com/precishq/precis/pkg/auth/jwt"
	"github.com/precishq/precis/pkg/auth/noop"
	"github.com/precishq/precis/pkg/config"
	"github.com/precishq/precis/pkg/debug"
	"github.com/precishq/precis/pkg/llm"
	"github.com/precishq/precis/pkg/llm/groq"
	"github.com/precishq/precis/pkg/llm/openai"
	"github.com/precishq/precis/pkg/llm/openrouter"
	"github.com/precishq/precis/pkg/observability"
	"github.com/precishq/precis/pkg/storage/memory"
	"github.com/precishq/precis/pkg/storage/postgres"
	"github.com/precishq/precis/pkg/summarize"
	"github.com/precishq/precis/pkg/transport"
	transporthttp "github.com/precishq/precis/pkg/transport/http"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	debug.Init(cfg.Debug.Categories, cfg.Debug.Level)

	// Create the provider adapter. A missing credential fails here, at
	// startup, not on the first summarize request.
	adapter, err := newAdapter(cfg.Provider)
	if err != nil {
		return fmt.Errorf("creating provider adapter: %w", err)
	}
	defer func() {
		if c, ok := adapter.(llm.Closer); ok {
			c.Close()
		}
	}()

	// Create the article store.
	store, err := newStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	defer store.Close()

	// Create the summarize engine.
	eng, err := summarize.New(adapter, store, summarize.Config{
		Temperature:     cfg.Summarizer.Temperature,
		MaxOutputTokens: cfg.Summarizer.MaxOutputTokens,
		Timeout:         cfg.Summarizer.Timeout,
		SchemaName:      cfg.Summarizer.SchemaName,
	})
	if err != nil {
		return fmt.Errorf("creating summarize engine: %w", err)
	}

	metricsPath := ""
	var httpMW []func(http.Handler) http.Handler
	if mw := newAuthMiddleware(cfg.Auth); mw != nil {
		httpMW = append(httpMW, mw)
	}
	if cfg.Observability.Metrics.Enabled {
		metricsPath = cfg.Observability.Metrics.Path
		httpMW = append(httpMW, observability.MetricsMiddleware)
	}

	srv := transporthttp.NewServer(eng, store,
		transporthttp.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transporthttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		transporthttp.WithMetricsPath(metricsPath),
		transporthttp.WithHTTPMiddleware(httpMW...),
	)

	slog.Info("precis starting",
		"port", cfg.Server.Port,
		"provider", adapter.Name(),
		"model", adapter.DefaultModel(),
		"storage", cfg.Storage.Type,
		"auth", cfg.Auth.Type,
	)

	return srv.ListenAndServe()
}

// newAdapter constructs the configured provider adapter. Validation has
// already checked that the name is one of the known providers.
func newAdapter(cfg config.ProviderConfig) (llm.Adapter, error) {
	switch cfg.Name {
	case "groq":
		return groq.New(groq.Config{
			APIKey:       cfg.APIKey,
			BaseURL:      cfg.BaseURL,
			DefaultModel: cfg.DefaultModel,
		})
	case "openrouter":
		return openrouter.New(openrouter.Config{
			APIKey:       cfg.APIKey,
			BaseURL:      cfg.BaseURL,
			DefaultModel: cfg.DefaultModel,
			SiteURL:      cfg.SiteURL,
			SiteName:     cfg.SiteName,
		})
	default:
		return openai.New(openai.Config{
			APIKey:       cfg.APIKey,
			BaseURL:      cfg.BaseURL,
			DefaultModel: cfg.DefaultModel,
		})
	}
}

// newStore constructs the configured article store.
func newStore(cfg config.StorageConfig) (transport.ArticleStore, error) {
	switch cfg.Type {
	case "postgres":
		store, err := postgres.New(context.Background(), postgres.Config{
			DSN:            cfg.Postgres.DSN,
			MaxConns:       cfg.Postgres.MaxConns,
			MigrateOnStart: cfg.Postgres.MigrateOnStart,
		})
		if err != nil {
			return nil, err
		}
		slog.Info("storage ready", "type", "postgres")
		return store, nil
	default:
		slog.Info("storage ready", "type", "memory", "max_size", cfg.MaxSize)
		return memory.New(cfg.MaxSize), nil
	}
}

// newAuthMiddleware builds the authentication middleware for the configured
// auth type. Returns nil when neither authentication nor rate limiting is
// configured, so the server skips the auth layer entirely.
func newAuthMiddleware(cfg config.AuthConfig) func(http.Handler) http.Handler {
	var chain *auth.AuthChain

	switch cfg.Type {
	case "apikey":
		entries := make([]apikey.RawKeyEntry, 0, len(cfg.APIKeys))
		for _, k := range cfg.APIKeys {
			subject := k.Subject
			if subject == "" {
				subject = "default"
			}
			entries = append(entries, apikey.RawKeyEntry{
				Key:      k.Key,
				Identity: auth.Identity{Subject: subject},
			})
		}
		chain = &auth.AuthChain{
			Authenticators:  []auth.Authenticator{apikey.New(entries)},
			DefaultDecision: auth.No,
		}
	case "jwt":
		chain = &auth.AuthChain{
			Authenticators: []auth.Authenticator{jwt.New(jwt.Config{
				Secret:   cfg.JWT.Secret,
				Issuer:   cfg.JWT.Issuer,
				Audience: cfg.JWT.Audience,
			})},
			DefaultDecision: auth.No,
		}
	default:
		if cfg.RateLimitRPM <= 0 {
			return nil
		}
		// Rate limiting without authentication: every caller shares the
		// anonymous subject.
		chain = &auth.AuthChain{
			Authenticators:  []auth.Authenticator{&noop.Authenticator{}},
			DefaultDecision: auth.Yes,
		}
	}

	var limiter auth.RateLimiter
	if cfg.RateLimitRPM > 0 {
		limiter = auth.NewInProcessLimiter(cfg.RateLimitRPM)
	}

	return auth.Middleware(chain, limiter, auth.DefaultBypassEndpoints)
}
