// Package postgres provides a PostgreSQL implementation of transport.ArticleStore.
// It uses pgx/v5 for connection pooling and JSONB for the summary list fields.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/precishq/precis/pkg/api"
	"github.com/precishq/precis/pkg/storage"
	"github.com/precishq/precis/pkg/transport"
)

// Store is a PostgreSQL-backed ArticleStore.
type Store struct {
	pool *pgxpool.Pool
}

// Ensure Store implements transport.ArticleStore at compile time.
var _ transport.ArticleStore = (*Store)(nil)

// New creates a new PostgreSQL store with the given configuration.
// If MigrateOnStart is true, schema migrations are applied automatically.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cfg.defaults()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connectivity.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{pool: pool}

	if cfg.MigrateOnStart {
		if err := s.migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return s, nil
}

// SaveArticle persists an article.
func (s *Store) SaveArticle(ctx context.Context, art *api.Article) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO articles (id, title, body, created_at)
		VALUES ($1, $2, $3, $4)
	`, art.ID, art.Title, art.Body, art.CreatedAt)

	if err != nil {
		if isDuplicateKey(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("inserting article: %w", err)
	}

	return nil
}

// GetArticle retrieves an article by ID, excluding soft-deleted articles.
func (s *Store) GetArticle(ctx context.Context, id string) (*api.Article, error) {
	var art api.Article

	err := s.pool.QueryRow(ctx, `
		SELECT id, title, body, created_at
		FROM articles
		WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&art.ID, &art.Title, &art.Body, &art.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying article: %w", err)
	}

	art.Object = api.ObjectArticle
	return &art, nil
}

// DeleteArticle soft-deletes an article by setting deleted_at. Summary rows
// are retained.
func (s *Store) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.pool.Exec(ctx,
		"UPDATE articles SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL",
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("deleting article: %w", err)
	}

	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// ListArticles returns a paginated list of stored articles using keyset
// pagination on (created_at, id), newest first unless opts.Order is "asc".
func (s *Store) ListArticles(ctx context.Context, opts transport.ListOptions) (*api.ArticleList, error) {
	asc := opts.Order == "asc"

	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	query := `
		SELECT id, title, body, created_at
		FROM articles
		WHERE deleted_at IS NULL
	`
	var args []any

	if opts.After != "" {
		// Resolve the cursor to its sort key. An unknown or deleted cursor
		// yields an empty page, matching the in-memory store.
		var curCreated int64
		err := s.pool.QueryRow(ctx,
			"SELECT created_at FROM articles WHERE id = $1 AND deleted_at IS NULL",
			opts.After,
		).Scan(&curCreated)
		if errors.Is(err, pgx.ErrNoRows) {
			return &api.ArticleList{Object: api.ObjectList, Data: []api.Article{}}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("resolving cursor: %w", err)
		}

		if asc {
			query += " AND (created_at, id) > ($1, $2)"
		} else {
			query += " AND (created_at, id) < ($1, $2)"
		}
		args = append(args, curCreated, opts.After)
	}

	if asc {
		query += " ORDER BY created_at ASC, id ASC"
	} else {
		query += " ORDER BY created_at DESC, id DESC"
	}
	query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
	args = append(args, limit+1)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer rows.Close()

	var matches []api.Article
	for rows.Next() {
		var art api.Article
		if err := rows.Scan(&art.ID, &art.Title, &art.Body, &art.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		art.Object = api.ObjectArticle
		matches = append(matches, art)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating articles: %w", err)
	}

	hasMore := len(matches) > limit
	if hasMore {
		matches = matches[:limit]
	}

	result := &api.ArticleList{
		Object:  api.ObjectList,
		Data:    matches,
		HasMore: hasMore,
	}
	if len(matches) > 0 {
		result.LastID = matches[len(matches)-1].ID
	}
	if result.Data == nil {
		result.Data = []api.Article{}
	}

	return result, nil
}

// SaveSummary persists a summary. Returns ErrNotFound if the referenced
// article does not exist and ErrConflict on a duplicate summary ID.
func (s *Store) SaveSummary(ctx context.Context, sum *api.Summary) error {
	keyPointsJSON, err := json.Marshal(sum.KeyPoints)
	if err != nil {
		return fmt.Errorf("marshaling key points: %w", err)
	}

	topicsJSON, err := json.Marshal(sum.Topics)
	if err != nil {
		return fmt.Errorf("marshaling topics: %w", err)
	}

	var promptTokens, completionTokens, totalTokens int
	var latencyMS int64
	if sum.Usage != nil {
		promptTokens = sum.Usage.PromptTokens
		completionTokens = sum.Usage.CompletionTokens
		totalTokens = sum.Usage.TotalTokens
		latencyMS = sum.Usage.LatencyMS
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO summaries (
			id, article_id, provider, model, headline, abstract,
			key_points, topics,
			usage_prompt_tokens, usage_completion_tokens, usage_total_tokens,
			usage_latency_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		sum.ID, sum.ArticleID, sum.Provider, sum.Model, sum.Headline, sum.Abstract,
		keyPointsJSON, topicsJSON,
		promptTokens, completionTokens, totalTokens,
		latencyMS, sum.CreatedAt,
	)

	if err != nil {
		if isDuplicateKey(err) {
			return storage.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("inserting summary: %w", err)
	}

	return nil
}

// GetLatestSummary retrieves the most recently stored summary for an article.
func (s *Store) GetLatestSummary(ctx context.Context, articleID string) (*api.Summary, error) {
	var sum api.Summary
	var keyPointsJSON, topicsJSON []byte
	var usage api.SummaryUsage

	err := s.pool.QueryRow(ctx, `
		SELECT id, article_id, provider, model, headline, abstract,
		       key_points, topics,
		       usage_prompt_tokens, usage_completion_tokens, usage_total_tokens,
		       usage_latency_ms, created_at
		FROM summaries
		WHERE article_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, articleID).Scan(
		&sum.ID, &sum.ArticleID, &sum.Provider, &sum.Model, &sum.Headline, &sum.Abstract,
		&keyPointsJSON, &topicsJSON,
		&usage.PromptTokens, &usage.CompletionTokens, &usage.TotalTokens,
		&usage.LatencyMS, &sum.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying summary: %w", err)
	}

	sum.Object = api.ObjectSummary
	sum.Usage = &usage

	if err := json.Unmarshal(keyPointsJSON, &sum.KeyPoints); err != nil {
		return nil, fmt.Errorf("unmarshaling key points: %w", err)
	}
	if err := json.Unmarshal(topicsJSON, &sum.Topics); err != nil {
		return nil, fmt.Errorf("unmarshaling topics: %w", err)
	}

	return &sum, nil
}

// HealthCheck verifies the database connection.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// isDuplicateKey checks if the error is a PostgreSQL unique violation (23505).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation checks if the error is a PostgreSQL foreign key
// violation (23503), raised when a summary references a missing article.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23503")
}
