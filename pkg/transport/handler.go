package transport

import (
	"context"

	"github.com/precishq/precis/pkg/api"
)

// SummaryCreator handles the core summarize operation. The implementation
// loads the article, runs the provider call, persists the resulting summary,
// and returns it.
type SummaryCreator interface {
	CreateSummary(ctx context.Context, articleID string, req *api.SummarizeRequest) (*api.Summary, error)
}

// SummaryCreatorFunc is an adapter that allows using an ordinary function
// as a SummaryCreator.
type SummaryCreatorFunc func(ctx context.Context, articleID string, req *api.SummarizeRequest) (*api.Summary, error)

// CreateSummary calls f(ctx, articleID, req).
func (f SummaryCreatorFunc) CreateSummary(ctx context.Context, articleID string, req *api.SummarizeRequest) (*api.Summary, error) {
	return f(ctx, articleID, req)
}

// ListOptions controls pagination and ordering for article listings.
type ListOptions struct {
	After string // Cursor: return articles after this ID.
	Limit int    // Maximum number of articles to return (default 20, max 100).
	Order string // Sort order: "asc" or "desc" (default "desc").
}

// ArticleStore handles persistence, retrieval, and deletion of articles and
// their summaries.
type ArticleStore interface {
	// SaveArticle persists a new article. Returns storage.ErrConflict if an
	// article with the same ID already exists.
	SaveArticle(ctx context.Context, art *api.Article) error

	// GetArticle retrieves an article by ID. Returns storage.ErrNotFound if
	// the article does not exist or has been deleted (soft delete).
	GetArticle(ctx context.Context, id string) (*api.Article, error)

	// DeleteArticle soft-deletes an article by ID. Summaries for the article
	// remain stored.
	DeleteArticle(ctx context.Context, id string) error

	// ListArticles returns a paginated list of stored articles with
	// cursor-based pagination and ordering.
	ListArticles(ctx context.Context, opts ListOptions) (*api.ArticleList, error)

	// SaveSummary persists a generated summary. Returns storage.ErrNotFound
	// if the referenced article was never stored.
	SaveSummary(ctx context.Context, sum *api.Summary) error

	// GetLatestSummary retrieves the most recently stored summary for an
	// article. Returns storage.ErrNotFound when no summary exists.
	GetLatestSummary(ctx context.Context, articleID string) (*api.Summary, error)

	// HealthCheck verifies the store connection is functional.
	HealthCheck(ctx context.Context) error

	// Close releases database connections and resources.
	Close() error
}
