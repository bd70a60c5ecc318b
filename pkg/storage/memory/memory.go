// Package memory provides an in-memory implementation of transport.ArticleStore
// for testing and lightweight deployments. Articles and summaries are stored
// in memory and lost when the process restarts. Optional LRU eviction limits
// memory usage.
package memory

import (
	"container/list"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/precishq/precis/pkg/api"
	"github.com/precishq/precis/pkg/storage"
	"github.com/precishq/precis/pkg/transport"
)

// articleEntry holds a stored article and its metadata.
type articleEntry struct {
	art       *api.Article
	deletedAt *time.Time
	lruElem   *list.Element // position in LRU list
}

// Store is an in-memory ArticleStore with optional LRU eviction.
type Store struct {
	mu        sync.RWMutex
	articles  map[string]*articleEntry
	summaries map[string]*api.Summary   // keyed by summary ID
	byArticle map[string][]*api.Summary // summaries per article, oldest first
	lruList   *list.List                // front = most recently stored, back = oldest
	maxSize   int                       // 0 = unlimited
}

// Ensure Store implements transport.ArticleStore at compile time.
var _ transport.ArticleStore = (*Store)(nil)

// New creates a new in-memory store. If maxSize is 0, the store grows
// without limit. If maxSize > 0, the oldest article and its summaries are
// evicted when the limit is reached.
func New(maxSize int) *Store {
	return &Store{
		articles:  make(map[string]*articleEntry),
		summaries: make(map[string]*api.Summary),
		byArticle: make(map[string][]*api.Summary),
		lruList:   list.New(),
		maxSize:   maxSize,
	}
}

// SaveArticle persists an article in memory.
func (s *Store) SaveArticle(_ context.Context, art *api.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.articles[art.ID]; exists {
		return storage.ErrConflict
	}

	// Evict if at capacity.
	if s.maxSize > 0 && len(s.articles) >= s.maxSize {
		s.evictOldest()
	}

	elem := s.lruList.PushFront(art.ID)
	s.articles[art.ID] = &articleEntry{
		art:     art,
		lruElem: elem,
	}

	return nil
}

// GetArticle retrieves an article by ID. Returns ErrNotFound if the article
// does not exist or has been soft-deleted.
func (s *Store) GetArticle(_ context.Context, id string) (*api.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.articles[id]
	if !ok || e.deletedAt != nil {
		return nil, storage.ErrNotFound
	}

	return e.art, nil
}

// DeleteArticle soft-deletes an article. Its summaries remain stored so a
// delete does not destroy usage accounting.
func (s *Store) DeleteArticle(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.articles[id]
	if !ok || e.deletedAt != nil {
		return storage.ErrNotFound
	}

	now := time.Now()
	e.deletedAt = &now
	return nil
}

// ListArticles returns a paginated list of stored articles with cursor-based
// pagination, newest first unless opts.Order is "asc".
func (s *Store) ListArticles(_ context.Context, opts transport.ListOptions) (*api.ArticleList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Collect live articles.
	var matches []*api.Article
	for _, e := range s.articles {
		if e.deletedAt != nil {
			continue
		}
		matches = append(matches, e.art)
	}

	// Sort by created_at. Default is desc (newest first).
	asc := opts.Order == "asc"
	sort.Slice(matches, func(i, j int) bool {
		if asc {
			if matches[i].CreatedAt != matches[j].CreatedAt {
				return matches[i].CreatedAt < matches[j].CreatedAt
			}
			return matches[i].ID < matches[j].ID
		}
		if matches[i].CreatedAt != matches[j].CreatedAt {
			return matches[i].CreatedAt > matches[j].CreatedAt
		}
		return matches[i].ID > matches[j].ID
	})

	// Apply the cursor.
	if opts.After != "" {
		idx := -1
		for i, a := range matches {
			if a.ID == opts.After {
				idx = i
				break
			}
		}
		if idx >= 0 {
			matches = matches[idx+1:]
		} else {
			matches = nil
		}
	}

	// Apply limit.
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	hasMore := len(matches) > limit
	if hasMore {
		matches = matches[:limit]
	}

	result := &api.ArticleList{
		Object:  api.ObjectList,
		Data:    make([]api.Article, 0, len(matches)),
		HasMore: hasMore,
	}
	for _, a := range matches {
		result.Data = append(result.Data, *a)
	}
	if len(matches) > 0 {
		result.LastID = matches[len(matches)-1].ID
	}

	return result, nil
}

// SaveSummary persists a summary for a stored article. Returns ErrNotFound
// if the article does not exist. Soft-deleted articles still accept
// summaries, matching the relational store's foreign key behavior.
func (s *Store) SaveSummary(_ context.Context, sum *api.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[sum.ArticleID]; !ok {
		return storage.ErrNotFound
	}
	if _, exists := s.summaries[sum.ID]; exists {
		return storage.ErrConflict
	}

	s.summaries[sum.ID] = sum
	s.byArticle[sum.ArticleID] = append(s.byArticle[sum.ArticleID], sum)
	return nil
}

// GetLatestSummary retrieves the most recently stored summary for an article.
// Returns ErrNotFound when no summary has been produced.
func (s *Store) GetLatestSummary(_ context.Context, articleID string) (*api.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sums := s.byArticle[articleID]
	if len(sums) == 0 {
		return nil, storage.ErrNotFound
	}

	return sums[len(sums)-1], nil
}

// HealthCheck always returns nil for the in-memory store.
func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// evictOldest removes the oldest article together with its summaries.
// Must be called with s.mu held.
func (s *Store) evictOldest() {
	back := s.lruList.Back()
	if back == nil {
		return
	}

	id := back.Value.(string)
	s.lruList.Remove(back)
	delete(s.articles, id)

	for _, sum := range s.byArticle[id] {
		delete(s.summaries, sum.ID)
	}
	delete(s.byArticle, id)
}
