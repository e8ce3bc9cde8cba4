package catalog

import (
	"context"

	"github.com/enzogallo/discover-backend/internal/apperror"
	"github.com/enzogallo/discover-backend/internal/models"
)

// Searcher is the upstream search contract; Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.MusicItem, error)
}

// Service fronts the upstream catalog with the PostgreSQL cache. A nil
// cache disables caching.
type Service struct {
	searcher Searcher
	cache    *Cache
}

func NewService(searcher Searcher, cache *Cache) *Service {
	return &Service{searcher: searcher, cache: cache}
}

// Search returns catalog matches for the query, served from the cache when
// fresh. A cache read failure falls through to the upstream rather than
// failing the search; a cache write failure is ignored for the same reason.
func (s *Service) Search(ctx context.Context, query string) ([]models.MusicItem, error) {
	if query == "" {
		return nil, apperror.ValidationFailed("search query must not be empty")
	}

	if s.cache != nil {
		if items, ok, err := s.cache.Get(ctx, query); err == nil && ok {
			return items, nil
		}
	}

	items, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Put(ctx, query, items)
	}
	return items, nil
}
