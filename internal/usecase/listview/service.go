// Package listview paginates article listings. Pages are a fixed size and
// the page after the requested one is prefetched on every load, both to warm
// the cache and to decide whether a next page exists at all.
package listview

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"newsbridge/internal/domain/entity"
	"newsbridge/internal/infra/upstream"
)

// PageSize is the number of articles per listing page.
const PageSize = 6

// BreakingNews is the category served from the backend's fresh endpoint.
// Every other category reads stored articles.
const BreakingNews = "breaking-news"

// Lister is the slice of the upstream client the listing service needs.
type Lister interface {
	ListFresh(ctx context.Context, q upstream.ListQuery) (*upstream.ListResult, error)
	ListStored(ctx context.Context, q upstream.ListQuery) (*upstream.ListResult, error)
}

// Query identifies one listing page.
type Query struct {
	Category string
	Search   string
	Page     int // 1-based
	Cookie   string
}

func (q Query) normalized() Query {
	if q.Category == "" {
		q.Category = BreakingNews
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

func (q Query) cacheKey() string {
	return strings.Join([]string{q.Category, q.Search, fmt.Sprint(q.Page), q.Cookie}, "\x00")
}

// Page is one rendered listing page. HasNext comes from the prefetched
// following page, not from the total, because the backend's total is not
// reliable for the fresh endpoint.
type Page struct {
	Articles   []entity.SummarizedArticle `json:"articles"`
	TotalFound int                        `json:"totalArticlesFound"`
	Page       int                        `json:"page"`
	HasNext    bool                       `json:"hasNext"`
}

// Service loads listing pages through a TTL cache. Concurrent requests for
// the same page share one backend call.
type Service struct {
	lister Lister
	cache  *Cache
	sf     singleflight.Group
	logger *slog.Logger
}

// NewService builds a listing Service. A nil cache gets the default TTL.
func NewService(lister Lister, cache *Cache, logger *slog.Logger) *Service {
	if cache == nil {
		cache = NewCache(DefaultTTL)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{lister: lister, cache: cache, logger: logger}
}

// GetPage returns one listing page. The requested page and the one after it
// load concurrently; a prefetch failure only costs the next-page hint, never
// the page itself.
func (s *Service) GetPage(ctx context.Context, q Query) (*Page, error) {
	q = q.normalized()
	next := q
	next.Page++

	var cur, ahead *upstream.ListResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.load(gctx, q)
		if err != nil {
			return err
		}
		cur = r
		return nil
	})
	g.Go(func() error {
		r, err := s.load(gctx, next)
		if err != nil {
			s.logger.Debug("next page prefetch failed",
				slog.String("category", next.Category),
				slog.Int("page", next.Page),
				slog.String("error", err.Error()))
			return nil
		}
		ahead = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Page{
		Articles:   cur.Articles,
		TotalFound: cur.Total,
		Page:       q.Page,
		HasNext:    ahead != nil && len(ahead.Articles) > 0,
	}, nil
}

// Invalidate drops all cached pages so the next load hits the backend.
func (s *Service) Invalidate() {
	s.cache.Clear()
}

// PurgeExpired sweeps expired cache entries. Wired to the janitor schedule.
func (s *Service) PurgeExpired() {
	if n := s.cache.PurgeExpired(); n > 0 {
		s.logger.Debug("purged expired listing pages", slog.Int("count", n))
	}
}

func (s *Service) load(ctx context.Context, q Query) (*upstream.ListResult, error) {
	key := q.cacheKey()
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	result, err, _ := s.sf.Do(key, func() (any, error) {
		if cached, ok := s.cache.Get(key); ok {
			return cached, nil
		}

		start := time.Now()
		lq := upstream.ListQuery{
			Category: q.Category,
			Search:   q.Search,
			Offset:   (q.Page - 1) * PageSize,
			Limit:    PageSize,
			Cookie:   q.Cookie,
		}

		var r *upstream.ListResult
		var err error
		if q.Category == BreakingNews {
			r, err = s.lister.ListFresh(ctx, lq)
		} else {
			r, err = s.lister.ListStored(ctx, lq)
		}
		if err != nil {
			return nil, err
		}
		recordLoad(q.Category, time.Since(start))

		s.cache.Set(key, r)
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*upstream.ListResult), nil
}
