package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dalilcare/provider-directory/internal/cache"
	"github.com/dalilcare/provider-directory/internal/metrics"
	"github.com/dalilcare/provider-directory/internal/repository"
	"github.com/dalilcare/provider-directory/internal/search"
)

// SearchRequest describes one directory search: the filter state, the result
// ordering and optional caller coordinates for distance computation.
type SearchRequest struct {
	Filters search.FilterState
	Sort    search.SortKey
	Lat     *float64
	Lng     *float64
}

// SearchService runs directory searches over the provider store, with a
// short-lived result cache in front.
type SearchService struct {
	store repository.ProviderStore
	cache cache.Cache
	ttl   time.Duration
}

// NewSearchService creates a new search service
func NewSearchService(store repository.ProviderStore, c cache.Cache, ttl time.Duration) *SearchService {
	return &SearchService{store: store, cache: c, ttl: ttl}
}

// Search returns the filtered, sorted provider results for the request
func (s *SearchService) Search(ctx context.Context, req SearchRequest) ([]search.Result, error) {
	metrics.SearchesTotal.Inc()

	coords := ""
	if req.Lat != nil && req.Lng != nil {
		coords = fmt.Sprintf("%.4f,%.4f", *req.Lat, *req.Lng)
	}
	key := cache.SearchKey(search.Serialize(req.Filters).Encode(), string(req.Sort), coords)

	if data, err := s.cache.Get(ctx, key); err == nil {
		var cached []search.Result
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.SearchCacheHits.Inc()
			return cached, nil
		}
		// Unreadable entry; fall through and overwrite it
		log.Warn().Str("key", key).Msg("Dropping unreadable cache entry")
	}

	providers, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load providers: %w", err)
	}

	var results []search.Result
	if req.Lat != nil && req.Lng != nil {
		results = search.WithDistance(providers, *req.Lat, *req.Lng)
	} else {
		results = search.Wrap(providers)
	}

	results = search.Apply(results, req.Filters)
	search.SortResults(results, req.Sort)

	if data, err := json.Marshal(results); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			log.Warn().Err(err).Msg("Failed to cache search results")
		}
	}

	return results, nil
}
