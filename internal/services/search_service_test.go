package services

import (
	"context"
	"testing"
	"time"

	"github.com/dalilcare/provider-directory/internal/cache"
	"github.com/dalilcare/provider-directory/internal/models"
	"github.com/dalilcare/provider-directory/internal/repository"
	"github.com/dalilcare/provider-directory/internal/search"
)

func searchFixtureStore() *repository.MemoryProviderStore {
	return repository.NewMemoryProviderStore(
		models.Provider{
			Name: "Cabinet Dr Benali", Type: models.ProviderTypeDoctor,
			Specialty: "Cardiologie", City: "Oran",
			Rating: 4.6, ConsultationFee: 2500,
			VerificationStatus: models.VerificationVerified,
		},
		models.Provider{
			Name: "Clinique El Amel", Type: models.ProviderTypeClinic,
			City:   "Alger",
			Rating: 3.9, ConsultationFee: 4000,
			VerificationStatus: models.VerificationPending,
		},
		models.Provider{
			Name: "Pharmacie Centrale", Type: models.ProviderTypePharmacy,
			City:               "Alger",
			Rating:             4.1,
			VerificationStatus: models.VerificationVerified,
		},
	)
}

// countingCache wraps a Cache and counts Set calls so a test can tell a
// cache hit from a recomputation.
type countingCache struct {
	cache.Cache
	sets int
}

func (c *countingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.sets++
	return c.Cache.Set(ctx, key, value, ttl)
}

func TestSearchFiltersAndSorts(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()
	svc := NewSearchService(searchFixtureStore(), mc, time.Minute)

	filters := search.NewFilterState()
	filters.VerifiedOnly = true

	results, err := svc.Search(context.Background(), SearchRequest{Filters: filters, Sort: search.SortRating})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Name != "Cabinet Dr Benali" || results[1].Name != "Pharmacie Centrale" {
		t.Errorf("rating order wrong: %q, %q", results[0].Name, results[1].Name)
	}
}

func TestSearchUsesCacheOnSecondCall(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()
	cc := &countingCache{Cache: mc}
	svc := NewSearchService(searchFixtureStore(), cc, time.Minute)

	req := SearchRequest{Filters: search.NewFilterState(), Sort: search.SortNewest}

	first, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("first Search() error = %v", err)
	}
	second, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("second Search() error = %v", err)
	}

	if cc.sets != 1 {
		t.Errorf("cache Set called %d times, want 1", cc.sets)
	}
	if len(first) != len(second) {
		t.Errorf("cached result has %d entries, fresh had %d", len(second), len(first))
	}
}

func TestSearchDistinguishesCoordinates(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()
	cc := &countingCache{Cache: mc}
	svc := NewSearchService(searchFixtureStore(), cc, time.Minute)

	lat, lng := 35.6971, -0.6308
	req := SearchRequest{Filters: search.NewFilterState(), Sort: search.SortRelevance}

	if _, err := svc.Search(context.Background(), req); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	req.Lat, req.Lng = &lat, &lng
	if _, err := svc.Search(context.Background(), req); err != nil {
		t.Fatalf("Search() with coordinates error = %v", err)
	}

	if cc.sets != 2 {
		t.Errorf("coordinate change should miss the cache; Set called %d times, want 2", cc.sets)
	}
}
