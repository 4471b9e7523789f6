package search

import (
	"testing"
	"time"

	"github.com/dalilcare/provider-directory/internal/models"
)

func sortFixture() []Result {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mk := func(name string, rating float64, fee int, dist float64, age time.Duration) Result {
		r := Result{Provider: models.Provider{Name: name, Rating: rating, ConsultationFee: fee}}
		r.CreatedAt = base.Add(age)
		if dist > 0 {
			r.DistanceKm = dist
			r.HasDistance = true
		}
		return r
	}
	return []Result{
		mk("a", 3.0, 2000, 12, 0),
		mk("b", 4.5, 500, 3, 48*time.Hour),
		mk("c", 4.5, 3500, 0, 24*time.Hour),
		mk("d", 2.0, 500, 7, 72*time.Hour),
	}
}

func names(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Name
	}
	return out
}

func TestSortResults(t *testing.T) {
	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortRelevance, []string{"a", "b", "c", "d"}},
		// b and c tie on rating; input order breaks the tie
		{SortRating, []string{"b", "c", "a", "d"}},
		// missing distance sorts as 0
		{SortDistance, []string{"c", "b", "d", "a"}},
		// b and d tie on fee; input order breaks the tie
		{SortPrice, []string{"b", "d", "a", "c"}},
		{SortNewest, []string{"d", "b", "c", "a"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			results := sortFixture()
			SortResults(results, tt.key)
			got := names(results)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("order = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestParseSortKey(t *testing.T) {
	if ParseSortKey("rating") != SortRating {
		t.Error("rating not recognized")
	}
	if ParseSortKey("") != SortRelevance {
		t.Error("empty sort should default to relevance")
	}
	if ParseSortKey("bogus") != SortRelevance {
		t.Error("unknown sort should default to relevance")
	}
}
