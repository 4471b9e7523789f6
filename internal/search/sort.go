package search

import "sort"

// SortKey names one of the fixed result orderings
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortDistance  SortKey = "distance"
	SortRating    SortKey = "rating"
	SortPrice     SortKey = "price"
	SortNewest    SortKey = "newest"
)

// ParseSortKey maps a raw query value onto a SortKey, defaulting to relevance
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortDistance, SortRating, SortPrice, SortNewest:
		return SortKey(s)
	default:
		return SortRelevance
	}
}

// SortResults orders results in place by the given key. The sort is stable:
// ties keep their input order, and relevance leaves the input untouched.
// Results without distance information sort as distance 0.
func SortResults(results []Result, key SortKey) {
	switch key {
	case SortRating:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Rating > results[j].Rating
		})
	case SortDistance:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].DistanceKm < results[j].DistanceKm
		})
	case SortPrice:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].ConsultationFee < results[j].ConsultationFee
		})
	case SortNewest:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		})
	}
}
