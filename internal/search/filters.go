package search

import (
	"strings"
	"time"

	"github.com/dalilcare/provider-directory/internal/models"
)

// Availability filter values
const (
	AvailabilityAny      = "any"
	AvailabilityToday    = "today"
	AvailabilityThisWeek = "this_week"
)

// Filter defaults
const (
	DefaultRadius   = 25
	DefaultPriceMin = 0
	DefaultPriceMax = 10000
)

// PriceRange bounds the acceptable consultation fee, Min <= Max
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FilterState is the value object describing one search session's criteria.
// A dimension is active when it departs from its default; active dimensions
// combine with AND semantics.
type FilterState struct {
	Query                 string     `json:"q,omitempty"`
	Categories            []string   `json:"categories,omitempty"`
	Location              string     `json:"location,omitempty"`
	Radius                int        `json:"radius"`
	Availability          string     `json:"availability"`
	MinRating             float64    `json:"min_rating"`
	VerifiedOnly          bool       `json:"verified_only"`
	EmergencyServices     bool       `json:"emergency_services"`
	WheelchairAccessible  bool       `json:"wheelchair_accessible"`
	InsuranceAccepted     bool       `json:"insurance_accepted"`
	HomeVisitAvailable    bool       `json:"home_visit_available"`
	PriceRange            PriceRange `json:"price_range"`
	AccessibilityFeatures []string   `json:"accessibility_features,omitempty"`
}

// NewFilterState returns a FilterState with every dimension at its default
func NewFilterState() FilterState {
	return FilterState{
		Radius:       DefaultRadius,
		Availability: AvailabilityAny,
		PriceRange:   PriceRange{Min: DefaultPriceMin, Max: DefaultPriceMax},
	}
}

// IsNeutral reports whether no dimension is active
func (f FilterState) IsNeutral() bool {
	d := NewFilterState()
	return f.Query == "" &&
		len(f.Categories) == 0 &&
		f.Location == "" &&
		f.Radius == d.Radius &&
		(f.Availability == d.Availability || f.Availability == "") &&
		f.MinRating == 0 &&
		!f.VerifiedOnly &&
		!f.EmergencyServices &&
		!f.WheelchairAccessible &&
		!f.InsuranceAccepted &&
		!f.HomeVisitAvailable &&
		f.PriceRange == d.PriceRange &&
		len(f.AccessibilityFeatures) == 0
}

// Result wraps a provider with the per-search distance from the caller's
// coordinates. HasDistance is false when no coordinates were supplied, in
// which case the radius dimension cannot apply.
type Result struct {
	models.Provider
	DistanceKm  float64 `json:"distance_km,omitempty"`
	HasDistance bool    `json:"-"`
}

// Wrap converts providers into results without distance information
func Wrap(providers []models.Provider) []Result {
	results := make([]Result, len(providers))
	for i, p := range providers {
		results[i] = Result{Provider: p}
	}
	return results
}

// WithDistance converts providers into results with the haversine distance
// from (lat, lng). Providers without coordinates keep HasDistance false.
func WithDistance(providers []models.Provider, lat, lng float64) []Result {
	results := make([]Result, len(providers))
	for i, p := range providers {
		results[i] = Result{Provider: p}
		if p.Latitude != nil && p.Longitude != nil {
			results[i].DistanceKm = HaversineKm(lat, lng, *p.Latitude, *p.Longitude)
			results[i].HasDistance = true
		}
	}
	return results
}

// Apply returns the ordered subsequence of results satisfying every active
// dimension. With no active dimension it returns the input unchanged.
func Apply(results []Result, f FilterState) []Result {
	if f.IsNeutral() {
		return results
	}

	now := time.Now()
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if matches(r, f, now) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r Result, f FilterState, now time.Time) bool {
	if f.Query != "" && !matchesQuery(r.Provider, f.Query) {
		return false
	}
	if len(f.Categories) > 0 && !matchesCategory(r.Provider, f.Categories) {
		return false
	}
	if f.Location != "" && !matchesLocation(r.Provider, f.Location) {
		return false
	}
	if f.Radius > 0 && f.Radius != DefaultRadius && r.HasDistance && r.DistanceKm > float64(f.Radius) {
		return false
	}
	if f.Availability != "" && f.Availability != AvailabilityAny && !matchesAvailability(r.Provider, f.Availability, now) {
		return false
	}
	if f.MinRating > 0 && r.Rating < f.MinRating {
		return false
	}
	if f.VerifiedOnly && !r.Provider.IsVerified() {
		return false
	}
	if f.EmergencyServices && !r.EmergencyServices {
		return false
	}
	if f.WheelchairAccessible && !r.Provider.HasFeature(models.FeatureWheelchairAccess) {
		return false
	}
	if f.InsuranceAccepted && !r.InsuranceAccepted {
		return false
	}
	if f.HomeVisitAvailable && !r.Provider.HomeVisitAvailable {
		return false
	}
	if priceActive(f.PriceRange) {
		if r.ConsultationFee < f.PriceRange.Min || r.ConsultationFee > f.PriceRange.Max {
			return false
		}
	}
	if len(f.AccessibilityFeatures) > 0 && !matchesFeatures(r.Provider, f.AccessibilityFeatures) {
		return false
	}
	return true
}

// matchesQuery performs a case-insensitive substring match against name,
// specialty and address.
func matchesQuery(p models.Provider, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Specialty), q) ||
		strings.Contains(strings.ToLower(p.Address), q)
}

// matchesCategory is OR within the dimension: the provider matches when any
// selected category is a case-insensitive substring of its type or specialty.
func matchesCategory(p models.Provider, categories []string) bool {
	typ := strings.ToLower(string(p.Type))
	spec := strings.ToLower(p.Specialty)
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if strings.Contains(typ, c) || strings.Contains(spec, c) {
			return true
		}
	}
	return false
}

func matchesLocation(p models.Provider, loc string) bool {
	loc = strings.ToLower(strings.TrimSpace(loc))
	if loc == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.City), loc) ||
		strings.Contains(strings.ToLower(p.Address), loc)
}

func matchesAvailability(p models.Provider, availability string, now time.Time) bool {
	if p.NextAvailableAt == nil {
		return false
	}
	switch availability {
	case AvailabilityToday:
		return p.NextAvailableAt.Before(endOfDay(now))
	case AvailabilityThisWeek:
		return p.NextAvailableAt.Before(endOfWeek(now))
	default:
		return true
	}
}

// matchesFeatures is ANY semantics: the provider's feature set must intersect
// the required set.
func matchesFeatures(p models.Provider, required []string) bool {
	for _, tag := range required {
		if p.HasFeature(strings.TrimSpace(tag)) {
			return true
		}
	}
	return false
}

func priceActive(pr PriceRange) bool {
	return pr != PriceRange{Min: DefaultPriceMin, Max: DefaultPriceMax} && pr != PriceRange{}
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}

func endOfWeek(t time.Time) time.Time {
	// ISO week: Monday is the first day
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return endOfDay(t).AddDate(0, 0, 7-weekday)
}
