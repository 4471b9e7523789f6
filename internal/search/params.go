package search

import (
	"net/url"
	"strconv"
	"strings"
)

// URL parameter names for shareable search links
const (
	paramQuery                 = "q"
	paramCategories            = "categories"
	paramLocation              = "location"
	paramRadius                = "radius"
	paramAvailability          = "availability"
	paramMinRating             = "minRating"
	paramVerifiedOnly          = "verifiedOnly"
	paramEmergencyServices     = "emergencyServices"
	paramWheelchairAccessible  = "wheelchairAccessible"
	paramInsuranceAccepted     = "insuranceAccepted"
	paramPriceRange            = "priceRange"
	paramAccessibilityFeatures = "accessibilityFeatures"
	paramHomeVisitAvailable    = "homeVisitAvailable"
)

// Serialize maps a FilterState onto URL query parameters. A key is emitted
// only when the field differs from its default, keeping shared links short.
// Array values join on comma; empty and comma-containing tokens are dropped.
// Booleans emit the literal "true"; absence means false.
func Serialize(f FilterState) url.Values {
	params := url.Values{}

	if f.Query != "" {
		params.Set(paramQuery, f.Query)
	}
	if s := joinList(f.Categories); s != "" {
		params.Set(paramCategories, s)
	}
	if f.Location != "" {
		params.Set(paramLocation, f.Location)
	}
	if f.Radius != DefaultRadius {
		params.Set(paramRadius, strconv.Itoa(f.Radius))
	}
	if f.Availability != "" && f.Availability != AvailabilityAny {
		params.Set(paramAvailability, f.Availability)
	}
	if f.MinRating > 0 {
		params.Set(paramMinRating, strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	}
	if f.VerifiedOnly {
		params.Set(paramVerifiedOnly, "true")
	}
	if f.EmergencyServices {
		params.Set(paramEmergencyServices, "true")
	}
	if f.WheelchairAccessible {
		params.Set(paramWheelchairAccessible, "true")
	}
	if f.InsuranceAccepted {
		params.Set(paramInsuranceAccepted, "true")
	}
	if f.HomeVisitAvailable {
		params.Set(paramHomeVisitAvailable, "true")
	}
	if priceActive(f.PriceRange) {
		params.Set(paramPriceRange, strconv.Itoa(f.PriceRange.Min)+"-"+strconv.Itoa(f.PriceRange.Max))
	}
	if s := joinList(f.AccessibilityFeatures); s != "" {
		params.Set(paramAccessibilityFeatures, s)
	}

	return params
}

// Deserialize reconstructs a FilterState from URL query parameters. Absent
// keys take their documented defaults; malformed numeric strings fall back
// to 0 so NaN never propagates into the returned state.
func Deserialize(params url.Values) FilterState {
	f := NewFilterState()

	f.Query = params.Get(paramQuery)
	f.Categories = splitList(params.Get(paramCategories))
	f.Location = params.Get(paramLocation)
	if v := params.Get(paramRadius); v != "" {
		f.Radius = parseInt(v)
	}
	if v := params.Get(paramAvailability); v != "" {
		f.Availability = v
	}
	if v := params.Get(paramMinRating); v != "" {
		f.MinRating = parseFloat(v)
	}
	f.VerifiedOnly = params.Get(paramVerifiedOnly) == "true"
	f.EmergencyServices = params.Get(paramEmergencyServices) == "true"
	f.WheelchairAccessible = params.Get(paramWheelchairAccessible) == "true"
	f.InsuranceAccepted = params.Get(paramInsuranceAccepted) == "true"
	f.HomeVisitAvailable = params.Get(paramHomeVisitAvailable) == "true"
	if v := params.Get(paramPriceRange); v != "" {
		f.PriceRange = parsePriceRange(v)
	}
	f.AccessibilityFeatures = splitList(params.Get(paramAccessibilityFeatures))

	return f
}

// joinList joins on comma, excluding empty and comma-containing tokens
func joinList(items []string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || strings.Contains(item, ",") {
			continue
		}
		kept = append(kept, item)
	}
	return strings.Join(kept, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parsePriceRange(s string) PriceRange {
	low, high := s, ""
	if i := strings.Index(s, "-"); i >= 0 {
		low, high = s[:i], s[i+1:]
	}
	return PriceRange{Min: parseInt(low), Max: parseInt(high)}
}
