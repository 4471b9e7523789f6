package search

import (
	"testing"
	"time"

	"github.com/dalilcare/provider-directory/internal/models"
)

func fixtureProviders() []models.Provider {
	soon := time.Now()
	nextMonth := time.Now().AddDate(0, 1, 0)
	lat1, lng1 := 35.6971, -0.6308
	return []models.Provider{
		{
			Name: "Cabinet Dr Benali", Type: models.ProviderTypeDoctor,
			Specialty: "Cardiologie", Address: "12 Rue Larbi Ben M'hidi", City: "Oran",
			Rating: 4.6, ConsultationFee: 2500,
			VerificationStatus: models.VerificationVerified,
			EmergencyServices:  false, HomeVisitAvailable: true, InsuranceAccepted: true,
			AccessibilityFeatures: []string{models.FeatureWheelchairAccess, models.FeatureElevator},
			Latitude:              &lat1, Longitude: &lng1,
			NextAvailableAt: &soon,
		},
		{
			Name: "Clinique El Amel", Type: models.ProviderTypeClinic,
			Specialty: "Chirurgie generale", Address: "Boulevard Zirout Youcef", City: "Alger",
			Rating: 3.9, ConsultationFee: 4000,
			VerificationStatus: models.VerificationPending,
			EmergencyServices:  true,
			NextAvailableAt:    &nextMonth,
		},
		{
			Name: "Pharmacie Centrale", Type: models.ProviderTypePharmacy,
			Address: "3 Rue Didouche Mourad", City: "Alger",
			Rating:  4.1, ConsultationFee: 0,
			VerificationStatus: models.VerificationVerified,
		},
	}
}

func TestApplyNeutralIsIdentity(t *testing.T) {
	providers := fixtureProviders()
	results := Apply(Wrap(providers), NewFilterState())

	if len(results) != len(providers) {
		t.Fatalf("neutral filters returned %d of %d providers", len(results), len(providers))
	}
	for i, r := range results {
		if r.Name != providers[i].Name {
			t.Errorf("order changed at %d: got %q, want %q", i, r.Name, providers[i].Name)
		}
	}
}

func TestApplyMonotoneRestriction(t *testing.T) {
	providers := fixtureProviders()
	states := []FilterState{
		NewFilterState(),
		func() FilterState { f := NewFilterState(); f.Query = "benali"; return f }(),
		func() FilterState { f := NewFilterState(); f.VerifiedOnly = true; f.MinRating = 4; return f }(),
		func() FilterState { f := NewFilterState(); f.Categories = []string{"wizard"}; return f }(),
	}

	for _, f := range states {
		results := Apply(Wrap(providers), f)
		if len(results) > len(providers) {
			t.Errorf("filter produced %d results from %d providers", len(results), len(providers))
		}
	}
}

// Every returned element must satisfy every active dimension.
func TestApplyConjunction(t *testing.T) {
	f := NewFilterState()
	f.VerifiedOnly = true
	f.MinRating = 4.0
	f.HomeVisitAvailable = true

	results := Apply(Wrap(fixtureProviders()), f)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if !r.Provider.IsVerified() || r.Rating < 4.0 || !r.Provider.HomeVisitAvailable {
		t.Errorf("result %q violates an active dimension", r.Name)
	}
}

func TestCategoryMatchIsSubstringOrWithinDimension(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		want       []string
	}{
		{"type match", []string{"pharmacy"}, []string{"Pharmacie Centrale"}},
		{"specialty substring", []string{"cardio"}, []string{"Cabinet Dr Benali"}},
		{"or within dimension", []string{"pharmacy", "clinic"}, []string{"Clinique El Amel", "Pharmacie Centrale"}},
		{"case insensitive", []string{"DOCTOR"}, []string{"Cabinet Dr Benali"}},
		{"no match", []string{"wizard"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilterState()
			f.Categories = tt.categories
			results := Apply(Wrap(fixtureProviders()), f)

			if len(results) != len(tt.want) {
				t.Fatalf("got %d results, want %d", len(results), len(tt.want))
			}
			for i, want := range tt.want {
				if results[i].Name != want {
					t.Errorf("result %d = %q, want %q", i, results[i].Name, want)
				}
			}
		})
	}
}

func TestAccessibilityFeaturesIntersect(t *testing.T) {
	f := NewFilterState()
	f.AccessibilityFeatures = []string{models.FeatureElevator, models.FeatureBrailleSignage}

	results := Apply(Wrap(fixtureProviders()), f)
	if len(results) != 1 || results[0].Name != "Cabinet Dr Benali" {
		t.Fatalf("expected only the provider whose features intersect, got %d results", len(results))
	}
}

func TestWheelchairToggleChecksFeature(t *testing.T) {
	f := NewFilterState()
	f.WheelchairAccessible = true

	results := Apply(Wrap(fixtureProviders()), f)
	if len(results) != 1 || results[0].Name != "Cabinet Dr Benali" {
		t.Fatalf("wheelchair toggle matched %d providers", len(results))
	}
}

func TestQueryMatchesNameSpecialtyAddress(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"benali", 1},
		{"chirurgie", 1},
		{"didouche", 1},
		{"RUE", 2},
		{"nothing-matches-this", 0},
	}

	for _, tt := range tests {
		f := NewFilterState()
		f.Query = tt.query
		results := Apply(Wrap(fixtureProviders()), f)
		if len(results) != tt.want {
			t.Errorf("query %q matched %d providers, want %d", tt.query, len(results), tt.want)
		}
	}
}

func TestPriceRangeBounds(t *testing.T) {
	f := NewFilterState()
	f.PriceRange = PriceRange{Min: 1000, Max: 3000}

	results := Apply(Wrap(fixtureProviders()), f)
	if len(results) != 1 || results[0].Name != "Cabinet Dr Benali" {
		t.Fatalf("price range matched %d providers", len(results))
	}
}

func TestAvailabilityToday(t *testing.T) {
	f := NewFilterState()
	f.Availability = AvailabilityToday

	results := Apply(Wrap(fixtureProviders()), f)
	if len(results) != 1 || results[0].Name != "Cabinet Dr Benali" {
		t.Fatalf("availability=today matched %d providers", len(results))
	}
}

func TestRadiusRequiresDistance(t *testing.T) {
	providers := fixtureProviders()
	f := NewFilterState()
	f.Radius = 5

	// Without coordinates the radius dimension cannot apply
	if got := len(Apply(Wrap(providers), f)); got != len(providers) {
		t.Errorf("radius without coordinates filtered to %d providers", got)
	}

	// From central Oran only the Oran provider with coordinates is within 5km
	results := Apply(WithDistance(providers, 35.6980, -0.6350), f)
	for _, r := range results {
		if r.HasDistance && r.DistanceKm > 5 {
			t.Errorf("%q is %.1fkm away, outside the 5km radius", r.Name, r.DistanceKm)
		}
	}
}
