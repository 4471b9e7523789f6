package search

import (
	"net/url"
	"reflect"
	"testing"
)

func TestSerializeOmitsDefaults(t *testing.T) {
	params := Serialize(NewFilterState())
	if len(params) != 0 {
		t.Fatalf("neutral state serialized to %v, want empty", params)
	}
}

func TestSerializeVerifiedDoctorClinicLink(t *testing.T) {
	f := NewFilterState()
	f.VerifiedOnly = true
	f.Categories = []string{"doctor", "clinic"}

	params := Serialize(f)

	if got := params.Get("verifiedOnly"); got != "true" {
		t.Errorf("verifiedOnly = %q, want \"true\"", got)
	}
	if got := params.Get("categories"); got != "doctor,clinic" {
		t.Errorf("categories = %q, want \"doctor,clinic\"", got)
	}
	if params.Has("radius") {
		t.Errorf("radius emitted at its default %d", DefaultRadius)
	}
}

func TestSerializeDropsBadListTokens(t *testing.T) {
	f := NewFilterState()
	f.Categories = []string{"doctor", "", "with,comma", "clinic"}

	if got := Serialize(f).Get("categories"); got != "doctor,clinic" {
		t.Errorf("categories = %q, want \"doctor,clinic\"", got)
	}
}

func TestRoundTrip(t *testing.T) {
	states := []FilterState{
		NewFilterState(),
		func() FilterState {
			f := NewFilterState()
			f.Query = "cardiologue oran"
			f.Categories = []string{"doctor", "clinic"}
			f.Location = "Oran"
			f.Radius = 10
			f.Availability = AvailabilityToday
			f.MinRating = 4.5
			f.VerifiedOnly = true
			f.EmergencyServices = true
			f.WheelchairAccessible = true
			f.InsuranceAccepted = true
			f.HomeVisitAvailable = true
			f.PriceRange = PriceRange{Min: 500, Max: 3000}
			f.AccessibilityFeatures = []string{"wheelchair_access", "elevator"}
			return f
		}(),
		func() FilterState {
			f := NewFilterState()
			f.MinRating = 3
			f.PriceRange = PriceRange{Min: 0, Max: 2000}
			return f
		}(),
	}

	for i, f := range states {
		got := Deserialize(Serialize(f))
		if !reflect.DeepEqual(got, f) {
			t.Errorf("state %d: round trip changed the state\n got: %+v\nwant: %+v", i, got, f)
		}
	}
}

func TestDeserializeDefaults(t *testing.T) {
	f := Deserialize(url.Values{})
	want := NewFilterState()
	if !reflect.DeepEqual(f, want) {
		t.Errorf("empty params deserialized to %+v, want %+v", f, want)
	}
}

func TestDeserializeMalformedNumbersFallBackToZero(t *testing.T) {
	params := url.Values{}
	params.Set("radius", "abc")
	params.Set("minRating", "not-a-number")
	params.Set("priceRange", "x-y")

	f := Deserialize(params)
	if f.Radius != 0 {
		t.Errorf("malformed radius = %d, want 0", f.Radius)
	}
	if f.MinRating != 0 {
		t.Errorf("malformed minRating = %v, want 0", f.MinRating)
	}
	if f.PriceRange.Min != 0 || f.PriceRange.Max != 0 {
		t.Errorf("malformed priceRange = %+v, want zeroes", f.PriceRange)
	}
}

func TestDeserializeBooleans(t *testing.T) {
	params := url.Values{}
	params.Set("verifiedOnly", "true")
	params.Set("emergencyServices", "yes") // anything but "true" is false

	f := Deserialize(params)
	if !f.VerifiedOnly {
		t.Error("verifiedOnly=true not parsed")
	}
	if f.EmergencyServices {
		t.Error("emergencyServices=yes parsed as true")
	}
}
