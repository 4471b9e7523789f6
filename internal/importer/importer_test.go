package importer

import (
	"strings"
	"testing"

	"github.com/dalilcare/provider-directory/internal/models"
)

const sampleCSV = `business_name,provider_type,phone,address,email,city,specialty,description,website,accessibility_features,home_visit_available
Cabinet X,doctor,+213555000001,12 Rue Larbi Ben M'hidi,contact@cabinetx.dz,Oran,Cardiologie,,,"wheelchair_access, elevator",oui
Clinique El Amel,clinic,+213555000002,Boulevard Zirout Youcef,,Alger,,,,,"false"
Pharmacie Centrale,pharmacy,+213555000003,3 Rue Didouche Mourad,,,,,,,1
`

func TestParseCSVValidBatch(t *testing.T) {
	rows, rowErrs, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("got %d row errors: %v", len(rowErrs), rowErrs)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	first := rows[0]
	if first.BusinessName != "Cabinet X" || first.ProviderType != "doctor" {
		t.Errorf("first row = %+v", first)
	}
	if !first.HomeVisitAvailable {
		t.Error(`home_visit_available="oui" should be truthy`)
	}
	if !rows[2].HomeVisitAvailable {
		t.Error(`home_visit_available="1" should be truthy`)
	}
	if rows[1].HomeVisitAvailable {
		t.Error(`home_visit_available="false" should be falsy`)
	}

	p := first.Provider()
	if !p.IsPreloaded || p.IsClaimed {
		t.Error("imported provider must be preloaded and unclaimed")
	}
	if p.VerificationStatus != models.VerificationVerified {
		t.Errorf("imported provider status = %q, want verified", p.VerificationStatus)
	}
	if !p.IsClaimable() {
		t.Error("imported provider must be claimable")
	}
}

func TestParseCSVInvalidRowDoesNotBlockBatch(t *testing.T) {
	input := `business_name,provider_type,phone,address
Cabinet X,doctor,+213555000001,12 Rue A
Tour de Magie,wizard,+213555000002,1 Rue B
,doctor,+213555000003,2 Rue C
Pharmacie Centrale,pharmacy,+213555000004,3 Rue D
`
	rows, rowErrs, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d valid rows, want 2", len(rows))
	}
	if len(rowErrs) != 2 {
		t.Fatalf("got %d row errors, want 2: %v", len(rowErrs), rowErrs)
	}

	if rowErrs[0].Line != 3 || rowErrs[0].Field != "provider_type" {
		t.Errorf("first error = %+v, want provider_type failure on line 3", rowErrs[0])
	}
	if !strings.Contains(rowErrs[0].Message, "wizard") {
		t.Errorf("error message %q should name the bad type", rowErrs[0].Message)
	}
	if rowErrs[1].Field != "business_name" {
		t.Errorf("second error = %+v, want business_name failure", rowErrs[1])
	}
}

func TestParseCSVMissingRequiredColumn(t *testing.T) {
	input := "business_name,phone,address\nCabinet X,+213555000001,12 Rue A\n"
	if _, _, err := ParseCSV(strings.NewReader(input)); err == nil {
		t.Fatal("header without provider_type should fail")
	}
}

func TestParseJSONBatch(t *testing.T) {
	input := `[
		{"business_name": "Cabinet X", "provider_type": "Doctor", "phone": "+213555000001",
		 "address": "12 Rue A", "accessibility_features": ["Wheelchair_Access", "elevator"],
		 "home_visit_available": true},
		{"business_name": "Labo Pasteur", "provider_type": "laboratory", "phone": "+213555000002",
		 "address": "5 Rue B", "accessibility_features": "elevator",
		 "home_visit_available": "oui"},
		{"business_name": "Tour de Magie", "provider_type": "wizard", "phone": "+213555000003",
		 "address": "1 Rue C"}
	]`

	rows, rowErrs, err := ParseJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if len(rows) != 2 || len(rowErrs) != 1 {
		t.Fatalf("got %d rows and %d errors, want 2 and 1", len(rows), len(rowErrs))
	}

	if rows[0].ProviderType != "doctor" {
		t.Errorf("provider type not lowercased: %q", rows[0].ProviderType)
	}
	if len(rows[0].AccessibilityFeatures) != 2 || rows[0].AccessibilityFeatures[0] != "wheelchair_access" {
		t.Errorf("array features = %v", rows[0].AccessibilityFeatures)
	}
	if len(rows[1].AccessibilityFeatures) != 1 || rows[1].AccessibilityFeatures[0] != "elevator" {
		t.Errorf("string features = %v", rows[1].AccessibilityFeatures)
	}
	if !rows[1].HomeVisitAvailable {
		t.Error(`"oui" in JSON should be truthy`)
	}
	if rowErrs[0].Line != 3 {
		t.Errorf("error line = %d, want 3", rowErrs[0].Line)
	}
}

func TestParseJSONTruncated(t *testing.T) {
	if _, _, err := ParseJSON(strings.NewReader(`[{"business_name": "Cab`)); err == nil {
		t.Fatal("truncated JSON should fail the whole batch")
	}
}

func TestParseUnsupportedFormat(t *testing.T) {
	if _, _, err := Parse(Format("xml"), strings.NewReader("")); err == nil {
		t.Fatal("unsupported format should fail")
	}
}

func TestTruthy(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "oui", "Oui", "1", " 1 "} {
		if !Truthy(s) {
			t.Errorf("Truthy(%q) = false", s)
		}
	}
	for _, s := range []string{"", "false", "non", "0", "yes"} {
		if Truthy(s) {
			t.Errorf("Truthy(%q) = true", s)
		}
	}
}
