// Package importer parses and validates admin bulk-import batches of
// directory providers, in CSV or JSON form. Rows are validated
// independently so one bad row never blocks the rest of the batch.
package importer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dalilcare/provider-directory/internal/models"
)

// Format names a supported batch file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Row is one provider entry from an import file, already normalized
type Row struct {
	Line                  int
	BusinessName          string
	ProviderType          string
	Phone                 string
	Address               string
	Email                 string
	City                  string
	Specialty             string
	Description           string
	Website               string
	AccessibilityFeatures []string
	HomeVisitAvailable    bool
}

// RowError reports a validation failure for a single row
type RowError struct {
	Line    int    `json:"line"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("row %d: %s: %s", e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Line, e.Message)
}

// expected CSV header, required columns first
var csvColumns = []string{
	"business_name", "provider_type", "phone", "address",
	"email", "city", "specialty", "description", "website",
	"accessibility_features", "home_visit_available",
}

// Parse reads an import file and returns the valid rows plus one error per
// invalid row. The returned error is non-nil only when the file itself is
// unreadable (bad header, truncated JSON), never for row-level problems.
func Parse(format Format, r io.Reader) ([]Row, []RowError, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(r)
	case FormatJSON:
		return ParseJSON(r)
	default:
		return nil, nil, fmt.Errorf("unsupported import format: %s", format)
	}
}

// ParseCSV reads a batch in CSV form. The first record must be the header;
// column order follows the header, unknown columns are ignored.
func ParseCSV(r io.Reader) ([]Row, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range csvColumns[:4] {
		if _, ok := index[required]; !ok {
			return nil, nil, fmt.Errorf("CSV header is missing required column %q", required)
		}
	}

	var rows []Row
	var rowErrs []RowError
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Message: fmt.Sprintf("malformed CSV record: %v", err)})
			continue
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		row := Row{
			Line:                  line,
			BusinessName:          field("business_name"),
			ProviderType:          strings.ToLower(field("provider_type")),
			Phone:                 field("phone"),
			Address:               field("address"),
			Email:                 field("email"),
			City:                  field("city"),
			Specialty:             field("specialty"),
			Description:           field("description"),
			Website:               field("website"),
			AccessibilityFeatures: splitTags(field("accessibility_features")),
			HomeVisitAvailable:    Truthy(field("home_visit_available")),
		}

		if err := row.Validate(); err != nil {
			rowErrs = append(rowErrs, err.(RowError))
			continue
		}
		rows = append(rows, row)
	}

	return rows, rowErrs, nil
}

// jsonRow mirrors the CSV column shape. accessibility_features accepts a
// comma-separated string or a JSON array; home_visit_available accepts a
// bool or a truthy string.
type jsonRow struct {
	BusinessName          string      `json:"business_name"`
	ProviderType          string      `json:"provider_type"`
	Phone                 string      `json:"phone"`
	Address               string      `json:"address"`
	Email                 string      `json:"email"`
	City                  string      `json:"city"`
	Specialty             string      `json:"specialty"`
	Description           string      `json:"description"`
	Website               string      `json:"website"`
	AccessibilityFeatures tagList     `json:"accessibility_features"`
	HomeVisitAvailable    truthyValue `json:"home_visit_available"`
}

type tagList []string

func (t *tagList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = splitTags(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = splitTags(strings.Join(list, ","))
	return nil
}

type truthyValue bool

func (v *truthyValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = truthyValue(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = truthyValue(Truthy(s))
	return nil
}

// ParseJSON reads a batch as a JSON array of objects with the CSV column names
func ParseJSON(r io.Reader) ([]Row, []RowError, error) {
	var raw []jsonRow
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("failed to decode JSON batch: %w", err)
	}

	var rows []Row
	var rowErrs []RowError
	for i, jr := range raw {
		row := Row{
			Line:                  i + 1,
			BusinessName:          strings.TrimSpace(jr.BusinessName),
			ProviderType:          strings.ToLower(strings.TrimSpace(jr.ProviderType)),
			Phone:                 strings.TrimSpace(jr.Phone),
			Address:               strings.TrimSpace(jr.Address),
			Email:                 strings.TrimSpace(jr.Email),
			City:                  strings.TrimSpace(jr.City),
			Specialty:             strings.TrimSpace(jr.Specialty),
			Description:           strings.TrimSpace(jr.Description),
			Website:               strings.TrimSpace(jr.Website),
			AccessibilityFeatures: jr.AccessibilityFeatures,
			HomeVisitAvailable:    bool(jr.HomeVisitAvailable),
		}

		if err := row.Validate(); err != nil {
			rowErrs = append(rowErrs, err.(RowError))
			continue
		}
		rows = append(rows, row)
	}

	return rows, rowErrs, nil
}

// Validate checks required fields and the provider-type enumeration
func (r Row) Validate() error {
	if r.BusinessName == "" {
		return RowError{Line: r.Line, Field: "business_name", Message: "business name is required"}
	}
	if r.ProviderType == "" {
		return RowError{Line: r.Line, Field: "provider_type", Message: "provider type is required"}
	}
	if !models.ProviderType(r.ProviderType).IsValid() {
		return RowError{Line: r.Line, Field: "provider_type",
			Message: fmt.Sprintf("unknown provider type %q", r.ProviderType)}
	}
	if r.Phone == "" {
		return RowError{Line: r.Line, Field: "phone", Message: "phone is required"}
	}
	if r.Address == "" {
		return RowError{Line: r.Line, Field: "address", Message: "address is required"}
	}
	return nil
}

// Provider builds the preloaded directory entry for a validated row.
// Imported entries are admin-seeded: verified, preloaded and unclaimed.
func (r Row) Provider() models.Provider {
	return models.Provider{
		Name:                  r.BusinessName,
		Type:                  models.ProviderType(r.ProviderType),
		Phone:                 r.Phone,
		Address:               r.Address,
		Email:                 r.Email,
		City:                  r.City,
		Specialty:             r.Specialty,
		Description:           r.Description,
		Website:               r.Website,
		AccessibilityFeatures: r.AccessibilityFeatures,
		HomeVisitAvailable:    r.HomeVisitAvailable,
		VerificationStatus:    models.VerificationVerified,
		IsPreloaded:           true,
		IsClaimed:             false,
	}
}

// Truthy reports whether the import value means true ("true", "oui" or "1")
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "oui", "1":
		return true
	default:
		return false
	}
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
