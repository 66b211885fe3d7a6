// Package lookup defines the external-data capability interfaces the
// collection pipeline depends on: the national company registry, the
// commercial-registry document provider, and logo discovery. Each interface
// has a production implementation and a substitutable stand-in for tests;
// the pipeline only requires that every operation resolves with a
// well-typed result or fails with a catchable error within bounded time.
package lookup

import "context"

// Filters narrows a registry search.
type Filters struct {
	PostalCode string
	NAFCode    string
	LegalForm  string
}

// CompanySummary is a single registry search hit.
type CompanySummary struct {
	SIREN     string `json:"siren"`
	Name      string `json:"name"`
	LegalForm string `json:"legal_form,omitempty"`
	City      string `json:"city,omitempty"`
}

// CompanyDetail is the registry's full record for one company.
type CompanyDetail struct {
	SIREN        string  `json:"siren"`
	Name         string  `json:"name"`
	LegalForm    string  `json:"legal_form,omitempty"`
	NAFCode      string  `json:"naf_code,omitempty"`
	Address      string  `json:"address,omitempty"`
	PostalCode   string  `json:"postal_code,omitempty"`
	City         string  `json:"city,omitempty"`
	Capital      float64 `json:"capital,omitempty"`
	CreationDate string  `json:"creation_date,omitempty"`
	WebsiteURL   string  `json:"website_url,omitempty"`
}

// Registry is the national company registry capability.
type Registry interface {
	// Search returns companies matching the query and filters.
	Search(ctx context.Context, query string, filters Filters) ([]CompanySummary, error)

	// Detail returns the full registry record for a company identifier.
	Detail(ctx context.Context, id string) (*CompanyDetail, error)

	// ValidateID reports whether the identifier passes checksum validation.
	ValidateID(id string) bool
}
