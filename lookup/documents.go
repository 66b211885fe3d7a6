package lookup

import (
	"context"
	"io"
	"time"
)

// DocumentKind partitions the commercial-registry document inventory.
type DocumentKind string

const (
	DocumentKindActe         DocumentKind = "acte"          // Legal deeds and filings
	DocumentKindCompteAnnuel DocumentKind = "compte_annuel" // Annual accounts
)

// DocumentRef identifies one downloadable document.
type DocumentRef struct {
	ID       string       `json:"id"`
	Kind     DocumentKind `json:"kind"`
	Label    string       `json:"label,omitempty"`
	FiledAt  time.Time    `json:"filed_at,omitempty"`
	SizeKB   int          `json:"size_kb,omitempty"`
}

// CompanyProfile is the document provider's own view of a company,
// complementing the registry record.
type CompanyProfile struct {
	SIREN        string `json:"siren"`
	Name         string `json:"name"`
	Greffe       string `json:"greffe,omitempty"` // Commercial court of registration
	RCSNumber    string `json:"rcs_number,omitempty"`
	VATNumber    string `json:"vat_number,omitempty"`
	EmployeeBand string `json:"employee_band,omitempty"`
}

// DocumentProvider is the commercial-registry document capability.
type DocumentProvider interface {
	// Profile returns the provider's detailed record for a company.
	Profile(ctx context.Context, id string) (*CompanyProfile, error)

	// ListDocuments enumerates the provider's documents of one kind.
	ListDocuments(ctx context.Context, id string, kind DocumentKind) ([]DocumentRef, error)

	// Download opens a single document for reading. The caller closes it.
	Download(ctx context.Context, id, docID string) (io.ReadCloser, error)
}
