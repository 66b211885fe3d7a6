// Package export projects a completed onboarding session into the minimal
// payload account creation needs. Export is a query: it never mutates the
// session and an incomplete session simply yields nothing.
package export

import (
	"github.com/pkg/errors"

	"github.com/jrsteele09/go-onboarding-server/session"
)

// UserData is the identity slice of the final payload.
type UserData struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"` // Plaintext; hashed at account creation
}

// CompanyData is the company slice, present only when the user attached a
// company. Registry/provider fields come from the collected summary.
type CompanyData struct {
	SIREN          string  `json:"siren"`
	Name           string  `json:"name,omitempty"`
	LegalForm      string  `json:"legal_form,omitempty"`
	NAFCode        string  `json:"naf_code,omitempty"`
	Address        string  `json:"address,omitempty"`
	PostalCode     string  `json:"postal_code,omitempty"`
	City           string  `json:"city,omitempty"`
	Capital        float64 `json:"capital,omitempty"`
	CreationDate   string  `json:"creation_date,omitempty"`
	WebsiteURL     string  `json:"website_url,omitempty"`
	Greffe         string  `json:"greffe,omitempty"`
	RCSNumber      string  `json:"rcs_number,omitempty"`
	VATNumber      string  `json:"vat_number,omitempty"`
	TotalDocuments int     `json:"total_documents,omitempty"`
}

// BrandingData is the optional visual-identity slice.
type BrandingData struct {
	LogoURL      string `json:"logo_url,omitempty"`
	LogoSource   string `json:"logo_source,omitempty"`
	PrimaryColor string `json:"primary_color,omitempty"`
}

// FinalPayload is the exportable projection of a completed session. Skipped
// optional steps are omitted entirely, never emitted as empty objects.
type FinalPayload struct {
	UserData     UserData      `json:"user_data"`
	CompanyData  *CompanyData  `json:"company_data,omitempty"`
	BrandingData *BrandingData `json:"branding_data,omitempty"`
}

// Exporter reads completed sessions out of the Store.
type Exporter struct {
	store *session.Store
}

// NewExporter initializes an Exporter over the session Store.
func NewExporter(store *session.Store) (*Exporter, error) {
	if store == nil {
		return nil, errors.New("[NewExporter] session store is required")
	}
	return &Exporter{store: store}, nil
}

// Export returns the final payload for a completed session, or (nil, nil)
// when the session is absent or not yet completed. Repeated calls on the
// same completed session yield deep-equal payloads.
func (e *Exporter) Export() (*FinalPayload, error) {
	sess, err := e.store.Get()
	if err != nil {
		return nil, err
	}
	if sess == nil || !sess.Completed {
		return nil, nil
	}

	info := sess.FormData.PersonalInfo
	payload := &FinalPayload{
		UserData: UserData{
			FirstName: info.FirstName,
			LastName:  info.LastName,
			Email:     info.Email,
			Password:  info.Password,
		},
		CompanyData:  companyData(&sess.FormData),
		BrandingData: brandingData(sess.FormData.Branding),
	}
	return payload, nil
}

func companyData(fd *session.FormData) *CompanyData {
	company := fd.Company
	if company == nil || company.Skipped {
		return nil
	}

	data := &CompanyData{
		SIREN:      company.SIREN,
		Name:       company.Name,
		LegalForm:  company.LegalForm,
		WebsiteURL: company.WebsiteURL,
	}

	if collected := fd.CollectedData; collected != nil {
		if collected.CompanyName != "" {
			data.Name = collected.CompanyName
		}
		if collected.LegalForm != "" {
			data.LegalForm = collected.LegalForm
		}
		if collected.WebsiteURL != "" {
			data.WebsiteURL = collected.WebsiteURL
		}
		data.NAFCode = collected.NAFCode
		data.Address = collected.Address
		data.PostalCode = collected.PostalCode
		data.City = collected.City
		data.Capital = collected.Capital
		data.CreationDate = collected.CreationDate
		data.Greffe = collected.Greffe
		data.RCSNumber = collected.RCSNumber
		data.VATNumber = collected.VATNumber
		data.TotalDocuments = collected.TotalDocuments
	}

	return data
}

func brandingData(branding *session.Branding) *BrandingData {
	if branding == nil {
		return nil
	}
	if branding.LogoURL == "" && branding.LogoSource == "" && branding.PrimaryColor == "" {
		return nil
	}
	return &BrandingData{
		LogoURL:      branding.LogoURL,
		LogoSource:   branding.LogoSource,
		PrimaryColor: branding.PrimaryColor,
	}
}
