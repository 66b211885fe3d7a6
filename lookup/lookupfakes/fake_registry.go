package lookupfakes

import (
	"context"
	"strings"

	"github.com/jrsteele09/go-onboarding-server/internal/errors"
	"github.com/jrsteele09/go-onboarding-server/lookup"
)

var _ lookup.Registry = (*FakeRegistry)(nil)

// FakeRegistry serves a small canned slice of the national registry.
type FakeRegistry struct {
	flaky
	companies map[string]lookup.CompanyDetail
}

func NewFakeRegistry(options ...Option) *FakeRegistry {
	return &FakeRegistry{
		flaky:     newFlaky(options...),
		companies: cannedCompanies(),
	}
}

func (r *FakeRegistry) Search(ctx context.Context, query string, filters lookup.Filters) ([]lookup.CompanySummary, error) {
	if err := r.simulate(ctx, "search"); err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	var results []lookup.CompanySummary
	for _, c := range r.companies {
		if query != "" && !strings.Contains(strings.ToLower(c.Name), query) && c.SIREN != query {
			continue
		}
		if filters.PostalCode != "" && c.PostalCode != filters.PostalCode {
			continue
		}
		if filters.NAFCode != "" && c.NAFCode != filters.NAFCode {
			continue
		}
		if filters.LegalForm != "" && c.LegalForm != filters.LegalForm {
			continue
		}
		results = append(results, lookup.CompanySummary{
			SIREN:     c.SIREN,
			Name:      c.Name,
			LegalForm: c.LegalForm,
			City:      c.City,
		})
	}
	return results, nil
}

func (r *FakeRegistry) Detail(ctx context.Context, id string) (*lookup.CompanyDetail, error) {
	if err := r.simulate(ctx, "detail"); err != nil {
		return nil, err
	}

	c, ok := r.companies[id]
	if !ok {
		return nil, errors.ErrCompanyNotFound
	}
	detail := c
	return &detail, nil
}

func (r *FakeRegistry) ValidateID(id string) bool {
	return lookup.ValidSIREN(id)
}

func cannedCompanies() map[string]lookup.CompanyDetail {
	return map[string]lookup.CompanyDetail{
		"552100554": {
			SIREN:        "552100554",
			Name:         "Compagnie de Saint-Gobain",
			LegalForm:    "SA",
			NAFCode:      "70.10Z",
			Address:      "12 Place des Saisons",
			PostalCode:   "92400",
			City:         "Courbevoie",
			Capital:      2214228186,
			CreationDate: "1955-01-01",
			WebsiteURL:   "https://www.saint-gobain.com",
		},
		"443061841": {
			SIREN:        "443061841",
			Name:         "Atelier Lumière",
			LegalForm:    "SAS",
			NAFCode:      "62.01Z",
			Address:      "8 Rue de la République",
			PostalCode:   "69001",
			City:         "Lyon",
			Capital:      10000,
			CreationDate: "2002-06-17",
			WebsiteURL:   "https://www.atelier-lumiere.example",
		},
		"404833048": {
			SIREN:        "404833048",
			Name:         "Boulangerie Martin",
			LegalForm:    "SARL",
			NAFCode:      "10.71C",
			Address:      "3 Place du Marché",
			PostalCode:   "44000",
			City:         "Nantes",
			Capital:      7500,
			CreationDate: "1996-03-04",
			// No website on record, so logo discovery has nothing to go on
		},
	}
}
