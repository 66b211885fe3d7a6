package lookupfakes

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jrsteele09/go-onboarding-server/internal/errors"
	"github.com/jrsteele09/go-onboarding-server/lookup"
)

var _ lookup.DocumentProvider = (*FakeDocumentProvider)(nil)

// FakeDocumentProvider serves canned commercial-registry profiles and
// document inventories.
type FakeDocumentProvider struct {
	flaky
	profiles  map[string]lookup.CompanyProfile
	documents map[string][]lookup.DocumentRef
}

func NewFakeDocumentProvider(options ...Option) *FakeDocumentProvider {
	return &FakeDocumentProvider{
		flaky:     newFlaky(options...),
		profiles:  cannedProfiles(),
		documents: cannedDocuments(),
	}
}

func (p *FakeDocumentProvider) Profile(ctx context.Context, id string) (*lookup.CompanyProfile, error) {
	if err := p.simulate(ctx, "profile"); err != nil {
		return nil, err
	}

	profile, ok := p.profiles[id]
	if !ok {
		return nil, errors.ErrCompanyNotFound
	}
	result := profile
	return &result, nil
}

func (p *FakeDocumentProvider) ListDocuments(ctx context.Context, id string, kind lookup.DocumentKind) ([]lookup.DocumentRef, error) {
	if err := p.simulate(ctx, "list_"+string(kind)); err != nil {
		return nil, err
	}

	if _, ok := p.profiles[id]; !ok {
		return nil, errors.ErrCompanyNotFound
	}

	var refs []lookup.DocumentRef
	for _, ref := range p.documents[id] {
		if ref.Kind == kind {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

func (p *FakeDocumentProvider) Download(ctx context.Context, id, docID string) (io.ReadCloser, error) {
	if err := p.simulate(ctx, "download"); err != nil {
		return nil, err
	}

	for _, ref := range p.documents[id] {
		if ref.ID == docID {
			content := fmt.Sprintf("%%PDF-1.4 simulated document %s (%s)", ref.ID, ref.Label)
			return io.NopCloser(bytes.NewReader([]byte(content))), nil
		}
	}
	return nil, errors.ErrNotFound
}

func cannedProfiles() map[string]lookup.CompanyProfile {
	return map[string]lookup.CompanyProfile{
		"552100554": {
			SIREN:        "552100554",
			Name:         "Compagnie de Saint-Gobain",
			Greffe:       "Nanterre",
			RCSNumber:    "552 100 554 RCS Nanterre",
			VATNumber:    "FR70552100554",
			EmployeeBand: "10000+",
		},
		"443061841": {
			SIREN:        "443061841",
			Name:         "Atelier Lumière",
			Greffe:       "Lyon",
			RCSNumber:    "443 061 841 RCS Lyon",
			VATNumber:    "FR59443061841",
			EmployeeBand: "10-19",
		},
		"404833048": {
			SIREN:        "404833048",
			Name:         "Boulangerie Martin",
			Greffe:       "Nantes",
			RCSNumber:    "404 833 048 RCS Nantes",
			VATNumber:    "FR02404833048",
			EmployeeBand: "1-9",
		},
	}
}

func cannedDocuments() map[string][]lookup.DocumentRef {
	filed := func(y, m, d int) time.Time {
		return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	}
	return map[string][]lookup.DocumentRef{
		"552100554": {
			{ID: "A-2023-001", Kind: lookup.DocumentKindActe, Label: "Statuts mis à jour", FiledAt: filed(2023, 6, 12), SizeKB: 412},
			{ID: "A-2021-004", Kind: lookup.DocumentKindActe, Label: "Procès-verbal d'assemblée", FiledAt: filed(2021, 5, 3), SizeKB: 188},
			{ID: "C-2023-001", Kind: lookup.DocumentKindCompteAnnuel, Label: "Comptes annuels 2023", FiledAt: filed(2024, 4, 30), SizeKB: 1320},
			{ID: "C-2022-001", Kind: lookup.DocumentKindCompteAnnuel, Label: "Comptes annuels 2022", FiledAt: filed(2023, 4, 28), SizeKB: 1275},
			{ID: "C-2021-001", Kind: lookup.DocumentKindCompteAnnuel, Label: "Comptes annuels 2021", FiledAt: filed(2022, 4, 29), SizeKB: 1244},
		},
		"443061841": {
			{ID: "A-2019-001", Kind: lookup.DocumentKindActe, Label: "Statuts constitutifs", FiledAt: filed(2019, 2, 14), SizeKB: 96},
			{ID: "C-2023-001", Kind: lookup.DocumentKindCompteAnnuel, Label: "Comptes annuels 2023", FiledAt: filed(2024, 5, 15), SizeKB: 342},
		},
		"404833048": {
			{ID: "A-1996-001", Kind: lookup.DocumentKindActe, Label: "Statuts constitutifs", FiledAt: filed(1996, 3, 4), SizeKB: 74},
		},
	}
}
