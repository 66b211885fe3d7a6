package lookupfakes

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/jrsteele09/go-onboarding-server/lookup"
)

var _ lookup.LogoProvider = (*FakeLogoProvider)(nil)

// FakeLogoProvider resolves logos for a canned set of domains. Unknown
// domains produce a Found=false result, which is a success, not a failure.
type FakeLogoProvider struct {
	flaky
	logos map[string]lookup.LogoSearchResult
}

func NewFakeLogoProvider(options ...Option) *FakeLogoProvider {
	return &FakeLogoProvider{
		flaky: newFlaky(options...),
		logos: map[string]lookup.LogoSearchResult{
			"www.saint-gobain.com":         {Found: true, URL: "https://logos.example/saint-gobain.png", Format: "png"},
			"www.atelier-lumiere.example":  {Found: true, URL: "https://logos.example/atelier-lumiere.svg", Format: "svg"},
		},
	}
}

func (p *FakeLogoProvider) Discover(ctx context.Context, websiteURL string) (*lookup.LogoSearchResult, error) {
	if err := p.simulate(ctx, "discover"); err != nil {
		return nil, err
	}

	host := websiteURL
	if parsed, err := url.Parse(websiteURL); err == nil && parsed.Host != "" {
		host = parsed.Host
	}
	host = strings.ToLower(host)

	if result, ok := p.logos[host]; ok {
		found := result
		return &found, nil
	}
	return &lookup.LogoSearchResult{Found: false}, nil
}

func (p *FakeLogoProvider) Upload(ctx context.Context, file lookup.LogoFile) (*lookup.LogoUploadResult, error) {
	if err := p.ValidateFile(file); err != nil {
		return nil, err
	}
	if err := p.simulate(ctx, "upload"); err != nil {
		return nil, err
	}

	return &lookup.LogoUploadResult{
		URL: fmt.Sprintf("https://uploads.example/logos/%s-%s", uuid.New().String(), file.Name),
	}, nil
}

func (p *FakeLogoProvider) ValidateFile(file lookup.LogoFile) error {
	return lookup.ValidateLogoFile(file)
}
