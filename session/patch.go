package session

// Patch is a shallow partial update to one step's form-data slot. Only
// non-nil fields are applied; the target slot is allocated on first use and
// sibling slots are never touched.
type Patch interface {
	Step() Step
	applyTo(*FormData)
}

// PersonalInfoPatch partially updates the personal_info slot.
type PersonalInfoPatch struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
}

func (PersonalInfoPatch) Step() Step { return StepPersonalInfo }

func (p PersonalInfoPatch) applyTo(fd *FormData) {
	if fd.PersonalInfo == nil {
		fd.PersonalInfo = &PersonalInfo{}
	}
	applyString(&fd.PersonalInfo.FirstName, p.FirstName)
	applyString(&fd.PersonalInfo.LastName, p.LastName)
	applyString(&fd.PersonalInfo.Email, p.Email)
	applyString(&fd.PersonalInfo.Password, p.Password)
}

// CountryPatch partially updates the country slot.
type CountryPatch struct {
	Code *string `json:"code,omitempty"`
	Name *string `json:"name,omitempty"`
}

func (CountryPatch) Step() Step { return StepCountry }

func (p CountryPatch) applyTo(fd *FormData) {
	if fd.Country == nil {
		fd.Country = &Country{}
	}
	applyString(&fd.Country.Code, p.Code)
	applyString(&fd.Country.Name, p.Name)
}

// CompanyPatch partially updates the company slot.
type CompanyPatch struct {
	Skipped    *bool   `json:"skipped,omitempty"`
	SIREN      *string `json:"siren,omitempty"`
	Name       *string `json:"name,omitempty"`
	LegalForm  *string `json:"legal_form,omitempty"`
	WebsiteURL *string `json:"website_url,omitempty"`
}

func (CompanyPatch) Step() Step { return StepCompany }

func (p CompanyPatch) applyTo(fd *FormData) {
	if fd.Company == nil {
		fd.Company = &Company{}
	}
	if p.Skipped != nil {
		fd.Company.Skipped = *p.Skipped
	}
	applyString(&fd.Company.SIREN, p.SIREN)
	applyString(&fd.Company.Name, p.Name)
	applyString(&fd.Company.LegalForm, p.LegalForm)
	applyString(&fd.Company.WebsiteURL, p.WebsiteURL)
}

// CollectedDataPatch replaces the collected_data slot wholesale. The
// pipeline writes a fully consolidated summary, never field-by-field.
type CollectedDataPatch struct {
	Data *CollectedData `json:"data,omitempty"`
}

func (CollectedDataPatch) Step() Step { return StepCollectedData }

func (p CollectedDataPatch) applyTo(fd *FormData) {
	if p.Data == nil {
		return
	}
	data := *p.Data
	fd.CollectedData = &data
}

// BrandingPatch partially updates the branding slot.
type BrandingPatch struct {
	LogoURL      *string `json:"logo_url,omitempty"`
	LogoSource   *string `json:"logo_source,omitempty"`
	PrimaryColor *string `json:"primary_color,omitempty"`
}

func (BrandingPatch) Step() Step { return StepBranding }

func (p BrandingPatch) applyTo(fd *FormData) {
	if fd.Branding == nil {
		fd.Branding = &Branding{}
	}
	applyString(&fd.Branding.LogoURL, p.LogoURL)
	applyString(&fd.Branding.LogoSource, p.LogoSource)
	applyString(&fd.Branding.PrimaryColor, p.PrimaryColor)
}

func applyString(target *string, value *string) {
	if value != nil {
		*target = *value
	}
}
