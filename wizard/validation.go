package wizard

import (
	onberrors "github.com/jrsteele09/go-onboarding-server/internal/errors"
	"github.com/jrsteele09/go-onboarding-server/lookup"
	"github.com/jrsteele09/go-onboarding-server/session"
)

// Validator holds the per-step gating rules in one place so transitions are
// checked through a single controller rather than scattered ad hoc checks.
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateStep returns nil when the step's required fields are present,
// otherwise a ValidationError naming exactly the missing fields.
func (v *Validator) ValidateStep(step session.Step, fd *session.FormData) error {
	switch step {
	case session.StepPersonalInfo:
		return v.validatePersonalInfo(fd.PersonalInfo)
	case session.StepCountry:
		return v.validateCountry(fd.Country)
	case session.StepCompany:
		return v.validateCompany(fd.Company)
	case session.StepCollectedData:
		return v.validateCollectedData(fd.CollectedData)
	case session.StepBranding:
		// Branding is optional: a logo is never required.
		return nil
	default:
		return onberrors.ErrStepOutOfRange
	}
}

func (v *Validator) validatePersonalInfo(info *session.PersonalInfo) error {
	var missing []string
	if info == nil {
		info = &session.PersonalInfo{}
	}
	if info.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if info.LastName == "" {
		missing = append(missing, "last_name")
	}
	if info.Email == "" {
		missing = append(missing, "email")
	}
	if info.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return onberrors.NewValidationError(session.StepPersonalInfo.Key(), missing...)
	}
	return nil
}

func (v *Validator) validateCountry(country *session.Country) error {
	if country == nil || country.Code == "" {
		return onberrors.NewValidationError(session.StepCountry.Key(), "code")
	}
	return nil
}

// validateCompany accepts either an explicit "no company" acknowledgment or
// a selected company whose SIREN passes checksum validation.
func (v *Validator) validateCompany(company *session.Company) error {
	if company == nil {
		return onberrors.NewValidationError(session.StepCompany.Key(), "siren")
	}
	if company.Skipped {
		return nil
	}
	if company.SIREN == "" || !lookup.ValidSIREN(company.SIREN) {
		return onberrors.NewValidationError(session.StepCompany.Key(), "siren")
	}
	return nil
}

// validateCollectedData passes only once a pipeline run has reported
// completion and its summary has been persisted.
func (v *Validator) validateCollectedData(data *session.CollectedData) error {
	if data == nil || !data.Completed {
		return onberrors.NewValidationError(session.StepCollectedData.Key(), "collected_data")
	}
	return nil
}
