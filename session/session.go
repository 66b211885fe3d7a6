package session

import (
	"time"
)

// Step indexes the fixed wizard step sequence.
type Step int

const (
	StepPersonalInfo Step = iota
	StepCountry
	StepCompany
	StepCollectedData
	StepBranding
)

// TerminalStep is the last step of the wizard.
const TerminalStep = StepBranding

// StepCount is the number of steps in the wizard sequence.
const StepCount = int(TerminalStep) + 1

var stepKeys = [StepCount]string{
	"personal_info",
	"country",
	"company",
	"collected_data",
	"branding",
}

// Key returns the step's wire key (e.g. "personal_info").
func (s Step) Key() string {
	if !s.Valid() {
		return "unknown"
	}
	return stepKeys[s]
}

// Valid reports whether the step index is inside the wizard sequence.
func (s Step) Valid() bool {
	return s >= 0 && int(s) < StepCount
}

// StepFromKey resolves a wire key back to its step index.
func StepFromKey(key string) (Step, bool) {
	for i, k := range stepKeys {
		if k == key {
			return Step(i), true
		}
	}
	return 0, false
}

// OnboardingSession is the single durable onboarding record. It tracks
// wizard progress and everything the user has entered or the collection
// pipeline has gathered. One record exists per client; creating a new
// session discards any prior one.
type OnboardingSession struct {
	ID            string    `json:"id"`           // Unique session identifier (UUID), immutable
	CurrentStep   Step      `json:"current_step"` // Index into the fixed step sequence
	FormData      FormData  `json:"form_data"`
	StartedAt     time.Time `json:"started_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"` // Refreshed on every persisted mutation
	Completed     bool      `json:"completed"`       // One-way, set by the wizard's Complete
}

// FormData holds one optional slot per wizard step. Slots stay nil until
// their step is reached; a partial update to one slot never clears siblings.
type FormData struct {
	PersonalInfo  *PersonalInfo  `json:"personal_info,omitempty"`
	Country       *Country       `json:"country,omitempty"`
	Company       *Company       `json:"company,omitempty"`
	CollectedData *CollectedData `json:"collected_data,omitempty"`
	Branding      *Branding      `json:"branding,omitempty"`
}

// PersonalInfo is the account holder's identity, gathered at step 0.
type PersonalInfo struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"` // Plaintext until account creation hashes it
}

// Complete reports whether every required identity field is populated.
func (p *PersonalInfo) Complete() bool {
	return p != nil && p.FirstName != "" && p.LastName != "" && p.Email != "" && p.Password != ""
}

// Country is the business's country of registration.
type Country struct {
	Code string `json:"code,omitempty"` // ISO 3166-1 alpha-2
	Name string `json:"name,omitempty"`
}

// Company is the company attachment chosen at step 2. The user may skip the
// attachment entirely, in which case Skipped is acknowledged and the other
// fields stay empty.
type Company struct {
	Skipped    bool   `json:"skipped,omitempty"`
	SIREN      string `json:"siren,omitempty"`
	Name       string `json:"name,omitempty"`
	LegalForm  string `json:"legal_form,omitempty"`
	WebsiteURL string `json:"website_url,omitempty"`
}

// CollectedData is the consolidated summary the collection pipeline writes
// into the session: profile fields, document counts and availability flags,
// never raw documents.
type CollectedData struct {
	CompanyName  string  `json:"company_name,omitempty"`
	LegalForm    string  `json:"legal_form,omitempty"`
	SIREN        string  `json:"siren,omitempty"`
	NAFCode      string  `json:"naf_code,omitempty"`
	Address      string  `json:"address,omitempty"`
	PostalCode   string  `json:"postal_code,omitempty"`
	City         string  `json:"city,omitempty"`
	Capital      float64 `json:"capital,omitempty"`
	CreationDate string  `json:"creation_date,omitempty"`
	WebsiteURL   string  `json:"website_url,omitempty"`
	Greffe       string  `json:"greffe,omitempty"`
	RCSNumber    string  `json:"rcs_number,omitempty"`
	VATNumber    string  `json:"vat_number,omitempty"`
	EmployeeBand string  `json:"employee_band,omitempty"`

	Actes          int `json:"actes"`
	ComptesAnnuels int `json:"comptes_annuels"`
	TotalDocuments int `json:"total_documents"`

	RegistryAvailable  bool `json:"registry_available"`
	DocumentsAvailable bool `json:"documents_available"`

	CompletionRate int  `json:"completion_rate"` // Percent, rounded
	Completed      bool `json:"completed"`       // Set by the pipeline's consolidation stage
}

// Branding is the optional visual identity gathered at the final step.
type Branding struct {
	LogoURL      string `json:"logo_url,omitempty"`
	LogoSource   string `json:"logo_source,omitempty"` // "discovered" or "uploaded"
	PrimaryColor string `json:"primary_color,omitempty"`
}
