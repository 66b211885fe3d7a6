package export_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-onboarding-server/export"
	"github.com/jrsteele09/go-onboarding-server/session"
	"github.com/jrsteele09/go-onboarding-server/session/repofakes"
)

type exportFixture struct {
	store    *session.Store
	exporter *export.Exporter
}

func newExportFixture(t *testing.T) *exportFixture {
	t.Helper()

	store, err := session.NewStore(repofakes.NewFakeSessionRepo())
	require.NoError(t, err)

	exporter, err := export.NewExporter(store)
	require.NoError(t, err)
	return &exportFixture{store: store, exporter: exporter}
}

func (f *exportFixture) seedSession(t *testing.T, mutate func(*session.FormData)) {
	t.Helper()

	_, err := f.store.Create()
	require.NoError(t, err)

	sess, err := f.store.Get()
	require.NoError(t, err)
	sess.FormData.PersonalInfo = &session.PersonalInfo{
		FirstName: "Marie",
		LastName:  "Durand",
		Email:     "marie@example.com",
		Password:  "Str0ngPass",
	}
	if mutate != nil {
		mutate(&sess.FormData)
	}
	require.NoError(t, f.store.Save(sess))
}

func (f *exportFixture) complete(t *testing.T) {
	t.Helper()
	_, err := f.store.MarkCompleted()
	require.NoError(t, err)
}

func TestExport_AbsentOrIncompleteYieldsNothing(t *testing.T) {
	f := newExportFixture(t)

	t.Run("no session", func(t *testing.T) {
		payload, err := f.exporter.Export()
		require.NoError(t, err)
		require.Nil(t, payload)
	})

	t.Run("session not completed", func(t *testing.T) {
		f.seedSession(t, nil)

		payload, err := f.exporter.Export()
		require.NoError(t, err)
		require.Nil(t, payload)
	})
}

func TestExport_CompletedSession(t *testing.T) {
	f := newExportFixture(t)
	f.seedSession(t, func(fd *session.FormData) {
		fd.Company = &session.Company{SIREN: "552100554", Name: "Saint-Gobain"}
		fd.CollectedData = &session.CollectedData{
			CompanyName:    "Compagnie de Saint-Gobain",
			LegalForm:      "SA",
			SIREN:          "552100554",
			Greffe:         "Nanterre",
			City:           "Courbevoie",
			TotalDocuments: 5,
			Completed:      true,
		}
		fd.Branding = &session.Branding{LogoURL: "https://logos.example/sg.png", LogoSource: "discovered"}
	})
	f.complete(t)

	payload, err := f.exporter.Export()
	require.NoError(t, err)
	require.NotNil(t, payload)

	require.Equal(t, "Marie", payload.UserData.FirstName)
	require.Equal(t, "marie@example.com", payload.UserData.Email)
	require.Equal(t, "Str0ngPass", payload.UserData.Password)

	// Collected registry data wins over the user-entered company name
	require.NotNil(t, payload.CompanyData)
	require.Equal(t, "552100554", payload.CompanyData.SIREN)
	require.Equal(t, "Compagnie de Saint-Gobain", payload.CompanyData.Name)
	require.Equal(t, "SA", payload.CompanyData.LegalForm)
	require.Equal(t, "Nanterre", payload.CompanyData.Greffe)
	require.Equal(t, 5, payload.CompanyData.TotalDocuments)

	require.NotNil(t, payload.BrandingData)
	require.Equal(t, "discovered", payload.BrandingData.LogoSource)

	// Export is a pure query: repeated calls yield deep-equal payloads
	again, err := f.exporter.Export()
	require.NoError(t, err)
	require.Equal(t, payload, again)
}

func TestExport_SkippedCompanyOmitted(t *testing.T) {
	f := newExportFixture(t)
	f.seedSession(t, func(fd *session.FormData) {
		fd.Company = &session.Company{Skipped: true}
	})
	f.complete(t)

	payload, err := f.exporter.Export()
	require.NoError(t, err)
	require.NotNil(t, payload)
	require.Nil(t, payload.CompanyData)
	require.Nil(t, payload.BrandingData)
}

func TestExport_EmptyBrandingOmitted(t *testing.T) {
	f := newExportFixture(t)
	f.seedSession(t, func(fd *session.FormData) {
		fd.Branding = &session.Branding{}
	})
	f.complete(t)

	payload, err := f.exporter.Export()
	require.NoError(t, err)
	require.NotNil(t, payload)
	require.Nil(t, payload.BrandingData)
}
