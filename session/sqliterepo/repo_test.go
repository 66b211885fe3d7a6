package sqliterepo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-onboarding-server/session"
	"github.com/jrsteele09/go-onboarding-server/session/sqliterepo"
)

func newRepo(t *testing.T) *sqliterepo.Repo {
	t.Helper()

	repo, err := sqliterepo.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleSession() *session.OnboardingSession {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return &session.OnboardingSession{
		ID:          "11111111-2222-3333-4444-555555555555",
		CurrentStep: session.StepCompany,
		FormData: session.FormData{
			PersonalInfo: &session.PersonalInfo{
				FirstName: "Marie",
				LastName:  "Durand",
				Email:     "marie@example.com",
				Password:  "Str0ngPass",
			},
			Country: &session.Country{Code: "FR", Name: "France"},
		},
		StartedAt:     now,
		LastUpdatedAt: now,
	}
}

func TestRepo_LoadAbsent(t *testing.T) {
	repo := newRepo(t)

	sess, err := repo.Load()
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestRepo_SaveAndLoad(t *testing.T) {
	repo := newRepo(t)

	require.NoError(t, repo.Save(sampleSession()))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, sampleSession(), loaded)
}

func TestRepo_SaveOverwrites(t *testing.T) {
	repo := newRepo(t)

	require.NoError(t, repo.Save(sampleSession()))

	updated := sampleSession()
	updated.CurrentStep = session.StepBranding
	updated.FormData.Company = &session.Company{Skipped: true}
	require.NoError(t, repo.Save(updated))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, session.StepBranding, loaded.CurrentStep)
	require.NotNil(t, loaded.FormData.Company)
	require.True(t, loaded.FormData.Company.Skipped)
}

func TestRepo_Delete(t *testing.T) {
	repo := newRepo(t)

	// Deleting an absent record is not an error
	require.NoError(t, repo.Delete())

	require.NoError(t, repo.Save(sampleSession()))
	require.NoError(t, repo.Delete())

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}
