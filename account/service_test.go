package account_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-onboarding-server/account"
	"github.com/jrsteele09/go-onboarding-server/export"
)

func newService(t *testing.T) (*account.Service, *account.TokenCreator, *account.InMemoryUserRepo) {
	t.Helper()

	tokens, err := account.NewTokenCreator("onboarding-test", []byte("test-signing-secret"))
	require.NoError(t, err)

	repo := account.NewInMemoryUserRepo()
	service, err := account.NewService(repo, tokens)
	require.NoError(t, err)
	return service, tokens, repo
}

func samplePayload() *export.FinalPayload {
	return &export.FinalPayload{
		UserData: export.UserData{
			FirstName: "Marie",
			LastName:  "Durand",
			Email:     "marie@example.com",
			Password:  "Str0ngPass1",
		},
		CompanyData: &export.CompanyData{
			SIREN: "552100554",
			Name:  "Compagnie de Saint-Gobain",
		},
		BrandingData: &export.BrandingData{
			LogoURL: "https://logos.example/sg.png",
		},
	}
}

func TestService_Create(t *testing.T) {
	service, tokens, repo := newService(t)

	user, token, err := service.Create(samplePayload())
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "marie@example.com", user.Email)
	require.Equal(t, "552100554", user.CompanySIREN)
	require.Equal(t, "https://logos.example/sg.png", user.LogoURL)

	// Password is stored hashed, never verbatim
	require.NotEqual(t, "Str0ngPass1", user.PasswordHash)
	require.True(t, account.CheckPasswordHash("Str0ngPass1", user.PasswordHash))

	// The signup token identifies the stored user
	subject, err := tokens.ParseSignupToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, subject)

	stored, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, stored.Email)
}

func TestService_CreateWithoutOptionalSlices(t *testing.T) {
	service, _, _ := newService(t)

	payload := samplePayload()
	payload.CompanyData = nil
	payload.BrandingData = nil

	user, _, err := service.Create(payload)
	require.NoError(t, err)
	require.Empty(t, user.CompanySIREN)
	require.Empty(t, user.LogoURL)
}

func TestService_CreateDuplicateEmail(t *testing.T) {
	service, _, _ := newService(t)

	_, _, err := service.Create(samplePayload())
	require.NoError(t, err)

	_, _, err = service.Create(samplePayload())
	require.ErrorIs(t, err, account.ErrEmailTaken)
}

func TestService_CreateWeakPassword(t *testing.T) {
	service, _, _ := newService(t)

	payload := samplePayload()
	payload.UserData.Password = "short"

	_, _, err := service.Create(payload)
	require.Error(t, err)
	require.Contains(t, err.Error(), "weak password")
}

func TestTokenCreator_RejectsTamperedToken(t *testing.T) {
	tokens, err := account.NewTokenCreator("onboarding-test", []byte("test-signing-secret"))
	require.NoError(t, err)

	otherTokens, err := account.NewTokenCreator("onboarding-test", []byte("a-different-secret"))
	require.NoError(t, err)

	token, err := tokens.CreateSignupToken(&account.User{ID: "user-1", Email: "a@b.com"})
	require.NoError(t, err)

	_, err = otherTokens.ParseSignupToken(token)
	require.Error(t, err)
}
