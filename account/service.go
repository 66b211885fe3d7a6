package account

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-onboarding-server/export"
)

// Service turns a finalization payload into a stored account plus a signup
// token.
type Service struct {
	repo   UserRepo
	tokens *TokenCreator
}

// NewService initializes the account Service.
func NewService(repo UserRepo, tokens *TokenCreator) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[account.NewService] user repo is required")
	}
	if tokens == nil {
		return nil, errors.New("[account.NewService] token creator is required")
	}
	return &Service{repo: repo, tokens: tokens}, nil
}

// Create builds the user from the exported payload, hashes the password,
// stores the account, and mints the signup token.
func (s *Service) Create(payload *export.FinalPayload) (*User, string, error) {
	if payload == nil {
		return nil, "", errors.New("[account.Create] payload is required")
	}

	if existing, _ := s.repo.GetByEmail(payload.UserData.Email); existing != nil {
		return nil, "", ErrEmailTaken
	}

	if err := ValidatePasswordStrength(payload.UserData.Password); err != nil {
		return nil, "", errors.Wrap(err, "[account.Create] weak password")
	}

	hash, err := HashPassword(payload.UserData.Password)
	if err != nil {
		return nil, "", errors.Wrap(err, "[account.Create] failed to hash password")
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        payload.UserData.Email,
		PasswordHash: hash,
		FirstName:    payload.UserData.FirstName,
		LastName:     payload.UserData.LastName,
		DateJoined:   NowTimeFunc(),
	}
	if payload.CompanyData != nil {
		user.CompanySIREN = payload.CompanyData.SIREN
	}
	if payload.BrandingData != nil {
		user.LogoURL = payload.BrandingData.LogoURL
	}

	if err := s.repo.Upsert(user); err != nil {
		return nil, "", errors.Wrap(err, "[account.Create] failed to store user")
	}

	token, err := s.tokens.CreateSignupToken(user)
	if err != nil {
		return nil, "", err
	}

	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("account created from onboarding export")
	return user, token, nil
}
