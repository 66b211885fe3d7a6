package account

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

const signupTokenExpiry = 1 * time.Hour

// TokenCreator mints the signup token returned right after account
// creation, so a freshly onboarded user is logged in without a second
// round trip.
type TokenCreator struct {
	issuer string
	secret []byte
}

// NewTokenCreator creates a TokenCreator signing with an HMAC secret.
func NewTokenCreator(issuer string, secret []byte) (*TokenCreator, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("[NewTokenCreator] signing secret is required")
	}
	return &TokenCreator{issuer: issuer, secret: secret}, nil
}

// CreateSignupToken creates a short-lived token identifying the new user.
func (c *TokenCreator) CreateSignupToken(user *User) (string, error) {
	claims := jwtlib.MapClaims{
		"iss":        c.issuer,
		"sub":        user.ID,
		"email":      user.Email,
		"name":       user.FirstName + " " + user.LastName,
		"token_type": "signup",
		"iat":        int64(NowTimeFunc().Unix()),
		"exp":        int64(NowTimeFunc().Add(signupTokenExpiry).Unix()),
		"jti":        uuid.New().String(),
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign signup token: %w", err)
	}
	return signed, nil
}

// ParseSignupToken verifies a signup token and returns the user id it
// identifies.
func (c *TokenCreator) ParseSignupToken(tokenString string) (string, error) {
	token, err := jwtlib.Parse(tokenString, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid signup token: %w", err)
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid signup token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("signup token missing subject")
	}
	return sub, nil
}
