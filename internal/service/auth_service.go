// Package service contains the application's business logic.
package service

import (
	"crypto/subtle"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Token parameters for admin sessions. Sessions are stateless: the signed
// token is the only credential, and expiry is the only revocation mechanism.
const (
	TokenIssuer   = "inkwell-api"
	TokenAudience = "inkwell-admin"
	TokenTTL      = time.Hour
)

// AdminClaims is the token payload: the registered claim set with the admin
// email as subject. No mutable state rides in the token.
type AdminClaims struct {
	jwt.RegisteredClaims
}

// AuthService verifies the configured admin identity and issues session tokens.
type AuthService struct {
	cfg *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// Login checks the supplied credentials against the single configured admin
// identity and returns a signed session token. The failure message does not
// reveal which part of the pair was wrong.
func (s *AuthService) Login(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", models.NewMissingFieldsError("email", "password")
	}
	if s.cfg.JWTSecret == "" {
		// Config validation should have caught this at startup; treat a hit
		// here as a server fault, never as a client one.
		return "", models.NewMisconfiguredError("Server configuration error")
	}

	if !s.credentialsMatch(email, password) {
		return "", models.NewUnauthorizedError("Invalid admin credentials")
	}

	return s.generateToken(email)
}

// credentialsMatch compares in constant time. When a bcrypt hash is
// configured it takes precedence over the plain password.
func (s *AuthService) credentialsMatch(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.cfg.AdminEmail)) == 1

	var passwordOK bool
	if s.cfg.AdminPasswordHash != "" {
		passwordOK = bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)) == nil
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	}

	return emailOK && passwordOK
}

func (s *AuthService) generateToken(email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    TokenIssuer,
			Audience:  jwt.ClaimStrings{TokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	})

	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return signed, nil
}
