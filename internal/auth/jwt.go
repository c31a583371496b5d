package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session tokens are short-lived HS256 JWTs carrying the admin's email.
// There is no refresh flow: when a token expires the admin signs in again.
// The email claim is re-checked against the allow-list on every request,
// so removing an address from the list locks the holder out immediately
// even while their token is still within its validity window.

// SessionTokenExpiry is how long admin session tokens are valid.
const SessionTokenExpiry = 12 * time.Hour

// Predefined JWT errors.
var (
	ErrInvalidSessionToken = errors.New("invalid session token")
	ErrSessionTokenExpired = errors.New("session token has expired")
)

// SessionClaims represents the claims in admin session tokens.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Email is the authenticated admin's email address.
	Email string `json:"email"`
}

// JWTService handles session token creation and validation.
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
}

// JWTConfig holds configuration for the JWT service.
type JWTConfig struct {
	// SigningKey is the secret key used to sign JWTs.
	SigningKey string

	// Issuer is the issuer claim for tokens (e.g., "https://api.wildpost.jp").
	Issuer string

	// Audience is the audience claim for tokens (e.g., "wildpost-admin").
	Audience string
}

// NewJWTService creates a new JWT service.
func NewJWTService(cfg JWTConfig) *JWTService {
	return &JWTService{
		signingKey: []byte(cfg.SigningKey),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
	}
}

// GenerateSessionToken creates a new session token for the given admin email.
func (s *JWTService) GenerateSessionToken(email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(SessionTokenExpiry)

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   email,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			ID:        generateTokenID(),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing session token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateSessionToken validates a session token and returns the claims.
func (s *JWTService) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionTokenExpired
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidSessionToken, err.Error())
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSessionToken
	}
	if claims.Email == "" {
		return nil, ErrInvalidSessionToken
	}

	return claims, nil
}

// generateTokenID generates a unique token ID.
func generateTokenID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(bytes)
}
