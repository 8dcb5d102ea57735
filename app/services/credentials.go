package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Token decode failures, ordered from least to most specific.
var (
	ErrInvalidCredentials = errors.New("invalid token signature or format")
	ErrExpiredToken       = errors.New("token has expired")
	ErrMalformedClaims    = errors.New("token is missing the subject claim")
)

const DefaultAccessTokenTTL = 30 * time.Minute

// CredentialService hashes passwords and signs short-lived HS256 tokens whose
// subject is the account email. The signing key and TTL are injected at
// construction; nothing here reads process-wide state.
type CredentialService struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewCredentialService(secret string, tokenTTL time.Duration) *CredentialService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultAccessTokenTTL
	}
	return &CredentialService{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// HashPassword returns a salted one-way bcrypt digest.
func (s *CredentialService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches the stored digest. bcrypt's own
// comparison is used, so timing does not leak the position of a mismatch.
func (s *CredentialService) VerifyPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// IssueToken signs a token for subject using the service TTL.
func (s *CredentialService) IssueToken(subject string) (string, error) {
	return s.IssueTokenWithTTL(subject, s.tokenTTL)
}

// IssueTokenWithTTL signs a token that expires after ttl. Used directly for
// email verification tokens, which live longer than session tokens.
func (s *CredentialService) IssueTokenWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// DecodeToken verifies signature and expiry and returns the subject claim.
func (s *CredentialService) DecodeToken(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCredentials
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidCredentials
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidCredentials
	}
	if claims.Subject == "" {
		return "", ErrMalformedClaims
	}
	return claims.Subject, nil
}
