package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cat-registry/internal/ports/auth"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrShortSecret  = errors.New("jwt secret must be at least 16 bytes")
)

const minSecretLen = 16

type tokenClaims struct {
	UserName string `json:"user_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	gojwt.RegisteredClaims
}

// Signer emite y verifica tokens HS256. Implementa auth.TokenIssuer y auth.AuthVerifier.
type Signer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration, issuer string) (*Signer, error) {
	if len(secret) < minSecretLen {
		return nil, ErrShortSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Signer{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: strings.TrimSpace(issuer),
		now:    time.Now,
	}, nil
}

func (s *Signer) Issue(ctx context.Context, c auth.Claims) (string, error) {
	if !c.Authenticated() {
		return "", errors.New("jwt: claims without user id")
	}
	now := s.now()
	claims := tokenClaims{
		UserName: c.UserName,
		Email:    c.Email,
		Role:     string(c.Role),
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    s.issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, nil
}

func (s *Signer) Verify(ctx context.Context, token string) (auth.Claims, error) {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithTimeFunc(s.now),
		gojwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.issuer))
	}

	var claims tokenClaims
	parsed, err := gojwt.ParseWithClaims(token, &claims, func(*gojwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return auth.Claims{}, ErrExpiredToken
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	role := auth.RoleUser
	if claims.Role == string(auth.RoleAdmin) {
		role = auth.RoleAdmin
	}
	return auth.Claims{
		UserID:   claims.Subject,
		UserName: claims.UserName,
		Email:    claims.Email,
		Role:     role,
	}, nil
}
