package service

import (
	"fmt"
	"time"

	"pagfx-engine/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

// JWTTokenService implements ports.TokenService using HS256 JWT. It
// guards the admin credentials endpoint; tokens are issued out of band
// by the administrative app.
type JWTTokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewJWTTokenService creates a new JWT token service.
func NewJWTTokenService(secret string, expiry time.Duration, issuer string) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Generate creates a signed JWT for the given subject.
func (s *JWTTokenService) Generate(subject string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
		"iss": s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Validate parses and validates a JWT token, returning the claims.
func (s *JWTTokenService) Validate(tokenString string) (*ports.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("missing subject claim")
	}

	return &ports.TokenClaims{Subject: sub}, nil
}
