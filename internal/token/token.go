// Package token issues and validates the short-lived HS256 tokens replicas
// present to the relay. Every replica of a fleet shares one secret.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "fleetsync"

var (
	// ErrInvalidToken indicates that a token failed validation
	ErrInvalidToken = errors.New("invalid token")

	// ErrEmptySecret indicates that the fleet secret is not configured
	ErrEmptySecret = errors.New("fleet secret is empty")
)

// Claims представляет JWT claims реплики
type Claims struct {
	ReplicaID string `json:"replica_id"`
	jwt.RegisteredClaims
}

// Service provides token generation and validation
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates a new token service
// secret should be a cryptographically secure random string shared by the fleet
func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue creates a new token for replicaID
func (s *Service) Issue(replicaID string) (string, error) {
	if replicaID == "" {
		return "", fmt.Errorf("replica id must not be empty")
	}

	now := s.now()
	claims := Claims{
		ReplicaID: replicaID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   replicaID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate parses tokenString and returns its claims
func (s *Service) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ReplicaID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
