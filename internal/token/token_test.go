package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService_EmptySecret(t *testing.T) {
	_, err := NewService("", time.Minute)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestIssueAndValidate(t *testing.T) {
	svc, err := NewService("fleet-secret", time.Minute)
	require.NoError(t, err)

	tokenString, err := svc.Issue("replica-1")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := svc.Validate(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "replica-1", claims.ReplicaID)
	assert.Equal(t, "replica-1", claims.Subject)
	assert.Equal(t, issuer, claims.Issuer)

	_, err = svc.Issue("")
	assert.Error(t, err)
}

func TestValidate_Invalid(t *testing.T) {
	svc, err := NewService("fleet-secret", time.Minute)
	require.NoError(t, err)

	other, err := NewService("other-secret", time.Minute)
	require.NoError(t, err)
	foreign, err := other.Issue("replica-1")
	require.NoError(t, err)

	expiredSvc, err := NewService("fleet-secret", time.Minute)
	require.NoError(t, err)
	expiredSvc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := expiredSvc.Issue("replica-1")
	require.NoError(t, err)

	// Токен без replica_id
	noReplica, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer},
	}).SignedString([]byte("fleet-secret"))
	require.NoError(t, err)

	// Токен с алгоритмом none
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		ReplicaID:        "replica-1",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", expired},
		{"missing replica id", noReplica},
		{"none algorithm", unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
