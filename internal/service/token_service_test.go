package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenService_RoundTrip(t *testing.T) {
	svc := NewJWTTokenService("test-secret", time.Hour, "custodial-wallet")
	accountID := uuid.New()

	token, expiresAt, err := svc.Generate(accountID, "user")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, "user", claims.Role)
}

func TestJWTTokenService_AdminRole(t *testing.T) {
	svc := NewJWTTokenService("test-secret", time.Hour, "custodial-wallet")

	token, _, err := svc.Generate(uuid.New(), "admin")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestJWTTokenService_WrongSecret(t *testing.T) {
	svc := NewJWTTokenService("test-secret", time.Hour, "custodial-wallet")
	other := NewJWTTokenService("other-secret", time.Hour, "custodial-wallet")

	token, _, err := svc.Generate(uuid.New(), "user")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_Expired(t *testing.T) {
	svc := NewJWTTokenService("test-secret", -time.Minute, "custodial-wallet")

	token, _, err := svc.Generate(uuid.New(), "user")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_Malformed(t *testing.T) {
	svc := NewJWTTokenService("test-secret", time.Hour, "custodial-wallet")

	_, err := svc.Validate("not.a.jwt")
	assert.Error(t, err)
}
