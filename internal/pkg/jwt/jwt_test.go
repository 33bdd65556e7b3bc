package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablerota/rota-backend-go/internal/domain/account"
)

const testSecret = "test-secret-key-for-jwt"

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	return NewJWTService(testSecret, "1h", "24h").(*JWTService)
}

func TestGenerateAccessToken(t *testing.T) {
	svc := newTestService(t)

	t.Run("carries the account, tenant and level claims", func(t *testing.T) {
		employeeID := "0198d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"
		tokenString, expiresAt, err := svc.GenerateAccessToken(
			"acc-1", "dana@example.com", "bluedoor", account.LevelManager, &employeeID)
		require.NoError(t, err)
		assert.Greater(t, expiresAt, time.Now().Unix())

		token, err := svc.JWTAuth().Decode(tokenString)
		require.NoError(t, err)

		for key, want := range map[string]string{
			"account_id":  "acc-1",
			"email":       "dana@example.com",
			"tenant":      "bluedoor",
			"level":       "manager",
			"employee_id": employeeID,
			"type":        "access",
		} {
			got, ok := token.Get(key)
			require.True(t, ok, key)
			assert.Equal(t, want, got, key)
		}
	})

	t.Run("unlinked account has a nil employee claim", func(t *testing.T) {
		tokenString, _, err := svc.GenerateAccessToken(
			"acc-2", "pat@example.com", "bluedoor", account.LevelAdmin, nil)
		require.NoError(t, err)

		token, err := svc.JWTAuth().Decode(tokenString)
		require.NoError(t, err)

		got, _ := token.Get("employee_id")
		assert.Nil(t, got)
	})
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestService(t)

	refresh, _, err := svc.GenerateRefreshToken("acc-1")
	require.NoError(t, err)

	accountID, err := svc.DecodeRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", accountID)

	// an access token must not pass for a refresh token
	employeeID := "emp-1"
	access, _, err := svc.GenerateAccessToken(
		"acc-1", "dana@example.com", "bluedoor", account.LevelEmployee, &employeeID)
	require.NoError(t, err)
	_, err = svc.DecodeRefreshToken(access)
	assert.Error(t, err)
}

func TestRevocation(t *testing.T) {
	svc := newTestService(t)

	svc.RevokeToken("revoked-token")
	assert.True(t, svc.IsTokenRevoked("revoked-token"))
	assert.False(t, svc.IsTokenRevoked("other-token"))

	// sweep drops stale entries and keeps fresh ones
	svc.revokedTokens["stale-token"] = time.Now().Add(-48 * time.Hour).Unix()
	svc.SweepRevoked(24 * time.Hour)
	assert.False(t, svc.IsTokenRevoked("stale-token"))
	assert.True(t, svc.IsTokenRevoked("revoked-token"))
}
