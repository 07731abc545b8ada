package auth

import (
	"testing"
	"time"

	"tasknest/config"
	domainerrors "tasknest/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(accessTTL, refreshTTL time.Duration) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			AccessTokenTTL:  accessTTL,
			RefreshTokenTTL: refreshTTL,
		},
	}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(445*time.Second, 60*time.Second))
	require.NoError(t, err)

	userID := uuid.New()

	accessToken, err := svc.IssueAccessToken(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	refreshToken, err := svc.IssueRefreshToken(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshToken)

	// The two tokens are independent artifacts.
	assert.NotEqual(t, accessToken, refreshToken)

	accessClaims, err := svc.VerifyAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, 445*time.Second, accessClaims.ExpiresAt.Sub(accessClaims.IssuedAt.Time))

	refreshClaims, err := svc.VerifyRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Equal(t, 60*time.Second, refreshClaims.ExpiresAt.Sub(refreshClaims.IssuedAt.Time))
}

func TestJWTService_SecretsNotInterchangeable(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(445*time.Second, 60*time.Second))
	require.NoError(t, err)

	userID := uuid.New()

	accessToken, err := svc.IssueAccessToken(userID)
	require.NoError(t, err)
	refreshToken, err := svc.IssueRefreshToken(userID)
	require.NoError(t, err)

	_, err = svc.VerifyRefreshToken(accessToken)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidSignature))

	_, err = svc.VerifyAccessToken(refreshToken)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidSignature))
}

func TestJWTService_ExpiredToken(t *testing.T) {
	// A negative TTL produces a token that is already past its expiry.
	svc, err := NewJWTService(newTestConfig(-time.Second, 60*time.Second))
	require.NoError(t, err)

	token, err := svc.IssueAccessToken(uuid.New())
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(token)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(445*time.Second, 60*time.Second))
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken("clearly-not-a-jwt-token-format")
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrMalformedToken))
}

func TestJWTService_DecodeSurfacesExpiry(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(445*time.Second, 60*time.Second))
	require.NoError(t, err)

	issuedBefore := time.Now()
	token, err := svc.IssueRefreshToken(uuid.New())
	require.NoError(t, err)

	claims, err := svc.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	assert.False(t, claims.IssuedAt.Before(issuedBefore.Truncate(time.Second)))

	_, err = svc.Decode("garbage")
	assert.True(t, errors.Is(err, domainerrors.ErrMalformedToken))
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	cfg := newTestConfig(445*time.Second, 60*time.Second)
	cfg.SecretKey.Refresh = ""

	svc, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
}
