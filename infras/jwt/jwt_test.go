package jwt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenda/config"
	"agenda/infras/jwt"
	"agenda/infras/otel/mocks"
)

func newService(accessMinutes int) jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "agenda"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = accessMinutes
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg, mocks.NewOtel())
}

func TestGenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	svc := newService(15)

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "ana@example.com", "client")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "client", claims.Role)
	assert.Equal(t, "agenda", claims.Issuer)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, "garbage", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	ctx := context.Background()
	svc := newService(-1)

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "ana@example.com", "client")
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestRefreshTokens(t *testing.T) {
	ctx := context.Background()
	svc := newService(15)

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "ana@example.com", "professional")
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "professional", claims.Role)

	_, err = svc.RefreshTokens(ctx, pair.AccessToken)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, jwt.ErrMissingHeader)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.ErrorIs(t, err, jwt.ErrInvalidHeader)

	_, err = jwt.ExtractTokenFromHeader("Bearer ")
	assert.ErrorIs(t, err, jwt.ErrInvalidHeader)
}
