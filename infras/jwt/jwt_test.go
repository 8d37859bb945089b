package jwt_test

import (
	"context"
	"salon/config"
	"salon/infras/jwt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(accessMin int) jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "salon"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = accessMin
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg)
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService(15)
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "artist@salon.test", "artist")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "artist@salon.test", claims.Email)
	assert.Equal(t, "artist", claims.Role)
	assert.NotEmpty(t, claims.ID)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, pair.AccessToken+"x", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidate_Expired(t *testing.T) {
	svc := newService(-1)

	pair, err := svc.GenerateTokenPair(context.Background(), "user-1", "a@salon.test", "admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestRefreshTokens(t *testing.T) {
	svc := newService(15)
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, "user-2", "ctl@salon.test", "controller")
	require.NoError(t, err)

	next, err := svc.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, next.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-2", claims.Subject)

	_, err = svc.RefreshTokens(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	for _, header := range []string{"", "Bearer ", "Basic abc", "bearer abc"} {
		_, err = jwt.ExtractTokenFromHeader(header)
		assert.ErrorIs(t, err, jwt.ErrMissingToken, header)
	}
}
