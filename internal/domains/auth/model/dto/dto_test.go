package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salon/infras/jwt"
	"salon/internal/domains/auth/model/dto"
	"salon/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair, constant.RoleArtist)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
	assert.Equal(t, constant.RoleArtist, response.Role)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	name := "Sinta"
	phone := "081234567890"
	req := dto.RegisterRequest{Email: " Sinta@Example.com ", Password: "secret123", FullName: &name, PhoneNo: &phone}

	user := req.ToUserModel(constant.ContextGuest, "hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, constant.RoleMember, user.Level)
	assert.Equal(t, "hashed", user.Password)
	assert.True(t, user.Active)
	assert.False(t, user.IsVerified)
	assert.Equal(t, constant.ContextGuest, user.CreatedBy)
	assert.Equal(t, "sinta@example.com", user.Email)
	assert.Equal(t, &phone, user.PhoneNo)
}
