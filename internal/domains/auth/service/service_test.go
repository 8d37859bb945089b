package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"salon/config"
	"salon/infras/jwt"
	jwtMocks "salon/infras/jwt/mocks"
	"salon/infras/otel/mocks"
	"salon/internal/domains/auth/model/dto"
	"salon/internal/domains/auth/service"
	userMocks "salon/internal/domains/user/mocks"
	userModel "salon/internal/domains/user/model"
	"salon/shared"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
	"salon/shared/password"
)

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost

	m.Run()
}

type fixture struct {
	svc   service.Auth
	users *userMocks.MockUser
	jwt   *jwtMocks.MockJWT
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	users := userMocks.NewMockUser(ctrl)
	tokens := jwtMocks.NewMockJWT(ctrl)

	return fixture{
		svc:   service.New(users, &config.Config{}, mocks.NewOtel(), tokens),
		users: users,
		jwt:   tokens,
	}
}

func artist(t *testing.T, plain string, active bool) userModel.User {
	t.Helper()

	hashed, err := password.Hash(plain)
	require.NoError(t, err)

	return userModel.User{ID: "user-1", Email: "dina@salon.test", Password: hashed, Level: constant.RoleArtist, Active: active}
}

func TestLogin(t *testing.T) {
	pair := &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}

	tests := []struct {
		name     string
		password string
		setup    func(f fixture)
		wantCode int
	}{
		{
			name:     "success records last login",
			password: "correct-horse",
			setup: func(f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), "dina@salon.test").Return(artist(t, "correct-horse", true), nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "user-1", "dina@salon.test", constant.RoleArtist).Return(pair, nil)
				f.users.EXPECT().TouchLastLogin(gomock.Any(), "user-1", gomock.Any()).Return(nil)
			},
		},
		{
			name:     "last login failure does not block",
			password: "correct-horse",
			setup: func(f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), "dina@salon.test").Return(artist(t, "correct-horse", true), nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(pair, nil)
				f.users.EXPECT().TouchLastLogin(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
		},
		{
			name:     "unknown email",
			password: "whatever",
			setup: func(f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), "dina@salon.test").Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "wrong password",
			password: "wrong",
			setup: func(f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), "dina@salon.test").Return(artist(t, "correct-horse", true), nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "deactivated",
			password: "correct-horse",
			setup: func(f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), "dina@salon.test").Return(artist(t, "correct-horse", false), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "repository error",
			password: "correct-horse",
			setup: func(f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), "dina@salon.test").Return(userModel.User{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "dina@salon.test", Password: tt.password})

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access", res.AccessToken)
			assert.Equal(t, constant.RoleArtist, res.Role)
		})
	}
}

func TestRegister(t *testing.T) {
	t.Run("creates member", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().EmailTaken(gomock.Any(), "new@salon.test").Return(false, nil)
		f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u userModel.User) error {
			assert.Equal(t, constant.RoleMember, u.Level)
			assert.True(t, u.Active)
			assert.NoError(t, password.Verify("long-enough", u.Password))

			return nil
		})

		require.NoError(t, f.svc.Register(context.Background(), dto.RegisterRequest{Email: "new@salon.test", Password: "long-enough"}))
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().EmailTaken(gomock.Any(), "dina@salon.test").Return(true, nil)

		err := f.svc.Register(context.Background(), dto.RegisterRequest{Email: "dina@salon.test", Password: "long-enough"})
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestRefreshToken(t *testing.T) {
	f := newFixture(t)
	f.jwt.EXPECT().RefreshTokens(gomock.Any(), "good").Return(&jwt.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil)
	f.jwt.EXPECT().RefreshTokens(gomock.Any(), "bad").Return(nil, jwt.ErrInvalidToken)

	res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "good"})
	require.NoError(t, err)
	assert.Equal(t, "a2", res.AccessToken)

	_, err = f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad"})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestChangePassword(t *testing.T) {
	actor := shared.Actor{UserID: "user-1", Email: "dina@salon.test", Role: constant.RoleArtist}

	tests := []struct {
		name     string
		actor    shared.Actor
		req      dto.ChangePasswordRequest
		setup    func(f fixture)
		wantCode int
	}{
		{
			name:  "success",
			actor: actor,
			req:   dto.ChangePasswordRequest{CurrentPassword: "correct-horse", NewPassword: "battery-staple"},
			setup: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(artist(t, "correct-horse", true), nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						hashed, ok := fields["password"].(string)
						require.True(t, ok)
						assert.NoError(t, password.Verify("battery-staple", hashed))
						assert.Equal(t, "dina@salon.test", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name:     "anonymous",
			req:      dto.ChangePasswordRequest{CurrentPassword: "x", NewPassword: "battery-staple"},
			setup:    func(fixture) {},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:  "user gone",
			actor: actor,
			req:   dto.ChangePasswordRequest{CurrentPassword: "x", NewPassword: "battery-staple"},
			setup: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:  "wrong current password",
			actor: actor,
			req:   dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "battery-staple"},
			setup: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(artist(t, "correct-horse", true), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "unchanged password",
			actor: actor,
			req:   dto.ChangePasswordRequest{CurrentPassword: "correct-horse", NewPassword: "correct-horse"},
			setup: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(artist(t, "correct-horse", true), nil)
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			err := f.svc.ChangePassword(context.Background(), tt.actor, tt.req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}
