package service

import (
	"context"
	"errors"
	"fmt"
	"salon/config"
	"salon/infras/jwt"
	"salon/infras/otel"
	"salon/internal/domains/auth/model/dto"
	userModel "salon/internal/domains/user/model"
	userRepo "salon/internal/domains/user/repository"
	"salon/shared"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/shared/password"
	"salon/shared/timezone"
	"sync"

	"github.com/rs/zerolog/log"
)

const msgBadCredentials = "invalid email or password"

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, actor shared.Actor, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT

	decoyOnce sync.Once
	decoy     string
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

// decoyHash is compared against when the email is unknown so both paths spend one bcrypt round.
func (s *serviceImpl) decoyHash() string {
	s.decoyOnce.Do(func() {
		s.decoy, _ = password.Hash("decoy-password")
	})

	return s.decoy
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(&err)

	exists, err := s.userRepo.EmailTaken(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return failure.Conflict("email already registered")
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(constant.ContextGuest, hashed)
	if err = s.userRepo.Insert(ctx, user); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("failed to register member")

		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("member registered")

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return res, fmt.Errorf("failed to get user: %w", err)
	}

	hash := user.Password
	if user.ID == "" {
		hash = s.decoyHash()
	}

	if err = password.Verify(req.Password, hash); err != nil || user.ID == "" {
		if err != nil && !errors.Is(err, password.ErrInvalidPassword) {
			log.Error().Err(err).Str("user_id", user.ID).Msg("stored password hash is unreadable")
		}

		log.Warn().Str("email", req.Email).Msg("login rejected")

		return res, failure.Unauthorized(msgBadCredentials)
	}

	if !user.Active {
		return res, failure.Forbidden("user account is deactivated")
	}

	pair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Level)
	if err != nil {
		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if uErr := s.userRepo.TouchLastLogin(ctx, user.ID, timezone.Now()); uErr != nil {
		log.Warn().Err(uErr).Str("user_id", user.ID).Msg("failed to record last login")
	}

	log.Info().Str("user_id", user.ID).Str("role", user.Level).Msg("user logged in")

	res.FromTokenPair(pair, user.Level)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(&err)

	pair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("refresh rejected")

		return res, failure.Unauthorized("invalid refresh token")
	}

	res.FromTokenPair(pair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, actor shared.Actor, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if actor.UserID == "" {
		return failure.Unauthorized("missing user")
	}

	filter := shared.FilterByID(actor.UserID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return failure.NotFound("user not found")
	}

	if password.Verify(req.CurrentPassword, user.Password) != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	if req.CurrentPassword == req.NewPassword {
		return failure.BadRequestFromString("new password must differ from the current one")
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err = s.userRepo.Update(ctx, shared.TransformFields(dto.UpdatePasswordRequest{Password: hashed}, actor.Email), filter); err != nil {
		log.Error().Err(err).Str("user_id", actor.UserID).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
