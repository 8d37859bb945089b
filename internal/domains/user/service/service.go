package service

import (
	"context"
	"fmt"
	"path"
	"salon/config"
	"salon/infras/otel"
	"salon/infras/s3"
	"salon/internal/domains/user/model"
	"salon/internal/domains/user/model/dto"
	"salon/internal/domains/user/repository"
	"salon/shared"
	"salon/shared/base64"
	"salon/shared/cache"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
	"salon/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	maxAvatarBytes = 2 << 20

	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
	cacheCountUser  = "user:count"
)

type User interface {
	Create(ctx context.Context, actor shared.Actor, req dto.CreateUserRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, actor shared.Actor, req dto.UpdateUserRequest, id string) error
	UpdateProfile(ctx context.Context, actor shared.Actor, req dto.UpdateProfileRequest) error
	Delete(ctx context.Context, actor shared.Actor, id string) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	s3    s3.S3
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, s3 s3.S3, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		s3:    s3,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, actor shared.Actor, req dto.CreateUserRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if model.PrivilegedLevel(req.Level) && !actor.IsSuperAdmin() {
		return failure.ResourceRestrictedError
	}

	exists, err := s.repo.EmailTaken(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to check email %q: %w", req.Email, err)
	}

	if exists {
		return failure.Conflict("email already registered")
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.repo.Insert(ctx, req.ToModel(actor.Email, hashed)); err != nil {
		return fmt.Errorf("failed to insert user %s: %w", req.Email, err)
	}

	s.invalidate(ctx, constant.Empty)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	users, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to list users: %w", err)
	}

	res.FromModels(users, total, req.Limit)
	s.remember(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUser, req, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	if res, err = s.repo.Count(ctx, filter); err != nil {
		return res, fmt.Errorf("failed to count users: %w", err)
	}

	s.remember(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)
	s.remember(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, actor shared.Actor, req dto.UpdateUserRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req == (dto.UpdateUserRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !actor.IsSuperAdmin() && (current.Privileged() || (req.Level != nil && model.PrivilegedLevel(*req.Level))) {
		return failure.ResourceRestrictedError
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor.Email), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return fmt.Errorf("failed to update user %s: %w", id, err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, actor shared.Actor, req dto.UpdateProfileRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if actor.UserID == "" {
		return failure.Unauthorized("missing user")
	}

	if req == (dto.UpdateProfileRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	if req.ProfileImage != nil && base64.IsDataURI(*req.ProfileImage) {
		url, err := s.uploadAvatar(ctx, actor.UserID, *req.ProfileImage)
		if err != nil {
			return err
		}

		req.ProfileImage = &url
	}

	filter := shared.FilterByID(actor.UserID, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor.Email), filter); err != nil {
		return fmt.Errorf("failed to update profile of %s: %w", actor.UserID, err)
	}

	s.invalidate(ctx, actor.UserID)

	return nil
}

func (s *serviceImpl) uploadAvatar(ctx context.Context, userID, image string) (string, error) {
	contentType, data, err := base64.Decode(image)
	if err != nil {
		return constant.Empty, failure.BadRequest(err)
	}

	ext := base64.Extension(contentType)
	if ext == constant.Empty {
		return constant.Empty, failure.BadRequestFromString("profile image must be png, jpeg or webp")
	}

	if len(data) > maxAvatarBytes {
		return constant.Empty, failure.BadRequestFromString("profile image must not exceed 2 MB")
	}

	url, err := s.s3.Upload(ctx, path.Join(s.cfg.External.S3.AvatarDirectory, userID+ext), contentType, data)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to upload profile image")

		return constant.Empty, fmt.Errorf("failed to upload profile image: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return user, fmt.Errorf("failed to get user %s: %w", id, err)
	}

	if user.ID == constant.Empty {
		return user, failure.NotFound("user not found")
	}

	return user, nil
}

// remember writes through to redis off the request path.
func (s *serviceImpl) remember(ctx context.Context, key string, value any) {
	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), key, value, s.cfg.Cache.TTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to cache users")
		}
	}()
}

// invalidate drops list and count pages, plus the single entry when id is set.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
				log.Warn().Err(err).Str("user_id", id).Msg("failed to evict user")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()
}

func (s *serviceImpl) Delete(ctx context.Context, actor shared.Actor, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if id == actor.UserID {
		return failure.BadRequestFromString("cannot delete your own account")
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if current.Privileged() && !actor.IsSuperAdmin() {
		return failure.ResourceRestrictedError
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}

	s.invalidate(ctx, id)

	return nil
}
