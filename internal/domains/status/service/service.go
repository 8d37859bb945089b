package service

import (
	"context"
	"fmt"
	"salon/config"
	"salon/infras/otel"
	"salon/internal/domains/status/model"
	"salon/internal/domains/status/model/dto"
	"salon/internal/domains/status/repository"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetStatus     = "status:get"
	cacheGetAllStatus  = "status:get_all"
	cacheStatusOptions = "status:options"
)

type Status interface {
	Create(ctx context.Context, actor shared.Actor, req dto.CreateStatusRequest) error
	GetAll(ctx context.Context, active *bool) (dto.GetStatusesResponse, error)
	Get(ctx context.Context, code string) (dto.StatusResponse, error)
	Update(ctx context.Context, actor shared.Actor, req dto.UpdateStatusRequest, code string) error
	Delete(ctx context.Context, code string) error
	Normalizer(ctx context.Context) (*model.Normalizer, error)
}

type serviceImpl struct {
	repo  repository.Status
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Status, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Status {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, code string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if code != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetStatus, code)); err != nil {
				log.Error().Err(err).Msg("failed to delete status cache")
			}
		}

		if err := s.cache.Delete(c, cacheStatusOptions); err != nil {
			log.Error().Err(err).Msg("failed to delete status options cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllStatus)
	}()
}

func (s *serviceImpl) Create(ctx context.Context, actor shared.Actor, req dto.CreateStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	option := req.ToModel(actor.UserID)
	if option.StatusCode == constant.Empty {
		return failure.BadRequestFromString("status code is required")
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByField(model.FieldStatusCode, option.StatusCode, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check status existence")

		return err
	}

	if exist {
		return failure.Conflict("status code already exists")
	}

	if err = s.repo.Insert(ctx, option); err != nil {
		log.Error().Err(err).Msg("failed to create status")

		return fmt.Errorf("failed to create status: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, active *bool) (res dto.GetStatusesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	if active != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Value:    *active,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	params := gDto.QueryParams{SortBy: model.FieldStatusCode, SortDir: gDto.SortDirAsc}
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllStatus, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for statuses")

		return res, nil
	}

	options, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get statuses")

		return res, fmt.Errorf("failed to get statuses: %w", err)
	}

	res.FromModels(options, model.NewNormalizer(options))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save statuses to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, code string) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	code = string(model.CodeOf(code))
	cacheKey := shared.BuildCacheKey(cacheGetStatus, code)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for status")

		return res, nil
	}

	option, err := s.repo.Get(ctx, shared.FilterByField(model.FieldStatusCode, code, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get status")

		return res, fmt.Errorf("failed to get status: %w", err)
	}

	if option.StatusCode == constant.Empty {
		return res, failure.NotFound("status not found")
	}

	res.FromModel(option, nil)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save status to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, actor shared.Actor, req dto.UpdateStatusRequest, code string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	code = string(model.CodeOf(code))
	filter := shared.FilterByField(model.FieldStatusCode, code, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check status existence")

		return err
	}

	if !exist {
		return failure.NotFound("status not found")
	}

	updatedFields := shared.TransformFields(req, actor.UserID)
	if req.Active != nil {
		updatedFields[model.FieldActive] = *req.Active
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update status")

		return fmt.Errorf("failed to update status: %w", err)
	}

	s.invalidate(ctx, code)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, code string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	code = string(model.CodeOf(code))
	filter := shared.FilterByField(model.FieldStatusCode, code, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check status existence")

		return err
	}

	if !exist {
		return failure.NotFound("status not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete status")

		return fmt.Errorf("failed to delete status: %w", err)
	}

	s.invalidate(ctx, code)

	return nil
}

// Normalizer builds the status normalizer from the table. A failed read falls back to the built-in
// vocabulary instead of failing the caller.
func (s *serviceImpl) Normalizer(ctx context.Context) (normalizer *model.Normalizer, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Normalizer")
	defer scope.End()

	var options []model.StatusOption

	if err = s.cache.Get(ctx, cacheStatusOptions, &options); err == nil {
		return model.NewNormalizer(options), nil
	}

	options, err = s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to load status table, using built-in statuses")

		return model.NewNormalizer(nil), nil
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheStatusOptions, options, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save status options to cache")
		}
	}()

	return model.NewNormalizer(options), nil
}
