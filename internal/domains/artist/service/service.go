package service

import (
	"context"
	"fmt"
	"salon/config"
	"salon/infras/otel"
	"salon/internal/domains/artist/model"
	"salon/internal/domains/artist/model/dto"
	"salon/internal/domains/artist/repository"
	"salon/internal/pipeline"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetArtist    = "artist:get"
	cacheGetAllArtist = "artist:get_all"
	cacheCountArtist  = "artist:count"
)

type Artist interface {
	Create(ctx context.Context, actor shared.Actor, req dto.CreateArtistRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetArtistsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.ArtistResponse, error)
	GetByUserID(ctx context.Context, userID string) (model.Artist, error)
	Update(ctx context.Context, actor shared.Actor, req dto.UpdateArtistRequest, id int64) error
	Delete(ctx context.Context, id int64) error
	FetchArtists(ctx context.Context, ids []int64) ([]pipeline.Artist, error)
}

type serviceImpl struct {
	repo  repository.Artist
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Artist, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Artist {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func filterByID(id int64) gDto.FilterGroup {
	return shared.FilterByField(model.FieldID, id, model.TableName)
}

func (s *serviceImpl) Create(ctx context.Context, actor shared.Actor, req dto.CreateArtistRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	artist := req.ToModel(actor.UserID)

	exist, err := s.repo.Exist(ctx, shared.FilterByField(model.FieldEmpCode, artist.EmpCode, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check artist existence")

		return err
	}

	if exist {
		return failure.Conflict("employee code already used by another artist")
	}

	if err = s.repo.Insert(ctx, artist); err != nil {
		log.Error().Err(err).Msg("failed to create artist")

		return fmt.Errorf("failed to create artist: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllArtist)
		shared.InvalidateCaches(c, s.cache, cacheCountArtist)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetArtistsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllArtist, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for artists")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count artists")

		return res, err
	}

	artists, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get artists")

		return res, fmt.Errorf("failed to get artists: %w", err)
	}

	res.FromModels(artists, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save artists to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountArtist, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count artists")

		return total, fmt.Errorf("failed to count artists: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save artist count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ArtistResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetArtist, strconv.FormatInt(id, 10))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for artist")

		return res, nil
	}

	artist, err := s.repo.Get(ctx, filterByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get artist")

		return res, fmt.Errorf("failed to get artist: %w", err)
	}

	if artist.ID == 0 {
		return res, failure.NotFound("artist not found")
	}

	res.FromModel(artist)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save artist to cache")
		}
	}()

	return res, nil
}

// GetByUserID resolves the artist profile linked to a login account.
func (s *serviceImpl) GetByUserID(ctx context.Context, userID string) (artist model.Artist, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByUserID")
	defer scope.End()
	defer scope.TraceIfError(&err)

	artist, err = s.repo.Get(ctx, shared.FilterByField(model.FieldUserID, userID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("failed to get artist by user")

		return artist, fmt.Errorf("failed to get artist: %w", err)
	}

	if artist.ID == 0 {
		return artist, failure.Forbidden("account is not linked to an artist")
	}

	if !artist.Active {
		return artist, failure.Forbidden("artist is not active")
	}

	return artist, nil
}

func (s *serviceImpl) Update(ctx context.Context, actor shared.Actor, req dto.UpdateArtistRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := filterByID(id)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check artist existence")

		return err
	}

	if !exist {
		return failure.NotFound("artist not found")
	}

	updatedFields := shared.TransformFields(req, actor.UserID)
	if req.Active != nil {
		updatedFields[model.FieldActive] = *req.Active
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update artist")

		return fmt.Errorf("failed to update artist: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := filterByID(id)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check artist existence")

		return err
	}

	if !exist {
		return failure.NotFound("artist not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete artist")

		return fmt.Errorf("failed to delete artist: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetArtist, strconv.FormatInt(id, 10))); err != nil {
			log.Error().Err(err).Msg("failed to delete artist cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllArtist)
		shared.InvalidateCaches(c, s.cache, cacheCountArtist)
	}()
}

// FetchArtists returns the artists with the given ids regardless of their active flag. It backs the
// booking list's artist lookup.
func (s *serviceImpl) FetchArtists(ctx context.Context, ids []int64) (res []pipeline.Artist, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FetchArtists")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if len(ids) == 0 {
		return []pipeline.Artist{}, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
	}

	artists, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter,
		model.FieldID, model.FieldFirstName, model.FieldLastName, model.FieldEmpCode, model.FieldActive, model.FieldGroupName)
	if err != nil {
		log.Error().Err(err).Ints64("ids", ids).Msg("failed to fetch artists")

		return nil, fmt.Errorf("failed to fetch artists: %w", err)
	}

	res = make([]pipeline.Artist, len(artists))
	for i, artist := range artists {
		res[i] = dto.ToPipeline(artist)
	}

	return res, nil
}
